package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dkrause/service_market/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBaseInfoEmpty(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/base-info", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 0, body["review_count"])
	assert.EqualValues(t, 0, body["average_rating"])
	assert.EqualValues(t, 0, body["business_profile_count"])
	assert.EqualValues(t, 0, body["offer_count"])
}

func TestGetBaseInfoAggregates(t *testing.T) {
	app := setupTestApp(t)
	business := createTestUser(t, "seller", models.UserTypeBusiness, false)
	createTestUser(t, "seller2", models.UserTypeBusiness, false)
	customer := createTestUser(t, "buyer", models.UserTypeCustomer, false)
	otherCustomer := createTestUser(t, "buyer2", models.UserTypeCustomer, false)
	createTestOffer(t, business, "Counted", 100)
	createTestReview(t, business, customer, 4)
	createTestReview(t, business, otherCustomer, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/base-info", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 2, body["review_count"])
	assert.EqualValues(t, 4.5, body["average_rating"])
	assert.EqualValues(t, 2, body["business_profile_count"])
	assert.EqualValues(t, 1, body["offer_count"])
}

// The public endpoints must stay reachable without a token even with every
// route file registered, while the protected ones keep rejecting anonymous
// requests.
func TestPublicEndpointsSkipAuth(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/base-info", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/offers", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{
		"/api/v1/orders",
		"/api/v1/reviews",
		"/api/v1/profiles/business",
		"/api/v1/offerdetails",
	} {
		resp = doJSON(t, app, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}
