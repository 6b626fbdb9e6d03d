package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registrationBody(username, email, userType string) map[string]interface{} {
	return map[string]interface{}{
		"username":          username,
		"email":             email,
		"password":          "password123",
		"repeated_password": "password123",
		"type":              userType,
	}
}

func TestRegisterUser(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration",
		registrationBody("anna_b", "anna@example.com", "business"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "anna_b", body["username"])
	assert.Equal(t, "anna@example.com", body["email"])
	assert.NotEmpty(t, body["user_id"])

	var user models.User
	require.NoError(t, database.DB.Where("username = ?", "anna_b").First(&user).Error)
	assert.Equal(t, models.UserTypeBusiness, user.Type)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "taken", models.UserTypeCustomer, false)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration",
		registrationBody("someone", "taken@example.com", "customer"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/registration",
		registrationBody("taken", "new@example.com", "customer"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterUserValidation(t *testing.T) {
	app := setupTestApp(t)

	body := registrationBody("mismatch", "mismatch@example.com", "customer")
	body["repeated_password"] = "different9"
	resp := doJSON(t, app, http.MethodPost, "/api/v1/registration", body, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/registration",
		registrationBody("badtype", "badtype@example.com", "admin"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	short := registrationBody("shortpw", "shortpw@example.com", "customer")
	short["password"] = "short"
	short["repeated_password"] = "short"
	resp = doJSON(t, app, http.MethodPost, "/api/v1/registration", short, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginUser(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "login_user", models.UserTypeCustomer, false)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "login_user", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, user.ID.String(), body["user_id"])
}

func TestLoginUserBadCredentials(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "login_user", models.UserTypeCustomer, false)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "login_user", "password": "wrongpass"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "nobody", "password": "password123"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginDisabledAccount(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "disabled_user", models.UserTypeCustomer, false)
	require.NoError(t, database.DB.Model(&user).Update("is_active", false).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "disabled_user", "password": "password123"}, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
