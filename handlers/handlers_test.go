package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkrause/service_market/database"
	"github.com/dkrause/service_market/models"
	"github.com/dkrause/service_market/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("UPLOAD_DIR", t.TempDir())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Offer{},
		&models.OfferDetail{},
		&models.Order{},
		&models.Review{},
	))
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.OfferRoutes(app)
	routes.OrderRoutes(app)
	routes.ReviewRoutes(app)
	routes.BaseInfoRoutes(app)
	return app
}

func createTestUser(t *testing.T, username, userType string, staff bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Type:     userType,
		IsStaff:  staff,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"type":     user.Type,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doMultipart(t *testing.T, app *fiber.App, method, path, field, filename string, content []byte, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// createTestOffer inserts an offer with the standard three tiers for the
// given business user. Prices are basePrice, 2x and 3x; delivery times
// 3, 7 and 14 days.
func createTestOffer(t *testing.T, owner models.User, title string, basePrice int) models.Offer {
	t.Helper()
	offer := models.Offer{
		UserID:      owner.ID,
		Title:       title,
		Description: "test offer",
	}
	require.NoError(t, database.DB.Create(&offer).Error)

	tiers := []struct {
		offerType string
		price     int
		delivery  int
	}{
		{models.OfferTypeBasic, basePrice, 3},
		{models.OfferTypeStandard, basePrice * 2, 7},
		{models.OfferTypePremium, basePrice * 3, 14},
	}
	for _, tier := range tiers {
		detail := models.OfferDetail{
			OfferID:            offer.ID,
			Title:              title + " " + tier.offerType,
			Revisions:          2,
			DeliveryTimeInDays: tier.delivery,
			Price:              tier.price,
			Features:           models.FeatureList{"feature one", "feature two"},
			OfferType:          tier.offerType,
		}
		require.NoError(t, database.DB.Create(&detail).Error)
		offer.Details = append(offer.Details, detail)
	}
	return offer
}
