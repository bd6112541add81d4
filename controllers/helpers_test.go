package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleurly/fleurly-api/initializers"
	"github.com/fleurly/fleurly-api/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points the global DB at a fresh in-memory SQLite instance.
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Category{},
		&models.Flower{},
		&models.Order{},
		&models.OrderItem{},
		&models.PasswordResetCode{},
	))

	initializers.DB = db
}

func performRequest(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupPayload() map[string]any {
	return map[string]any{
		"firstName": "Yasmin",
		"lastName":  "Benali",
		"email":     "yasmin@example.com",
		"password":  "tulips-and-roses",
		"phone":     "0550123456",
		"address":   "12 Garden Street",
	}
}

// createAdmin seeds an admin client directly and returns it with a valid
// access token.
func createAdmin(t *testing.T) (models.Client, string) {
	t.Helper()

	hash, err := hashPassword("admin-password-1")
	require.NoError(t, err)

	admin := models.Client{
		FirstName: "Ava",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  hash,
		Role:      models.RoleAdmin,
	}
	require.NoError(t, initializers.DB.Create(&admin).Error)

	token, err := generateAccessToken(admin)
	require.NoError(t, err)
	return admin, token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
