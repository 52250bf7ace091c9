package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/repository"
	"github.com/dhruvil1809/ecommerce-backend/internal/accounts/service"
	"github.com/dhruvil1809/ecommerce-backend/internal/cache"
	"github.com/dhruvil1809/ecommerce-backend/internal/configs"
	"github.com/dhruvil1809/ecommerce-backend/internal/envelope"
	"github.com/dhruvil1809/ecommerce-backend/internal/middleware"
	"github.com/dhruvil1809/ecommerce-backend/internal/models"
)

type noopMailer struct{}

func (noopMailer) SendPlainTextEmail(context.Context, string, string, string) error { return nil }
func (noopMailer) SendHTMLEmail(context.Context, string, string, string) error      { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		&configs.Config{},
		cache.NewMemory(),
		noopMailer{},
	)

	app := fiber.New()
	NewAuthHandler(authService).RegisterRoutes(app, middleware.Protected(authService))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, envelope.Response) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func registerPayload(email string) fiber.Map {
	return fiber.Map{
		"email":        email,
		"password":     "s3cret-pass",
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"phone_number": "07012345678",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, out := doJSON(t, app, "POST", "/register", "", registerPayload("new@example.com"))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, out.Status)

	data, ok := out.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access"])

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "new@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")
}

func TestRegisterEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	status, out := doJSON(t, app, "POST", "/register", "", fiber.Map{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, out.Status)

	errs, ok := out.Errors.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "first_name")
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/register", "", registerPayload("dup@example.com"))
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, "POST", "/register", "", registerPayload("dup@example.com"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, fiber.StatusConflict, out.StatusCode)
}

func TestLoginAndProfileFlow(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/register", "", registerPayload("flow@example.com"))
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, "POST", "/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusOK, status)
	data := out.Data.(map[string]interface{})
	token, _ := data["access"].(string)
	require.NotEmpty(t, token)

	status, out = doJSON(t, app, "GET", "/profile", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	profile := out.Data.(map[string]interface{})
	assert.Equal(t, "flow@example.com", profile["email"])

	status, _ = doJSON(t, app, "GET", "/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/register", "", registerPayload("bye@example.com"))
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, "POST", "/login", "", fiber.Map{
		"email":    "bye@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusOK, status)
	token := out.Data.(map[string]interface{})["access"].(string)

	status, _ = doJSON(t, app, "POST", "/logout", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "GET", "/profile", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginWrongPasswordEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/register", "", registerPayload("who@example.com"))
	require.Equal(t, fiber.StatusCreated, status)

	status, out := doJSON(t, app, "POST", "/login", "", fiber.Map{
		"email":    "who@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, out.Status)
}
