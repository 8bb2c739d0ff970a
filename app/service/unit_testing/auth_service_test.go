package service_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/models"
	"student-performance-dashboard/app/service"
	"student-performance-dashboard/utils"
)

func setupAuthApp(t *testing.T) *fiber.App {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	svc := service.NewAuthService("admin", hash, "access", "")
	app := fiber.New()
	app.Post("/login", svc.Login)
	app.Post("/refresh", svc.Refresh)
	return app
}

func login(t *testing.T, app *fiber.App, username, password string) (int, models.TokenResponse) {
	payload, _ := json.Marshal(models.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var tokens models.TokenResponse
	if resp.StatusCode == 200 {
		decode(t, resp, &tokens)
	}
	return resp.StatusCode, tokens
}

func TestLogin(t *testing.T) {
	t.Run("Success: valid credentials", func(t *testing.T) {
		app := setupAuthApp(t)

		status, tokens := login(t, app, "admin", "s3cret")
		assert.Equal(t, 200, status)

		claims, err := utils.ValidateToken(tokens.Token, "access")
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.RoleName)
		assert.NotEmpty(t, tokens.RefreshToken)
	})

	t.Run("Error: wrong password", func(t *testing.T) {
		app := setupAuthApp(t)

		status, _ := login(t, app, "admin", "nope")
		assert.Equal(t, 401, status)
	})

	t.Run("Error: missing fields", func(t *testing.T) {
		app := setupAuthApp(t)

		status, _ := login(t, app, "", "")
		assert.Equal(t, 400, status)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Success: refresh issues new tokens", func(t *testing.T) {
		app := setupAuthApp(t)
		_, tokens := login(t, app, "admin", "s3cret")

		payload, _ := json.Marshal(models.RefreshRequest{RefreshToken: tokens.RefreshToken})
		req := httptest.NewRequest("POST", "/refresh", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Error: invalid refresh token", func(t *testing.T) {
		app := setupAuthApp(t)

		payload, _ := json.Marshal(models.RefreshRequest{RefreshToken: "garbage"})
		req := httptest.NewRequest("POST", "/refresh", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Error: access token as refresh token", func(t *testing.T) {
		app := setupAuthApp(t)
		_, tokens := login(t, app, "admin", "s3cret")

		payload, _ := json.Marshal(models.RefreshRequest{RefreshToken: tokens.Token})
		req := httptest.NewRequest("POST", "/refresh", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Error: empty body", func(t *testing.T) {
		app := setupAuthApp(t)

		req := httptest.NewRequest("POST", "/refresh", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, 400, resp.StatusCode)
	})
}
