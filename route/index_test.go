package route_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/engine"
	"student-performance-dashboard/app/models"
	"student-performance-dashboard/app/render"
	"student-performance-dashboard/app/repository/mocks"
	"student-performance-dashboard/app/service"
	"student-performance-dashboard/route"
	"student-performance-dashboard/utils"
)

func setupRouteApp(t *testing.T, authEnabled bool) *fiber.App {
	mockSource := new(mocks.MockStudentSource)
	mockSource.On("LoadStudents", mock.Anything).Return([]models.StudentRecord{
		{Name: "Asha", Gender: "Female", Maths: 95, Science: 92, English: 88, History: 91},
	}, nil)

	dashboard := service.NewDashboardService(mockSource, nil, engine.ImputeMidpoint, render.Options{})
	_, err := dashboard.Load(context.Background())
	require.NoError(t, err)

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	app := fiber.New()
	route.SetupRoutes(app, route.Deps{
		Dashboard:   dashboard,
		Auth:        service.NewAuthService("admin", hash, "secret", ""),
		AuthEnabled: authEnabled,
		JWTSecret:   "secret",
	})
	return app
}

func TestSetupRoutes(t *testing.T) {
	t.Run("Success: open dashboard", func(t *testing.T) {
		app := setupRouteApp(t, false)

		resp, _ := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/kpis", nil))
		assert.Equal(t, 200, resp.StatusCode)

		resp, _ = app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Error: guarded dashboard without token", func(t *testing.T) {
		app := setupRouteApp(t, true)

		resp, _ := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard/kpis", nil))
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Success: guarded dashboard with token", func(t *testing.T) {
		app := setupRouteApp(t, true)
		token, err := utils.GenerateToken("admin", "admin", "secret")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/dashboard/reload", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Error: reload needs admin role", func(t *testing.T) {
		app := setupRouteApp(t, true)
		token, err := utils.GenerateToken("viewer", "viewer", "secret")
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/dashboard/reload", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		assert.Equal(t, 403, resp.StatusCode)
	})
}
