package route

import (
	"github.com/gofiber/fiber/v2"

	"student-performance-dashboard/app/service"
	"student-performance-dashboard/middleware"
)

// Deps carries the services the routes are bound to.
type Deps struct {
	Dashboard *service.DashboardService
	Auth      *service.AuthService
	// AuthEnabled guards the dashboard group with a bearer token.
	AuthEnabled bool
	JWTSecret   string
}

func SetupRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Authentication
	if deps.AuthEnabled && deps.Auth != nil {
		auth := api.Group("/auth")
		auth.Post("/login", deps.Auth.Login)
		auth.Post("/refresh", deps.Auth.Refresh)
	}

	// Dashboard
	guards := []fiber.Handler{}
	if deps.AuthEnabled {
		guards = append(guards, middleware.AuthRequired(deps.JWTSecret))
	}
	dashboard := api.Group("/dashboard", guards...)

	svc := deps.Dashboard
	dashboard.Get("/kpis", svc.GetKPIs)
	dashboard.Get("/options", svc.GetOptions)
	dashboard.Get("/charts/:kind", svc.GetChartData)
	dashboard.Get("/charts/:kind/png", svc.GetChartPNG)
	dashboard.Get("/top", svc.GetTopStudents)
	dashboard.Get("/students", svc.GetStudents)
	dashboard.Get("/export.csv", svc.ExportCSV)
	dashboard.Get("/export.xlsx", svc.ExportXLSX)

	reload := []fiber.Handler{}
	if deps.AuthEnabled {
		reload = append(reload, middleware.RoleAllowed("admin"))
	}
	reload = append(reload, svc.Reload)
	dashboard.Post("/reload", reload...)
}
