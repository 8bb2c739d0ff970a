package fiber

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"student-performance-dashboard/logger"
	"student-performance-dashboard/middleware"
)

// SetupFiber builds the app with a JSON error handler and the common
// middleware stack.
func SetupFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Student Performance Dashboard",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger())

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
