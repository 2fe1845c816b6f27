package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/weather-cli/internal/locale"
	"github.com/i474232898/weather-cli/internal/weather"
)

// NewApp builds the Fiber app with the health endpoint and the API routes.
func NewApp(service *weather.Service, catalog *locale.Catalog) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-cli",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cli",
		})
	})

	RegisterRoutes(app, service, catalog)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, catalog *locale.Catalog) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := weather.NewQuery(c.Query("city"), c.Query("unit", string(weather.Celsius)))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, catalog.ErrorMessage(err))
		}

		report, err := service.Current(c.UserContext(), q)
		if err != nil {
			return fiber.NewError(statusFor(err), catalog.ErrorMessage(err))
		}

		return c.JSON(currentResponse{
			City:   q.City,
			Unit:   q.Unit,
			Lines:  catalog.Lines(report),
			Report: report,
		})
	})
}

type currentResponse struct {
	City   string         `json:"city"`
	Unit   weather.Unit   `json:"unit"`
	Lines  []string       `json:"lines"`
	Report weather.Report `json:"report"`
}

func statusFor(err error) int {
	var notFound *weather.LocationNotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadGateway
}
