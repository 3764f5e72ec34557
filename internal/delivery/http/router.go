package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/service"
)

// ErrorHandler renders handler errors with the API's error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(
	app *fiber.App,
	detectionSvc *service.DetectionService,
	weatherSvc *service.WeatherService,
	visionSvc *service.VisionService,
	repo service.DetectionRepository,
	logger *zap.Logger,
) {
	handler := NewHandler(detectionSvc, weatherSvc, visionSvc, repo, logger)

	// Health check and metrics for load balancers and scrapers
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	api := app.Group("/api")
	{
		api.Get("/", handler.Root)
		api.Post("/detect-disease", handler.DetectDisease)
		api.Get("/history", handler.History)
		api.Get("/weather-advisory", handler.WeatherAdvisory)
		api.Get("/crops", handler.Crops)
		api.Get("/health", handler.HealthCheck)
	}
}
