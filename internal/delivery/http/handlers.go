package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/imaging"
	"github.com/cropdoctor/cropdoctor/internal/service"
	"github.com/cropdoctor/cropdoctor/pkg/utils"
)

// Handler contains all HTTP handlers
type Handler struct {
	detectionSvc *service.DetectionService
	weatherSvc   *service.WeatherService
	visionSvc    *service.VisionService
	repo         service.DetectionRepository
	logger       *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(
	detectionSvc *service.DetectionService,
	weatherSvc *service.WeatherService,
	visionSvc *service.VisionService,
	repo service.DetectionRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		detectionSvc: detectionSvc,
		weatherSvc:   weatherSvc,
		visionSvc:    visionSvc,
		repo:         repo,
		logger:       logger,
	}
}

// DetectRequest is the detect-disease request body
type DetectRequest struct {
	Image    string `json:"image"`
	CropType string `json:"crop_type"`
	Language string `json:"language"`
}

// Root describes the API
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "AI Crop Doctor API",
		"version": "1.0",
		"status":  "active",
	})
}

// DetectDisease analyzes an uploaded crop image and returns the stored
// detection record
func (h *Handler) DetectDisease(c *fiber.Ctx) error {
	ctx := c.Context()

	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	start := time.Now()
	record, err := h.detectionSvc.Detect(ctx, req.Image, req.CropType, req.Language)
	detectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		detectionsTotal.WithLabelValues(outcomeError).Inc()

		switch {
		case errors.Is(err, service.ErrUnknownCrop):
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported crop type")
		case errors.Is(err, imaging.ErrInvalidImage):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid image format")
		case errors.Is(err, service.ErrAnalysisFailed):
			h.logger.Error("disease analysis failed", zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "Disease analysis failed, please retry")
		default:
			h.logger.Error("detection failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to process detection")
		}
	}

	detectionsTotal.WithLabelValues(outcomeOK).Inc()
	return c.JSON(record)
}

// History returns the newest stored detections
func (h *Handler) History(c *fiber.Ctx) error {
	ctx := c.Context()

	userID := c.Query("user_id", domain.DefaultUserID)
	limit := c.QueryInt("limit", domain.HistoryLimit)

	entries, err := h.detectionSvc.History(ctx, userID, limit)
	if err != nil {
		h.logger.Error("history retrieval failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch detection history")
	}

	return c.JSON(entries)
}

// WeatherAdvisory returns weather-derived crop advice for coordinates
func (h *Handler) WeatherAdvisory(c *fiber.Ctx) error {
	ctx := c.Context()

	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing latitude")
	}
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing longitude")
	}
	if !utils.ValidCoordinates(latitude, longitude) {
		return fiber.NewError(fiber.StatusBadRequest, "Coordinates out of range")
	}
	cropType := c.Query("crop_type", "general")

	advisory, err := h.weatherSvc.Advisory(ctx, latitude, longitude)
	if err != nil {
		advisoriesTotal.WithLabelValues(outcomeError).Inc()
		h.logger.Error("weather advisory failed",
			zap.Float64("latitude", latitude),
			zap.Float64("longitude", longitude),
			zap.String("crop_type", cropType),
			zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "Failed to fetch weather data, please retry")
	}

	advisoriesTotal.WithLabelValues(outcomeOK).Inc()
	return c.JSON(advisory)
}

// Crops returns the supported crop catalog and advice languages
func (h *Handler) Crops(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"crops":     domain.Crops,
		"languages": domain.Languages,
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx := c.Context()

	status := "healthy"
	database := "connected"
	if err := h.repo.Health(ctx); err != nil {
		status = "degraded"
		database = "unreachable"
	}

	aiService := "ready"
	if !h.visionSvc.Ready() {
		aiService = "not_configured"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"services": fiber.Map{
			"database":   database,
			"ai_service": aiService,
		},
	})
}
