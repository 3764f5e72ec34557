package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/imaging"
)

// ErrUnknownCrop reports a crop type outside the supported catalog.
var ErrUnknownCrop = errors.New("service: unknown crop type")

// ErrAnalysisFailed reports that the vision model could not be reached
// or returned an error. Callers may retry.
var ErrAnalysisFailed = errors.New("service: disease analysis failed")

// Analyzer produces a diagnosis for a normalized crop image.
type Analyzer interface {
	Analyze(ctx context.Context, imageB64 string, crop domain.Crop, lang domain.Language) (domain.Diagnosis, error)
}

// DetectionService runs the full detection flow: validate, normalize
// the image, analyze it and persist the record.
type DetectionService struct {
	analyzer Analyzer
	repo     domain.DetectionRepository
	logger   *zap.Logger
}

// NewDetectionService creates a new detection service.
func NewDetectionService(analyzer Analyzer, repo domain.DetectionRepository, logger *zap.Logger) *DetectionService {
	return &DetectionService{
		analyzer: analyzer,
		repo:     repo,
		logger:   logger,
	}
}

// Detect analyzes a base64-encoded crop image and returns the stored
// detection record. Exactly one record is persisted per successful
// call; failures persist nothing.
func (s *DetectionService) Detect(ctx context.Context, image, cropType, language string) (domain.DetectionRecord, error) {
	crop, ok := domain.ParseCrop(cropType)
	if !ok {
		return domain.DetectionRecord{}, fmt.Errorf("%w: %q", ErrUnknownCrop, cropType)
	}

	if strings.TrimSpace(image) == "" {
		return domain.DetectionRecord{}, fmt.Errorf("%w: empty image payload", imaging.ErrInvalidImage)
	}

	normalized, err := imaging.Normalize(image)
	if err != nil {
		return domain.DetectionRecord{}, err
	}

	lang := domain.ParseLanguage(language)

	diagnosis, err := s.analyzer.Analyze(ctx, normalized, crop, lang)
	if err != nil {
		return domain.DetectionRecord{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	diagnosis.Normalize()

	record := domain.DetectionRecord{
		ID:                    uuid.NewString(),
		UserID:                domain.DefaultUserID,
		DiseaseName:           diagnosis.DiseaseName,
		ConfidenceScore:       diagnosis.ConfidenceScore,
		CropType:              string(crop),
		TreatmentSteps:        diagnosis.TreatmentSteps,
		FertilizerSuggestions: diagnosis.FertilizerSuggestions,
		PreventionTips:        diagnosis.PreventionTips,
		DetectionDate:         time.Now().UTC(),
		ImageThumbnail:        normalized,
	}

	if err := s.repo.SaveDetection(ctx, record); err != nil {
		return domain.DetectionRecord{}, fmt.Errorf("service: failed to store detection: %w", err)
	}

	s.logger.Info("disease detected",
		zap.String("crop", record.CropType),
		zap.String("disease", record.DiseaseName),
		zap.Float64("confidence", record.ConfidenceScore))

	return record, nil
}

// History returns the newest detections for a user, capped at the
// history limit. An empty userID means the default user.
func (s *DetectionService) History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if userID == "" {
		userID = domain.DefaultUserID
	}
	if limit <= 0 || limit > domain.HistoryLimit {
		limit = domain.HistoryLimit
	}

	entries, err := s.repo.History(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load history: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}
