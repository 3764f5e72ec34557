package domain

import "context"

// DetectionRepository defines the persistence interface for detection
// records. The domain owns the interface; implementations live under
// internal/repository.
type DetectionRepository interface {
	// SaveDetection persists a completed detection record.
	SaveDetection(ctx context.Context, record DetectionRecord) error

	// History returns the newest detections for a user, capped at limit.
	History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)

	// Health checks storage connectivity.
	Health(ctx context.Context) error
}
