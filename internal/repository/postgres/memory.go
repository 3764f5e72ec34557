package postgres

import (
	"context"
	"sync"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// memoryLimit caps records retained in memory mode so a long-running
// keyless demo cannot grow without bound.
const memoryLimit = 500

// MemoryRepository implements domain.DetectionRepository in memory for
// demo mode, when no database is reachable. Records survive only for
// the lifetime of the process.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []domain.DetectionRecord
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// SaveDetection stores the record in memory, newest first
func (r *MemoryRepository) SaveDetection(_ context.Context, record domain.DetectionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]domain.DetectionRecord{record}, r.records...)
	if len(r.records) > memoryLimit {
		r.records = r.records[:memoryLimit]
	}
	return nil
}

// History returns the newest stored detections for a user
func (r *MemoryRepository) History(_ context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.HistoryEntry, 0, limit)
	for _, record := range r.records {
		owner := record.UserID
		if owner == "" {
			owner = domain.DefaultUserID
		}
		if owner != userID {
			continue
		}
		entries = append(entries, domain.HistoryOf(record))
		if len(entries) == limit {
			break
		}
	}

	return entries, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(_ context.Context) error {
	return nil
}
