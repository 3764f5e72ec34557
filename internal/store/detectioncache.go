package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// DetectionCacheLimit caps the locally kept detection history.
const DetectionCacheLimit = 50

// DetectionCache is a file-backed list of the most recent detections,
// newest first. Old entries beyond the limit are dropped, not archived.
type DetectionCache struct {
	path string

	mu      sync.Mutex
	records []domain.DetectionRecord
}

// NewDetectionCache creates a cache backed by the given file path,
// loading any existing records. A missing or corrupt file starts the
// cache empty.
func NewDetectionCache(path string) *DetectionCache {
	c := &DetectionCache{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var records []domain.DetectionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return c
	}
	if len(records) > DetectionCacheLimit {
		records = records[:DetectionCacheLimit]
	}
	c.records = records
	return c
}

// Record prepends a detection, truncates to the limit and persists.
// Re-detecting the same image produces a new distinct entry.
func (c *DetectionCache) Record(record domain.DetectionRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append([]domain.DetectionRecord{record}, c.records...)
	if len(c.records) > DetectionCacheLimit {
		c.records = c.records[:DetectionCacheLimit]
	}
	return c.persist()
}

// List returns the cached detections, newest first.
func (c *DetectionCache) List() []domain.DetectionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.DetectionRecord, len(c.records))
	copy(out, c.records)
	return out
}

// persist writes the cache file. Callers must hold the lock.
func (c *DetectionCache) persist() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("store: failed to create detection cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: failed to marshal detection cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("store: failed to write detection cache: %w", err)
	}

	return nil
}
