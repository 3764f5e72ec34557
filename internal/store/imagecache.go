package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ImageCacheTTL is how long a resolved crop image URL stays valid.
const ImageCacheTTL = 7 * 24 * time.Hour

// CachedImageEntry records one resolved crop image.
type CachedImageEntry struct {
	CropName string    `json:"crop_name"`
	URL      string    `json:"url"`
	CachedAt time.Time `json:"cached_at"`
}

// Expired reports whether the entry has outlived the cache TTL.
func (e CachedImageEntry) Expired(now time.Time) bool {
	return now.Sub(e.CachedAt) >= ImageCacheTTL
}

// ImageCache is a file-backed crop name to image URL cache. Entries
// older than ImageCacheTTL are treated as absent.
type ImageCache struct {
	path string

	mu      sync.Mutex
	entries map[string]CachedImageEntry
	now     func() time.Time
}

// NewImageCache creates a cache backed by the given file path, loading
// any existing entries. A missing or corrupt file starts the cache
// empty.
func NewImageCache(path string) *ImageCache {
	c := &ImageCache{
		path:    path,
		entries: make(map[string]CachedImageEntry),
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]CachedImageEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return c
	}
	c.entries = entries
	return c
}

// Get returns the cached URL for a crop if a fresh entry exists.
func (c *ImageCache) Get(cropName string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cropName]
	if !ok || entry.Expired(c.now()) {
		return "", false
	}
	return entry.URL, true
}

// Put stores a resolved URL for a crop with the current timestamp,
// drops expired entries, and persists the cache.
func (c *ImageCache) Put(cropName, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cropName] = CachedImageEntry{
		CropName: cropName,
		URL:      url,
		CachedAt: c.now(),
	}
	c.prune()
	return c.persist()
}

// prune removes expired entries. Callers must hold the lock.
func (c *ImageCache) prune() {
	now := c.now()
	for name, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, name)
		}
	}
}

// persist writes the cache file. Callers must hold the lock.
func (c *ImageCache) persist() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("store: failed to create image cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("store: failed to marshal image cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("store: failed to write image cache: %w", err)
	}

	return nil
}
