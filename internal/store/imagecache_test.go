package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCacheMissWhenEmpty(t *testing.T) {
	c := NewImageCache(filepath.Join(t.TempDir(), "images.json"))

	_, ok := c.Get("Tomato")
	assert.False(t, ok)
}

func TestImageCachePutGet(t *testing.T) {
	c := NewImageCache(filepath.Join(t.TempDir(), "images.json"))

	require.NoError(t, c.Put("Tomato", "https://img.example/tomato.jpg"))

	url, ok := c.Get("Tomato")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/tomato.jpg", url)
}

func TestImageCachePersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "images.json")

	c := NewImageCache(path)
	require.NoError(t, c.Put("Rice", "https://img.example/rice.jpg"))

	reloaded := NewImageCache(path)
	url, ok := reloaded.Get("Rice")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/rice.jpg", url)
}

func TestImageCacheExpiry(t *testing.T) {
	c := NewImageCache(filepath.Join(t.TempDir(), "images.json"))

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Put("Wheat", "https://img.example/wheat.jpg"))

	// Just inside the TTL.
	c.now = func() time.Time { return base.Add(ImageCacheTTL - time.Minute) }
	_, ok := c.Get("Wheat")
	assert.True(t, ok)

	// At the TTL boundary the entry counts as expired.
	c.now = func() time.Time { return base.Add(ImageCacheTTL) }
	_, ok = c.Get("Wheat")
	assert.False(t, ok)
}

func TestImageCachePruneOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")

	c := NewImageCache(path)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Put("Wheat", "https://img.example/wheat.jpg"))

	// A later write drops the expired Wheat entry from the file.
	c.now = func() time.Time { return base.Add(ImageCacheTTL + time.Hour) }
	require.NoError(t, c.Put("Rice", "https://img.example/rice.jpg"))

	reloaded := NewImageCache(path)
	reloaded.now = c.now
	_, ok := reloaded.Get("Wheat")
	assert.False(t, ok)
	url, ok := reloaded.Get("Rice")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/rice.jpg", url)

	// The raw file no longer carries the expired entry at all.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Wheat")
}

func TestImageCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	c := NewImageCache(path)
	_, ok := c.Get("Tomato")
	assert.False(t, ok)

	// The cache stays usable after a corrupt load.
	require.NoError(t, c.Put("Tomato", "https://img.example/tomato.jpg"))
	url, ok := c.Get("Tomato")
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/tomato.jpg", url)
}
