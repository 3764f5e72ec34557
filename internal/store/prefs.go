// Package store persists client-side state: user preferences, resolved
// crop-image URLs and the local detection history. Each store owns one
// file and tolerates a missing or corrupt one by falling back to safe
// defaults.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// Preferences holds process-wide user settings.
type Preferences struct {
	// Language is the advice language code (e.g. "en", "kn").
	Language string `yaml:"language"`
	// OfflineMode keeps commands on local data: detection is refused,
	// history reads the local cache and image resolution skips the
	// search providers.
	OfflineMode bool `yaml:"offline_mode"`
}

// DefaultPreferences returns the safe startup defaults.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:    string(domain.LangEnglish),
		OfflineMode: false,
	}
}

// PreferenceStore reads and writes preferences as a YAML file.
type PreferenceStore struct {
	path string
}

// NewPreferenceStore creates a store backed by the given file path.
func NewPreferenceStore(path string) *PreferenceStore {
	return &PreferenceStore{path: path}
}

// Load reads preferences from disk. A missing or unreadable file
// yields the defaults; an unknown language code is reset to English.
func (s *PreferenceStore) Load() Preferences {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return prefs
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences()
	}

	prefs.Language = string(domain.ParseLanguage(prefs.Language))
	return prefs
}

// Save writes preferences to disk, creating parent directories as
// needed.
func (s *PreferenceStore) Save(prefs Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: failed to create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("store: failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: failed to write preferences: %w", err)
	}

	return nil
}
