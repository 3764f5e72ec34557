package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/store"
)

// unreachableServer is a base URL no test backend listens on. Commands
// that should stay local would fail loudly if they dialed it.
const unreachableServer = "http://127.0.0.1:1"

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeImageFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "leaf.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))
	return path
}

func TestDetectCommand(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                     "det-1",
			"disease_name":           "Early Blight",
			"confidence_score":       0.87,
			"crop_type":              "Tomato",
			"treatment_steps":        []string{"Remove affected leaves", "Apply copper fungicide"},
			"fertilizer_suggestions": []string{"Balanced NPK 10-10-10"},
			"prevention_tips":        []string{"Rotate crops yearly"},
			"detection_date":         "2026-08-20T10:30:00Z",
			"image_thumbnail":        "dGh1bWI=",
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	imagePath := writeImageFile(t, dir)

	out, err := runCommand(t, "detect",
		"--server", srv.URL, "--config-dir", dir,
		"--image", imagePath, "--crop", "tomato")
	require.NoError(t, err)

	assert.Equal(t, "/api/detect-disease", gotPath)
	assert.Equal(t, "Tomato", gotBody["crop_type"])
	assert.Equal(t, "en", gotBody["language"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg bytes")), gotBody["image"])

	assert.Contains(t, out, "Disease: Early Blight")
	assert.Contains(t, out, "Confidence: 87% (high)")
	assert.Contains(t, out, "Detected: 2026-08-20 10:30")
	assert.Contains(t, out, "1. Remove affected leaves")
	assert.Contains(t, out, "2. Apply copper fungicide")
	assert.Contains(t, out, "Fertilizer:")
	assert.Contains(t, out, "Prevention:")

	cached := store.NewDetectionCache(filepath.Join(dir, detectionCacheFile)).List()
	require.Len(t, cached, 1)
	assert.Equal(t, "det-1", cached[0].ID)
	assert.Equal(t, "Early Blight", cached[0].DiseaseName)
}

func TestDetectCommandLanguageSelection(t *testing.T) {
	var gotLanguage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotLanguage = body["language"]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":               "det-1",
			"disease_name":     "Blast",
			"confidence_score": 0.8,
			"crop_type":        "Rice",
			"detection_date":   "2026-08-20T10:30:00Z",
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	imagePath := writeImageFile(t, dir)
	prefStore := store.NewPreferenceStore(filepath.Join(dir, preferencesFile))
	require.NoError(t, prefStore.Save(store.Preferences{Language: "kn"}))

	// Saved preference is the default.
	_, err := runCommand(t, "detect",
		"--server", srv.URL, "--config-dir", dir,
		"--image", imagePath, "--crop", "Rice")
	require.NoError(t, err)
	assert.Equal(t, "kn", gotLanguage)

	// An explicit flag wins over the preference.
	_, err = runCommand(t, "detect",
		"--server", srv.URL, "--config-dir", dir,
		"--image", imagePath, "--crop", "Rice", "--lang", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", gotLanguage)
}

func TestDetectCommandOfflineRefused(t *testing.T) {
	dir := t.TempDir()
	imagePath := writeImageFile(t, dir)
	prefStore := store.NewPreferenceStore(filepath.Join(dir, preferencesFile))
	require.NoError(t, prefStore.Save(store.Preferences{Language: "en", OfflineMode: true}))

	_, err := runCommand(t, "detect",
		"--server", unreachableServer, "--config-dir", dir,
		"--image", imagePath, "--crop", "Tomato")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline mode")
}

func TestDetectCommandUnknownCrop(t *testing.T) {
	dir := t.TempDir()

	// The crop is validated before the image file is read.
	_, err := runCommand(t, "detect",
		"--server", unreachableServer, "--config-dir", dir,
		"--image", filepath.Join(dir, "missing.jpg"), "--crop", "Durian")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported crop")
}

func TestHistoryCommandRemote(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": "det-2", "user_id": "default",
				"disease_name": "Early Blight", "confidence_score": 0.87,
				"crop_type": "Tomato", "detection_date": "2026-08-21T09:00:00Z",
			},
			{
				"id": "det-1", "user_id": "default",
				"disease_name": "Blast", "confidence_score": 0.5,
				"crop_type": "Rice", "detection_date": "2026-08-20T09:00:00Z",
			},
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "history",
		"--server", srv.URL, "--config-dir", t.TempDir(), "--limit", "10")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, out, "Early Blight")
	assert.Contains(t, out, "87% (high)")
	assert.Contains(t, out, "50% (medium)")
	assert.Less(t, strings.Index(out, "Early Blight"), strings.Index(out, "Blast"))
}

func TestHistoryCommandLocal(t *testing.T) {
	dir := t.TempDir()
	cache := store.NewDetectionCache(filepath.Join(dir, detectionCacheFile))
	require.NoError(t, cache.Record(domain.DetectionRecord{
		ID: "det-1", DiseaseName: "Blast", ConfidenceScore: 0.5,
		CropType: "Rice", DetectionDate: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, cache.Record(domain.DetectionRecord{
		ID: "det-2", DiseaseName: "Early Blight", ConfidenceScore: 0.87,
		CropType: "Tomato", DetectionDate: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
	}))

	out, err := runCommand(t, "history",
		"--server", unreachableServer, "--config-dir", dir, "--local")
	require.NoError(t, err)

	assert.Contains(t, out, "Early Blight")
	assert.Contains(t, out, "Blast")
	assert.Less(t, strings.Index(out, "Early Blight"), strings.Index(out, "Blast"))
}

func TestHistoryCommandOfflinePreference(t *testing.T) {
	dir := t.TempDir()
	prefStore := store.NewPreferenceStore(filepath.Join(dir, preferencesFile))
	require.NoError(t, prefStore.Save(store.Preferences{Language: "en", OfflineMode: true}))

	out, err := runCommand(t, "history",
		"--server", unreachableServer, "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No detections cached on this device.")
}

func TestWeatherCommand(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"location":          "Bengaluru",
			"temperature":       31.5,
			"humidity":          82.0,
			"weather_condition": "Rain",
			"crop_advice": []string{
				"High humidity: Monitor for fungal diseases",
				"Rainfall detected: Check drainage systems",
			},
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "weather",
		"--server", srv.URL, "--config-dir", t.TempDir(),
		"--lat", "12.97", "--lon", "77.59")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "latitude=12.97")
	assert.Contains(t, gotQuery, "longitude=77.59")
	assert.Contains(t, out, "Location: Bengaluru")
	assert.Contains(t, out, "Temperature: 31.5°C")
	assert.Contains(t, out, "Humidity: 82%")
	assert.Contains(t, out, "Condition: Rain")
	assert.Contains(t, out, "- Rainfall detected: Check drainage systems")
}

func TestWeatherCommandRequiresCoordinates(t *testing.T) {
	_, err := runCommand(t, "weather",
		"--server", unreachableServer, "--config-dir", t.TempDir())
	require.Error(t, err)
}

func TestWeatherCommandRejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := runCommand(t, "weather",
		"--server", unreachableServer, "--config-dir", t.TempDir(),
		"--lat", "91", "--lon", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coordinates out of range")
}

func TestCropsCommand(t *testing.T) {
	out, err := runCommand(t, "crops")
	require.NoError(t, err)

	for _, crop := range domain.Crops {
		assert.Contains(t, out, string(crop))
	}
	assert.Contains(t, out, "Early Blight")
	assert.Contains(t, out, "Kannada")
	assert.Contains(t, out, "Malayalam")
}

func TestLangCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "lang", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "en (English)")

	out, err = runCommand(t, "lang", "kn", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Advice language set to kn (Kannada)")

	out, err = runCommand(t, "lang", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "kn (Kannada)")

	_, err = runCommand(t, "lang", "xx", "--config-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestOfflineCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "offline", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Offline mode is off.")

	out, err = runCommand(t, "offline", "on", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Offline mode on.")

	out, err = runCommand(t, "offline", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Offline mode is on.")

	_, err = runCommand(t, "offline", "maybe", "--config-dir", dir)
	require.Error(t, err)
}

func TestCropImageCommandFromCache(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("PIXABAY_API_KEY", "")

	dir := t.TempDir()
	cache := store.NewImageCache(filepath.Join(dir, imageCacheFile))
	require.NoError(t, cache.Put("Tomato", "https://img.example/tomato.jpg"))

	out, err := runCommand(t, "crop-image", "Tomato", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "https://img.example/tomato.jpg")
}

func TestCropImageCommandNoResult(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("PIXABAY_API_KEY", "")

	out, err := runCommand(t, "crop-image", "Wheat", "--config-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No image available.")
}

func TestCropImageCommandUnknownCrop(t *testing.T) {
	_, err := runCommand(t, "crop-image", "Durian", "--config-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported crop")
}

func TestStatusCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"timestamp": "2026-08-20T10:30:00Z",
			"services": map[string]string{
				"database":   "connected",
				"ai_service": "ready",
			},
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "status",
		"--server", srv.URL, "--config-dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "Status: healthy")
	assert.Contains(t, out, "ai_service: ready")
	assert.Contains(t, out, "database: connected")
}

func TestStatusCommandUnreachable(t *testing.T) {
	_, err := runCommand(t, "status",
		"--server", unreachableServer, "--config-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unreachable")
}
