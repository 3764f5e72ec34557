// Package cli implements cropctl, the command line client for the
// crop doctor backend. Commands talk to the HTTP API through
// internal/client and keep device-local state (preferences, caches)
// through internal/store.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/client"
	"github.com/cropdoctor/cropdoctor/internal/store"
)

const (
	preferencesFile    = "preferences.yaml"
	imageCacheFile     = "image_cache.json"
	detectionCacheFile = "detections.json"
)

// options carries the root flags shared by every subcommand.
type options struct {
	serverURL string
	configDir string
	verbose   bool
}

func (o *options) client() *client.Client {
	return client.New(o.serverURL)
}

func (o *options) preferences() *store.PreferenceStore {
	return store.NewPreferenceStore(filepath.Join(o.configDir, preferencesFile))
}

func (o *options) imageCache() *store.ImageCache {
	return store.NewImageCache(filepath.Join(o.configDir, imageCacheFile))
}

func (o *options) detectionCache() *store.DetectionCache {
	return store.NewDetectionCache(filepath.Join(o.configDir, detectionCacheFile))
}

// logger builds an error-only logger so command output stays clean.
// --verbose switches to the full development logger.
func (o *options) logger() *zap.Logger {
	if o.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewRootCmd builds the cropctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cropctl",
		Short: "Crop disease detection client",
		Long: `Cropctl is the command line client for the crop doctor backend.

It photographs nothing itself: point it at a leaf photo and it submits
the image for AI disease analysis, keeps a local history of results,
fetches weather-based crop advice and resolves reference images for
supported crops.

Examples:
  cropctl detect --image leaf.jpg --crop Tomato
  cropctl history --limit 10
  cropctl weather --lat 12.97 --lon 77.59
  cropctl lang kn`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", defaultServerURL(), "Backend API base URL")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", defaultConfigDir(), "Directory for preferences and caches")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		detectCmd(opts),
		historyCmd(opts),
		weatherCmd(opts),
		cropImageCmd(opts),
		cropsCmd(),
		langCmd(opts),
		offlineCmd(opts),
		statusCmd(opts),
	)

	return cmd
}

func defaultServerURL() string {
	if v := os.Getenv("CROPDOCTOR_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func defaultConfigDir() string {
	if v := os.Getenv("CROPDOCTOR_CONFIG_DIR"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cropdoctor"
	}
	return filepath.Join(home, ".cropdoctor")
}
