package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/resolver"
)

func cropImageCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop-image <crop>",
		Short: "Resolve a reference photo URL for a crop",
		Long: `Resolve a reference photo URL for a supported crop.

Resolved URLs are cached on-device for a week. Fresh lookups go to
Pexels (PEXELS_API_KEY) and then Pixabay (PIXABAY_API_KEY); providers
without a key are skipped. In offline mode only the cache is consulted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			crop, ok := domain.ParseCrop(args[0])
			if !ok {
				return fmt.Errorf("unsupported crop %q; run 'cropctl crops' for the catalog", args[0])
			}

			prefs := opts.preferences().Load()
			var providers []resolver.Provider
			if !prefs.OfflineMode {
				providers = append(providers,
					resolver.NewPexelsProvider(os.Getenv("PEXELS_API_KEY")),
					resolver.NewPixabayProvider(os.Getenv("PIXABAY_API_KEY")),
				)
			}

			logger := opts.logger()
			defer func() { _ = logger.Sync() }()

			r := resolver.New(opts.imageCache(), logger, providers...)
			url := r.Resolve(cmd.Context(), string(crop))
			if url == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No image available.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	return cmd
}
