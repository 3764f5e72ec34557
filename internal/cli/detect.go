package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/client"
	"github.com/cropdoctor/cropdoctor/internal/domain"
)

func detectCmd(opts *options) *cobra.Command {
	var (
		imagePath string
		cropName  string
		langCode  string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Analyze a leaf photo for crop disease",
		Long: `Submit a leaf photo for AI disease analysis.

The diagnosis is printed with treatment, fertilizer and prevention
advice and recorded in the on-device history. The advice language
defaults to the saved preference (see 'cropctl lang').

Examples:
  cropctl detect --image leaf.jpg --crop Tomato
  cropctl detect --image leaf.jpg --crop Rice --lang kn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := opts.preferences().Load()
			if prefs.OfflineMode {
				return errors.New("offline mode is on; run 'cropctl offline off' to enable detection")
			}

			crop, ok := domain.ParseCrop(cropName)
			if !ok {
				return fmt.Errorf("unsupported crop %q; run 'cropctl crops' for the catalog", cropName)
			}

			language := prefs.Language
			if langCode != "" {
				language = string(domain.ParseLanguage(langCode))
			}

			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			encoded := base64.StdEncoding.EncodeToString(data)

			record, err := opts.client().DetectDisease(cmd.Context(), encoded, string(crop), language)
			if err != nil {
				if errors.Is(err, client.ErrTimeout) {
					return errors.New("analysis timed out; the same photo can be resubmitted")
				}
				return err
			}

			if err := opts.detectionCache().Record(record); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: detection not saved to local history: %v\n", err)
			}

			renderDetection(cmd.OutOrStdout(), record)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Path to the leaf photo (JPEG or PNG)")
	cmd.Flags().StringVar(&cropName, "crop", "", "Crop type, e.g. Tomato")
	cmd.Flags().StringVar(&langCode, "lang", "", "Advice language code (default: saved preference)")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("crop")

	return cmd
}
