package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/pkg/utils"
)

func weatherCmd(opts *options) *cobra.Command {
	var (
		lat  float64
		lon  float64
		crop string
	)

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch weather-based crop advice",
		Long: `Fetch current weather for coordinates and the crop care advice
derived from it.

Examples:
  cropctl weather --lat 12.97 --lon 77.59
  cropctl weather --lat 12.97 --lon 77.59 --crop Tomato`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !utils.ValidCoordinates(lat, lon) {
				return errors.New("coordinates out of range")
			}

			advisory, err := opts.client().WeatherAdvisory(cmd.Context(), lat, lon, crop)
			if err != nil {
				return err
			}
			renderAdvisory(cmd.OutOrStdout(), advisory)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&crop, "crop", "general", "Crop type the advice is for")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}
