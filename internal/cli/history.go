package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/domain"
	"github.com/cropdoctor/cropdoctor/internal/store"
)

func historyCmd(opts *options) *cobra.Command {
	var (
		limit int
		local bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent disease detections",
		Long: `List recent detections, newest first.

By default the server history is shown. With --local, or when offline
mode is on, the on-device cache is listed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := opts.preferences().Load()
			if local || prefs.OfflineMode {
				return renderLocalHistory(cmd.OutOrStdout(), opts.detectionCache(), limit)
			}

			entries, err := opts.client().History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No detections yet.")
				return nil
			}
			for _, entry := range entries {
				renderHistoryLine(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.HistoryLimit, "Maximum entries to show")
	cmd.Flags().BoolVar(&local, "local", false, "Read the on-device cache instead of the server")

	return cmd
}

func renderLocalHistory(w io.Writer, cache *store.DetectionCache, limit int) error {
	records := cache.List()
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No detections cached on this device.")
		return nil
	}
	for _, record := range records {
		renderHistoryLine(w, domain.HistoryOf(record))
	}
	return nil
}
