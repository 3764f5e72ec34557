package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/client"
)

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := opts.client().Health(cmd.Context())
			if err != nil {
				if errors.Is(err, client.ErrTimeout) {
					return errors.New("backend unreachable: request timed out")
				}
				return fmt.Errorf("backend unreachable: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", health.Status)

			names := make([]string, 0, len(health.Services))
			for name := range health.Services {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %s\n", name, health.Services[name])
			}
			return nil
		},
	}
}
