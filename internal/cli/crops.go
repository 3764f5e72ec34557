package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

func cropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crops",
		Short: "List supported crops and advice languages",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Supported crops:")
			for _, crop := range domain.Crops {
				fmt.Fprintf(out, "  %-12s %s\n", crop, strings.Join(domain.CommonDiseases[crop], ", "))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Advice languages:")
			for _, lang := range domain.Languages {
				fmt.Fprintf(out, "  %-3s %s\n", lang, lang.Name())
			}
		},
	}
}
