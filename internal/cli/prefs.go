package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropdoctor/cropdoctor/internal/domain"
)

func langCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lang [code]",
		Short: "Show or set the advice language",
		Long: `Show the saved advice language, or set it to one of the supported
codes: ` + languageCodes() + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefStore := opts.preferences()
			prefs := prefStore.Load()

			if len(args) == 0 {
				lang := domain.ParseLanguage(prefs.Language)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lang, lang.Name())
				return nil
			}

			code := strings.ToLower(strings.TrimSpace(args[0]))
			if !supportedLanguage(code) {
				return fmt.Errorf("unsupported language %q; choose one of %s", args[0], languageCodes())
			}

			prefs.Language = code
			if err := prefStore.Save(prefs); err != nil {
				return err
			}

			lang := domain.Language(code)
			fmt.Fprintf(cmd.OutOrStdout(), "Advice language set to %s (%s)\n", lang, lang.Name())
			return nil
		},
	}
}

func offlineCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "offline [on|off]",
		Short: "Show or toggle offline mode",
		Long: `Show or toggle offline mode.

When offline mode is on, detection is refused, history reads the
on-device cache and crop-image lookups skip the photo providers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefStore := opts.preferences()
			prefs := prefStore.Load()

			if len(args) == 0 {
				state := "off"
				if prefs.OfflineMode {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Offline mode is %s.\n", state)
				return nil
			}

			switch args[0] {
			case "on":
				prefs.OfflineMode = true
			case "off":
				prefs.OfflineMode = false
			default:
				return fmt.Errorf("expected \"on\" or \"off\", got %q", args[0])
			}

			if err := prefStore.Save(prefs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Offline mode %s.\n", args[0])
			return nil
		},
	}
}

func supportedLanguage(code string) bool {
	for _, lang := range domain.Languages {
		if string(lang) == code {
			return true
		}
	}
	return false
}

func languageCodes() string {
	codes := make([]string, len(domain.Languages))
	for i, lang := range domain.Languages {
		codes[i] = string(lang)
	}
	return strings.Join(codes, ", ")
}
