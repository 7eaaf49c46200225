package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/renderer/highlight"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the built-in rule tables and themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			reg := highlight.DefaultRegistry()
			for _, lang := range reg.Languages() {
				table, _ := reg.ByLanguage(lang)
				comment := "-"
				if bc, ok := table.BlockComment(); ok {
					comment = bc.Start + " " + bc.End
				}
				if _, err := fmt.Fprintf(out, "%-12s %3d rules  %s\n", lang, table.Len(), comment); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(out, "themes: %s\n", strings.Join(highlight.ThemeNames(), ", "))
			return err
		},
	}
}
