package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/engine"
)

type matchFlags struct {
	line   int
	col    int
	offset int
	format string
}

func newMatchCommand(global *globalFlags) *cobra.Command {
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match FILE",
		Short: "Find the bracket matching the one next to a cursor",
		Long: `Place a cursor in FILE and print the positions of the matched bracket
pair as "OPEN_LINE:OPEN_COL CLOSE_LINE:CLOSE_COL" (1-based).

The cursor is given either as --line and --col or as a byte --offset.
With the default "after" adjacency only the bracket just before the cursor
counts; --adjacency either also considers the one under it.

Exits with status 2 when there is no match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().IntVar(&flags.line, "line", 0, "cursor line (1-based)")
	cmd.Flags().IntVar(&flags.col, "col", 0, "cursor byte column (1-based)")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "cursor as an absolute byte offset (0-based)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, yaml, json")
	cmd.MarkFlagsRequiredTogether("line", "col")
	cmd.MarkFlagsMutuallyExclusive("line", "offset")
	cmd.MarkFlagsOneRequired("line", "offset")

	return cmd
}

func runMatch(cmd *cobra.Command, path string, global *globalFlags, flags *matchFlags) error {
	s, err := newSession(cmd.Context(), cmd, global)
	if err != nil {
		return err
	}
	eng, err := s.openEngine(path, engine.WithReadOnly())
	if err != nil {
		return err
	}

	var (
		pair engine.Pair
		ok   bool
	)
	if cmd.Flags().Changed("offset") {
		pair, ok, err = eng.MatchOffset(flags.offset)
		if err != nil {
			return fmt.Errorf("--offset %d: %w", flags.offset, err)
		}
	} else {
		p, err := cursorPoint(flags.line, flags.col)
		if err != nil {
			return err
		}
		if err := checkPoint(eng, p); err != nil {
			return err
		}
		pair, ok = eng.MatchAt(p)
	}
	if !ok {
		return ErrNoMatch
	}

	r := newPairReport(pair)
	out := cmd.OutOrStdout()
	switch flags.format {
	case FormatYAML:
		return writeYAML(out, r)
	case FormatJSON:
		return writeJSON(out, r)
	case FormatText:
		_, err = fmt.Fprintln(out, r)
		return err
	default:
		return fmt.Errorf("invalid --format %q: want text, yaml or json", flags.format)
	}
}
