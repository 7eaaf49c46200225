package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/engine"
)

type annotateFlags struct {
	format string
	line   int
	col    int
}

func newAnnotateCommand(global *globalFlags) *cobra.Command {
	flags := &annotateFlags{}

	cmd := &cobra.Command{
		Use:   "annotate FILE",
		Short: "Print the annotation of every line of a file",
		Long: `Annotate FILE and print each line with its style spans, bracket markers
and comment state.

The text format colors the source when writing to a terminal (see --color)
and otherwise lists spans as [start,end) byte ranges. --line and --col
place a cursor and include the matched bracket pair, if any.

Examples:
  linemark annotate main.c
  linemark annotate --format yaml main.c
  linemark annotate --line 3 --col 10 main.c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, yaml, json")
	cmd.Flags().IntVar(&flags.line, "line", 0, "cursor line (1-based)")
	cmd.Flags().IntVar(&flags.col, "col", 0, "cursor byte column (1-based)")
	cmd.MarkFlagsRequiredTogether("line", "col")

	return cmd
}

func runAnnotate(cmd *cobra.Command, path string, global *globalFlags, flags *annotateFlags) error {
	switch flags.format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("invalid --format %q: want text, yaml or json", flags.format)
	}

	s, err := newSession(cmd.Context(), cmd, global)
	if err != nil {
		return err
	}
	eng, err := s.openEngine(path, engine.WithEagerAnnotation(), engine.WithReadOnly())
	if err != nil {
		return err
	}

	r := buildReport(path, eng)

	var pair *engine.Pair
	if cmd.Flags().Changed("line") {
		p, err := cursorPoint(flags.line, flags.col)
		if err != nil {
			return err
		}
		if err := checkPoint(eng, p); err != nil {
			return err
		}
		if found, ok := eng.MatchAt(p); ok {
			pair = &found
			r.Match = newPairReport(found)
		}
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case FormatYAML:
		return writeYAML(out, r)
	case FormatJSON:
		return writeJSON(out, r)
	}

	color, err := colorEnabled(global.color, out)
	if err != nil {
		return err
	}
	printer := newTextPrinter(out, eng.Theme(), color)
	if color {
		err = printer.printColored(eng, r, pair)
	} else {
		err = printer.printPlain(r)
	}
	if err != nil {
		return err
	}
	if r.Match != nil {
		_, err = fmt.Fprintf(out, "match %s\n", r.Match)
	}
	return err
}
