package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/app"
	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/renderer/backend"
)

type viewFlags struct {
	readOnly    bool
	noCurLine   bool
	tabWidth    int
	lineNumbers bool
}

func newViewCommand(global *globalFlags) *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Open a file in the interactive viewer",
		Long: `Open FILE in a terminal viewer that highlights the current line and the
bracket pair next to the cursor as you move.

Keys: arrows, Home/End and PgUp/PgDn move; typing, Enter, Backspace and
Delete edit; Ctrl-S saves; Esc, Ctrl-Q or Ctrl-C quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			global.noCurLine = flags.noCurLine
			return runView(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.readOnly, "read-only", false, "reject edits")
	cmd.Flags().BoolVar(&flags.noCurLine, "no-current-line", false, "do not highlight the cursor line")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 4, "display width of a tab stop")
	cmd.Flags().BoolVar(&flags.lineNumbers, "line-numbers", true, "show line numbers")

	return cmd
}

func runView(cmd *cobra.Command, path string, global *globalFlags, flags *viewFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, cmd, global)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		content, err = nil, nil
	}
	if err != nil {
		return err
	}

	var extra []engine.Option
	if flags.readOnly {
		extra = append(extra, engine.WithReadOnly())
	}
	eng, err := s.newEngine(path, content, extra...)
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return err
	}
	viewer, err := app.New(term, eng, app.Options{
		Path:        path,
		TabWidth:    flags.tabWidth,
		LineNumbers: flags.lineNumbers,
		Logger:      s.logger,
	})
	if err != nil {
		return err
	}
	return viewer.Run(ctx)
}
