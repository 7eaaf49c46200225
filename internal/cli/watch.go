package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/project/watcher"
)

type watchFlags struct {
	format   string
	debounce time.Duration
}

func newWatchCommand(global *globalFlags) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-annotate a file every time it changes",
		Long: `Print the annotation of FILE, then print it again whenever the file is
written. Bursts of events from a single save are coalesced. Stop with
Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", FormatText, "output format: text, yaml, json")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watcher.DefaultConfig().DebounceDelay, "quiet period before re-annotating")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, global *globalFlags, flags *watchFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, cmd, global)
	if err != nil {
		return err
	}
	eng, err := s.openEngine(path, engine.WithReadOnly())
	if err != nil {
		return err
	}

	color, err := colorEnabled(global.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	mon := &monitor{
		path:   path,
		eng:    eng,
		out:    cmd.OutOrStdout(),
		format: flags.format,
		color:  color,
		logger: s.logger,
		read:   os.ReadFile,
	}
	if err := mon.print(); err != nil {
		return err
	}

	w, err := watcher.NewDebounced(watcher.WithDebounceDelay(flags.debounce))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Watch(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	s.logger.Info("watching", logging.FieldPath, path)

	err = watcher.Run(ctx, w, mon.handle, func(err error) {
		s.logger.Warn("watch error", logging.FieldError, err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// monitor re-annotates one file on change events.
type monitor struct {
	path   string
	eng    *engine.Engine
	out    io.Writer
	format string
	color  bool
	logger *log.Logger
	read   func(string) ([]byte, error)
}

// handle reloads the file for content events. A removal is logged and
// otherwise ignored, since an editor's rename-into-place save produces a
// create right after it.
func (m *monitor) handle(ev watcher.Event) error {
	if !ev.Op.Changed() {
		if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
			m.logger.Warn("file went away", logging.FieldPath, m.path)
		}
		return nil
	}

	data, err := m.read(m.path)
	if err != nil {
		m.logger.Warn("reload failed", logging.FieldPath, m.path, logging.FieldError, err)
		return nil
	}
	if string(data) == m.eng.Text() {
		return nil
	}
	m.eng.Reload(string(data))
	m.logger.Info("reannotated", logging.FieldLines, m.eng.LineCount())
	return m.print()
}

func (m *monitor) print() error {
	r := buildReport(m.path, m.eng)
	switch m.format {
	case FormatYAML:
		return writeYAML(m.out, r)
	case FormatJSON:
		return writeJSON(m.out, r)
	case FormatText:
		printer := newTextPrinter(m.out, m.eng.Theme(), m.color)
		if _, err := fmt.Fprintf(m.out, "== %s (%d lines)\n", m.path, len(r.Lines)); err != nil {
			return err
		}
		if m.color {
			return printer.printColored(m.eng, r, nil)
		}
		return printer.printPlain(r)
	default:
		return fmt.Errorf("invalid --format %q: want text, yaml or json", m.format)
	}
}
