package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/linemark/internal/config"
	"github.com/dshills/linemark/internal/config/loader"
	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/renderer/highlight"
)

// session is the resolved configuration and logger of one command run.
type session struct {
	cfg    *config.Config
	logger *log.Logger
}

// newSession loads configuration in precedence order (defaults, file,
// environment, flags) and validates it.
func newSession(ctx context.Context, cmd *cobra.Command, flags *globalFlags) (*session, error) {
	path := flags.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.Discover(loader.DefaultFS(), wd)
		}
	}

	cfg := config.New(config.WithFile(path))
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overrides := []struct {
		flag string
		path string
		val  string
	}{
		{"log-level", "logging.level", flags.logLevel},
		{"theme", "highlight.theme", flags.theme},
		{"language", "highlight.language", flags.language},
		{"adjacency", "brackets.adjacency", flags.adjacency},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := cfg.Set(o.path, o.val); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("no-current-line"); f != nil && f.Changed {
		if err := cfg.Set("editor.currentLine", !flags.noCurLine); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging().Level)
	logging.SetDefault(logger)
	if p := cfg.Path(); p != "" {
		logger.Debug("config loaded", logging.FieldPath, p)
	}

	return &session{cfg: cfg, logger: logger}, nil
}

// openEngine reads path and builds an engine configured for it.
func (s *session) openEngine(path string, extra ...engine.Option) (*engine.Engine, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.newEngine(path, content, extra...)
}

func (s *session) newEngine(path string, content []byte, extra ...engine.Option) (*engine.Engine, error) {
	table, err := s.cfg.RuleTable(highlight.DefaultRegistry(), filepath.Base(path), content)
	if err != nil {
		return nil, err
	}
	theme, err := s.cfg.Theme()
	if err != nil {
		return nil, err
	}
	adjacency, err := s.cfg.Adjacency()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithContent(string(content)),
		engine.WithRules(table),
		engine.WithTheme(theme),
		engine.WithAdjacency(adjacency),
		engine.WithCurrentLine(s.cfg.Editor().CurrentLine),
		engine.WithLogger(s.logger.With(logging.FieldPath, path)),
	}
	return engine.New(append(opts, extra...)...), nil
}

// cursorPoint converts 1-based --line/--col values to an engine point.
func cursorPoint(line, col int) (engine.Point, error) {
	if line < 1 || col < 1 {
		return engine.Point{}, fmt.Errorf("--line and --col are 1-based, got %d:%d", line, col)
	}
	return engine.Point{Line: line - 1, Column: col - 1}, nil
}

// checkPoint rejects points outside the engine's text.
func checkPoint(eng *engine.Engine, p engine.Point) error {
	text, ok := eng.LineText(p.Line)
	if !ok {
		return fmt.Errorf("line %d out of range: file has %d lines", p.Line+1, eng.LineCount())
	}
	if p.Column > len(text) {
		return fmt.Errorf("column %d: %w: line %d has %d bytes", p.Column+1, engine.ErrColumnOutOfRange, p.Line+1, len(text))
	}
	if p.Column < len(text) && !utf8.RuneStart(text[p.Column]) {
		return fmt.Errorf("column %d: %w: inside a multi-byte character", p.Column+1, engine.ErrColumnOutOfRange)
	}
	return nil
}
