package engine

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/linemark/internal/renderer/bracket"
	"github.com/dshills/linemark/internal/renderer/highlight"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithRules sets the rule table. The default is the cpp table.
func WithRules(table *highlight.RuleTable) Option {
	return func(e *Engine) {
		if table != nil {
			e.table = table
		}
	}
}

// WithTheme sets the theme used for highlight styles.
func WithTheme(theme *highlight.Theme) Option {
	return func(e *Engine) {
		if theme != nil {
			e.theme = theme
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAdjacency sets the bracket adjacency mode.
func WithAdjacency(a bracket.Adjacency) Option {
	return func(e *Engine) {
		e.adjacency = a
	}
}

// WithCurrentLine enables or disables the current-line highlight.
func WithCurrentLine(enabled bool) Option {
	return func(e *Engine) {
		e.currentLine = enabled
	}
}

// WithEagerAnnotation annotates the whole document at creation instead of
// on first access.
func WithEagerAnnotation() Option {
	return func(e *Engine) {
		e.eager = true
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly, and no current-line highlight
// is produced.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
