package engine

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dshills/linemark/internal/engine/document"
	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/renderer/bracket"
	"github.com/dshills/linemark/internal/renderer/highlight"
	"github.com/dshills/linemark/internal/renderer/selection"
)

// Re-export commonly used types for convenience.
type (
	// Point is a line and byte column.
	Point = document.Point

	// LineRange is a half-open range of lines.
	LineRange = document.LineRange

	// LineEnding is the line break sequence Text uses.
	LineEnding = document.LineEnding

	// Change describes the lines an edit touched.
	Change = document.Change

	// Pair is a matched bracket pair.
	Pair = bracket.Pair

	// Highlight is one transient highlight range.
	Highlight = selection.Highlight
)

// Edit replaces the text between Start and End with Text.
// Start == End is an insertion; an empty Text is a deletion.
type Edit struct {
	Start Point
	End   Point
	Text  string
}

// EditResult reports the outcome of an applied edit.
type EditResult struct {
	// End is the point just after the inserted text. The cursor is moved there.
	End Point

	// Change is the line bookkeeping of the edit.
	Change Change
}

// Engine is the annotation engine facade.
type Engine struct {
	mu sync.Mutex

	id         uuid.UUID
	doc        *document.Document
	matcher    *bracket.Matcher
	theme      *highlight.Theme
	table      *highlight.RuleTable
	highlights *selection.Set
	logger     *log.Logger
	cursor     Point

	// Configuration captured from options
	initContent string
	adjacency   bracket.Adjacency
	currentLine bool
	readOnly    bool
	eager       bool
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:          uuid.New(),
		table:       highlight.CppRules(),
		theme:       highlight.DefaultTheme(),
		logger:      logging.Discard(),
		adjacency:   bracket.AdjacentBefore,
		currentLine: true,
		highlights:  selection.NewSet(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With(logging.FieldSession, e.id.String())
	e.matcher = bracket.New(bracket.WithAdjacency(e.adjacency))
	e.doc = document.New(highlight.NewAnnotator(e.table), e.initContent)
	e.initContent = ""
	if e.eager {
		e.doc.AnnotateAll()
	}

	e.logger.Info("engine created",
		logging.FieldLanguage, e.table.Language(),
		logging.FieldRules, e.table.Len(),
		logging.FieldTheme, e.theme.Name,
		logging.FieldAdjacency, e.adjacency.String(),
		logging.FieldLines, e.doc.LineCount(),
	)

	e.refreshLocked()
	return e
}

// ID returns the session identifier of the engine.
func (e *Engine) ID() string {
	return e.id.String()
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Theme returns the theme in use.
func (e *Engine) Theme() *highlight.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// SetTheme switches the theme and restyles the highlight set.
func (e *Engine) SetTheme(theme *highlight.Theme) {
	if theme == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = theme
	e.refreshLocked()
}

// Rules returns the rule table in use.
func (e *Engine) Rules() *highlight.RuleTable {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table
}

// SetRules switches the rule table. Every line is annotated again on demand.
func (e *Engine) SetRules(table *highlight.RuleTable) {
	if table == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table = table
	e.doc.SetAnnotator(highlight.NewAnnotator(table))
	e.logger.Info("rule table changed",
		logging.FieldLanguage, table.Language(),
		logging.FieldRules, table.Len(),
	)
	e.refreshLocked()
}

// Text returns the full content.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.LineCount()
}

// LineText returns the text of a line.
func (e *Engine) LineText(line int) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Line(line)
}

// Spans returns the style spans of a line.
func (e *Engine) Spans(line int) []highlight.StyleSpan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Spans(line)
}

// Block returns the bracket annotation of a line.
func (e *Engine) Block(line int) (highlight.BlockAnnotation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Block(line)
}

// ExitState returns the comment state at the end of a line.
func (e *Engine) ExitState(line int) highlight.CommentState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.ExitState(line)
}

// Line endings.
const (
	LineEndingLF   = document.LineEndingLF
	LineEndingCRLF = document.LineEndingCRLF
)

// LineEnding returns the line ending detected when the text was set.
func (e *Engine) LineEnding() LineEnding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.LineEnding()
}

// Annotated returns the number of leading lines with current annotation.
func (e *Engine) Annotated() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Annotated()
}

// SetText replaces the whole content and moves the cursor to the start.
func (e *Engine) SetText(text string) (LineRange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return LineRange{}, ErrReadOnly
	}
	r := e.doc.SetText(text)
	if e.eager {
		e.doc.AnnotateAll()
	}
	e.cursor = Point{}
	e.logger.Debug("text replaced", logging.FieldLines, r.Len())
	e.refreshLocked()
	return r, nil
}

// Reload replaces the whole content with text read back from the
// backing file. Unlike SetText it is allowed on a read-only engine. The
// cursor is clamped rather than reset.
func (e *Engine) Reload(text string) LineRange {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.doc.SetText(text)
	if e.eager {
		e.doc.AnnotateAll()
	}
	e.cursor = e.doc.Clamp(e.cursor)
	e.logger.Debug("text reloaded", logging.FieldLines, r.Len())
	e.refreshLocked()
	return r
}

// ApplyEdit applies one edit, moves the cursor to its end and recomputes
// the highlight set.
func (e *Engine) ApplyEdit(edit Edit) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return EditResult{}, ErrReadOnly
	}

	end, change, err := e.doc.Replace(edit.Start, edit.End, edit.Text)
	if err != nil {
		return EditResult{}, err
	}

	e.logger.Debug("edit applied",
		logging.FieldLine, edit.Start.Line,
		logging.FieldEdited, change.Edited.Len(),
		logging.FieldReannotated, change.Reannotated.Len(),
	)

	e.cursor = end
	e.refreshLocked()
	return EditResult{End: end, Change: change}, nil
}

// Insert inserts text at p.
func (e *Engine) Insert(p Point, text string) (EditResult, error) {
	return e.ApplyEdit(Edit{Start: p, End: p, Text: text})
}

// Delete removes the text between start and end.
func (e *Engine) Delete(start, end Point) (EditResult, error) {
	return e.ApplyEdit(Edit{Start: start, End: end})
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// MoveCursor moves the cursor to the nearest valid point to p, recomputes
// the highlight set and returns the new position.
func (e *Engine) MoveCursor(p Point) Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.doc.Clamp(p)
	e.refreshLocked()
	return e.cursor
}

// MoveCursorOffset moves the cursor to an absolute byte offset.
func (e *Engine) MoveCursorOffset(offset int) (Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.doc.OffsetToPoint(offset)
	if err != nil {
		return e.cursor, err
	}
	e.cursor = e.doc.Clamp(p)
	e.refreshLocked()
	return e.cursor, nil
}

// Offset returns the absolute byte offset of the cursor.
func (e *Engine) Offset() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	off, _ := e.doc.PointToOffset(e.cursor)
	return off
}

// Match returns the bracket pair adjacent to the cursor.
func (e *Engine) Match() (Pair, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matchLocked(e.cursor)
}

// MatchAt returns the bracket pair adjacent to p without moving the cursor.
func (e *Engine) MatchAt(p Point) (Pair, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matchLocked(p)
}

// MatchOffset returns the bracket pair adjacent to an absolute byte offset.
func (e *Engine) MatchOffset(offset int) (Pair, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := e.doc.OffsetToPoint(offset)
	if err != nil {
		return Pair{}, false, err
	}
	pair, ok := e.matchLocked(p)
	return pair, ok, nil
}

func (e *Engine) matchLocked(p Point) (Pair, bool) {
	return e.matcher.Match(e.doc, bracket.Position{Line: p.Line, Column: p.Column})
}

// Highlights returns the current highlight set: the current line (unless
// disabled or read-only) followed by zero or two bracket highlights.
func (e *Engine) Highlights() []Highlight {
	return e.highlights.All()
}

// HighlightSet returns the live highlight set for renderers.
func (e *Engine) HighlightSet() *selection.Set {
	return e.highlights
}

// refreshLocked rebuilds the highlight set for the current cursor.
func (e *Engine) refreshLocked() {
	hs := make([]Highlight, 0, 3)
	if e.currentLine && !e.readOnly {
		hs = append(hs, selection.CurrentLine(e.cursor.Line, e.theme.CurrentLineStyle()))
	}
	if pair, ok := e.matchLocked(e.cursor); ok {
		style := e.theme.BracketStyle()
		hs = append(hs,
			selection.Bracket(pair.Open.Line, pair.Open.Column, style),
			selection.Bracket(pair.Close.Line, pair.Close.Column, style),
		)
		e.logger.Debug("bracket matched",
			logging.FieldOpen, pair.Open,
			logging.FieldClose, pair.Close,
		)
	}
	e.highlights.Replace(hs...)
}
