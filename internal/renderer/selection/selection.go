// Package selection holds transient highlight ranges: view state that is
// recomputed on every cursor move and never stored in the document.
package selection

import (
	"sort"
	"sync"

	"github.com/dshills/linemark/internal/renderer/core"
)

// Type represents the type of a range.
type Type uint8

const (
	// TypeNormal is a character range.
	TypeNormal Type = iota
	// TypeLine covers whole lines regardless of columns.
	TypeLine
)

// String returns the string representation of a range type.
func (t Type) String() string {
	switch t {
	case TypeLine:
		return "line"
	default:
		return "normal"
	}
}

// Kind says what produced a highlight.
type Kind uint8

const (
	// KindCurrentLine marks the line holding the cursor.
	KindCurrentLine Kind = iota
	// KindBracket marks one bracket of a matched pair.
	KindBracket
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCurrentLine:
		return "current-line"
	case KindBracket:
		return "bracket"
	default:
		return "unknown"
	}
}

// Position is a line and byte column.
type Position struct {
	Line   int
	Column int
}

// Range is a highlighted region. End is exclusive.
type Range struct {
	Start Position
	End   Position
	Type  Type
}

// IsEmpty returns true if the range selects nothing.
// Line ranges are never empty.
func (r Range) IsEmpty() bool {
	if r.Type == TypeLine {
		return false
	}
	return r.Start == r.End
}

// Normalize returns a range where Start is never after End.
func (r Range) Normalize() Range {
	if r.Start.Line > r.End.Line ||
		(r.Start.Line == r.End.Line && r.Start.Column > r.End.Column) {
		return Range{Start: r.End, End: r.Start, Type: r.Type}
	}
	return r
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(line, col int) bool {
	if r.IsEmpty() {
		return false
	}
	norm := r.Normalize()
	if line < norm.Start.Line || line > norm.End.Line {
		return false
	}
	if r.Type == TypeLine {
		return true
	}
	if line == norm.Start.Line && col < norm.Start.Column {
		return false
	}
	if line == norm.End.Line && col >= norm.End.Column {
		return false
	}
	return true
}

// Highlight is a styled range.
type Highlight struct {
	Range Range
	Style core.Style
	Kind  Kind
}

// CurrentLine returns the full-width highlight of line.
func CurrentLine(line int, style core.Style) Highlight {
	return Highlight{
		Range: Range{
			Start: Position{Line: line},
			End:   Position{Line: line},
			Type:  TypeLine,
		},
		Style: style,
		Kind:  KindCurrentLine,
	}
}

// Bracket returns a one-character highlight at line, col.
func Bracket(line, col int, style core.Style) Highlight {
	return Highlight{
		Range: Range{
			Start: Position{Line: line, Column: col},
			End:   Position{Line: line, Column: col + 1},
		},
		Style: style,
		Kind:  KindBracket,
	}
}

// LineSelection is a range's intersection with one line.
type LineSelection struct {
	// StartCol is the first byte column covered.
	StartCol int
	// EndCol is the exclusive end column. Ignored when SelectToEnd is set.
	EndCol int
	// SelectToEnd means the highlight runs to the edge of the view.
	SelectToEnd bool
	// Style is the highlight's style.
	Style core.Style
	// Kind is the highlight's kind.
	Kind Kind
}

// Set is the complete group of transient highlights for one cursor
// position. A Set is replaced wholesale, never patched.
type Set struct {
	mu         sync.RWMutex
	highlights []Highlight
	generation uint64
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{}
}

// Replace swaps in a new group of highlights. Bracket highlights are kept
// after the current-line highlight so they paint over it.
func (s *Set) Replace(highlights ...Highlight) {
	next := make([]Highlight, len(highlights))
	copy(next, highlights)
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Kind < next[j].Kind
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights = next
	s.generation++
}

// Clear removes all highlights.
func (s *Set) Clear() {
	s.Replace()
}

// All returns a copy of the current highlights.
func (s *Set) All() []Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Highlight, len(s.highlights))
	copy(out, s.highlights)
	return out
}

// Len returns the number of highlights.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.highlights)
}

// Generation increases with every Replace.
func (s *Set) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Brackets returns the bracket highlights, in insertion order.
func (s *Set) Brackets() []Highlight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Highlight
	for _, h := range s.highlights {
		if h.Kind == KindBracket {
			out = append(out, h)
		}
	}
	return out
}

// Contains returns true if any highlight covers the position.
func (s *Set) Contains(line, col int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.highlights {
		if h.Range.Contains(line, col) {
			return true
		}
	}
	return false
}

// OnLine returns the highlights intersecting line, in paint order.
func (s *Set) OnLine(line int) []LineSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []LineSelection
	for _, h := range s.highlights {
		if ls, ok := onLine(h, line); ok {
			result = append(result, ls)
		}
	}
	return result
}

func onLine(h Highlight, line int) (LineSelection, bool) {
	if h.Range.IsEmpty() {
		return LineSelection{}, false
	}
	norm := h.Range.Normalize()
	if line < norm.Start.Line || line > norm.End.Line {
		return LineSelection{}, false
	}

	ls := LineSelection{Style: h.Style, Kind: h.Kind}
	if h.Range.Type == TypeLine {
		ls.SelectToEnd = true
		return ls, true
	}

	switch {
	case line == norm.Start.Line && line == norm.End.Line:
		ls.StartCol = norm.Start.Column
		ls.EndCol = norm.End.Column
	case line == norm.Start.Line:
		ls.StartCol = norm.Start.Column
		ls.SelectToEnd = true
	case line == norm.End.Line:
		ls.EndCol = norm.End.Column
	default:
		ls.SelectToEnd = true
	}
	return ls, true
}

// Covers returns true if the selection includes col.
func (ls LineSelection) Covers(col int) bool {
	if col < ls.StartCol {
		return false
	}
	return ls.SelectToEnd || col < ls.EndCol
}

// Apply layers a highlight over a cell style. Default colors in the
// highlight leave the base unchanged.
func Apply(base core.Style, ls LineSelection) core.Style {
	return base.Merge(ls.Style)
}
