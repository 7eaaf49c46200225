// Package bracket finds the partner of a parenthesis next to the cursor.
//
// The search walks the per-line bracket markers produced by the highlight
// package rather than the text itself, so it never rescans a line. It
// crosses line boundaries with an explicit line index and a nesting
// counter, so stack use is constant regardless of document length.
package bracket

import (
	"github.com/dshills/linemark/internal/renderer/highlight"
)

// LineSource is the read-only view of a document the matcher walks.
type LineSource interface {
	// LineCount returns the number of lines.
	LineCount() int

	// Block returns the annotation of a line. ok is false when the line
	// has no annotation; it is then treated as having no brackets.
	Block(line int) (block highlight.BlockAnnotation, ok bool)
}

// Position is a line and byte column.
type Position struct {
	Line   int
	Column int
}

// Pair is a matched opening and closing bracket.
type Pair struct {
	Open  Position
	Close Position
}

// Adjacency controls which bracket the cursor is considered next to.
type Adjacency uint8

const (
	// AdjacentBefore only considers the character immediately before the
	// cursor. A cursor sitting just in front of a bracket does not trigger
	// a match, while the same bracket triggers from the other side.
	AdjacentBefore Adjacency = iota

	// AdjacentEither also considers the character under the cursor when
	// the character before it yields no match.
	AdjacentEither
)

// String returns the configuration name of the adjacency mode.
func (a Adjacency) String() string {
	if a == AdjacentEither {
		return "either"
	}
	return "after"
}

// ParseAdjacency parses a configuration name.
func ParseAdjacency(s string) (Adjacency, bool) {
	switch s {
	case "", "after", "before-cursor":
		return AdjacentBefore, true
	case "either", "both":
		return AdjacentEither, true
	}
	return AdjacentBefore, false
}

// Matcher finds bracket pairs.
type Matcher struct {
	adjacency Adjacency
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithAdjacency sets the adjacency mode.
func WithAdjacency(a Adjacency) Option {
	return func(m *Matcher) {
		m.adjacency = a
	}
}

// New creates a matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{adjacency: AdjacentBefore}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Adjacency returns the adjacency mode.
func (m *Matcher) Adjacency() Adjacency {
	return m.adjacency
}

// Match returns the pair for the bracket adjacent to the cursor. ok is
// false when the cursor is not next to a bracket or the bracket has no
// partner; neither case is an error.
func (m *Matcher) Match(src LineSource, cursor Position) (Pair, bool) {
	if cursor.Line < 0 || cursor.Line >= src.LineCount() {
		return Pair{}, false
	}
	block, ok := src.Block(cursor.Line)
	if !ok {
		return Pair{}, false
	}

	if i := block.IndexAt(cursor.Column - 1); i >= 0 {
		if pair, ok := m.matchMarker(src, cursor.Line, block, i); ok {
			return pair, true
		}
	}

	if m.adjacency == AdjacentEither {
		if i := block.IndexAt(cursor.Column); i >= 0 {
			return m.matchMarker(src, cursor.Line, block, i)
		}
	}

	return Pair{}, false
}

// MatchMarker returns the pair for the i-th marker of a line.
func (m *Matcher) MatchMarker(src LineSource, line, i int) (Pair, bool) {
	if line < 0 || line >= src.LineCount() {
		return Pair{}, false
	}
	block, ok := src.Block(line)
	if !ok || i < 0 || i >= block.Len() {
		return Pair{}, false
	}
	return m.matchMarker(src, line, block, i)
}

func (m *Matcher) matchMarker(src LineSource, line int, block highlight.BlockAnnotation, i int) (Pair, bool) {
	self := Position{Line: line, Column: block.At(i).Offset}

	if block.At(i).IsOpen() {
		partner, ok := searchForward(src, line, i+1)
		return Pair{Open: self, Close: partner}, ok
	}
	partner, ok := searchBackward(src, line, i-1)
	return Pair{Open: partner, Close: self}, ok
}

// searchForward looks for the ')' closing an opening bracket, starting at
// marker index from on line and continuing through following lines.
// Each '(' seen on the way raises the nesting depth and each ')' either
// closes it or, at depth zero, is the partner.
func searchForward(src LineSource, line, from int) (Position, bool) {
	depth := 0
	count := src.LineCount()

	for l := line; l < count; l++ {
		block, ok := src.Block(l)
		if !ok {
			continue
		}

		i := 0
		if l == line {
			i = from
		}
		for ; i < block.Len(); i++ {
			mk := block.At(i)
			if mk.IsOpen() {
				depth++
				continue
			}
			if depth == 0 {
				return Position{Line: l, Column: mk.Offset}, true
			}
			depth--
		}
	}

	return Position{}, false
}

// searchBackward mirrors searchForward, walking markers right to left
// and lines bottom to top.
func searchBackward(src LineSource, line, from int) (Position, bool) {
	depth := 0

	for l := line; l >= 0; l-- {
		block, ok := src.Block(l)
		if !ok {
			continue
		}

		i := block.Len() - 1
		if l == line {
			i = from
		}
		for ; i >= 0; i-- {
			mk := block.At(i)
			if !mk.IsOpen() {
				depth++
				continue
			}
			if depth == 0 {
				return Position{Line: l, Column: mk.Offset}, true
			}
			depth--
		}
	}

	return Position{}, false
}
