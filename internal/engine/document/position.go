package document

import (
	"fmt"
	"strings"
)

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column is a byte offset within the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// LineRange is a half-open range of line indices [Start, End).
type LineRange struct {
	Start int
	End   int
}

// IsEmpty returns true if the range has no lines.
func (r LineRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start
}

// Contains returns true if line is within the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line < r.End
}

// LineEnding is the line break sequence a document writes back.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // \n
	LineEndingCRLF                   // \r\n
)

// String returns the conventional name of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// Sequence returns the line break characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// detectLineEnding reports the ending of the first line break in text.
// Text without a line break is LF.
func detectLineEnding(text string) LineEnding {
	i := strings.IndexByte(text, '\n')
	if i > 0 && text[i-1] == '\r' {
		return LineEndingCRLF
	}
	return LineEndingLF
}
