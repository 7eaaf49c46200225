package highlight

// CommentState records whether a line boundary falls inside a block comment.
type CommentState uint8

// Comment states.
const (
	CommentNormal CommentState = iota
	CommentInside
)

func (s CommentState) String() string {
	if s == CommentInside {
		return "in-comment"
	}
	return "normal"
}

// BracketMarker is a bracket character and its byte offset in a line.
type BracketMarker struct {
	Char   byte
	Offset int
}

// IsOpen returns true for an opening bracket.
func (m BracketMarker) IsOpen() bool {
	return m.Char == '('
}

// BlockAnnotation is the derived state cached with each line: its bracket
// markers in ascending offset order and its exit comment state.
//
// The zero value means "no brackets, normal state", which is also how an
// absent annotation is treated.
type BlockAnnotation struct {
	markers []BracketMarker
	exit    CommentState
}

// NewBlockAnnotation creates an annotation from markers that are already
// in ascending offset order.
func NewBlockAnnotation(markers []BracketMarker, exit CommentState) BlockAnnotation {
	return BlockAnnotation{markers: markers, exit: exit}
}

// Len returns the number of bracket markers.
func (b BlockAnnotation) Len() int {
	return len(b.markers)
}

// At returns the i-th marker.
func (b BlockAnnotation) At(i int) BracketMarker {
	return b.markers[i]
}

// Markers returns a copy of the markers.
func (b BlockAnnotation) Markers() []BracketMarker {
	out := make([]BracketMarker, len(b.markers))
	copy(out, b.markers)
	return out
}

// IndexAt returns the index of the marker at offset, or -1.
func (b BlockAnnotation) IndexAt(offset int) int {
	lo, hi := 0, len(b.markers)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case b.markers[mid].Offset == offset:
			return mid
		case b.markers[mid].Offset < offset:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return -1
}

// ExitState returns the comment state at the end of the line.
func (b BlockAnnotation) ExitState() CommentState {
	return b.exit
}

// ScanBrackets records every '(' and ')' in text. A single left-to-right
// pass yields markers already ordered by offset.
func ScanBrackets(text string) []BracketMarker {
	var markers []BracketMarker
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '(' || c == ')' {
			markers = append(markers, BracketMarker{Char: c, Offset: i})
		}
	}
	return markers
}
