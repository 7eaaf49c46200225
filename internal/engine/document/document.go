package document

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/linemark/internal/renderer/highlight"
)

// line is one entry of the line arena. The annotation fields are only
// meaningful for lines below the document's frontier.
type line struct {
	text  string
	entry highlight.CommentState
	block highlight.BlockAnnotation
	spans []highlight.StyleSpan
}

// Change describes the effect of an edit.
type Change struct {
	// Edited is the post-edit range of lines whose text changed.
	Edited LineRange

	// Removed is the number of pre-edit lines the edit replaced.
	Removed int

	// Reannotated is the range of lines annotated again by the edit.
	// It starts at Edited.Start and may run past Edited.End while a
	// block comment change propagates forward.
	Reannotated LineRange
}

// Delta returns how many lines the edit added (negative when it removed lines).
func (c Change) Delta() int {
	return c.Edited.Len() - c.Removed
}

// Document is an ordered arena of lines, each owning its text and its
// derived annotation.
//
// Annotation is lazy: lines [0, frontier) are annotated and consistent
// with each other, and lines at or past the frontier are annotated on
// first access. An edit re-annotates the edited lines and then walks
// forward only while the entry comment state of the next cached line
// differs from what it was, stopping as soon as the state stabilizes.
//
// A Document is not safe for concurrent use.
type Document struct {
	annotator *highlight.Annotator
	lines     []line
	frontier  int
	ending    LineEnding
}

// New creates a document holding text.
func New(annotator *highlight.Annotator, text string) *Document {
	d := &Document{annotator: annotator}
	d.SetText(text)
	return d
}

// SetText replaces the whole content. All lines become unannotated.
// The line ending of the first line break becomes the document's ending.
func (d *Document) SetText(text string) LineRange {
	d.ending = detectLineEnding(text)
	parts := splitLines(text)
	d.lines = make([]line, len(parts))
	for i, p := range parts {
		d.lines[i].text = p
	}
	d.frontier = 0
	return LineRange{Start: 0, End: len(d.lines)}
}

// SetAnnotator switches the rule table. All lines become unannotated.
func (d *Document) SetAnnotator(annotator *highlight.Annotator) {
	d.annotator = annotator
	d.frontier = 0
}

// Annotator returns the annotator in use.
func (d *Document) Annotator() *highlight.Annotator {
	return d.annotator
}

// LineCount returns the number of lines. A document always has at least one.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of line i.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= len(d.lines) {
		return "", false
	}
	return d.lines[i].text, true
}

// LineEnding returns the line ending Text joins lines with.
func (d *Document) LineEnding() LineEnding {
	return d.ending
}

// Text returns the full content, lines joined with the document's line
// ending.
func (d *Document) Text() string {
	sep := d.ending.Sequence()
	var sb strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(l.text)
	}
	return sb.String()
}

// Annotated returns the number of leading lines whose annotation is current.
func (d *Document) Annotated() int {
	return d.frontier
}

// Block returns the annotation of line i, annotating up to it if needed.
func (d *Document) Block(i int) (highlight.BlockAnnotation, bool) {
	if i < 0 || i >= len(d.lines) {
		return highlight.BlockAnnotation{}, false
	}
	d.ensure(i)
	return d.lines[i].block, true
}

// Spans returns the style spans of line i.
func (d *Document) Spans(i int) []highlight.StyleSpan {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	d.ensure(i)
	return d.lines[i].spans
}

// EntryState returns the comment state line i is entered with.
func (d *Document) EntryState(i int) highlight.CommentState {
	if i <= 0 || i >= len(d.lines) {
		return highlight.CommentNormal
	}
	d.ensure(i)
	return d.lines[i].entry
}

// ExitState returns the comment state at the end of line i.
func (d *Document) ExitState(i int) highlight.CommentState {
	b, _ := d.Block(i)
	return b.ExitState()
}

// AnnotateAll annotates every line.
func (d *Document) AnnotateAll() {
	d.ensure(len(d.lines) - 1)
}

// ensure annotates lines from the frontier through i.
func (d *Document) ensure(i int) {
	for d.frontier <= i {
		d.annotateLine(d.frontier)
		d.frontier++
	}
}

func (d *Document) entryFor(i int) highlight.CommentState {
	if i == 0 {
		return highlight.CommentNormal
	}
	return d.lines[i-1].block.ExitState()
}

func (d *Document) annotateLine(i int) {
	entry := d.entryFor(i)
	res := d.annotator.Annotate(d.lines[i].text, entry)
	d.lines[i].entry = entry
	d.lines[i].block = res.Block
	d.lines[i].spans = res.Spans
}

// Insert inserts text at p and returns the point just after it.
func (d *Document) Insert(p Point, text string) (Point, Change, error) {
	return d.Replace(p, p, text)
}

// Delete removes the text between start and end.
func (d *Document) Delete(start, end Point) (Change, error) {
	_, change, err := d.Replace(start, end, "")
	return change, err
}

// Replace replaces the text between start and end with text and returns
// the point just after the inserted text.
func (d *Document) Replace(start, end Point, text string) (Point, Change, error) {
	if err := d.checkPoint(start); err != nil {
		return Point{}, Change{}, err
	}
	if err := d.checkPoint(end); err != nil {
		return Point{}, Change{}, err
	}
	if end.Before(start) {
		return Point{}, Change{}, ErrRangeInvalid
	}

	before := d.lines[start.Line].text[:start.Column]
	after := d.lines[end.Line].text[end.Column:]
	parts := splitLines(before + text + after)

	replaced := make([]line, len(parts))
	for i, p := range parts {
		replaced[i].text = p
	}

	first, last := start.Line, end.Line
	removed := last - first + 1

	tail := d.lines[last+1:]
	lines := make([]line, 0, len(d.lines)-removed+len(replaced))
	lines = append(lines, d.lines[:first]...)
	lines = append(lines, replaced...)
	lines = append(lines, tail...)
	d.lines = lines

	switch {
	case first >= d.frontier:
		// Entirely in the lazy region.
	case last < d.frontier:
		d.frontier += len(replaced) - removed
	default:
		d.frontier = first
	}

	edited := LineRange{Start: first, End: first + len(replaced)}
	change := Change{
		Edited:      edited,
		Removed:     removed,
		Reannotated: d.propagate(edited),
	}

	endLine := edited.End - 1
	endPoint := Point{Line: endLine, Column: len(d.lines[endLine].text) - len(after)}
	return endPoint, change, nil
}

// propagate re-annotates the edited lines and then the cached lines after
// them until a line's entry state is unchanged.
func (d *Document) propagate(edited LineRange) LineRange {
	if edited.Start > d.frontier {
		return LineRange{Start: edited.Start, End: edited.Start}
	}

	i := edited.Start
	for ; i < len(d.lines); i++ {
		if i >= edited.End {
			if i >= d.frontier {
				break
			}
			if d.lines[i].entry == d.entryFor(i) {
				break
			}
		}
		d.annotateLine(i)
	}

	if i > d.frontier {
		d.frontier = i
	}
	return LineRange{Start: edited.Start, End: i}
}

func (d *Document) checkPoint(p Point) error {
	if p.Line < 0 || p.Line >= len(d.lines) {
		return ErrLineOutOfRange
	}
	text := d.lines[p.Line].text
	if p.Column < 0 || p.Column > len(text) {
		return ErrColumnOutOfRange
	}
	if p.Column < len(text) && !utf8.RuneStart(text[p.Column]) {
		return ErrColumnOutOfRange
	}
	return nil
}

// PointToOffset converts a point to an absolute byte offset, counting one
// byte per line break.
func (d *Document) PointToOffset(p Point) (int, error) {
	if err := d.checkPoint(p); err != nil {
		return 0, err
	}
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(d.lines[i].text) + 1
	}
	return off + p.Column, nil
}

// OffsetToPoint converts an absolute byte offset to a point.
func (d *Document) OffsetToPoint(offset int) (Point, error) {
	if offset < 0 {
		return Point{}, ErrOffsetOutOfRange
	}
	for i, l := range d.lines {
		if offset <= len(l.text) {
			return Point{Line: i, Column: offset}, nil
		}
		offset -= len(l.text) + 1
	}
	return Point{}, ErrOffsetOutOfRange
}

// Clamp returns the nearest valid point to p.
func (d *Document) Clamp(p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(d.lines) {
		last := len(d.lines) - 1
		return Point{Line: last, Column: len(d.lines[last].text)}
	}
	text := d.lines[p.Line].text
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > len(text) {
		p.Column = len(text)
	}
	for p.Column > 0 && p.Column < len(text) && !utf8.RuneStart(text[p.Column]) {
		p.Column--
	}
	return p
}

// splitLines splits on "\n" and drops a trailing "\r" from each line.
func splitLines(text string) []string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
