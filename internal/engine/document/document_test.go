package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linemark/internal/renderer/highlight"
)

func newDoc(text string) *Document {
	return New(highlight.NewAnnotator(highlight.CppRules()), text)
}

func TestNewAndText(t *testing.T) {
	d := newDoc("a\nb\r\nc")
	assert.Equal(t, 3, d.LineCount())
	assert.Equal(t, "a\nb\nc", d.Text())
	assert.Equal(t, LineEndingLF, d.LineEnding())

	l, ok := d.Line(1)
	assert.True(t, ok)
	assert.Equal(t, "b", l)

	_, ok = d.Line(3)
	assert.False(t, ok)

	empty := newDoc("")
	assert.Equal(t, 1, empty.LineCount())
}

func TestLineEndingPreserved(t *testing.T) {
	d := newDoc("a\r\nb\r\n")
	assert.Equal(t, LineEndingCRLF, d.LineEnding())
	assert.Equal(t, 3, d.LineCount())
	assert.Equal(t, "a\r\nb\r\n", d.Text())

	l, _ := d.Line(0)
	assert.Equal(t, "a", l)

	// Edits keep the document's ending, whatever the inserted text uses.
	_, _, err := d.Insert(Point{Line: 1, Column: 1}, "\nc")
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\nc\r\n", d.Text())

	// Mixed input follows its first line break.
	assert.Equal(t, "x\r\ny\r\nz", newDoc("x\r\ny\nz").Text())

	d.SetText("p\nq")
	assert.Equal(t, LineEndingLF, d.LineEnding())
	assert.Equal(t, "p\nq", d.Text())
}

func TestLazyAnnotation(t *testing.T) {
	d := newDoc("a\nb(\nc\nd")
	assert.Equal(t, 0, d.Annotated())

	block, ok := d.Block(1)
	require.True(t, ok)
	assert.Equal(t, 1, block.Len())
	assert.Equal(t, 2, d.Annotated())

	d.AnnotateAll()
	assert.Equal(t, 4, d.Annotated())

	_, ok = d.Block(4)
	assert.False(t, ok)
	_, ok = d.Block(-1)
	assert.False(t, ok)
	assert.Nil(t, d.Spans(99))
}

func TestCommentStatesAcrossLines(t *testing.T) {
	d := newDoc("int a;\n/* start\nplain text\nend */ code\nint b;")

	want := []highlight.CommentState{
		highlight.CommentNormal,
		highlight.CommentInside,
		highlight.CommentInside,
		highlight.CommentNormal,
		highlight.CommentNormal,
	}
	for i, w := range want {
		assert.Equal(t, w, d.ExitState(i), "exit state of line %d", i)
	}
	assert.Equal(t, highlight.CommentInside, d.EntryState(2))
	assert.Equal(t, highlight.CommentNormal, d.EntryState(0))

	spans := d.Spans(2)
	require.Len(t, spans, 1)
	assert.Equal(t, highlight.StyleSpan{Start: 0, Length: len("plain text"), Type: highlight.TokenCommentBlock}, spans[0])
}

func TestUnterminatedCommentAtEnd(t *testing.T) {
	d := newDoc("x\n/* never closed\nmore")
	assert.Equal(t, highlight.CommentInside, d.ExitState(2))
}

func TestInsertSingleLine(t *testing.T) {
	d := newDoc("foo()\nbar")
	d.AnnotateAll()

	end, change, err := d.Insert(Point{Line: 0, Column: 4}, "x, y")
	require.NoError(t, err)
	assert.Equal(t, Point{Line: 0, Column: 8}, end)
	assert.Equal(t, "foo(x, y)\nbar", d.Text())
	assert.Equal(t, LineRange{Start: 0, End: 1}, change.Edited)
	assert.Equal(t, 1, change.Removed)
	assert.Equal(t, 0, change.Delta())
	assert.Equal(t, LineRange{Start: 0, End: 1}, change.Reannotated)

	block, _ := d.Block(0)
	assert.Equal(t, 8, block.At(1).Offset)
}

func TestInsertMultiLine(t *testing.T) {
	d := newDoc("ab\ncd")
	d.AnnotateAll()

	end, change, err := d.Insert(Point{Line: 0, Column: 1}, "1\n2\n3")
	require.NoError(t, err)
	assert.Equal(t, "a1\n2\n3b\ncd", d.Text())
	assert.Equal(t, Point{Line: 2, Column: 1}, end)
	assert.Equal(t, LineRange{Start: 0, End: 3}, change.Edited)
	assert.Equal(t, 2, change.Delta())
	assert.Equal(t, 4, d.Annotated())
}

func TestDeleteAcrossLines(t *testing.T) {
	d := newDoc("ab\ncd\nef")
	d.AnnotateAll()

	change, err := d.Delete(Point{Line: 0, Column: 1}, Point{Line: 2, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "af", d.Text())
	assert.Equal(t, 3, change.Removed)
	assert.Equal(t, -2, change.Delta())
	assert.Equal(t, 1, d.Annotated())
}

func TestEditErrors(t *testing.T) {
	d := newDoc("héllo\nx")

	_, _, err := d.Insert(Point{Line: 5, Column: 0}, "a")
	assert.ErrorIs(t, err, ErrLineOutOfRange)

	_, _, err = d.Insert(Point{Line: 0, Column: 99}, "a")
	assert.ErrorIs(t, err, ErrColumnOutOfRange)

	// Column 2 is inside the two-byte "é".
	_, _, err = d.Insert(Point{Line: 0, Column: 2}, "a")
	assert.ErrorIs(t, err, ErrColumnOutOfRange)

	_, err = d.Delete(Point{Line: 1, Column: 0}, Point{Line: 0, Column: 0})
	assert.ErrorIs(t, err, ErrRangeInvalid)

	assert.Equal(t, "héllo\nx", d.Text())
}

func TestEarlyStopWhenStateUnchanged(t *testing.T) {
	d := newDoc(strings.Repeat("x\n", 999) + "x")
	d.AnnotateAll()

	_, change, err := d.Insert(Point{Line: 10, Column: 0}, "int ")
	require.NoError(t, err)
	assert.Equal(t, LineRange{Start: 10, End: 11}, change.Reannotated)
}

func TestCommentOpenPropagatesToEnd(t *testing.T) {
	d := newDoc(strings.Repeat("x\n", 99) + "x")
	d.AnnotateAll()

	_, change, err := d.Insert(Point{Line: 10, Column: 0}, "/*")
	require.NoError(t, err)
	assert.Equal(t, LineRange{Start: 10, End: 100}, change.Reannotated)
	assert.Equal(t, highlight.CommentInside, d.ExitState(99))

	// Closing it a few lines later stops once the old state is reached again.
	_, change, err = d.Insert(Point{Line: 20, Column: 1}, "*/")
	require.NoError(t, err)
	assert.Equal(t, LineRange{Start: 20, End: 100}, change.Reannotated)
	assert.Equal(t, highlight.CommentNormal, d.ExitState(99))
	assert.Equal(t, highlight.CommentInside, d.ExitState(19))

	// Adding a self-contained comment changes nothing downstream.
	_, change, err = d.Insert(Point{Line: 50, Column: 0}, "/* c */")
	require.NoError(t, err)
	assert.Equal(t, LineRange{Start: 50, End: 51}, change.Reannotated)
}

func TestEditInLazyRegion(t *testing.T) {
	d := newDoc("a\nb\nc\nd\ne")
	_, _ = d.Block(1)
	require.Equal(t, 2, d.Annotated())

	_, change, err := d.Insert(Point{Line: 3, Column: 0}, "/*")
	require.NoError(t, err)
	assert.True(t, change.Reannotated.IsEmpty())
	assert.Equal(t, 2, d.Annotated())

	assert.Equal(t, highlight.CommentInside, d.ExitState(4))
}

func TestEditStraddlingFrontier(t *testing.T) {
	d := newDoc("a\nb\nc\nd\ne")
	_, _ = d.Block(2)
	require.Equal(t, 3, d.Annotated())

	_, change, err := d.Replace(Point{Line: 1, Column: 0}, Point{Line: 4, Column: 0}, "/*\n")
	require.NoError(t, err)
	assert.Equal(t, "a\n/*\ne", d.Text())
	assert.Equal(t, LineRange{Start: 1, End: 3}, change.Reannotated)
	assert.Equal(t, 3, d.Annotated())
	assert.Equal(t, highlight.CommentInside, d.ExitState(2))
}

func TestSetAnnotatorResets(t *testing.T) {
	d := newDoc("let x = 1;")
	d.AnnotateAll()
	require.Equal(t, highlight.TokenKeyword, d.Spans(0)[0].Type)

	d.SetAnnotator(highlight.NewAnnotator(highlight.GoRules()))
	assert.Equal(t, 0, d.Annotated())
	for _, s := range d.Spans(0) {
		assert.NotEqual(t, highlight.TokenKeyword, s.Type)
	}
}

func TestOffsets(t *testing.T) {
	d := newDoc("ab\n\ncde")

	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{4, Point{2, 0}},
		{7, Point{2, 3}},
	}
	for _, tt := range tests {
		p, err := d.OffsetToPoint(tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.point, p, "OffsetToPoint(%d)", tt.offset)

		off, err := d.PointToOffset(tt.point)
		require.NoError(t, err)
		assert.Equal(t, tt.offset, off, "PointToOffset(%v)", tt.point)
	}

	_, err := d.OffsetToPoint(8)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	_, err = d.OffsetToPoint(-1)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestClamp(t *testing.T) {
	d := newDoc("héllo\nab")

	assert.Equal(t, Point{0, 0}, d.Clamp(Point{-3, 4}))
	assert.Equal(t, Point{1, 2}, d.Clamp(Point{9, 0}))
	assert.Equal(t, Point{0, 6}, d.Clamp(Point{0, 40}))
	assert.Equal(t, Point{0, 1}, d.Clamp(Point{0, 2}))
	assert.Equal(t, Point{1, 0}, d.Clamp(Point{1, -1}))
}

func TestPointCompare(t *testing.T) {
	assert.Equal(t, -1, Point{0, 5}.Compare(Point{1, 0}))
	assert.Equal(t, 1, Point{1, 2}.Compare(Point{1, 1}))
	assert.Equal(t, 0, Point{3, 3}.Compare(Point{3, 3}))
	assert.Equal(t, "(1:2)", Point{1, 2}.String())
}
