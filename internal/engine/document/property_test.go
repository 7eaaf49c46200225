package document

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/linemark/internal/renderer/highlight"
)

var fragments = []string{"x", "(", ")", "/*", "*/", "\n", " ", "int", "//", "\"s\""}

func textGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 20).Draw(t, "parts")
		s := ""
		for _, p := range parts {
			s += p
		}
		return s
	})
}

func pointGen(d *Document) *rapid.Generator[Point] {
	return rapid.Custom(func(t *rapid.T) Point {
		line := rapid.IntRange(0, d.LineCount()-1).Draw(t, "line")
		text, _ := d.Line(line)
		return Point{Line: line, Column: rapid.IntRange(0, len(text)).Draw(t, "col")}
	})
}

// Incremental re-annotation after any sequence of edits matches annotating
// the final text from scratch.
func TestProperty_IncrementalMatchesFull(t *testing.T) {
	annotator := highlight.NewAnnotator(highlight.CppRules())

	rapid.Check(t, func(rt *rapid.T) {
		d := New(annotator, textGen().Draw(rt, "initial"))
		if rapid.Bool().Draw(rt, "eager") {
			d.AnnotateAll()
		} else {
			_, _ = d.Block(rapid.IntRange(0, d.LineCount()-1).Draw(rt, "touch"))
		}

		edits := rapid.IntRange(1, 6).Draw(rt, "edits")
		for range edits {
			a := pointGen(d).Draw(rt, "a")
			b := pointGen(d).Draw(rt, "b")
			if b.Before(a) {
				a, b = b, a
			}
			_, change, err := d.Replace(a, b, textGen().Draw(rt, "text"))
			require.NoError(rt, err)
			require.Equal(rt, change.Edited.Start, change.Reannotated.Start)
			require.LessOrEqual(rt, d.Annotated(), d.LineCount())
		}

		fresh := New(annotator, d.Text())
		fresh.AnnotateAll()
		d.AnnotateAll()

		require.Equal(rt, fresh.LineCount(), d.LineCount())
		for i := range d.LineCount() {
			require.Equal(rt, fresh.EntryState(i), d.EntryState(i), "entry of line %d", i)
			require.Equal(rt, fresh.Spans(i), d.Spans(i), "spans of line %d", i)
			fb, _ := fresh.Block(i)
			db, _ := d.Block(i)
			require.Equal(rt, fb.Markers(), db.Markers(), "markers of line %d", i)
			require.Equal(rt, fb.ExitState(), db.ExitState(), "exit of line %d", i)
		}
	})
}
