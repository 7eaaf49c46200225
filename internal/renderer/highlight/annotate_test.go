package highlight

import (
	"reflect"
	"testing"
)

// styleAt returns the token type covering offset, or TokenNone.
func styleAt(spans []StyleSpan, offset int) TokenType {
	for _, s := range spans {
		if s.Contains(offset) {
			return s.Type
		}
	}
	return TokenNone
}

func TestAnnotateEmptyLine(t *testing.T) {
	a := NewAnnotator(CppRules())

	res := a.Annotate("", CommentNormal)
	if res.Block.Len() != 0 || len(res.Spans) != 0 {
		t.Errorf("Annotate(\"\") = %+v, want empty", res)
	}
	if res.ExitState() != CommentNormal {
		t.Errorf("ExitState() = %v, want normal", res.ExitState())
	}

	res = a.Annotate("", CommentInside)
	if res.ExitState() != CommentInside {
		t.Errorf("empty line inside comment: ExitState() = %v, want in-comment", res.ExitState())
	}
}

func TestAnnotateBracketMarkers(t *testing.T) {
	a := NewAnnotator(CppRules())

	res := a.Annotate("f(a, (b)) )(", CommentNormal)
	want := []BracketMarker{
		{'(', 1}, {'(', 5}, {')', 7}, {')', 8}, {')', 10}, {'(', 11},
	}
	if got := res.Block.Markers(); !reflect.DeepEqual(got, want) {
		t.Errorf("Markers() = %v, want %v", got, want)
	}
}

func TestAnnotateBracketsInsideCommentsAreRecorded(t *testing.T) {
	a := NewAnnotator(CppRules())

	res := a.Annotate(`/* ( */ ")" // (`, CommentNormal)
	if res.Block.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (markers ignore styling)", res.Block.Len())
	}
}

func TestAnnotateRules(t *testing.T) {
	a := NewAnnotator(CppRules())

	tests := []struct {
		name   string
		line   string
		offset int
		want   TokenType
	}{
		{"keyword", "int x;", 0, TokenKeyword},
		{"keyword boundary", "integer x;", 0, TokenNone},
		{"js keyword", "let y = 1;", 1, TokenKeyword},
		{"class", "QWidget *w;", 3, TokenTypeClass},
		{"string", `s = "abc";`, 5, TokenString},
		{"call identifier", "print(x);", 2, TokenFunctionCall},
		{"call paren not styled", "print(x);", 5, TokenNone},
		{"line comment", "x; // note", 6, TokenCommentLine},
		{"plain", "x = y;", 0, TokenNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Annotate(tt.line, CommentNormal)
			if got := styleAt(res.Spans, tt.offset); got != tt.want {
				t.Errorf("style at %d of %q = %v, want %v (spans %v)", tt.offset, tt.line, got, tt.want, res.Spans)
			}
		})
	}
}

func TestAnnotateLaterRuleWins(t *testing.T) {
	a := NewAnnotator(CppRules())

	line := `x = "int value";`
	res := a.Annotate(line, CommentNormal)

	// "int" sits inside the string; the string rule comes after keywords.
	for i := 5; i < 8; i++ {
		if got := styleAt(res.Spans, i); got != TokenString {
			t.Errorf("style at %d = %v, want string", i, got)
		}
	}
}

func TestAnnotateCommentInsideStringIsComment(t *testing.T) {
	a := NewAnnotator(CppRules())

	// Block comments are applied after every rule and overwrite them.
	res := a.Annotate(`s = "a /* b */ c";`, CommentNormal)
	if got := styleAt(res.Spans, 7); got != TokenCommentBlock {
		t.Errorf("style at 7 = %v, want comment.block", got)
	}
	if got := styleAt(res.Spans, 5); got != TokenString {
		t.Errorf("style at 5 = %v, want string", got)
	}
}

func TestAnnotateSpansSortedAndDisjoint(t *testing.T) {
	a := NewAnnotator(CppRules())

	res := a.Annotate(`int f(QString s) { return g("x"); } // done`, CommentNormal)
	for i := 1; i < len(res.Spans); i++ {
		if res.Spans[i].Start < res.Spans[i-1].End() {
			t.Fatalf("spans overlap or unsorted: %v", res.Spans)
		}
	}
}

func TestAnnotateCommentPropagation(t *testing.T) {
	a := NewAnnotator(CppRules())

	first := a.Annotate("/* start", CommentNormal)
	if first.ExitState() != CommentInside {
		t.Fatalf("line 1 ExitState() = %v, want in-comment", first.ExitState())
	}
	if got := styleAt(first.Spans, 0); got != TokenCommentBlock {
		t.Errorf("line 1 style at 0 = %v, want comment.block", got)
	}

	middle := "plain text here"
	second := a.Annotate(middle, first.ExitState())
	if second.ExitState() != CommentInside {
		t.Fatalf("line 2 ExitState() = %v, want in-comment", second.ExitState())
	}
	want := []StyleSpan{{Start: 0, Length: len(middle), Type: TokenCommentBlock}}
	if !reflect.DeepEqual(second.Spans, want) {
		t.Errorf("line 2 spans = %v, want %v", second.Spans, want)
	}

	third := a.Annotate("end */ code", second.ExitState())
	if third.ExitState() != CommentNormal {
		t.Fatalf("line 3 ExitState() = %v, want normal", third.ExitState())
	}
	for i := 0; i < 6; i++ {
		if got := styleAt(third.Spans, i); got != TokenCommentBlock {
			t.Errorf("line 3 style at %d = %v, want comment.block", i, got)
		}
	}
	for i := 6; i < len("end */ code"); i++ {
		if got := styleAt(third.Spans, i); got != TokenNone {
			t.Errorf("line 3 style at %d = %v, want none", i, got)
		}
	}
}

func TestAnnotateMultipleCommentRegions(t *testing.T) {
	a := NewAnnotator(CppRules())

	line := "a /* b */ c /* d */ e /* f"
	res := a.Annotate(line, CommentNormal)

	if res.ExitState() != CommentInside {
		t.Errorf("ExitState() = %v, want in-comment", res.ExitState())
	}

	wantComment := map[int]bool{2: true, 8: true, 12: true, 18: true, 22: true, 25: true}
	wantPlain := []int{0, 10, 20}
	for off := range wantComment {
		if got := styleAt(res.Spans, off); got != TokenCommentBlock {
			t.Errorf("style at %d = %v, want comment.block", off, got)
		}
	}
	for _, off := range wantPlain {
		if got := styleAt(res.Spans, off); got != TokenNone {
			t.Errorf("style at %d = %v, want none", off, got)
		}
	}
}

func TestAnnotateCommentContinuationThenNewComment(t *testing.T) {
	a := NewAnnotator(CppRules())

	res := a.Annotate("x */ y /* z", CommentInside)
	if res.ExitState() != CommentInside {
		t.Errorf("ExitState() = %v, want in-comment", res.ExitState())
	}
	if got := styleAt(res.Spans, 5); got != TokenNone {
		t.Errorf("style at 5 = %v, want none", got)
	}
}

func TestAnnotateStartEndOverlapIsNotClosed(t *testing.T) {
	a := NewAnnotator(CppRules())

	// The "*" of "/*" cannot also serve as the "*" of "*/".
	res := a.Annotate("/*/ still open", CommentNormal)
	if res.ExitState() != CommentInside {
		t.Errorf("ExitState() = %v, want in-comment", res.ExitState())
	}
}

func TestAnnotateTableWithoutBlockComment(t *testing.T) {
	table := NewBuilder("plain").Rule(`#.*`, TokenCommentLine).MustBuild()
	a := NewAnnotator(table)

	res := a.Annotate("/* not a comment", CommentInside)
	if res.ExitState() != CommentNormal {
		t.Errorf("ExitState() = %v, want normal", res.ExitState())
	}
	if len(res.Spans) != 0 {
		t.Errorf("Spans = %v, want none", res.Spans)
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	a := NewAnnotator(GoRules())
	line := "func main() { fmt.Println(\"hi\") } /* tail"

	first := a.Annotate(line, CommentNormal)
	second := a.Annotate(line, CommentNormal)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Annotate not idempotent:\n%+v\n%+v", first, second)
	}
}
