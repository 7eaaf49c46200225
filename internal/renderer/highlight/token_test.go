package highlight

import (
	"testing"
)

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		want      string
	}{
		{TokenNone, "none"},
		{TokenKeyword, "keyword"},
		{TokenTypeClass, "type.class"},
		{TokenCommentBlock, "comment.block"},
		{TokenType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.tokenType.String(); got != tt.want {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.tokenType, got, tt.want)
		}
	}
}

func TestTokenTypeFromString(t *testing.T) {
	tests := []struct {
		scope  string
		want   TokenType
		wantOK bool
	}{
		{"keyword", TokenKeyword, true},
		{"string", TokenString, true},
		{"function", TokenFunctionCall, true},
		{"comment.block.documentation", TokenCommentBlock, true},
		{"string.quoted.double", TokenString, true},
		{"markup.bold", TokenNone, false},
		{"", TokenNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			got, ok := TokenTypeFromString(tt.scope)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TokenTypeFromString(%q) = %v, %v, want %v, %v", tt.scope, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTokenTypeIsComment(t *testing.T) {
	if !TokenCommentLine.IsComment() || !TokenCommentBlock.IsComment() {
		t.Error("comment tokens should report IsComment")
	}
	if TokenString.IsComment() {
		t.Error("TokenString should not be a comment")
	}
}

func TestStyleSpan(t *testing.T) {
	s := StyleSpan{Start: 3, Length: 4, Type: TokenString}
	if s.End() != 7 {
		t.Errorf("End() = %d, want 7", s.End())
	}
	if !s.Contains(3) || !s.Contains(6) {
		t.Error("span should contain 3 and 6")
	}
	if s.Contains(7) || s.Contains(2) {
		t.Error("span should not contain 2 or 7")
	}
}

func TestBlockAnnotationIndexAt(t *testing.T) {
	b := NewBlockAnnotation(ScanBrackets("a(b)(c)"), CommentNormal)
	tests := []struct {
		offset int
		want   int
	}{
		{1, 0}, {3, 1}, {4, 2}, {6, 3}, {0, -1}, {2, -1}, {7, -1},
	}
	for _, tt := range tests {
		if got := b.IndexAt(tt.offset); got != tt.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}

	var zero BlockAnnotation
	if zero.Len() != 0 || zero.IndexAt(0) != -1 || zero.ExitState() != CommentNormal {
		t.Error("zero BlockAnnotation should be empty and normal")
	}
}

func TestBlockAnnotationMarkersIsCopy(t *testing.T) {
	b := NewBlockAnnotation(ScanBrackets("()"), CommentNormal)
	m := b.Markers()
	m[0].Char = 'x'
	if b.At(0).Char != '(' {
		t.Error("Markers() should return a copy")
	}
}
