// Package highlight provides the rule-based line annotator used by the
// renderer: ordered regular-expression rules, block comment continuation
// across lines, and the per-line bracket markers consumed by bracket
// matching.
package highlight

// TokenType is the style tag attached to an annotated range.
type TokenType uint16

// Token types produced by the built-in rule tables.
// Names follow TextMate scope naming at a high level.
const (
	TokenNone TokenType = iota

	TokenKeyword
	TokenTypeClass
	TokenString
	TokenNumber
	TokenFunctionCall
	TokenCommentLine
	TokenCommentBlock
	TokenMeta

	tokenTypeCount
)

// String returns the scope name of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// IsComment returns true if this is a comment token.
func (t TokenType) IsComment() bool {
	return t == TokenCommentLine || t == TokenCommentBlock
}

var tokenTypeNames = [tokenTypeCount]string{
	TokenNone:         "none",
	TokenKeyword:      "keyword",
	TokenTypeClass:    "type.class",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenFunctionCall: "function.call",
	TokenCommentLine:  "comment.line",
	TokenCommentBlock: "comment.block",
	TokenMeta:         "meta",
}

var scopeToToken = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenTypeNames))
	for i, name := range tokenTypeNames {
		m[name] = TokenType(i)
	}
	// Short aliases accepted in configuration files.
	m["class"] = TokenTypeClass
	m["function"] = TokenFunctionCall
	m["comment"] = TokenCommentLine
	return m
}()

// TokenTypeFromString converts a scope string to a TokenType.
// Hierarchical scopes fall back to their nearest known parent, so
// "comment.line.double-slash" resolves to TokenCommentLine.
func TokenTypeFromString(scope string) (TokenType, bool) {
	for scope != "" {
		if t, ok := scopeToToken[scope]; ok {
			return t, true
		}
		i := len(scope) - 1
		for i >= 0 && scope[i] != '.' {
			i--
		}
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return TokenNone, false
}

// StyleSpan is one styled range of a line. Offsets are byte offsets.
type StyleSpan struct {
	Start  int
	Length int
	Type   TokenType
}

// End returns the exclusive end offset of the span.
func (s StyleSpan) End() int {
	return s.Start + s.Length
}

// Contains returns true if the offset is within the span.
func (s StyleSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}
