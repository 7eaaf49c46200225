package highlight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderOrder(t *testing.T) {
	table, err := NewBuilder("test").
		Keywords(TokenKeyword, "if", "else").
		Rule(`"[^"]*"`, TokenString).
		Submatch(`(\w+)\(`, 1, TokenFunctionCall).
		Build()
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, TokenKeyword, table.Rule(0).Type)
	assert.Equal(t, TokenString, table.Rule(1).Type)
	assert.Equal(t, TokenFunctionCall, table.Rule(2).Type)
	assert.Equal(t, 1, table.Rule(2).Submatch)
	assert.Equal(t, "test", table.Language())

	_, ok := table.BlockComment()
	assert.False(t, ok)
}

func TestBuilderKeywordsQuoted(t *testing.T) {
	table := NewBuilder("test").Keywords(TokenKeyword, "a.b").MustBuild()
	res := NewAnnotator(table).Annotate("axb a.b", CommentNormal)

	require.Len(t, res.Spans, 1)
	assert.Equal(t, StyleSpan{Start: 4, Length: 3, Type: TokenKeyword}, res.Spans[0])
}

func TestBuilderMalformedPattern(t *testing.T) {
	_, err := NewBuilder("bad").
		Rule(`ok`, TokenKeyword).
		Rule(`(unclosed`, TokenString).
		Build()
	require.Error(t, err)

	var ruleErr *RuleError
	require.True(t, errors.As(err, &ruleErr))
	assert.Equal(t, 1, ruleErr.Index)
	assert.Equal(t, `(unclosed`, ruleErr.Pattern)
	assert.Contains(t, err.Error(), "rule 1")
}

func TestBuilderSubmatchOutOfRange(t *testing.T) {
	_, err := NewBuilder("bad").Submatch(`(a)`, 2, TokenKeyword).Build()
	var ruleErr *RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, 0, ruleErr.Index)
}

func TestBuilderEmptyCommentDelimiter(t *testing.T) {
	_, err := NewBuilder("bad").BlockComment("/*", "").Build()
	assert.ErrorIs(t, err, ErrEmptyCommentDelimiter)
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder("bad").Rule(`[`, TokenKeyword).MustBuild()
	})
}

func TestRuleTableWith(t *testing.T) {
	base := CppRules()
	extended, err := base.With(RuleSpec{Pattern: `\bTODO\b`, Type: TokenMeta})
	require.NoError(t, err)

	assert.Equal(t, base.Len()+1, extended.Len())
	assert.Equal(t, TokenMeta, extended.Rule(extended.Len()-1).Type)

	bc, ok := extended.BlockComment()
	require.True(t, ok)
	assert.Equal(t, BlockComment{Start: "/*", End: "*/"}, bc)

	// Block comments still take precedence over the appended rule.
	res := NewAnnotator(extended).Annotate("/* TODO */ TODO", CommentNormal)
	assert.Equal(t, TokenCommentBlock, styleAt(res.Spans, 3))
	assert.Equal(t, TokenMeta, styleAt(res.Spans, 11))

	// The receiver is untouched.
	assert.Equal(t, TokenNone, styleAt(NewAnnotator(base).Annotate("TODO", CommentNormal).Spans, 0))
}

func TestRuleTableWithMalformed(t *testing.T) {
	_, err := GoRules().With(RuleSpec{Pattern: `*`, Type: TokenMeta})
	var ruleErr *RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, GoRules().Len(), ruleErr.Index)
}

func TestParseRuleSpec(t *testing.T) {
	spec, err := ParseRuleSpec(`\bTODO\b`, "meta")
	require.NoError(t, err)
	assert.Equal(t, TokenMeta, spec.Type)

	spec, err = ParseRuleSpec(`x`, "comment.line.double-slash")
	require.NoError(t, err)
	assert.Equal(t, TokenCommentLine, spec.Type)

	_, err = ParseRuleSpec(`x`, "sparkles")
	assert.ErrorIs(t, err, ErrUnknownTokenType)
}

func TestBuiltinTablesBuild(t *testing.T) {
	for _, table := range []*RuleTable{CppRules(), GoRules(), JavaScriptRules()} {
		t.Run(table.Language(), func(t *testing.T) {
			assert.Positive(t, table.Len())
			bc, ok := table.BlockComment()
			assert.True(t, ok)
			assert.Equal(t, "/*", bc.Start)
		})
	}
}

func TestNewRuleTable(t *testing.T) {
	specs := []RuleSpec{{Pattern: `\bfoo\b`, Type: TokenKeyword}}

	table, err := NewRuleTable("custom", specs, &BlockComment{Start: "{-", End: "-}"})
	require.NoError(t, err)
	assert.Equal(t, "custom", table.Language())
	assert.Equal(t, specs, table.Specs())

	bc, ok := table.BlockComment()
	require.True(t, ok)
	assert.Equal(t, "{-", bc.Start)

	plain, err := NewRuleTable("plain", nil, nil)
	require.NoError(t, err)
	_, ok = plain.BlockComment()
	assert.False(t, ok)

	_, err = NewRuleTable("bad", nil, &BlockComment{Start: "/*"})
	assert.ErrorIs(t, err, ErrEmptyCommentDelimiter)
}

func TestRuleTableWithBlockComment(t *testing.T) {
	base := CppRules()

	swapped, err := base.WithBlockComment(&BlockComment{Start: "(*", End: "*)"})
	require.NoError(t, err)
	assert.Equal(t, base.Len(), swapped.Len())

	res := NewAnnotator(swapped).Annotate("x (* y", CommentNormal)
	assert.Equal(t, CommentInside, res.ExitState())

	orig, _ := base.BlockComment()
	assert.Equal(t, "/*", orig.Start)

	none, err := base.WithBlockComment(nil)
	require.NoError(t, err)
	res = NewAnnotator(none).Annotate("/* open", CommentNormal)
	assert.Equal(t, CommentNormal, res.ExitState())
}
