package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Errors returned while building rule tables.
var (
	// ErrEmptyCommentDelimiter indicates a block comment with an empty start or end token.
	ErrEmptyCommentDelimiter = errors.New("empty block comment delimiter")

	// ErrUnknownTokenType indicates a style name that maps to no token type.
	ErrUnknownTokenType = errors.New("unknown token type")
)

// RuleError reports a rule pattern that failed to compile.
type RuleError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Rule is a compiled pattern and the style tag applied to its matches.
type Rule struct {
	// Pattern is the regex pattern to match.
	Pattern *regexp.Regexp

	// Type is the style tag to assign to matches.
	Type TokenType

	// Submatch is the submatch index to style (0 for whole match).
	Submatch int
}

// RuleSpec is the uncompiled form of a Rule.
type RuleSpec struct {
	Pattern  string
	Type     TokenType
	Submatch int
}

// BlockComment holds the literal tokens that open and close a
// multi-line comment.
type BlockComment struct {
	Start string
	End   string
}

// RuleTable is an ordered, immutable list of rules plus the block comment
// delimiters of a language. Later rules win where matches overlap, and
// block comment spans are applied after every rule.
//
// A RuleTable is safe to share; nothing mutates it after Build.
type RuleTable struct {
	language     string
	rules        []Rule
	comment      BlockComment
	hasComment   bool
	commentStyle TokenType
}

// Language returns the language name of the table.
func (t *RuleTable) Language() string {
	return t.language
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rule returns the i-th rule in evaluation order.
func (t *RuleTable) Rule(i int) Rule {
	return t.rules[i]
}

// BlockComment returns the block comment delimiters, if the table has any.
func (t *RuleTable) BlockComment() (BlockComment, bool) {
	return t.comment, t.hasComment
}

// Specs returns the uncompiled rules in evaluation order.
func (t *RuleTable) Specs() []RuleSpec {
	specs := make([]RuleSpec, len(t.rules))
	for i, r := range t.rules {
		specs[i] = RuleSpec{Pattern: r.Pattern.String(), Type: r.Type, Submatch: r.Submatch}
	}
	return specs
}

// With returns a new table with the given rules appended after the
// existing ones. The receiver is not modified.
func (t *RuleTable) With(specs ...RuleSpec) (*RuleTable, error) {
	var comment *BlockComment
	if t.hasComment {
		comment = &t.comment
	}
	return NewRuleTable(t.language, append(t.Specs(), specs...), comment)
}

// WithBlockComment returns a copy of the table using different block
// comment delimiters. A nil comment removes block comments.
func (t *RuleTable) WithBlockComment(comment *BlockComment) (*RuleTable, error) {
	return NewRuleTable(t.language, t.Specs(), comment)
}

// NewRuleTable compiles specs into a table. comment may be nil for a
// language without block comments.
func NewRuleTable(language string, specs []RuleSpec, comment *BlockComment) (*RuleTable, error) {
	b := NewBuilder(language)
	b.specs = append(b.specs, specs...)
	if comment != nil {
		b.BlockComment(comment.Start, comment.End)
	}
	return b.Build()
}

// Builder accumulates rule specs in evaluation order.
type Builder struct {
	language   string
	specs      []RuleSpec
	comment    BlockComment
	hasComment bool
}

// NewBuilder creates a rule table builder for a language.
func NewBuilder(language string) *Builder {
	return &Builder{language: language}
}

// Rule appends a whole-match rule.
func (b *Builder) Rule(pattern string, tokenType TokenType) *Builder {
	b.specs = append(b.specs, RuleSpec{Pattern: pattern, Type: tokenType})
	return b
}

// Submatch appends a rule that styles only the given capture group.
func (b *Builder) Submatch(pattern string, group int, tokenType TokenType) *Builder {
	b.specs = append(b.specs, RuleSpec{Pattern: pattern, Type: tokenType, Submatch: group})
	return b
}

// Keywords appends one rule matching any of the words on word boundaries.
func (b *Builder) Keywords(tokenType TokenType, words ...string) *Builder {
	if len(words) == 0 {
		return b
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return b.Rule(`\b(?:`+strings.Join(quoted, "|")+`)\b`, tokenType)
}

// BlockComment sets the multi-line comment delimiters.
func (b *Builder) BlockComment(start, end string) *Builder {
	b.comment = BlockComment{Start: start, End: end}
	b.hasComment = true
	return b
}

// Build compiles every pattern. The first malformed pattern aborts the
// build with a *RuleError.
func (b *Builder) Build() (*RuleTable, error) {
	if b.hasComment && (b.comment.Start == "" || b.comment.End == "") {
		return nil, ErrEmptyCommentDelimiter
	}

	rules := make([]Rule, 0, len(b.specs))
	for i, spec := range b.specs {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, &RuleError{Index: i, Pattern: spec.Pattern, Err: err}
		}
		if spec.Submatch < 0 || spec.Submatch > re.NumSubexp() {
			return nil, &RuleError{
				Index:   i,
				Pattern: spec.Pattern,
				Err:     fmt.Errorf("submatch %d out of range (pattern has %d groups)", spec.Submatch, re.NumSubexp()),
			}
		}
		rules = append(rules, Rule{Pattern: re, Type: spec.Type, Submatch: spec.Submatch})
	}

	return &RuleTable{
		language:     b.language,
		rules:        rules,
		comment:      b.comment,
		hasComment:   b.hasComment,
		commentStyle: TokenCommentBlock,
	}, nil
}

// MustBuild is like Build but panics on error. It is meant for tables
// assembled from literal patterns at init time.
func (b *Builder) MustBuild() *RuleTable {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// ParseRuleSpec converts a configured pattern and style name into a RuleSpec.
func ParseRuleSpec(pattern, style string) (RuleSpec, error) {
	tokenType, ok := TokenTypeFromString(style)
	if !ok {
		return RuleSpec{}, fmt.Errorf("%w: %q", ErrUnknownTokenType, style)
	}
	return RuleSpec{Pattern: pattern, Type: tokenType}, nil
}
