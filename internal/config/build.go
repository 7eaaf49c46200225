package config

import (
	"errors"
	"fmt"

	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/renderer/bracket"
	"github.com/dshills/linemark/internal/renderer/highlight"
)

// fallbackLanguage is used when no language is set and detection fails.
const fallbackLanguage = "cpp"

// Validate checks every setting and compiles custom rules. All problems
// are returned together as *ValidationError values joined with errors.Join.
func (c *Config) Validate() error {
	var errs []error

	lc := c.Logging()
	if !logging.ValidLevel(lc.Level) {
		errs = append(errs, &ValidationError{
			Path: "logging.level", Message: "unknown log level", Value: lc.Level, Code: ErrCodeInvalidEnum,
		})
	}

	hc := c.Highlight()
	if _, err := highlight.ThemeByName(hc.Theme); err != nil {
		errs = append(errs, &ValidationError{
			Path: "highlight.theme", Message: "unknown theme", Value: hc.Theme, Code: ErrCodeInvalidEnum, Err: err,
		})
	}
	if hc.Language != "" {
		if _, ok := highlight.DefaultRegistry().ByLanguage(hc.Language); !ok {
			errs = append(errs, &ValidationError{
				Path: "highlight.language", Message: "unknown language", Value: hc.Language, Code: ErrCodeInvalidEnum,
			})
		}
	}
	if (hc.CommentStart == "") != (hc.CommentEnd == "") {
		errs = append(errs, &ValidationError{
			Path:    "highlight.commentEnd",
			Message: "commentStart and commentEnd must be set together",
			Value:   [2]string{hc.CommentStart, hc.CommentEnd},
			Code:    ErrCodeRequiredMissing,
		})
	}
	if _, err := ruleSpecs(hc.Rules); err != nil {
		errs = append(errs, err)
	}

	bc := c.Brackets()
	if _, ok := bracket.ParseAdjacency(bc.Adjacency); !ok {
		errs = append(errs, &ValidationError{
			Path: "brackets.adjacency", Message: `must be "after" or "either"`, Value: bc.Adjacency, Code: ErrCodeInvalidEnum,
		})
	}

	for path, err := range c.ConfigErrors() {
		errs = append(errs, &ValidationError{
			Path: path, Message: err.Error(), Code: ErrCodeTypeMismatch, Err: err,
		})
	}

	return errors.Join(errs...)
}

// ruleSpecs parses and compiles the custom rules. The first bad rule is
// reported.
func ruleSpecs(rules []RuleConfig) ([]highlight.RuleSpec, error) {
	specs := make([]highlight.RuleSpec, 0, len(rules))
	for i, rc := range rules {
		path := fmt.Sprintf("highlight.rules[%d]", i)
		spec, err := highlight.ParseRuleSpec(rc.Pattern, rc.Style)
		if err != nil {
			return nil, &ValidationError{Path: path + ".style", Message: "unknown style", Value: rc.Style, Code: ErrCodeInvalidEnum, Err: err}
		}
		spec.Submatch = rc.Submatch
		specs = append(specs, spec)
	}
	if _, err := highlight.NewRuleTable("custom", specs, nil); err != nil {
		var rerr *highlight.RuleError
		if errors.As(err, &rerr) {
			return nil, &ValidationError{
				Path:    fmt.Sprintf("highlight.rules[%d].pattern", rerr.Index),
				Message: rerr.Err.Error(),
				Value:   rerr.Pattern,
				Code:    ErrCodePatternMismatch,
				Err:     err,
			}
		}
		return nil, err
	}
	return specs, nil
}

// Theme returns the configured theme.
func (c *Config) Theme() (*highlight.Theme, error) {
	name := c.Highlight().Theme
	theme, err := highlight.ThemeByName(name)
	if err != nil {
		return nil, &ValidationError{Path: "highlight.theme", Message: "unknown theme", Value: name, Code: ErrCodeInvalidEnum, Err: err}
	}
	return theme, nil
}

// Adjacency returns the configured bracket adjacency mode.
func (c *Config) Adjacency() (bracket.Adjacency, error) {
	name := c.Brackets().Adjacency
	a, ok := bracket.ParseAdjacency(name)
	if !ok {
		return a, &ValidationError{Path: "brackets.adjacency", Message: `must be "after" or "either"`, Value: name, Code: ErrCodeInvalidEnum}
	}
	return a, nil
}

// RuleTable builds the rule table for a file: the configured language (or
// the one detected from filename and content, falling back to cpp), then
// the custom rules, then any block comment override.
func (c *Config) RuleTable(reg *highlight.Registry, filename string, content []byte) (*highlight.RuleTable, error) {
	hc := c.Highlight()

	var (
		table *highlight.RuleTable
		ok    bool
	)
	if hc.Language != "" {
		table, ok = reg.ByLanguage(hc.Language)
		if !ok {
			return nil, &ValidationError{Path: "highlight.language", Message: "unknown language", Value: hc.Language, Code: ErrCodeInvalidEnum}
		}
	} else if table, ok = reg.Detect(filename, content); !ok {
		table, ok = reg.ByLanguage(fallbackLanguage)
		if !ok {
			return nil, fmt.Errorf("no rule table for %q and no %s fallback", filename, fallbackLanguage)
		}
	}

	specs, err := ruleSpecs(hc.Rules)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if table, err = table.With(specs...); err != nil {
			return nil, err
		}
	}

	if hc.CommentStart != "" || hc.CommentEnd != "" {
		table, err = table.WithBlockComment(&highlight.BlockComment{Start: hc.CommentStart, End: hc.CommentEnd})
		if err != nil {
			return nil, &ValidationError{
				Path: "highlight.commentStart", Message: err.Error(), Value: hc.CommentStart, Code: ErrCodeRequiredMissing, Err: err,
			}
		}
	}

	return table, nil
}
