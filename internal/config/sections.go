package config

import "errors"

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string
}

// HighlightConfig provides type-safe access to annotation settings.
type HighlightConfig struct {
	// Language selects a built-in rule table. Empty means detect from the file.
	Language string

	// Theme is the color theme name.
	Theme string

	// Rules are appended after the built-in rules of the language.
	Rules []RuleConfig

	// CommentStart and CommentEnd override the block comment delimiters.
	// Both must be set together.
	CommentStart string
	CommentEnd   string
}

// RuleConfig is one custom rule.
type RuleConfig struct {
	// Pattern is a Go regular expression.
	Pattern string
	// Style is a token type name such as "keyword" or "comment.line".
	Style string
	// Submatch styles only this capture group when non-zero.
	Submatch int
}

// BracketsConfig provides type-safe access to bracket matching settings.
type BracketsConfig struct {
	// Adjacency is "after" (only the character before the cursor) or
	// "either" (also the character under the cursor).
	Adjacency string
}

// EditorConfig provides type-safe access to viewer settings.
type EditorConfig struct {
	// CurrentLine highlights the line holding the cursor.
	CurrentLine bool
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
	}
}

// Highlight returns type-safe access to annotation settings.
func (c *Config) Highlight() HighlightConfig {
	return HighlightConfig{
		Language:     c.getStringOr("highlight.language", ""),
		Theme:        c.getStringOr("highlight.theme", "default"),
		Rules:        c.rules(),
		CommentStart: c.getStringOr("highlight.commentStart", ""),
		CommentEnd:   c.getStringOr("highlight.commentEnd", ""),
	}
}

// Brackets returns type-safe access to bracket matching settings.
func (c *Config) Brackets() BracketsConfig {
	return BracketsConfig{
		Adjacency: c.getStringOr("brackets.adjacency", "after"),
	}
}

// Editor returns type-safe access to viewer settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		CurrentLine: c.getBoolOr("editor.currentLine", true),
	}
}

// rules decodes highlight.rules, an array of tables.
func (c *Config) rules() []RuleConfig {
	const path = "highlight.rules"

	v, ok := c.Get(path)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		c.recordConfigError(path, &TypeError{Path: path, Want: "array", Got: typeName(v)})
		return nil
	}

	rules := make([]RuleConfig, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			c.recordConfigError(path, &TypeError{Path: path, Want: "table", Got: typeName(item)})
			continue
		}
		pattern, _ := m["pattern"].(string)
		style, _ := m["style"].(string)
		rc := RuleConfig{Pattern: pattern, Style: style}
		switch n := m["submatch"].(type) {
		case int:
			rc.Submatch = n
		case int64:
			rc.Submatch = int(n)
		}
		rules = append(rules, rc)
	}
	return rules
}

// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and also return the default.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// recordConfigError stores the first error seen for each path.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
