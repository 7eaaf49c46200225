package highlight

import (
	"fmt"
	"sort"

	"github.com/dshills/linemark/internal/renderer/core"
)

// Theme defines colors and styles for annotated text and for the
// transient cursor highlights.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Foreground is the default text color.
	Foreground core.Color

	// LineHighlight is the current line background.
	LineHighlight core.Color

	// BracketMatch is the background of a matched bracket pair.
	BracketMatch core.Color

	// TokenStyles maps token types to their styles.
	TokenStyles map[TokenType]core.Style
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	return core.NewStyle(t.Foreground)
}

// CurrentLineStyle returns the full-width current line style.
func (t *Theme) CurrentLineStyle() core.Style {
	return core.DefaultStyle().WithBackground(t.LineHighlight)
}

// BracketStyle returns the style of a matched bracket.
func (t *Theme) BracketStyle() core.Style {
	return core.DefaultStyle().WithBackground(t.BracketMatch)
}

// DefaultTheme returns the classic light theme: bold dark blue keywords,
// bold yellow classes, dark green strings, italic dark red calls and
// green comments on a pale yellow current line.
func DefaultTheme() *Theme {
	return &Theme{
		Name:          "default",
		Foreground:    core.ColorDefault,
		LineHighlight: core.ColorYellow.Lighter(1.6),
		BracketMatch:  core.ColorFromRGB(255, 20, 147),
		TokenStyles: map[TokenType]core.Style{
			TokenKeyword:      core.NewStyle(core.ColorDarkBlue).Bold(),
			TokenTypeClass:    core.NewStyle(core.ColorYellow).Bold(),
			TokenString:       core.NewStyle(core.ColorDarkGreen),
			TokenNumber:       core.NewStyle(core.ColorDarkBlue),
			TokenFunctionCall: core.NewStyle(core.ColorDarkRed).Italic(),
			TokenCommentLine:  core.NewStyle(core.ColorGreen),
			TokenCommentBlock: core.NewStyle(core.ColorGreen),
			TokenMeta:         core.NewStyle(core.ColorGray),
		},
	}
}

// DarkTheme returns a dark theme.
func DarkTheme() *Theme {
	bg := core.ColorFromRGB(30, 30, 30)
	return &Theme{
		Name:          "dark",
		Foreground:    core.ColorFromRGB(212, 212, 212),
		LineHighlight: core.ColorFromRGB(40, 40, 40),
		BracketMatch:  bg.Blend(core.ColorFromRGB(255, 20, 147), 0.5),
		TokenStyles: map[TokenType]core.Style{
			TokenKeyword:      core.NewStyle(core.ColorFromRGB(86, 156, 214)).Bold(),
			TokenTypeClass:    core.NewStyle(core.ColorFromRGB(78, 201, 176)),
			TokenString:       core.NewStyle(core.ColorFromRGB(206, 145, 120)),
			TokenNumber:       core.NewStyle(core.ColorFromRGB(181, 206, 168)),
			TokenFunctionCall: core.NewStyle(core.ColorFromRGB(220, 220, 170)).Italic(),
			TokenCommentLine:  core.NewStyle(core.ColorFromRGB(106, 153, 85)),
			TokenCommentBlock: core.NewStyle(core.ColorFromRGB(106, 153, 85)),
			TokenMeta:         core.NewStyle(core.ColorFromRGB(197, 134, 192)),
		},
	}
}

var themes = map[string]func() *Theme{
	"default": DefaultTheme,
	"dark":    DarkTheme,
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (*Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	ctor, ok := themes[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	return ctor(), nil
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
