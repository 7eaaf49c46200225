package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/renderer/core"
	"github.com/dshills/linemark/internal/renderer/highlight"
)

// Output formats of annotate.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// report is the serializable annotation of a whole file.
type report struct {
	File     string       `json:"file" yaml:"file"`
	Language string       `json:"language" yaml:"language"`
	Lines    []lineReport `json:"lines" yaml:"lines"`
	Match    *pairReport  `json:"match,omitempty" yaml:"match,omitempty"`
}

type lineReport struct {
	Line     int            `json:"line" yaml:"line"`
	Text     string         `json:"text" yaml:"text"`
	Entry    string         `json:"entry" yaml:"entry"`
	Exit     string         `json:"exit" yaml:"exit"`
	Spans    []spanReport   `json:"spans,omitempty" yaml:"spans,omitempty"`
	Brackets []bracketEntry `json:"brackets,omitempty" yaml:"brackets,omitempty"`
}

type spanReport struct {
	Start  int    `json:"start" yaml:"start"`
	Length int    `json:"length" yaml:"length"`
	Style  string `json:"style" yaml:"style"`
}

type bracketEntry struct {
	Offset int    `json:"offset" yaml:"offset"`
	Char   string `json:"char" yaml:"char"`
}

// pairReport uses 1-based lines and columns, like the --line/--col flags.
type pairReport struct {
	Open  position `json:"open" yaml:"open"`
	Close position `json:"close" yaml:"close"`
}

type position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func newPairReport(p engine.Pair) *pairReport {
	return &pairReport{
		Open:  position{Line: p.Open.Line + 1, Column: p.Open.Column + 1},
		Close: position{Line: p.Close.Line + 1, Column: p.Close.Column + 1},
	}
}

func (p *pairReport) String() string {
	return fmt.Sprintf("%d:%d %d:%d", p.Open.Line, p.Open.Column, p.Close.Line, p.Close.Column)
}

// buildReport annotates every line of eng.
func buildReport(file string, eng *engine.Engine) *report {
	r := &report{File: file, Language: eng.Rules().Language()}

	for i := 0; i < eng.LineCount(); i++ {
		text, _ := eng.LineText(i)
		block, _ := eng.Block(i)
		entry := highlight.CommentNormal
		if i > 0 {
			entry = eng.ExitState(i - 1)
		}

		lr := lineReport{
			Line:  i + 1,
			Text:  text,
			Entry: entry.String(),
			Exit:  block.ExitState().String(),
		}
		for _, s := range eng.Spans(i) {
			lr.Spans = append(lr.Spans, spanReport{Start: s.Start, Length: s.Length, Style: s.Type.String()})
		}
		for _, m := range block.Markers() {
			lr.Brackets = append(lr.Brackets, bracketEntry{Offset: m.Offset, Char: string(m.Char)})
		}
		r.Lines = append(r.Lines, lr)
	}
	return r
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// colorEnabled resolves the --color flag against the output writer.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}

// textPrinter renders annotated lines for a terminal.
type textPrinter struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	theme    *highlight.Theme
	color    bool
	gutter   lipgloss.Style
}

func newTextPrinter(w io.Writer, theme *highlight.Theme, color bool) *textPrinter {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &textPrinter{
		w:        w,
		renderer: r,
		theme:    theme,
		color:    color,
		gutter:   r.NewStyle().Foreground(lipgloss.Color(core.ColorGray.ToHex())),
	}
}

// lipglossStyle converts a style for the printer's renderer.
func (p *textPrinter) lipglossStyle(s core.Style) lipgloss.Style {
	ls := p.renderer.NewStyle()
	if !s.Foreground.IsDefault() {
		ls = ls.Foreground(lipgloss.Color(s.Foreground.ToHex()))
	}
	if !s.Background.IsDefault() {
		ls = ls.Background(lipgloss.Color(s.Background.ToHex()))
	}
	return ls.
		Bold(s.Attributes.Has(core.AttrBold)).
		Italic(s.Attributes.Has(core.AttrItalic)).
		Underline(s.Attributes.Has(core.AttrUnderline)).
		Reverse(s.Attributes.Has(core.AttrReverse))
}

// renderLine styles each span of text, then layers the bracket highlights
// in bracketCols on top.
func (p *textPrinter) renderLine(text string, spans []highlight.StyleSpan, bracketCols map[int]bool) string {
	var sb strings.Builder
	si := 0
	for i := 0; i < len(text); {
		for si < len(spans) && spans[si].End() <= i {
			si++
		}
		tok := highlight.TokenNone
		end := len(text)
		if si < len(spans) {
			if spans[si].Contains(i) {
				tok = spans[si].Type
				end = spans[si].End()
			} else {
				end = spans[si].Start
			}
		}
		for j := i; j < end; j++ {
			if bracketCols[j] {
				end = j
				if j == i {
					end = i + 1
				}
				break
			}
		}

		style := p.theme.StyleForToken(tok)
		if bracketCols[i] {
			style = style.Merge(p.theme.BracketStyle())
		}
		sb.WriteString(p.lipglossStyle(style).Render(text[i:end]))
		i = end
	}
	return sb.String()
}

// printColored writes the source with token styles applied.
func (p *textPrinter) printColored(eng *engine.Engine, r *report, pair *engine.Pair) error {
	width := len(fmt.Sprint(len(r.Lines)))
	for i, lr := range r.Lines {
		cols := map[int]bool{}
		if pair != nil {
			if pair.Open.Line == i {
				cols[pair.Open.Column] = true
			}
			if pair.Close.Line == i {
				cols[pair.Close.Column] = true
			}
		}
		num := p.gutter.Render(fmt.Sprintf("%*d", width, lr.Line))
		if _, err := fmt.Fprintf(p.w, "%s  %s\n", num, p.renderLine(lr.Text, eng.Spans(i), cols)); err != nil {
			return err
		}
	}
	return nil
}

// printPlain writes one line per source line followed by its spans.
func (p *textPrinter) printPlain(r *report) error {
	for _, lr := range r.Lines {
		if _, err := fmt.Fprintf(p.w, "%d\t%s\t%s\t%s\n", lr.Line, lr.Entry, lr.Exit, lr.Text); err != nil {
			return err
		}
		for _, s := range lr.Spans {
			if _, err := fmt.Fprintf(p.w, "\t[%d,%d)\t%s\t%q\n", s.Start, s.Start+s.Length, s.Style, lr.Text[s.Start:s.Start+s.Length]); err != nil {
				return err
			}
		}
	}
	return nil
}
