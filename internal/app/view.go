package app

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/renderer/backend"
	"github.com/dshills/linemark/internal/renderer/core"
	"github.com/dshills/linemark/internal/renderer/highlight"
	"github.com/dshills/linemark/internal/renderer/selection"
)

// textRows is the number of rows above the status line.
func (app *Application) textRows() int {
	if app.height <= 1 {
		return 1
	}
	return app.height - 1
}

func (app *Application) gutterWidth() int {
	if !app.opts.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(app.engine.LineCount())) + 1
}

// scrollLocked adjusts top and left so the cursor is on screen.
func (app *Application) scrollLocked() {
	cur := app.engine.Cursor()
	rows := app.textRows()
	if cur.Line < app.top {
		app.top = cur.Line
	}
	if cur.Line >= app.top+rows {
		app.top = cur.Line - rows + 1
	}

	cols := app.width - app.gutterWidth()
	if cols < 1 {
		cols = 1
	}
	col := displayColumn(app.layout(cur.Line), cur.Column)
	if col < app.left {
		app.left = col
	}
	if col >= app.left+cols {
		app.left = col - cols + 1
	}
}

func (app *Application) drawLocked() {
	app.backend.Clear()

	theme := app.engine.Theme()
	set := app.engine.HighlightSet()
	gutter := app.gutterWidth()

	for row := 0; row < app.textRows(); row++ {
		line := app.top + row
		if line >= app.engine.LineCount() {
			break
		}
		if gutter > 0 {
			app.drawGutter(row, line, gutter)
		}
		app.drawLine(row, line, gutter, theme, set.OnLine(line))
	}

	app.drawStatus()

	cur := app.engine.Cursor()
	x := gutter + displayColumn(app.layout(cur.Line), cur.Column) - app.left
	app.backend.ShowCursor(x, cur.Line-app.top)
	app.backend.Show()
}

func (app *Application) drawGutter(row, line, width int) {
	style := core.NewStyle(core.ColorGray)
	num := fmt.Sprintf("%*d ", width-1, line+1)
	for i, r := range num {
		app.backend.SetCell(i, row, backend.Cell{Rune: r, Style: style})
	}
}

// drawLine paints token styles, then the highlights intersecting the line
// in paint order. Highlights that run to the end of the line also fill
// the rest of the row.
func (app *Application) drawLine(row, line, gutter int, theme *highlight.Theme, sels []selection.LineSelection) {
	text, _ := app.engine.LineText(line)
	spans := app.engine.Spans(line)
	cs := layoutLine(text, app.opts.TabWidth)

	si := 0
	for _, c := range cs {
		for si < len(spans) && spans[si].End() <= c.start {
			si++
		}
		tok := highlight.TokenNone
		if si < len(spans) && spans[si].Contains(c.start) {
			tok = spans[si].Type
		}

		style := theme.StyleForToken(tok)
		for _, ls := range sels {
			if ls.Covers(c.start) {
				style = selection.Apply(style, ls)
			}
		}

		r := []rune(c.text)[0]
		if c.text == "\t" {
			r = ' '
		}
		for i := 0; i < c.width; i++ {
			x := gutter + c.col + i - app.left
			if x < gutter || x >= app.width {
				continue
			}
			if i == 0 || c.text == "\t" {
				app.backend.SetCell(x, row, backend.Cell{Rune: r, Style: style})
			}
		}
	}

	fill := core.DefaultStyle()
	for _, ls := range sels {
		if ls.Covers(len(text)) {
			fill = selection.Apply(fill, ls)
		}
	}
	if fill.IsDefault() {
		return
	}
	start := gutter + lineWidth(cs) - app.left
	if start < gutter {
		start = gutter
	}
	for x := start; x < app.width; x++ {
		app.backend.SetCell(x, row, backend.Cell{Rune: ' ', Style: fill})
	}
}

func (app *Application) drawStatus() {
	if app.height < 2 {
		return
	}
	cur := app.engine.Cursor()

	name := "[no file]"
	if app.opts.Path != "" {
		name = filepath.Base(app.opts.Path)
	}
	if app.modified {
		name += " [+]"
	}
	text := fmt.Sprintf(" %s  %d:%d  %s", name, cur.Line+1, cur.Column+1, app.engine.Rules().Language())
	if le := app.engine.LineEnding(); le != engine.LineEndingLF {
		text += "  " + le.String()
	}
	if app.status != "" {
		text += "  " + app.status
	}

	style := core.DefaultStyle()
	style.Attributes |= core.AttrReverse
	row := app.height - 1
	x := 0
	for _, r := range text {
		if x >= app.width {
			break
		}
		app.backend.SetCell(x, row, backend.Cell{Rune: r, Style: style})
		x++
	}
	for ; x < app.width; x++ {
		app.backend.SetCell(x, row, backend.Cell{Rune: ' ', Style: style})
	}
}
