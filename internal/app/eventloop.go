package app

import (
	"errors"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/renderer/backend"
)

// HandleEvent applies one event and redraws. It returns ErrQuit when the
// user asks to leave.
func (app *Application) HandleEvent(ev backend.Event) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	var err error
	switch ev.Type {
	case backend.EventResize:
		app.width, app.height = ev.Width, ev.Height
	case backend.EventKey:
		err = app.handleKeyLocked(ev)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	app.scrollLocked()
	app.drawLocked()
	return nil
}

func (app *Application) handleKeyLocked(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlQ, backend.KeyCtrlC, backend.KeyEscape:
		return ErrQuit
	}

	app.status = ""
	switch ev.Key {
	case backend.KeyCtrlS:
		app.saveLocked()
	case backend.KeyLeft:
		app.moveHorizontal(-1)
	case backend.KeyRight:
		app.moveHorizontal(1)
	case backend.KeyUp:
		app.moveVertical(-1)
	case backend.KeyDown:
		app.moveVertical(1)
	case backend.KeyPageUp:
		app.moveVertical(-app.textRows())
	case backend.KeyPageDown:
		app.moveVertical(app.textRows())
	case backend.KeyHome:
		cur := app.engine.Cursor()
		app.moveTo(engine.Point{Line: cur.Line})
	case backend.KeyEnd:
		cur := app.engine.Cursor()
		text, _ := app.engine.LineText(cur.Line)
		app.moveTo(engine.Point{Line: cur.Line, Column: len(text)})
	case backend.KeyRune:
		app.insertLocked(string(ev.Rune))
	case backend.KeyEnter:
		app.insertLocked("\n")
	case backend.KeyTab:
		app.insertLocked("\t")
	case backend.KeyBackspace:
		app.backspaceLocked()
	case backend.KeyDelete:
		app.deleteForwardLocked()
	}
	return nil
}

func (app *Application) moveTo(p engine.Point) {
	app.engine.MoveCursor(p)
	app.goalCol = -1
}

func (app *Application) layout(line int) []cluster {
	text, _ := app.engine.LineText(line)
	return layoutLine(text, app.opts.TabWidth)
}

// moveHorizontal steps one grapheme cluster, wrapping across line ends.
func (app *Application) moveHorizontal(dir int) {
	cur := app.engine.Cursor()
	cs := app.layout(cur.Line)

	switch {
	case dir < 0 && cur.Column > 0:
		cur.Column = prevBoundary(cs, cur.Column)
	case dir < 0 && cur.Line > 0:
		cur.Line--
		text, _ := app.engine.LineText(cur.Line)
		cur.Column = len(text)
	case dir > 0 && cur.Column < nextBoundary(cs, cur.Column):
		cur.Column = nextBoundary(cs, cur.Column)
	case dir > 0 && cur.Line < app.engine.LineCount()-1:
		cur.Line++
		cur.Column = 0
	default:
		return
	}
	app.moveTo(cur)
}

// moveVertical moves n lines, keeping the display column the cursor had
// before the first vertical move.
func (app *Application) moveVertical(n int) {
	cur := app.engine.Cursor()
	if app.goalCol < 0 {
		app.goalCol = displayColumn(app.layout(cur.Line), cur.Column)
	}

	line := cur.Line + n
	if line < 0 {
		line = 0
	}
	if last := app.engine.LineCount() - 1; line > last {
		line = last
	}
	col := byteColumn(app.layout(line), app.goalCol)
	app.engine.MoveCursor(engine.Point{Line: line, Column: col})
}

func (app *Application) insertLocked(text string) {
	res, err := app.engine.Insert(app.engine.Cursor(), text)
	app.afterEdit(res, err)
}

func (app *Application) backspaceLocked() {
	cur := app.engine.Cursor()
	start := cur
	switch {
	case cur.Column > 0:
		start.Column = prevBoundary(app.layout(cur.Line), cur.Column)
	case cur.Line > 0:
		text, _ := app.engine.LineText(cur.Line - 1)
		start = engine.Point{Line: cur.Line - 1, Column: len(text)}
	default:
		return
	}
	res, err := app.engine.Delete(start, cur)
	app.afterEdit(res, err)
}

func (app *Application) deleteForwardLocked() {
	cur := app.engine.Cursor()
	text, _ := app.engine.LineText(cur.Line)
	end := cur
	switch {
	case cur.Column < len(text):
		end.Column = nextBoundary(app.layout(cur.Line), cur.Column)
	case cur.Line < app.engine.LineCount()-1:
		end = engine.Point{Line: cur.Line + 1}
	default:
		return
	}
	res, err := app.engine.Delete(cur, end)
	app.afterEdit(res, err)
}

func (app *Application) afterEdit(res engine.EditResult, err error) {
	if err != nil {
		if errors.Is(err, engine.ErrReadOnly) {
			app.status = "read-only"
			return
		}
		app.status = err.Error()
		app.logger.Warn("edit failed", logging.FieldError, err)
		return
	}
	app.modified = true
	app.goalCol = -1
	app.logger.Debug("edit",
		logging.FieldEdited, res.Change.Edited,
		logging.FieldReannotated, res.Change.Reannotated,
	)
}
