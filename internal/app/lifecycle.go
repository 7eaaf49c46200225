package app

import (
	"errors"
	"os"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/logging"
)

// Save writes the engine's text to the configured path.
func (app *Application) Save() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.save()
}

func (app *Application) save() error {
	if app.engine.IsReadOnly() {
		return engine.ErrReadOnly
	}
	if app.opts.Path == "" {
		return ErrNoPath
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(app.opts.Path); err == nil {
		mode = info.Mode().Perm()
	}

	text := app.engine.Text()
	if err := os.WriteFile(app.opts.Path, []byte(text), mode); err != nil {
		return &FileError{Op: "save", Path: app.opts.Path, Err: err}
	}
	app.modified = false
	app.logger.Info("saved", logging.FieldLines, app.engine.LineCount())
	return nil
}

func (app *Application) saveLocked() {
	if err := app.save(); err != nil {
		if errors.Is(err, engine.ErrReadOnly) {
			app.status = "read-only"
			return
		}
		app.status = err.Error()
		return
	}
	app.status = "saved"
}
