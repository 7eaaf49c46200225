package engine

import (
	"errors"

	"github.com/dshills/linemark/internal/engine/document"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = document.ErrLineOutOfRange

	// ErrColumnOutOfRange indicates a column outside its line.
	ErrColumnOutOfRange = document.ErrColumnOutOfRange

	// ErrOffsetOutOfRange indicates an offset outside the document.
	ErrOffsetOutOfRange = document.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates an invalid range (end before start).
	ErrRangeInvalid = document.ErrRangeInvalid
)
