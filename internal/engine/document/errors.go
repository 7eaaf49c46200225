package document

import "errors"

// Errors returned by document operations.
var (
	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrColumnOutOfRange indicates a column past the end of its line or
	// inside a multi-byte character.
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrOffsetOutOfRange indicates an absolute offset outside the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (end before start).
	ErrRangeInvalid = errors.New("invalid range")
)
