package config

import (
	"errors"
	"fmt"

	"github.com/dshills/linemark/internal/config/loader"
)

var (
	ErrSettingNotFound  = errors.New("setting not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPath      = errors.New("invalid setting path")
)

// ParseError is a syntax error in the config file.
type ParseError = loader.ParseError

// ValidationError reports a setting whose value cannot be used. It
// matches ErrValidationFailed and, when set, Err.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidationFailed}
	}
	return []error{ErrValidationFailed, e.Err}
}

// ValidationErrorCode classifies a ValidationError.
type ValidationErrorCode uint8

const (
	ErrCodeTypeMismatch ValidationErrorCode = iota
	ErrCodeInvalidEnum
	ErrCodePatternMismatch
	ErrCodeRequiredMissing
)

var validationCodeNames = [...]string{
	ErrCodeTypeMismatch:    "type_mismatch",
	ErrCodeInvalidEnum:     "invalid_enum",
	ErrCodePatternMismatch: "pattern_mismatch",
	ErrCodeRequiredMissing: "required_missing",
}

func (c ValidationErrorCode) String() string {
	if int(c) < len(validationCodeNames) {
		return validationCodeNames[c]
	}
	return "unknown"
}

// TypeError reports a setting holding a value of the wrong type.
type TypeError struct {
	Path string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Path, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
