package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a model failure class. Callers branch
// on codes, never on message text.
type ErrorCode string

const (
	// ErrCodeConfigNotFound: no comp plan, W-4, or reference pay date
	// resolves for the party/date. Fatal to the call that needs it.
	ErrCodeConfigNotFound ErrorCode = "config_not_found"
	// ErrCodeValidation: an input object contains an unknown field or an
	// out-of-range value. The input is rejected before any computation.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeAlignment: a per-date override does not match any generated
	// regular pay date.
	ErrCodeAlignment ErrorCode = "alignment"
)

// ModelError is the failure variant of a model call. It carries a stable code
// and, for validation failures, the offending field path.
type ModelError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *ModelError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewConfigNotFoundError reports a missing configuration dependency.
func NewConfigNotFoundError(format string, args ...any) *ModelError {
	return &ModelError{Code: ErrCodeConfigNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError reports an invalid input value at the given field path.
func NewValidationError(field, format string, args ...any) *ModelError {
	return &ModelError{Code: ErrCodeValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewAlignmentError reports an override date that matches no generated pay date.
func NewAlignmentError(format string, args ...any) *ModelError {
	return &ModelError{Code: ErrCodeAlignment, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is (or wraps) a ModelError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
