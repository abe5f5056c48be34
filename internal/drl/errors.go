package drl

import (
	"errors"
	"fmt"
)

// Error is a translation failure. It aborts the atom or expression being
// converted; callers must not emit the enclosing rule.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Limit names the exceeded capacity (CAPACITY_EXCEEDED only).
	Limit string

	// Max is the configured maximum of Limit (CAPACITY_EXCEEDED only).
	Max int
}

// ErrorCode categorizes translation errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedConstruct indicates an atom or expression the target
	// syntax cannot express, such as a data range atom in a rule body.
	ErrCodeUnsupportedConstruct ErrorCode = "UNSUPPORTED_CONSTRUCT"

	// ErrCodeCapacityExceeded indicates a built-in exceeds one of the fixed
	// container sizes in Limits.
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
)

// Capacity names used in Error.Limit.
const (
	LimitPatternArguments = "pattern arguments"
	LimitPathVariables    = "path variables"
	LimitVariableNames    = "variable names"
	LimitBuiltInArguments = "built-in arguments"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnsupportedError creates an Error for a construct with no translation.
func NewUnsupportedError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedConstruct,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewCapacityError creates an Error for an exceeded container capacity.
func NewCapacityError(limit string, max, got int) *Error {
	return &Error{
		Code:    ErrCodeCapacityExceeded,
		Message: fmt.Sprintf("too many %s: the engine supports a maximum of %d, got %d", limit, max, got),
		Limit:   limit,
		Max:     max,
	}
}

// IsUnsupported reports whether err is, or wraps, an UNSUPPORTED_CONSTRUCT error.
func IsUnsupported(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeUnsupportedConstruct
	}
	return false
}

// IsCapacityExceeded reports whether err is, or wraps, a CAPACITY_EXCEEDED error.
func IsCapacityExceeded(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeCapacityExceeded
	}
	return false
}
