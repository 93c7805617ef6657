// Package errors provides structured error types for meridian.
//
// Error codes are machine-readable and shared by the library packages, the
// HTTP API and the CLI:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_*: References to things that do not exist
//   - NETWORK_* / TIMEOUT / UNAVAILABLE: Remote service failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDimension, "width must be positive, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidDimension) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "generate reply")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDimension  Code = "INVALID_DIMENSION"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidDataset    Code = "INVALID_DATASET"
	ErrCodeInvalidState      Code = "INVALID_STATE"

	// Reference errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeUnknownHub      Code = "UNKNOWN_HUB"
	ErrCodeUnknownPlatform Code = "UNKNOWN_PLATFORM"

	// Remote service errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeUnavailable Code = "UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// validation lists the codes that blame the caller rather than the system.
var validation = map[Code]bool{
	ErrCodeInvalidInput:      true,
	ErrCodeInvalidDimension:  true,
	ErrCodeInvalidCoordinate: true,
	ErrCodeInvalidFormat:     true,
	ErrCodeInvalidDataset:    true,
	ErrCodeInvalidState:      true,
	ErrCodeUnknownHub:        true,
	ErrCodeUnknownPlatform:   true,
}

// Validation reports whether c is an INVALID_* or UNKNOWN_* code.
func (c Code) Validation() bool { return validation[c] }

// Error carries a Code, a message safe to show users, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without its code prefix, or err.Error()
// for errors that carry no code.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries a validation code, meaning the
// caller sent something wrong rather than the system failing.
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}
