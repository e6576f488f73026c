// Package errors provides structured error types for viewgrid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - One-line user messages of the form "CODE: message"
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural codes abort the operation that produced them:
//   - INVALID_LAYOUT: grid dimensions or cell counts out of range
//   - INVALID_RANGE: text layout with no usable labels or sizes
//   - UNKNOWN_STYLE: border style outside the known set
//   - INVALID_COLORMAP: malformed or inconsistent colormap description
//   - MISSING_FILE: an input file does not exist
//
// VIEWPORT_MISMATCH is diagnostic only: it is recorded and logged, and the
// operation that produced it carries on.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayout, "%d cells do not fit a %dx%d grid", n, rows, cols)
//	if errors.Is(err, errors.ErrCodeInvalidLayout) {
//	    // Handle layout error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidColorMap, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout and decoration errors
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidRange     Code = "INVALID_RANGE"
	ErrCodeUnknownStyle     Code = "UNKNOWN_STYLE"
	ErrCodeViewportMismatch Code = "VIEWPORT_MISMATCH"

	// Colormap and file errors
	ErrCodeInvalidColorMap Code = "INVALID_COLORMAP"
	ErrCodeMissingFile     Code = "MISSING_FILE"

	// Window and widget errors
	ErrCodeInvalidState   Code = "INVALID_STATE"
	ErrCodeWidgetAttached Code = "WIDGET_ATTACHED"

	// Configuration errors
	ErrCodeUnknownSurface Code = "UNKNOWN_SURFACE"
	ErrCodeUnknownDemo    Code = "UNKNOWN_DEMO"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidScene   Code = "INVALID_SCENE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDiagnostic reports whether err only carries a warning that callers may
// log and ignore.
func IsDiagnostic(err error) bool {
	return Is(err, ErrCodeViewportMismatch)
}
