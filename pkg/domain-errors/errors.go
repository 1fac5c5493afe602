// Package domainerrors defines the closed set of error kinds services return
// to the transport layer. Every error carries a machine-readable code, a
// human-readable message, and, for validation failures, an optional map of
// per-field messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error kind. The transport layer maps codes to HTTP
// statuses; services never reference statuses directly.
type Code string

const (
	CodeValidation Code = "validation_failed"
	CodeConflict   Code = "conflict"
	CodeNotFound   Code = "not_found"
	CodeBadRequest Code = "bad_request"
	CodeInternal   Code = "internal_error"
)

// Error is the tagged-variant domain error. It wraps an optional cause so
// errors.Is/As still reach infrastructure sentinels.
type Error struct {
	Code    Code
	Message string
	// Fields holds per-field messages for CodeValidation errors.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation builds a CodeValidation error carrying per-field messages.
func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// non-domain errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
