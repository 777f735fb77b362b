// Package errors provides structured error types for iconfinder.
//
// This package defines error codes that let loaders, storage and the HTTP
// API agree on what went wrong without string matching:
//   - NOT_FOUND: the icon set or collection list does not exist (404)
//   - INVALID_DATA: the payload parsed but failed a schema or identity
//     check, e.g. a prefix mismatch (503)
//   - INVALID_INPUT: malformed request parameters (400)
//   - NETWORK_ERROR: transport failures (502)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "icon set %s:%s", provider, prefix)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // show "not found"
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidData, origErr, "parse %s", prefix)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPrefix   Code = "INVALID_PREFIX"
	ErrCodeInvalidProvider Code = "INVALID_PROVIDER"

	// Data errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeInvalidData Code = "INVALID_DATA"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

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

// HTTPStatus maps an error to the status code a loader or API response
// would carry. Nil maps to 200; errors without a code map to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetCode(err) {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidData:
		return http.StatusServiceUnavailable
	case ErrCodeInvalidInput, ErrCodeInvalidPrefix, ErrCodeInvalidProvider:
		return http.StatusBadRequest
	case ErrCodeNetwork, ErrCodeTimeout:
		return http.StatusBadGateway
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus builds an error for a non-200 loader status. It is the inverse
// of [HTTPStatus] for the codes loaders produce.
func FromStatus(status int, format string, args ...any) *Error {
	switch {
	case status == http.StatusNotFound:
		return New(ErrCodeNotFound, format, args...)
	case status == http.StatusTooManyRequests:
		return New(ErrCodeRateLimited, format, args...)
	case status == http.StatusServiceUnavailable:
		return New(ErrCodeInvalidData, format, args...)
	case status >= 500:
		return New(ErrCodeNetwork, format, args...)
	default:
		return New(ErrCodeInvalidInput, format, args...)
	}
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
