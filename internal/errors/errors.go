// Package errors holds the domain error type shared by the codec, the
// services and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
)

// Error codes. They are part of the HTTP contract.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeUnsupportedVersion = "UNSUPPORTED_VERSION"
	CodeMalformedPayload   = "MALFORMED_PAYLOAD"
	CodeNotFound           = "NOT_FOUND"
)

// DomainError is a typed failure carrying a machine-readable code and,
// for validation failures, the offending field.
type DomainError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code, so
// errors.Is(err, ErrInvalidFormat) works for every instance of a kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgument = &DomainError{
		Code:    CodeInvalidArgument,
		Message: "invalid argument",
	}
	ErrInvalidFormat = &DomainError{
		Code:    CodeInvalidFormat,
		Message: "invalid payment request format",
	}
	ErrUnsupportedVersion = &DomainError{
		Code:    CodeUnsupportedVersion,
		Message: "unsupported payment request version",
	}
	ErrMalformedPayload = &DomainError{
		Code:    CodeMalformedPayload,
		Message: "malformed payment request payload",
	}
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "payment request not found",
	}
)

// InvalidArgument reports a field that failed validation.
func InvalidArgument(field, message string) *DomainError {
	return &DomainError{Code: CodeInvalidArgument, Field: field, Message: message}
}

// InvalidFormat reports an envelope that does not have the expected shape.
func InvalidFormat(message string) *DomainError {
	return &DomainError{Code: CodeInvalidFormat, Message: message}
}

// UnsupportedVersion reports a version segment no registered format handles.
func UnsupportedVersion(version string) *DomainError {
	return &DomainError{
		Code:    CodeUnsupportedVersion,
		Message: fmt.Sprintf("unsupported version %q", version),
	}
}

// MalformedPayload wraps a decoding, decompression or parse failure.
func MalformedPayload(stage string, err error) *DomainError {
	return &DomainError{
		Code:    CodeMalformedPayload,
		Message: stage + " failed",
		Err:     err,
	}
}

// CodeOf returns the domain code of err, or "" when err is not a DomainError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// FieldOf returns the offending field of err, or "".
func FieldOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
