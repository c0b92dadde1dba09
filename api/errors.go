// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-codec.
//
// Codec failures fall into three classes: input that is incomplete and may
// be retried with more bytes, input that is malformed and must be rejected,
// and caller contract violations.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrIncomplete      = fmt.Errorf("incomplete input")
	ErrMalformed       = fmt.Errorf("malformed input")
	ErrPrecondition    = fmt.Errorf("precondition violated")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeIncomplete
	ErrCodeMalformed
	ErrCodePrecondition
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeIncomplete:
		return "incomplete"
	case ErrCodeMalformed:
		return "malformed"
	case ErrCodePrecondition:
		return "precondition"
	case ErrCodeInvalidArgument:
		return "invalid-argument"
	case ErrCodeNotSupported:
		return "not-supported"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the class sentinels ErrIncomplete, ErrMalformed and ErrPrecondition.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrIncomplete:
		return e.Code == ErrCodeIncomplete
	case ErrMalformed:
		return e.Code == ErrCodeMalformed
	case ErrPrecondition:
		return e.Code == ErrCodePrecondition
	}
	return false
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a structured error around cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	e := NewError(code, message)
	e.Err = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried by err, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
