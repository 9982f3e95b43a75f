// ============================================================================
// meinDENKWERK (mDW) - Transkriptor
// ============================================================================
//
// Package:     apperr
// Description: Error taxonomy for the transcription pipeline
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package apperr classifies the failures the transcription pipeline can
// surface to the presentation layer.
//
// Validation errors are returned synchronously before any background work
// starts. API, network and IO errors happen on the worker and reach the
// presentation layer as Failure outcomes.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class
type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeAPI        Code = "API"
	CodeNetwork    Code = "NETWORK"
	CodeIO         Code = "IO"
)

// Error is a classified pipeline error
type Error struct {
	Code    Code
	Message string

	// Status and Body are set for API errors
	Status int
	Body   string

	Cause error
}

// Error returns a human-readable message suitable for the status line
func (e *Error) Error() string {
	switch {
	case e.Code == CodeAPI && e.Status != 0:
		return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error { return e.Cause }

// Validation creates an error for bad user input or configuration
func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// API creates an error for a non-2xx response of the transcription service
func API(status int, body string) *Error {
	return &Error{
		Code:    CodeAPI,
		Message: fmt.Sprintf("API error %d", status),
		Status:  status,
		Body:    body,
	}
}

// APIDecode creates an error for a response body that could not be decoded
func APIDecode(cause error) *Error {
	return &Error{Code: CodeAPI, Message: "failed to decode API response", Cause: cause}
}

// Network creates an error for transport failures (DNS, TLS, timeout)
func Network(cause error) *Error {
	return &Error{Code: CodeNetwork, Message: "request failed", Cause: cause}
}

// IO creates an error for file read/write/copy failures
func IO(op string, cause error) *Error {
	return &Error{Code: CodeIO, Message: op, Cause: cause}
}

// CodeOf returns the code of the first *Error in the chain, or "" if none
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }

// IsAPI reports whether err is an API error
func IsAPI(err error) bool { return CodeOf(err) == CodeAPI }

// IsNetwork reports whether err is a transport error
func IsNetwork(err error) bool { return CodeOf(err) == CodeNetwork }

// IsIO reports whether err is a file system error
func IsIO(err error) bool { return CodeOf(err) == CodeIO }
