package ims

import (
	"errors"
	"fmt"
)

// Code identifies a failure class with a stable value suitable for
// programmatic branching.
type Code string

const (
	// CodeBadCredentialsFormat indicates the raw parameters were not an object.
	CodeBadCredentialsFormat Code = "BAD_CREDENTIALS_FORMAT"
	// CodeBadScopesFormat indicates scopes were present but not an array of strings.
	CodeBadScopesFormat Code = "BAD_SCOPES_FORMAT"
	// CodeMissingParameters indicates one or more required credential fields were absent.
	CodeMissingParameters Code = "MISSING_PARAMETERS"
	// CodeIMSToken indicates IMS responded to a token request with a non-success status.
	CodeIMSToken Code = "IMS_TOKEN_ERROR"
	// CodeGeneric indicates any other failure during a token fetch (network,
	// timeout, malformed response).
	CodeGeneric Code = "GENERIC_ERROR"
)

// Error is the typed error returned by this library. It carries a stable Code
// discriminant, a human-readable message, and a structured details bag for
// logging and debugging.
//
// Details never contain the client secret; its presence is reported as a
// boolean where relevant.
type Error struct {
	Code    Code
	Message string
	Details map[string]any

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ims: %s (%s)", e.Message, e.Code)
}

// Unwrap exposes the underlying cause for GENERIC_ERROR wrappers so callers
// can use errors.Is/errors.As on transport failures.
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, unwrapping as needed.
// It returns the empty Code when err is not an *Error.
func CodeOf(err error) Code {
	var imsErr *Error
	if errors.As(err, &imsErr) {
		return imsErr.Code
	}
	return ""
}

func newError(code Code, message string, details map[string]any) *Error {
	if details == nil {
		details = map[string]any{}
	}
	return &Error{Code: code, Message: message, Details: details}
}
