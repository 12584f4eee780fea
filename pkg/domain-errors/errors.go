// Package domainerrors defines the coded error type shared by services,
// stores, and transport. Services create coded errors; transport translates
// codes into HTTP statuses; callers branch on codes with HasCode instead of
// matching message strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for callers and for HTTP translation.
type Code string

const (
	// CodeValidation marks malformed or missing input, caught before any
	// ledger call.
	CodeValidation Code = "validation_error"
	// CodePolicyRejected marks a local status-policy veto. The metadata
	// carries the rejection reason (wrong_role, illegal_transition,
	// terminal_state).
	CodePolicyRejected Code = "policy_rejected"
	// CodeWriteRejected marks a ledger-side veto. The ledger is the
	// authority: no automatic retry.
	CodeWriteRejected Code = "write_rejected"
	// CodeNetwork marks a transport failure or timeout. For writes the
	// outcome is ambiguous; for reads it is safely retryable.
	CodeNetwork Code = "network_error"
	// CodeNotFound marks a missing donation or campaign record.
	CodeNotFound Code = "not_found"
	// CodeBusy marks a concurrent transition request for the same donation.
	CodeBusy Code = "busy"

	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"
)

// Error is a coded error with optional structured metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error that preserves the underlying cause for
// errors.Is/errors.As chains.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithMetadata creates a coded error carrying structured metadata, used by
// transport to render field-level details.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so transport never leaks raw internals.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status transport should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodePolicyRejected, CodeWriteRejected:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBusy:
		return http.StatusTooManyRequests
	case CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
