package api

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Sentinel errors, one per failure class. Callers branch on them with
// errors.Is; the concrete *Error carries the details.
var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrUnavailable        = errors.New("server unavailable")
	ErrServer             = errors.New("server error")
)

// Backend machine codes that refine classification beyond the HTTP status.
const (
	codeInvalidCredentials = "invalid_credentials"
	codeNotAvailable       = "not_available"
	codeDuplicate          = "duplicate"
)

// Error is a classified gateway failure.
type Error struct {
	Kind    error             // one of the package sentinels
	Status  int               // HTTP status, 0 when the request never completed
	Code    string            // machine code from the backend body, if any
	Message string            // human-readable description
	Fields  map[string]string // per-field validation messages, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

func errAuthRequired() *Error {
	return &Error{Kind: ErrAuthRequired, Message: "sign in required"}
}

// classify maps an HTTP status plus the optional backend error body to an
// *Error. The body code takes precedence over the status so a 400 carrying
// code "not_available" still reads as a conflict.
func classify(status int, we *wireError) *Error {
	e := &Error{Status: status}
	if we != nil {
		e.Code = we.Code
		e.Message = we.Message
		e.Fields = we.Details
	}

	switch e.Code {
	case codeInvalidCredentials:
		e.Kind = ErrInvalidCredentials
		return e
	case codeNotAvailable, codeDuplicate:
		e.Kind = ErrConflict
		return e
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = ErrUnauthorized
	case status == http.StatusForbidden:
		e.Kind = ErrForbidden
	case status == http.StatusNotFound:
		e.Kind = ErrNotFound
	case status == http.StatusConflict:
		e.Kind = ErrConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		e.Kind = ErrValidation
	default:
		e.Kind = ErrServer
	}
	return e
}

// netError classifies transport-level failures. Timeouts are connectivity
// failures, not silent hangs.
func netError(err error) *Error {
	msg := "server unavailable"
	if isTimeout(err) {
		msg = "request timed out"
	}
	return &Error{Kind: ErrUnavailable, Message: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
