// Package api contains the client-side gateway to the library backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Gateway interface) covering
//     authentication, catalog, members, inventory, circulation, fines and
//     reports.
//  2. A concrete REST implementation (see Rest) that manages the HTTP client,
//     attaches the bearer token to every authenticated request, fails fast
//     when no token is held, and classifies every failure at the transport
//     layer.
//  3. A single Page envelope for list responses, normalized whether the
//     backend returns a wrapped envelope or a bare array.
//
// # Error Handling
//
// Failures are returned as *Error values whose Kind is one of the package
// sentinels, so callers can match with errors.Is: ErrAuthRequired,
// ErrInvalidCredentials, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrConflict, ErrValidation, ErrUnavailable, ErrServer. Classification uses
// the HTTP status and the machine-readable body code only; message text is
// never inspected.
//
// # Concurrency and Contexts
//
// Rest is safe for concurrent use. All operations accept context.Context and
// honor cancellation; the underlying client enforces a request timeout, and a
// timeout classifies as ErrUnavailable like any other connectivity failure.
//
// # See Also
//
//   - Interface: Gateway
//   - REST impl: Rest
//   - Envelope:  Page
//   - Errors:    Error and the sentinel values in errors.go
package api
