package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/storage"
)

// report turns a failed operation into a message the user can act on.
//
// A rejected token is special: the backend no longer recognizes the session,
// so the local copy is dropped and the user is sent back to the login page.
// Cancelled requests are stale by definition and stay silent.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	if errors.Is(err, api.ErrUnauthorized) {
		a.session.Invalidate(ctx)
		printlnFn("Your session has expired. Please sign in again.")
		return
	}
	printlnFn(userMessage(err))
	if fields := validationFields(err); len(fields) > 0 {
		for _, line := range fields {
			printlnFn("  - " + line)
		}
	}
}

// userMessage maps a classified error to a short actionable sentence. Every
// failure class reads differently, so the user can tell a typo from an
// outage.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		return "Email or password is incorrect."
	case errors.Is(err, api.ErrAuthRequired):
		return "Please sign in first."
	case errors.Is(err, api.ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, api.ErrNotFound):
		return "Not found. It may have been removed in the meantime."
	case errors.Is(err, api.ErrConflict):
		// The backend explains which rule was violated, e.g. that the
		// selected book is not available. Show its wording.
		if msg := backendMessage(err); msg != "" {
			return msg
		}
		return "The request conflicts with the current state. Refresh and try again."
	case errors.Is(err, api.ErrValidation):
		return "Please check your input:"
	case errors.Is(err, api.ErrUnavailable):
		return "Cannot reach the server. Check your connection and try again."
	case errors.Is(err, api.ErrServer):
		return "The server ran into an internal error. Please try again in a moment."
	case errors.Is(err, storage.ErrLocalDataNotAvailable):
		return "The local session cache is unavailable. You stay signed in for this run only."
	default:
		return "Something went wrong. Please try again."
	}
}

// backendMessage extracts the human-readable message from a classified
// gateway error, empty when the failure never produced one.
func backendMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// validationFields renders per-field validation messages in a stable order.
func validationFields(err error) []string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return nil
	}
	lines := make([]string, 0, len(apiErr.Fields))
	for field, msg := range apiErr.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(lines)
	return lines
}
