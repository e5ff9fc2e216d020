// Package session owns the authentication lifecycle: an in-memory state
// machine plus its durable copy in the local cache. The Manager is the single
// writer of session state; everything else observes it through snapshots.
package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/libris/internal/models"
)

// Status is the session lifecycle stage.
type Status string

const (
	// StatusUnauthenticated means no valid session is held.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusVerifying means credentials or a persisted token are being
	// validated against the backend.
	StatusVerifying Status = "verifying"
	// StatusAuthenticated means a verified token and identity are held.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the local session cache cannot be read or written.
	// Remote failures never land here; they resolve to StatusUnauthenticated.
	StatusError Status = "error"
)

// Snapshot is an observer's copy of the session state. User is an immutable
// snapshot replaced wholesale on re-verification; holding it is safe.
type Snapshot struct {
	Status Status
	User   *models.Identity
}

// Authenticated reports whether the snapshot carries a verified identity.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated || (s.Status == StatusError && s.User != nil)
}

// Role returns the signed-in role, empty when signed out.
func (s Snapshot) Role() models.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Keys names the rows the session occupies in the local cache. The token and
// identity rows are always written together and cleared together.
type Keys struct {
	Token    string
	Identity string
}

// DefaultKeys is used when the configuration does not override row names.
var DefaultKeys = Keys{Token: "token", Identity: "identity"}

// Store defines the session operations used by the UI.
//
// Contract:
//   - Login: validate credentials locally, authenticate remotely, persist
//     token and identity together.
//   - Logout: best-effort remote invalidation, then always clear local state.
//   - Verify: re-validate the held token and refresh the identity.
//   - Restore: load a persisted session at startup and verify it.
//   - Invalidate: drop the session after the backend rejected the token.
//
// All methods must honor context cancellation/timeouts.
type Store interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*models.Identity, error)
	Restore(ctx context.Context) error
	Invalidate(ctx context.Context)
	Snapshot() Snapshot
	OnChange(fn func(Snapshot))
	TokenExpiry() (time.Time, bool)
	LastError() error
}

// Transport is the slice of the API gateway the session manager drives.
// api.Gateway satisfies it.
type Transport interface {
	Login(ctx context.Context, email, password string) (string, *models.Identity, error)
	Verify(ctx context.Context) (*models.Identity, error)
	Logout(ctx context.Context) error
	SetToken(token string)
	ClearToken()
}
