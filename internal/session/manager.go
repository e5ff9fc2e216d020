package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/libris/internal/api"
	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/models"
	"github.com/dmitrijs2005/libris/internal/storage"
)

// Manager is the concrete Store backed by a remote transport and a local
// SQLite cache. It is the single writer of session state.
type Manager struct {
	gw       Transport
	db       *sql.DB
	keys     Keys
	log      logging.Logger
	validate *validator.Validate

	mu       sync.RWMutex
	status   Status
	user     *models.Identity
	token    string
	lastErr  error
	onChange []func(Snapshot)
}

// NewManager constructs a Manager bound to the given transport and cache DB.
func NewManager(gw Transport, db *sql.DB, keys Keys, log logging.Logger) *Manager {
	if keys.Token == "" || keys.Identity == "" {
		keys = DefaultKeys
	}
	return &Manager{
		gw:       gw,
		db:       db,
		keys:     keys,
		log:      log,
		validate: validator.New(),
		status:   StatusUnauthenticated,
	}
}

// Login validates the credentials locally, authenticates against the backend
// and persists the token and identity as one unit. Validation failures
// resolve inline without a network round-trip.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.validateCredentials(email, password); err != nil {
		return err
	}

	m.become(StatusVerifying, nil, "", nil)

	token, user, err := m.gw.Login(ctx, email, password)
	if err != nil {
		m.become(StatusUnauthenticated, nil, "", err)
		return err
	}

	if err := m.saveSession(ctx, token, user); err != nil {
		// The backend accepted the credentials; only the cache is broken.
		// Keep the session for this run and surface the cache state.
		m.log.Warn(ctx, "session cache write failed", "error", err)
		m.become(StatusError, user, token, storage.ErrLocalDataNotAvailable)
		return nil
	}

	m.become(StatusAuthenticated, user, token, nil)
	m.log.Info(ctx, "signed in", "role", user.Role)
	return nil
}

// Logout invalidates the token server-side on a best-effort basis and always
// clears local state. Remote failures are logged, never returned.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.gw.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed", "error", err)
	}
	return m.signOut(ctx)
}

// Verify re-validates the held token and refreshes the identity snapshot.
// A rejection by the backend drops the session.
func (m *Manager) Verify(ctx context.Context) (*models.Identity, error) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return nil, &api.Error{Kind: api.ErrAuthRequired, Message: "sign in required"}
	}

	user, err := m.gw.Verify(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			m.Invalidate(ctx)
		} else {
			m.mu.Lock()
			m.lastErr = err
			m.mu.Unlock()
		}
		return nil, err
	}

	if err := m.saveSession(ctx, token, user); err != nil {
		m.log.Warn(ctx, "session cache write failed", "error", err)
	}
	m.become(StatusAuthenticated, user, token, nil)
	return user, nil
}

// Restore loads a persisted session and verifies it against the backend.
// A rejected token is forgotten everywhere; a connectivity failure keeps the
// cached session for a later start.
func (m *Manager) Restore(ctx context.Context) error {
	repo := storage.NewSQLiteRepository(m.db)

	token, err := repo.Get(ctx, m.keys.Token)
	if err != nil {
		m.become(StatusError, nil, "", storage.ErrLocalDataNotAvailable)
		return fmt.Errorf("reading session cache: %w", err)
	}
	identity, err := repo.Get(ctx, m.keys.Identity)
	if err != nil {
		m.become(StatusError, nil, "", storage.ErrLocalDataNotAvailable)
		return fmt.Errorf("reading session cache: %w", err)
	}
	if len(token) == 0 && len(identity) == 0 {
		return nil
	}
	if len(token) == 0 || len(identity) == 0 {
		// Half a session breaks the pair invariant: start clean.
		m.log.Warn(ctx, "incomplete session cache, clearing")
		if cerr := m.clearSession(ctx); cerr != nil {
			m.log.Warn(ctx, "session cache clear failed", "error", cerr)
		}
		return nil
	}

	m.gw.SetToken(string(token))
	m.become(StatusVerifying, nil, "", nil)

	user, err := m.gw.Verify(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrForbidden) {
			m.log.Info(ctx, "persisted token rejected")
			_ = m.signOut(ctx)
			return nil
		}
		// Connectivity failure: keep the cached session on disk, require a
		// fresh sign-in for this run.
		m.gw.ClearToken()
		m.become(StatusUnauthenticated, nil, "", err)
		return err
	}

	if err := m.saveSession(ctx, string(token), user); err != nil {
		m.log.Warn(ctx, "session cache write failed", "error", err)
	}
	m.become(StatusAuthenticated, user, string(token), nil)
	m.log.Info(ctx, "session restored", "role", user.Role)
	return nil
}

// Invalidate drops the session after the backend rejected the token
// mid-session. No remote call is made.
func (m *Manager) Invalidate(ctx context.Context) {
	m.log.Info(ctx, "session invalidated")
	_ = m.signOut(ctx)
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Status: m.status, User: m.user}
}

// LastError reports the most recent classified failure, for the status line.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// OnChange registers an observer invoked after every state change. Register
// before concurrent use; callbacks run synchronously and must not block.
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// TokenExpiry peeks at the unverified exp claim of the held token. Display
// only; the client never trusts claims for authorization decisions.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (m *Manager) validateCredentials(email, password string) error {
	if m.validate.Var(email, "required,email") != nil {
		return &api.Error{Kind: api.ErrValidation, Message: "Enter a valid email address"}
	}
	if m.validate.Var(password, "required") != nil {
		return &api.Error{Kind: api.ErrValidation, Message: "Password must not be empty"}
	}
	return nil
}

// become is the single mutation point. Observers are notified outside the
// lock so they can take snapshots.
func (m *Manager) become(st Status, user *models.Identity, token string, lastErr error) {
	m.mu.Lock()
	m.status, m.user, m.token, m.lastErr = st, user, token, lastErr
	snap := Snapshot{Status: st, User: user}
	subs := slices.Clone(m.onChange)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (m *Manager) signOut(ctx context.Context) error {
	m.gw.ClearToken()
	if err := m.clearSession(ctx); err != nil {
		m.log.Warn(ctx, "session cache clear failed", "error", err)
		m.become(StatusError, nil, "", storage.ErrLocalDataNotAvailable)
		return err
	}
	m.become(StatusUnauthenticated, nil, "", nil)
	return nil
}

// saveSession writes the token and identity rows in a single transaction.
func (m *Manager) saveSession(ctx context.Context, token string, user *models.Identity) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	return dbx.WithTx(ctx, m.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, m.keys.Token, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, m.keys.Identity, data)
	})
}

// clearSession removes both rows in a single transaction.
func (m *Manager) clearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, m.db, func(ctx context.Context, tx dbx.DBTX) error {
		return storage.NewSQLiteRepository(tx).Clear(ctx)
	})
}
