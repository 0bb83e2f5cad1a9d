// Package auth implements the session state machine: hydration of persisted
// credentials, login/logout/update operations, and the navigation outcome
// exposed to the UI shell.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vaspay/vaspay/internal/session"
	"github.com/vaspay/vaspay/internal/store"
)

// ErrIncompleteCredentials is returned by Login when either token is empty.
// Nothing is written and no in-memory state changes.
var ErrIncompleteCredentials = errors.New("auth: login requires both session and permanent tokens")

// State tracks the hydration lifecycle.
type State int

const (
	Uninitialized State = iota
	Hydrating
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Hydrating:
		return "hydrating"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the in-memory auth state handed to readers. Nothing
// outside this package touches storage directly.
type Snapshot struct {
	PermanentToken string
	Session        session.Record
	Profile        *Profile
	Loading        bool
}

// Manager is the single authoritative holder of auth state. All mutating
// operations are serialized behind one mutex, so an overlapping login and
// logout cannot interleave their storage writes with the in-memory update.
// Hydration runs exactly once per process regardless of how many callers
// race into it.
type Manager struct {
	tokens *store.TokenStore
	logger *slog.Logger
	ttl    time.Duration

	hydrateOnce sync.Once

	mu        sync.Mutex
	state     State
	permanent string
	sess      session.Record
	profile   *Profile
}

// NewManager builds a Manager over the given token store. ttl bounds the
// validity of session tokens written by Login; zero means session.DefaultTTL.
func NewManager(tokens *store.TokenStore, ttl time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &Manager{tokens: tokens, logger: logger, ttl: ttl, state: Uninitialized}
}

// Hydrate performs the one-time startup read of persisted credentials.
// Subsequent calls are no-ops. The state always lands in Ready: a storage
// failure hydrates to empty rather than leaving the loading flag stuck.
func (m *Manager) Hydrate(ctx context.Context) {
	m.hydrateOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.state = Hydrating
		defer func() { m.state = Ready }()

		if token, ok := m.tokens.PermanentToken(ctx); ok {
			m.permanent = token
		}
		if token, expiresAt, ok := m.tokens.SessionToken(ctx); ok {
			m.sess = session.Record{Token: token, ExpiresAt: expiresAt}
		}
		if data, ok := m.tokens.Profile(ctx); ok {
			var p Profile
			if err := json.Unmarshal(data, &p); err != nil {
				m.logger.Warn("corrupt stored profile", "error", err)
			} else {
				m.profile = &p
			}
		}
		m.logger.Info("auth state hydrated",
			"permanent", m.permanent != "",
			"session", m.sess.Token != "")
	})
}

// Login records a completed full login or PIN validation. Both tokens are
// required; a nil profile keeps whatever profile is already stored. Storage
// is written through before the in-memory snapshot moves, and any write
// failure aborts with the prior state retained.
func (m *Manager) Login(ctx context.Context, sessionToken string, profile *Profile, permanentToken string) error {
	if sessionToken == "" || permanentToken == "" {
		m.logger.Warn("login rejected: incomplete credentials",
			"session", sessionToken != "",
			"permanent", permanentToken != "")
		return ErrIncompleteCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if profile != nil {
		data, err := json.Marshal(profile)
		if err != nil {
			m.logger.Error("encode profile", "error", err)
			return err
		}
		if err := m.tokens.SetProfile(ctx, data); err != nil {
			m.logger.Error("persist profile", "error", err)
			return err
		}
	}
	if err := m.tokens.SetPermanentToken(ctx, permanentToken); err != nil {
		m.logger.Error("persist permanent token", "error", err)
		return err
	}
	expiresAt := time.Now().UTC().Add(m.ttl)
	if err := m.tokens.SetSessionToken(ctx, sessionToken, expiresAt); err != nil {
		m.logger.Error("persist session token", "error", err)
		return err
	}

	m.permanent = permanentToken
	m.sess = session.Record{Token: sessionToken, ExpiresAt: expiresAt}
	if profile != nil {
		cp := *profile
		m.profile = &cp
	}
	return nil
}

// UpdateUserData replaces the stored profile and in-memory mirror. Tokens
// are not touched.
func (m *Manager) UpdateUserData(ctx context.Context, profile Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := m.tokens.SetProfile(ctx, data); err != nil {
		m.logger.Error("persist profile update", "error", err)
		return err
	}
	m.profile = &profile
	return nil
}

// Logout clears every credential tier and resets the in-memory snapshot.
// Idempotent: logging out while already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.Error("clear credentials", "error", err)
		return err
	}
	m.permanent = ""
	m.sess = session.Record{}
	m.profile = nil
	return nil
}

// ClearSessionToken drops the session token and profile while preserving
// the permanent token, so an expired session routes to PIN validation
// rather than a full login.
func (m *Manager) ClearSessionToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.ClearSession(ctx); err != nil {
		m.logger.Error("clear session", "error", err)
		return err
	}
	m.sess = session.Record{}
	m.profile = nil
	return nil
}

// Snapshot returns a copy of the current auth state. Loading is true until
// hydration completes.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		PermanentToken: m.permanent,
		Session:        m.sess,
		Loading:        m.state != Ready,
	}
	if m.profile != nil {
		cp := *m.profile
		snap.Profile = &cp
	}
	return snap
}

// State reports the hydration lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Outcome computes the navigation decision from the current snapshot. It is
// derived fresh on every call, never cached.
func (m *Manager) Outcome() session.Outcome {
	snap := m.Snapshot()
	now := time.Now().UTC()
	return session.Decide(snap.PermanentToken != "", snap.Session.Token != "", snap.Session.Valid(now))
}
