package store

import (
	"context"
	"log/slog"
	"time"
)

// Logical storage keys. Installed sessions depend on these names, so the set
// is append-only: never rename an existing key.
const (
	KeySessionToken  = "SessionTokenVas"
	KeySessionExpiry = "SessionTokenVas:expiry"
	KeyUserData      = "UserDataVas"
	KeyPermanent     = "SecureTokenVas"
	KeyPWAInstalled  = "PwaInstalledVas"
)

// TokenStore owns the credential keys on top of the raw tiers. The permanent
// token is routed to the secure tier when one exists; everything else lives
// in the plain tier. Reads are fail-safe: a storage error is logged and
// reported as absence, so a broken store can never authenticate anyone.
type TokenStore struct {
	plain  Store
	secure Store
	logger *slog.Logger
}

// NewTokenStore builds the facade. secure may be nil (the web platform has
// no encrypted surface); the trust downgrade is logged once here rather than
// silently applied on every write.
func NewTokenStore(plain, secure Store, logger *slog.Logger) *TokenStore {
	if secure == nil {
		logger.Warn("secure storage tier unavailable, permanent token falls back to plain tier")
	}
	return &TokenStore{plain: plain, secure: secure, logger: logger}
}

func (t *TokenStore) permanentTier() Store {
	if t.secure != nil {
		return t.secure
	}
	return t.plain
}

// SetPermanentToken writes the durable credential to its tier.
func (t *TokenStore) SetPermanentToken(ctx context.Context, token string) error {
	return t.permanentTier().Set(ctx, KeyPermanent, []byte(token))
}

// PermanentToken reads the durable credential. Errors degrade to absence.
func (t *TokenStore) PermanentToken(ctx context.Context) (string, bool) {
	v, ok, err := t.permanentTier().Get(ctx, KeyPermanent)
	if err != nil {
		t.logger.Error("read permanent token", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return string(v), true
}

// SetSessionToken writes the short-lived credential together with its expiry
// record. The two writes are sequential; a token that lands without an
// expiry record is treated as invalid on read.
func (t *TokenStore) SetSessionToken(ctx context.Context, token string, expiresAt time.Time) error {
	if err := t.plain.Set(ctx, KeySessionToken, []byte(token)); err != nil {
		return err
	}
	return t.plain.Set(ctx, KeySessionExpiry, []byte(expiresAt.UTC().Format(time.RFC3339Nano)))
}

// SessionToken reads the short-lived credential and its expiry. A missing or
// unparseable expiry record yields a zero ExpiresAt, which downstream
// validity checks reject.
func (t *TokenStore) SessionToken(ctx context.Context) (token string, expiresAt time.Time, ok bool) {
	v, ok, err := t.plain.Get(ctx, KeySessionToken)
	if err != nil {
		t.logger.Error("read session token", "error", err)
		return "", time.Time{}, false
	}
	if !ok {
		return "", time.Time{}, false
	}
	token = string(v)

	raw, expOK, err := t.plain.Get(ctx, KeySessionExpiry)
	if err != nil {
		t.logger.Error("read session expiry", "error", err)
		return token, time.Time{}, true
	}
	if !expOK {
		return token, time.Time{}, true
	}
	exp, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		t.logger.Warn("corrupt session expiry record", "error", err)
		return token, time.Time{}, true
	}
	return token, exp, true
}

// SetProfile stores the serialized user profile wholesale.
func (t *TokenStore) SetProfile(ctx context.Context, data []byte) error {
	return t.plain.Set(ctx, KeyUserData, data)
}

// Profile reads the serialized user profile. Errors degrade to absence.
func (t *TokenStore) Profile(ctx context.Context) ([]byte, bool) {
	v, ok, err := t.plain.Get(ctx, KeyUserData)
	if err != nil {
		t.logger.Error("read profile", "error", err)
		return nil, false
	}
	return v, ok
}

// ClearSession removes the session-tier keys only, leaving the permanent
// token untouched. Used when a session expires without a full logout.
func (t *TokenStore) ClearSession(ctx context.Context) error {
	return t.plain.Delete(ctx, KeySessionToken, KeySessionExpiry, KeyUserData)
}

// Clear removes every credential key across both tiers. Safe to call when
// nothing is stored.
func (t *TokenStore) Clear(ctx context.Context) error {
	if err := t.plain.Delete(ctx, KeySessionToken, KeySessionExpiry, KeyUserData); err != nil {
		return err
	}
	return t.permanentTier().Delete(ctx, KeyPermanent)
}

// SetInstalled marks the durable PWA installed flag.
func (t *TokenStore) SetInstalled(ctx context.Context) error {
	return t.plain.Set(ctx, KeyPWAInstalled, []byte("1"))
}

// Installed reports whether the PWA installed flag has been recorded.
func (t *TokenStore) Installed(ctx context.Context) bool {
	_, ok, err := t.plain.Get(ctx, KeyPWAInstalled)
	if err != nil {
		t.logger.Error("read installed flag", "error", err)
		return false
	}
	return ok
}
