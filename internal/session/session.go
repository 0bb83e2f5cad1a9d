// Package session holds the pure navigation decision for the auth lifecycle.
package session

import "time"

// DefaultTTL is the validity window of a session token issued after a
// successful PIN validation.
const DefaultTTL = 10 * time.Minute

// Outcome is the navigation decision derived from the credential pair.
type Outcome int

const (
	// NeedsLogin routes to the full login screen.
	NeedsLogin Outcome = iota
	// NeedsPinValidation routes to the PIN re-entry screen.
	NeedsPinValidation
	// Authenticated routes into the main app.
	Authenticated
)

func (o Outcome) String() string {
	switch o {
	case NeedsLogin:
		return "needs_login"
	case NeedsPinValidation:
		return "needs_pin_validation"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Decide maps the credential state to a navigation outcome. A missing
// permanent token forces a full login regardless of the session token; a
// present permanent token with no usable session routes to PIN validation.
// Pure and deterministic: computed fresh on every navigation check, never
// cached.
func Decide(permanentPresent, sessionPresent, sessionValid bool) Outcome {
	if !permanentPresent {
		return NeedsLogin
	}
	if sessionPresent && sessionValid {
		return Authenticated
	}
	return NeedsPinValidation
}

// Record pairs a session token with its expiry timestamp.
type Record struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the record is usable at the given instant. A token
// with no expiry record (zero ExpiresAt) is never valid.
func (r Record) Valid(now time.Time) bool {
	return r.Token != "" && !r.ExpiresAt.IsZero() && now.Before(r.ExpiresAt)
}
