// Package pwa tracks install-prompt signals from the web shell: a deferred
// "before install" event and a durable installed flag. Both are
// fire-and-forget; failures are logged and never retried.
package pwa

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vaspay/vaspay/internal/store"
)

// Tracker holds the deferred install prompt state and writes the installed
// flag through the token store.
type Tracker struct {
	tokens *store.TokenStore
	logger *slog.Logger

	mu       sync.Mutex
	deferred bool
}

// NewTracker builds an idle tracker.
func NewTracker(tokens *store.TokenStore, logger *slog.Logger) *Tracker {
	return &Tracker{tokens: tokens, logger: logger}
}

// CapturePrompt records that the shell intercepted a before-install event
// and is holding it for a later user gesture.
func (t *Tracker) CapturePrompt() {
	t.mu.Lock()
	t.deferred = true
	t.mu.Unlock()
	t.logger.Info("install prompt captured")
}

// PromptAvailable reports whether a deferred prompt is being held.
func (t *Tracker) PromptAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deferred
}

// MarkInstalled durably records the installed state and drops any deferred
// prompt. Storage failures are logged, not surfaced.
func (t *Tracker) MarkInstalled(ctx context.Context) {
	t.mu.Lock()
	t.deferred = false
	t.mu.Unlock()
	if err := t.tokens.SetInstalled(ctx); err != nil {
		t.logger.Error("persist installed flag", "error", err)
	}
	t.logger.Info("app installed")
}

// Installed reports the durable installed flag.
func (t *Tracker) Installed(ctx context.Context) bool {
	return t.tokens.Installed(ctx)
}
