// Package payment drives the checkout flow: waiting for the external
// checkout SDK to become ready, fetching the signed session payload from the
// gateway backend, and dispatching the launch with its result callbacks.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Payload is the assembled checkout request handed to the SDK.
type Payload struct {
	Key         string `json:"key"`
	TxnID       string `json:"txnid"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Hash        string `json:"hash"`
}

// Response is the SDK's terminal callback value.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SDK abstracts the external checkout SDK living in the UI shell.
type SDK interface {
	// Inject loads the checkout script into the host. Idempotent.
	Inject(ctx context.Context) error
	// Ready reports whether the SDK global is available.
	Ready(ctx context.Context) bool
	// Launch dispatches the payload. Exactly one of the two callbacks
	// fires when the shell reports back.
	Launch(ctx context.Context, p Payload, onResponse func(Response), onException func(error))
}

// ErrNoPendingLaunch is returned when the shell reports a result but no
// launch is in flight.
var ErrNoPendingLaunch = errors.New("payment: no pending launch")

type pendingLaunch struct {
	payload     Payload
	onResponse  func(Response)
	onException func(error)
}

// Bridge is the SDK implementation backing the local UI-bridge API. The
// shell marks readiness after the checkout script loads, picks up the
// pending payload, and posts the SDK result back; the stored callbacks fire
// exactly once.
type Bridge struct {
	logger *slog.Logger

	mu       sync.Mutex
	injected bool
	ready    bool
	pending  *pendingLaunch
}

// NewBridge constructs an idle bridge.
func NewBridge(logger *slog.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// Inject records the script-injection directive once.
func (b *Bridge) Inject(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.injected {
		return nil
	}
	b.injected = true
	b.logger.Info("checkout script injection requested")
	return nil
}

// SetReady marks the SDK global as available. Called by the shell.
func (b *Bridge) SetReady() {
	b.mu.Lock()
	b.ready = true
	b.mu.Unlock()
}

// Ready reports SDK availability.
func (b *Bridge) Ready(_ context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Launch stores the payload and callbacks for the shell to collect. A new
// launch replaces an abandoned previous one.
func (b *Bridge) Launch(_ context.Context, p Payload, onResponse func(Response), onException func(error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil {
		b.logger.Warn("replacing abandoned checkout launch", "txnid", b.pending.payload.TxnID)
	}
	b.pending = &pendingLaunch{payload: p, onResponse: onResponse, onException: onException}
}

// Pending returns the payload awaiting the shell, if any.
func (b *Bridge) Pending() (Payload, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return Payload{}, false
	}
	return b.pending.payload, true
}

// Resolve delivers the SDK's response callback and clears the launch.
func (b *Bridge) Resolve(r Response) error {
	b.mu.Lock()
	p := b.pending
	b.pending = nil
	b.mu.Unlock()
	if p == nil {
		return ErrNoPendingLaunch
	}
	p.onResponse(r)
	return nil
}

// Fail delivers the SDK's exception callback and clears the launch.
func (b *Bridge) Fail(err error) error {
	b.mu.Lock()
	p := b.pending
	b.pending = nil
	b.mu.Unlock()
	if p == nil {
		return ErrNoPendingLaunch
	}
	p.onException(err)
	return nil
}
