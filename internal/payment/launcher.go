package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaspay/vaspay/internal/alert"
)

// ErrSDKUnavailable is returned when the checkout SDK never becomes ready
// within the poll timeout. No gateway request is made in that case.
var ErrSDKUnavailable = errors.New("payment: checkout sdk unavailable")

// Order is the caller-supplied purchase description.
type Order struct {
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
}

// Launcher runs the checkout protocol end to end. Neither path retries
// automatically; the user must re-initiate after a failure.
type Launcher struct {
	sdk    SDK
	hashes HashSource
	alerts *alert.Router
	logger *slog.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewLauncher wires the checkout flow. pollInterval and pollTimeout bound
// the SDK readiness wait.
func NewLauncher(sdk SDK, hashes HashSource, alerts *alert.Router, pollInterval, pollTimeout time.Duration, logger *slog.Logger) *Launcher {
	return &Launcher{
		sdk:          sdk,
		hashes:       hashes,
		alerts:       alerts,
		logger:       logger,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// NewTxnID generates the client-side transaction id: a time-based unique
// string in the shape the gateway expects.
func NewTxnID(now time.Time) string {
	return fmt.Sprintf("txn%d%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Start executes the launch protocol for an order. The returned error is
// also surfaced to the user through the alert router, so callers only need
// it for flow control.
func (l *Launcher) Start(ctx context.Context, order Order) error {
	if err := l.sdk.Inject(ctx); err != nil {
		l.logger.Error("inject checkout script", "error", err)
		l.notify("Payment unavailable", "Could not load the payment service. Please try again.")
		return ErrSDKUnavailable
	}

	if !l.waitReady(ctx) {
		l.logger.Warn("checkout sdk never became ready", "timeout", l.pollTimeout)
		l.notify("Payment unavailable", "The payment service did not respond. Please try again.")
		return ErrSDKUnavailable
	}

	txnID := NewTxnID(time.Now().UTC())
	signed, err := l.hashes.SessionHash(ctx, HashRequest{
		TxnID:       txnID,
		Amount:      order.Amount,
		ProductInfo: order.ProductInfo,
		FirstName:   order.FirstName,
		Email:       order.Email,
	})
	if err != nil {
		l.logger.Error("payment session request failed", "txnid", txnID, "error", err)
		l.notify("Payment failed", "Could not start the payment. Please try again.")
		return err
	}

	payload := Payload{
		Key:         signed.Key,
		TxnID:       txnID,
		Amount:      order.Amount,
		ProductInfo: order.ProductInfo,
		FirstName:   order.FirstName,
		Email:       order.Email,
		Phone:       order.Phone,
		Hash:        signed.Hash,
	}

	l.sdk.Launch(ctx, payload,
		func(r Response) {
			if r.Status == "success" {
				l.logger.Info("payment completed", "txnid", txnID)
				l.notify("Payment successful", "Your payment was completed.")
				return
			}
			l.logger.Warn("payment not completed", "txnid", txnID, "status", r.Status)
			l.notify("Payment failed", "The payment was not completed.")
		},
		func(err error) {
			l.logger.Error("checkout sdk exception", "txnid", txnID, "error", err)
			l.notify("Payment failed", "The payment service reported an error.")
		},
	)
	return nil
}

// waitReady polls the SDK at the configured interval until it reports ready
// or the timeout fires. The ticker is stopped on every exit path, and the
// caller's context cancels the wait early.
func (l *Launcher) waitReady(ctx context.Context) bool {
	if l.sdk.Ready(ctx) {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, l.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if l.sdk.Ready(ctx) {
				return true
			}
		}
	}
}

func (l *Launcher) notify(title, message string) {
	if l.alerts == nil {
		return
	}
	if err := l.alerts.Present(alert.Request{
		Title:   title,
		Message: message,
		Buttons: []alert.Button{{Label: "OK", Style: alert.StyleCancel}},
	}); err != nil {
		l.logger.Warn("present alert", "error", err)
	}
}
