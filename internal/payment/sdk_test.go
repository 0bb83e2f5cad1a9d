package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/vaspay/vaspay/internal/logging"
)

func TestBridgeReadyLifecycle(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(logging.Discard())

	if b.Ready(ctx) {
		t.Fatal("new bridge must not be ready")
	}
	if err := b.Inject(ctx); err != nil {
		t.Fatalf("inject: %v", err)
	}
	// Idempotent.
	if err := b.Inject(ctx); err != nil {
		t.Fatalf("repeat inject: %v", err)
	}
	b.SetReady()
	if !b.Ready(ctx) {
		t.Fatal("bridge should be ready after the shell reports in")
	}
}

func TestBridgeResolveFiresResponseOnce(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(logging.Discard())

	var responses []Response
	b.Launch(ctx, Payload{TxnID: "t1"}, func(r Response) { responses = append(responses, r) }, func(error) {
		t.Fatal("exception callback must not fire")
	})

	p, ok := b.Pending()
	if !ok || p.TxnID != "t1" {
		t.Fatalf("pending payload missing: %+v ok=%v", p, ok)
	}

	if err := b.Resolve(Response{Status: "success"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(responses) != 1 || responses[0].Status != "success" {
		t.Fatalf("expected one success response, got %+v", responses)
	}

	if _, ok := b.Pending(); ok {
		t.Fatal("pending launch must be cleared after resolve")
	}
	if err := b.Resolve(Response{Status: "success"}); !errors.Is(err, ErrNoPendingLaunch) {
		t.Fatalf("expected ErrNoPendingLaunch, got %v", err)
	}
}

func TestBridgeFailFiresExceptionOnce(t *testing.T) {
	ctx := context.Background()
	b := NewBridge(logging.Discard())

	var failures []error
	b.Launch(ctx, Payload{TxnID: "t1"}, func(Response) {
		t.Fatal("response callback must not fire")
	}, func(err error) { failures = append(failures, err) })

	if err := b.Fail(errors.New("boom")); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected one exception, got %d", len(failures))
	}
	if err := b.Fail(errors.New("boom")); !errors.Is(err, ErrNoPendingLaunch) {
		t.Fatalf("expected ErrNoPendingLaunch, got %v", err)
	}
}
