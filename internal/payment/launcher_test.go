package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vaspay/vaspay/internal/alert"
	"github.com/vaspay/vaspay/internal/config"
	"github.com/vaspay/vaspay/internal/logging"
)

type fakeSDK struct {
	ready      bool
	readyAfter int // Ready calls before reporting true
	calls      int

	launched    []Payload
	onResponse  func(Response)
	onException func(error)
}

func (f *fakeSDK) Inject(context.Context) error { return nil }

func (f *fakeSDK) Ready(context.Context) bool {
	f.calls++
	if f.ready {
		return true
	}
	if f.readyAfter > 0 && f.calls >= f.readyAfter {
		f.ready = true
	}
	return f.ready
}

func (f *fakeSDK) Launch(_ context.Context, p Payload, onResponse func(Response), onException func(error)) {
	f.launched = append(f.launched, p)
	f.onResponse = onResponse
	f.onException = onException
}

type fakeHashSource struct {
	calls []HashRequest
	resp  HashResponse
	err   error
}

func (f *fakeHashSource) SessionHash(_ context.Context, req HashRequest) (HashResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

func testAlerts(p alert.Presenter) *alert.Router {
	r := alert.NewRouter(config.PlatformWeb, nil, nil, logging.Discard())
	r.RegisterModal(p)
	return r
}

type recordingPresenter struct {
	requests []alert.Request
}

func (p *recordingPresenter) Present(req alert.Request) error {
	p.requests = append(p.requests, req)
	return nil
}

func newTestLauncher(sdk SDK, hashes HashSource, presenter *recordingPresenter) *Launcher {
	return NewLauncher(sdk, hashes, testAlerts(presenter), time.Millisecond, 30*time.Millisecond, logging.Discard())
}

func TestStartAbortsWhenSDKNeverReady(t *testing.T) {
	sdk := &fakeSDK{}
	hashes := &fakeHashSource{}
	presenter := &recordingPresenter{}
	l := newTestLauncher(sdk, hashes, presenter)

	err := l.Start(context.Background(), Order{Amount: "10.00"})
	if !errors.Is(err, ErrSDKUnavailable) {
		t.Fatalf("expected ErrSDKUnavailable, got %v", err)
	}
	if len(hashes.calls) != 0 {
		t.Fatalf("no gateway request may be issued, got %d", len(hashes.calls))
	}
	if len(presenter.requests) != 1 {
		t.Fatalf("expected a single user-visible error, got %d", len(presenter.requests))
	}
	if len(sdk.launched) != 0 {
		t.Fatal("sdk must not be launched")
	}
}

func TestStartLaunchesWithSignedPayload(t *testing.T) {
	sdk := &fakeSDK{readyAfter: 3}
	hashes := &fakeHashSource{resp: HashResponse{Key: "mk", Hash: "hh"}}
	presenter := &recordingPresenter{}
	l := newTestLauncher(sdk, hashes, presenter)

	order := Order{Amount: "99.00", ProductInfo: "recharge", FirstName: "Asha", Email: "a@example.com", Phone: "9999"}
	if err := l.Start(context.Background(), order); err != nil {
		t.Fatalf("start: %v", err)
	}

	if len(hashes.calls) != 1 {
		t.Fatalf("expected one gateway request, got %d", len(hashes.calls))
	}
	req := hashes.calls[0]
	if req.Amount != "99.00" || req.ProductInfo != "recharge" || req.FirstName != "Asha" || req.Email != "a@example.com" {
		t.Fatalf("gateway request fields wrong: %+v", req)
	}
	if !strings.HasPrefix(req.TxnID, "txn") {
		t.Fatalf("txnid missing time-based prefix: %q", req.TxnID)
	}

	if len(sdk.launched) != 1 {
		t.Fatalf("expected one launch, got %d", len(sdk.launched))
	}
	p := sdk.launched[0]
	if p.Key != "mk" || p.Hash != "hh" || p.TxnID != req.TxnID || p.Phone != "9999" {
		t.Fatalf("payload not assembled from signed response: %+v", p)
	}

	// Terminal callbacks report through the alert surface.
	sdk.onResponse(Response{Status: "success"})
	if len(presenter.requests) != 1 || presenter.requests[0].Title != "Payment successful" {
		t.Fatalf("expected success alert, got %+v", presenter.requests)
	}
}

func TestStartSurfacesFailureResponse(t *testing.T) {
	sdk := &fakeSDK{ready: true}
	hashes := &fakeHashSource{resp: HashResponse{Key: "mk", Hash: "hh"}}
	presenter := &recordingPresenter{}
	l := newTestLauncher(sdk, hashes, presenter)

	if err := l.Start(context.Background(), Order{Amount: "1.00"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	sdk.onResponse(Response{Status: "failure"})
	if len(presenter.requests) != 1 || presenter.requests[0].Title != "Payment failed" {
		t.Fatalf("expected failure alert, got %+v", presenter.requests)
	}
}

func TestStartSurfacesSDKException(t *testing.T) {
	sdk := &fakeSDK{ready: true}
	hashes := &fakeHashSource{resp: HashResponse{Key: "mk", Hash: "hh"}}
	presenter := &recordingPresenter{}
	l := newTestLauncher(sdk, hashes, presenter)

	if err := l.Start(context.Background(), Order{Amount: "1.00"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	sdk.onException(errors.New("sdk crashed"))
	if len(presenter.requests) != 1 || presenter.requests[0].Title != "Payment failed" {
		t.Fatalf("expected failure alert, got %+v", presenter.requests)
	}
}

func TestStartAbortsOnGatewayRejection(t *testing.T) {
	sdk := &fakeSDK{ready: true}
	hashes := &fakeHashSource{err: ErrGatewayRejected}
	presenter := &recordingPresenter{}
	l := newTestLauncher(sdk, hashes, presenter)

	err := l.Start(context.Background(), Order{Amount: "1.00"})
	if !errors.Is(err, ErrGatewayRejected) {
		t.Fatalf("expected gateway rejection, got %v", err)
	}
	if len(sdk.launched) != 0 {
		t.Fatal("sdk must not launch without a signed payload")
	}
	if len(presenter.requests) != 1 {
		t.Fatalf("expected one error alert, got %d", len(presenter.requests))
	}
}

func TestWaitReadyCancelledByCaller(t *testing.T) {
	sdk := &fakeSDK{}
	l := NewLauncher(sdk, &fakeHashSource{}, nil, time.Millisecond, time.Minute, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() { done <- l.waitReady(ctx) }()
	cancel()

	select {
	case ready := <-done:
		if ready {
			t.Fatal("cancelled wait must report not ready")
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not honor caller cancellation")
	}
}

func TestNewTxnIDShape(t *testing.T) {
	now := time.Now().UTC()
	a := NewTxnID(now)
	b := NewTxnID(now)
	if !strings.HasPrefix(a, "txn") {
		t.Fatalf("missing prefix: %q", a)
	}
	if a == b {
		t.Fatal("txn ids collide for identical timestamps")
	}
}
