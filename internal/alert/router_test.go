package alert

import (
	"testing"

	"github.com/vaspay/vaspay/internal/config"
	"github.com/vaspay/vaspay/internal/logging"
)

type recordingPresenter struct {
	requests []Request
}

func (p *recordingPresenter) Present(req Request) error {
	p.requests = append(p.requests, req)
	return nil
}

type scriptedConfirmer struct {
	answer   bool
	alerts   int
	confirms int
}

func (s *scriptedConfirmer) Alert(title, message string) { s.alerts++ }
func (s *scriptedConfirmer) Confirm(title, message string) bool {
	s.confirms++
	return s.answer
}

func twoButtonRequest(pressed *string) Request {
	return Request{
		Title:   "Log out?",
		Message: "You will need to log in again.",
		Buttons: []Button{
			{Label: "Cancel", Style: StyleCancel, OnPress: func() { *pressed = "cancel" }},
			{Label: "Log out", Style: StyleDestructive, OnPress: func() { *pressed = "logout" }},
		},
	}
}

func TestRouterPrefersRegisteredModalOnWeb(t *testing.T) {
	modal := &recordingPresenter{}
	confirmer := &scriptedConfirmer{}
	r := NewRouter(config.PlatformWeb, NewLogPresenter(logging.Discard()), confirmer, logging.Discard())
	r.RegisterModal(modal)

	var pressed string
	if err := r.Present(twoButtonRequest(&pressed)); err != nil {
		t.Fatalf("present: %v", err)
	}
	if len(modal.requests) != 1 {
		t.Fatalf("expected modal routing, got %d requests", len(modal.requests))
	}
	if confirmer.alerts+confirmer.confirms != 0 {
		t.Fatal("fallback invoked despite registered modal")
	}
}

func TestRouterUsesNativeDialogOffWeb(t *testing.T) {
	native := &recordingPresenter{}
	r := NewRouter(config.PlatformAndroid, native, &scriptedConfirmer{}, logging.Discard())
	// A registered modal must not shadow the native dialog off-web.
	r.RegisterModal(&recordingPresenter{})

	if err := r.Present(Request{Title: "hi"}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if len(native.requests) != 1 {
		t.Fatalf("expected native routing, got %d requests", len(native.requests))
	}
}

func TestConfirmFallbackTwoButtons(t *testing.T) {
	for _, tc := range []struct {
		name   string
		answer bool
		want   string
	}{
		{"acceptance presses second button", true, "logout"},
		{"cancellation presses first button", false, "cancel"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			confirmer := &scriptedConfirmer{answer: tc.answer}
			r := NewRouter(config.PlatformWeb, nil, confirmer, logging.Discard())

			var pressed string
			if err := r.Present(twoButtonRequest(&pressed)); err != nil {
				t.Fatalf("present: %v", err)
			}
			if pressed != tc.want {
				t.Fatalf("expected %q callback, got %q", tc.want, pressed)
			}
			if confirmer.confirms != 1 {
				t.Fatalf("expected one confirm, got %d", confirmer.confirms)
			}
		})
	}
}

func TestConfirmFallbackSingleButtonAlert(t *testing.T) {
	confirmer := &scriptedConfirmer{}
	r := NewRouter(config.PlatformWeb, nil, confirmer, logging.Discard())

	pressed := 0
	req := Request{
		Title:   "Done",
		Buttons: []Button{{Label: "OK", OnPress: func() { pressed++ }}},
	}
	if err := r.Present(req); err != nil {
		t.Fatalf("present: %v", err)
	}
	if confirmer.alerts != 1 || confirmer.confirms != 0 {
		t.Fatalf("expected single blocking alert, got alerts=%d confirms=%d", confirmer.alerts, confirmer.confirms)
	}
	if pressed != 1 {
		t.Fatalf("expected exactly one callback, got %d", pressed)
	}
}

func TestConfirmFallbackZeroButtons(t *testing.T) {
	confirmer := &scriptedConfirmer{}
	r := NewRouter(config.PlatformWeb, nil, confirmer, logging.Discard())

	if err := r.Present(Request{Title: "FYI"}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if confirmer.alerts != 1 {
		t.Fatalf("expected blocking alert, got %d", confirmer.alerts)
	}
}

func TestLogPresenterPressesCancelButton(t *testing.T) {
	p := NewLogPresenter(logging.Discard())

	var pressed string
	req := twoButtonRequest(&pressed)
	if err := p.Present(req); err != nil {
		t.Fatalf("present: %v", err)
	}
	if pressed != "cancel" {
		t.Fatalf("expected cancel dismissal, got %q", pressed)
	}
}
