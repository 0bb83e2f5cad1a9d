package alert

import (
	"log/slog"
	"sync"

	"github.com/vaspay/vaspay/internal/config"
)

// Router picks the presentation surface at call time:
//
//  1. web platform with a registered modal presenter — the in-app modal;
//  2. native platform — the native dialog bridge;
//  3. otherwise — blocking alert/confirm primitives.
//
// Exactly one button callback fires per presentation (vacuously, when the
// request carries no buttons).
type Router struct {
	platform string
	native   Presenter
	confirm  Confirmer
	logger   *slog.Logger

	mu    sync.RWMutex
	modal Presenter
}

// NewRouter builds a Router for the given platform. native and confirm are
// fixed at construction; the modal presenter arrives later, when the UI
// shell mounts, via RegisterModal.
func NewRouter(platform string, native Presenter, confirm Confirmer, logger *slog.Logger) *Router {
	return &Router{platform: platform, native: native, confirm: confirm, logger: logger}
}

// RegisterModal installs (or, with nil, removes) the in-app modal presenter.
func (r *Router) RegisterModal(p Presenter) {
	r.mu.Lock()
	r.modal = p
	r.mu.Unlock()
}

// Present routes the request to the active surface.
func (r *Router) Present(req Request) error {
	if r.platform == config.PlatformWeb {
		r.mu.RLock()
		modal := r.modal
		r.mu.RUnlock()
		if modal != nil {
			return modal.Present(req)
		}
		r.presentBlocking(req)
		return nil
	}
	if r.native != nil {
		return r.native.Present(req)
	}
	r.presentBlocking(req)
	return nil
}

// presentBlocking implements the browser-primitive fallback: zero or one
// button becomes a blocking alert whose callback runs after dismissal; two
// or more become a binary confirm where acceptance presses the second
// button and cancellation presses the first.
func (r *Router) presentBlocking(req Request) {
	if r.confirm == nil {
		if r.logger != nil {
			r.logger.Warn("no alert surface available", "title", req.Title)
		}
		press(dismissButton(req.Buttons))
		return
	}
	if len(req.Buttons) <= 1 {
		r.confirm.Alert(req.Title, req.Message)
		if len(req.Buttons) == 1 {
			press(&req.Buttons[0])
		}
		return
	}
	if r.confirm.Confirm(req.Title, req.Message) {
		press(&req.Buttons[1])
	} else {
		press(&req.Buttons[0])
	}
}
