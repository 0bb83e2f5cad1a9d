// Package alert routes user-facing dialogs to whichever presentation
// surface the platform offers: a registered in-app modal, the native dialog
// bridge, or blocking browser primitives as a last resort.
package alert

import "log/slog"

// Style tags a button for rendering.
type Style int

const (
	StyleDefault Style = iota
	StyleCancel
	StyleDestructive
)

func (s Style) String() string {
	switch s {
	case StyleCancel:
		return "cancel"
	case StyleDestructive:
		return "destructive"
	default:
		return "default"
	}
}

// Button carries a label, a render style and a zero-argument callback.
type Button struct {
	Label   string
	Style   Style
	OnPress func()
}

// Request is a transient dialog description. It is created by the caller,
// shown once, and discarded; nothing is persisted.
type Request struct {
	Title   string
	Message string
	Buttons []Button
}

// Presenter renders a Request on some surface. Implementations are injected
// into the Router rather than registered in a package-level slot, so there
// is no initialization-order hazard.
type Presenter interface {
	Present(req Request) error
}

// Confirmer is the bridge to the blocking browser primitives used when no
// richer surface exists. Confirm reports acceptance.
type Confirmer interface {
	Alert(title, message string)
	Confirm(title, message string) bool
}

// LogPresenter writes dialogs to the structured logger and dismisses them by
// pressing the cancel-styled button (or the first button when none is
// cancel-styled). It stands in for the native dialog bridge in headless runs.
type LogPresenter struct {
	logger *slog.Logger
}

// NewLogPresenter constructs the logging presenter.
func NewLogPresenter(logger *slog.Logger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

// Present logs the dialog and invokes exactly one callback.
func (p *LogPresenter) Present(req Request) error {
	if p.logger != nil {
		p.logger.Info("alert", "title", req.Title, "message", req.Message, "buttons", len(req.Buttons))
	}
	press(dismissButton(req.Buttons))
	return nil
}

func dismissButton(buttons []Button) *Button {
	for i := range buttons {
		if buttons[i].Style == StyleCancel {
			return &buttons[i]
		}
	}
	if len(buttons) > 0 {
		return &buttons[0]
	}
	return nil
}

func press(b *Button) {
	if b != nil && b.OnPress != nil {
		b.OnPress()
	}
}
