// Package screen holds the contract between the router and the pages of
// the app.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/ui/layout"
)

// Screen is one page on the router stack. The app draws the chrome, so
// View only renders the body inside it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that own Esc while a text
// field or sub-mode is open.
type InputCapturer interface {
	CapturingInput() bool
}

// Hints returns the screen's own footer hints, or nil when it has none.
func Hints(s Screen) []layout.KeyHint {
	p, ok := s.(KeyHintProvider)
	if !ok {
		return nil
	}
	return p.KeyHints()
}

// Capturing reports whether Esc belongs to s instead of the router.
func Capturing(s Screen) bool {
	c, ok := s.(InputCapturer)
	return ok && c.CapturingInput()
}
