// Package certificate renders the course completion certificate.
package certificate

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Lines returns the certificate text, one line per entry.
func Lines(name string, date time.Time) []string {
	return []string{
		"CERTIFICATE OF COMPLETION",
		"",
		"This certifies that",
		"",
		name,
		"",
		"has completed all ten modules of",
		"Finance Fluency: Accounting Fundamentals",
		"",
		date.Format("January 2, 2006"),
	}
}

// Card renders the certificate as a bordered card.
func Card(name string, date time.Time) string {
	lines := Lines(name, date)
	lines[0] = theme.Title.Render(lines[0])
	lines[4] = theme.Money.Render(lines[4])
	return theme.Certificate.Render(strings.Join(lines, "\n"))
}

// Screen shows the certificate full size.
type Screen struct {
	tracker *progress.Tracker
	now     func() time.Time
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the certificate screen.
func New(tracker *progress.Tracker) *Screen {
	return &Screen{tracker: tracker, now: time.Now}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Certificate" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) View(width, height int) string {
	d := s.tracker.Snapshot()
	var body string
	if progress.AllComplete(d.Progress) {
		body = Card(d.User.Name, s.now())
	} else {
		body = theme.Locked.Render(fmt.Sprintf(
			"Complete all %d modules to earn your certificate.\n\n%d of %d done so far.",
			progress.ModuleCount, d.Progress.CompletedCount(), progress.ModuleCount))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
