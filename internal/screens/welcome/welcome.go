// Package welcome shows the splash screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/router"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const tagline = "learn to read the numbers behind every business"

// The ledger fills in one row per phase.
var ledgerRows = []string{
	"  Assets          $ 1,250,000",
	"  Liabilities     $   450,000",
	"  Equity          $   800,000",
}

var tickerFrames = []string{"▲", "△"}

type tickMsg time.Time

// WelcomeScreen plays a short splash animation. Any key moves on.
type WelcomeScreen struct {
	next         func() screen.Screen
	greeting     string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen built
// by next. An empty greeting is omitted.
func New(next func() screen.Screen, greeting string) *WelcomeScreen {
	return &WelcomeScreen{
		next:     next,
		greeting: greeting,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) rowsVisible() int {
	switch {
	case w.elapsed >= phase2End:
		return len(ledgerRows)
	case w.elapsed >= phase1End:
		return 2
	}
	return 1
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	ledgerStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	rows := ledgerRows[:w.rowsVisible()]
	ledger := ledgerStyle.Render(strings.Join(rows, "\n"))
	if w.elapsed >= phase1End {
		mark := lipgloss.NewStyle().Foreground(theme.Accent).Render(tickerFrames[w.tickCount%len(tickerFrames)])
		ledger = mark + " " + ledger
	}
	sections = append(sections, theme.Card.Render(ledger), "")

	if w.elapsed >= phase2End {
		sections = append(sections, RenderBanner(width), "")
		sections = append(sections, theme.Subtitle.Render(tagline))
		if w.greeting != "" {
			sections = append(sections, theme.Body.Render(w.greeting))
		}
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
