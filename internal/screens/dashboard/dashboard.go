// Package dashboard is the landing screen: learner stats, the module list
// and navigation to the other screens.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/router"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/screens/certificate"
	"github.com/abhisek/finfluency/internal/screens/glossary"
	"github.com/abhisek/finfluency/internal/screens/history"
	"github.com/abhisek/finfluency/internal/screens/module"
	"github.com/abhisek/finfluency/internal/screens/settings"
	"github.com/abhisek/finfluency/internal/tutor"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Deps are the services the dashboard hands to the screens it opens.
type Deps struct {
	Catalog *content.Catalog
	Tracker *progress.Tracker
	// Tutor is nil when the tutor is off.
	Tutor      *tutor.Service
	AppVersion string
	// ExportDir is where settings writes export files.
	ExportDir string
}

// Screen is the main dashboard.
type Screen struct {
	deps   Deps
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the dashboard.
func New(deps Deps) *Screen {
	s := &Screen{deps: deps}
	s.rebuild()
	return s
}

// Init refreshes the menu; it runs again whenever a child screen pops.
func (s *Screen) Init() tea.Cmd {
	selected := s.menu.Selected
	s.rebuild()
	if selected < len(s.menu.Items) {
		s.menu.Selected = selected
	}
	return nil
}

func (s *Screen) Title() string {
	return "Dashboard"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "C", Description: "Continue"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *Screen) rebuild() {
	d := s.deps.Tracker.Snapshot()
	var items []components.MenuItem

	if progress.AllComplete(d.Progress) {
		items = append(items, components.MenuItem{
			Label:  "🎓 Certificate",
			Action: push(func() screen.Screen { return certificate.New(s.deps.Tracker) }),
		})
	}

	for _, m := range s.deps.Catalog.Modules() {
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("%2d. %s", m.ID, m.Title),
			Detail:   moduleDetail(&m, d.Progress),
			Disabled: progress.IsLocked(m.ID, d.Progress),
			Action:   s.openModule(m.ID),
		})
	}

	items = append(items,
		components.MenuItem{Label: "Glossary", Action: push(func() screen.Screen { return glossary.New(s.deps.Catalog) })},
		components.MenuItem{Label: "History", Action: push(func() screen.Screen { return history.New(s.deps.Tracker) })},
		components.MenuItem{Label: "Settings", Action: push(func() screen.Screen {
			return settings.New(s.deps.Tracker, s.deps.AppVersion, s.deps.ExportDir)
		})},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	s.menu = components.NewMenu(items)
}

func (s *Screen) openModule(id int) func() tea.Cmd {
	return func() tea.Cmd {
		m, ok := s.deps.Catalog.Module(id)
		if !ok {
			return nil
		}
		return router.Push(module.New(m, s.deps.Tracker, s.deps.Tutor))
	}
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd { return router.Push(build()) }
}

func moduleDetail(m *content.Module, p progress.AppProgress) string {
	mp := p.Module(m.ID)
	switch {
	case mp.Completed:
		score := ""
		if mp.QuizScore != nil {
			score = fmt.Sprintf(" · quiz %d%%", *mp.QuizScore)
		}
		return "✓ complete" + score
	case progress.IsLocked(m.ID, p):
		return "🔒 locked"
	}
	var parts []string
	if n := len(mp.ConceptsRead); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d read", min(n, len(m.Concepts)), len(m.Concepts)))
	}
	if mp.ExerciseCompleted {
		parts = append(parts, "exercise ✓")
	}
	if mp.QuizScore != nil {
		parts = append(parts, fmt.Sprintf("quiz %d%%", *mp.QuizScore))
	}
	if len(parts) == 0 {
		return m.Estimate
	}
	return strings.Join(parts, " · ")
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	s.notice = ""

	switch kmsg.String() {
	case "q":
		return s, tea.Quit
	case "c":
		next := progress.NextUnlocked(s.deps.Tracker.Snapshot().Progress)
		if next == 0 {
			s.notice = "Every module is complete. Open your certificate!"
			return s, nil
		}
		return s, s.openModule(next)()
	case "enter":
		if item, ok := s.menu.Current(); ok && item.Disabled {
			id := s.moduleAt(s.menu.Selected)
			s.notice = fmt.Sprintf("Module %d is locked. Complete Module %d first.", id, id-1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// moduleAt maps a menu index to a module id.
func (s *Screen) moduleAt(index int) int {
	if progress.AllComplete(s.deps.Tracker.Snapshot().Progress) {
		index--
	}
	return index + 1
}

func (s *Screen) View(width, height int) string {
	d := s.deps.Tracker.Snapshot()
	cw := layout.ContentWidth(width)

	sections := []string{
		renderWelcome(d.User.Name, cw),
		renderStats(d.Progress, cw),
	}
	if progress.AllComplete(d.Progress) {
		sections = append(sections, layout.Centered(theme.Correct.Render(
			"🎓 You've completed the course! Open the certificate from the menu."), cw))
	}
	sections = append(sections, components.Panel("Modules", s.menu.View(), cw))
	if s.notice != "" {
		sections = append(sections, components.Notice(s.notice, false))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+content)
}
