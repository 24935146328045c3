// Package module is the tabbed learning screen for a single module.
package module

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/screen"
	"github.com/abhisek/finfluency/internal/tutor"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// tab is one pane of the module screen.
type tab interface {
	label() string
	update(msg tea.Msg) tea.Cmd
	view(width int) string
	hints() []layout.KeyHint
}

// Screen shows one module with Learn, Practice and Quiz tabs, plus the
// break-even calculator where the module carries one.
type Screen struct {
	mod     *content.Module
	tracker *progress.Tracker
	tutor   *tutor.Service

	tabs   []tab
	active int

	notice     string
	noticeGood bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen for mod. svc may be nil.
func New(mod *content.Module, tracker *progress.Tracker, svc *tutor.Service) *Screen {
	s := &Screen{mod: mod, tracker: tracker, tutor: svc}
	s.tabs = append(s.tabs, newLearnTab(s))
	if mod.Exercise != nil {
		s.tabs = append(s.tabs, newBalanceTab(s))
	} else {
		s.tabs = append(s.tabs, newPracticeTab(s))
	}
	s.tabs = append(s.tabs, newQuizTab(s))
	if mod.Calculator {
		s.tabs = append(s.tabs, newCalculatorTab())
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return fmt.Sprintf("Module %d · %s", s.mod.ID, s.mod.Title)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	hints = append(hints, s.tabs[s.active].hints()...)
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			s.switchTab(s.active + 1)
			return s, nil
		case "shift+tab":
			s.switchTab(s.active - 1)
			return s, nil
		}
	}
	return s, s.tabs[s.active].update(msg)
}

func (s *Screen) switchTab(i int) {
	n := len(s.tabs)
	s.active = ((i % n) + n) % n
	s.notice = ""
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	if s.tracker.IsLocked(s.mod.ID) {
		msg := theme.Locked.Render(fmt.Sprintf(
			"🔒 Module %d is locked.\n\nComplete Module %d to unlock it.", s.mod.ID, s.mod.ID-1))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	labels := make([]string, len(s.tabs))
	for i, t := range s.tabs {
		labels[i] = t.label()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.statusLine(cw))
	b.WriteString("\n\n")
	b.WriteString(components.Tabs(labels, s.active))
	b.WriteString("\n\n")
	b.WriteString(s.tabs[s.active].view(cw))
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Notice(s.notice, s.noticeGood))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *Screen) statusLine(width int) string {
	mp := s.tracker.Module(s.mod.ID)
	read := 0
	for _, id := range s.mod.ConceptIDs() {
		if mp.HasRead(id) {
			read++
		}
	}

	mark := func(done bool) string {
		if done {
			return theme.Correct.Render("✓")
		}
		return theme.Locked.Render("·")
	}
	quiz := "not taken"
	if mp.QuizScore != nil {
		quiz = fmt.Sprintf("%d%%", *mp.QuizScore)
	}

	left := fmt.Sprintf("%s Concepts %d/%d   %s Exercise   %s Quiz %s (pass %d%%)",
		mark(read == len(s.mod.Concepts)), read, len(s.mod.Concepts),
		mark(mp.ExerciseCompleted),
		mark(mp.QuizScore != nil && *mp.QuizScore >= s.mod.Threshold()), quiz, s.mod.Threshold())
	right := theme.Subtitle.Render(s.mod.Estimate)
	if mp.Completed {
		right = theme.Correct.Render("Completed")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// apply reports the outcome of a tracker mutation to the learner.
func (s *Screen) apply(ch progress.Change, err error) {
	switch {
	case errors.Is(err, progress.ErrModuleLocked):
		s.setNotice(fmt.Sprintf("Module %d is locked. Complete Module %d first.", s.mod.ID, s.mod.ID-1), false)
	case err != nil:
		s.setNotice("Could not save progress: "+err.Error(), false)
	case ch.NewlyCompleted && ch.Unlocked != 0:
		s.setNotice(fmt.Sprintf("🎉 Module %d complete! Module %d is now unlocked.", ch.ModuleID, ch.Unlocked), true)
	case ch.NewlyCompleted:
		s.setNotice(fmt.Sprintf("🎉 Module %d complete!", ch.ModuleID), true)
	}
}

func (s *Screen) setNotice(text string, good bool) {
	s.notice = text
	s.noticeGood = good
}

func (s *Screen) clearNotice() {
	s.notice = ""
}

func (s *Screen) ctx() context.Context {
	return context.Background()
}
