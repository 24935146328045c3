package module

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

type learnTab struct {
	s      *Screen
	cursor int
}

func newLearnTab(s *Screen) *learnTab {
	return &learnTab{s: s}
}

func (t *learnTab) label() string { return "Learn" }

func (t *learnTab) hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Concept"},
		{Key: "Space", Description: "Mark read"},
	}
}

func (t *learnTab) update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	concepts := t.s.mod.Concepts
	switch kmsg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(concepts)-1 {
			t.cursor++
		}
	case "space", "enter":
		c := concepts[t.cursor]
		read := t.s.tracker.Module(t.s.mod.ID).HasRead(c.ID)
		ch, err := t.s.tracker.ToggleConcept(t.s.ctx(), t.s.mod.ID, c.ID, !read)
		t.s.clearNotice()
		t.s.apply(ch, err)
		if err == nil && !read && t.cursor < len(concepts)-1 {
			t.cursor++
		}
	}
	return nil
}

func (t *learnTab) view(width int) string {
	mp := t.s.tracker.Module(t.s.mod.ID)

	var list strings.Builder
	for i, c := range t.s.mod.Concepts {
		box := "[ ]"
		if mp.HasRead(c.ID) {
			box = theme.Correct.Render("[✓]")
		}
		line := fmt.Sprintf("%s %d. %s", box, i+1, c.Title)
		if i == t.cursor {
			list.WriteString(theme.Selected.Render("▸ ") + theme.Selected.Render(line))
		} else {
			list.WriteString("  " + theme.Unselected.Render(line))
		}
		list.WriteString("\n")
	}

	c := t.s.mod.Concepts[t.cursor]
	body := components.Wrap(c.Body, width-6)
	if c.Takeaway != "" {
		body += "\n\n" + theme.Money.Render("Key takeaway: ") + components.Wrap(c.Takeaway, width-20)
	}
	if c.Example != "" {
		body += "\n\n" + theme.Hint.Render("Real world: ") + components.Wrap(c.Example, width-20)
	}

	return list.String() + "\n" + components.Panel(c.Title, body, width)
}
