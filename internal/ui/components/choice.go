package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Choice is one labelled option.
type Choice struct {
	ID   string
	Text string
}

// ChoiceList is a single-answer option picker. The cursor moves with the
// arrow keys; options can also be picked directly by their id letter.
// Grading lives with the caller; Reveal only changes how options render.
type ChoiceList struct {
	Options []Choice
	Cursor  int

	revealed bool
	chosen   string
	correct  string
}

// NewChoiceList creates a picker over options.
func NewChoiceList(options []Choice) ChoiceList {
	return ChoiceList{Options: options}
}

// Update moves the cursor. It reports the id of an option picked by
// letter, or "" when the key only moved the cursor.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, string) {
	if c.revealed {
		return c, ""
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ""
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	default:
		for i, o := range c.Options {
			if strings.EqualFold(key, o.ID) {
				c.Cursor = i
				return c, o.ID
			}
		}
	}
	return c, ""
}

// Highlighted returns the id under the cursor.
func (c ChoiceList) Highlighted() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ""
	}
	return c.Options[c.Cursor].ID
}

// Reveal freezes the list and marks the chosen and correct options.
func (c *ChoiceList) Reveal(chosen, correct string) {
	c.revealed = true
	c.chosen = chosen
	c.correct = correct
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, o := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, o.ID, o.Text)

		var style lipgloss.Style
		switch {
		case c.revealed && o.ID == c.correct:
			style = theme.Correct
			line += "  ✓"
		case c.revealed && o.ID == c.chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
