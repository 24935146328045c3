package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// numericRunes are the characters a money or ratio entry may contain.
const numericRunes = "0123456789.,-()$%"

// TextInput wraps bubbles/textinput with the app styling.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
	Label   string
	Prefix  string
	Suffix  string
	mark    int // 0 none, 1 correct, -1 incorrect
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, numeric bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Numeric: numeric}
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Numeric inputs drop printable keys that
// cannot appear in a number.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.Numeric {
		if text := kmsg.Key().Text; text != "" && strings.Trim(text, numericRunes) != "" {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.mark = 0
	}
	return t, cmd
}

// View renders the input with its label, prefix and suffix.
func (t TextInput) View() string {
	var b strings.Builder
	if t.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label + ": "))
	}
	if t.Prefix != "" {
		b.WriteString(t.Prefix)
	}
	b.WriteString(t.Model.View())
	if t.Suffix != "" {
		b.WriteString(" " + t.Suffix)
	}
	switch t.mark {
	case 1:
		b.WriteString(" " + theme.Correct.Render("✓"))
	case -1:
		b.WriteString(" " + theme.Incorrect.Render("✗"))
	}
	return b.String()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// NumericValue parses the input the same way answers are graded.
func (t TextInput) NumericValue() (float64, bool) {
	return answer.ParseNumber(t.Model.Value())
}

// Mark shows a correctness tick after the input until the next edit.
func (t *TextInput) Mark(correct bool) {
	if correct {
		t.mark = 1
	} else {
		t.mark = -1
	}
}
