package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Panel wraps content in a rounded card of the given outer width with an
// optional heading.
func Panel(heading, content string, width int) string {
	body := content
	if heading != "" {
		body = theme.Title.Render(heading) + "\n\n" + content
	}
	return theme.Card.Width(width).Render(body)
}

// Tabs renders a tab strip with the active tab highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Notice renders a one-line status message in the given tone.
func Notice(text string, good bool) string {
	if text == "" {
		return ""
	}
	if good {
		return theme.Correct.Render(text)
	}
	return theme.Incorrect.Render(text)
}

// Wrap word-wraps text to width.
func Wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(text))
}
