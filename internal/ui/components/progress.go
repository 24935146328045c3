package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/ui/theme"
)

// ProgressBar draws a fraction in [0,1] as a horizontal bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	// Mark, when inside (0,1), puts a tick on the bar, e.g. at a pass mark.
	Mark float64
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// WithMark returns a copy of the bar with a tick at mark.
func (p ProgressBar) WithMark(mark float64) ProgressBar {
	p.Mark = mark
	return p
}

func (p ProgressBar) View() string {
	frac := math.Max(0, math.Min(p.Percent, 1))

	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(math.Round(frac*100)))
	}

	n := max(4, p.Width-lipgloss.Width(label)-len(suffix))
	filled := int(float64(n) * frac)

	cells := []rune(strings.Repeat("█", filled) + strings.Repeat("░", n-filled))
	if p.Mark > 0 && p.Mark < 1 {
		cells[min(int(float64(n)*p.Mark), n-1)] = '┃'
	}

	return label +
		lipgloss.NewStyle().Foreground(theme.Primary).Render(string(cells[:filled])) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(string(cells[filled:])) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
}
