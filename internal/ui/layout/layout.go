// Package layout draws the frame around every screen: a header naming the
// screen and the learner's progress, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/ui/theme"
)

// Smallest terminal the app draws in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Below this width the app name is left out of the header.
const compactWidth = 100

// KeyHint is one entry in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderInfo is the learner summary shown on the right of the header.
type HeaderInfo struct {
	Name      string
	Completed int
	Total     int
}

// gauge renders one pip per module, filled for completed ones.
func (i HeaderInfo) gauge() string {
	if i.Name == "" || i.Total <= 0 {
		return ""
	}
	done := max(0, min(i.Completed, i.Total))
	return lipgloss.NewStyle().Foreground(theme.Text).Render(i.Name) + "  " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat("▰", done)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", i.Total-done)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", done, i.Total))
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth is the width of the reading column for a terminal width,
// kept between 40 and 96 cells.
func ContentWidth(width int) int {
	return max(40, min(width-8, 96))
}

// Centered places a block in the middle of the content column.
func Centered(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// Chrome is everything drawn around the active screen.
type Chrome struct {
	Title string
	Info  HeaderInfo
	Hints []KeyHint
}

var bar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the header and footer and fills the space between them
// with body, which is told how much room it has.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	header := c.header(width)
	footer := c.footer(width)
	h := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))

	content := lipgloss.NewStyle().
		Width(width).
		Height(h).
		MaxHeight(h).
		Render(body(width, h))
	return header + "\n" + content + "\n" + footer
}

func (c Chrome) header(width int) string {
	brand := ""
	if width >= compactWidth {
		brand = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Finance Fluency")
	}
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	right := c.Info.gauge()

	// The title is centred on the bar; the sides take what is left.
	inner := max(0, width-4)
	bw, tw, rw := lipgloss.Width(brand), lipgloss.Width(title), lipgloss.Width(right)
	leftGap := max(1, (inner-tw)/2-bw)
	rightGap := max(1, inner-bw-leftGap-tw-rw)

	return bar.Width(width).Render(brand + strings.Repeat(" ", leftGap) + title + strings.Repeat(" ", rightGap) + right)
}

func (c Chrome) footer(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}
