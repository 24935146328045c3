package dashboard

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/progress"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

func renderWelcome(name string, cw int) string {
	greeting := theme.Title.Render("Welcome back, " + name)
	sub := theme.Subtitle.Render("Accounting fundamentals in ten modules")
	return lipgloss.NewStyle().Width(cw).Render(greeting + "\n" + sub)
}

// renderStats renders completed count, overall percent and average quiz
// score in a bordered bar matching the content width.
func renderStats(p progress.AppProgress, cw int) string {
	strong := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	avg := dim.Render("no quizzes yet")
	if mean, n := progress.AverageQuizScore(p); n > 0 {
		avg = strong.Render(fmt.Sprintf("%.0f%%", mean)) + dim.Render(fmt.Sprintf(" avg quiz (%d taken)", n))
	}

	stats := fmt.Sprintf("%s%s   %s%s   %s",
		strong.Render(fmt.Sprintf("%d/%d", p.CompletedCount(), progress.ModuleCount)), dim.Render(" modules"),
		strong.Render(fmt.Sprintf("%d%%", progress.OverallPercent(p))), dim.Render(" overall"),
		avg,
	)
	bar := components.NewProgressBar("", float64(progress.OverallPercent(p))/100, false, cw-6).View()

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(stats + "\n" + bar)
}
