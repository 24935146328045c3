package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/finfluency/internal/progress"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			printStats(cmd, e)
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, e *env) {
	out := cmd.OutOrStdout()
	d := e.tracker.Snapshot()
	p := d.Progress

	started := time.UnixMilli(d.User.StartedAt)
	fmt.Fprintf(out, "Learner:       %s\n", d.User.Name)
	fmt.Fprintf(out, "Started:       %s (%s)\n", started.Local().Format("Jan 2, 2006"), humanize.Time(started))
	fmt.Fprintf(out, "Completed:     %d/%d modules (%d%%)\n", p.CompletedCount(), progress.ModuleCount, progress.OverallPercent(p))
	if avg, n := progress.AverageQuizScore(p); n > 0 {
		fmt.Fprintf(out, "Average quiz:  %.0f%% over %d %s\n", avg, n, plural(n, "quiz", "quizzes"))
	} else {
		fmt.Fprintln(out, "Average quiz:  no quizzes taken")
	}
	spent := (time.Duration(d.Stats.TotalTimeSpent) * time.Millisecond).Round(time.Minute)
	fmt.Fprintf(out, "Time spent:    %s\n", spent)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-3s  %-40s  %-11s  %-8s  %-8s  %s\n", "#", "Module", "Status", "Concepts", "Exercise", "Quiz")
	fmt.Fprintln(out, strings.Repeat("─", 88))
	for _, m := range e.catalog.Modules() {
		mp := p.Module(m.ID)
		fmt.Fprintf(out, "%-3d  %-40s  %-11s  %-8s  %-8s  %s\n",
			m.ID,
			truncate(m.Title, 40),
			moduleStatus(m.ID, p),
			fmt.Sprintf("%d/%d", len(mp.ConceptsRead), len(m.Concepts)),
			check(mp.ExerciseCompleted),
			quizCell(mp.QuizScore, m.Threshold()),
		)
	}

	if next := progress.NextUnlocked(p); next > 0 {
		m, _ := e.catalog.Module(next)
		fmt.Fprintf(out, "\nNext up: Module %d, %s\n", next, m.Title)
	} else if progress.AllComplete(p) {
		fmt.Fprintln(out, "\nAll modules complete. Run `finfluency certificate` to see your certificate.")
	}
}

func moduleStatus(id int, p progress.AppProgress) string {
	switch {
	case p.Module(id).Completed:
		return "complete"
	case progress.IsLocked(id, p):
		return "locked"
	}
	return "open"
}

func quizCell(score *int, threshold int) string {
	if score == nil {
		return "-"
	}
	mark := "✗"
	if *score >= threshold {
		mark = "✓"
	}
	return fmt.Sprintf("%d%% %s", *score, mark)
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "-"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
