package module

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/quiz"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

type quizTab struct {
	s       *Screen
	runner  *quiz.Runner
	choices components.ChoiceList
}

func newQuizTab(s *Screen) *quizTab {
	t := &quizTab{s: s, runner: quiz.NewRunner(s.mod.Quiz)}
	t.load()
	return t
}

func (t *quizTab) label() string { return "Quiz" }

func (t *quizTab) hints() []layout.KeyHint {
	switch t.runner.Phase() {
	case quiz.PhaseSubmitted:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	case quiz.PhaseSummary:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-D", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
	}
}

func (t *quizTab) load() {
	q, ok := t.runner.Current()
	if !ok {
		return
	}
	opts := make([]components.Choice, len(q.Options))
	for i, o := range q.Options {
		opts[i] = components.Choice{ID: o.ID, Text: o.Text}
	}
	t.choices = components.NewChoiceList(opts)
}

func (t *quizTab) update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch t.runner.Phase() {
	case quiz.PhaseAnswering:
		if kmsg.String() == "enter" {
			t.runner.Select(t.choices.Highlighted())
			if t.runner.Submit() {
				q, _ := t.runner.Current()
				t.choices.Reveal(t.runner.Selected(), q.CorrectOptionID)
			}
			return nil
		}
		var picked string
		t.choices, picked = t.choices.Update(msg)
		if picked != "" {
			t.runner.Select(picked)
		}

	case quiz.PhaseSubmitted:
		if kmsg.String() != "enter" {
			return nil
		}
		res, done := t.runner.Next()
		if !done {
			t.load()
			return nil
		}
		t.s.clearNotice()
		ch, err := t.s.tracker.CompleteQuiz(t.s.ctx(), t.s.mod.ID, res.Percent)
		t.s.apply(ch, err)

	case quiz.PhaseSummary:
		if s := kmsg.String(); s == "r" || s == "R" {
			t.runner.Retry()
			t.s.clearNotice()
			t.load()
		}
	}
	return nil
}

func (t *quizTab) view(width int) string {
	if res, ok := t.runner.Result(); ok {
		return t.summaryView(res, width)
	}
	q, ok := t.runner.Current()
	if !ok {
		return theme.Hint.Render("This module has no quiz.")
	}

	var b strings.Builder
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", t.runner.Index()+1, t.runner.Total()),
		float64(t.runner.Index())/float64(t.runner.Total()), false, width/2)
	b.WriteString(bar.View())
	b.WriteString("   " + theme.Subtitle.Render(fmt.Sprintf("Score %d", t.runner.Score())))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(components.Wrap(q.Text, width)))
	b.WriteString("\n\n")
	b.WriteString(t.choices.View())

	if t.runner.Phase() == quiz.PhaseSubmitted {
		b.WriteString("\n")
		if t.runner.LastCorrect() {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Incorrect. The answer is " + q.CorrectOptionID + "."))
		}
		if q.Explanation != "" {
			b.WriteString("\n\n" + components.Wrap(q.Explanation, width))
		}
	}
	return b.String()
}

func (t *quizTab) summaryView(res quiz.Result, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("You answered %d of %d correctly.\n\n", res.Correct, res.Total))
	b.WriteString(components.NewProgressBar("Score", float64(res.Percent)/100, true, width/2).
		WithMark(float64(t.s.mod.Threshold()) / 100).View())
	b.WriteString("\n\n")

	if res.Passed() {
		b.WriteString(theme.Correct.Render("Passed! Great work."))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Below %d%%. Review the concepts and try again.", quiz.PassPercent)))
	}
	if need := t.s.mod.Threshold(); res.Percent < need && need != quiz.PassPercent {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("This module needs %d%% to complete.", need)))
	}
	b.WriteString("\n\n" + theme.Subtitle.Render("Press R to retake the quiz."))
	return b.String()
}
