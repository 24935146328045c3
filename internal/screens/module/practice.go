package module

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/exercise"
	"github.com/abhisek/finfluency/internal/tutor"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// tutorReplyMsg carries an explanation back for question QuestionID.
type tutorReplyMsg struct {
	ModuleID   int
	QuestionID int
	Feedback   tutor.Feedback
}

type practiceTab struct {
	s      *Screen
	runner *exercise.PracticeRunner

	inputs  []components.TextInput
	keys    []string // field keys for multi-input, parallel to inputs
	focus   int
	choices components.ChoiceList

	explained map[int]tutor.Feedback
	thinking  map[int]bool
}

func newPracticeTab(s *Screen) *practiceTab {
	t := &practiceTab{
		s:         s,
		runner:    exercise.NewPracticeRunner(s.mod.Practice),
		explained: make(map[int]tutor.Feedback),
		thinking:  make(map[int]bool),
	}
	t.load()
	return t
}

func (t *practiceTab) label() string { return "Practice" }

func (t *practiceTab) hints() []layout.KeyHint {
	h := []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "PgUp/PgDn", Description: "Question"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "Ctrl+O", Description: "Solution"},
	}
	if t.runner.CurrentState().Feedback == exercise.FeedbackIncorrect {
		h = append(h, layout.KeyHint{Key: "?", Description: "Explain"})
	}
	return h
}

// load rebuilds the entry widgets from the stored state of the question
// in view.
func (t *practiceTab) load() {
	q, ok := t.runner.Current()
	if !ok {
		return
	}
	st := t.runner.CurrentState()
	t.inputs, t.keys, t.focus = nil, nil, 0

	switch q.Type {
	case answer.KindMultipleChoice:
		opts := make([]components.Choice, len(q.Options))
		cursor := 0
		for i, o := range q.Options {
			opts[i] = components.Choice{ID: o.ID, Text: o.Text}
			if o.ID == st.Answer.Value {
				cursor = i
			}
		}
		t.choices = components.NewChoiceList(opts)
		t.choices.Cursor = cursor
	case answer.KindMultiInput:
		for i, f := range q.InputFields {
			in := components.NewTextInput("", fieldIsNumeric(q, f.Key), 24)
			in.Label = f.Label
			in.Prefix = f.Prefix
			in.Suffix = f.Suffix
			in.SetValue(st.Answer.Fields[f.Key])
			if i > 0 {
				in.Blur()
			}
			t.inputs = append(t.inputs, in)
			t.keys = append(t.keys, f.Key)
		}
	default:
		in := components.NewTextInput("your answer", q.Type == answer.KindNumber, 32)
		in.Prefix = q.Prefix
		in.Suffix = q.Suffix
		in.SetValue(st.Answer.Value)
		t.inputs = append(t.inputs, in)
	}
}

func fieldIsNumeric(q content.PracticeQuestion, key string) bool {
	v, ok := q.Answer.Fields()[key]
	return ok && v.IsNumber()
}

func (t *practiceTab) update(msg tea.Msg) tea.Cmd {
	if reply, ok := msg.(tutorReplyMsg); ok {
		if reply.ModuleID == t.s.mod.ID {
			delete(t.thinking, reply.QuestionID)
			t.explained[reply.QuestionID] = reply.Feedback
		}
		return nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	q, ok := t.runner.Current()
	if !ok {
		return nil
	}

	switch kmsg.String() {
	case "enter":
		t.check(q)
		return nil
	case "pgdown", "ctrl+n":
		if t.runner.Next() {
			t.s.clearNotice()
			t.load()
		}
		return nil
	case "pgup", "ctrl+p":
		if t.runner.Prev() {
			t.s.clearNotice()
			t.load()
		}
		return nil
	case "ctrl+t":
		t.runner.RevealHint()
		return nil
	case "ctrl+o":
		t.runner.RevealSolution()
		return nil
	case "?":
		return t.explain(q)
	case "up":
		if len(t.inputs) > 1 {
			t.moveFocus(-1)
			return nil
		}
	case "down":
		if len(t.inputs) > 1 {
			t.moveFocus(1)
			return nil
		}
	}

	if q.Type == answer.KindMultipleChoice {
		var picked string
		t.choices, picked = t.choices.Update(msg)
		if picked != "" {
			t.runner.SetAnswer(picked)
			delete(t.explained, q.ID)
		}
		return nil
	}

	before := t.inputs[t.focus].Value()
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	if v := t.inputs[t.focus].Value(); v != before {
		if q.Type == answer.KindMultiInput {
			t.runner.SetField(t.keys[t.focus], v)
		} else {
			t.runner.SetAnswer(v)
		}
		delete(t.explained, q.ID)
	}
	return cmd
}

func (t *practiceTab) moveFocus(delta int) {
	t.inputs[t.focus].Blur()
	t.focus = (t.focus + delta + len(t.inputs)) % len(t.inputs)
	t.inputs[t.focus].Focus()
}

func (t *practiceTab) check(q content.PracticeQuestion) {
	if q.Type == answer.KindMultipleChoice && t.choices.Highlighted() != t.runner.CurrentState().Answer.Value {
		t.runner.SetAnswer(t.choices.Highlighted())
	}

	fb, completedNow := t.runner.Check()
	delete(t.explained, q.ID)
	t.s.clearNotice()
	switch fb {
	case exercise.FeedbackNone:
		t.s.setNotice("Enter an answer first.", false)
		return
	case exercise.FeedbackCorrect:
		t.s.setNotice("✓ Correct!", true)
	case exercise.FeedbackIncorrect:
		t.s.setNotice("✗ Not quite. Try again, take a hint, or press ? for help.", false)
	}
	for i := range t.inputs {
		t.inputs[i].Mark(fb == exercise.FeedbackCorrect)
	}

	if completedNow {
		ch, err := t.s.tracker.CompleteExercise(t.s.ctx(), t.s.mod.ID)
		if err == nil {
			t.runner.MarkRecorded()
			t.s.setNotice("✓ All practice questions correct. Exercise complete!", true)
		}
		t.s.apply(ch, err)
	}
}

// explain asks the tutor about the current incorrect attempt. Rule hits
// answer immediately; anything else goes to the model in the background.
func (t *practiceTab) explain(q content.PracticeQuestion) tea.Cmd {
	st := t.runner.CurrentState()
	if st.Feedback != exercise.FeedbackIncorrect {
		return nil
	}
	if _, done := t.explained[q.ID]; done || t.thinking[q.ID] {
		return nil
	}
	if t.s.tutor == nil {
		t.s.setNotice("The tutor is switched off. Ctrl+O shows the worked solution.", false)
		return nil
	}

	in := t.tutorInput(q, st)
	if fb, ok := t.s.tutor.Quick(in); ok {
		t.explained[q.ID] = fb
		return nil
	}
	if !t.s.tutor.HasModel() {
		t.explained[q.ID] = tutor.Feedback{Category: tutor.CategoryUnmatched, Source: "none"}
		return nil
	}

	t.thinking[q.ID] = true
	svc, moduleID := t.s.tutor, t.s.mod.ID
	return func() tea.Msg {
		fb := svc.Explain(context.Background(), in)
		return tutorReplyMsg{ModuleID: moduleID, QuestionID: q.ID, Feedback: fb}
	}
}

func (t *practiceTab) tutorInput(q content.PracticeQuestion, st exercise.QuestionState) *tutor.Input {
	labels := make(map[string]string, len(q.InputFields))
	for _, f := range q.InputFields {
		labels[f.Key] = f.Label
	}
	return &tutor.Input{
		ModuleTitle: t.s.mod.Title,
		Question:    q.Text,
		CaseStudy:   t.s.mod.CaseStudy(q),
		Kind:        q.Type,
		Expected:    q.Answer.Expected,
		Response:    st.Answer,
		Solution:    q.Solution,
		FieldLabels: labels,
	}
}

func (t *practiceTab) view(width int) string {
	q, ok := t.runner.Current()
	if !ok {
		return theme.Hint.Render("This module has no practice questions.")
	}
	st := t.runner.CurrentState()

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d   ·   %d correct",
		t.runner.Index()+1, t.runner.Total(), t.runner.CorrectCount())))
	if t.runner.Completed() || t.s.tracker.Module(t.s.mod.ID).ExerciseCompleted {
		b.WriteString("   " + theme.Correct.Render("Exercise complete"))
	}
	b.WriteString("\n\n")

	if cs := t.s.mod.CaseStudy(q); cs != "" {
		b.WriteString(components.Panel("Case", components.Wrap(cs, width-6), width))
		b.WriteString("\n")
	}
	b.WriteString(theme.Body.Bold(true).Render(components.Wrap(q.Text, width)))
	b.WriteString("\n\n")

	if q.Type == answer.KindMultipleChoice {
		b.WriteString(t.choices.View())
		switch st.Feedback {
		case exercise.FeedbackCorrect:
			b.WriteString(theme.Correct.Render("✓ Correct") + "\n")
		case exercise.FeedbackIncorrect:
			b.WriteString(theme.Incorrect.Render("✗ Not quite") + "\n")
		}
	} else {
		for i, in := range t.inputs {
			prefix := "  "
			if i == t.focus && len(t.inputs) > 1 {
				prefix = theme.Selected.Render("▸ ")
			}
			b.WriteString(prefix + in.View() + "\n")
		}
	}

	for i := 0; i < st.HintsRevealed && i < len(q.Hints); i++ {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("Hint %d: %s", i+1, q.Hints[i])))
	}
	if len(q.Hints) > 0 && st.HintsRevealed < len(q.Hints) {
		b.WriteString("\n" + theme.Subtitle.Render(fmt.Sprintf("%d hint(s) available", len(q.Hints)-st.HintsRevealed)))
	}

	if t.thinking[q.ID] {
		b.WriteString("\n\n" + theme.Hint.Render("Tutor is thinking..."))
	} else if fb, ok := t.explained[q.ID]; ok {
		b.WriteString("\n\n" + renderFeedback(fb, width))
	}

	if st.SolutionRevealed {
		b.WriteString("\n\n" + components.Panel("Solution", components.Wrap(q.Solution, width-6), width))
	}
	return b.String()
}

func renderFeedback(fb tutor.Feedback, width int) string {
	if fb.Category == tutor.CategoryUnmatched {
		return theme.Hint.Render("No specific advice for this one. Ctrl+O shows the worked solution.")
	}
	body := theme.Money.Render(fb.Nudge)
	if fb.Explanation != "" {
		body += "\n\n" + components.Wrap(fb.Explanation, width-6)
	}
	return components.Panel("Tutor", body, width)
}
