package exercise

import (
	"maps"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/content"
)

// Feedback is the verdict shown for a practice question.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

// QuestionState is the learner's work on one practice question.
type QuestionState struct {
	Answer           answer.Response
	Feedback         Feedback
	HintsRevealed    int
	SolutionRevealed bool
}

// PracticeRunner keeps per-question state while the learner moves freely
// between questions. Completion fires on every check that finds all
// questions correct until the caller confirms it with MarkRecorded.
type PracticeRunner struct {
	questions []content.PracticeQuestion
	index     int
	states    map[int]*QuestionState
	recorded  bool
}

// NewPracticeRunner creates a runner over the questions.
func NewPracticeRunner(questions []content.PracticeQuestion) *PracticeRunner {
	states := make(map[int]*QuestionState, len(questions))
	for _, q := range questions {
		states[q.ID] = &QuestionState{}
	}
	return &PracticeRunner{questions: questions, states: states}
}

// Current returns the question in view.
func (r *PracticeRunner) Current() (content.PracticeQuestion, bool) {
	if r.index < 0 || r.index >= len(r.questions) {
		return content.PracticeQuestion{}, false
	}
	return r.questions[r.index], true
}

// Index returns the position of the question in view.
func (r *PracticeRunner) Index() int { return r.index }

// Total returns the number of questions.
func (r *PracticeRunner) Total() int { return len(r.questions) }

// Completed reports whether completion has been recorded.
func (r *PracticeRunner) Completed() bool { return r.recorded }

// MarkRecorded stops Check from reporting completion again.
func (r *PracticeRunner) MarkRecorded() { r.recorded = true }

// State returns a copy of the state of the question with the given id.
func (r *PracticeRunner) State(id int) QuestionState {
	st, ok := r.states[id]
	if !ok {
		return QuestionState{}
	}
	out := *st
	out.Answer.Fields = maps.Clone(st.Answer.Fields)
	return out
}

// CurrentState returns the state of the question in view.
func (r *PracticeRunner) CurrentState() QuestionState {
	q, ok := r.Current()
	if !ok {
		return QuestionState{}
	}
	return r.State(q.ID)
}

// Next moves to the following question, if any.
func (r *PracticeRunner) Next() bool { return r.Goto(r.index + 1) }

// Prev moves to the preceding question, if any.
func (r *PracticeRunner) Prev() bool { return r.Goto(r.index - 1) }

// Goto moves to the question at position i.
func (r *PracticeRunner) Goto(i int) bool {
	if i < 0 || i >= len(r.questions) {
		return false
	}
	r.index = i
	return true
}

// SetAnswer sets the typed answer or the selected option id.
func (r *PracticeRunner) SetAnswer(value string) {
	st := r.current()
	if st == nil {
		return
	}
	st.Answer.Value = value
	st.Feedback = FeedbackNone
}

// SetField sets one entry of a multi-input question.
func (r *PracticeRunner) SetField(key, value string) {
	st := r.current()
	if st == nil {
		return
	}
	if st.Answer.Fields == nil {
		st.Answer.Fields = make(map[string]string)
	}
	st.Answer.Fields[key] = value
	st.Feedback = FeedbackNone
}

// RevealHint shows one more hint for the question in view.
func (r *PracticeRunner) RevealHint() int {
	q, ok := r.Current()
	if !ok {
		return 0
	}
	st := r.states[q.ID]
	if st.HintsRevealed < len(q.Hints) {
		st.HintsRevealed++
	}
	return st.HintsRevealed
}

// RevealSolution shows the worked solution for the question in view.
func (r *PracticeRunner) RevealSolution() {
	if st := r.current(); st != nil {
		st.SolutionRevealed = true
	}
}

// Check grades the question in view. An empty answer is not graded.
// completedNow is true when every question is correct and completion has
// not been recorded yet.
func (r *PracticeRunner) Check() (fb Feedback, completedNow bool) {
	q, ok := r.Current()
	if !ok {
		return FeedbackNone, false
	}
	st := r.states[q.ID]
	if st.Answer.Empty() {
		return st.Feedback, false
	}

	if answer.Evaluate(q.Type, q.Answer.Expected, st.Answer) {
		st.Feedback = FeedbackCorrect
	} else {
		st.Feedback = FeedbackIncorrect
	}

	return st.Feedback, !r.recorded && r.AllCorrect()
}

// AllCorrect reports whether every question currently shows correct.
func (r *PracticeRunner) AllCorrect() bool {
	if len(r.questions) == 0 {
		return false
	}
	for _, q := range r.questions {
		if r.states[q.ID].Feedback != FeedbackCorrect {
			return false
		}
	}
	return true
}

// CorrectCount returns how many questions currently show correct.
func (r *PracticeRunner) CorrectCount() int {
	n := 0
	for _, q := range r.questions {
		if r.states[q.ID].Feedback == FeedbackCorrect {
			n++
		}
	}
	return n
}

func (r *PracticeRunner) current() *QuestionState {
	q, ok := r.Current()
	if !ok {
		return nil
	}
	return r.states[q.ID]
}
