// Package quiz runs a module's multiple-choice quiz one question at a time.
package quiz

import (
	"math"

	"github.com/abhisek/finfluency/internal/content"
)

// PassPercent is the score the quiz summary reports as a pass. Module
// completion uses the module's own threshold instead.
const PassPercent = 70

// Phase is the runner's position in the question cycle.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseSubmitted
	PhaseSummary
)

// Result is the outcome of a finished quiz.
type Result struct {
	Correct int
	Total   int
	Percent int
}

// Passed reports whether the percentage reaches PassPercent.
func (r Result) Passed() bool {
	return r.Percent >= PassPercent
}

// Runner holds the state of one quiz attempt.
type Runner struct {
	questions   []content.QuizQuestion
	index       int
	selected    string
	phase       Phase
	correct     int
	lastCorrect bool
	result      Result
}

// NewRunner starts an attempt over the given questions.
func NewRunner(questions []content.QuizQuestion) *Runner {
	return &Runner{questions: questions}
}

// Current returns the question being asked.
func (r *Runner) Current() (content.QuizQuestion, bool) {
	if r.phase == PhaseSummary || r.index >= len(r.questions) {
		return content.QuizQuestion{}, false
	}
	return r.questions[r.index], true
}

// Index returns the zero-based position of the current question.
func (r *Runner) Index() int { return r.index }

// Total returns the number of questions.
func (r *Runner) Total() int { return len(r.questions) }

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.phase }

// Selected returns the tentatively chosen option id.
func (r *Runner) Selected() string { return r.selected }

// Score returns the number of correct answers so far.
func (r *Runner) Score() int { return r.correct }

// LastCorrect reports whether the last submitted answer was correct.
func (r *Runner) LastCorrect() bool { return r.lastCorrect }

// Select chooses an option for the current question. It has no effect
// once the answer is submitted or when the option does not exist.
func (r *Runner) Select(optionID string) bool {
	q, ok := r.Current()
	if !ok || r.phase != PhaseAnswering {
		return false
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			r.selected = optionID
			return true
		}
	}
	return false
}

// Submit grades the selected option. It does nothing without a selection.
func (r *Runner) Submit() bool {
	q, ok := r.Current()
	if !ok || r.phase != PhaseAnswering || r.selected == "" {
		return false
	}
	r.lastCorrect = r.selected == q.CorrectOptionID
	if r.lastCorrect {
		r.correct++
	}
	r.phase = PhaseSubmitted
	return true
}

// Next moves past a submitted question. After the last question it
// finishes the attempt and returns the result with done set.
func (r *Runner) Next() (res Result, done bool) {
	if len(r.questions) == 0 && r.phase != PhaseSummary {
		return r.finish(), true
	}
	if r.phase != PhaseSubmitted {
		return Result{}, false
	}
	if r.index+1 >= len(r.questions) {
		return r.finish(), true
	}
	r.index++
	r.selected = ""
	r.lastCorrect = false
	r.phase = PhaseAnswering
	return Result{}, false
}

// Result returns the final result once the attempt is finished.
func (r *Runner) Result() (Result, bool) {
	if r.phase != PhaseSummary {
		return Result{}, false
	}
	return r.result, true
}

// Retry discards the attempt and starts again from the first question.
func (r *Runner) Retry() {
	*r = Runner{questions: r.questions}
}

func (r *Runner) finish() Result {
	r.phase = PhaseSummary
	r.result = Result{
		Correct: r.correct,
		Total:   len(r.questions),
		Percent: Percentage(r.correct, len(r.questions)),
	}
	return r.result
}

// Percentage returns correct/total as a whole percent, halves rounded up.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}
