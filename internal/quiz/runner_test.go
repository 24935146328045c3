package quiz

import (
	"testing"

	"github.com/abhisek/finfluency/internal/content"
)

func sampleQuestions(n int) []content.QuizQuestion {
	qs := make([]content.QuizQuestion, n)
	for i := range qs {
		qs[i] = content.QuizQuestion{
			ID:   i + 1,
			Text: "question",
			Options: []content.Option{
				{ID: "A", Text: "first"},
				{ID: "B", Text: "second"},
				{ID: "C", Text: "third"},
			},
			CorrectOptionID: "B",
		}
	}
	return qs
}

// answer runs one question through select, submit and next.
func answer(t *testing.T, r *Runner, option string) (Result, bool) {
	t.Helper()
	if !r.Select(option) {
		t.Fatalf("Select(%q) rejected at question %d", option, r.Index())
	}
	if !r.Submit() {
		t.Fatalf("Submit rejected at question %d", r.Index())
	}
	return r.Next()
}

func TestRunner_FiveOfSix(t *testing.T) {
	r := NewRunner(sampleQuestions(6))
	picks := []string{"B", "B", "A", "B", "B", "B"}

	var res Result
	var done bool
	for i, p := range picks {
		res, done = answer(t, r, p)
		if done != (i == len(picks)-1) {
			t.Fatalf("done = %v after question %d", done, i+1)
		}
	}

	if res.Percent != 83 || res.Correct != 5 || res.Total != 6 {
		t.Errorf("result = %+v, want 5/6 = 83%%", res)
	}
	if !res.Passed() {
		t.Error("83% should pass")
	}
	if r.Phase() != PhaseSummary {
		t.Errorf("phase = %v, want summary", r.Phase())
	}
}

func TestRunner_FourOfSixFails(t *testing.T) {
	r := NewRunner(sampleQuestions(6))
	var res Result
	for _, p := range []string{"B", "A", "B", "C", "B", "B"} {
		res, _ = answer(t, r, p)
	}
	if res.Percent != 67 {
		t.Errorf("percent = %d, want 67", res.Percent)
	}
	if res.Passed() {
		t.Error("67% should not pass")
	}
}

func TestRunner_SubmitRequiresSelection(t *testing.T) {
	r := NewRunner(sampleQuestions(2))
	if r.Submit() {
		t.Fatal("Submit without a selection should be rejected")
	}
	if r.Phase() != PhaseAnswering {
		t.Errorf("phase changed to %v", r.Phase())
	}
	if _, done := r.Next(); done || r.Index() != 0 {
		t.Error("Next before submit should do nothing")
	}
}

func TestRunner_SelectionLockedAfterSubmit(t *testing.T) {
	r := NewRunner(sampleQuestions(2))
	r.Select("A")
	r.Select("B")
	if r.Selected() != "B" {
		t.Fatalf("selected = %q, want B", r.Selected())
	}
	r.Submit()
	if r.Select("C") {
		t.Error("Select after submit should be rejected")
	}
	if r.Selected() != "B" || !r.LastCorrect() || r.Score() != 1 {
		t.Errorf("state changed after submit: selected=%q correct=%v score=%d", r.Selected(), r.LastCorrect(), r.Score())
	}
	if r.Submit() {
		t.Error("double submit should be rejected")
	}
	if r.Score() != 1 {
		t.Errorf("score = %d after double submit, want 1", r.Score())
	}
}

func TestRunner_SelectUnknownOption(t *testing.T) {
	r := NewRunner(sampleQuestions(1))
	if r.Select("Z") {
		t.Error("unknown option should be rejected")
	}
	if r.Selected() != "" {
		t.Errorf("selected = %q", r.Selected())
	}
}

func TestRunner_NextClearsSelection(t *testing.T) {
	r := NewRunner(sampleQuestions(3))
	answer(t, r, "A")
	if r.Selected() != "" || r.Phase() != PhaseAnswering || r.Index() != 1 {
		t.Errorf("after next: selected=%q phase=%v index=%d", r.Selected(), r.Phase(), r.Index())
	}
}

func TestRunner_Retry(t *testing.T) {
	r := NewRunner(sampleQuestions(2))
	answer(t, r, "B")
	answer(t, r, "B")

	r.Retry()
	if r.Index() != 0 || r.Score() != 0 || r.Phase() != PhaseAnswering || r.Selected() != "" {
		t.Errorf("retry did not reset: index=%d score=%d phase=%v", r.Index(), r.Score(), r.Phase())
	}
	if _, ok := r.Result(); ok {
		t.Error("result should be cleared after retry")
	}
}

func TestRunner_EmptyQuiz(t *testing.T) {
	r := NewRunner(nil)
	if _, ok := r.Current(); ok {
		t.Error("empty quiz has no current question")
	}
	res, done := r.Next()
	if !done || res.Percent != 0 || res.Total != 0 {
		t.Errorf("empty quiz: res=%+v done=%v", res, done)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 6, 0},
		{6, 6, 100},
		{5, 6, 83},
		{4, 6, 67},
		{1, 8, 13},
		{7, 10, 70},
		{0, 0, 0},
	}
	for _, tc := range tests {
		if got := Percentage(tc.correct, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}
