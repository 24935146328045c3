package exercise

import (
	"testing"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/content"
)

func practiceSet() []content.PracticeQuestion {
	return []content.PracticeQuestion{
		{
			ID:     1,
			Type:   answer.KindNumber,
			Answer: content.Answer{Expected: answer.OneOf(answer.Number(50), answer.Text("50"))},
			Hints:  []string{"Gross profit over revenue", "2,600 / 5,200"},
		},
		{
			ID:   2,
			Type: answer.KindMultipleChoice,
			Options: []content.Option{
				{ID: "A", Text: "Principal"},
				{ID: "B", Text: "Agent"},
			},
			Answer: content.Answer{Expected: answer.Scalar(answer.Text("B"))},
		},
		{
			ID:   3,
			Type: answer.KindMultiInput,
			InputFields: []content.InputField{
				{Key: "result", Label: "Result"},
				{Key: "amount", Label: "Amount"},
			},
			Answer: content.Answer{Expected: answer.FieldMap(map[string]answer.Value{
				"result": answer.Text("Loss"),
				"amount": answer.Number(20000),
			})},
		},
	}
}

func TestPractice_StatePersistsAcrossNavigation(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	r.SetAnswer("49")
	r.RevealHint()
	r.Check()

	r.Next()
	r.SetAnswer("A")
	r.Prev()

	st := r.CurrentState()
	if st.Answer.Value != "49" || st.HintsRevealed != 1 || st.Feedback != FeedbackIncorrect {
		t.Errorf("state lost after navigation: %+v", st)
	}
	if got := r.State(2).Answer.Value; got != "A" {
		t.Errorf("question 2 answer = %q, want A", got)
	}
}

func TestPractice_EditClearsFeedback(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	r.SetAnswer("49")
	if fb, _ := r.Check(); fb != FeedbackIncorrect {
		t.Fatalf("feedback = %v, want incorrect", fb)
	}
	r.SetAnswer("50")
	if r.CurrentState().Feedback != FeedbackNone {
		t.Error("editing should clear feedback")
	}
	if fb, _ := r.Check(); fb != FeedbackCorrect {
		t.Errorf("feedback = %v, want correct", fb)
	}
}

func TestPractice_EmptyAnswerIsNotGraded(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	if fb, _ := r.Check(); fb != FeedbackNone {
		t.Errorf("feedback = %v, want none", fb)
	}
}

func TestPractice_HintsCapped(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	for i := 0; i < 4; i++ {
		r.RevealHint()
	}
	if got := r.CurrentState().HintsRevealed; got != 2 {
		t.Errorf("hints = %d, want 2", got)
	}
}

func TestPractice_CompletionFiresOnceWhenAllCorrect(t *testing.T) {
	r := NewPracticeRunner(practiceSet())

	r.SetAnswer("50")
	if _, done := r.Check(); done {
		t.Fatal("one of three correct should not complete")
	}

	r.Next()
	r.SetAnswer("B")
	if _, done := r.Check(); done {
		t.Fatal("two of three correct should not complete")
	}

	r.Next()
	r.SetField("result", "loss")
	r.SetField("amount", "£20,000")
	fb, done := r.Check()
	if fb != FeedbackCorrect || !done {
		t.Fatalf("feedback=%v done=%v, want correct and done", fb, done)
	}
	if r.CorrectCount() != 3 || r.Completed() {
		t.Errorf("correct=%d completed=%v", r.CorrectCount(), r.Completed())
	}

	r.MarkRecorded()
	if !r.Completed() {
		t.Error("Completed should report true once recorded")
	}
	if _, done := r.Check(); done {
		t.Error("completion should not fire after it was recorded")
	}
}

func TestPractice_CompletionRepeatsUntilRecorded(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	r.SetAnswer("50")
	r.Check()
	r.Next()
	r.SetAnswer("B")
	r.Check()
	r.Next()
	r.SetField("result", "loss")
	r.SetField("amount", "20000")

	for i := 0; i < 2; i++ {
		if _, done := r.Check(); !done {
			t.Fatalf("check %d: unrecorded completion should fire again", i+1)
		}
	}
	r.MarkRecorded()
	if _, done := r.Check(); done {
		t.Error("completion fired after MarkRecorded")
	}
}

func TestPractice_NavigationBounds(t *testing.T) {
	r := NewPracticeRunner(practiceSet())
	if r.Prev() {
		t.Error("Prev at the first question should fail")
	}
	if !r.Goto(2) || r.Index() != 2 {
		t.Error("Goto(2) should succeed")
	}
	if r.Next() {
		t.Error("Next at the last question should fail")
	}
	if r.Goto(7) {
		t.Error("Goto out of range should fail")
	}
}
