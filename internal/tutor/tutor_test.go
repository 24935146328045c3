package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/llm"
)

func numberInput(want float64, got string) *Input {
	return &Input{
		ModuleTitle: "Cost Behavior",
		Question:    "What is the break-even volume?",
		Kind:        answer.KindNumber,
		Expected:    answer.Scalar(answer.Number(want)),
		Response:    answer.Response{Value: got},
		Solution:    "600,000 / 0.35",
	}
}

func TestRunRules(t *testing.T) {
	tests := []struct {
		name string
		want float64
		got  string
		cat  Category
	}{
		{"negated", 20000, "-20000", CategorySign},
		{"negated loss in parentheses", -20000, "20,000", CategorySign},
		{"decimal for percent", 70, "0.7", CategoryPercent},
		{"percent for decimal", 0.35, "35", CategoryPercent},
		{"in thousands", 857143, "857", CategoryScale},
		{"too large", 857.1, "857,100", CategoryScale},
		{"rounded early", 1714286, "1,714,000", CategoryRounding},
		{"plain wrong", 1714286, "42", ""},
		{"unparsable", 100, "lots", ""},
		{"correct", 100, "100.00", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb, ok := RunRules(DefaultRules(), numberInput(tc.want, tc.got))
			if tc.cat == "" {
				if ok {
					t.Fatalf("unexpected match %+v", fb)
				}
				return
			}
			if !ok || fb.Category != tc.cat {
				t.Fatalf("got %+v (ok=%v), want %s", fb, ok, tc.cat)
			}
			if fb.Nudge == "" || fb.Source == "" {
				t.Errorf("feedback missing text or source: %+v", fb)
			}
		})
	}
}

func TestRunRules_OneOfUsesAnyValue(t *testing.T) {
	in := numberInput(0, "-15.4")
	in.Expected = answer.OneOf(answer.Number(15.4), answer.Text("15.38"))
	fb, ok := RunRules(DefaultRules(), in)
	if !ok || fb.Category != CategorySign {
		t.Errorf("got %+v", fb)
	}
}

func TestRunRules_MultiInputLabelsField(t *testing.T) {
	in := &Input{
		Kind: answer.KindMultiInput,
		Expected: answer.FieldMap(map[string]answer.Value{
			"result": answer.Text("Loss"),
			"amount": answer.Number(20000),
		}),
		Response:    answer.Response{Fields: map[string]string{"result": "Profit", "amount": "-20000"}},
		FieldLabels: map[string]string{"amount": "Amount"},
	}
	fb, ok := RunRules(DefaultRules(), in)
	if !ok || fb.Category != CategorySign {
		t.Fatalf("got %+v", fb)
	}
	if !strings.HasPrefix(fb.Nudge, "Amount: ") {
		t.Errorf("nudge = %q, want field label prefix", fb.Nudge)
	}
}

func TestRunRules_IgnoresTextKinds(t *testing.T) {
	in := &Input{
		Kind:     answer.KindMultipleChoice,
		Expected: answer.Scalar(answer.Text("B")),
		Response: answer.Response{Value: "A"},
	}
	if fb, ok := RunRules(DefaultRules(), in); ok {
		t.Errorf("unexpected match %+v", fb)
	}
}

func TestService_RulesBeforeModel(t *testing.T) {
	mock := llm.NewMockProvider()
	s := NewService(mock, 0, nil)

	fb := s.Explain(context.Background(), numberInput(20000, "-20000"))
	if fb.Category != CategorySign {
		t.Errorf("category = %s", fb.Category)
	}
	if mock.CallCount() != 0 {
		t.Errorf("model called %d times for a rule match", mock.CallCount())
	}
}

func TestService_ModelExplains(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"category":"concept","nudge":"Fixed costs do not change with volume.","explanation":"Divide fixed costs by the contribution margin per unit."}`),
	})
	s := NewService(mock, 0, nil)
	if !s.HasModel() {
		t.Fatal("service should have a model")
	}

	in := numberInput(1714286, "42")
	in.CaseStudy = "TransactPro charges 0.50 per transaction."
	fb := s.Explain(context.Background(), in)
	if fb.Category != CategoryConcept || fb.Explanation == "" || fb.Source != "mock" {
		t.Fatalf("feedback = %+v", fb)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ExplanationSchema {
		t.Error("request should carry the explanation schema")
	}
	prompt := req.User
	for _, want := range []string{"Cost Behavior", "TransactPro", "Correct answer: 1714286", "Learner's answer: 42"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestService_ModelFailureFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	s := NewService(mock, 0, nil)

	fb := s.Explain(context.Background(), numberInput(1714286, "42"))
	if fb.Category != CategoryUnmatched {
		t.Errorf("category = %s, want unmatched", fb.Category)
	}
}

func TestService_NoModel(t *testing.T) {
	s := NewService(nil, 0, nil)
	if s.HasModel() {
		t.Error("no provider should mean no model")
	}
	if fb := s.Explain(context.Background(), numberInput(10, "3")); fb.Category != CategoryUnmatched {
		t.Errorf("category = %s", fb.Category)
	}
	if _, ok := s.Quick(numberInput(10, "-10")); !ok {
		t.Error("rules should still run without a model")
	}
}

func TestExplainer_UnknownCategoryBecomesConcept(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"category":"vibes","nudge":"n","explanation":"e"}`),
	})
	fb, err := NewExplainer(mock, DefaultExplainerConfig()).Explain(context.Background(), numberInput(1, "2"))
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if fb.Category != CategoryConcept {
		t.Errorf("category = %s", fb.Category)
	}
}

func TestExplainer_EmptyReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"category":"sign","nudge":" ","explanation":""}`)})
	if _, err := NewExplainer(mock, DefaultExplainerConfig()).Explain(context.Background(), numberInput(1, "2")); err == nil {
		t.Error("expected an error for an empty reply")
	}
}

func TestGivenAnswer_FieldMapUsesLabels(t *testing.T) {
	in := &Input{
		Expected: answer.FieldMap(map[string]answer.Value{
			"a": answer.Number(1),
			"b": answer.Number(2),
		}),
		Response:    answer.Response{Fields: map[string]string{"a": "3", "b": "4"}},
		FieldLabels: map[string]string{"a": "Alpha"},
	}
	if got := givenAnswer(in); got != "Alpha=3, b=4" {
		t.Errorf("givenAnswer = %q", got)
	}
}
