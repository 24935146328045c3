package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/llm"
)

// ExplanationSchema is the structured reply requested from the model.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "A short explanation of why a learner's accounting answer is wrong",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category": map[string]any{
				"type":        "string",
				"enum":        []any{"sign", "scale", "percent", "rounding", "concept"},
				"description": "The kind of mistake",
			},
			"nudge": map[string]any{
				"type":        "string",
				"description": "One sentence pointing at the mistake without giving the answer away",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Two to four sentences walking through the reasoning",
			},
		},
		"required":             []any{"category", "nudge", "explanation"},
		"additionalProperties": false,
	},
}

// ExplainerConfig tunes the model request.
type ExplainerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultExplainerConfig returns the request settings used by the app.
func DefaultExplainerConfig() ExplainerConfig {
	return ExplainerConfig{
		MaxTokens:   400,
		Temperature: 0.2,
	}
}

// Explainer asks an LLM why an attempt is wrong.
type Explainer struct {
	provider llm.Provider
	cfg      ExplainerConfig
}

// NewExplainer creates an LLM-backed explainer.
func NewExplainer(provider llm.Provider, cfg ExplainerConfig) *Explainer {
	return &Explainer{provider: provider, cfg: cfg}
}

type explanationOutput struct {
	Category    string `json:"category"`
	Nudge       string `json:"nudge"`
	Explanation string `json:"explanation"`
}

// Explain sends the attempt to the model.
func (e *Explainer) Explain(ctx context.Context, in *Input) (*Feedback, error) {
	msg, err := buildExplanationMessage(in)
	if err != nil {
		return nil, fmt.Errorf("build explanation prompt: %w", err)
	}

	resp, err := e.provider.Complete(ctx, llm.Prompt{
		Purpose:     ExplanationSchema.Name,
		System:      explanationSystemPrompt,
		User:        msg,
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain answer: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.JSON, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	if strings.TrimSpace(out.Nudge) == "" && strings.TrimSpace(out.Explanation) == "" {
		return nil, fmt.Errorf("parse explanation: empty reply")
	}

	cat := Category(out.Category)
	switch cat {
	case CategorySign, CategoryScale, CategoryPercent, CategoryRounding, CategoryConcept:
	default:
		cat = CategoryConcept
	}

	return &Feedback{
		Category:    cat,
		Nudge:       strings.TrimSpace(out.Nudge),
		Explanation: strings.TrimSpace(out.Explanation),
		Source:      resp.Model,
	}, nil
}

const explanationSystemPrompt = `You are a patient accounting tutor for people who work at fintech and payments companies. A learner answered a practice question incorrectly.

Instructions:
- Identify the most likely mistake and classify it.
- The nudge is one sentence and must not state the correct answer.
- The explanation walks through the reasoning in plain language, two to four sentences.
- Use the worked solution as ground truth. Do not contradict it.
- Amounts are in the currency and units used by the question.`

var explanationTemplate = template.Must(template.New("explanation").Parse(`Module: {{.ModuleTitle}}
{{if .CaseStudy}}Case study: {{.CaseStudy}}
{{end}}Question: {{.Question}}
Correct answer: {{.Correct}}
Learner's answer: {{.Given}}
Worked solution: {{.Solution}}
`))

func buildExplanationMessage(in *Input) (string, error) {
	data := struct {
		*Input
		Correct string
		Given   string
	}{
		Input:   in,
		Correct: in.Expected.Display(),
		Given:   givenAnswer(in),
	}
	var buf bytes.Buffer
	if err := explanationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func givenAnswer(in *Input) string {
	if in.Expected.Shape() != answer.ShapeFieldMap {
		return in.Response.Value
	}
	parts := make([]string, 0, len(in.Response.Fields))
	for _, key := range in.Expected.FieldKeys() {
		label := in.FieldLabels[key]
		if label == "" {
			label = key
		}
		parts = append(parts, label+"="+in.Response.Fields[key])
	}
	return strings.Join(parts, ", ")
}
