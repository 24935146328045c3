// Package tutor explains wrong practice answers. Cheap arithmetic rules
// catch the common slips; anything they miss can be sent to an LLM when
// one is configured.
package tutor

import (
	"github.com/abhisek/finfluency/internal/answer"
)

// Category names the kind of mistake a nudge addresses.
type Category string

const (
	CategorySign      Category = "sign"
	CategoryScale     Category = "scale"
	CategoryPercent   Category = "percent"
	CategoryRounding  Category = "rounding"
	CategoryConcept   Category = "concept"
	CategoryUnmatched Category = "unmatched"
)

// Input describes one incorrect attempt.
type Input struct {
	ModuleTitle string
	Question    string
	CaseStudy   string
	Kind        answer.Kind
	Expected    answer.Expected
	Response    answer.Response
	Solution    string
	// FieldLabels maps multi-input keys to their on-screen labels.
	FieldLabels map[string]string
}

// Feedback is the tutor's reply to an incorrect attempt.
type Feedback struct {
	Category    Category
	Nudge       string
	Explanation string // empty for rule-based feedback
	Source      string // rule name, or the model that answered
}

// attempt is a single numeric entry compared against its accepted values.
type attempt struct {
	label string
	want  []float64
	got   float64
}

// attempts extracts the numeric entries that were answered incorrectly.
// Non-numeric entries and unparsable input are skipped.
func (in *Input) attempts() []attempt {
	if in.Kind != answer.KindNumber && in.Kind != answer.KindMultiInput {
		return nil
	}

	if in.Expected.Shape() == answer.ShapeFieldMap {
		var out []attempt
		for _, key := range in.Expected.FieldKeys() {
			want := in.Expected.Fields()[key]
			w, ok := want.Float()
			if !ok || !want.IsNumber() {
				continue
			}
			got, ok := answer.ParseNumber(in.Response.Fields[key])
			if !ok || near(got, w) {
				continue
			}
			label := in.FieldLabels[key]
			if label == "" {
				label = key
			}
			out = append(out, attempt{label: label, want: []float64{w}, got: got})
		}
		return out
	}

	got, ok := answer.ParseNumber(in.Response.Value)
	if !ok {
		return nil
	}
	var want []float64
	for _, v := range in.Expected.Values() {
		if f, ok := v.Float(); ok {
			if near(got, f) {
				return nil
			}
			want = append(want, f)
		}
	}
	if len(want) == 0 {
		return nil
	}
	return []attempt{{want: want, got: got}}
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < answer.Tolerance
}
