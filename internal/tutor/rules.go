package tutor

import (
	"fmt"
	"math"
)

// Rule recognises one kind of slip in a numeric attempt. It returns an
// empty category when it does not apply.
type Rule interface {
	Name() string
	Check(a attempt) (Category, string)
}

// DefaultRules returns the rules in priority order. Sign errors are checked
// first since a negated answer can also look like a scaling slip of -1.
func DefaultRules() []Rule {
	return []Rule{
		SignRule{},
		PercentRule{},
		ScaleRule{},
		RoundingRule{},
	}
}

// RunRules returns the first rule that matches any incorrect entry.
func RunRules(rules []Rule, in *Input) (fb Feedback, ok bool) {
	for _, a := range in.attempts() {
		for _, r := range rules {
			cat, msg := r.Check(a)
			if cat == "" {
				continue
			}
			if a.label != "" {
				msg = a.label + ": " + msg
			}
			return Feedback{Category: cat, Nudge: msg, Source: r.Name()}, true
		}
	}
	return Feedback{}, false
}

// SignRule catches answers with the right size and the wrong sign.
type SignRule struct{}

func (SignRule) Name() string { return "sign" }

func (SignRule) Check(a attempt) (Category, string) {
	for _, w := range a.want {
		if w != 0 && near(a.got, -w) {
			if w < 0 {
				return CategorySign, "Right size, wrong direction. This one is a decrease, an outflow or a loss."
			}
			return CategorySign, "Right size, wrong direction. Check whether this amount adds to or takes away from the total."
		}
	}
	return "", ""
}

// PercentRule catches a ratio written as a decimal instead of a percentage,
// or the other way round.
type PercentRule struct{}

func (PercentRule) Name() string { return "percent" }

func (PercentRule) Check(a attempt) (Category, string) {
	for _, w := range a.want {
		if w == 0 {
			continue
		}
		switch {
		case near(a.got*100, w):
			return CategoryPercent, fmt.Sprintf("Looks like a decimal. The answer is expected as a percentage, so %g would be %g.", a.got, a.got*100)
		case near(a.got/100, w):
			return CategoryPercent, "Looks like a percentage. This one is expected as a plain figure or ratio."
		}
	}
	return "", ""
}

// ScaleRule catches answers off by a factor of a thousand or a million,
// usually from mixing units with thousands.
type ScaleRule struct{}

func (ScaleRule) Name() string { return "scale" }

func (ScaleRule) Check(a attempt) (Category, string) {
	for _, w := range a.want {
		if w == 0 || a.got == 0 {
			continue
		}
		ratio := a.got / w
		for _, f := range []float64{1e3, 1e6} {
			if relClose(ratio, f) {
				return CategoryScale, "The digits look right but the answer is too large. Check whether the figures are in thousands."
			}
			if relClose(ratio, 1/f) {
				return CategoryScale, "The digits look right but the answer is too small. Give the full amount rather than thousands."
			}
		}
	}
	return "", ""
}

// RoundingThreshold is the relative error under which a wrong answer is
// treated as a rounding difference.
const RoundingThreshold = 0.02

// RoundingRule catches answers within a couple of percent of the target.
type RoundingRule struct{}

func (RoundingRule) Name() string { return "rounding" }

func (RoundingRule) Check(a attempt) (Category, string) {
	for _, w := range a.want {
		if w == 0 {
			continue
		}
		if math.Abs(a.got-w)/math.Abs(w) < RoundingThreshold {
			return CategoryRounding, "Very close. Keep full precision until the last step and round only the final answer."
		}
	}
	return "", ""
}

// relClose allows for learners rounding the scaled figure.
func relClose(a, b float64) bool {
	return math.Abs(a-b)/math.Abs(b) < 0.005
}
