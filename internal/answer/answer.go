package answer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Tolerance is the absolute difference under which two numbers are equal.
const Tolerance = 0.01

var numberPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)

// Response is what the learner entered. Value holds the typed text or the
// selected option id; Fields holds multi-input entries keyed by field key.
type Response struct {
	Value  string
	Fields map[string]string
}

// Empty reports whether the learner has entered anything at all.
func (r Response) Empty() bool {
	if strings.TrimSpace(r.Value) != "" {
		return false
	}
	for _, v := range r.Fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Evaluate decides whether resp is correct for a question of the given kind.
//
// Matching rules:
//   - multiple-choice: the selected option id must equal an accepted value
//   - number: the parsed input must be within Tolerance of an accepted value
//   - text: inputs are compared after NormalizeText
//   - multi-input: every expected field must match; extra fields are ignored
//
// A shape that does not fit the kind never matches.
func Evaluate(kind Kind, expected Expected, resp Response) bool {
	switch kind {
	case KindMultipleChoice:
		if expected.Shape() == ShapeFieldMap {
			return false
		}
		selected := strings.TrimSpace(resp.Value)
		if selected == "" {
			return false
		}
		for _, v := range expected.Values() {
			if selected == strings.TrimSpace(v.Text) {
				return true
			}
		}
		return false

	case KindNumber:
		if expected.Shape() == ShapeFieldMap {
			return false
		}
		return anyValueMatches(expected.Values(), resp.Value, numberMatches)

	case KindText:
		if expected.Shape() == ShapeFieldMap {
			return false
		}
		return anyValueMatches(expected.Values(), resp.Value, textMatches)

	case KindMultiInput:
		if expected.Shape() != ShapeFieldMap || len(expected.Fields()) == 0 {
			return false
		}
		for key, want := range expected.Fields() {
			got, ok := resp.Fields[key]
			if !ok || !fieldMatches(want, got) {
				return false
			}
		}
		return true
	}
	return false
}

func anyValueMatches(values []Value, input string, match func(Value, string) bool) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	for _, v := range values {
		if match(v, input) {
			return true
		}
	}
	return false
}

// fieldMatches compares one multi-input field. Numeric fields use the
// tolerance rule, everything else uses normalized text.
func fieldMatches(want Value, got string) bool {
	if strings.TrimSpace(got) == "" {
		return false
	}
	if want.IsNumber() {
		return numberMatches(want, got)
	}
	return textMatches(want, got)
}

func numberMatches(want Value, input string) bool {
	w, ok := want.Float()
	if !ok {
		return false
	}
	g, ok := ParseNumber(input)
	if !ok {
		return false
	}
	return math.Abs(g-w) < Tolerance
}

func textMatches(want Value, input string) bool {
	return NormalizeText(input) == NormalizeText(want.Text)
}

// NormalizeText drops thousands separators and currency symbols, then
// trims, lowercases and collapses inner whitespace.
func NormalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '£', '$', '€', '¥':
			return -1
		case '\u00a0':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseNumber reads a number the way a learner would type it. Thousands
// separators, currency symbols, percent signs and spaces are stripped, and
// an amount wrapped in parentheses is negative.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch r {
		case ',', ' ', '\u00a0', '£', '$', '€', '¥', '%':
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()
	if !numberPattern.MatchString(cleaned) {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}
