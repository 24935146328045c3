package answer

import (
	"maps"
	"slices"
	"strconv"
)

// Kind is the input style of a practice question.
type Kind string

const (
	KindText           Kind = "text"
	KindNumber         Kind = "number"
	KindMultipleChoice Kind = "multiple-choice"
	KindMultiInput     Kind = "multi-input"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindMultipleChoice, KindMultiInput:
		return true
	}
	return false
}

// Value is a single accepted answer. Authors write either a number or a
// string; both are kept so a numeric value can still be compared as text.
type Value struct {
	Num  *float64
	Text string
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{Num: &f, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Text returns a string Value.
func Text(s string) Value {
	return Value{Text: s}
}

// IsNumber reports whether the value was authored as a number.
func (v Value) IsNumber() bool { return v.Num != nil }

// Float returns the numeric reading of the value. String values that parse
// as numbers (for example "15.4") count too.
func (v Value) Float() (float64, bool) {
	if v.Num != nil {
		return *v.Num, true
	}
	return ParseNumber(v.Text)
}

func (v Value) String() string { return v.Text }

// Shape distinguishes the three forms an expected answer can take.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeOneOf
	ShapeFieldMap
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeOneOf:
		return "one-of"
	case ShapeFieldMap:
		return "field-map"
	default:
		return "unknown"
	}
}

// Expected is the author-supplied correct answer: a single value, a list of
// equally acceptable values, or a map of field key to value.
type Expected struct {
	shape  Shape
	values []Value
	fields map[string]Value
}

// Scalar builds an Expected with exactly one accepted value.
func Scalar(v Value) Expected {
	return Expected{shape: ShapeScalar, values: []Value{v}}
}

// OneOf builds an Expected where any of the given values is accepted.
func OneOf(vs ...Value) Expected {
	return Expected{shape: ShapeOneOf, values: slices.Clone(vs)}
}

// FieldMap builds an Expected for multi-input questions.
func FieldMap(fields map[string]Value) Expected {
	return Expected{shape: ShapeFieldMap, fields: maps.Clone(fields)}
}

// Shape returns the form of the expected answer.
func (e Expected) Shape() Shape { return e.shape }

// Values returns the accepted values for scalar and one-of answers.
func (e Expected) Values() []Value { return e.values }

// Fields returns the per-field values of a field-map answer.
func (e Expected) Fields() map[string]Value { return e.fields }

// IsZero reports whether no answer was configured.
func (e Expected) IsZero() bool {
	return len(e.values) == 0 && len(e.fields) == 0
}

// FieldKeys returns the field keys in sorted order.
func (e Expected) FieldKeys() []string {
	return slices.Sorted(maps.Keys(e.fields))
}

// Display renders the expected answer for solution screens.
func (e Expected) Display() string {
	switch e.shape {
	case ShapeFieldMap:
		out := ""
		for i, k := range e.FieldKeys() {
			if i > 0 {
				out += ", "
			}
			out += k + "=" + e.fields[k].Text
		}
		return out
	default:
		if len(e.values) == 0 {
			return ""
		}
		return e.values[0].Text
	}
}
