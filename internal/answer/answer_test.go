package answer

import "testing"

func TestEvaluate_NumberTolerance(t *testing.T) {
	expected := OneOf(Number(0.75), Text("0.75"))

	tests := []struct {
		input string
		want  bool
	}{
		{"0.75", true},
		{"0.751", true},
		{" 0.75 ", true},
		{"0.76", false},
		{"0.77", false},
		{"", false},
		{"abc", false},
	}

	for _, tc := range tests {
		got := Evaluate(KindNumber, expected, Response{Value: tc.input})
		if got != tc.want {
			t.Errorf("Evaluate(number, 0.75, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluate_NumberFormatting(t *testing.T) {
	expected := Scalar(Number(32400))

	tests := []struct {
		input string
		want  bool
	}{
		{"32400", true},
		{"32,400", true},
		{"£32,400", true},
		{"32 400", true},
		{"32400.00", true},
		{"32401", false},
		{"1e5", false},
		{"NaN", false},
	}

	for _, tc := range tests {
		got := Evaluate(KindNumber, expected, Response{Value: tc.input})
		if got != tc.want {
			t.Errorf("Evaluate(number, 32400, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluate_NumberAcceptsAnyListedValue(t *testing.T) {
	expected := OneOf(Text("15.4"), Text("15.38"), Number(15.4), Number(15.38), Number(15))

	for _, in := range []string{"15.4", "15.38", "15", "15.005"} {
		if !Evaluate(KindNumber, expected, Response{Value: in}) {
			t.Errorf("expected %q to be accepted", in)
		}
	}
	if Evaluate(KindNumber, expected, Response{Value: "15.2"}) {
		t.Error("15.2 should not be accepted")
	}
}

func TestEvaluate_NegativeNumbers(t *testing.T) {
	expected := Scalar(Number(-75000))

	for _, in := range []string{"-75000", "-75,000", "(75,000)", "£-75000"} {
		if !Evaluate(KindNumber, expected, Response{Value: in}) {
			t.Errorf("expected %q to equal -75000", in)
		}
	}
	if Evaluate(KindNumber, expected, Response{Value: "75000"}) {
		t.Error("75000 should not equal -75000")
	}
}

func TestEvaluate_Text(t *testing.T) {
	expected := Scalar(Text("Financing"))

	tests := []struct {
		input string
		want  bool
	}{
		{"Financing", true},
		{"financing", true},
		{"  FINANCING ", true},
		{"Investing", false},
		{"", false},
	}

	for _, tc := range tests {
		got := Evaluate(KindText, expected, Response{Value: tc.input})
		if got != tc.want {
			t.Errorf("Evaluate(text, Financing, %q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluate_TextIgnoresSeparatorsAndCurrency(t *testing.T) {
	tests := []struct {
		expected, input string
		want            bool
	}{
		{"£1,200", "1200", true},
		{"1,200", "1200", true},
		{"1200", "$1,200", true},
		{"$50 loss", "50 loss", true},
		{"$50 loss", "50  LOSS ", true},
		{"$50 loss", "50 profit", false},
	}
	for _, tc := range tests {
		got := Evaluate(KindText, Scalar(Text(tc.expected)), Response{Value: tc.input})
		if got != tc.want {
			t.Errorf("Evaluate(text, %q, %q) = %v, want %v", tc.expected, tc.input, got, tc.want)
		}
	}

	fields := FieldMap(map[string]Value{"result": Text("$50 loss")})
	if !Evaluate(KindMultiInput, fields, Response{Fields: map[string]string{"result": "50 Loss"}}) {
		t.Error("multi-input text field should ignore currency symbols")
	}
}

func TestEvaluate_MultipleChoice(t *testing.T) {
	expected := Scalar(Text("C"))

	if !Evaluate(KindMultipleChoice, expected, Response{Value: "C"}) {
		t.Error("C should be correct")
	}
	if Evaluate(KindMultipleChoice, expected, Response{Value: "B"}) {
		t.Error("B should be incorrect")
	}
	if Evaluate(KindMultipleChoice, expected, Response{}) {
		t.Error("no selection should be incorrect")
	}
}

func TestEvaluate_MultiInput(t *testing.T) {
	expected := FieldMap(map[string]Value{
		"platform": Number(32400),
		"impl":     Number(10800),
		"reports":  Number(10800),
	})

	correct := Response{Fields: map[string]string{
		"platform": "32400",
		"impl":     "10800",
		"reports":  "10,800",
	}}
	if !Evaluate(KindMultiInput, expected, correct) {
		t.Error("all fields correct should be accepted")
	}

	closeEnough := Response{Fields: map[string]string{
		"platform": "32400",
		"impl":     "10799.995",
		"reports":  "10800",
	}}
	if !Evaluate(KindMultiInput, expected, closeEnough) {
		t.Error("field within tolerance should be accepted")
	}

	missing := Response{Fields: map[string]string{
		"platform": "32400",
		"impl":     "10800",
	}}
	if Evaluate(KindMultiInput, expected, missing) {
		t.Error("missing field should be rejected")
	}

	withExtra := Response{Fields: map[string]string{
		"platform": "32400",
		"impl":     "10800",
		"reports":  "10800",
		"notes":    "anything",
	}}
	if !Evaluate(KindMultiInput, expected, withExtra) {
		t.Error("extra fields should be ignored")
	}
}

func TestEvaluate_MultiInputMixedTypes(t *testing.T) {
	expected := FieldMap(map[string]Value{
		"result": Text("Loss"),
		"amount": Number(20000),
	})

	ok := Response{Fields: map[string]string{"result": "loss", "amount": "£20,000"}}
	if !Evaluate(KindMultiInput, expected, ok) {
		t.Error("case-insensitive text and formatted number should be accepted")
	}

	wrong := Response{Fields: map[string]string{"result": "Gain", "amount": "20000"}}
	if Evaluate(KindMultiInput, expected, wrong) {
		t.Error("wrong text field should be rejected")
	}
}

func TestEvaluate_ShapeMismatch(t *testing.T) {
	fields := FieldMap(map[string]Value{"a": Number(1)})
	if Evaluate(KindNumber, fields, Response{Value: "1"}) {
		t.Error("number question with field map should never match")
	}
	if Evaluate(KindMultiInput, Scalar(Number(1)), Response{Fields: map[string]string{"a": "1"}}) {
		t.Error("multi-input question with scalar should never match")
	}
	if Evaluate(Kind("essay"), Scalar(Text("x")), Response{Value: "x"}) {
		t.Error("unknown kind should never match")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"42", 42, true},
		{"-0.4", -0.4, true},
		{".5", 0.5, true},
		{"1,714,286", 1714286, true},
		{"50%", 50, true},
		{"(200)", -200, true},
		{"", 0, false},
		{"12abc", 0, false},
		{"1-2", 0, false},
		{"Inf", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseNumber(tc.input)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResponse_Empty(t *testing.T) {
	if !(Response{}).Empty() {
		t.Error("zero response should be empty")
	}
	if !(Response{Value: "  ", Fields: map[string]string{"a": ""}}).Empty() {
		t.Error("blank response should be empty")
	}
	if (Response{Fields: map[string]string{"a": "1"}}).Empty() {
		t.Error("response with a field should not be empty")
	}
}
