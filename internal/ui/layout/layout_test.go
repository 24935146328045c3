package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestContentWidth(t *testing.T) {
	tests := []struct{ width, want int }{
		{20, 40},
		{80, 72},
		{104, 96},
		{200, 96},
	}
	for _, tc := range tests {
		if got := ContentWidth(tc.width); got != tc.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestGauge(t *testing.T) {
	if got := (HeaderInfo{Completed: 3, Total: 10}).gauge(); got != "" {
		t.Errorf("gauge without a name = %q", got)
	}
	g := HeaderInfo{Name: "Ada", Completed: 3, Total: 10}.gauge()
	if !strings.Contains(g, "Ada") || !strings.Contains(g, "3/10") {
		t.Errorf("gauge = %q", g)
	}
	if n := strings.Count(g, "▰"); n != 3 {
		t.Errorf("filled pips = %d, want 3", n)
	}
	if over := (HeaderInfo{Name: "Ada", Completed: 12, Total: 10}).gauge(); !strings.Contains(over, "10/10") {
		t.Errorf("overfull gauge = %q", over)
	}
}

func TestChromeFillsTerminal(t *testing.T) {
	c := Chrome{
		Title: "Dashboard",
		Info:  HeaderInfo{Name: "Ada", Completed: 1, Total: 10},
		Hints: []KeyHint{{Key: "Enter", Description: "Select"}},
	}

	var gotW, gotH int
	out := c.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return strings.Repeat("line\n", 100)
	})

	if gotW != 100 || gotH != 24 {
		t.Errorf("body got %dx%d, want 100x24", gotW, gotH)
	}
	if h := lipgloss.Height(out); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if !strings.Contains(out, "Finance Fluency") || !strings.Contains(out, "Select") {
		t.Error("frame is missing the header brand or footer hints")
	}
}

func TestCompactHeaderDropsBrand(t *testing.T) {
	out := Chrome{Title: "Glossary"}.Render(MinWidth, MinHeight, func(int, int) string { return "" })
	if strings.Contains(out, "Finance Fluency") {
		t.Error("brand should be hidden on narrow terminals")
	}
}
