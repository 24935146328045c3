package module

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/finfluency/internal/breakeven"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

// calculatorTab is the interactive break-even calculator.
type calculatorTab struct {
	inputs []components.TextInput
	focus  int
}

func newCalculatorTab() *calculatorTab {
	def := breakeven.Default()
	t := &calculatorTab{}
	for i, f := range []struct {
		label string
		value float64
	}{
		{"Fixed costs        $", def.FixedCosts},
		{"Price per unit     $", def.Price},
		{"Variable cost/unit $", def.VariableCost},
	} {
		in := components.NewTextInput("0", true, 16)
		in.Label = f.label
		in.SetValue(components.Amount(f.value, 2))
		if i > 0 {
			in.Blur()
		}
		t.inputs = append(t.inputs, in)
	}
	return t
}

func (t *calculatorTab) label() string { return "Calculator" }

func (t *calculatorTab) hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "Ctrl+R", Description: "Reset"},
	}
}

func (t *calculatorTab) update(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			t.move(-1)
			return nil
		case "down", "enter":
			t.move(1)
			return nil
		case "ctrl+r":
			*t = *newCalculatorTab()
			return nil
		}
	}
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	return cmd
}

func (t *calculatorTab) move(delta int) {
	t.inputs[t.focus].Blur()
	t.focus = (t.focus + delta + len(t.inputs)) % len(t.inputs)
	t.inputs[t.focus].Focus()
}

// input reads the three fields; blank or unparseable fields count as zero.
func (t *calculatorTab) input() breakeven.Input {
	val := func(i int) float64 {
		v, _ := t.inputs[i].NumericValue()
		return v
	}
	return breakeven.Input{FixedCosts: val(0), Price: val(1), VariableCost: val(2)}
}

func (t *calculatorTab) view(width int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Break-even point = Fixed costs ÷ (Price − Variable cost)"))
	b.WriteString("\n\n")
	for i, in := range t.inputs {
		prefix := "  "
		if i == t.focus {
			prefix = theme.Selected.Render("▸ ")
		}
		b.WriteString(prefix + in.View() + "\n")
	}
	b.WriteString("\n")

	in := t.input()
	r, err := breakeven.Compute(in)
	if err != nil {
		b.WriteString(theme.Incorrect.Render("Inputs must not be negative."))
		return b.String()
	}

	rows := []string{
		fmt.Sprintf("%-28s $%s", "Contribution margin / unit", components.Amount(r.ContributionMargin, 4)),
		fmt.Sprintf("%-28s %s%%", "Contribution margin ratio", components.Amount(r.MarginRatio, 1)),
	}
	if r.Units == 0 {
		rows = append(rows, theme.Incorrect.Render("No positive margin: this product never breaks even."))
	} else {
		rows = append(rows,
			fmt.Sprintf("%-28s %s units", "Break-even volume", components.Amount(float64(r.Units), 0)),
			fmt.Sprintf("%-28s $%s", "Break-even revenue", components.Amount(r.Revenue, 2)),
			"",
			theme.Title.Render("Profit at volume"),
		)
		for _, f := range []float64{0.5, 1, 1.5, 2} {
			units := int64(float64(r.Units) * f)
			p := breakeven.ProfitAt(in, units)
			style := theme.Correct
			if p < 0 {
				style = theme.Incorrect
			}
			rows = append(rows, fmt.Sprintf("%14s units   %s", components.Amount(float64(units), 0),
				style.Render("$"+components.Amount(p, 2))))
		}
	}
	b.WriteString(components.Panel("Results", strings.Join(rows, "\n"), width))
	return b.String()
}
