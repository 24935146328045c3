package module

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/finfluency/internal/content"
	"github.com/abhisek/finfluency/internal/exercise"
	"github.com/abhisek/finfluency/internal/ui/components"
	"github.com/abhisek/finfluency/internal/ui/layout"
	"github.com/abhisek/finfluency/internal/ui/theme"
)

type balanceTab struct {
	s      *Screen
	ex     *content.BalanceSheetExercise
	runner *exercise.BalanceSheetRunner
	inputs []components.TextInput
	focus  int
}

func newBalanceTab(s *Screen) *balanceTab {
	t := &balanceTab{
		s:      s,
		ex:     s.mod.Exercise,
		runner: exercise.NewBalanceSheetRunner(s.mod.Exercise),
	}
	t.load()
	return t
}

func (t *balanceTab) label() string { return "Practice" }

func (t *balanceTab) hints() []layout.KeyHint {
	enter := "Check"
	if t.runner.Verdict() == exercise.VerdictCorrect {
		enter = "Next"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: enter},
		{Key: "↑↓", Description: "Field"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "Ctrl+O", Description: "Solution"},
	}
}

func (t *balanceTab) load() {
	tx, ok := t.runner.Current()
	if !ok {
		return
	}
	t.inputs, t.focus = nil, 0
	for i, in := range tx.Inputs {
		ti := components.NewTextInput("0", true, 16)
		ti.Label = fmt.Sprintf("%-20s", in.DisplayLabel())
		if i > 0 {
			ti.Blur()
		}
		t.inputs = append(t.inputs, ti)
	}
}

func (t *balanceTab) update(msg tea.Msg) tea.Cmd {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || t.runner.Completed() {
		return nil
	}
	tx, ok := t.runner.Current()
	if !ok {
		return nil
	}

	switch kmsg.String() {
	case "enter":
		t.enter()
		return nil
	case "ctrl+t":
		t.runner.RevealHint()
		return nil
	case "ctrl+o":
		t.runner.RevealSolution()
		return nil
	case "up", "shift+up":
		t.moveFocus(-1)
		return nil
	case "down", "shift+down":
		t.moveFocus(1)
		return nil
	}

	if t.runner.Verdict() == exercise.VerdictCorrect {
		return nil
	}
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	t.runner.SetInput(tx.Inputs[t.focus].Account, t.inputs[t.focus].Value())
	return cmd
}

func (t *balanceTab) moveFocus(delta int) {
	if len(t.inputs) < 2 {
		return
	}
	t.inputs[t.focus].Blur()
	t.focus = (t.focus + delta + len(t.inputs)) % len(t.inputs)
	t.inputs[t.focus].Focus()
}

func (t *balanceTab) enter() {
	t.s.clearNotice()
	if t.runner.Verdict() == exercise.VerdictCorrect {
		if t.runner.Next() {
			ch, err := t.s.tracker.CompleteExercise(t.s.ctx(), t.s.mod.ID)
			t.s.setNotice("✓ Every transaction recorded. Exercise complete!", true)
			t.s.apply(ch, err)
			return
		}
		t.load()
		return
	}

	switch t.runner.Check() {
	case exercise.VerdictCorrect:
		t.s.setNotice("✓ Correct! The balance sheet still balances. Press Enter for the next transaction.", true)
		for i := range t.inputs {
			t.inputs[i].Mark(true)
			t.inputs[i].Blur()
		}
	case exercise.VerdictIncorrect:
		t.s.setNotice("✗ Not quite. Check which accounts move, and by how much.", false)
	}
}

func (t *balanceTab) view(width int) string {
	var b strings.Builder

	if t.runner.Completed() {
		b.WriteString(theme.Correct.Render(fmt.Sprintf("%s: all %d transactions recorded.", t.ex.Company, t.runner.Total())))
		b.WriteString("\n\n")
		b.WriteString(t.sheetView(width, false))
		return b.String()
	}

	tx, _ := t.runner.Current()
	head := fmt.Sprintf("%s · Transaction %d of %d · %s", t.ex.Company, t.runner.Step()+1, t.runner.Total(), tx.Date)
	if t.s.tracker.Module(t.s.mod.ID).ExerciseCompleted {
		head += "   " + theme.Correct.Render("(already completed)")
	}
	b.WriteString(theme.Subtitle.Render(head))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(components.Wrap(tx.Scenario, width)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Enter the change to each account (use - for decreases, leave blank if unchanged):"))
	b.WriteString("\n")
	for i, in := range t.inputs {
		prefix := "  "
		if i == t.focus && t.runner.Verdict() != exercise.VerdictCorrect {
			prefix = theme.Selected.Render("▸ ")
		}
		b.WriteString(prefix + in.View() + "\n")
	}

	for i := 0; i < t.runner.HintsRevealed() && i < len(tx.Hints); i++ {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("Hint %d: %s", i+1, tx.Hints[i])))
	}
	if t.runner.SolutionRevealed() || t.runner.Verdict() == exercise.VerdictCorrect {
		b.WriteString("\n\n" + components.Panel("Explanation", components.Wrap(tx.Explanation, width-6), width))
	}

	b.WriteString("\n\n")
	b.WriteString(t.sheetView(width, t.runner.Verdict() == exercise.VerdictCorrect))
	return b.String()
}

// sheetView renders the balance sheet in two columns. With showDiff the
// change from the previous snapshot is shown next to each account.
func (t *balanceTab) sheetView(width int, showDiff bool) string {
	sheet := t.runner.Sheet()
	var diff map[content.Account]int64
	if showDiff {
		diff = t.runner.Diff()
	}

	line := func(a content.Account) string {
		s := fmt.Sprintf("%-20s %12s", a.Label(), components.Money(sheet[a]))
		if d := diff[a]; d != 0 {
			s += " " + theme.Money.Render(components.SignedMoney(d))
		}
		return s
	}
	total := func(label string, v int64) string {
		return theme.Body.Bold(true).Render(fmt.Sprintf("%-20s %12s", label, components.Money(v)))
	}

	var assets, claims []string
	assets = append(assets, theme.Title.Render("Assets"))
	claims = append(claims, theme.Title.Render("Liabilities"))
	for _, a := range content.AllAccounts() {
		if a.Side() == content.SideAsset {
			assets = append(assets, line(a))
		}
	}
	for _, a := range content.AllAccounts() {
		if a.Side() == content.SideLiability {
			claims = append(claims, line(a))
		}
	}
	claims = append(claims, "", theme.Title.Render("Equity"))
	for _, a := range content.AllAccounts() {
		if a.Side() == content.SideEquity {
			claims = append(claims, line(a))
		}
	}
	assets = append(assets, "", total("Total assets", sheet.Assets()))
	claims = append(claims, "", total("Liabilities + equity", sheet.Liabilities()+sheet.Equity()))

	col := (width - 4) / 2
	left := lipgloss.NewStyle().Width(col).Render(strings.Join(assets, "\n"))
	right := lipgloss.NewStyle().Width(col).Render(strings.Join(claims, "\n"))

	eq := fmt.Sprintf("Assets %s = Liabilities %s + Equity %s",
		components.Money(sheet.Assets()), components.Money(sheet.Liabilities()), components.Money(sheet.Equity()))
	if sheet.Balanced() {
		eq = theme.Correct.Render(eq + "  ✓")
	} else {
		eq = theme.Incorrect.Render(eq + "  ✗")
	}

	return components.Panel("Balance Sheet", lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)+"\n\n"+eq, width)
}
