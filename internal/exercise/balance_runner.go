package exercise

import (
	"strings"

	"github.com/abhisek/finfluency/internal/answer"
	"github.com/abhisek/finfluency/internal/content"
)

// Verdict is the result of checking a transaction.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// BalanceSheetRunner walks the learner through a sequence of transactions.
// A transaction is accepted only when every listed account holds exactly
// its delta and every other input is empty or zero.
type BalanceSheetRunner struct {
	txs       []content.Transaction
	step      int
	inputs    map[content.Account]string
	verdict   Verdict
	hints     int
	solution  bool
	sheet     BalanceSheet
	prev      BalanceSheet
	completed bool
}

// NewBalanceSheetRunner starts the exercise from its initial balances.
func NewBalanceSheetRunner(ex *content.BalanceSheetExercise) *BalanceSheetRunner {
	sheet := NewBalanceSheet(ex.Initial)
	return &BalanceSheetRunner{
		txs:    ex.Transactions,
		inputs: make(map[content.Account]string),
		sheet:  sheet,
		prev:   sheet.Clone(),
	}
}

// Current returns the transaction being worked on.
func (r *BalanceSheetRunner) Current() (content.Transaction, bool) {
	if r.completed || r.step >= len(r.txs) {
		return content.Transaction{}, false
	}
	return r.txs[r.step], true
}

// Step returns the zero-based transaction index.
func (r *BalanceSheetRunner) Step() int { return r.step }

// Total returns the number of transactions.
func (r *BalanceSheetRunner) Total() int { return len(r.txs) }

// Verdict returns the result of the last check.
func (r *BalanceSheetRunner) Verdict() Verdict { return r.verdict }

// Completed reports whether every transaction has been worked through.
func (r *BalanceSheetRunner) Completed() bool { return r.completed }

// Sheet returns the current balances.
func (r *BalanceSheetRunner) Sheet() BalanceSheet { return r.sheet }

// Previous returns the balances before the last accepted transaction.
func (r *BalanceSheetRunner) Previous() BalanceSheet { return r.prev }

// Diff returns what the last accepted transaction changed.
func (r *BalanceSheetRunner) Diff() map[content.Account]int64 {
	return r.sheet.Diff(r.prev)
}

// Input returns the text entered for an account.
func (r *BalanceSheetRunner) Input(a content.Account) string { return r.inputs[a] }

// HintsRevealed returns how many hints are visible.
func (r *BalanceSheetRunner) HintsRevealed() int { return r.hints }

// SolutionRevealed reports whether the explanation is visible.
func (r *BalanceSheetRunner) SolutionRevealed() bool { return r.solution }

// SetInput records the learner's change for an account. Inputs are locked
// once the transaction is accepted. Editing clears an incorrect verdict.
func (r *BalanceSheetRunner) SetInput(a content.Account, value string) bool {
	tx, ok := r.Current()
	if !ok || r.verdict == VerdictCorrect || !hasInput(tx, a) {
		return false
	}
	r.inputs[a] = value
	r.verdict = VerdictNone
	return true
}

// RevealHint shows one more hint, up to the number available.
func (r *BalanceSheetRunner) RevealHint() int {
	if tx, ok := r.Current(); ok && r.hints < len(tx.Hints) {
		r.hints++
	}
	return r.hints
}

// RevealSolution shows the explanation.
func (r *BalanceSheetRunner) RevealSolution() {
	if _, ok := r.Current(); ok {
		r.solution = true
	}
}

// Check grades the current inputs. A correct answer updates the sheet and
// keeps the previous snapshot; an incorrect one changes nothing.
func (r *BalanceSheetRunner) Check() Verdict {
	tx, ok := r.Current()
	if !ok || r.verdict == VerdictCorrect {
		return r.verdict
	}

	if !r.matches(tx) {
		r.verdict = VerdictIncorrect
		return r.verdict
	}

	r.prev = r.sheet
	r.sheet = r.sheet.Apply(tx.CorrectChanges)
	r.verdict = VerdictCorrect
	return r.verdict
}

// Next advances past an accepted transaction. It reports completed when
// the last transaction has been accepted.
func (r *BalanceSheetRunner) Next() (completed bool) {
	if r.completed || r.verdict != VerdictCorrect {
		return false
	}
	if r.step+1 >= len(r.txs) {
		r.completed = true
		return true
	}
	r.step++
	r.inputs = make(map[content.Account]string)
	r.verdict = VerdictNone
	r.hints = 0
	r.solution = false
	return false
}

func (r *BalanceSheetRunner) matches(tx content.Transaction) bool {
	for a, want := range tx.CorrectChanges {
		got, ok := answer.ParseNumber(r.inputs[a])
		if !ok || got != float64(want) {
			return false
		}
	}
	for _, in := range tx.Inputs {
		if _, listed := tx.CorrectChanges[in.Account]; listed {
			continue
		}
		raw := strings.TrimSpace(r.inputs[in.Account])
		if raw == "" {
			continue
		}
		if v, ok := answer.ParseNumber(raw); !ok || v != 0 {
			return false
		}
	}
	return true
}

func hasInput(tx content.Transaction, a content.Account) bool {
	for _, in := range tx.Inputs {
		if in.Account == a {
			return true
		}
	}
	return false
}
