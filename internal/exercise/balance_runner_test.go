package exercise

import (
	"testing"

	"github.com/abhisek/finfluency/internal/content"
)

func cloudPay() *content.BalanceSheetExercise {
	return &content.BalanceSheetExercise{
		Company: "CloudPay",
		Initial: map[content.Account]int64{
			content.AccountCash:             50000,
			content.AccountReceivable:       15000,
			content.AccountEquipment:        30000,
			content.AccountPayable:          8000,
			content.AccountShareCapital:     70000,
			content.AccountRetainedEarnings: 17000,
		},
		Transactions: []content.Transaction{
			{
				ID: 1,
				Inputs: []content.TransactionInput{
					{Account: content.AccountCash},
					{Account: content.AccountReceivable},
					{Account: content.AccountDeferredRevenue},
					{Account: content.AccountRetainedEarnings},
				},
				CorrectChanges: map[content.Account]int64{
					content.AccountCash:            24000,
					content.AccountDeferredRevenue: 24000,
				},
				Hints: []string{"h1", "h2", "h3"},
			},
			{
				ID: 2,
				Inputs: []content.TransactionInput{
					{Account: content.AccountDeferredRevenue},
					{Account: content.AccountRetainedEarnings},
					{Account: content.AccountCash},
				},
				CorrectChanges: map[content.Account]int64{
					content.AccountDeferredRevenue:  -2000,
					content.AccountRetainedEarnings: 2000,
				},
			},
		},
	}
}

func TestBalanceSheet_InitialIsBalanced(t *testing.T) {
	b := NewBalanceSheet(cloudPay().Initial)
	if b.Assets() != 95000 || b.Liabilities() != 8000 || b.Equity() != 87000 {
		t.Errorf("totals = %d / %d / %d", b.Assets(), b.Liabilities(), b.Equity())
	}
	if !b.Balanced() {
		t.Error("initial sheet should balance")
	}
	if len(b) != len(content.AllAccounts()) {
		t.Errorf("sheet has %d accounts, want %d", len(b), len(content.AllAccounts()))
	}
}

func TestBalanceRunner_CorrectTransaction(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	r.SetInput(content.AccountCash, "24000")
	r.SetInput(content.AccountDeferredRevenue, "24,000")

	if v := r.Check(); v != VerdictCorrect {
		t.Fatalf("verdict = %v, want correct", v)
	}

	sheet := r.Sheet()
	if sheet[content.AccountCash] != 74000 || sheet[content.AccountDeferredRevenue] != 24000 {
		t.Errorf("sheet not updated: cash=%d deferred=%d", sheet[content.AccountCash], sheet[content.AccountDeferredRevenue])
	}
	if sheet.Assets() != 119000 || sheet.Liabilities()+sheet.Equity() != 119000 {
		t.Errorf("after tx 1: assets=%d, L+E=%d", sheet.Assets(), sheet.Liabilities()+sheet.Equity())
	}
	if r.Previous()[content.AccountCash] != 50000 {
		t.Error("previous snapshot should be kept")
	}

	diff := r.Diff()
	if len(diff) != 2 || diff[content.AccountCash] != 24000 || diff[content.AccountDeferredRevenue] != 24000 {
		t.Errorf("diff = %v", diff)
	}
}

func TestBalanceRunner_UnlistedNonZeroIsIncorrect(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	r.SetInput(content.AccountCash, "24000")
	r.SetInput(content.AccountDeferredRevenue, "24000")
	r.SetInput(content.AccountRetainedEarnings, "24000")

	if v := r.Check(); v != VerdictIncorrect {
		t.Fatalf("verdict = %v, want incorrect", v)
	}
	if r.Sheet()[content.AccountCash] != 50000 {
		t.Error("incorrect check must not change the sheet")
	}
}

func TestBalanceRunner_UnlistedZeroIsAllowed(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	r.SetInput(content.AccountCash, "24000")
	r.SetInput(content.AccountDeferredRevenue, "24000")
	r.SetInput(content.AccountRetainedEarnings, "0")
	r.SetInput(content.AccountReceivable, " ")

	if v := r.Check(); v != VerdictCorrect {
		t.Fatalf("verdict = %v, want correct", v)
	}
}

func TestBalanceRunner_WrongOrMissingAmount(t *testing.T) {
	tests := []struct {
		name   string
		inputs map[content.Account]string
	}{
		{"wrong amount", map[content.Account]string{content.AccountCash: "24000", content.AccountDeferredRevenue: "2400"}},
		{"missing amount", map[content.Account]string{content.AccountCash: "24000"}},
		{"garbage", map[content.Account]string{content.AccountCash: "lots", content.AccountDeferredRevenue: "24000"}},
		{"unlisted garbage", map[content.Account]string{content.AccountCash: "24000", content.AccountDeferredRevenue: "24000", content.AccountReceivable: "x"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewBalanceSheetRunner(cloudPay())
			for a, v := range tc.inputs {
				r.SetInput(a, v)
			}
			if v := r.Check(); v != VerdictIncorrect {
				t.Errorf("verdict = %v, want incorrect", v)
			}
		})
	}
}

func TestBalanceRunner_EditingClearsIncorrect(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	r.SetInput(content.AccountCash, "1")
	r.Check()
	if r.Verdict() != VerdictIncorrect {
		t.Fatal("expected incorrect")
	}
	r.SetInput(content.AccountCash, "24000")
	if r.Verdict() != VerdictNone {
		t.Errorf("verdict after edit = %v, want none", r.Verdict())
	}
}

func TestBalanceRunner_InputsLockedAfterCorrect(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	r.SetInput(content.AccountCash, "24000")
	r.SetInput(content.AccountDeferredRevenue, "24000")
	r.Check()

	if r.SetInput(content.AccountCash, "1") {
		t.Error("inputs should be locked after a correct check")
	}
	if r.SetInput(content.AccountLoans, "5") {
		t.Error("accounts outside the transaction's inputs are rejected")
	}
}

func TestBalanceRunner_HintsAreCapped(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())
	for i := 0; i < 5; i++ {
		r.RevealHint()
	}
	if r.HintsRevealed() != 3 {
		t.Errorf("hints = %d, want 3", r.HintsRevealed())
	}
	r.RevealSolution()
	if !r.SolutionRevealed() {
		t.Error("solution should be revealed")
	}
}

func TestBalanceRunner_CompletesAfterLastTransaction(t *testing.T) {
	r := NewBalanceSheetRunner(cloudPay())

	if r.Next() {
		t.Fatal("Next before a correct check should do nothing")
	}

	r.SetInput(content.AccountCash, "24000")
	r.SetInput(content.AccountDeferredRevenue, "24000")
	r.Check()
	r.RevealHint()
	if r.Next() {
		t.Fatal("first transaction should not complete the exercise")
	}
	if r.Step() != 1 || r.Verdict() != VerdictNone || r.HintsRevealed() != 0 || r.Input(content.AccountCash) != "" {
		t.Errorf("step state not reset: step=%d verdict=%v hints=%d", r.Step(), r.Verdict(), r.HintsRevealed())
	}

	r.SetInput(content.AccountDeferredRevenue, "-2000")
	r.SetInput(content.AccountRetainedEarnings, "2000")
	if r.Check() != VerdictCorrect {
		t.Fatal("second transaction should be correct")
	}
	if !r.Next() {
		t.Fatal("last transaction should complete the exercise")
	}
	if !r.Completed() {
		t.Error("runner should report completed")
	}
	if r.Next() {
		t.Error("completion fires once")
	}
	if !r.Sheet().Balanced() {
		t.Error("sheet should balance after every accepted transaction")
	}
}
