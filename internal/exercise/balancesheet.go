// Package exercise implements the interactive module exercises: the
// balance sheet walkthrough and the generic practice question set.
package exercise

import "github.com/abhisek/finfluency/internal/content"

// BalanceSheet holds one integer balance per account.
type BalanceSheet map[content.Account]int64

// NewBalanceSheet returns a sheet with every account present, seeded from
// initial.
func NewBalanceSheet(initial map[content.Account]int64) BalanceSheet {
	b := make(BalanceSheet, len(content.AllAccounts()))
	for _, a := range content.AllAccounts() {
		b[a] = initial[a]
	}
	return b
}

// Clone returns an independent copy.
func (b BalanceSheet) Clone() BalanceSheet {
	out := make(BalanceSheet, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Apply returns a new sheet with the deltas added.
func (b BalanceSheet) Apply(deltas map[content.Account]int64) BalanceSheet {
	out := b.Clone()
	for a, d := range deltas {
		out[a] += d
	}
	return out
}

// Total sums the balances on one side of the equation.
func (b BalanceSheet) Total(side content.Side) int64 {
	var sum int64
	for a, v := range b {
		if a.Side() == side {
			sum += v
		}
	}
	return sum
}

// Assets returns total assets.
func (b BalanceSheet) Assets() int64 { return b.Total(content.SideAsset) }

// Liabilities returns total liabilities.
func (b BalanceSheet) Liabilities() int64 { return b.Total(content.SideLiability) }

// Equity returns total equity.
func (b BalanceSheet) Equity() int64 { return b.Total(content.SideEquity) }

// Balanced reports whether assets equal liabilities plus equity.
func (b BalanceSheet) Balanced() bool {
	return b.Assets() == b.Liabilities()+b.Equity()
}

// Diff returns the non-zero per-account change from prev to b.
func (b BalanceSheet) Diff(prev BalanceSheet) map[content.Account]int64 {
	out := make(map[content.Account]int64)
	for _, a := range content.AllAccounts() {
		if d := b[a] - prev[a]; d != 0 {
			out[a] = d
		}
	}
	return out
}
