// Package breakeven computes cost-volume-profit figures for the cost
// behaviour module.
package breakeven

import (
	"errors"
	"math"
)

// ErrNegativeInput is returned when any input is below zero.
var ErrNegativeInput = errors.New("inputs must not be negative")

// Input is a cost structure for a single product or transaction type.
type Input struct {
	FixedCosts   float64
	Price        float64
	VariableCost float64
}

// Default returns the payment processor scenario used in the module.
func Default() Input {
	return Input{FixedCosts: 600000, Price: 0.50, VariableCost: 0.15}
}

// Result holds the derived figures.
type Result struct {
	ContributionMargin float64
	// MarginRatio is a percentage of price.
	MarginRatio float64
	Units       int64
	Revenue     float64
}

// Compute derives contribution margin and break-even point. A product
// with no positive margin never breaks even and yields zero units.
func Compute(in Input) (Result, error) {
	if in.FixedCosts < 0 || in.Price < 0 || in.VariableCost < 0 {
		return Result{}, ErrNegativeInput
	}

	var r Result
	r.ContributionMargin = in.Price - in.VariableCost
	if in.Price > 0 {
		r.MarginRatio = r.ContributionMargin / in.Price * 100
	}
	if r.ContributionMargin > 0 {
		r.Units = int64(math.Ceil(in.FixedCosts / r.ContributionMargin))
	}
	r.Revenue = float64(r.Units) * in.Price
	return r, nil
}

// ProfitAt returns operating profit at a given volume.
func ProfitAt(in Input, units int64) float64 {
	return float64(units)*(in.Price-in.VariableCost) - in.FixedCosts
}
