package components

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Money formats a whole currency amount with thousands separators and a
// leading sign for negatives, e.g. -$1,200.
func Money(v int64) string {
	if v < 0 {
		return "-$" + humanize.Comma(-v)
	}
	return "$" + humanize.Comma(v)
}

// SignedMoney is Money with an explicit plus for positive amounts.
func SignedMoney(v int64) string {
	if v > 0 {
		return "+" + Money(v)
	}
	return Money(v)
}

// Amount formats a float rounded to at most the given number of decimals.
func Amount(v float64, decimals int) string {
	p := math.Pow10(decimals)
	s := humanize.CommafWithDigits(math.Round(v*p)/p, decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
