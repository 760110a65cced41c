// Package quote derives the headline numbers shown above the chart.
package quote

import (
	"github.com/shopspring/decimal"

	"cryptodash/internal/chartfmt"
	"cryptodash/internal/market"
)

type PriceInfo struct {
	CurrentPrice     float64
	PriceChange      string
	PercentageChange string
	IsPositive       bool
}

var zero = PriceInfo{
	CurrentPrice:     0,
	PriceChange:      "0.00",
	PercentageChange: "0.00",
	IsPositive:       true,
}

var hundred = decimal.NewFromInt(100)

// Summarize compares the last two points of s. Series shorter than two
// points yield a zeroed, positive summary.
func Summarize(s market.Series) PriceInfo {
	if len(s) < 2 {
		return zero
	}
	last := s[len(s)-1].Price
	prev := decimal.NewFromFloat(s[len(s)-2].Price)
	change := decimal.NewFromFloat(last).Sub(prev)

	pct := decimal.Zero
	if !prev.IsZero() {
		pct = change.Div(prev).Mul(hundred)
	}

	return PriceInfo{
		CurrentPrice:     last,
		PriceChange:      fixed2(change),
		PercentageChange: fixed2(pct),
		IsPositive:       change.Sign() >= 0,
	}
}

// fixed2 never renders a negative zero.
func fixed2(d decimal.Decimal) string {
	r := d.Round(2)
	if r.IsZero() {
		return "0.00"
	}
	return r.StringFixed(2)
}

// ChangeLabel renders e.g. "+10.00 (10.00%)".
func (p PriceInfo) ChangeLabel() string {
	sign := ""
	if p.IsPositive {
		sign = "+"
	}
	return sign + p.PriceChange + " (" + p.PercentageChange + "%)"
}

// PriceLabel renders the current price as currency.
func (p PriceInfo) PriceLabel() string {
	return chartfmt.CurrencyLabel(p.CurrentPrice)
}
