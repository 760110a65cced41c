// Package chartfmt holds the axis and label rules the chart renderer follows.
package chartfmt

import (
	"math"

	"github.com/dustin/go-humanize"

	"cryptodash/internal/market"
)

// AxisFormats are Go time layouts for x-axis labels and the hover tooltip.
type AxisFormats struct {
	Label   string
	Tooltip string
}

// FormatsFor picks the time granularity for r: clock time for intraday
// ranges, calendar days for 1M.
func FormatsFor(r market.TimeRange) AxisFormats {
	switch r {
	case market.Range10m, market.Range30m, market.Range1h:
		return AxisFormats{Label: "15:04", Tooltip: "15:04:05"}
	case market.Range1D:
		return AxisFormats{Label: "15:04", Tooltip: "02 Jan 15:04"}
	default:
		return AxisFormats{Label: "02 Jan", Tooltip: "02 Jan 2006"}
	}
}

// CurrencyLabel formats v as "$70,123.45" with at most two fractional
// digits and no trailing zeros.
func CurrencyLabel(v float64) string {
	return "$" + humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// Extents returns the lowest and highest price in prices. A flat or empty
// input is widened so that max > min.
func Extents(prices []float64) (min, max float64) {
	if len(prices) == 0 {
		return 0, 1
	}
	min, max = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if max == min {
		pad := math.Abs(min) * 0.001
		if pad == 0 {
			pad = 1
		}
		min -= pad
		max += pad
	}
	return min, max
}

// NiceTicks returns evenly spaced y-axis values on a 1/2/5 x 10^k step that
// cover [min, max] using roughly n ticks.
func NiceTicks(min, max float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	if max < min {
		min, max = max, min
	}
	if max == min {
		min, max = Extents([]float64{min})
	}

	step := niceStep((max - min) / float64(n-1))
	lo := math.Floor(min/step) * step
	hi := math.Ceil(max/step) * step

	if lo > min {
		lo -= step
	}
	count := int(math.Round((hi-lo)/step)) + 1
	for lo+float64(count-1)*step < max {
		count++
	}
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = lo + float64(i)*step
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	pow := math.Pow(10, exp)
	f := raw / pow

	var nice float64
	switch {
	case f < 1.5:
		nice = 1
	case f < 3:
		nice = 2
	case f < 7:
		nice = 5
	default:
		nice = 10
	}
	return nice * pow
}

// TimeTicks picks up to n indices spread evenly over a series of length
// size, always including the first and last point.
func TimeTicks(size, n int) []int {
	if size <= 0 || n <= 0 {
		return nil
	}
	if n == 1 || size == 1 {
		return []int{size - 1}
	}
	if size <= n {
		idx := make([]int, size)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i * (size - 1) / (n - 1)
	}
	return idx
}
