package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cryptodash/internal/market"
)

func series(prices ...float64) market.Series {
	t0 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, len(prices))
	for i, p := range prices {
		s[i] = market.ChartDataPoint{Time: t0.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return s
}

func TestSummarize_ShortSeries(t *testing.T) {
	want := PriceInfo{CurrentPrice: 0, PriceChange: "0.00", PercentageChange: "0.00", IsPositive: true}

	assert.Equal(t, want, Summarize(nil))
	assert.Equal(t, want, Summarize(series()))
	assert.Equal(t, want, Summarize(series(123.45)))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   PriceInfo
	}{
		{
			name:   "rise",
			prices: []float64{100, 110},
			want:   PriceInfo{CurrentPrice: 110, PriceChange: "10.00", PercentageChange: "10.00", IsPositive: true},
		},
		{
			name:   "fall",
			prices: []float64{50, 200, 150},
			want:   PriceInfo{CurrentPrice: 150, PriceChange: "-50.00", PercentageChange: "-25.00", IsPositive: false},
		},
		{
			name:   "flat",
			prices: []float64{170.5, 170.5},
			want:   PriceInfo{CurrentPrice: 170.5, PriceChange: "0.00", PercentageChange: "0.00", IsPositive: true},
		},
		{
			name:   "cents",
			prices: []float64{70000.1, 70000.3},
			want:   PriceInfo{CurrentPrice: 70000.3, PriceChange: "0.20", PercentageChange: "0.00", IsPositive: true},
		},
		{
			name:   "rounding",
			prices: []float64{3, 4},
			want:   PriceInfo{CurrentPrice: 4, PriceChange: "1.00", PercentageChange: "33.33", IsPositive: true},
		},
		{
			name:   "zero previous",
			prices: []float64{0, 5},
			want:   PriceInfo{CurrentPrice: 5, PriceChange: "5.00", PercentageChange: "0.00", IsPositive: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(series(tt.prices...)))
		})
	}
}

func TestPriceInfoLabels(t *testing.T) {
	up := Summarize(series(100, 110))
	assert.Equal(t, "+10.00 (10.00%)", up.ChangeLabel())
	assert.Equal(t, "$110", up.PriceLabel())

	down := Summarize(series(70010.5, 69990.25))
	assert.Equal(t, "-20.25 (-0.03%)", down.ChangeLabel())
	assert.Equal(t, "$69,990.25", down.PriceLabel())
}
