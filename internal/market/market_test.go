package market

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstrument(t *testing.T) {
	tests := []struct {
		in   string
		want Instrument
	}{
		{"Bitcoin", Bitcoin},
		{"bitcoin", Bitcoin},
		{"BTC", Bitcoin},
		{" Solana ", Solana},
		{"sol", Solana},
	}
	for _, tt := range tests {
		got, err := ParseInstrument(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseInstrument("Dogecoin")
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestParseTimeRange(t *testing.T) {
	for _, r := range TimeRanges {
		got, err := ParseTimeRange(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	for _, bad := range []string{"", "1m", "1d", "2h", "1Y"} {
		_, err := ParseTimeRange(bad)
		assert.ErrorIs(t, err, ErrInvalidSelection, bad)
	}
}

func TestBasePrice(t *testing.T) {
	btc, err := Bitcoin.BasePrice()
	require.NoError(t, err)
	assert.Equal(t, 70000.0, btc)

	sol, err := Solana.BasePrice()
	require.NoError(t, err)
	assert.Equal(t, 170.0, sol)

	_, err = Instrument("Ethereum").BasePrice()
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		r    TimeRange
		want time.Time
	}{
		{Range10m, now.Add(-10 * time.Minute)},
		{Range30m, now.Add(-30 * time.Minute)},
		{Range1h, now.Add(-time.Hour)},
		{Range1D, now.Add(-24 * time.Hour)},
		{Range1M, time.Date(2024, 2, 15, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := tt.r.WindowStart(now)
		require.NoError(t, err)
		assert.True(t, tt.want.Equal(got), "%s: want %s, got %s", tt.r, tt.want, got)
	}

	_, err := TimeRange("1Y").WindowStart(now)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestWindowStart_MonthIsCalendarAware(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	start, err := Range1M.WindowStart(now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), start)
	assert.NotEqual(t, now.Add(-30*24*time.Hour), start)
}

func TestWindowStart_MonthEndClamp(t *testing.T) {
	tests := []struct {
		now, want time.Time
	}{
		{time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)},
		{time.Date(2023, 3, 31, 8, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 8, 0, 0, 0, time.UTC)},
		{time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := Range1M.WindowStart(tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "now=%s", tt.now)
	}
}

func TestSeriesHelpers(t *testing.T) {
	var empty Series
	_, ok := empty.Last()
	assert.False(t, ok)

	t0 := time.UnixMilli(1_700_000_000_000)
	s := Series{{Time: t0, Price: 1.5}, {Time: t0.Add(time.Second), Price: 2.5}}
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 2.5, last.Price)
	assert.Equal(t, []float64{1.5, 2.5}, s.Prices())
	assert.Equal(t, int64(1_700_000_000_000), s[0].Millis())
}
