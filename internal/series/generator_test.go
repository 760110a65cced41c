package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/market"
)

// fixedSource replays the given values in a loop.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

var testNow = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestGenerate_LengthPerRange(t *testing.T) {
	want := map[market.TimeRange]int{
		market.Range10m: 60,
		market.Range30m: 90,
		market.Range1h:  60,
		market.Range1D:  48,
		market.Range1M:  30,
	}
	g := NewSeeded(1)
	for _, inst := range market.Instruments {
		for r, n := range want {
			s, err := g.Generate(inst, r, testNow)
			require.NoError(t, err)
			assert.Len(t, s, n, "%s %s", inst, r)
		}
	}
}

func TestGenerate_FloorClamp(t *testing.T) {
	// Always draw 0: every step moves down by the full volatility.
	g := New(&fixedSource{vals: []float64{0}}).WithTable(map[market.TimeRange]RangeConfig{
		market.Range1M: {PointCount: 500, Volatility: 0.5},
	})

	for _, inst := range market.Instruments {
		base, err := inst.BasePrice()
		require.NoError(t, err)

		s, err := g.Generate(inst, market.Range1M, testNow)
		require.NoError(t, err)
		for _, p := range s {
			assert.GreaterOrEqual(t, p.Price, base*0.1)
		}
		last, _ := s.Last()
		assert.Equal(t, base*0.1, last.Price, "walk should settle on the floor")
	}
}

func TestGenerate_FloorHoldsForRandomWalks(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := NewSeeded(seed)
		for _, inst := range market.Instruments {
			base, _ := inst.BasePrice()
			for _, r := range market.TimeRanges {
				s, err := g.Generate(inst, r, testNow)
				require.NoError(t, err)
				for _, p := range s {
					require.GreaterOrEqual(t, p.Price, 0.1*base)
				}
			}
		}
	}
}

func TestGenerate_Timestamps(t *testing.T) {
	g := NewSeeded(7)
	for _, r := range market.TimeRanges {
		s, err := g.Generate(market.Bitcoin, r, testNow)
		require.NoError(t, err)

		start, err := r.WindowStart(testNow)
		require.NoError(t, err)

		assert.True(t, s[0].Time.Equal(start), "%s first stamp", r)
		assert.True(t, s[len(s)-1].Time.Equal(testNow), "%s last stamp", r)
		for i := 1; i < len(s); i++ {
			require.True(t, s[i].Time.After(s[i-1].Time), "%s not increasing at %d", r, i)
		}
	}
}

func TestGenerate_EvenSpacing(t *testing.T) {
	s, err := NewSeeded(3).Generate(market.Bitcoin, market.Range10m, testNow)
	require.NoError(t, err)

	step := s[1].Time.Sub(s[0].Time)
	for i := 2; i < len(s); i++ {
		diff := s[i].Time.Sub(s[i-1].Time)
		assert.InDelta(t, float64(step), float64(diff), 1, "gap %d", i)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := NewSeeded(42).Generate(market.Solana, market.Range1D, testNow)
	require.NoError(t, err)
	b, err := NewSeeded(42).Generate(market.Solana, market.Range1D, testNow)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeeded(43).Generate(market.Solana, market.Range1D, testNow)
	require.NoError(t, err)
	assert.NotEqual(t, a.Prices(), c.Prices())
}

func TestGenerate_WalkArithmetic(t *testing.T) {
	// u = 1.0 is outside [0,1) but makes the expected delta easy: +vol*price.
	g := New(&fixedSource{vals: []float64{1.0, 0.5, 0.0}}).WithTable(map[market.TimeRange]RangeConfig{
		market.Range10m: {PointCount: 3, Volatility: 0.01},
	})
	s, err := g.Generate(market.Solana, market.Range10m, testNow)
	require.NoError(t, err)

	assert.Equal(t, []float64{171.7, 171.7, 169.98}, s.Prices())
}

func TestGenerate_WalkCarriesUnroundedPrice(t *testing.T) {
	// 170 * 1.003^n: 170.51, 171.02153, 171.5345946, 172.0491984.
	// Carrying the rounded 171.53 instead would give 172.04 on the last step.
	g := New(&fixedSource{vals: []float64{1.0}}).WithTable(map[market.TimeRange]RangeConfig{
		market.Range30m: {PointCount: 4, Volatility: 0.003},
	})
	s, err := g.Generate(market.Solana, market.Range30m, testNow)
	require.NoError(t, err)

	assert.Equal(t, []float64{170.51, 171.02, 171.53, 172.05}, s.Prices())
}

func TestGenerate_PricesHaveTwoDecimals(t *testing.T) {
	s, err := NewSeeded(11).Generate(market.Bitcoin, market.Range1M, testNow)
	require.NoError(t, err)
	for _, p := range s {
		cents := p.Price * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-6, "price %v", p.Price)
	}
}

func TestGenerate_Scenarios(t *testing.T) {
	g := NewSeeded(99)

	btc, err := g.Generate(market.Bitcoin, market.Range10m, testNow)
	require.NoError(t, err)
	require.Len(t, btc, 60)
	assert.Equal(t, testNow.Add(-10*time.Minute), btc[0].Time)
	assert.Equal(t, testNow, btc[59].Time)

	sol, err := g.Generate(market.Solana, market.Range1M, testNow)
	require.NoError(t, err)
	require.Len(t, sol, 30)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), sol[0].Time)
	assert.Equal(t, testNow, sol[29].Time)
	for _, p := range sol {
		assert.GreaterOrEqual(t, p.Price, 17.0)
	}
}

func TestGenerate_InvalidSelection(t *testing.T) {
	g := NewSeeded(1)

	_, err := g.Generate(market.Instrument("Dogecoin"), market.Range1h, testNow)
	assert.ErrorIs(t, err, market.ErrInvalidSelection)

	_, err = g.Generate(market.Bitcoin, market.TimeRange("1Y"), testNow)
	assert.ErrorIs(t, err, market.ErrInvalidSelection)
}

func TestGenerate_NonPositivePointCount(t *testing.T) {
	for _, n := range []int{0, -5} {
		g := NewSeeded(1).WithTable(map[market.TimeRange]RangeConfig{
			market.Range1h: {PointCount: n, Volatility: 0.01},
		})
		_, err := g.Generate(market.Bitcoin, market.Range1h, testNow)
		assert.ErrorIs(t, err, ErrInvalidPointCount)
	}
}

func TestGenerate_SinglePoint(t *testing.T) {
	g := NewSeeded(1).WithTable(map[market.TimeRange]RangeConfig{
		market.Range1h: {PointCount: 1, Volatility: 0.01},
	})
	s, err := g.Generate(market.Bitcoin, market.Range1h, testNow)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, testNow.Add(-time.Hour), s[0].Time)
}

func TestGenerateNow_UsesClock(t *testing.T) {
	g := NewSeeded(5)
	g.Now = func() time.Time { return testNow }

	s, err := g.GenerateNow(market.Bitcoin, market.Range1h)
	require.NoError(t, err)
	assert.Equal(t, testNow, s[len(s)-1].Time)
}

func TestGenerate_LargePointCountTimestamps(t *testing.T) {
	g := NewSeeded(1).WithTable(map[market.TimeRange]RangeConfig{
		market.Range1M: {PointCount: 5000, Volatility: 0.02},
	})
	s, err := g.Generate(market.Bitcoin, market.Range1M, testNow)
	require.NoError(t, err)
	require.Len(t, s, 5000)

	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), s[0].Time)
	assert.Equal(t, testNow, s[len(s)-1].Time)
	for i := 1; i < len(s); i++ {
		require.True(t, s[i].Time.After(s[i-1].Time), "stamp %d not after %d", i, i-1)
	}
}

func TestTimestamps(t *testing.T) {
	assert.Nil(t, Timestamps(testNow, testNow, 0))

	start := testNow.Add(-4 * time.Second)
	got := Timestamps(start, testNow, 5)
	want := []time.Time{
		start,
		start.Add(time.Second),
		start.Add(2 * time.Second),
		start.Add(3 * time.Second),
		testNow,
	}
	assert.Equal(t, want, got)
}
