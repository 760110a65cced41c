// Package series produces synthetic price histories for the dashboard chart.
package series

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"cryptodash/internal/market"
)

// ErrInvalidPointCount is returned when a range is configured with no points.
var ErrInvalidPointCount = errors.New("point count must be positive")

// floorRatio bounds every generated price from below, relative to the base price.
const floorRatio = 0.1

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// RangeConfig describes how many points a range has and how far each step
// may move relative to the current price.
type RangeConfig struct {
	PointCount int
	Volatility float64
}

// DefaultTable is the built-in range configuration.
var DefaultTable = map[market.TimeRange]RangeConfig{
	market.Range10m: {PointCount: 60, Volatility: 0.0001},
	market.Range30m: {PointCount: 90, Volatility: 0.0003},
	market.Range1h:  {PointCount: 60, Volatility: 0.0005},
	market.Range1D:  {PointCount: 48, Volatility: 0.005},
	market.Range1M:  {PointCount: 30, Volatility: 0.02},
}

// Generator builds a random-walk Series for an (instrument, range) selection.
// It is not safe for concurrent use: the dashboard calls it from the UI loop.
type Generator struct {
	rnd   Source
	table map[market.TimeRange]RangeConfig

	// Now supplies the end instant for GenerateNow.
	Now func() time.Time
}

func New(rnd Source) *Generator {
	return &Generator{
		rnd:   rnd,
		table: DefaultTable,
		Now:   time.Now,
	}
}

// NewSeeded returns a deterministic generator.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// WithTable replaces the range configuration.
func (g *Generator) WithTable(table map[market.TimeRange]RangeConfig) *Generator {
	g.table = table
	return g
}

// Config returns the configuration for r.
func (g *Generator) Config(r market.TimeRange) (RangeConfig, error) {
	cfg, ok := g.table[r]
	if !ok {
		return RangeConfig{}, fmt.Errorf("%w: range %q", market.ErrInvalidSelection, string(r))
	}
	if cfg.PointCount <= 0 {
		return RangeConfig{}, fmt.Errorf("range %s: %w", r, ErrInvalidPointCount)
	}
	return cfg, nil
}

// GenerateNow is Generate with the generator's clock.
func (g *Generator) GenerateNow(inst market.Instrument, r market.TimeRange) (market.Series, error) {
	return g.Generate(inst, r, g.Now())
}

// Generate returns PointCount points for r, evenly spaced from the range's
// window start up to now, with prices walking from the instrument's base price.
func (g *Generator) Generate(inst market.Instrument, r market.TimeRange, now time.Time) (market.Series, error) {
	basePrice, err := inst.BasePrice()
	if err != nil {
		return nil, err
	}
	cfg, err := g.Config(r)
	if err != nil {
		return nil, err
	}
	start, err := r.WindowStart(now)
	if err != nil {
		return nil, err
	}

	prices := g.walk(basePrice, cfg.PointCount, cfg.Volatility)
	stamps := Timestamps(start, now, cfg.PointCount)

	out := make(market.Series, cfg.PointCount)
	for i := range out {
		out[i] = market.ChartDataPoint{Time: stamps[i], Price: prices[i]}
	}
	return out, nil
}

func (g *Generator) walk(basePrice float64, points int, volatility float64) []float64 {
	prices := make([]float64, 0, points)
	floor := basePrice * floorRatio
	current := basePrice

	for i := 0; i < points; i++ {
		delta := (g.rnd.Float64() - 0.5) * 2 * volatility * current
		current = math.Max(current+delta, floor)
		prices = append(prices, round2(current))
	}
	return prices
}

// Timestamps splits [start, end] into points-1 equal steps. A single point
// sits at start.
func Timestamps(start, end time.Time, points int) []time.Time {
	if points <= 0 {
		return nil
	}
	out := make([]time.Time, points)
	if points == 1 {
		out[0] = start
		return out
	}
	span := end.Sub(start)
	steps := time.Duration(points - 1)
	// whole step plus a share of the remainder keeps span*i from overflowing
	// and lands the last stamp exactly on end
	q, rem := span/steps, span%steps
	for i := range out {
		n := time.Duration(i)
		out[i] = start.Add(q*n + rem*n/steps)
	}
	return out
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
