// Package dump writes a generated series as a YAML document, for inspecting
// the generator without opening a window.
package dump

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"cryptodash/internal/market"
	"cryptodash/internal/quote"
)

type Document struct {
	Instrument  string  `yaml:"instrument"`
	Range       string  `yaml:"range"`
	GeneratedAt string  `yaml:"generated_at"`
	Summary     Summary `yaml:"summary"`
	Points      []Point `yaml:"points"`
}

type Summary struct {
	CurrentPrice     float64 `yaml:"current_price"`
	PriceChange      string  `yaml:"price_change"`
	PercentageChange string  `yaml:"percentage_change"`
	IsPositive       bool    `yaml:"is_positive"`
}

type Point struct {
	T     int64   `yaml:"t"`
	Price float64 `yaml:"price"`
}

func NewDocument(inst market.Instrument, r market.TimeRange, generatedAt time.Time, s market.Series) Document {
	info := quote.Summarize(s)
	doc := Document{
		Instrument:  inst.String(),
		Range:       r.String(),
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Summary: Summary{
			CurrentPrice:     info.CurrentPrice,
			PriceChange:      info.PriceChange,
			PercentageChange: info.PercentageChange,
			IsPositive:       info.IsPositive,
		},
		Points: make([]Point, len(s)),
	}
	for i, p := range s {
		doc.Points[i] = Point{T: p.Millis(), Price: p.Price}
	}
	return doc
}

func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	return enc.Close()
}
