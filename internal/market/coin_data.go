package market

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"
)

// ErrInvalidSelection is returned for instrument or range values outside
// the supported set.
var ErrInvalidSelection = errors.New("invalid selection")

type Instrument string

const (
	Bitcoin Instrument = "Bitcoin"
	Solana  Instrument = "Solana"
)

var Instruments = []Instrument{
	Bitcoin,
	Solana,
}

type coinInfo struct {
	Ticker    string
	BasePrice float64
	Color     color.RGBA
}

var coins = map[Instrument]coinInfo{
	Bitcoin: {Ticker: "BTC", BasePrice: 70000, Color: color.RGBA{0xf7, 0x93, 0x1a, 0xff}},
	Solana:  {Ticker: "SOL", BasePrice: 170, Color: color.RGBA{0x99, 0x45, 0xff, 0xff}},
}

func (i Instrument) Valid() bool {
	_, ok := coins[i]
	return ok
}

// BasePrice is the starting point of the random walk and the reference for
// the 10% floor.
func (i Instrument) BasePrice() (float64, error) {
	c, ok := coins[i]
	if !ok {
		return 0, fmt.Errorf("%w: instrument %q", ErrInvalidSelection, string(i))
	}
	return c.BasePrice, nil
}

func (i Instrument) Ticker() string {
	return coins[i].Ticker
}

// Color is the chart line colour for the instrument.
func (i Instrument) Color() color.RGBA {
	if c, ok := coins[i]; ok {
		return c.Color
	}
	return color.RGBA{0xf0, 0xb9, 0x0b, 0xff}
}

func (i Instrument) String() string { return string(i) }

// ParseInstrument accepts the display name (any case) or the ticker.
func ParseInstrument(s string) (Instrument, error) {
	s = strings.TrimSpace(s)
	for _, inst := range Instruments {
		if strings.EqualFold(s, string(inst)) || strings.EqualFold(s, coins[inst].Ticker) {
			return inst, nil
		}
	}
	return "", fmt.Errorf("%w: instrument %q", ErrInvalidSelection, s)
}

// ChartDataPoint is a single (timestamp, price) sample.
type ChartDataPoint struct {
	Time  time.Time
	Price float64
}

// Millis returns the timestamp as unix milliseconds.
func (p ChartDataPoint) Millis() int64 {
	return p.Time.UnixMilli()
}

// Series is ordered by strictly increasing timestamp.
type Series []ChartDataPoint

func (s Series) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent point, or false for an empty series.
func (s Series) Last() (ChartDataPoint, bool) {
	if len(s) == 0 {
		return ChartDataPoint{}, false
	}
	return s[len(s)-1], true
}
