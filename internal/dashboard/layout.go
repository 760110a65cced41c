package dashboard

import (
	"image"
	"math"

	"cryptodash/internal/market"
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSelectInstrument
	ActionSelectRange
	ActionToggleTheme
	ActionRegenerate
)

type Action struct {
	Kind       ActionKind
	Instrument market.Instrument
	Range      market.TimeRange
}

type Button struct {
	Rect   image.Rectangle
	Label  string
	Action Action
}

// Layout holds the screen rectangles of every interactive or drawn region,
// in physical pixels.
type Layout struct {
	Header      image.Rectangle
	ThemeToggle image.Rectangle
	PricePanel  image.Rectangle
	RangeBar    image.Rectangle
	Chart       image.Rectangle
	// Plot is the area inside Chart the series is drawn in, leaving room
	// for the legend and axis labels.
	Plot image.Rectangle

	Instruments []Button
	Ranges      []Button
}

// ComputeLayout arranges the dashboard for a w x h screen at the given device
// scale.
func ComputeLayout(w, h int, scale float64) Layout {
	if scale <= 0 {
		scale = 1
	}
	px := func(v float64) int { return int(math.Round(v * scale)) }

	pad := px(16)
	var l Layout

	l.Header = image.Rect(0, 0, w, px(64))
	toggle := px(40)
	ty := (l.Header.Dy() - toggle) / 2
	l.ThemeToggle = image.Rect(w-pad-toggle, ty, w-pad, ty+toggle)

	l.PricePanel = image.Rect(pad, l.Header.Max.Y+pad, w-pad, l.Header.Max.Y+pad+px(96))

	btnW, btnH, gap := px(96), px(36), px(8)
	by := l.PricePanel.Min.Y + (l.PricePanel.Dy()-btnH)/2
	x := l.PricePanel.Max.X - pad - len(market.Instruments)*btnW - (len(market.Instruments)-1)*gap
	for _, inst := range market.Instruments {
		l.Instruments = append(l.Instruments, Button{
			Rect:   image.Rect(x, by, x+btnW, by+btnH),
			Label:  inst.String(),
			Action: Action{Kind: ActionSelectInstrument, Instrument: inst},
		})
		x += btnW + gap
	}

	rw, rh, rgap := px(56), px(32), px(4)
	barW := len(market.TimeRanges)*rw + (len(market.TimeRanges)-1)*rgap + 2*rgap
	bx := (w - barW) / 2
	l.RangeBar = image.Rect(bx, l.PricePanel.Max.Y+pad, bx+barW, l.PricePanel.Max.Y+pad+rh+2*rgap)
	x = bx + rgap
	for _, r := range market.TimeRanges {
		l.Ranges = append(l.Ranges, Button{
			Rect:   image.Rect(x, l.RangeBar.Min.Y+rgap, x+rw, l.RangeBar.Max.Y-rgap),
			Label:  r.String(),
			Action: Action{Kind: ActionSelectRange, Range: r},
		})
		x += rw + rgap
	}

	chartTop := l.RangeBar.Max.Y + pad
	chartBottom := h - pad
	if chartBottom < chartTop {
		chartBottom = chartTop
	}
	l.Chart = image.Rect(pad, chartTop, w-pad, chartBottom)

	l.Plot = image.Rect(
		l.Chart.Min.X+px(88),
		l.Chart.Min.Y+px(40),
		l.Chart.Max.X-px(20),
		l.Chart.Max.Y-px(32),
	).Intersect(l.Chart)

	return l
}

// HitTest maps a click at (x, y) to the action of the region under it.
func (l Layout) HitTest(x, y int) Action {
	pt := image.Pt(x, y)
	if pt.In(l.ThemeToggle) {
		return Action{Kind: ActionToggleTheme}
	}
	for _, b := range l.Instruments {
		if pt.In(b.Rect) {
			return b.Action
		}
	}
	for _, b := range l.Ranges {
		if pt.In(b.Rect) {
			return b.Action
		}
	}
	return Action{}
}

// Project maps the i-th of n points with the given price onto the plot area.
// Prices between lo and hi span the plot height.
func (l Layout) Project(i, n int, price, lo, hi float64) (x, y float64) {
	plot := l.Plot
	if n > 1 {
		x = float64(plot.Min.X) + float64(i)/float64(n-1)*float64(plot.Dx())
	} else {
		x = float64(plot.Min.X) + float64(plot.Dx())/2
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	y = float64(plot.Max.Y) - (price-lo)/span*float64(plot.Dy())
	return x, y
}

// NearestPoint returns the index of the point of an n-point series drawn
// closest to screen column x, or false if x is outside the plot.
func (l Layout) NearestPoint(x, y, n int) (int, bool) {
	if n <= 0 || !image.Pt(x, y).In(l.Plot) {
		return 0, false
	}
	if n == 1 || l.Plot.Dx() == 0 {
		return 0, true
	}
	f := float64(x-l.Plot.Min.X) / float64(l.Plot.Dx())
	idx := int(math.Round(f * float64(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx, true
}

// ShortcutAction maps a typed character to an action: t toggles the theme,
// b and s pick the instrument, 1-5 pick the range and r regenerates.
func ShortcutAction(r rune) Action {
	switch r {
	case 't', 'T':
		return Action{Kind: ActionToggleTheme}
	case 'b', 'B':
		return Action{Kind: ActionSelectInstrument, Instrument: market.Bitcoin}
	case 's', 'S':
		return Action{Kind: ActionSelectInstrument, Instrument: market.Solana}
	case 'r', 'R':
		return Action{Kind: ActionRegenerate}
	}
	if r >= '1' && r <= '9' {
		if i := int(r - '1'); i < len(market.TimeRanges) {
			return Action{Kind: ActionSelectRange, Range: market.TimeRanges[i]}
		}
	}
	return Action{}
}
