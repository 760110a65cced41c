// Package dashboard keeps the selection and theme state behind the window and
// recomputes the chart series whenever the selection changes.
package dashboard

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"cryptodash/internal/chartfmt"
	"cryptodash/internal/logger/sl"
	"cryptodash/internal/market"
	"cryptodash/internal/quote"
	"cryptodash/internal/series"
	"cryptodash/internal/theme"
)

// DefaultPreload is how long the loading animation is shown after start.
const DefaultPreload = 2500 * time.Millisecond

// transitionDuration is the fade-in time of a freshly generated chart.
const transitionDuration = 300 * time.Millisecond

type Options struct {
	Instrument market.Instrument
	Range      market.TimeRange
	Theme      *theme.State
	Generator  *series.Generator
	Preload    time.Duration
	Now        func() time.Time
	Log        *slog.Logger
}

type Dashboard struct {
	log   *slog.Logger
	gen   *series.Generator
	theme *theme.State
	now   func() time.Time

	instrument market.Instrument
	timeRange  market.TimeRange
	series     market.Series
	info       quote.PriceInfo

	startedAt time.Time
	preload   time.Duration
	changedAt time.Time
}

// New validates the initial selection and generates the first series.
func New(opts Options) (*Dashboard, error) {
	const op = "dashboard.New"

	if !opts.Instrument.Valid() {
		return nil, fmt.Errorf("%s: %w: instrument %q", op, market.ErrInvalidSelection, string(opts.Instrument))
	}
	if opts.Range == "" {
		opts.Range = market.DefaultRange
	}
	if !opts.Range.Valid() {
		return nil, fmt.Errorf("%s: %w: range %q", op, market.ErrInvalidSelection, string(opts.Range))
	}
	if opts.Generator == nil {
		opts.Generator = series.NewSeeded(time.Now().UnixNano())
	}
	if opts.Theme == nil {
		opts.Theme = theme.NewState(theme.Dark)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	d := &Dashboard{
		log:        opts.Log.With(slog.String("component", "dashboard")),
		gen:        opts.Generator,
		theme:      opts.Theme,
		now:        opts.Now,
		instrument: opts.Instrument,
		timeRange:  opts.Range,
		preload:    opts.Preload,
	}
	d.startedAt = d.now()

	if err := d.Regenerate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (d *Dashboard) Instrument() market.Instrument { return d.instrument }
func (d *Dashboard) Range() market.TimeRange       { return d.timeRange }
func (d *Dashboard) Theme() theme.Theme            { return d.theme.Current() }
func (d *Dashboard) Palette() theme.Palette        { return theme.PaletteFor(d.theme.Current()) }
func (d *Dashboard) Series() market.Series         { return d.series }
func (d *Dashboard) Info() quote.PriceInfo         { return d.info }
func (d *Dashboard) Formats() chartfmt.AxisFormats { return chartfmt.FormatsFor(d.timeRange) }
func (d *Dashboard) LineColor() color.RGBA         { return d.instrument.Color() }

// SelectInstrument switches the instrument and regenerates the series.
// Reselecting the current instrument is a no-op.
func (d *Dashboard) SelectInstrument(inst market.Instrument) error {
	if !inst.Valid() {
		return fmt.Errorf("%w: instrument %q", market.ErrInvalidSelection, string(inst))
	}
	if inst == d.instrument {
		return nil
	}
	prev := d.instrument
	d.instrument = inst
	if err := d.Regenerate(); err != nil {
		d.instrument = prev
		return err
	}
	return nil
}

// SelectRange switches the time range and regenerates the series.
// Reselecting the current range is a no-op.
func (d *Dashboard) SelectRange(r market.TimeRange) error {
	if !r.Valid() {
		return fmt.Errorf("%w: range %q", market.ErrInvalidSelection, string(r))
	}
	if r == d.timeRange {
		return nil
	}
	prev := d.timeRange
	d.timeRange = r
	if err := d.Regenerate(); err != nil {
		d.timeRange = prev
		return err
	}
	return nil
}

func (d *Dashboard) ToggleTheme() theme.Theme {
	t := d.theme.Toggle()
	d.log.Debug("theme toggled", slog.String("theme", t.String()))
	return t
}

// Regenerate draws a fresh series for the current selection. On failure the
// previous series is kept.
func (d *Dashboard) Regenerate() error {
	now := d.now()
	s, err := d.gen.Generate(d.instrument, d.timeRange, now)
	if err != nil {
		d.log.Error("generate series",
			slog.String("instrument", d.instrument.String()),
			slog.String("range", d.timeRange.String()),
			sl.Err(err),
		)
		return err
	}

	d.series = s
	d.info = quote.Summarize(s)
	d.changedAt = now

	d.log.Debug("series generated",
		slog.String("instrument", d.instrument.String()),
		slog.String("range", d.timeRange.String()),
		slog.Int("points", len(s)),
		slog.Float64("last", d.info.CurrentPrice),
	)
	return nil
}

// Loading reports whether the preloader should still be shown.
func (d *Dashboard) Loading(now time.Time) bool {
	return now.Before(d.startedAt.Add(d.preload))
}

// Elapsed is the time since the dashboard was created.
func (d *Dashboard) Elapsed(now time.Time) time.Duration {
	return now.Sub(d.startedAt)
}

// Transition returns the fade-in progress of the current series in [0, 1].
func (d *Dashboard) Transition(now time.Time) float64 {
	p := float64(now.Sub(d.changedAt)) / float64(transitionDuration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Apply dispatches a UI action.
func (d *Dashboard) Apply(a Action) error {
	switch a.Kind {
	case ActionSelectInstrument:
		return d.SelectInstrument(a.Instrument)
	case ActionSelectRange:
		return d.SelectRange(a.Range)
	case ActionToggleTheme:
		d.ToggleTheme()
	case ActionRegenerate:
		return d.Regenerate()
	}
	return nil
}
