// Package ui draws the dashboard with ebiten.
package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"cryptodash/internal/dashboard"
	"cryptodash/internal/logger/sl"
)

const baseFontSize = 14

type Fonts struct {
	Regular text.Face
	Small   text.Face
	Bold    text.Face
	Title   text.Face
	Price   text.Face
}

// LoadFonts prepares the Go font family at the given device scale.
func LoadFonts(deviceScale float64) (Fonts, error) {
	load := func(ttf []byte, size float64) (text.Face, error) {
		scaled := int(size * deviceScale)
		face, err := esset.GetFont(ttf, scaled)
		if err != nil {
			return nil, fmt.Errorf("load font at size %d: %w", scaled, err)
		}
		return face, nil
	}

	var f Fonts
	var err error
	if f.Regular, err = load(goregular.TTF, baseFontSize); err != nil {
		return Fonts{}, err
	}
	if f.Small, err = load(goregular.TTF, baseFontSize-2); err != nil {
		return Fonts{}, err
	}
	if f.Bold, err = load(gobold.TTF, baseFontSize); err != nil {
		return Fonts{}, err
	}
	if f.Title, err = load(gobold.TTF, baseFontSize+8); err != nil {
		return Fonts{}, err
	}
	if f.Price, err = load(gobold.TTF, baseFontSize+16); err != nil {
		return Fonts{}, err
	}
	return f, nil
}

type Game struct {
	ctx   context.Context
	log   *slog.Logger
	dash  *dashboard.Dashboard
	fonts Fonts
	now   func() time.Time

	deviceScale float64
	width       int
	height      int
	layout      dashboard.Layout

	solidColorImage *ebiten.Image
	coinImage       *ebiten.Image

	hoverIdx int
	hovering bool
	chars    []rune
}

// NewGame wires a dashboard to the window. Update returns ebiten.Termination
// once ctx is cancelled.
func NewGame(ctx context.Context, log *slog.Logger, dash *dashboard.Dashboard, fonts Fonts, deviceScale float64) *Game {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	return &Game{
		ctx:         ctx,
		log:         log.With(slog.String("component", "ui")),
		dash:        dash,
		fonts:       fonts,
		now:         time.Now,
		deviceScale: deviceScale,
	}
}

func (g *Game) initSolidColorImage() {
	if g.solidColorImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.solidColorImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := g.now()
	if g.dash.Loading(now) {
		return nil
	}

	g.layout = dashboard.ComputeLayout(g.width, g.height, g.deviceScale)

	mx, my := ebiten.CursorPosition()
	g.hoverIdx, g.hovering = g.layout.NearestPoint(mx, my, len(g.dash.Series()))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if a := g.layout.HitTest(mx, my); a.Kind != dashboard.ActionNone {
			g.apply(a)
		}
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if a := dashboard.ShortcutAction(r); a.Kind != dashboard.ActionNone {
			g.apply(a)
		}
	}
	return nil
}

func (g *Game) apply(a dashboard.Action) {
	if err := g.dash.Apply(a); err != nil {
		g.log.Error("apply action", slog.Int("kind", int(a.Kind)), sl.Err(err))
		return
	}
	g.log.Debug("action applied",
		slog.String("instrument", g.dash.Instrument().String()),
		slog.String("range", g.dash.Range().String()),
		slog.String("theme", g.dash.Theme().String()),
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.initSolidColorImage()

	now := g.now()
	pal := g.dash.Palette()
	screen.Fill(pal.Background)

	if g.dash.Loading(now) {
		g.drawPreloader(screen, g.dash.Elapsed(now))
		return
	}
	if g.layout.Chart.Empty() {
		g.layout = dashboard.ComputeLayout(g.width, g.height, g.deviceScale)
	}

	g.drawHeader(screen)
	g.drawPricePanel(screen)
	g.drawRangeBar(screen)
	g.drawChart(screen, g.dash.Transition(now))
}

// Layout works in physical pixels so text stays sharp on HiDPI screens.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.width = int(float64(outsideWidth) * g.deviceScale)
	g.height = int(float64(outsideHeight) * g.deviceScale)
	return g.width, g.height
}
