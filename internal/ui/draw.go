package ui

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"

	"cryptodash/internal/chartfmt"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/market"
	"cryptodash/internal/theme"
)

func (g *Game) px(v float64) float64 { return v * g.deviceScale }

// fade scales a premultiplied colour by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func (g *Game) strokeRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), float32(g.px(1)), clr, false)
}

// drawCentered draws s centred in r.
func drawCentered(dst *ebiten.Image, s string, face text.Face, r image.Rectangle, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X+r.Max.X)/2, float64(r.Min.Y+r.Max.Y)/2)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

func (g *Game) drawPreloader(screen *ebiten.Image, elapsed time.Duration) {
	pal := g.dash.Palette()
	if g.coinImage == nil {
		size := int(g.px(80))
		g.coinImage = ebiten.NewImage(size, size)
		r := float32(size) / 2
		vector.DrawFilledCircle(g.coinImage, r, r, r, pal.Accent, true)
		vector.StrokeCircle(g.coinImage, r, r, r*0.86, float32(g.px(2)), color.RGBA{0xff, 0xff, 0xff, 0x60}, true)
		// the two serif bars of the bitcoin sign
		bar := float32(g.px(3))
		for _, dx := range []float32{-0.12, 0.08} {
			x := r + dx*r
			vector.StrokeLine(g.coinImage, x, r*0.38, x, r*1.62, bar, color.White, true)
		}
		drawCentered(g.coinImage, "B", g.fonts.Title, image.Rect(0, 0, size, size), color.White)
	}

	angle, scale := dashboard.PreloaderPose(elapsed)
	w, h := g.coinImage.Bounds().Dx(), g.coinImage.Bounds().Dy()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(float64(sw)/2, float64(sh)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.coinImage, op)
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	pal := g.dash.Palette()
	l := g.layout

	fillRect(screen, l.Header, pal.Surface)
	vector.StrokeLine(screen, 0, float32(l.Header.Max.Y), float32(l.Header.Max.X), float32(l.Header.Max.Y), float32(g.px(1)), pal.Border, false)

	// chart-line icon
	ix, iy := g.px(24), float64(l.Header.Dy())/2
	pts := [][2]float64{{0, 8}, {6, 0}, {12, 4}, {20, -8}}
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen,
			float32(ix+g.px(pts[i-1][0])), float32(iy+g.px(pts[i-1][1])),
			float32(ix+g.px(pts[i][0])), float32(iy+g.px(pts[i][1])),
			float32(g.px(2.5)), pal.Accent, true)
	}

	title := "Crypto Dashboard"
	_, th := text.Measure(title, g.fonts.Title, 0)
	esset.DrawText(screen, title, 0, ix+g.px(32), (float64(l.Header.Dy())-th)/2, g.fonts.Title, pal.TextPrimary)

	g.drawThemeIcon(screen)
}

func (g *Game) drawThemeIcon(screen *ebiten.Image) {
	pal := g.dash.Palette()
	r := g.layout.ThemeToggle
	cx, cy := float32(r.Min.X+r.Max.X)/2, float32(r.Min.Y+r.Max.Y)/2

	mx, my := ebiten.CursorPosition()
	if image.Pt(mx, my).In(r) {
		vector.DrawFilledCircle(screen, cx, cy, float32(r.Dx())/2, pal.SurfaceSecondary, true)
	}

	radius := float32(g.px(7))
	if g.dash.Theme() == theme.Dark {
		vector.DrawFilledCircle(screen, cx, cy, radius, pal.TextSecondary, true)
		bg := pal.Surface
		if image.Pt(mx, my).In(r) {
			bg = pal.SurfaceSecondary
		}
		vector.DrawFilledCircle(screen, cx+radius*0.55, cy-radius*0.45, radius*0.85, bg, true)
		return
	}

	vector.DrawFilledCircle(screen, cx, cy, radius*0.7, pal.Accent, true)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		sx, sy := float32(math.Cos(a)), float32(math.Sin(a))
		vector.StrokeLine(screen,
			cx+sx*radius, cy+sy*radius,
			cx+sx*radius*1.4, cy+sy*radius*1.4,
			float32(g.px(2)), pal.Accent, true)
	}
}

func (g *Game) drawPricePanel(screen *ebiten.Image) {
	pal := g.dash.Palette()
	l := g.layout
	inst := g.dash.Instrument()
	info := g.dash.Info()

	fillRect(screen, l.PricePanel, pal.Surface)
	g.strokeRect(screen, l.PricePanel, pal.Border)

	pad := g.px(16)
	x := float64(l.PricePanel.Min.X) + pad
	y := float64(l.PricePanel.Min.Y) + pad*0.75

	iconR := g.px(10)
	vector.DrawFilledCircle(screen, float32(x+iconR), float32(y+iconR), float32(iconR), inst.Color(), true)
	drawCentered(screen, inst.Ticker()[:1], g.fonts.Small,
		image.Rect(int(x), int(y), int(x+2*iconR), int(y+2*iconR)), color.White)

	heading := inst.String() + " Price Chart"
	esset.DrawText(screen, heading, 0, x+2*iconR+g.px(10), y, g.fonts.Title, pal.TextPrimary)

	y += g.px(36)
	price := info.PriceLabel()
	esset.DrawText(screen, price, 0, x, y, g.fonts.Price, pal.TextPrimary)

	pw, ph := text.Measure(price, g.fonts.Price, 0)
	changeClr := pal.Up
	if !info.IsPositive {
		changeClr = pal.Down
	}
	change := info.ChangeLabel()
	_, ch := text.Measure(change, g.fonts.Bold, 0)
	esset.DrawText(screen, change, 0, x+pw+g.px(12), y+ph-ch, g.fonts.Bold, changeClr)

	for _, b := range l.Instruments {
		g.drawButton(screen, b, b.Action.Instrument == inst, b.Action.Instrument.Color())
	}
}

func (g *Game) drawRangeBar(screen *ebiten.Image) {
	pal := g.dash.Palette()
	l := g.layout

	fillRect(screen, l.RangeBar, pal.Surface)
	g.strokeRect(screen, l.RangeBar, pal.Border)
	for _, b := range l.Ranges {
		g.drawButton(screen, b, b.Action.Range == g.dash.Range(), pal.Accent)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, b dashboard.Button, active bool, activeClr color.RGBA) {
	pal := g.dash.Palette()
	mx, my := ebiten.CursorPosition()

	txt := pal.TextSecondary
	switch {
	case active:
		fillRect(screen, b.Rect, activeClr)
		txt = color.RGBA{0xff, 0xff, 0xff, 0xff}
		if b.Action.Kind == dashboard.ActionSelectRange {
			txt = color.RGBA{0x11, 0x18, 0x27, 0xff}
		}
	case image.Pt(mx, my).In(b.Rect):
		fillRect(screen, b.Rect, pal.SurfaceSecondary)
	}
	drawCentered(screen, b.Label, g.fonts.Bold, b.Rect, txt)
}

func (g *Game) drawChart(screen *ebiten.Image, progress float64) {
	pal := g.dash.Palette()
	l := g.layout
	s := g.dash.Series()

	fillRect(screen, l.Chart, pal.Surface)
	g.strokeRect(screen, l.Chart, pal.Border)

	if len(s) == 0 {
		message := "No history data yet."
		drawCentered(screen, message, g.fonts.Regular, l.Chart, pal.TextSecondary)
		return
	}

	// slide up while fading in
	dy := (1 - progress) * g.px(20)
	alpha := progress

	lo, hi := chartfmt.Extents(s.Prices())
	ticks := chartfmt.NiceTicks(lo, hi, 5)
	lo, hi = ticks[0], ticks[len(ticks)-1]

	g.drawGrid(screen, ticks, lo, hi)
	g.drawTimeLabels(screen, s)
	g.drawLegend(screen)

	lineClr := g.dash.LineColor()
	pts := make([][2]float32, len(s))
	for i, p := range s {
		x, y := l.Project(i, len(s), p.Price, lo, hi)
		pts[i] = [2]float32{float32(x), float32(y + dy)}
	}

	g.drawArea(screen, pts, lineClr, alpha)

	if len(pts) > 1 {
		path := &vector.Path{}
		path.MoveTo(pts[0][0], pts[0][1])
		for _, pt := range pts[1:] {
			path.LineTo(pt[0], pt[1])
		}
		vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
			Width:    2.0 * float32(g.deviceScale),
			LineJoin: vector.LineJoinRound,
		})
		g.drawVertices(screen, vs, is, lineClr, alpha)
	}

	last := pts[len(pts)-1]
	vector.DrawFilledCircle(screen, last[0], last[1], 3.0*float32(g.deviceScale), fade(lineClr, alpha), true)

	if g.hovering && g.hoverIdx < len(s) {
		g.drawTooltip(screen, s[g.hoverIdx], pts[g.hoverIdx], lineClr)
	}
}

func (g *Game) drawVertices(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.RGBA, alpha float64) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(clr.R) / 0xff
		vs[i].ColorG = float32(clr.G) / 0xff
		vs[i].ColorB = float32(clr.B) / 0xff
		vs[i].ColorA = float32(alpha)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, g.solidColorImage, op)
}

// drawArea fills under the line with a vertical gradient from 0.7 opacity at
// the top of the plot to 0.1 at the bottom.
func (g *Game) drawArea(screen *ebiten.Image, pts [][2]float32, clr color.RGBA, alpha float64) {
	if len(pts) < 2 {
		return
	}
	plot := g.layout.Plot
	top, bottom := float32(plot.Min.Y), float32(plot.Max.Y)
	opacity := func(y float32) float32 {
		f := (y - top) / (bottom - top)
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		return (0.7 - 0.6*f) * float32(alpha)
	}

	r, gr, b := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff
	vertex := func(x, y float32) ebiten.Vertex {
		return ebiten.Vertex{DstX: x, DstY: y, SrcX: 1, SrcY: 1, ColorR: r, ColorG: gr, ColorB: b, ColorA: opacity(y)}
	}

	vs := make([]ebiten.Vertex, 0, len(pts)*2)
	is := make([]uint16, 0, (len(pts)-1)*6)
	for i, pt := range pts {
		vs = append(vs, vertex(pt[0], pt[1]), vertex(pt[0], bottom))
		if i == 0 {
			continue
		}
		base := uint16(2 * (i - 1))
		is = append(is, base, base+1, base+2, base+1, base+3, base+2)
	}
	screen.DrawTriangles(vs, is, g.solidColorImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) drawGrid(screen *ebiten.Image, ticks []float64, lo, hi float64) {
	pal := g.dash.Palette()
	plot := g.layout.Plot
	dash, gap := g.px(3), g.px(3)

	for _, v := range ticks {
		_, y := g.layout.Project(0, 1, v, lo, hi)
		for x := float64(plot.Min.X); x < float64(plot.Max.X); x += dash + gap {
			end := math.Min(x+dash, float64(plot.Max.X))
			vector.StrokeLine(screen, float32(x), float32(y), float32(end), float32(y), float32(g.px(1)), pal.Grid, false)
		}

		label := chartfmt.CurrencyLabel(v)
		w, h := text.Measure(label, g.fonts.Small, 0)
		esset.DrawText(screen, label, 0, float64(plot.Min.X)-w-g.px(8), y-h/2, g.fonts.Small, pal.ChartFore)
	}
}

func (g *Game) drawTimeLabels(screen *ebiten.Image, s market.Series) {
	pal := g.dash.Palette()
	plot := g.layout.Plot
	layout := g.dash.Formats().Label

	for _, i := range chartfmt.TimeTicks(len(s), 6) {
		x, _ := g.layout.Project(i, len(s), 0, 0, 1)
		label := s[i].Time.Local().Format(layout)
		w, _ := text.Measure(label, g.fonts.Small, 0)
		esset.DrawText(screen, label, 0, x-w/2, float64(plot.Max.Y)+g.px(8), g.fonts.Small, pal.ChartFore)
	}
}

func (g *Game) drawLegend(screen *ebiten.Image) {
	pal := g.dash.Palette()
	chart := g.layout.Chart
	name := g.dash.Instrument().String()

	w, h := text.Measure(name, g.fonts.Small, 0)
	x := float64(chart.Max.X) - w - g.px(20)
	y := float64(chart.Min.Y) + g.px(12)
	vector.DrawFilledCircle(screen, float32(x-g.px(10)), float32(y+h/2), float32(g.px(5)), g.dash.LineColor(), true)
	esset.DrawText(screen, name, 0, x, y, g.fonts.Small, pal.ChartFore)
}

func (g *Game) drawTooltip(screen *ebiten.Image, p market.ChartDataPoint, pt [2]float32, clr color.RGBA) {
	pal := g.dash.Palette()
	plot := g.layout.Plot

	vector.StrokeLine(screen, pt[0], float32(plot.Min.Y), pt[0], float32(plot.Max.Y), float32(g.px(1)), pal.Border, false)
	vector.DrawFilledCircle(screen, pt[0], pt[1], float32(g.px(5)), clr, true)

	when := p.Time.Local().Format(g.dash.Formats().Tooltip)
	price := chartfmt.CurrencyLabel(p.Price)
	ww, wh := text.Measure(when, g.fonts.Small, 0)
	pw, ph := text.Measure(price, g.fonts.Bold, 0)

	pad := g.px(8)
	boxW := math.Max(ww, pw) + 2*pad
	boxH := wh + ph + 3*pad
	bx := float64(pt[0]) + g.px(12)
	if bx+boxW > float64(plot.Max.X) {
		bx = float64(pt[0]) - g.px(12) - boxW
	}
	by := float64(plot.Min.Y)
	box := image.Rect(int(bx), int(by), int(bx+boxW), int(by+boxH))

	fillRect(screen, box, pal.SurfaceSecondary)
	g.strokeRect(screen, box, pal.Border)
	esset.DrawText(screen, when, 0, bx+pad, by+pad, g.fonts.Small, pal.TextSecondary)
	esset.DrawText(screen, price, 0, bx+pad, by+2*pad+wh, g.fonts.Bold, pal.TextPrimary)
}
