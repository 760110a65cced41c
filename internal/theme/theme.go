package theme

import (
	"fmt"
	"image/color"
	"strings"

	"cryptodash/internal/market"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) String() string { return string(t) }

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: theme %q", market.ErrInvalidSelection, s)
}

// State holds the active theme for the lifetime of the process.
type State struct {
	current Theme
}

func NewState(initial Theme) *State {
	if initial != Light {
		initial = Dark
	}
	return &State{current: initial}
}

func (s *State) Current() Theme { return s.current }

// Set switches to t. Unknown themes are rejected and leave the state as is.
func (s *State) Set(t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("%w: theme %q", market.ErrInvalidSelection, string(t))
	}
	s.current = t
	return nil
}

// Toggle flips the theme and returns the new value.
func (s *State) Toggle() Theme {
	s.current = s.current.Toggle()
	return s.current
}

type Palette struct {
	Background       color.RGBA
	Surface          color.RGBA
	SurfaceSecondary color.RGBA
	Border           color.RGBA
	TextPrimary      color.RGBA
	TextSecondary    color.RGBA
	ChartFore        color.RGBA
	Grid             color.RGBA
	Accent           color.RGBA
	Up               color.RGBA
	Down             color.RGBA
}

var (
	accent = color.RGBA{0xf0, 0xb9, 0x0b, 0xff}
	up     = color.RGBA{0x4a, 0xde, 0x80, 0xff}
	down   = color.RGBA{0xf8, 0x71, 0x71, 0xff}
)

var palettes = map[Theme]Palette{
	Dark: {
		Background:       color.RGBA{0x12, 0x12, 0x12, 0xff},
		Surface:          color.RGBA{0x1e, 0x1e, 0x1e, 0xff},
		SurfaceSecondary: color.RGBA{0x2a, 0x2a, 0x2a, 0xff},
		Border:           color.RGBA{0x2d, 0x2d, 0x2d, 0xff},
		TextPrimary:      color.RGBA{0xf5, 0xf5, 0xf5, 0xff},
		TextSecondary:    color.RGBA{0xa0, 0xa0, 0xa0, 0xff},
		ChartFore:        color.RGBA{0xa0, 0xa0, 0xa0, 0xff},
		Grid:             color.RGBA{0x2d, 0x2d, 0x2d, 0xff},
		Accent:           accent,
		Up:               up,
		Down:             down,
	},
	Light: {
		Background:       color.RGBA{0xf9, 0xfa, 0xfb, 0xff},
		Surface:          color.RGBA{0xff, 0xff, 0xff, 0xff},
		SurfaceSecondary: color.RGBA{0xf3, 0xf4, 0xf6, 0xff},
		Border:           color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
		TextPrimary:      color.RGBA{0x11, 0x18, 0x27, 0xff},
		TextSecondary:    color.RGBA{0x6b, 0x72, 0x80, 0xff},
		ChartFore:        color.RGBA{0x6b, 0x72, 0x80, 0xff},
		Grid:             color.RGBA{0xe5, 0xe7, 0xeb, 0xff},
		Accent:           accent,
		Up:               color.RGBA{0x16, 0xa3, 0x4a, 0xff},
		Down:             color.RGBA{0xdc, 0x26, 0x26, 0xff},
	},
}

func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[Dark]
}
