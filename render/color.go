package render

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// Color is an RGBA color with each channel in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// NewColor validates channel ranges and constructs a Color.
func NewColor(r, g, b, a float64) (Color, error) {
	c := Color{R: r, G: g, B: b, A: a}
	if err := c.Validate(); err != nil {
		return Color{}, err
	}
	return c, nil
}

// RGB builds an opaque color. Channels outside [0, 1] are clamped.
func RGB(r, g, b float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: 1}
}

// WithAlpha returns a copy with the alpha channel replaced (clamped).
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Validate returns ErrInvalidData when any channel is outside [0, 1].
func (c Color) Validate() error {
	for _, ch := range [4]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(ch) || ch < 0 || ch > 1 {
			return fmt.Errorf("render: color channel %v outside [0, 1]: %w", ch, core.ErrInvalidData)
		}
	}
	return nil
}

// Luminance returns the relative luminance used for auto text contrast.
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
