package render

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// LineStrokeStyle selects the dash pattern of a line primitive.
type LineStrokeStyle int

const (
	StrokeSolid LineStrokeStyle = iota
	StrokeDashed
	StrokeDotted
)

// TextHAlign anchors text horizontally relative to its x coordinate.
type TextHAlign int

const (
	AlignLeft TextHAlign = iota
	AlignCenter
	AlignRight
)

// Line is a stroked segment in pixel space.
type Line struct {
	X1          float64         `json:"x1"`
	Y1          float64         `json:"y1"`
	X2          float64         `json:"x2"`
	Y2          float64         `json:"y2"`
	StrokeWidth float64         `json:"stroke_width"`
	Style       LineStrokeStyle `json:"style"`
	Color       Color           `json:"color"`
}

// Validate rejects non-finite coordinates and negative stroke widths.
func (l Line) Validate() error {
	for _, v := range [5]float64{l.X1, l.Y1, l.X2, l.Y2, l.StrokeWidth} {
		if !finite(v) {
			return fmt.Errorf("render: line has a non-finite field: %w", core.ErrInvalidData)
		}
	}
	if l.StrokeWidth < 0 {
		return fmt.Errorf("render: line stroke width %v must be >= 0: %w", l.StrokeWidth, core.ErrInvalidData)
	}
	return l.Color.Validate()
}

// Rect is a filled, optionally bordered, optionally rounded rectangle.
// CornerRadius may not exceed half of the smaller side.
type Rect struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Fill         Color   `json:"fill"`
	BorderWidth  float64 `json:"border_width"`
	BorderColor  Color   `json:"border_color"`
	CornerRadius float64 `json:"corner_radius"`
}

// Validate rejects non-finite fields, negative extents, and oversized
// corner radii.
func (r Rect) Validate() error {
	for _, v := range [6]float64{r.X, r.Y, r.Width, r.Height, r.BorderWidth, r.CornerRadius} {
		if !finite(v) {
			return fmt.Errorf("render: rect has a non-finite field: %w", core.ErrInvalidData)
		}
	}
	if r.Width < 0 || r.Height < 0 || r.BorderWidth < 0 || r.CornerRadius < 0 {
		return fmt.Errorf("render: rect extents must be >= 0: %w", core.ErrInvalidData)
	}
	if r.CornerRadius > math.Min(r.Width, r.Height)/2 {
		return fmt.Errorf("render: rect corner radius %v exceeds half of the smaller side: %w", r.CornerRadius, core.ErrInvalidData)
	}
	if err := r.Fill.Validate(); err != nil {
		return err
	}
	return r.BorderColor.Validate()
}

// Text is an anchored text label.
type Text struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	FontSizePx float64    `json:"font_size_px"`
	Color      Color      `json:"color"`
	HAlign     TextHAlign `json:"h_align"`
}

// Validate rejects non-finite coordinates and non-positive font sizes.
func (t Text) Validate() error {
	for _, v := range [3]float64{t.X, t.Y, t.FontSizePx} {
		if !finite(v) {
			return fmt.Errorf("render: text has a non-finite field: %w", core.ErrInvalidData)
		}
	}
	if t.FontSizePx <= 0 {
		return fmt.Errorf("render: text font size %v must be > 0: %w", t.FontSizePx, core.ErrInvalidData)
	}
	return t.Color.Validate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
