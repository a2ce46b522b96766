package core

import (
	"fmt"
	"math"
)

// Viewport is the pixel extent of the drawing surface.
// Both dimensions are at least 1.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// NewViewport validates and constructs a Viewport.
// Returns ErrInvalidData when either dimension is < 1.
func NewViewport(width, height int) (Viewport, error) {
	if width < 1 || height < 1 {
		return Viewport{}, fmt.Errorf("core: viewport %dx%d must be at least 1x1: %w", width, height, ErrInvalidData)
	}
	return Viewport{Width: width, Height: height}, nil
}

// DataPoint is a single (time, value) sample of a point series.
type DataPoint struct {
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// IsFinite reports whether both coordinates are finite.
func (p DataPoint) IsFinite() bool {
	return isFinite(p.Time) && isFinite(p.Value)
}

// OhlcBar is a single OHLC sample. A valid bar satisfies
// Low ≤ min(Open, Close) ≤ max(Open, Close) ≤ High with all fields finite.
type OhlcBar struct {
	Time  float64 `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Validate returns ErrInvalidData when any field is non-finite or the
// OHLC ordering invariant is violated.
func (b OhlcBar) Validate() error {
	if !isFinite(b.Time) || !isFinite(b.Open) || !isFinite(b.High) || !isFinite(b.Low) || !isFinite(b.Close) {
		return fmt.Errorf("core: ohlc bar at t=%v has non-finite fields: %w", b.Time, ErrInvalidData)
	}
	bodyLow := math.Min(b.Open, b.Close)
	bodyHigh := math.Max(b.Open, b.Close)
	if b.Low > bodyLow || bodyHigh > b.High {
		return fmt.Errorf("core: ohlc bar at t=%v violates low<=body<=high: %w", b.Time, ErrInvalidData)
	}
	return nil
}

// IsValid reports whether Validate would succeed.
func (b OhlcBar) IsValid() bool { return b.Validate() == nil }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
