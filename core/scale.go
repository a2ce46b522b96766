package core

import "fmt"

// LinearScale maps a finite (Start, End) value interval onto a pixel axis.
// The interval is strict: End > Start.
//
// The forward map over a width W is
//
//	pixel = (value − Start) / (End − Start) × W
//
// so Start lands on pixel 0 and End on pixel W. The inverse is symmetric.
// Both directions reject a degenerate width (< 1).
type LinearScale struct {
	Start float64
	End   float64
}

// NewLinearScale validates the interval and constructs a LinearScale.
func NewLinearScale(start, end float64) (LinearScale, error) {
	if !isFinite(start) || !isFinite(end) {
		return LinearScale{}, fmt.Errorf("core: linear scale bounds must be finite: %w", ErrInvalidData)
	}
	if end <= start {
		return LinearScale{}, fmt.Errorf("core: linear scale requires end > start (got %v..%v): %w", start, end, ErrInvalidData)
	}
	return LinearScale{Start: start, End: end}, nil
}

// Span returns End − Start.
func (s LinearScale) Span() float64 { return s.End - s.Start }

// DomainToPixel maps value into pixel space over widthPx.
// Complexity: O(1).
func (s LinearScale) DomainToPixel(value float64, widthPx int) (float64, error) {
	if widthPx < 1 {
		return 0, fmt.Errorf("core: linear scale width %d must be >= 1: %w", widthPx, ErrInvalidData)
	}
	if !isFinite(value) {
		return 0, fmt.Errorf("core: linear scale value must be finite: %w", ErrInvalidData)
	}
	return (value - s.Start) / s.Span() * float64(widthPx), nil
}

// PixelToDomain maps a pixel coordinate back into the value interval.
// Complexity: O(1).
func (s LinearScale) PixelToDomain(px float64, widthPx int) (float64, error) {
	if widthPx < 1 {
		return 0, fmt.Errorf("core: linear scale width %d must be >= 1: %w", widthPx, ErrInvalidData)
	}
	if !isFinite(px) {
		return 0, fmt.Errorf("core: linear scale pixel must be finite: %w", ErrInvalidData)
	}
	return s.Start + px/float64(widthPx)*s.Span(), nil
}
