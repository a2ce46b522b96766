package core

import (
	"fmt"
	"math"
)

// TimeScale owns the full time range of the loaded data plus the visible
// sub-range shown by the viewport. Both ranges are strict (end > start).
//
// The visible range is the one navigation mutates; the full range only
// grows when new samples arrive. Neither is required to contain the other:
// panning past the data edge is legal unless edge fixing clamps it.
type TimeScale struct {
	fullStart    float64
	fullEnd      float64
	visibleStart float64
	visibleEnd   float64
}

// NewTimeScale builds a TimeScale whose full and visible ranges both equal
// (start, end). Returns ErrInvalidData for non-finite or reversed bounds.
func NewTimeScale(start, end float64) (TimeScale, error) {
	if err := validateRange("time scale", start, end); err != nil {
		return TimeScale{}, err
	}
	return TimeScale{fullStart: start, fullEnd: end, visibleStart: start, visibleEnd: end}, nil
}

func validateRange(what string, start, end float64) error {
	if !isFinite(start) || !isFinite(end) {
		return fmt.Errorf("core: %s bounds must be finite: %w", what, ErrInvalidData)
	}
	if end <= start {
		return fmt.Errorf("core: %s requires end > start (got %v..%v): %w", what, start, end, ErrInvalidData)
	}
	return nil
}

// FullRange returns the (start, end) covering all loaded data.
func (t TimeScale) FullRange() (float64, float64) { return t.fullStart, t.fullEnd }

// VisibleRange returns the currently displayed (start, end).
func (t TimeScale) VisibleRange() (float64, float64) { return t.visibleStart, t.visibleEnd }

// VisibleSpan returns visibleEnd − visibleStart.
func (t TimeScale) VisibleSpan() float64 { return t.visibleEnd - t.visibleStart }

// SetFullRange replaces the full range.
func (t *TimeScale) SetFullRange(start, end float64) error {
	if err := validateRange("time scale full range", start, end); err != nil {
		return err
	}
	t.fullStart, t.fullEnd = start, end
	return nil
}

// SetVisibleRange replaces the visible range.
func (t *TimeScale) SetVisibleRange(start, end float64) error {
	if err := validateRange("time scale visible range", start, end); err != nil {
		return err
	}
	t.visibleStart, t.visibleEnd = start, end
	return nil
}

// ResetVisibleRangeToFull snaps the visible range back to the full range.
func (t *TimeScale) ResetVisibleRangeToFull() {
	t.visibleStart, t.visibleEnd = t.fullStart, t.fullEnd
}

// PanVisibleBy shifts the visible range by dt while preserving the span.
func (t *TimeScale) PanVisibleBy(dt float64) error {
	if !isFinite(dt) {
		return fmt.Errorf("core: pan delta must be finite: %w", ErrInvalidData)
	}
	t.visibleStart += dt
	t.visibleEnd += dt
	return nil
}

// ZoomVisibleByFactor rescales the visible span to span/factor (clamped to
// at least minSpan) while keeping anchorTime at the same relative position
// inside the range. factor must be finite and > 0.
func (t *TimeScale) ZoomVisibleByFactor(factor, anchorTime, minSpan float64) error {
	if !isFinite(factor) || factor <= 0 {
		return fmt.Errorf("core: zoom factor must be finite and > 0: %w", ErrInvalidData)
	}
	if !isFinite(anchorTime) {
		return fmt.Errorf("core: zoom anchor must be finite: %w", ErrInvalidData)
	}
	if !isFinite(minSpan) || minSpan <= 0 {
		return fmt.Errorf("core: zoom minimum span must be finite and > 0: %w", ErrInvalidData)
	}
	span := t.VisibleSpan()
	newSpan := math.Max(span/factor, minSpan)
	fraction := (anchorTime - t.visibleStart) / span
	newStart := anchorTime - fraction*newSpan
	t.visibleStart = newStart
	t.visibleEnd = newStart + newSpan
	return nil
}

// ClampVisibleToFullEdges keeps the visible range inside the full range on
// the fixed side(s). With both sides fixed, a visible span wider than the
// full span collapses to the full range. Reports whether anything moved.
func (t *TimeScale) ClampVisibleToFullEdges(fixLeft, fixRight bool) bool {
	if !fixLeft && !fixRight {
		return false
	}
	vs, ve := t.visibleStart, t.visibleEnd
	if fixLeft && fixRight && ve-vs > t.fullEnd-t.fullStart {
		t.visibleStart, t.visibleEnd = t.fullStart, t.fullEnd
		return vs != t.fullStart || ve != t.fullEnd
	}
	changed := false
	if fixRight && ve > t.fullEnd {
		shift := ve - t.fullEnd
		vs -= shift
		ve = t.fullEnd
		changed = true
	}
	if fixLeft && vs < t.fullStart {
		shift := t.fullStart - vs
		vs = t.fullStart
		ve += shift
		if fixRight && ve > t.fullEnd {
			ve = t.fullEnd
		}
		changed = true
	}
	if changed {
		t.visibleStart, t.visibleEnd = vs, ve
	}
	return changed
}

// IncludeTimeInFullRange widens the full range so it contains tm.
// Reports whether the full range actually changed.
func (t *TimeScale) IncludeTimeInFullRange(tm float64) (bool, error) {
	if !isFinite(tm) {
		return false, fmt.Errorf("core: included time must be finite: %w", ErrInvalidData)
	}
	start := math.Min(t.fullStart, tm)
	end := math.Max(t.fullEnd, tm)
	if start == t.fullStart && end == t.fullEnd {
		return false, nil
	}
	t.fullStart, t.fullEnd = start, end
	return true, nil
}

// DeriveVisibleBarSpacingAndRightOffset expresses the current visible range
// in bar-navigation terms for a given reference step and pixel width:
//
//	barSpacingPx   = widthPx × step / visibleSpan
//	rightOffsetBars = (visibleEnd − fullEnd) / step
//
// step and widthPx must be finite and > 0.
func (t TimeScale) DeriveVisibleBarSpacingAndRightOffset(step, widthPx float64) (barSpacingPx, rightOffsetBars float64, err error) {
	if !isFinite(step) || step <= 0 {
		return 0, 0, fmt.Errorf("core: reference step must be finite and > 0: %w", ErrInvalidData)
	}
	if !isFinite(widthPx) || widthPx <= 0 {
		return 0, 0, fmt.Errorf("core: width must be finite and > 0: %w", ErrInvalidData)
	}
	span := t.VisibleSpan()
	barSpacingPx = widthPx * step / span
	rightOffsetBars = (t.visibleEnd - t.fullEnd) / step
	return barSpacingPx, rightOffsetBars, nil
}

// SetVisibleRangeFromBarSpacingAndRightOffset is the inverse derivation:
// the visible end sits rightOffsetBars × step past the full end, and the
// span covers widthPx / barSpacingPx bars (at least one).
func (t *TimeScale) SetVisibleRangeFromBarSpacingAndRightOffset(barSpacingPx, rightOffsetBars, step, widthPx float64) error {
	if !isFinite(barSpacingPx) || barSpacingPx <= 0 {
		return fmt.Errorf("core: bar spacing must be finite and > 0: %w", ErrInvalidData)
	}
	if !isFinite(rightOffsetBars) {
		return fmt.Errorf("core: right offset must be finite: %w", ErrInvalidData)
	}
	if !isFinite(step) || step <= 0 {
		return fmt.Errorf("core: reference step must be finite and > 0: %w", ErrInvalidData)
	}
	if !isFinite(widthPx) || widthPx <= 0 {
		return fmt.Errorf("core: width must be finite and > 0: %w", ErrInvalidData)
	}
	end := t.fullEnd + rightOffsetBars*step
	span := step * math.Max(widthPx/barSpacingPx, 1)
	return t.SetVisibleRange(end-span, end)
}
