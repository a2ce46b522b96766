package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// SetViewport replaces the viewport. When resize locking is on and the
// width changed, the visible range is re-derived so the configured anchor
// edge keeps its position; the span either follows the pinned bar spacing
// or keeps its logical extent.
func (e *Engine) SetViewport(width, height int) error {
	next, err := core.NewViewport(width, height)
	if err != nil {
		return err
	}
	prev := e.viewport
	e.viewport = next
	e.invalidation.Mark(InvalidatePanes)
	if !e.behavior.Resize.LockVisibleRangeOnResize || prev.Width == next.Width {
		e.plugins.dispatch(EventPaneLayoutChanged)
		return nil
	}

	start, end := e.timeScale.VisibleRange()
	span := end - start
	if e.behavior.Navigation.BarSpacingPx != nil {
		step := e.referenceStep()
		span = step * math.Max(float64(next.Width) / *e.behavior.Navigation.BarSpacingPx, 1)
	}
	var newStart, newEnd float64
	switch e.behavior.Resize.Anchor {
	case ResizeAnchorLeft:
		newStart, newEnd = start, start+span
	case ResizeAnchorCenter:
		center := (start + end) / 2
		newStart, newEnd = center-span/2, center+span/2
	default:
		newStart, newEnd = end-span, end
	}
	if err := e.timeScale.SetVisibleRange(newStart, newEnd); err != nil {
		return err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	e.plugins.dispatch(EventPaneLayoutChanged)
	return nil
}

// SetTimeVisibleRange replaces the visible range, then applies the zoom
// limit and edge constraints. Spans wider than the zoom limit allows clamp
// anchored on the right end.
func (e *Engine) SetTimeVisibleRange(start, end float64) error {
	if err := e.timeScale.SetVisibleRange(start, end); err != nil {
		return err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	if e.behavior.PriceRealtime.AutoscaleOnTimeRangeChange {
		e.autoscalePrice(true)
	}
	return nil
}

// applyTimeConstraints clamps the visible span to the zoom-limit bar
// spacing bounds (right-anchored) and fixes the configured edges.
func (e *Engine) applyTimeConstraints() {
	step := e.referenceStep()
	width := float64(e.viewport.Width)
	start, end := e.timeScale.VisibleRange()
	span := end - start

	maxSpan := width * step / e.behavior.ZoomLimit.MinBarSpacingPx
	if span > maxSpan {
		span = maxSpan
		start = end - span
		_ = e.timeScale.SetVisibleRange(start, end)
	}
	if e.behavior.ZoomLimit.MaxBarSpacingPx != nil {
		minSpan := width * step / *e.behavior.ZoomLimit.MaxBarSpacingPx
		if span < minSpan {
			span = minSpan
			start = end - span
			_ = e.timeScale.SetVisibleRange(start, end)
		}
	}
	e.timeScale.ClampVisibleToFullEdges(e.behavior.Edge.FixLeftEdge, e.behavior.Edge.FixRightEdge)
}

// PanTimeVisibleByPixels shifts the visible range by dx pixels of drag.
// Positive dx drags content rightward, revealing earlier times. Gated by
// the pressed-move scroll flag; a closed gate is a silent no-op.
func (e *Engine) PanTimeVisibleByPixels(dx float64) error {
	if !e.behavior.InteractionInput.AllowsPressedMovePan() {
		return nil
	}
	return e.panByPixels(dx)
}

// WheelPanTimeVisible pans horizontally from a wheel delta scaled by
// ratio. Gated by the wheel scroll flag.
func (e *Engine) WheelPanTimeVisible(dx, ratio float64) error {
	if !e.behavior.InteractionInput.AllowsWheelPan() {
		return nil
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("engine: wheel pan ratio must be finite: %w", core.ErrInvalidData)
	}
	return e.panByPixels(dx * ratio)
}

// TouchDragPanTimeVisible pans from a touch drag on one orientation.
func (e *Engine) TouchDragPanTimeVisible(dx float64, horizontal bool) error {
	if !e.behavior.InteractionInput.AllowsTouchDragPan(horizontal) {
		return nil
	}
	return e.panByPixels(dx)
}

func (e *Engine) panByPixels(dx float64) error {
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return fmt.Errorf("engine: pan delta must be finite: %w", core.ErrInvalidData)
	}
	span := e.timeScale.VisibleSpan()
	dt := -dx / float64(e.viewport.Width) * span
	if err := e.timeScale.PanVisibleBy(dt); err != nil {
		return err
	}
	e.timeScale.ClampVisibleToFullEdges(e.behavior.Edge.FixLeftEdge, e.behavior.Edge.FixRightEdge)
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	if e.behavior.PriceRealtime.AutoscaleOnTimeRangeChange {
		e.autoscalePrice(true)
	}
	return nil
}

// WheelZoomTimeVisible zooms from a vertical wheel delta. The factor is
// (1 + stepRatio)^(-dy/120): wheel-up (negative dy) zooms in. The anchor
// is the time under anchorPx, or the right edge when the scroll-zoom
// behavior pins it. Gated by the wheel scale flag; a closed gate returns
// factor 1.0 without validating.
func (e *Engine) WheelZoomTimeVisible(dy, anchorPx, stepRatio, minSpanAbs float64) (float64, error) {
	if !e.behavior.InteractionInput.AllowsWheelZoom() {
		return 1, nil
	}
	if math.IsNaN(dy) || math.IsInf(dy, 0) {
		return 1, fmt.Errorf("engine: wheel delta must be finite: %w", core.ErrInvalidData)
	}
	if math.IsNaN(stepRatio) || stepRatio <= 0 {
		return 1, fmt.Errorf("engine: wheel zoom step ratio must be positive: %w", core.ErrInvalidData)
	}
	factor := math.Pow(1+stepRatio, -dy/120)
	if err := e.zoomAtPixel(factor, anchorPx, minSpanAbs); err != nil {
		return 1, err
	}
	return factor, nil
}

// PinchZoomTimeVisible zooms by a direct factor around anchorPx. Gated by
// the pinch scale flag.
func (e *Engine) PinchZoomTimeVisible(factor, anchorPx, minSpanAbs float64) error {
	if !e.behavior.InteractionInput.AllowsPinchZoom() {
		return nil
	}
	return e.zoomAtPixel(factor, anchorPx, minSpanAbs)
}

func (e *Engine) zoomAtPixel(factor, anchorPx, minSpanAbs float64) error {
	anchorTime, err := e.PixelToX(anchorPx)
	if err != nil {
		return err
	}
	if e.behavior.ScrollZoom.RightBarStaysOnScroll {
		_, anchorTime = e.timeScale.VisibleRange()
	}
	if err := e.timeScale.ZoomVisibleByFactor(factor, anchorTime, minSpanAbs); err != nil {
		return err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	if e.behavior.PriceRealtime.AutoscaleOnTimeRangeChange {
		e.autoscalePrice(true)
	}
	return nil
}

// ZoomAroundPixel zooms by factor keeping the sample under anchorPx
// pinned, working in the bar-indexed coordinate space. When the solved
// right offset would still drift the anchor by more than 1e-9 px the zoom
// falls back to the time-anchored path.
func (e *Engine) ZoomAroundPixel(factor, anchorPx float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return fmt.Errorf("engine: zoom factor must be finite and > 0: %w", core.ErrInvalidData)
	}
	space, step, err := e.timeIndexSpace()
	if err != nil {
		return err
	}
	anchorIndex := space.CoordinateToLogicalIndex(anchorPx)
	oldPx := space.IndexToCoordinate(anchorIndex)

	newSpacing := space.BarSpacingPx * factor
	newSpacing = math.Max(newSpacing, e.behavior.ZoomLimit.MinBarSpacingPx)
	if e.behavior.ZoomLimit.MaxBarSpacingPx != nil {
		newSpacing = math.Min(newSpacing, *e.behavior.ZoomLimit.MaxBarSpacingPx)
	}
	next := space
	next.BarSpacingPx = newSpacing
	newRight, err := next.SolveRightOffsetForAnchorPreservingZoom(space.BarSpacingPx, space.RightOffsetBars, anchorIndex)
	if err != nil {
		return err
	}
	next.RightOffsetBars = newRight
	if math.Abs(next.IndexToCoordinate(anchorIndex)-oldPx) > 1e-9 {
		// Index-space solve degenerated; anchor on time instead.
		anchorTime, err := e.PixelToX(anchorPx)
		if err != nil {
			return err
		}
		if err := e.timeScale.ZoomVisibleByFactor(factor, anchorTime, DefaultMinTimeSpanAbs); err != nil {
			return err
		}
	} else if err := e.timeScale.SetVisibleRangeFromBarSpacingAndRightOffset(newSpacing, newRight, step, float64(e.viewport.Width)); err != nil {
		return err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	if e.behavior.PriceRealtime.AutoscaleOnTimeRangeChange {
		e.autoscalePrice(true)
	}
	return nil
}

// AxisDragScaleTime rescales the visible span around the anchor pixel's
// time. factor = (1 + stepRatio)^(dx/120); dragging right zooms out.
// Gated; a closed gate returns factor 1.0 without validating.
func (e *Engine) AxisDragScaleTime(dx, anchorPx, stepRatio, minSpanAbs float64) (float64, error) {
	if !e.behavior.InteractionInput.AllowsAxisDragScale() {
		return 1, nil
	}
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return 1, fmt.Errorf("engine: axis drag delta must be finite: %w", core.ErrInvalidData)
	}
	if math.IsNaN(stepRatio) || stepRatio <= 0 {
		return 1, fmt.Errorf("engine: axis drag step ratio must be positive: %w", core.ErrInvalidData)
	}
	factor := math.Pow(1+stepRatio, dx/120)
	anchorTime, err := e.PixelToX(anchorPx)
	if err != nil {
		return 1, err
	}
	// factor > 1 widens the span, so the zoom factor is its inverse.
	if err := e.timeScale.ZoomVisibleByFactor(1/factor, anchorTime, minSpanAbs); err != nil {
		return 1, err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	return factor, nil
}

// AxisDoubleClickResetTimeScale restores the full range and re-applies
// constraints. Reports whether the visible range changed. Gated.
func (e *Engine) AxisDoubleClickResetTimeScale() bool {
	if !e.behavior.InteractionInput.AllowsAxisDoubleClickReset() {
		return false
	}
	prevStart, prevEnd := e.timeScale.VisibleRange()
	e.timeScale.ResetVisibleRangeToFull()
	e.applyTimeConstraints()
	start, end := e.timeScale.VisibleRange()
	changed := start != prevStart || end != prevEnd
	if changed {
		e.invalidation.Mark(InvalidateTimeScale)
		e.plugins.dispatch(EventTimeRangeChanged)
	}
	return changed
}

// ScrollTimeToPositionBars places the visible right edge positionBars past
// the last bar, preserving the span.
func (e *Engine) ScrollTimeToPositionBars(positionBars float64) error {
	if math.IsNaN(positionBars) || math.IsInf(positionBars, 0) {
		return fmt.Errorf("engine: scroll position must be finite: %w", core.ErrInvalidData)
	}
	step := e.referenceStep()
	_, fullEnd := e.timeScale.FullRange()
	span := e.timeScale.VisibleSpan()
	end := fullEnd + positionBars*step
	if err := e.timeScale.SetVisibleRange(end-span, end); err != nil {
		return err
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	return nil
}

// ScrollTimeToRealtime scrolls so the configured navigation right offset
// applies against the latest bar.
func (e *Engine) ScrollTimeToRealtime() error {
	offset := e.behavior.Navigation.RightOffsetBars
	if e.behavior.Navigation.RightOffsetPx != nil {
		space, _, err := e.timeIndexSpace()
		if err == nil {
			offset = *e.behavior.Navigation.RightOffsetPx / space.BarSpacingPx
		}
	}
	return e.ScrollTimeToPositionBars(offset)
}

// FitTimeToData sets the visible range to the full data range.
func (e *Engine) FitTimeToData() error {
	start, end := e.timeScale.FullRange()
	return e.SetTimeVisibleRange(start, end)
}

// ResetTimeVisibleRange restores the full range and the navigation right
// offset, landing on the default home view.
func (e *Engine) ResetTimeVisibleRange() error {
	e.timeScale.ResetVisibleRangeToFull()
	if e.behavior.Navigation.BarSpacingPx != nil {
		step := e.referenceStep()
		spacing := *e.behavior.Navigation.BarSpacingPx
		if err := e.timeScale.SetVisibleRangeFromBarSpacingAndRightOffset(spacing, e.behavior.Navigation.RightOffsetBars, step, float64(e.viewport.Width)); err != nil {
			return err
		}
	}
	e.applyTimeConstraints()
	e.invalidation.Mark(InvalidateTimeScale)
	e.plugins.dispatch(EventTimeRangeChanged)
	return nil
}

// PanStart switches the interaction mode to Panning.
func (e *Engine) PanStart() { e.interactionMode = InteractionPanning }

// PanEnd switches the interaction mode back to Idle.
func (e *Engine) PanEnd() { e.interactionMode = InteractionIdle }

// CurrentInteractionMode returns Idle or Panning.
func (e *Engine) CurrentInteractionMode() InteractionMode { return e.interactionMode }

// StartKineticPan seeds an inertial pan with a starting velocity in time
// units per second.
func (e *Engine) StartKineticPan(v0TimePerSec float64) error {
	if math.IsNaN(v0TimePerSec) || math.IsInf(v0TimePerSec, 0) {
		return fmt.Errorf("engine: kinetic velocity must be finite: %w", core.ErrInvalidData)
	}
	if err := e.behavior.KineticPan.Validate(); err != nil {
		return err
	}
	e.kinetic = kineticState{
		active:          true,
		velocityPerSec:  v0TimePerSec,
		decayPerSecond:  e.behavior.KineticPan.DecayPerSecond,
		stopVelocityAbs: e.behavior.KineticPan.StopVelocityAbs,
	}
	return nil
}

// StepKineticPan advances the inertial pan by dt seconds. Velocity decays
// multiplicatively and the pan deactivates below the stop threshold.
// Reports whether the pan is still active.
func (e *Engine) StepKineticPan(dtSec float64) (bool, error) {
	if math.IsNaN(dtSec) || math.IsInf(dtSec, 0) || dtSec <= 0 {
		return e.kinetic.active, fmt.Errorf("engine: kinetic step dt %v must be positive: %w", dtSec, core.ErrInvalidData)
	}
	if !e.kinetic.active {
		return false, nil
	}
	if err := e.timeScale.PanVisibleBy(e.kinetic.velocityPerSec * dtSec); err != nil {
		return true, err
	}
	e.timeScale.ClampVisibleToFullEdges(e.behavior.Edge.FixLeftEdge, e.behavior.Edge.FixRightEdge)
	e.invalidation.Mark(InvalidateTimeScale)
	e.kinetic.velocityPerSec *= math.Pow(e.kinetic.decayPerSecond, dtSec)
	if math.Abs(e.kinetic.velocityPerSec) < e.kinetic.stopVelocityAbs {
		e.kinetic.active = false
	}
	e.plugins.dispatch(EventTimeRangeChanged)
	return e.kinetic.active, nil
}

// StopKineticPan deactivates any inertial pan.
func (e *Engine) StopKineticPan() { e.kinetic.active = false }

// KineticPanActive reports whether an inertial pan is running.
func (e *Engine) KineticPanActive() bool { return e.kinetic.active }
