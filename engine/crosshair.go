package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/core"
)

// CrosshairMode selects how the crosshair tracks the pointer.
type CrosshairMode int

const (
	// CrosshairHidden suppresses the crosshair entirely.
	CrosshairHidden CrosshairMode = iota
	// CrosshairNormal follows the raw pointer.
	CrosshairNormal
	// CrosshairMagnet snaps to the nearest sample.
	CrosshairMagnet
)

// String returns the mode name.
func (m CrosshairMode) String() string {
	switch m {
	case CrosshairHidden:
		return "hidden"
	case CrosshairNormal:
		return "normal"
	default:
		return "magnet"
	}
}

// CrosshairLabelSourceMode tags where crosshair label values came from.
type CrosshairLabelSourceMode int

const (
	// SourceSnappedData reports values from a magnet-snapped sample.
	SourceSnappedData CrosshairLabelSourceMode = iota
	// SourcePointerProjected reports raw pointer projections.
	SourcePointerProjected
)

// CrosshairState is the full crosshair observation a host reads back.
// Snapped fields are nil unless Magnet mode found a sample.
type CrosshairState struct {
	Mode    CrosshairMode
	Visible bool

	PointerX float64
	PointerY float64

	SnappedX     *float64
	SnappedY     *float64
	SnappedTime  *float64
	SnappedPrice *float64

	// PointerTime and PointerPrice are the raw projections, present
	// whenever the crosshair is visible.
	PointerTime  *float64
	PointerPrice *float64

	SourceMode CrosshairLabelSourceMode
}

// SetCrosshairMode switches the snap mode, re-evaluating the snap when a
// pointer is present.
func (e *Engine) SetCrosshairMode(mode CrosshairMode) {
	e.crosshair.Mode = mode
	if e.crosshair.Visible {
		e.recomputeSnap()
	} else {
		e.clearSnap()
	}
	e.invalidation.Mark(InvalidateCrosshair)
}

// PointerMove updates the crosshair position and snap from a pointer
// event in pixel coordinates.
func (e *Engine) PointerMove(px, py float64) error {
	if math.IsNaN(px) || math.IsInf(px, 0) || math.IsNaN(py) || math.IsInf(py, 0) {
		return fmt.Errorf("engine: pointer position must be finite: %w", core.ErrInvalidData)
	}
	e.crosshair.PointerX = px
	e.crosshair.PointerY = py
	e.crosshair.Visible = e.crosshair.Mode != CrosshairHidden
	e.recomputeSnap()
	e.invalidation.Mark(InvalidateCrosshair)
	e.plugins.dispatch(EventCrosshairMoved)
	return nil
}

// PointerLeave hides the crosshair and clears every derived field.
func (e *Engine) PointerLeave() {
	e.crosshair.Visible = false
	e.clearSnap()
	e.crosshair.PointerTime = nil
	e.crosshair.PointerPrice = nil
	e.invalidation.Mark(InvalidateCrosshair)
	e.plugins.dispatch(EventCrosshairMoved)
}

// Crosshair returns the current crosshair observation.
func (e *Engine) Crosshair() CrosshairState { return e.crosshair }

func (e *Engine) clearSnap() {
	e.crosshair.SnappedX = nil
	e.crosshair.SnappedY = nil
	e.crosshair.SnappedTime = nil
	e.crosshair.SnappedPrice = nil
}

// recomputeSnap projects the pointer and, in Magnet mode, snaps to the
// sample with the minimum time distance; ties pick the later time.
func (e *Engine) recomputeSnap() {
	e.clearSnap()
	if !e.crosshair.Visible {
		return
	}
	if tm, err := e.PixelToX(e.crosshair.PointerX); err == nil {
		v := tm
		e.crosshair.PointerTime = &v
	}
	if price, err := e.PixelToPrice(e.crosshair.PointerY); err == nil {
		v := price
		e.crosshair.PointerPrice = &v
	}
	e.crosshair.SourceMode = SourcePointerProjected
	if e.crosshair.Mode != CrosshairMagnet || e.crosshair.PointerTime == nil {
		return
	}

	pointerTime := *e.crosshair.PointerTime
	start, end := e.timeScale.VisibleRange()
	tolerance := (end - start) * DefaultSnapToleranceRatio
	start -= tolerance
	end += tolerance

	bestTime, bestValue := 0.0, 0.0
	bestDist := math.Inf(1)
	found := false
	consider := func(tm, value float64) {
		if tm < start || tm > end {
			return
		}
		d := math.Abs(tm - pointerTime)
		if d < bestDist || (d == bestDist && tm > bestTime) {
			bestTime, bestValue, bestDist = tm, value, d
			found = true
		}
	}
	for _, p := range e.points {
		consider(p.Time, p.Value)
	}
	for _, b := range e.candles {
		consider(b.Time, b.Close)
	}
	if !found {
		return
	}
	x, errX := e.MapX(bestTime)
	y, errY := e.PriceToPixel(bestValue)
	if errX != nil || errY != nil {
		return
	}
	e.crosshair.SnappedX = &x
	e.crosshair.SnappedY = &y
	t, v := bestTime, bestValue
	e.crosshair.SnappedTime = &t
	e.crosshair.SnappedPrice = &v
	e.crosshair.SourceMode = SourceSnappedData
}
