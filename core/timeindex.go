package core

import (
	"fmt"
	"math"
)

// TimeIndexCoordinateSpace maps a continuous logical bar index onto pixel x
// using the lightweight-chart convention: bars are counted from BaseIndex,
// the newest bar sits RightOffsetBars left of the right viewport edge, and
// one bar occupies BarSpacingPx pixels.
//
// The forward map centers bars (half-bar shift); the inverse does not. This
// asymmetry is deliberate: round-tripping a pixel through IndexToCoordinate
// then CoordinateToLogicalIndex recovers i − 0.5.
type TimeIndexCoordinateSpace struct {
	BaseIndex       float64
	RightOffsetBars float64
	BarSpacingPx    float64
	WidthPx         float64
}

// NewTimeIndexCoordinateSpace validates spacing and width positivity.
func NewTimeIndexCoordinateSpace(baseIndex, rightOffsetBars, barSpacingPx, widthPx float64) (TimeIndexCoordinateSpace, error) {
	if !isFinite(baseIndex) || !isFinite(rightOffsetBars) {
		return TimeIndexCoordinateSpace{}, fmt.Errorf("core: time-index space indices must be finite: %w", ErrInvalidData)
	}
	if !isFinite(barSpacingPx) || barSpacingPx <= 0 {
		return TimeIndexCoordinateSpace{}, fmt.Errorf("core: bar spacing %v must be finite and > 0: %w", barSpacingPx, ErrInvalidData)
	}
	if !isFinite(widthPx) || widthPx <= 0 {
		return TimeIndexCoordinateSpace{}, fmt.Errorf("core: width %v must be finite and > 0: %w", widthPx, ErrInvalidData)
	}
	return TimeIndexCoordinateSpace{
		BaseIndex:       baseIndex,
		RightOffsetBars: rightOffsetBars,
		BarSpacingPx:    barSpacingPx,
		WidthPx:         widthPx,
	}, nil
}

// IndexToCoordinate maps logical index i to the pixel x of the bar center:
//
//	x = W − (B + R − i + 0.5) × S − 1
func (sp TimeIndexCoordinateSpace) IndexToCoordinate(i float64) float64 {
	return sp.WidthPx - (sp.BaseIndex+sp.RightOffsetBars-i+0.5)*sp.BarSpacingPx - 1
}

// CoordinateToLogicalIndex maps pixel x to a continuous logical index:
//
//	i = B + R − (W − 1 − x) / S
//
// rounded to six decimal places to absorb floating-point drift.
func (sp TimeIndexCoordinateSpace) CoordinateToLogicalIndex(x float64) float64 {
	raw := sp.BaseIndex + sp.RightOffsetBars - (sp.WidthPx-1-x)/sp.BarSpacingPx
	return math.Round(raw*1e6) / 1e6
}

// CoordinateToIndexCeil maps pixel x to the discrete bar index at or after x.
func (sp TimeIndexCoordinateSpace) CoordinateToIndexCeil(x float64) float64 {
	return math.Ceil(sp.CoordinateToLogicalIndex(x))
}

// PanRightOffsetByPixels returns the right offset after panning by dx pixels.
func (sp TimeIndexCoordinateSpace) PanRightOffsetByPixels(dx float64) float64 {
	return sp.RightOffsetBars + dx/sp.BarSpacingPx
}

// SolveRightOffsetForAnchorPreservingZoom returns the right offset R' under
// the receiver's bar spacing that keeps anchorIndex at the same pixel it
// occupied under (oldSpacing, oldRightOffset). Closed form:
//
//	R' = (B + oldR − a + 0.5) × oldS / S − B + a − 0.5
func (sp TimeIndexCoordinateSpace) SolveRightOffsetForAnchorPreservingZoom(oldSpacing, oldRightOffset, anchorIndex float64) (float64, error) {
	if !isFinite(oldSpacing) || oldSpacing <= 0 {
		return 0, fmt.Errorf("core: previous bar spacing must be finite and > 0: %w", ErrInvalidData)
	}
	if !isFinite(oldRightOffset) || !isFinite(anchorIndex) {
		return 0, fmt.Errorf("core: anchor solve inputs must be finite: %w", ErrInvalidData)
	}
	solved := (sp.BaseIndex+oldRightOffset-anchorIndex+0.5)*oldSpacing/sp.BarSpacingPx - sp.BaseIndex + anchorIndex - 0.5
	if !isFinite(solved) {
		return 0, fmt.Errorf("core: anchor-preserving right offset is not finite: %w", ErrInvalidData)
	}
	return solved, nil
}
