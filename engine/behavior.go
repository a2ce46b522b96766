package engine

import (
	"fmt"
	"math"

	"github.com/quantatlas/chartengine/axis"
	"github.com/quantatlas/chartengine/core"
)

// Default behavior constants. Each matches the zero-configuration chart a
// host gets from New without touching behavior setters.
const (
	DefaultRightOffsetBars        = 0.0
	DefaultBarSpacingPx           = 6.0
	DefaultMinBarSpacingPx        = 0.5
	DefaultWheelPanRatio          = 1.0
	DefaultWheelZoomStepRatio     = 0.2
	DefaultAxisDragStepRatio      = 0.2
	DefaultMinTimeSpanAbs         = 1e-6
	DefaultMinPriceSpanAbs        = 1e-9
	DefaultAppendToleranceBars    = 0.75
	DefaultKineticDecayPerSecond  = 0.2
	DefaultKineticStopVelocityAbs = 1e-3
	DefaultTopMarginRatio         = 0.2
	DefaultBottomMarginRatio      = 0.1
	DefaultSnapToleranceRatio     = 1e-9
)

// EdgeBehavior clamps visible-range mutations against the full data range.
type EdgeBehavior struct {
	FixLeftEdge  bool
	FixRightEdge bool
}

// NavigationBehavior holds the preferred right offset and bar spacing used
// to derive the time-index coordinate space.
type NavigationBehavior struct {
	RightOffsetBars float64
	// BarSpacingPx, when set, pins the spacing; when nil the spacing
	// derives from the visible span.
	BarSpacingPx *float64
	// RightOffsetPx, when set, overrides RightOffsetBars. Must be
	// finite and non-negative.
	RightOffsetPx *float64
}

// DefaultNavigationBehavior returns the zero-offset, 6px-spacing default.
func DefaultNavigationBehavior() NavigationBehavior {
	spacing := DefaultBarSpacingPx
	return NavigationBehavior{RightOffsetBars: DefaultRightOffsetBars, BarSpacingPx: &spacing}
}

// ZoomLimitBehavior bounds bar spacing during zoom.
type ZoomLimitBehavior struct {
	MinBarSpacingPx float64
	// MaxBarSpacingPx, when set, must be ≥ MinBarSpacingPx.
	MaxBarSpacingPx *float64
}

// DefaultZoomLimitBehavior returns the 0.5px minimum with no maximum.
func DefaultZoomLimitBehavior() ZoomLimitBehavior {
	return ZoomLimitBehavior{MinBarSpacingPx: DefaultMinBarSpacingPx}
}

// Validate rejects non-positive minimums and inverted bounds.
func (b ZoomLimitBehavior) Validate() error {
	if math.IsNaN(b.MinBarSpacingPx) || math.IsInf(b.MinBarSpacingPx, 0) || b.MinBarSpacingPx <= 0 {
		return fmt.Errorf("engine: min bar spacing %v must be positive and finite: %w", b.MinBarSpacingPx, core.ErrInvalidData)
	}
	if b.MaxBarSpacingPx != nil {
		max := *b.MaxBarSpacingPx
		if math.IsNaN(max) || math.IsInf(max, 0) || max < b.MinBarSpacingPx {
			return fmt.Errorf("engine: max bar spacing %v must be finite and >= min %v: %w", max, b.MinBarSpacingPx, core.ErrInvalidData)
		}
	}
	return nil
}

// ScrollZoomBehavior pins the right bar during wheel zoom when set.
type ScrollZoomBehavior struct {
	RightBarStaysOnScroll bool
}

// ResizeAnchor names the edge preserved on viewport width change.
type ResizeAnchor int

const (
	ResizeAnchorLeft ResizeAnchor = iota
	ResizeAnchorCenter
	ResizeAnchorRight
)

// ResizeBehavior controls visible-range preservation across resizes.
type ResizeBehavior struct {
	LockVisibleRangeOnResize bool
	Anchor                   ResizeAnchor
}

// DefaultResizeBehavior anchors right without locking.
func DefaultResizeBehavior() ResizeBehavior {
	return ResizeBehavior{LockVisibleRangeOnResize: false, Anchor: ResizeAnchorRight}
}

// RealtimeAppendBehavior controls tail-follow when new rightmost samples
// arrive.
type RealtimeAppendBehavior struct {
	PreserveRightEdgeOnAppend bool
	RightEdgeToleranceBars    float64
}

// DefaultRealtimeAppendBehavior follows the tail with a 0.75-bar tolerance.
func DefaultRealtimeAppendBehavior() RealtimeAppendBehavior {
	return RealtimeAppendBehavior{PreserveRightEdgeOnAppend: true, RightEdgeToleranceBars: DefaultAppendToleranceBars}
}

// Validate rejects negative or non-finite tolerances.
func (b RealtimeAppendBehavior) Validate() error {
	if math.IsNaN(b.RightEdgeToleranceBars) || math.IsInf(b.RightEdgeToleranceBars, 0) || b.RightEdgeToleranceBars < 0 {
		return fmt.Errorf("engine: append tolerance %v must be finite and >= 0: %w", b.RightEdgeToleranceBars, core.ErrInvalidData)
	}
	return nil
}

// PriceScaleRealtimeBehavior selects which data events trigger autoscale.
type PriceScaleRealtimeBehavior struct {
	AutoscaleOnDataSet         bool
	AutoscaleOnDataUpdate      bool
	AutoscaleOnTimeRangeChange bool
}

// DefaultPriceScaleRealtimeBehavior enables every trigger.
func DefaultPriceScaleRealtimeBehavior() PriceScaleRealtimeBehavior {
	return PriceScaleRealtimeBehavior{
		AutoscaleOnDataSet:         true,
		AutoscaleOnDataUpdate:      true,
		AutoscaleOnTimeRangeChange: true,
	}
}

// TransformedBaseSource names the dynamic base price for Percentage and
// IndexedTo100 display.
type TransformedBaseSource int

const (
	BaseSourceDomainStart TransformedBaseSource = iota
	BaseSourceFirstData
	BaseSourceLastData
	BaseSourceFirstVisibleData
	BaseSourceLastVisibleData
)

// TransformedBaseBehavior resolves the base price for transformed modes.
// An explicit base wins over the dynamic source.
type TransformedBaseBehavior struct {
	ExplicitBasePrice *float64
	DynamicSource     TransformedBaseSource
}

// InteractionInputBehavior gates every interaction path. Master gates
// cascade over the per-path flags; a closed gate makes the path return its
// identity result without validating inputs.
type InteractionInputBehavior struct {
	HandleScroll bool
	HandleScale  bool

	ScrollMouseWheel       bool
	ScrollPressedMouseMove bool
	ScrollHorzTouchDrag    bool
	ScrollVertTouchDrag    bool

	ScaleMouseWheel          bool
	ScalePinch               bool
	ScaleAxisPressedMouse    bool
	ScaleAxisDoubleClickGate bool
}

// DefaultInteractionInputBehavior opens every gate.
func DefaultInteractionInputBehavior() InteractionInputBehavior {
	return InteractionInputBehavior{
		HandleScroll:             true,
		HandleScale:              true,
		ScrollMouseWheel:         true,
		ScrollPressedMouseMove:   true,
		ScrollHorzTouchDrag:      true,
		ScrollVertTouchDrag:      true,
		ScaleMouseWheel:          true,
		ScalePinch:               true,
		ScaleAxisPressedMouse:    true,
		ScaleAxisDoubleClickGate: true,
	}
}

// AllowsWheelPan reports whether wheel panning may run.
func (b InteractionInputBehavior) AllowsWheelPan() bool {
	return b.HandleScroll && b.ScrollMouseWheel
}

// AllowsPressedMovePan reports whether drag panning may run.
func (b InteractionInputBehavior) AllowsPressedMovePan() bool {
	return b.HandleScroll && b.ScrollPressedMouseMove
}

// AllowsTouchDragPan reports whether touch panning may run on the given
// axis orientation.
func (b InteractionInputBehavior) AllowsTouchDragPan(horizontal bool) bool {
	if !b.HandleScroll {
		return false
	}
	if horizontal {
		return b.ScrollHorzTouchDrag
	}
	return b.ScrollVertTouchDrag
}

// AllowsWheelZoom reports whether wheel zoom may run.
func (b InteractionInputBehavior) AllowsWheelZoom() bool {
	return b.HandleScale && b.ScaleMouseWheel
}

// AllowsPinchZoom reports whether pinch zoom may run.
func (b InteractionInputBehavior) AllowsPinchZoom() bool {
	return b.HandleScale && b.ScalePinch
}

// AllowsAxisDragScale reports whether axis-drag scaling may run.
func (b InteractionInputBehavior) AllowsAxisDragScale() bool {
	return b.HandleScale && b.ScaleAxisPressedMouse
}

// AllowsAxisDoubleClickReset reports whether axis double-click reset may
// run.
func (b InteractionInputBehavior) AllowsAxisDoubleClickReset() bool {
	return b.HandleScale && b.ScaleAxisDoubleClickGate
}

// KineticPanBehavior configures host-stepped inertial panning.
type KineticPanBehavior struct {
	DecayPerSecond  float64
	StopVelocityAbs float64
}

// DefaultKineticPanBehavior returns a gentle decay that stops near rest.
func DefaultKineticPanBehavior() KineticPanBehavior {
	return KineticPanBehavior{DecayPerSecond: DefaultKineticDecayPerSecond, StopVelocityAbs: DefaultKineticStopVelocityAbs}
}

// Validate rejects decay outside (0, 1) and negative stop velocity.
func (b KineticPanBehavior) Validate() error {
	if math.IsNaN(b.DecayPerSecond) || b.DecayPerSecond <= 0 || b.DecayPerSecond >= 1 {
		return fmt.Errorf("engine: kinetic decay %v outside (0, 1): %w", b.DecayPerSecond, core.ErrInvalidData)
	}
	if math.IsNaN(b.StopVelocityAbs) || math.IsInf(b.StopVelocityAbs, 0) || b.StopVelocityAbs < 0 {
		return fmt.Errorf("engine: kinetic stop velocity %v must be finite and >= 0: %w", b.StopVelocityAbs, core.ErrInvalidData)
	}
	return nil
}

// LastPriceSourceMode picks which sample supplies the last-price marker.
type LastPriceSourceMode int

const (
	LastPriceLatestData LastPriceSourceMode = iota
	LastPriceLatestVisible
)

// LastPriceBehavior configures the last-price line and label.
type LastPriceBehavior struct {
	ShowLine      bool
	ShowLabel     bool
	UseTrendColor bool
	SourceMode    LastPriceSourceMode
}

// DefaultLastPriceBehavior shows line and label colored by trend.
func DefaultLastPriceBehavior() LastPriceBehavior {
	return LastPriceBehavior{ShowLine: true, ShowLabel: true, UseTrendColor: true, SourceMode: LastPriceLatestData}
}

// CrosshairGuideLineBehavior toggles the crosshair guide lines.
type CrosshairGuideLineBehavior struct {
	ShowLines          bool
	ShowHorizontalLine bool
	ShowVerticalLine   bool
}

// DefaultCrosshairGuideLineBehavior shows both guides.
func DefaultCrosshairGuideLineBehavior() CrosshairGuideLineBehavior {
	return CrosshairGuideLineBehavior{ShowLines: true, ShowHorizontalLine: true, ShowVerticalLine: true}
}

// CrosshairAxisLabelVisibilityBehavior toggles crosshair axis label boxes.
type CrosshairAxisLabelVisibilityBehavior struct {
	ShowTimeLabel   bool
	ShowPriceLabel  bool
	ShowTimeBox     bool
	ShowPriceBox    bool
	ShowTimeBorder  bool
	ShowPriceBorder bool
}

// DefaultCrosshairAxisLabelVisibilityBehavior shows everything.
func DefaultCrosshairAxisLabelVisibilityBehavior() CrosshairAxisLabelVisibilityBehavior {
	return CrosshairAxisLabelVisibilityBehavior{
		ShowTimeLabel: true, ShowPriceLabel: true,
		ShowTimeBox: true, ShowPriceBox: true,
		ShowTimeBorder: true, ShowPriceBorder: true,
	}
}

// BehaviorState bundles every behavior record the engine consults.
type BehaviorState struct {
	Edge             EdgeBehavior
	Navigation       NavigationBehavior
	ZoomLimit        ZoomLimitBehavior
	ScrollZoom       ScrollZoomBehavior
	Resize           ResizeBehavior
	RealtimeAppend   RealtimeAppendBehavior
	PriceRealtime    PriceScaleRealtimeBehavior
	TransformedBase  TransformedBaseBehavior
	InteractionInput InteractionInputBehavior
	KineticPan       KineticPanBehavior
	LastPrice        LastPriceBehavior
	CrosshairGuides  CrosshairGuideLineBehavior
	CrosshairLabels  CrosshairAxisLabelVisibilityBehavior
	TimeAxisLabels   axis.TimeLabelConfig
	PriceAxisLabels  axis.PriceLabelConfig
}

// DefaultBehaviorState returns the full default bundle.
func DefaultBehaviorState() BehaviorState {
	return BehaviorState{
		Navigation:       DefaultNavigationBehavior(),
		ZoomLimit:        DefaultZoomLimitBehavior(),
		Resize:           DefaultResizeBehavior(),
		RealtimeAppend:   DefaultRealtimeAppendBehavior(),
		PriceRealtime:    DefaultPriceScaleRealtimeBehavior(),
		InteractionInput: DefaultInteractionInputBehavior(),
		KineticPan:       DefaultKineticPanBehavior(),
		LastPrice:        DefaultLastPriceBehavior(),
		CrosshairGuides:  DefaultCrosshairGuideLineBehavior(),
		CrosshairLabels:  DefaultCrosshairAxisLabelVisibilityBehavior(),
		TimeAxisLabels: axis.TimeLabelConfig{
			Policy: axis.TimeLabelPolicy{Kind: axis.TimeLabelUTCAdaptive},
		},
		PriceAxisLabels: axis.PriceLabelConfig{
			Policy: axis.PriceLabelPolicy{Kind: axis.PriceLabelAdaptive},
		},
	}
}
