package engine

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/quantatlas/chartengine/axis"
	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/render"
)

// StyledCandle pairs one OHLC bar with an optional per-bar style override.
type StyledCandle struct {
	Bar   core.OhlcBar
	Style *CandleStyleOverride
}

// CandleStyleOverride replaces the palette for a single candle.
type CandleStyleOverride struct {
	BodyColor   *render.Color
	WickColor   *render.Color
	BorderColor *render.Color
}

// TimeLabelFormatter renders a time value into a label string.
type TimeLabelFormatter func(logicalTime float64) string

// PriceLabelFormatter renders a display-mapped price into a label string.
type PriceLabelFormatter func(value float64) string

type formatterSlot struct {
	timeFormatter  TimeLabelFormatter
	priceFormatter PriceLabelFormatter
	generation     uint64
}

type kineticState struct {
	active          bool
	velocityPerSec  float64
	decayPerSecond  float64
	stopVelocityAbs float64
}

// InteractionMode is Idle or Panning.
type InteractionMode int

const (
	InteractionIdle InteractionMode = iota
	InteractionPanning
)

// Engine is the chart aggregate. It owns series data, scales, panes,
// behavior, presentation, and the renderer facade. All methods must be
// called from one goroutine.
type Engine struct {
	viewport   core.Viewport
	timeScale  core.TimeScale
	priceScale core.PriceScale

	points         []core.DataPoint
	candles        []core.OhlcBar
	candleStyles   map[float64]CandleStyleOverride
	panes          core.PaneCollection
	pointsPaneID   core.PaneID
	candlesPaneID  core.PaneID

	behavior BehaviorState
	style    RenderStyle

	crosshair       CrosshairState
	interactionMode InteractionMode
	kinetic         kineticState

	timeAxisCache       *axis.TimeLabelCache
	priceAxisCache      *axis.PriceLabelCache
	crosshairTimeCache  *axis.TimeLabelCache
	crosshairPriceCache *axis.PriceLabelCache

	axisFormatters      formatterSlot
	crosshairFormatters formatterSlot
	crosshairSourceMode CrosshairLabelSourceMode

	plugins      pluginRegistry
	invalidation InvalidationMask

	// adaptivePriceAxisWidthPx only grows; see buildFrame.
	adaptivePriceAxisWidthPx float64

	logger *log.Logger
}

// New builds an engine from a validated configuration. Logging is off by
// default; see SetLogger.
func New(cfg ChartConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	viewport, err := core.NewViewport(cfg.Viewport.Width, cfg.Viewport.Height)
	if err != nil {
		return nil, err
	}
	timeScale, err := core.NewTimeScale(cfg.TimeStart, cfg.TimeEnd)
	if err != nil {
		return nil, err
	}
	mode, err := parsePriceScaleMode(cfg.PriceScaleMode)
	if err != nil {
		return nil, err
	}
	behavior := cfg.behaviorState()
	priceScale, err := core.NewPriceScaleWithModeAndBase(cfg.PriceMin, cfg.PriceMax, mode, behavior.TransformedBase.ExplicitBasePrice)
	if err != nil {
		return nil, err
	}
	top, bottom := DefaultTopMarginRatio, DefaultBottomMarginRatio
	if cfg.PriceScaleMargins != nil {
		top, bottom = cfg.PriceScaleMargins.TopMarginRatio, cfg.PriceScaleMargins.BottomMarginRatio
	}
	priceScale, err = priceScale.WithMargins(top, bottom)
	if err != nil {
		return nil, err
	}
	priceScale = priceScale.WithInverted(cfg.PriceScaleInverted)

	crosshairMode, err := parseCrosshairMode(cfg.CrosshairMode)
	if err != nil {
		return nil, err
	}
	behavior.PriceAxisLabels.Mode = displayModeFor(mode, behavior.TransformedBase.ExplicitBasePrice)

	e := &Engine{
		viewport:   viewport,
		timeScale:  timeScale,
		priceScale: priceScale,

		candleStyles:  make(map[float64]CandleStyleOverride),
		panes:         core.NewPaneCollection(),
		pointsPaneID:  core.MainPaneID,
		candlesPaneID: core.MainPaneID,

		behavior: behavior,
		style:    cfg.renderStyle(),

		crosshair: CrosshairState{Mode: crosshairMode},

		timeAxisCache:       axis.NewTimeLabelCache(),
		priceAxisCache:      axis.NewPriceLabelCache(),
		crosshairTimeCache:  axis.NewTimeLabelCache(),
		crosshairPriceCache: axis.NewPriceLabelCache(),

		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	e.adaptivePriceAxisWidthPx = e.style.PriceAxisWidthPx
	return e, nil
}

func displayModeFor(mode core.PriceScaleMode, base *float64) axis.PriceDisplayMode {
	switch mode {
	case core.PriceScalePercentage:
		return axis.PriceDisplayMode{Kind: axis.PriceDisplayPercentage, BasePrice: base}
	case core.PriceScaleIndexedTo100:
		return axis.PriceDisplayMode{Kind: axis.PriceDisplayIndexedTo100, BasePrice: base}
	default:
		return axis.PriceDisplayMode{Kind: axis.PriceDisplayNormal}
	}
}

// SetLogger replaces the engine logger. A nil logger restores the silent
// default.
func (e *Engine) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	e.logger = logger
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() core.Viewport { return e.viewport }

// TimeVisibleRange returns the visible (start, end).
func (e *Engine) TimeVisibleRange() (float64, float64) { return e.timeScale.VisibleRange() }

// TimeFullRange returns the full (start, end).
func (e *Engine) TimeFullRange() (float64, float64) { return e.timeScale.FullRange() }

// PriceDomain returns the price (min, max).
func (e *Engine) PriceDomain() (float64, float64) { return e.priceScale.Domain() }

// Behavior returns a copy of the current behavior bundle.
func (e *Engine) Behavior() BehaviorState { return e.behavior }

// Style returns a copy of the current render style.
func (e *Engine) Style() RenderStyle { return e.style }

// Points returns the canonical point series (shared slice; do not mutate).
func (e *Engine) Points() []core.DataPoint { return e.points }

// Candles returns the canonical OHLC series (shared slice; do not mutate).
func (e *Engine) Candles() []core.OhlcBar { return e.candles }

// Invalidation returns the accumulated mask since the last clear.
func (e *Engine) Invalidation() InvalidationMask { return e.invalidation }

// ClearInvalidation resets the mask.
func (e *Engine) ClearInvalidation() { e.invalidation.Clear() }

// PriceAxisWidthPx reports the reserved price-axis strip width. The strip
// grows when labels outgrow it and never shrinks back.
func (e *Engine) PriceAxisWidthPx() float64 { return e.adaptivePriceAxisWidthPx }

// SetBehavior replaces the behavior bundle after validating it.
func (e *Engine) SetBehavior(b BehaviorState) error {
	if err := b.ZoomLimit.Validate(); err != nil {
		return err
	}
	if err := b.RealtimeAppend.Validate(); err != nil {
		return err
	}
	if err := b.KineticPan.Validate(); err != nil {
		return err
	}
	if b.Navigation.RightOffsetPx != nil {
		px := *b.Navigation.RightOffsetPx
		if math.IsNaN(px) || math.IsInf(px, 0) || px < 0 {
			return fmt.Errorf("engine: right offset px %v must be finite and >= 0: %w", px, core.ErrInvalidData)
		}
	}
	e.behavior = b
	e.invalidation.Mark(InvalidateStyle)
	return nil
}

// SetStyle replaces the render style, flushes the label caches, and
// notifies plugins.
func (e *Engine) SetStyle(style RenderStyle) {
	e.style = style
	if style.PriceAxisWidthPx > e.adaptivePriceAxisWidthPx {
		e.adaptivePriceAxisWidthPx = style.PriceAxisWidthPx
	}
	e.flushLabelCaches()
	e.invalidation.Mark(InvalidateStyle)
	e.plugins.dispatch(EventStyleChanged)
}

func (e *Engine) flushLabelCaches() {
	e.timeAxisCache.Clear()
	e.priceAxisCache.Clear()
	e.crosshairTimeCache.Clear()
	e.crosshairPriceCache.Clear()
}

// SetAxisTimeFormatter installs a custom time-axis formatter; nil removes
// it. Either way the formatter generation advances so stale cache entries
// become unreachable.
func (e *Engine) SetAxisTimeFormatter(f TimeLabelFormatter) {
	e.axisFormatters.timeFormatter = f
	e.axisFormatters.generation++
}

// SetAxisPriceFormatter installs a custom price-axis formatter; nil
// removes it.
func (e *Engine) SetAxisPriceFormatter(f PriceLabelFormatter) {
	e.axisFormatters.priceFormatter = f
	e.axisFormatters.generation++
}

// SetCrosshairTimeFormatter installs a custom crosshair time formatter;
// nil removes it.
func (e *Engine) SetCrosshairTimeFormatter(f TimeLabelFormatter) {
	e.crosshairFormatters.timeFormatter = f
	e.crosshairFormatters.generation++
}

// SetCrosshairPriceFormatter installs a custom crosshair price formatter;
// nil removes it.
func (e *Engine) SetCrosshairPriceFormatter(f PriceLabelFormatter) {
	e.crosshairFormatters.priceFormatter = f
	e.crosshairFormatters.generation++
}

// TimeAxisCacheStats exposes the time-axis label cache counters.
func (e *Engine) TimeAxisCacheStats() axis.CacheStats { return e.timeAxisCache.Stats() }

// PriceAxisCacheStats exposes the price-axis label cache counters.
func (e *Engine) PriceAxisCacheStats() axis.CacheStats { return e.priceAxisCache.Stats() }

// RegisterPlugin adds an observer under a unique id.
func (e *Engine) RegisterPlugin(id string, plugin Plugin) error {
	if err := e.plugins.register(id, plugin); err != nil {
		return err
	}
	e.logger.Debug("plugin registered", "id", id)
	return nil
}

// UnregisterPlugin removes the observer; reports whether it existed.
func (e *Engine) UnregisterPlugin(id string) bool { return e.plugins.unregister(id) }

// HasPlugin reports whether an observer is registered under id.
func (e *Engine) HasPlugin(id string) bool { return e.plugins.has(id) }

// PluginCount returns the number of registered observers.
func (e *Engine) PluginCount() int { return len(e.plugins.entries) }

// referenceStep estimates the bar step as the median positive delta of the
// combined sample times; 1 when fewer than two samples exist.
func (e *Engine) referenceStep() float64 {
	times := make([]float64, 0, len(e.points)+len(e.candles))
	for _, p := range e.points {
		times = append(times, p.Time)
	}
	for _, b := range e.candles {
		times = append(times, b.Time)
	}
	if len(times) < 2 {
		return 1
	}
	sort.Float64s(times)
	deltas := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d > 0 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return 1
	}
	sort.Float64s(deltas)
	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		return deltas[mid]
	}
	return (deltas[mid-1] + deltas[mid]) / 2
}

// firstSampleTime returns the earliest time across both series.
func (e *Engine) firstSampleTime() (float64, bool) {
	have := false
	first := math.Inf(1)
	if len(e.points) > 0 {
		first = e.points[0].Time
		have = true
	}
	if len(e.candles) > 0 && (!have || e.candles[0].Time < first) {
		first = e.candles[0].Time
		have = true
	}
	return first, have
}

// lastSampleTime returns the latest time across both series.
func (e *Engine) lastSampleTime() (float64, bool) {
	have := false
	last := math.Inf(-1)
	if len(e.points) > 0 {
		last = e.points[len(e.points)-1].Time
		have = true
	}
	if len(e.candles) > 0 && (!have || e.candles[len(e.candles)-1].Time > last) {
		last = e.candles[len(e.candles)-1].Time
		have = true
	}
	return last, have
}

// timeIndexSpace derives the bar-indexed coordinate space from the current
// visible range, viewport, and navigation behavior. Base index 0 sits at
// the first sample; without data the full-range start anchors index 0.
func (e *Engine) timeIndexSpace() (core.TimeIndexCoordinateSpace, float64, error) {
	step := e.referenceStep()
	width := float64(e.viewport.Width)
	spacing, rightOffset, err := e.timeScale.DeriveVisibleBarSpacingAndRightOffset(step, width)
	if err != nil {
		return core.TimeIndexCoordinateSpace{}, 0, err
	}
	origin, ok := e.firstSampleTime()
	if !ok {
		origin, _ = e.timeScale.FullRange()
	}
	_, full := e.timeScale.FullRange()
	base := (full - origin) / step
	space, err := core.NewTimeIndexCoordinateSpace(base, rightOffset, spacing, width)
	if err != nil {
		return core.TimeIndexCoordinateSpace{}, 0, err
	}
	return space, step, nil
}

// timeToLogicalIndex converts a time into a continuous logical index.
func (e *Engine) timeToLogicalIndex(tm, step float64) float64 {
	origin, ok := e.firstSampleTime()
	if !ok {
		origin, _ = e.timeScale.FullRange()
	}
	return (tm - origin) / step
}

// logicalIndexToTime is the inverse of timeToLogicalIndex.
func (e *Engine) logicalIndexToTime(index, step float64) float64 {
	origin, ok := e.firstSampleTime()
	if !ok {
		origin, _ = e.timeScale.FullRange()
	}
	return origin + index*step
}
