package engine

import (
	"encoding/json"
	"fmt"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/series"
)

// SnapshotSchemaVersion is the JSON contract version this build emits.
const SnapshotSchemaVersion = 1

// RangeSnapshot is a serialized (start, end) pair.
type RangeSnapshot struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ViewportSnapshot mirrors the viewport.
type ViewportSnapshot struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CrosshairSnapshot serializes the crosshair observation.
type CrosshairSnapshot struct {
	Mode         string   `json:"mode"`
	Visible      bool     `json:"visible"`
	PointerX     float64  `json:"pointer_x"`
	PointerY     float64  `json:"pointer_y"`
	SnappedTime  *float64 `json:"snapped_time,omitempty"`
	SnappedPrice *float64 `json:"snapped_price,omitempty"`
	SourceMode   string   `json:"source_mode"`
}

// SeriesMetadataEntry describes one series in a stable order.
type SeriesMetadataEntry struct {
	Name        string  `json:"name"`
	SampleCount int     `json:"sample_count"`
	PaneID      uint32  `json:"pane_id"`
	FirstTime   float64 `json:"first_time,omitempty"`
	LastTime    float64 `json:"last_time,omitempty"`
}

// FormatterSnapshot reports the custom formatter override state.
type FormatterSnapshot struct {
	TimeOverride    string `json:"time_override"`
	PriceOverride   string `json:"price_override"`
	AxisGeneration  uint64 `json:"axis_generation"`
	CrossGeneration uint64 `json:"crosshair_generation"`
}

// EngineSnapshot is the full serializable view of the engine state plus
// projected candle geometry at a requested body width.
type EngineSnapshot struct {
	Viewport         ViewportSnapshot        `json:"viewport"`
	TimeFullRange    RangeSnapshot           `json:"time_full_range"`
	TimeVisibleRange RangeSnapshot           `json:"time_visible_range"`
	PriceDomain      RangeSnapshot           `json:"price_domain"`
	PriceScaleMode   string                  `json:"price_scale_mode"`
	Crosshair        CrosshairSnapshot       `json:"crosshair"`
	Points           []core.DataPoint        `json:"points"`
	CandleGeometry   []series.CandleGeometry `json:"candle_geometry"`
	SeriesMetadata   []SeriesMetadataEntry   `json:"series_metadata"`
	Formatters       FormatterSnapshot       `json:"crosshair_formatter"`
}

type versionedSnapshot struct {
	SchemaVersion int            `json:"schema_version"`
	Snapshot      EngineSnapshot `json:"snapshot"`
}

// Snapshot captures the current engine state. Candle geometry is projected
// with the given body width; a non-positive width fails like any projector.
func (e *Engine) Snapshot(bodyWidthPx float64) (EngineSnapshot, error) {
	geometry, err := e.ProjectCandles(bodyWidthPx)
	if err != nil {
		return EngineSnapshot{}, err
	}
	fullStart, fullEnd := e.timeScale.FullRange()
	visStart, visEnd := e.timeScale.VisibleRange()
	min, max := e.priceScale.Domain()

	snap := EngineSnapshot{
		Viewport:         ViewportSnapshot{Width: e.viewport.Width, Height: e.viewport.Height},
		TimeFullRange:    RangeSnapshot{Start: fullStart, End: fullEnd},
		TimeVisibleRange: RangeSnapshot{Start: visStart, End: visEnd},
		PriceDomain:      RangeSnapshot{Start: min, End: max},
		PriceScaleMode:   e.priceScale.Mode().String(),
		Crosshair: CrosshairSnapshot{
			Mode:         e.crosshair.Mode.String(),
			Visible:      e.crosshair.Visible,
			PointerX:     e.crosshair.PointerX,
			PointerY:     e.crosshair.PointerY,
			SnappedTime:  e.crosshair.SnappedTime,
			SnappedPrice: e.crosshair.SnappedPrice,
			SourceMode:   sourceModeName(e.crosshair.SourceMode),
		},
		Points:         e.points,
		CandleGeometry: geometry,
		Formatters: FormatterSnapshot{
			TimeOverride:    overrideName(e.crosshairFormatters.timeFormatter != nil),
			PriceOverride:   overrideName(e.crosshairFormatters.priceFormatter != nil),
			AxisGeneration:  e.axisFormatters.generation,
			CrossGeneration: e.crosshairFormatters.generation,
		},
	}
	if len(e.points) > 0 {
		snap.SeriesMetadata = append(snap.SeriesMetadata, SeriesMetadataEntry{
			Name:        "points",
			SampleCount: len(e.points),
			PaneID:      uint32(e.pointsPaneID),
			FirstTime:   e.points[0].Time,
			LastTime:    e.points[len(e.points)-1].Time,
		})
	}
	if len(e.candles) > 0 {
		snap.SeriesMetadata = append(snap.SeriesMetadata, SeriesMetadataEntry{
			Name:        "candles",
			SampleCount: len(e.candles),
			PaneID:      uint32(e.candlesPaneID),
			FirstTime:   e.candles[0].Time,
			LastTime:    e.candles[len(e.candles)-1].Time,
		})
	}
	return snap, nil
}

func sourceModeName(m CrosshairLabelSourceMode) string {
	if m == SourceSnappedData {
		return "snapped_data"
	}
	return "pointer_projected"
}

func overrideName(present bool) string {
	if present {
		return "custom"
	}
	return "none"
}

// SnapshotJSONContractV1Pretty serializes the snapshot wrapped in the
// versioned contract envelope, indented for diffing.
func (e *Engine) SnapshotJSONContractV1Pretty(bodyWidthPx float64) (string, error) {
	snap, err := e.Snapshot(bodyWidthPx)
	if err != nil {
		return "", err
	}
	wrapped := versionedSnapshot{SchemaVersion: SnapshotSchemaVersion, Snapshot: snap}
	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		return "", fmt.Errorf("engine: marshal snapshot: %w: %v", core.ErrInvalidData, err)
	}
	return string(data), nil
}

// ParseSnapshotJSON accepts either the bare snapshot object or the
// versioned envelope. A versioned document with the wrong schema_version
// is InvalidData.
func ParseSnapshotJSON(data []byte) (EngineSnapshot, error) {
	var wrapped versionedSnapshot
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.SchemaVersion != 0 {
		if wrapped.SchemaVersion != SnapshotSchemaVersion {
			return EngineSnapshot{}, fmt.Errorf("engine: snapshot schema version %d, want %d: %w", wrapped.SchemaVersion, SnapshotSchemaVersion, core.ErrInvalidData)
		}
		return wrapped.Snapshot, nil
	}
	var bare EngineSnapshot
	if err := json.Unmarshal(data, &bare); err != nil {
		return EngineSnapshot{}, fmt.Errorf("engine: decode snapshot: %w: %v", core.ErrInvalidData, err)
	}
	return bare, nil
}

// CrosshairFormatterDiagnostics reports the cache health of the crosshair
// label formatters.
type CrosshairFormatterDiagnostics struct {
	TimeOverride  string `json:"time_override"`
	PriceOverride string `json:"price_override"`
	Generation    uint64 `json:"generation"`
	TimeCache     struct {
		Hits   uint64 `json:"hits"`
		Misses uint64 `json:"misses"`
		Size   int    `json:"size"`
	} `json:"time_cache"`
	PriceCache struct {
		Hits   uint64 `json:"hits"`
		Misses uint64 `json:"misses"`
		Size   int    `json:"size"`
	} `json:"price_cache"`
}

type versionedDiagnostics struct {
	SchemaVersion int                           `json:"schema_version"`
	Diagnostics   CrosshairFormatterDiagnostics `json:"diagnostics"`
}

// CrosshairFormatterDiagnosticsJSONContractV1Pretty serializes the
// crosshair formatter diagnostics in the versioned envelope.
func (e *Engine) CrosshairFormatterDiagnosticsJSONContractV1Pretty() (string, error) {
	var diag CrosshairFormatterDiagnostics
	diag.TimeOverride = overrideName(e.crosshairFormatters.timeFormatter != nil)
	diag.PriceOverride = overrideName(e.crosshairFormatters.priceFormatter != nil)
	diag.Generation = e.crosshairFormatters.generation
	timeStats := e.crosshairTimeCache.Stats()
	diag.TimeCache.Hits = timeStats.Hits
	diag.TimeCache.Misses = timeStats.Misses
	diag.TimeCache.Size = timeStats.Size
	priceStats := e.crosshairPriceCache.Stats()
	diag.PriceCache.Hits = priceStats.Hits
	diag.PriceCache.Misses = priceStats.Misses
	diag.PriceCache.Size = priceStats.Size

	wrapped := versionedDiagnostics{SchemaVersion: SnapshotSchemaVersion, Diagnostics: diag}
	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		return "", fmt.Errorf("engine: marshal diagnostics: %w: %v", core.ErrInvalidData, err)
	}
	return string(data), nil
}
