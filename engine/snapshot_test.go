package engine_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/engine"
)

// TestSnapshot_RoundTripsThroughJSONContract serializes the engine state
// and parses it back unchanged.
func TestSnapshot_RoundTripsThroughJSONContract(t *testing.T) {
	e := newTestEngine(t, func(cfg *engine.ChartConfig) {
		cfg.TimeEnd = 20
	})
	require.NoError(t, e.SetData([]core.DataPoint{{Time: 2, Value: 20}, {Time: 8, Value: 80}}))
	require.NoError(t, e.SetCandles([]core.OhlcBar{
		{Time: 5, Open: 40, High: 60, Low: 30, Close: 50},
	}))
	require.NoError(t, e.PointerMove(300, 200))

	doc, err := e.SnapshotJSONContractV1Pretty(6)
	require.NoError(t, err)
	assert.True(t, strings.Contains(doc, `"schema_version": 1`))

	parsed, err := engine.ParseSnapshotJSON([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1000, parsed.Viewport.Width)
	assert.Len(t, parsed.Points, 2)
	assert.Len(t, parsed.CandleGeometry, 1)
	require.Len(t, parsed.SeriesMetadata, 2)
	assert.Equal(t, "points", parsed.SeriesMetadata[0].Name)
	assert.Equal(t, "candles", parsed.SeriesMetadata[1].Name)
	assert.True(t, parsed.Crosshair.Visible)
	assert.Equal(t, "magnet", parsed.Crosshair.Mode)
}

// TestParseSnapshotJSON_RejectsWrongSchemaVersion fails fast on a future
// contract.
func TestParseSnapshotJSON_RejectsWrongSchemaVersion(t *testing.T) {
	_, err := engine.ParseSnapshotJSON([]byte(`{"schema_version": 2, "snapshot": {}}`))
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestParseSnapshotJSON_AcceptsBareSnapshot tolerates the envelope-less
// form.
func TestParseSnapshotJSON_AcceptsBareSnapshot(t *testing.T) {
	snap, err := engine.ParseSnapshotJSON([]byte(`{"viewport": {"width": 640, "height": 480}}`))
	require.NoError(t, err)
	assert.Equal(t, 640, snap.Viewport.Width)
}

// TestParseSnapshotJSON_RejectsGarbage surfaces decode failures as
// InvalidData.
func TestParseSnapshotJSON_RejectsGarbage(t *testing.T) {
	_, err := engine.ParseSnapshotJSON([]byte(`{"viewport": [`))
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestSnapshot_RejectsBadBodyWidth propagates the projector validation.
func TestSnapshot_RejectsBadBodyWidth(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Snapshot(0)
	assert.ErrorIs(t, err, core.ErrInvalidData)
}

// TestCrosshairFormatterDiagnostics_ReflectsOverrides reports override
// state and cache counters in the versioned envelope.
func TestCrosshairFormatterDiagnostics_ReflectsOverrides(t *testing.T) {
	e := newTestEngine(t, nil)

	doc, err := e.CrosshairFormatterDiagnosticsJSONContractV1Pretty()
	require.NoError(t, err)
	var before struct {
		SchemaVersion int `json:"schema_version"`
		Diagnostics   struct {
			TimeOverride  string `json:"time_override"`
			PriceOverride string `json:"price_override"`
			Generation    uint64 `json:"generation"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &before))
	assert.Equal(t, 1, before.SchemaVersion)
	assert.Equal(t, "none", before.Diagnostics.TimeOverride)

	e.SetCrosshairTimeFormatter(func(tm float64) string { return "t" })
	e.SetCrosshairPriceFormatter(func(p float64) string { return "p" })

	doc, err = e.CrosshairFormatterDiagnosticsJSONContractV1Pretty()
	require.NoError(t, err)
	var after struct {
		Diagnostics struct {
			TimeOverride  string `json:"time_override"`
			PriceOverride string `json:"price_override"`
			Generation    uint64 `json:"generation"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &after))
	assert.Equal(t, "custom", after.Diagnostics.TimeOverride)
	assert.Equal(t, "custom", after.Diagnostics.PriceOverride)
	assert.Greater(t, after.Diagnostics.Generation, before.Diagnostics.Generation)
}
