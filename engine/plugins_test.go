package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatlas/chartengine/core"
	"github.com/quantatlas/chartengine/engine"
)

// TestRegisterPlugin_RejectsDuplicatesAndEmpties: ids are unique and
// non-empty, plugins non-nil.
func TestRegisterPlugin_RejectsDuplicatesAndEmpties(t *testing.T) {
	e := newTestEngine(t, nil)
	noop := engine.PluginFunc(func(engine.PluginEvent) {})

	require.NoError(t, e.RegisterPlugin("alpha", noop))
	assert.ErrorIs(t, e.RegisterPlugin("alpha", noop), core.ErrInvalidData)
	assert.ErrorIs(t, e.RegisterPlugin("", noop), core.ErrInvalidData)
	assert.ErrorIs(t, e.RegisterPlugin("beta", nil), core.ErrInvalidData)
	assert.Equal(t, 1, e.PluginCount())
	assert.True(t, e.HasPlugin("alpha"))
}

// TestPluginDispatch_RegistrationOrder: every registered plugin observes
// each event, in registration order.
func TestPluginDispatch_RegistrationOrder(t *testing.T) {
	e := newTestEngine(t, nil)
	var order []string
	require.NoError(t, e.RegisterPlugin("first", engine.PluginFunc(func(ev engine.PluginEvent) {
		if ev == engine.EventDataSet {
			order = append(order, "first")
		}
	})))
	require.NoError(t, e.RegisterPlugin("second", engine.PluginFunc(func(ev engine.PluginEvent) {
		if ev == engine.EventDataSet {
			order = append(order, "second")
		}
	})))

	require.NoError(t, e.SetData([]core.DataPoint{{Time: 1, Value: 1}}))
	assert.Equal(t, []string{"first", "second"}, order)
}

// TestPluginEvents_CoverInteractionLifecycle: range, crosshair, and frame
// events all fire.
func TestPluginEvents_CoverInteractionLifecycle(t *testing.T) {
	e := newTestEngine(t, nil)
	seen := make(map[engine.PluginEvent]int)
	require.NoError(t, e.RegisterPlugin("probe", engine.PluginFunc(func(ev engine.PluginEvent) {
		seen[ev]++
	})))

	require.NoError(t, e.SetData([]core.DataPoint{{Time: 10, Value: 5}}))
	require.NoError(t, e.SetTimeVisibleRange(10, 60))
	require.NoError(t, e.PointerMove(300, 200))
	_, err := e.BuildRenderFrame()
	require.NoError(t, err)

	assert.Equal(t, 1, seen[engine.EventDataSet])
	assert.GreaterOrEqual(t, seen[engine.EventTimeRangeChanged], 1)
	assert.Equal(t, 1, seen[engine.EventCrosshairMoved])
	assert.Equal(t, 1, seen[engine.EventFrameBuilt])
}

// TestUnregisterPlugin_StopsDelivery removes the plugin and reports
// whether it was present.
func TestUnregisterPlugin_StopsDelivery(t *testing.T) {
	e := newTestEngine(t, nil)
	calls := 0
	require.NoError(t, e.RegisterPlugin("probe", engine.PluginFunc(func(engine.PluginEvent) { calls++ })))

	require.NoError(t, e.SetData([]core.DataPoint{{Time: 1, Value: 1}}))
	before := calls

	assert.True(t, e.UnregisterPlugin("probe"))
	assert.False(t, e.UnregisterPlugin("probe"))
	require.NoError(t, e.AppendPoint(core.DataPoint{Time: 2, Value: 2}))
	assert.Equal(t, before, calls)
	assert.False(t, e.HasPlugin("probe"))
}

// TestPluginEvent_StringNames gives each event a stable name.
func TestPluginEvent_StringNames(t *testing.T) {
	assert.Equal(t, "data-set", engine.EventDataSet.String())
	assert.Equal(t, "frame-built", engine.EventFrameBuilt.String())
	assert.Equal(t, "crosshair-moved", engine.EventCrosshairMoved.String())
}
