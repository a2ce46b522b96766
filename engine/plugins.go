package engine

import (
	"fmt"

	"github.com/quantatlas/chartengine/core"
)

// PluginEvent names one observable engine event.
type PluginEvent int

const (
	EventDataSet PluginEvent = iota
	EventDataUpdated
	EventTimeRangeChanged
	EventPriceDomainChanged
	EventCrosshairMoved
	EventPaneLayoutChanged
	EventStyleChanged
	EventFrameBuilt
)

// String returns the event name for logging.
func (e PluginEvent) String() string {
	switch e {
	case EventDataSet:
		return "data-set"
	case EventDataUpdated:
		return "data-updated"
	case EventTimeRangeChanged:
		return "time-range-changed"
	case EventPriceDomainChanged:
		return "price-domain-changed"
	case EventCrosshairMoved:
		return "crosshair-moved"
	case EventPaneLayoutChanged:
		return "pane-layout-changed"
	case EventStyleChanged:
		return "style-changed"
	case EventFrameBuilt:
		return "frame-built"
	default:
		return "unknown"
	}
}

// Plugin observes engine events. Callbacks run synchronously on the owning
// thread, in registration order, before the triggering API call returns.
type Plugin interface {
	OnEvent(event PluginEvent)
}

// PluginFunc adapts a plain function to Plugin.
type PluginFunc func(event PluginEvent)

// OnEvent implements Plugin.
func (f PluginFunc) OnEvent(event PluginEvent) { f(event) }

type pluginEntry struct {
	id     string
	plugin Plugin
}

type pluginRegistry struct {
	entries []pluginEntry
}

func (r *pluginRegistry) register(id string, plugin Plugin) error {
	if id == "" {
		return fmt.Errorf("engine: plugin id must not be empty: %w", core.ErrInvalidData)
	}
	if plugin == nil {
		return fmt.Errorf("engine: plugin %q is nil: %w", id, core.ErrInvalidData)
	}
	for _, e := range r.entries {
		if e.id == id {
			return fmt.Errorf("engine: duplicate plugin id %q: %w", id, core.ErrInvalidData)
		}
	}
	r.entries = append(r.entries, pluginEntry{id: id, plugin: plugin})
	return nil
}

func (r *pluginRegistry) unregister(id string) bool {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *pluginRegistry) has(id string) bool {
	for _, e := range r.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (r *pluginRegistry) dispatch(event PluginEvent) {
	for _, e := range r.entries {
		e.plugin.OnEvent(event)
	}
}
