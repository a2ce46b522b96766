package engine

import (
	"fmt"

	"github.com/quantatlas/chartengine/core"
)

// CreatePane adds an auxiliary pane below the existing stack and returns
// its id.
func (e *Engine) CreatePane(stretchFactor float64) (core.PaneID, error) {
	id, err := e.panes.Create(stretchFactor)
	if err != nil {
		return 0, err
	}
	e.invalidation.Mark(InvalidatePanes)
	e.plugins.dispatch(EventPaneLayoutChanged)
	return id, nil
}

// RemovePane deletes an auxiliary pane. Series bound to it fall back to
// the main pane. The main pane cannot be removed.
func (e *Engine) RemovePane(id core.PaneID) error {
	if err := e.panes.Remove(id); err != nil {
		return err
	}
	if e.pointsPaneID == id {
		e.pointsPaneID = core.MainPaneID
	}
	if e.candlesPaneID == id {
		e.candlesPaneID = core.MainPaneID
	}
	e.invalidation.Mark(InvalidatePanes)
	e.plugins.dispatch(EventPaneLayoutChanged)
	return nil
}

// SetPointsPane assigns the point series to a pane.
func (e *Engine) SetPointsPane(id core.PaneID) error {
	if !e.panes.Contains(id) {
		return fmt.Errorf("engine: unknown pane id %d: %w", id, core.ErrInvalidData)
	}
	e.pointsPaneID = id
	e.invalidation.Mark(InvalidatePanes)
	e.plugins.dispatch(EventPaneLayoutChanged)
	return nil
}

// SetCandlesPane assigns the OHLC series to a pane.
func (e *Engine) SetCandlesPane(id core.PaneID) error {
	if !e.panes.Contains(id) {
		return fmt.Errorf("engine: unknown pane id %d: %w", id, core.ErrInvalidData)
	}
	e.candlesPaneID = id
	e.invalidation.Mark(InvalidatePanes)
	e.plugins.dispatch(EventPaneLayoutChanged)
	return nil
}

// PaneCount returns the number of panes including the main pane.
func (e *Engine) PaneCount() int { return e.panes.Len() }

// PaneExists reports whether a pane id is live.
func (e *Engine) PaneExists(id core.PaneID) bool { return e.panes.Contains(id) }

// PaneDescriptors returns the pane stack in layout order.
func (e *Engine) PaneDescriptors() []core.PaneDescriptor { return e.panes.Descriptors() }

// PointsPane returns the pane the point series draws into.
func (e *Engine) PointsPane() core.PaneID { return e.pointsPaneID }

// CandlesPane returns the pane the OHLC series draws into.
func (e *Engine) CandlesPane() core.PaneID { return e.candlesPaneID }

// PaneRegions computes the plot regions for the current viewport, leaving
// room for the time axis at the bottom.
func (e *Engine) PaneRegions() []core.PaneRegion {
	plotBottom := float64(e.viewport.Height) - e.style.TimeAxisHeightPx
	if plotBottom < 0 {
		plotBottom = 0
	}
	return e.panes.LayoutRegions(0, plotBottom)
}
