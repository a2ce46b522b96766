package render

import (
	"github.com/quantatlas/chartengine/core"
)

// LayerKind is the canonical z-order position of a primitive bucket inside
// one pane. Smaller kinds draw first.
type LayerKind int

const (
	LayerBackground LayerKind = iota
	LayerGrid
	LayerSeries
	LayerOverlay
	LayerCrosshair
	LayerAxis

	layerCount
)

// String implements fmt.Stringer for diagnostics.
func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "Background"
	case LayerGrid:
		return "Grid"
	case LayerSeries:
		return "Series"
	case LayerOverlay:
		return "Overlay"
	case LayerCrosshair:
		return "Crosshair"
	case LayerAxis:
		return "Axis"
	default:
		return "Unknown"
	}
}

// CanonicalLayerKinds returns the six layer kinds in draw order.
func CanonicalLayerKinds() []LayerKind {
	return []LayerKind{LayerBackground, LayerGrid, LayerSeries, LayerOverlay, LayerCrosshair, LayerAxis}
}

// Layer is one primitive bucket of a pane.
type Layer struct {
	Kind  LayerKind
	Lines []Line
	Rects []Rect
	Texts []Text
}

// PaneLayers holds the canonical layer stack of one pane plus its resolved
// vertical plot region.
type PaneLayers struct {
	PaneID     core.PaneID
	PlotTop    float64
	PlotBottom float64
	Layers     [layerCount]Layer
}

// LayeredFrame is the pane/layer aware sibling of Frame. Panes appear in
// stacking order; each always carries all six layers, possibly empty.
type LayeredFrame struct {
	Viewport core.Viewport
	Panes    []PaneLayers
}

// NewLayeredFrame builds a layered frame with one empty stack per pane, in
// the given order.
func NewLayeredFrame(viewport core.Viewport, panes []core.PaneDescriptor) LayeredFrame {
	lf := LayeredFrame{Viewport: viewport, Panes: make([]PaneLayers, 0, len(panes))}
	for _, p := range panes {
		stack := PaneLayers{PaneID: p.ID}
		for _, kind := range CanonicalLayerKinds() {
			stack.Layers[kind].Kind = kind
		}
		lf.Panes = append(lf.Panes, stack)
	}
	return lf
}

func (lf *LayeredFrame) paneIndex(id core.PaneID) int {
	for i := range lf.Panes {
		if lf.Panes[i].PaneID == id {
			return i
		}
	}
	return -1
}

// SetPaneRegion records the resolved plot region of a pane. Unknown panes
// are ignored.
func (lf *LayeredFrame) SetPaneRegion(id core.PaneID, top, bottom float64) {
	if i := lf.paneIndex(id); i >= 0 {
		lf.Panes[i].PlotTop = top
		lf.Panes[i].PlotBottom = bottom
	}
}

// PushLine appends a line into (pane, layer). Unknown panes are ignored so
// builders can emit unconditionally.
func (lf *LayeredFrame) PushLine(id core.PaneID, kind LayerKind, l Line) {
	if i := lf.paneIndex(id); i >= 0 {
		layer := &lf.Panes[i].Layers[kind]
		layer.Lines = append(layer.Lines, l)
	}
}

// PushRect appends a rect into (pane, layer).
func (lf *LayeredFrame) PushRect(id core.PaneID, kind LayerKind, r Rect) {
	if i := lf.paneIndex(id); i >= 0 {
		layer := &lf.Panes[i].Layers[kind]
		layer.Rects = append(layer.Rects, r)
	}
}

// PushText appends a text into (pane, layer).
func (lf *LayeredFrame) PushText(id core.PaneID, kind LayerKind, t Text) {
	if i := lf.paneIndex(id); i >= 0 {
		layer := &lf.Panes[i].Layers[kind]
		layer.Texts = append(layer.Texts, t)
	}
}

// Flatten concatenates all primitives pane by pane, layer by layer, into a
// flat Frame. Counts and order are preserved.
func (lf LayeredFrame) Flatten() Frame {
	out := NewFrame(lf.Viewport)
	for _, pane := range lf.Panes {
		for _, layer := range pane.Layers {
			out.Lines = append(out.Lines, layer.Lines...)
			out.Rects = append(out.Rects, layer.Rects...)
			out.Texts = append(out.Texts, layer.Texts...)
		}
	}
	return out
}

// FlattenPane flattens a single pane's stack. Returns nil (without error)
// when the pane is unknown.
func (lf LayeredFrame) FlattenPane(id core.PaneID) *Frame {
	i := lf.paneIndex(id)
	if i < 0 {
		return nil
	}
	out := NewFrame(lf.Viewport)
	for _, layer := range lf.Panes[i].Layers {
		out.Lines = append(out.Lines, layer.Lines...)
		out.Rects = append(out.Rects, layer.Rects...)
		out.Texts = append(out.Texts, layer.Texts...)
	}
	return &out
}

// RemapPlotLayers linearly stretches the y coordinates of a pane's plot
// layers from [srcTop, srcBottom] into [dstTop, dstBottom]. The Background
// and Axis layers are left untouched: backgrounds already cover the pane
// region and axis primitives live in shared viewport space.
func (lf *LayeredFrame) RemapPlotLayers(id core.PaneID, srcTop, srcBottom, dstTop, dstBottom float64) {
	i := lf.paneIndex(id)
	if i < 0 || srcBottom == srcTop {
		return
	}
	scale := (dstBottom - dstTop) / (srcBottom - srcTop)
	remap := func(y float64) float64 { return dstTop + (y-srcTop)*scale }
	for kind := range lf.Panes[i].Layers {
		if LayerKind(kind) == LayerBackground || LayerKind(kind) == LayerAxis {
			continue
		}
		layer := &lf.Panes[i].Layers[kind]
		for j := range layer.Lines {
			layer.Lines[j].Y1 = remap(layer.Lines[j].Y1)
			layer.Lines[j].Y2 = remap(layer.Lines[j].Y2)
		}
		for j := range layer.Rects {
			top := remap(layer.Rects[j].Y)
			bottom := remap(layer.Rects[j].Y + layer.Rects[j].Height)
			layer.Rects[j].Y = top
			layer.Rects[j].Height = bottom - top
		}
		for j := range layer.Texts {
			layer.Texts[j].Y = remap(layer.Texts[j].Y)
		}
	}
}
