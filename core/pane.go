package core

import "fmt"

// PaneID identifies a vertically stacked plot region. The main pane is
// always ID 0 and always exists.
type PaneID uint32

// MainPaneID is the identifier of the auto-created main pane.
const MainPaneID PaneID = 0

// PaneDescriptor describes one pane: its identity, whether it is the main
// pane, and its relative height weight.
type PaneDescriptor struct {
	ID            PaneID
	IsMain        bool
	StretchFactor float64
}

// PaneRegion is the resolved vertical pixel extent of one pane.
type PaneRegion struct {
	ID     PaneID
	Top    float64
	Bottom float64
}

// PaneCollection owns the ordered pane descriptors. Exactly one pane is
// main; auxiliary panes are appended in creation order.
type PaneCollection struct {
	panes  []PaneDescriptor
	nextID PaneID
}

// NewPaneCollection builds a collection containing only the main pane with
// stretch factor 1.
func NewPaneCollection() PaneCollection {
	return PaneCollection{
		panes:  []PaneDescriptor{{ID: MainPaneID, IsMain: true, StretchFactor: 1}},
		nextID: MainPaneID + 1,
	}
}

// Descriptors returns a copy of the pane list in stacking order.
func (c PaneCollection) Descriptors() []PaneDescriptor {
	out := make([]PaneDescriptor, len(c.panes))
	copy(out, c.panes)
	return out
}

// Len returns the pane count.
func (c PaneCollection) Len() int { return len(c.panes) }

// Contains reports whether id names a pane in the collection.
func (c PaneCollection) Contains(id PaneID) bool {
	for _, p := range c.panes {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Create appends an auxiliary pane with the given stretch factor and
// returns its ID. The factor must be finite and > 0.
func (c *PaneCollection) Create(stretchFactor float64) (PaneID, error) {
	if !isFinite(stretchFactor) || stretchFactor <= 0 {
		return 0, fmt.Errorf("core: pane stretch factor %v must be finite and > 0: %w", stretchFactor, ErrInvalidData)
	}
	id := c.nextID
	c.nextID++
	c.panes = append(c.panes, PaneDescriptor{ID: id, StretchFactor: stretchFactor})
	return id, nil
}

// Remove deletes an auxiliary pane. Removing the main pane or an unknown
// pane returns ErrInvalidData.
func (c *PaneCollection) Remove(id PaneID) error {
	for i, p := range c.panes {
		if p.ID != id {
			continue
		}
		if p.IsMain {
			return fmt.Errorf("core: the main pane cannot be removed: %w", ErrInvalidData)
		}
		c.panes = append(c.panes[:i], c.panes[i+1:]...)
		return nil
	}
	return fmt.Errorf("core: unknown pane id %d: %w", id, ErrInvalidData)
}

// LayoutRegions stacks the panes between top and bottom, allocating heights
// proportionally to stretch factors. The last pane absorbs any rounding
// remainder so the regions tile [top, bottom] exactly.
func (c PaneCollection) LayoutRegions(top, bottom float64) []PaneRegion {
	regions := make([]PaneRegion, 0, len(c.panes))
	if bottom <= top || len(c.panes) == 0 {
		for _, p := range c.panes {
			regions = append(regions, PaneRegion{ID: p.ID, Top: top, Bottom: top})
		}
		return regions
	}
	total := 0.0
	for _, p := range c.panes {
		total += p.StretchFactor
	}
	cursor := top
	height := bottom - top
	for i, p := range c.panes {
		var regionBottom float64
		if i == len(c.panes)-1 {
			regionBottom = bottom
		} else {
			regionBottom = cursor + height*(p.StretchFactor/total)
		}
		regions = append(regions, PaneRegion{ID: p.ID, Top: cursor, Bottom: regionBottom})
		cursor = regionBottom
	}
	return regions
}
