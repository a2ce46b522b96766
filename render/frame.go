package render

import (
	"fmt"

	"github.com/quantatlas/chartengine/core"
)

// Frame is the flat per-build draw list: all primitives in emission order.
type Frame struct {
	Viewport core.Viewport `json:"viewport"`
	Lines    []Line        `json:"lines"`
	Rects    []Rect        `json:"rects"`
	Texts    []Text        `json:"texts"`
}

// NewFrame builds an empty frame for the viewport.
func NewFrame(viewport core.Viewport) Frame {
	return Frame{Viewport: viewport}
}

// PushLine appends a line primitive.
func (f *Frame) PushLine(l Line) { f.Lines = append(f.Lines, l) }

// PushRect appends a rect primitive.
func (f *Frame) PushRect(r Rect) { f.Rects = append(f.Rects, r) }

// PushText appends a text primitive.
func (f *Frame) PushText(t Text) { f.Texts = append(f.Texts, t) }

// PrimitiveCount returns lines + rects + texts.
func (f Frame) PrimitiveCount() int {
	return len(f.Lines) + len(f.Rects) + len(f.Texts)
}

// Validate checks the viewport and every primitive.
func (f Frame) Validate() error {
	if f.Viewport.Width < 1 || f.Viewport.Height < 1 {
		return fmt.Errorf("render: frame viewport %dx%d must be at least 1x1: %w", f.Viewport.Width, f.Viewport.Height, core.ErrInvalidData)
	}
	for i, l := range f.Lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("render: line %d: %w", i, err)
		}
	}
	for i, r := range f.Rects {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("render: rect %d: %w", i, err)
		}
	}
	for i, t := range f.Texts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("render: text %d: %w", i, err)
		}
	}
	return nil
}
