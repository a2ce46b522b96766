package render

import (
	"fmt"

	"github.com/quantatlas/chartengine/core"
)

// Renderer consumes one flat frame per draw pass. Implementations issue the
// concrete draw calls; failures surface as errors wrapping
// core.ErrBackendFailure.
type Renderer interface {
	Render(frame *Frame) error
}

// NullRenderer validates frames and records primitive counts. It is the
// reference backend for tests and headless regression checks.
type NullRenderer struct {
	RenderCalls int
	LineCount   int
	RectCount   int
	TextCount   int
}

// NewNullRenderer returns a zeroed NullRenderer.
func NewNullRenderer() *NullRenderer { return &NullRenderer{} }

// Render re-validates the frame and accumulates counts.
func (n *NullRenderer) Render(frame *Frame) error {
	if frame == nil {
		return fmt.Errorf("render: nil frame: %w", core.ErrInvalidData)
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	n.RenderCalls++
	n.LineCount += len(frame.Lines)
	n.RectCount += len(frame.Rects)
	n.TextCount += len(frame.Texts)
	return nil
}

// Reset clears all recorded counts.
func (n *NullRenderer) Reset() { *n = NullRenderer{} }
