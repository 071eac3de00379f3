package testutil

import (
	"github.com/go-logr/logr"

	"github.com/comalice/breakpointx"
	"github.com/comalice/breakpointx/source"
	"github.com/comalice/breakpointx/viewport"
)

// Harness wires a Registry to a manually triggered source and a viewport so tests
// can drive resizes deterministically.
type Harness struct {
	Viewport *viewport.Viewport
	Source   *source.Manual
	Registry *breakpointx.Registry
	Errors   []error
}

// NewHarness starts at width x height. Extra options are applied after the
// harness's own source, logger and error collector.
func NewHarness(width, height int, opts ...breakpointx.Option) *Harness {
	h := &Harness{
		Viewport: viewport.New(width, height),
		Source:   source.NewManual(),
	}
	base := []breakpointx.Option{
		breakpointx.WithSource(h.Source),
		breakpointx.WithLogger(logr.Discard()),
		breakpointx.WithErrorHandler(func(err error) {
			h.Errors = append(h.Errors, err)
		}),
	}
	h.Registry = breakpointx.New(append(base, opts...)...)
	return h
}

// Resize sets the viewport and triggers one evaluation pass.
func (h *Harness) Resize(width, height int) {
	h.Viewport.Set(width, height)
	h.Source.Trigger()
}

// Width is shorthand for Resize keeping the current height.
func (h *Harness) Width(width int) {
	h.Resize(width, h.Viewport.Height())
}
