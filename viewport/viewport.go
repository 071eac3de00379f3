// Package viewport tracks the current width and height of a display surface
// (terminal, window, remote browser) and builds breakpoint conditions over it.
package viewport

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"
)

type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// ParseOrientation accepts "portrait" or "landscape" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return Landscape, fmt.Errorf("unknown orientation %q", s)
	}
}

// Viewport is safe for concurrent use; sources write it, conditions read it.
type Viewport struct {
	width  atomic.Int64
	height atomic.Int64
}

// New returns a viewport with the given initial size.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Set(width, height)
	return v
}

// Set stores the new size and reports whether it differs from the previous one.
func (v *Viewport) Set(width, height int) bool {
	oldW := v.width.Swap(int64(width))
	oldH := v.height.Swap(int64(height))
	return oldW != int64(width) || oldH != int64(height)
}

func (v *Viewport) Size() (width, height int) {
	return v.Width(), v.Height()
}

func (v *Viewport) Width() int {
	return int(v.width.Load())
}

func (v *Viewport) Height() int {
	return int(v.height.Load())
}

// Orientation is Portrait when the viewport is taller than it is wide.
func (v *Viewport) Orientation() Orientation {
	return orientationOf(v.Size())
}

func orientationOf(width, height int) Orientation {
	if height > width {
		return Portrait
	}
	return Landscape
}

func (v *Viewport) String() string {
	w, h := v.Size()
	return fmt.Sprintf("%dx%d", w, h)
}
