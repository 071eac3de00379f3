package viewport

// Conditions are plain func() bool so they can be assigned to
// breakpointx.Breakpoint.Condition without this package importing it.

// MinWidth holds while width >= n.
func MinWidth(v *Viewport, n int) func() bool {
	return func() bool { return v.Width() >= n }
}

// MaxWidth holds while width < n.
func MaxWidth(v *Viewport, n int) func() bool {
	return func() bool { return v.Width() < n }
}

// WidthBetween holds while lo <= width < hi.
func WidthBetween(v *Viewport, lo, hi int) func() bool {
	return func() bool {
		w := v.Width()
		return w >= lo && w < hi
	}
}

// MinHeight holds while height >= n.
func MinHeight(v *Viewport, n int) func() bool {
	return func() bool { return v.Height() >= n }
}

// MaxHeight holds while height < n.
func MaxHeight(v *Viewport, n int) func() bool {
	return func() bool { return v.Height() < n }
}

// IsOrientation holds while the viewport has orientation o.
func IsOrientation(v *Viewport, o Orientation) func() bool {
	return func() bool { return v.Orientation() == o }
}

// All holds when every condition holds. An empty All always holds.
func All(conds ...func() bool) func() bool {
	return func() bool {
		for _, c := range conds {
			if !c() {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one condition holds.
func Any(conds ...func() bool) func() bool {
	return func() bool {
		for _, c := range conds {
			if c() {
				return true
			}
		}
		return false
	}
}

// Not negates cond.
func Not(cond func() bool) func() bool {
	return func() bool { return !cond() }
}

// Range describes a rectangle of viewport sizes. Zero bounds are unbounded and
// max bounds are exclusive. A nil Orientation matches both.
type Range struct {
	MinWidth    int
	MaxWidth    int
	MinHeight   int
	MaxHeight   int
	Orientation *Orientation
}

// Contains reports whether the given size and orientation fall inside r.
func (r Range) Contains(width, height int, o Orientation) bool {
	if r.MinWidth > 0 && width < r.MinWidth {
		return false
	}
	if r.MaxWidth > 0 && width >= r.MaxWidth {
		return false
	}
	if r.MinHeight > 0 && height < r.MinHeight {
		return false
	}
	if r.MaxHeight > 0 && height >= r.MaxHeight {
		return false
	}
	if r.Orientation != nil && *r.Orientation != o {
		return false
	}
	return true
}

// Condition returns a condition that holds while v is inside r.
func (r Range) Condition(v *Viewport) func() bool {
	return func() bool {
		w, h := v.Size()
		return r.Contains(w, h, orientationOf(w, h))
	}
}
