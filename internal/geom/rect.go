package geom

// Rectangle is an axis-aligned box described by its min and max corners.
// A non-empty rectangle satisfies Width() > 0 and Height() > 0.
type Rectangle struct {
	Min, Max Point
}

// NewRectangle builds a rectangle from two corners, normalising them so
// Min <= Max on both axes.
func NewRectangle(a, b Point) Rectangle {
	return Rectangle{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// NewRectangleXYWH builds a rectangle from its min corner and dimensions.
func NewRectangleXYWH(x, y, w, h float64) Rectangle {
	return Rectangle{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

func (r Rectangle) X() float64      { return r.Min.X }
func (r Rectangle) Y() float64      { return r.Min.Y }
func (r Rectangle) MaxX() float64   { return r.Max.X }
func (r Rectangle) MaxY() float64   { return r.Max.Y }
func (r Rectangle) Width() float64  { return r.Max.X - r.Min.X }
func (r Rectangle) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rectangle) Area() float64   { return r.Width() * r.Height() }

// IsEmpty reports whether the rectangle's width or height is at most Epsilon.
func (r Rectangle) IsEmpty() bool {
	return r.Width() <= Epsilon || r.Height() <= Epsilon
}

// Translate returns r shifted by v.
func (r Rectangle) Translate(v Vector) Rectangle {
	return Rectangle{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Fits reports whether inner fits inside outer without rotation:
// inner.w <= outer.w && inner.h <= outer.h.
func Fits(inner, outer Rectangle) bool {
	return inner.Width() <= outer.Width()+Epsilon && inner.Height() <= outer.Height()+Epsilon
}

// FitsRotated reports whether inner, rotated 90 degrees, fits inside outer:
// inner.h <= outer.w && inner.w <= outer.h.
func FitsRotated(inner, outer Rectangle) bool {
	return inner.Height() <= outer.Width()+Epsilon && inner.Width() <= outer.Height()+Epsilon
}

// Intersects reports whether r and o share any positive area.
func (r Rectangle) Intersects(o Rectangle) bool {
	return r.Min.X < o.Max.X-Epsilon && o.Min.X < r.Max.X-Epsilon &&
		r.Min.Y < o.Max.Y-Epsilon && o.Min.Y < r.Max.Y-Epsilon
}

// Touches reports whether r and o overlap or share a boundary (used where
// a caller needs to distinguish a zero-area touch from genuine disjointness).
func (r Rectangle) Touches(o Rectangle) bool {
	return r.Min.X <= o.Max.X+Epsilon && o.Min.X <= r.Max.X+Epsilon &&
		r.Min.Y <= o.Max.Y+Epsilon && o.Min.Y <= r.Max.Y+Epsilon
}

// Contains reports whether r fully contains o.
func (r Rectangle) Contains(o Rectangle) bool {
	return r.Min.X <= o.Min.X+Epsilon && o.Max.X <= r.Max.X+Epsilon &&
		r.Min.Y <= o.Min.Y+Epsilon && o.Max.Y <= r.Max.Y+Epsilon
}

// ContainsPoint reports whether p lies within r (inclusive of boundary).
func (r Rectangle) ContainsPoint(p Point) bool {
	return r.Min.X-Epsilon <= p.X && p.X <= r.Max.X+Epsilon &&
		r.Min.Y-Epsilon <= p.Y && p.Y <= r.Max.Y+Epsilon
}

// Intersect returns the overlap of r and o, or the zero Rectangle (IsEmpty
// true) when they don't overlap.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	x1 := max(r.Min.X, o.Min.X)
	y1 := max(r.Min.Y, o.Min.Y)
	x2 := min(r.Max.X, o.Max.X)
	y2 := min(r.Max.Y, o.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return Rectangle{}
	}
	return Rectangle{Min: Point{X: x1, Y: y1}, Max: Point{X: x2, Y: y2}}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	return Rectangle{
		Min: Point{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Point{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

// Split divides r into the rectangular slabs left over from cutting out
// `used` (which must overlap r). It emits up to four slabs — the portions
// of r beyond each side of `used` not fully covered — following the
// maximal-rectangles split used by the bin-state free-rectangle update.
// Slabs with width or height <= Epsilon are omitted.
func (r Rectangle) Split(used Rectangle) []Rectangle {
	if !r.Intersects(used) {
		return nil
	}
	var out []Rectangle

	// Left slab.
	if used.Min.X > r.Min.X+Epsilon {
		out = append(out, Rectangle{Min: r.Min, Max: Point{X: used.Min.X, Y: r.Max.Y}})
	}
	// Right slab.
	if used.Max.X < r.Max.X-Epsilon {
		out = append(out, Rectangle{Min: Point{X: used.Max.X, Y: r.Min.Y}, Max: r.Max})
	}
	// Bottom (lower Y) slab.
	if used.Min.Y > r.Min.Y+Epsilon {
		out = append(out, Rectangle{Min: r.Min, Max: Point{X: r.Max.X, Y: used.Min.Y}})
	}
	// Top slab.
	if used.Max.Y < r.Max.Y-Epsilon {
		out = append(out, Rectangle{Min: Point{X: r.Min.X, Y: used.Max.Y}, Max: r.Max})
	}

	result := out[:0]
	for _, s := range out {
		if s.Width() > Epsilon && s.Height() > Epsilon {
			result = append(result, s)
		}
	}
	return result
}
