// Package geom provides the polygon, rectangle, and vector primitives that
// the packing core is built on: points, vectors, axis-aligned rectangles,
// and polygon pieces with holes.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used throughout the package to treat
// near-degenerate geometry (slivers, boundary touches) as non-events.
const Epsilon = 1e-9

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// NewPoint builds a point, panicking if either coordinate is not finite.
func NewPoint(x, y float64) Point {
	if !isFinite(x) || !isFinite(y) {
		panic("geom: point coordinates must be finite")
	}
	return Point{X: x, Y: y}
}

// Eq reports whether two points are equal within Epsilon.
func (p Point) Eq(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add translates p by vector v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Less orders points lexicographically by (Y, X) — the ordering used by
// find-best-placement to pick the "lowest y, then lowest x" vertex.
func (p Point) Less(q Point) bool {
	if math.Abs(p.Y-q.Y) > Epsilon {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
