package nfp

import (
	"math"
	"sort"

	"polynest/internal/geom"
)

// ComputeNFP returns the no-fit-polygon of orbiting around stationary: the
// locus that orbiting's reference point (its bbox min corner) must avoid
// for the two pieces not to overlap. Both pieces' outer rings are ear-
// clipped into triangles; the NFP is the union, over every (triangle of
// stationary, negated triangle of orbiting) pair, of their convex
// Minkowski sums. Minkowski sum distributes over union, so this is exact
// for the pieces' actual (possibly concave) outlines, not just their
// convex hulls — holes are not subtracted back out of the result, which
// is the one approximation this construction makes (see DESIGN.md).
func ComputeNFP(stationary, orbiting geom.Polygon) geom.Polygon {
	return computeNFP(stationary, orbiting)
}

func computeNFP(stationary, orbiting geom.Polygon) geom.Polygon {
	id := stationary.ID()*-1 - orbiting.ID() - 1
	return nfpFromRings(id, ringOf(stationary), ringOf(orbiting.PlaceAt(0, 0)))
}

// nfpFromRings computes the NFP of orbiting (given by its outer ring)
// around stationary via triangle-pair Minkowski sums, as described on
// ComputeNFP.
func nfpFromRings(id int, stationary, orbiting []geom.Point) geom.Polygon {
	trisA := triangulate(stationary)
	trisB := triangulate(orbiting)
	if len(trisA) == 0 || len(trisB) == 0 {
		return geom.Polygon{}
	}

	var sumRings [][]geom.Point
	for _, a := range trisA {
		for _, b := range trisB {
			sum := minkowskiSumConvex(a, negate(b))
			if len(sum) >= 3 {
				sumRings = append(sumRings, sum)
			}
		}
	}
	if len(sumRings) == 0 {
		return geom.Polygon{}
	}
	return geom.NewPolygonFromRings(id, geom.UnionRings(sumRings))
}

// triangulate decomposes a simple CCW polygon ring into CCW triangles via
// ear clipping, the standard O(n^2) approach for a possibly concave ring
// with no library equivalent anywhere in the retrieval pack.
func triangulate(ring []geom.Point) [][]geom.Point {
	verts := append([]geom.Point{}, ring...)
	if ringSignedArea(verts) < 0 {
		verts = reversedPoints(verts)
	}
	idx := make([]int, len(verts))
	for i := range idx {
		idx[i] = i
	}

	var tris [][]geom.Point
	guard := 0
	for len(idx) > 3 && guard < len(ring)*len(ring)+16 {
		guard++
		earFound := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			a, b, c := verts[prev], verts[cur], verts[next]
			if !isConvexVertex(a, b, c) {
				continue
			}
			if anyOtherVertexInside(verts, idx, i, a, b, c) {
				continue
			}
			tris = append(tris, []geom.Point{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			break // malformed/self-intersecting ring; emit what we have
		}
	}
	if len(idx) == 3 {
		tris = append(tris, []geom.Point{verts[idx[0]], verts[idx[1]], verts[idx[2]]})
	}
	return tris
}

func ringSignedArea(ring []geom.Point) float64 {
	n := len(ring)
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

func reversedPoints(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// isConvexVertex reports whether b is a convex (left-turning) vertex of a
// CCW polygon at the corner a-b-c.
func isConvexVertex(a, b, c geom.Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return cross > 1e-12
}

// anyOtherVertexInside reports whether any ring vertex other than the
// candidate ear's own three lies inside triangle a-b-c, which disqualifies
// that ear (clipping it would cut through the rest of the polygon).
func anyOtherVertexInside(verts []geom.Point, idx []int, earAt int, a, b, c geom.Point) bool {
	for i, vi := range idx {
		if i == earAt || i == (earAt-1+len(idx))%len(idx) || i == (earAt+1)%len(idx) {
			continue
		}
		if pointInTriangle(verts[vi], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c geom.Point) bool {
	d1 := (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
	d2 := (p.X-c.X)*(b.Y-c.Y) - (b.X-c.X)*(p.Y-c.Y)
	d3 := (p.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(p.Y-a.Y)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func ringOf(p geom.Polygon) []geom.Point {
	if ring := p.OuterRing(); len(ring) >= 3 {
		return ring
	}
	// Fall back to the bbox corners if the piece carries no usable
	// boundary (keeps NFP well-defined even for degenerate pieces).
	bb := p.BBox()
	return []geom.Point{
		{X: bb.Min.X, Y: bb.Min.Y}, {X: bb.Max.X, Y: bb.Min.Y},
		{X: bb.Max.X, Y: bb.Max.Y}, {X: bb.Min.X, Y: bb.Max.Y},
	}
}

func negate(ring []geom.Point) []geom.Point {
	out := make([]geom.Point, len(ring))
	for i, p := range ring {
		out[i] = geom.Point{X: -p.X, Y: -p.Y}
	}
	return out
}

// convexHull computes the convex hull of a point set via the monotone
// chain algorithm, returning points ordered counter-clockwise.
func convexHull(pts []geom.Point) []geom.Point {
	pts = uniqueSorted(pts)
	n := len(pts)
	if n < 3 {
		return pts
	}

	cross := func(o, a, b geom.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]geom.Point, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]geom.Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}

func uniqueSorted(pts []geom.Point) []geom.Point {
	sorted := append([]geom.Point{}, pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].X-sorted[j].X) > geom.Epsilon {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	out := sorted[:0]
	for _, p := range sorted {
		if len(out) == 0 || !out[len(out)-1].Eq(p) {
			out = append(out, p)
		}
	}
	return out
}

// minkowskiSumConvex computes the Minkowski sum of two convex polygons
// (given CCW) by merging their edge vectors in increasing polar angle
// order, the standard O(n+m) construction for convex operands.
func minkowskiSumConvex(a, b []geom.Point) []geom.Point {
	a = startAtBottomLeft(a)
	b = startAtBottomLeft(b)
	na, nb := len(a), len(b)

	result := make([]geom.Point, 0, na+nb)
	i, j := 0, 0
	for i < na || j < nb {
		result = append(result, geom.Point{X: a[i%na].X + b[j%nb].X, Y: a[i%na].Y + b[j%nb].Y})
		ea := edgeAngle(a, i)
		eb := edgeAngle(b, j)
		switch {
		case i >= na:
			j++
		case j >= nb:
			i++
		case ea < eb-1e-12:
			i++
		case eb < ea-1e-12:
			j++
		default:
			i++
			j++
		}
	}
	return convexHull(result)
}

func startAtBottomLeft(ring []geom.Point) []geom.Point {
	best := 0
	for i, p := range ring[1:] {
		if p.Less(ring[best]) {
			best = i + 1
		}
	}
	return append(append([]geom.Point{}, ring[best:]...), ring[:best]...)
}

func edgeAngle(ring []geom.Point, i int) float64 {
	n := len(ring)
	a, b := ring[i%n], ring[(i+1)%n]
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// ComputeNFPFromRings computes the NFP using explicit outer-ring vertex
// lists for the stationary and orbiting pieces, rather than a geom.Polygon
// pair, via the same triangle-pair decomposition as ComputeNFP.
func ComputeNFPFromRings(stationaryID, orbitingID int, stationary, orbiting []geom.Point) geom.Polygon {
	id := stationaryID*-1 - orbitingID - 1
	return nfpFromRings(id, stationary, orbiting)
}
