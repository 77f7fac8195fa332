package nfp

import (
	"math"

	"polynest/internal/geom"
)

// ComputeIFP returns the inner-fit polygon for piece inside container: the
// set of positions its bbox min corner may occupy while the piece's bbox
// stays fully within container. For an axis-aligned container this is
// itself a rectangle, shrunk on the max-corner side by the piece's
// dimensions — the container-shrink construction the original NFPManager
// uses in place of a general Minkowski difference.
func ComputeIFP(piece geom.Polygon, container geom.Rectangle) geom.Rectangle {
	bb := piece.BBox()
	w, h := bb.Width(), bb.Height()
	if w > container.Width()+geom.Epsilon || h > container.Height()+geom.Epsilon {
		return geom.Rectangle{}
	}
	return geom.NewRectangleXYWH(container.Min.X, container.Min.Y, container.Width()-w, container.Height()-h)
}

// freeRegion is a disjoint component of valid placement space: an outer
// boundary with zero or more holes cut out of it by obstacles that land
// fully inside it.
type freeRegion struct {
	outer []geom.Point
	holes [][]geom.Point
}

// GetValidPlacementRegions returns the region(s) of the plane where
// piece's reference point (its bbox min corner) may be placed without
// overlapping container or any obstacle: the inner-fit polygon with every
// obstacle's no-fit-polygon (translated into reference-point space and
// relative to piece) subtracted out.
//
// Each obstacle is subtracted from every region accumulated so far rather
// than folded into a single running Polygon — once an obstacle's NFP
// splits the IFP into disjoint pieces, a later obstacle must still be
// able to remove area from each of them, which Polygon.Subtract's
// first-component-only combine cannot do.
func GetValidPlacementRegions(cache *Cache, piece geom.Polygon, obstacles []geom.Polygon, container geom.Rectangle) []geom.Polygon {
	ifp := ComputeIFP(piece, container)
	if ifp.IsEmpty() {
		return nil
	}
	regions := []freeRegion{{outer: rectRing(ifp)}}

	for _, obstacle := range obstacles {
		forbidden := cache.getOrCompute(obstacle, piece)
		if forbidden.IsEmpty() {
			continue
		}
		for _, comp := range forbidden.Components() {
			if len(comp.Outer) < 3 {
				continue
			}
			var next []freeRegion
			for _, reg := range regions {
				next = append(next, subtractRegion(reg, comp.Outer)...)
			}
			regions = next
			if len(regions) == 0 {
				return nil
			}
		}
	}

	out := make([]geom.Polygon, 0, len(regions))
	for _, r := range regions {
		if p := regionToPolygon(piece.ID(), r); !p.IsEmpty() {
			out = append(out, p)
		}
	}
	return out
}

// subtractRegion removes occ's area from reg, mirroring the free-space
// island detector's subtractRing: zero regions if occ consumes reg
// entirely, one region carrying a new hole if occ sits fully inside reg,
// and otherwise one region per remaining ring (one if occ only trims reg's
// boundary, several if it cuts reg apart).
func subtractRegion(reg freeRegion, occ []geom.Point) []freeRegion {
	if !ringBounds(reg.outer).Intersects(ringBounds(occ)) {
		return []freeRegion{reg}
	}

	rings := geom.DifferenceRings(reg.outer, occ)
	switch {
	case len(rings) == 0:
		return nil
	case len(rings) == 2 && geom.NewPolygon(0, rings[0]).ContainsPoint(rings[1][0]):
		return []freeRegion{{
			outer: rings[0],
			holes: append(append([][]geom.Point{}, reg.holes...), rings[1]),
		}}
	default:
		out := make([]freeRegion, 0, len(rings))
		for _, r := range rings {
			out = append(out, freeRegion{outer: r, holes: reg.holes})
		}
		return out
	}
}

// regionToPolygon wraps a free region's outer ring and holes into a
// Polygon, cutting each hole out of the outer one at a time so the result
// carries every hole rather than just the first.
func regionToPolygon(id int, r freeRegion) geom.Polygon {
	p := geom.NewPolygon(id, r.outer)
	for _, h := range r.holes {
		p = p.Subtract(geom.NewPolygon(id, h))
	}
	return p
}

func ringBounds(ring []geom.Point) geom.Rectangle {
	if len(ring) == 0 {
		return geom.Rectangle{}
	}
	minX, minY := ring[0].X, ring[0].Y
	maxX, maxY := ring[0].X, ring[0].Y
	for _, p := range ring[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return geom.Rectangle{Min: geom.Point{X: minX, Y: minY}, Max: geom.Point{X: maxX, Y: maxY}}
}

func rectRing(r geom.Rectangle) []geom.Point {
	return []geom.Point{
		{X: r.Min.X, Y: r.Min.Y}, {X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y}, {X: r.Min.X, Y: r.Max.Y},
	}
}

// IsValidPlacement reports whether placing piece's bbox min corner at pt
// keeps it inside container and free of every obstacle.
func IsValidPlacement(piece geom.Polygon, pt geom.Point, obstacles []geom.Polygon, container geom.Rectangle) bool {
	placed := piece.PlaceAt(pt.X, pt.Y)
	if !placed.FitsIn(container) {
		return false
	}
	for _, o := range obstacles {
		if placed.IntersectsPolygon(o) {
			return false
		}
	}
	return true
}

// FindBestPlacement returns the lexicographically smallest vertex (lowest
// Y, then lowest X) among the valid placement regions' boundaries — the
// same "lowest, then leftmost" tie-break the bin-state placement search
// uses everywhere else.
func FindBestPlacement(cache *Cache, piece geom.Polygon, obstacles []geom.Polygon, container geom.Rectangle) (geom.Point, bool) {
	regions := GetValidPlacementRegions(cache, piece, obstacles, container)
	if len(regions) == 0 {
		return geom.Point{}, false
	}

	var best geom.Point
	found := false
	for _, region := range regions {
		for _, c := range region.Components() {
			for _, v := range c.Outer {
				if !found || v.Less(best) {
					best, found = v, true
				}
			}
		}
	}
	return best, found
}
