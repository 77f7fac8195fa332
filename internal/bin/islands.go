package bin

import (
	"math"
	"sort"

	"polynest/internal/geom"
)

// FreeSpaceIsland describes one connected region of unused space in the
// bin — the actual polygon complement of the bin rectangle minus every
// placed piece's outline, not an axis-aligned approximation — along with
// the principal-axis metadata a caller can use to decide how promising it
// is for a further placement: its area, a robustness score (how
// square/compact it is), and the orientation a piece dropped into it
// should probably try first. Mirrors Bin::FreeSpaceIsland.
type FreeSpaceIsland struct {
	Outer           []geom.Point
	Holes           [][]geom.Point
	Bounds          geom.Rectangle
	Centroid        geom.Point
	Area            float64
	MajorAxisLength float64
	MinorAxisLength float64
	PrincipalAngle  float64
	AspectRatio     float64
	Robustness      float64
}

// freeRegion is the raw outer+holes pair produced while subtracting
// placed-piece material from the bin rectangle, before PCA metadata is
// attached.
type freeRegion struct {
	outer []geom.Point
	holes [][]geom.Point
}

// DetectFreeSpaceIslands computes the connected components of the bin's
// rectangle minus the polygon union of every placed piece's outline —
// the precise complement, not the axis-aligned freeRects bookkeeping
// splitAroundPlacement maintains for bbox_pack — so a piece can be
// dropped into a concave notch even though its bounding box overlaps the
// piece that carves the notch. Generalizes
// Bin::detectAdaptiveFreeSpaceIslands from a single free region per bin
// to however many disjoint regions the placed set actually leaves.
func (b *Bin) DetectFreeSpaceIslands() []FreeSpaceIsland {
	regions := b.freeSpaceRegions()

	islands := make([]FreeSpaceIsland, 0, len(regions))
	for _, r := range regions {
		islands = append(islands, buildIsland(r))
	}
	sort.Slice(islands, func(i, j int) bool { return islands[i].Area > islands[j].Area })
	return islands
}

// freeSpaceRegions subtracts every placed piece's outline from the bin's
// rectangle, one disjoint occupied blob at a time. Placed pieces whose
// bounding boxes overlap are merged into one blob first via
// geom.UnionRings; pieces that only touch are subtracted as separate
// blobs.
func (b *Bin) freeSpaceRegions() []freeRegion {
	var occupied [][]geom.Point
	for _, p := range b.placed {
		for _, c := range p.Components() {
			if len(c.Outer) >= 3 {
				occupied = append(occupied, c.Outer)
			}
		}
	}
	merged := geom.UnionRings(occupied)

	regions := []freeRegion{{outer: binRectRing(b.dimension)}}
	for _, occ := range merged {
		var next []freeRegion
		for _, reg := range regions {
			next = append(next, subtractRing(reg, occ)...)
		}
		regions = next
	}
	return regions
}

// subtractRing removes occ's area from reg: no region if occ consumes reg
// entirely, one region with a new hole (two rings folded together) if occ
// sits fully inside reg and leaves a donut-shaped remainder around it, and
// otherwise one region per remaining ring (one if occ only trims reg's
// boundary, several if it cuts reg apart).
func subtractRing(reg freeRegion, occ []geom.Point) []freeRegion {
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

func binRectRing(r geom.Rectangle) []geom.Point {
	return []geom.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
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

func buildIsland(r freeRegion) FreeSpaceIsland {
	centroid, outerArea := ringCentroidArea(r.outer)
	area := math.Abs(outerArea)
	for _, h := range r.holes {
		_, holeArea := ringCentroidArea(h)
		area -= math.Abs(holeArea)
	}

	bounds := ringBounds(r.outer)
	major, minor, angle := principalAxes(r.outer, r.holes, centroid)

	aspect := 1.0
	if minor > geom.Epsilon {
		aspect = major / minor
	}
	robustness := 1.0
	if aspect > 0 {
		robustness = 1.0 / aspect
	}

	return FreeSpaceIsland{
		Outer:           r.outer,
		Holes:           r.holes,
		Bounds:          bounds,
		Centroid:        centroid,
		Area:            area,
		MajorAxisLength: major,
		MinorAxisLength: minor,
		PrincipalAngle:  angle,
		AspectRatio:     aspect,
		Robustness:      robustness,
	}
}

// ringCentroidArea returns a ring's signed area and its centroid via the
// standard polygon-centroid formula.
func ringCentroidArea(ring []geom.Point) (geom.Point, float64) {
	n := len(ring)
	if n < 3 {
		if n == 0 {
			return geom.Point{}, 0
		}
		return ring[0], 0
	}
	var a, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		a += cross
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	a /= 2
	if math.Abs(a) < geom.Epsilon {
		return ring[0], 0
	}
	return geom.Point{X: cx / (6 * a), Y: cy / (6 * a)}, a
}

// principalAxes runs PCA over the region's boundary vertices (outer ring
// plus any hole rings) around centroid to find the island's dominant
// orientation, returning the major/minor axis lengths (two standard
// deviations) and the major axis angle in degrees.
func principalAxes(outer []geom.Point, holes [][]geom.Point, centroid geom.Point) (major, minor, angleDeg float64) {
	var sxx, syy, sxy float64
	var n float64

	accumulate := func(ring []geom.Point) {
		for _, p := range ring {
			dx, dy := p.X-centroid.X, p.Y-centroid.Y
			sxx += dx * dx
			syy += dy * dy
			sxy += dx * dy
			n++
		}
	}
	accumulate(outer)
	for _, h := range holes {
		accumulate(h)
	}
	if n <= 0 {
		return 0, 0, 0
	}
	sxx /= n
	syy /= n
	sxy /= n

	trace := sxx + syy
	det := sxx*syy - sxy*sxy
	disc := math.Sqrt(math.Max(0, trace*trace/4-det))
	lambda1 := trace/2 + disc
	lambda2 := trace/2 - disc

	angle := 0.0
	if sxy != 0 {
		angle = math.Atan2(lambda1-sxx, sxy)
	} else if sxx < syy {
		angle = math.Pi / 2
	}

	major = 2 * math.Sqrt(math.Max(0, lambda1))
	minor = 2 * math.Sqrt(math.Max(0, lambda2))
	angleDeg = angle * 180 / math.Pi
	return major, minor, angleDeg
}

// PlaceInGlobalFreeSpace searches every free-space island, largest first,
// sweeping piece across the island's bounding box for a position fitting
// it under one of rotations without colliding with any placed piece.
// Because TestCollision is the exact polygon oracle, a position can be
// accepted here even when piece's bbox overlaps a concave placed piece's
// bbox, as long as it doesn't overlap the piece's actual outline — the
// capability islands built from freeRects could never offer. Mirrors
// Bin::placeInGlobalFreeSpace/findBestIslandPlacement.
func (b *Bin) PlaceInGlobalFreeSpace(piece geom.Polygon, rotations []float64) (islandIndex int, placement Placement) {
	islands := b.DetectFreeSpaceIslands()
	step := sweepStep(piece)
	for i, isl := range islands {
		if placement := b.Sweep(piece, isl.Bounds, step, rotations); placement.Found {
			return i, placement
		}
	}
	return -1, Placement{}
}
