package geom

import "math"

// Component is a single simple polygon: an outer ring (CCW) and zero or
// more hole rings (CW), mirroring the outer+hole pair a MultiPolygon
// wraps in the original geometry kernel.
type Component struct {
	Outer []Point
	Holes [][]Point
}

func (c Component) area() float64 {
	a := ringArea(c.Outer)
	for _, h := range c.Holes {
		a -= math.Abs(ringArea(h))
	}
	return a
}

func (c Component) translate(v Vector) Component {
	out := Component{Outer: translateRing(c.Outer, v)}
	for _, h := range c.Holes {
		out.Holes = append(out.Holes, translateRing(h, v))
	}
	return out
}

func (c Component) rotate(center Point, degrees float64) Component {
	out := Component{Outer: rotateRing(c.Outer, center, degrees)}
	for _, h := range c.Holes {
		out.Holes = append(out.Holes, rotateRing(h, center, degrees))
	}
	return out
}

func translateRing(ring []Point, v Vector) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[i] = p.Add(v)
	}
	return out
}

func rotateRing(ring []Point, center Point, degrees float64) []Point {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	if math.Mod(degrees, 90) == 0 {
		// Quarter turns use exact unit values so no floating-point residue
		// creeps into the rotated coordinates.
		switch int(math.Mod(degrees/90, 4)+4) % 4 {
		case 0:
			sin, cos = 0, 1
		case 1:
			sin, cos = 1, 0
		case 2:
			sin, cos = 0, -1
		case 3:
			sin, cos = -1, 0
		}
	}
	out := make([]Point, len(ring))
	for i, p := range ring {
		dx, dy := p.X-center.X, p.Y-center.Y
		out[i] = Point{
			X: center.X + dx*cos - dy*sin,
			Y: center.Y + dx*sin + dy*cos,
		}
	}
	return out
}

func ringArea(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

func ringBBox(ring []Point) Rectangle {
	if len(ring) == 0 {
		return Rectangle{}
	}
	minX, minY := ring[0].X, ring[0].Y
	maxX, maxY := ring[0].X, ring[0].Y
	for _, p := range ring[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rectangle{Min: Point{X: minX, Y: minY}, Max: Point{X: maxX, Y: maxY}}
}

// ccw returns ring reordered to run counter-clockwise.
func ccw(ring []Point) []Point {
	if ringArea(ring) < 0 {
		return reversed(ring)
	}
	return append([]Point{}, ring...)
}

func cw(ring []Point) []Point {
	if ringArea(ring) > 0 {
		return reversed(ring)
	}
	return append([]Point{}, ring...)
}

// Polygon is a piece: an immutable, caller-identified polygon with holes,
// carrying its own cumulative rotation. It is the "Area" of the data model.
type Polygon struct {
	id       int
	shape    []Component
	rotation float64

	bboxCached bool
	bbox       Rectangle
	areaCached bool
	area       float64
}

// NewPolygon builds a single-component piece (no holes) from a CCW vertex
// list, deduplicating consecutive repeated points. Degenerate input
// (fewer than 3 distinct vertices) yields an empty piece.
func NewPolygon(id int, vertices []Point) Polygon {
	outer := dedupe(vertices)
	if len(outer) < 3 {
		return Polygon{id: id}
	}
	return Polygon{id: id, shape: []Component{{Outer: ccw(outer)}}}
}

// NewPolygonWithHole builds a piece from an outer piece and a hole piece,
// adding the hole's outer ring as a hole of the outer piece's sole
// component. Both inputs must be single-component, hole-free pieces.
func NewPolygonWithHole(id int, outer, hole Polygon) Polygon {
	if len(outer.shape) == 0 {
		return Polygon{id: id}
	}
	oc := outer.shape[0]
	comp := Component{Outer: oc.Outer, Holes: append([][]Point{}, oc.Holes...)}
	if len(hole.shape) > 0 {
		comp.Holes = append(comp.Holes, cw(hole.shape[0].Outer))
	}
	return Polygon{id: id, shape: []Component{comp}}
}

// NewPolygonFromRings builds a piece with one hole-free component per
// ring, skipping degenerate rings (fewer than 3 distinct vertices). It is
// used to wrap the result of a multi-region construction (such as a union
// of several convex pieces) that a single outer+holes Component cannot
// represent.
func NewPolygonFromRings(id int, rings [][]Point) Polygon {
	var shape []Component
	for _, r := range rings {
		outer := dedupe(r)
		if len(outer) < 3 {
			continue
		}
		shape = append(shape, Component{Outer: ccw(outer)})
	}
	return Polygon{id: id, shape: shape}
}

func dedupe(pts []Point) []Point {
	var out []Point
	for _, p := range pts {
		if len(out) == 0 || !out[len(out)-1].Eq(p) {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0].Eq(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// ID returns the caller-supplied stable identifier for this piece.
func (p Polygon) ID() int { return p.id }

// Rotation returns the piece's cumulative rotation in degrees, in [0, 360).
func (p Polygon) Rotation() float64 { return p.rotation }

// IsEmpty reports whether the piece has no geometry.
func (p Polygon) IsEmpty() bool { return len(p.shape) == 0 }

// VertexCount returns the total number of vertices across all rings.
func (p Polygon) VertexCount() int {
	n := 0
	for _, c := range p.shape {
		n += len(c.Outer)
		for _, h := range c.Holes {
			n += len(h)
		}
	}
	return n
}

// Area returns the net area of the piece (outer area minus hole area,
// summed across components).
func (p Polygon) Area() float64 {
	if p.areaCached {
		return p.area
	}
	a := 0.0
	for _, c := range p.shape {
		a += c.area()
	}
	p.area = a
	return a
}

// BBox returns the axis-aligned bounding box of the piece.
func (p Polygon) BBox() Rectangle {
	if len(p.shape) == 0 {
		return Rectangle{}
	}
	bb := ringBBox(p.shape[0].Outer)
	for _, c := range p.shape[1:] {
		bb = bb.Union(ringBBox(c.Outer))
	}
	return bb
}

// OuterRing returns the outer boundary vertices of the piece's first
// component, or nil for an empty piece. Holes and additional components
// (produced by a union or difference that split the piece) are not
// included; callers that need the full shape should range over
// Components.
func (p Polygon) OuterRing() []Point {
	if len(p.shape) == 0 {
		return nil
	}
	return append([]Point{}, p.shape[0].Outer...)
}

// Components exposes the piece's outer+hole rings directly, for callers
// (NFP construction, free-space island detection) that need the exact polygon rather than
// its bounding box.
func (p Polygon) Components() []Component {
	return p.shape
}

// FitsIn reports whether the piece's bbox fits inside the given rectangle,
// without rotation.
func (p Polygon) FitsIn(r Rectangle) bool {
	return Fits(p.BBox(), r)
}

// Translate returns a copy of the piece shifted by v.
func (p Polygon) Translate(v Vector) Polygon {
	out := p
	out.bboxCached, out.areaCached = false, p.areaCached
	out.area = p.area
	out.shape = make([]Component, len(p.shape))
	for i, c := range p.shape {
		out.shape[i] = c.translate(v)
	}
	return out
}

// PlaceAt returns a copy of the piece translated so its bbox's min corner
// sits at (x, y).
func (p Polygon) PlaceAt(x, y float64) Polygon {
	bb := p.BBox()
	return p.Translate(Vector{X: x - bb.Min.X, Y: y - bb.Min.Y})
}

// RotateAboutBBoxCenter returns a copy of the piece rotated by degrees
// about its own bbox center, with rotation accumulated modulo 360. A
// multiple of 90 degrees swaps bbox width and height exactly, since the
// caller relies on that for rotation-set enumeration (§4.7).
func (p Polygon) RotateAboutBBoxCenter(degrees float64) Polygon {
	bb := p.BBox()
	center := Point{X: (bb.Min.X + bb.Max.X) / 2, Y: (bb.Min.Y + bb.Max.Y) / 2}

	out := p
	out.areaCached = p.areaCached
	out.area = p.area
	out.bboxCached = false
	out.shape = make([]Component, len(p.shape))
	for i, c := range p.shape {
		out.shape[i] = c.rotate(center, degrees)
	}
	out.rotation = math.Mod(p.rotation+degrees, 360)
	if out.rotation < 0 {
		out.rotation += 360
	}
	return out
}

// IntersectsPolygon reports whether p and o overlap with positive area
// (within Epsilon): any edge pair crosses, or one piece's representative
// vertex lies strictly inside the other (accounting for holes).
func (p Polygon) IntersectsPolygon(o Polygon) bool {
	if !p.BBox().Intersects(o.BBox()) {
		return false
	}
	for _, ca := range p.shape {
		for _, cb := range o.shape {
			if componentsIntersect(ca, cb) {
				return true
			}
		}
	}
	return false
}

func componentsIntersect(a, b Component) bool {
	if !ringBBox(a.Outer).Intersects(ringBBox(b.Outer)) {
		return false
	}
	if ringsCross(a.Outer, b.Outer) {
		return true
	}
	// No boundary crossing: overlap iff one outer contains a point of the
	// other that isn't excluded by a hole.
	if len(a.Outer) > 0 && pointInComponent(b, a.Outer[0]) {
		return true
	}
	if len(b.Outer) > 0 && pointInComponent(a, b.Outer[0]) {
		return true
	}
	return false
}

func ringsCross(a, b []Point) bool {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			b1, b2 := b[j], b[(j+1)%nb]
			if _, _, _, ok := segIntersect(a1, a2, b1, b2); ok {
				return true
			}
		}
	}
	return false
}

func pointInComponent(c Component, pt Point) bool {
	if !pointInRing(c.Outer, pt) {
		return false
	}
	for _, h := range c.Holes {
		if pointInRing(h, pt) {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether pt lies within the piece's boundary
// (inside an outer ring and not inside any of its holes).
func (p Polygon) ContainsPoint(pt Point) bool {
	for _, c := range p.shape {
		if pointInComponent(c, pt) {
			return true
		}
	}
	return false
}

// IntersectsRect reports whether the piece overlaps rectangle r.
func (p Polygon) IntersectsRect(r Rectangle) bool {
	if !p.BBox().Intersects(r) {
		return false
	}
	rect := rectRing(r)
	for _, c := range p.shape {
		if ringsCross(c.Outer, rect) {
			return true
		}
		if len(rect) > 0 && pointInComponent(c, rect[0]) {
			return true
		}
		if len(c.Outer) > 0 && pointInRing(rect, c.Outer[0]) {
			return true
		}
	}
	return false
}

func rectRing(r Rectangle) []Point {
	return []Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// Add returns the union of p and o as a new piece carrying p's id.
func (p Polygon) Add(o Polygon) Polygon {
	return p.combine(o, opUnion)
}

// Subtract returns p with o's area removed, as a new piece carrying p's id.
func (p Polygon) Subtract(o Polygon) Polygon {
	return p.combine(o, opDifference)
}

// Intersect returns the overlap of p and o as a new piece carrying p's id.
func (p Polygon) Intersect(o Polygon) Polygon {
	return p.combine(o, opIntersection)
}

// combine applies a boolean operation between the first component of each
// operand — sufficient for the piece shapes this system constructs
// (single outer ring plus holes) — and wraps the resulting rings back
// into a piece. A difference keeps the holes already present on p, and a
// difference against a fully-contained clip adds a new hole directly from
// clipPolygons' disjoint-containment case. A union or intersection
// returns outer rings only: holes of either operand are not carried over.
func (p Polygon) combine(o Polygon, op clipOp) Polygon {
	if len(p.shape) == 0 {
		if op == opUnion {
			return o
		}
		return Polygon{id: p.id}
	}
	if len(o.shape) == 0 {
		if op == opDifference || op == opUnion {
			return Polygon{id: p.id, shape: p.shape}
		}
		return Polygon{id: p.id}
	}

	a, b := p.shape[0], o.shape[0]
	rings := clipPolygons(a.Outer, b.Outer, op)

	result := Polygon{id: p.id}
	switch op {
	case opDifference:
		if len(rings) == 2 {
			// subject with clip fully inside it: outer + new hole.
			comp := Component{Outer: ccw(rings[0]), Holes: append([][]Point{}, a.Holes...)}
			comp.Holes = append(comp.Holes, cw(rings[1]))
			result.shape = []Component{comp}
			return result
		}
		for _, r := range rings {
			result.shape = append(result.shape, Component{Outer: ccw(r), Holes: a.Holes})
		}
	default:
		for _, r := range rings {
			result.shape = append(result.shape, Component{Outer: ccw(r)})
		}
	}
	return result
}
