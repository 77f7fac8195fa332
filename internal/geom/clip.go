package geom

// clipOp selects the boolean operation performed by clipPolygons.
type clipOp int

const (
	opUnion clipOp = iota
	opIntersection
	opDifference // subject - clip
)

// ghVertex is a node in one of the two circular vertex lists used by the
// Greiner-Hormann polygon clipping algorithm.
type ghVertex struct {
	p          Point
	next, prev int
	intersect  bool
	entry      bool
	neighbor   int // index into the other list, only valid if intersect
	alpha      float64
	visited    bool
}

type ghList []*ghVertex

// buildList turns a closed ring into a circular doubly linked vertex list.
func buildList(ring []Point) ghList {
	n := len(ring)
	l := make(ghList, n)
	for i, p := range ring {
		l[i] = &ghVertex{p: p, next: (i + 1) % n, prev: (i - 1 + n) % n}
	}
	return l
}

// insertIntersection inserts a new intersection vertex between list index
// `from` and its current next, ordered by alpha among any intersections
// already inserted on that edge. Returns the index of the new vertex.
func (l *ghList) insertIntersection(from int, p Point, alpha float64) int {
	idx := len(*l)
	v := &ghVertex{p: p, intersect: true, alpha: alpha}
	*l = append(*l, v)

	// Walk forward from `from` while the next vertex is an original
	// (non-inserted) vertex's successor chain with a smaller alpha on the
	// same original edge. We approximate "same edge" by walking only
	// through vertices inserted by this call chain; callers insert in
	// alpha order per edge by construction (see insertEdgeIntersections).
	cur := from
	for {
		next := (*l)[cur].next
		if !(*l)[next].intersect || (*l)[next].alpha >= alpha {
			break
		}
		cur = next
	}
	next := (*l)[cur].next
	v.prev = cur
	v.next = next
	(*l)[cur].next = idx
	(*l)[next].prev = idx
	return idx
}

// segIntersect computes the intersection of segments p1-p2 and p3-p4 if
// one exists strictly within both segments (or touching at endpoints),
// returning the point and the parametric positions along each segment.
func segIntersect(p1, p2, p3, p4 Point) (pt Point, t, u float64, ok bool) {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y
	denom := d1x*d2y - d1y*d2x
	if abs(denom) < 1e-12 {
		return Point{}, 0, 0, false
	}
	t = ((p3.X-p1.X)*d2y - (p3.Y-p1.Y)*d2x) / denom
	u = ((p3.X-p1.X)*d1y - (p3.Y-p1.Y)*d1x) / denom
	if t < -1e-9 || t > 1+1e-9 || u < -1e-9 || u > 1+1e-9 {
		return Point{}, 0, 0, false
	}
	return Point{X: p1.X + t*d1x, Y: p1.Y + t*d1y}, clamp01(t), clamp01(u), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// pointInRing is an even-odd ray-casting point-in-polygon test.
func pointInRing(ring []Point, pt Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[j], ring[i]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// clipPolygons performs a boolean operation between two simple (possibly
// non-convex) rings using the Greiner-Hormann algorithm. Both rings are
// assumed CCW and closed implicitly. When the rings do not intersect at
// all, the degenerate containment cases are resolved directly. Returns the
// set of result rings (a difference or union can produce more than one).
func clipPolygons(subject, clip []Point, op clipOp) [][]Point {
	if len(subject) < 3 || len(clip) < 3 {
		return nil
	}

	sList := buildList(subject)
	cList := buildList(clip)

	nS, nC := len(subject), len(clip)
	anyIntersection := false
	for i := 0; i < nS; i++ {
		a1, a2 := subject[i], subject[(i+1)%nS]
		for j := 0; j < nC; j++ {
			b1, b2 := clip[j], clip[(j+1)%nC]
			pt, t, u, ok := segIntersect(a1, a2, b1, b2)
			if !ok {
				continue
			}
			anyIntersection = true
			si := sList.insertIntersection(i, pt, t)
			ci := cList.insertIntersection(j, pt, u)
			sList[si].neighbor = ci
			cList[ci].neighbor = si
		}
	}

	if !anyIntersection {
		return clipDisjoint(subject, clip, op)
	}

	markEntryExit(sList, clip)
	markEntryExit(cList, subject)

	switch op {
	case opDifference:
		// Flip clip's entry/exit so tracing removes the clip area.
		for _, v := range cList {
			if v.intersect {
				v.entry = !v.entry
			}
		}
	}

	return traceGH(sList, cList)
}

// clipDisjoint handles the case where the two rings' boundaries never
// cross: either one fully contains the other, or they are disjoint.
func clipDisjoint(subject, clip []Point, op clipOp) [][]Point {
	subjectInClip := pointInRing(clip, subject[0])
	clipInSubject := pointInRing(subject, clip[0])

	switch op {
	case opIntersection:
		if subjectInClip {
			return [][]Point{append([]Point{}, subject...)}
		}
		if clipInSubject {
			return [][]Point{append([]Point{}, clip...)}
		}
		return nil
	case opDifference:
		if clipInSubject {
			// clip is a hole in subject; caller composes outer+hole.
			return [][]Point{append([]Point{}, subject...), reversed(clip)}
		}
		if subjectInClip {
			return nil
		}
		return [][]Point{append([]Point{}, subject...)}
	default: // opUnion
		if subjectInClip {
			return [][]Point{append([]Point{}, clip...)}
		}
		if clipInSubject {
			return [][]Point{append([]Point{}, subject...)}
		}
		return [][]Point{append([]Point{}, subject...), append([]Point{}, clip...)}
	}
}

func reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// markEntryExit sets the entry/exit flag of every intersection vertex in
// list l by checking, for the first intersection found while walking the
// ring, whether that vertex is an entry into `other`, then alternating.
func markEntryExit(l ghList, other []Point) {
	// Determine status of the very first vertex (index 0) relative to
	// `other`; walking forward, the status flips at every intersection.
	status := pointInRing(other, l[0].p)
	for i := 0; i < len(l); i++ {
		v := l[i]
		if v.intersect {
			v.entry = !status
			status = !status
		}
	}
}

// traceGH walks the marked vertex lists to emit the resulting ring(s).
func traceGH(sList, cList ghList) [][]Point {
	var results [][]Point

	for {
		start := -1
		for i, v := range sList {
			if v.intersect && !v.visited {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}

		var ring []Point
		cur := start
		curList := sList
		otherList := cList
		for {
			v := curList[cur]
			if v.visited && len(ring) > 0 {
				break
			}
			v.visited = true
			ring = append(ring, v.p)

			forward := v.entry
			if v.intersect {
				// Switch lists at every intersection vertex.
				nb := v.neighbor
				curList, otherList = otherList, curList
				cur = nb
				curList[cur].visited = true
				v = curList[cur]
			}
			if forward {
				cur = curList[cur].next
			} else {
				cur = curList[cur].prev
			}
			if cur == start && sameList(curList, sList) {
				break
			}
			if len(ring) > len(sList)+len(cList)+4 {
				break // safety valve against malformed topology
			}
		}
		if len(ring) >= 3 {
			results = append(results, ring)
		}
	}
	return results
}

func sameList(a, b ghList) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// DifferenceRings returns subject with clip's area removed, as a raw ring
// list: one ring if clip only trims subject's boundary, an outer+hole pair
// if clip sits entirely inside subject, or none if clip covers subject
// entirely. Exposed for callers outside this package (the free-space
// island detector) that need a plain subject-minus-clip without going
// through a Polygon.
func DifferenceRings(subject, clip []Point) [][]Point {
	return clipPolygons(subject, clip, opDifference)
}

// UnionRings repeatedly merges any two rings in the set that overlap into
// one, until a full pass finds nothing left to merge. Unlike Polygon.Add
// (which only ever combines a piece's first component), this keeps every
// disjoint result ring rather than dropping it, which is what a caller
// unioning many small pieces (e.g. a Minkowski-sum decomposition) needs.
func UnionRings(rings [][]Point) [][]Point {
	merged := append([][]Point{}, rings...)
	for {
		mergedAny := false
		for i := 0; i < len(merged); i++ {
			for j := i + 1; j < len(merged); j++ {
				if !ringBBox(merged[i]).Intersects(ringBBox(merged[j])) {
					continue
				}
				u := clipPolygons(merged[i], merged[j], opUnion)
				if len(u) != 1 {
					continue
				}
				merged[i] = u[0]
				merged = append(merged[:j], merged[j+1:]...)
				mergedAny = true
				break
			}
			if mergedAny {
				break
			}
		}
		if !mergedAny {
			return merged
		}
	}
}
