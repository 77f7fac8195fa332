package bin

import "polynest/internal/geom"

// splitAroundPlacement updates the bin's maximal free rectangles after a
// piece's bbox `used` has been committed: every free rectangle overlapping
// `used` is replaced by the rectangular slabs left over around it, and any
// resulting rectangle fully contained in another is dropped. Mirrors
// guillotinePacker.splitAroundPlacement/pruneContained.
func (b *Bin) splitAroundPlacement(used geom.Rectangle) {
	var next []geom.Rectangle
	for _, fr := range b.freeRects {
		if !fr.Intersects(used) {
			next = append(next, fr)
			continue
		}
		next = append(next, fr.Split(used)...)
	}
	b.freeRects = pruneContained(next)
}

// pruneContained removes every rectangle in rects that is fully contained
// in another (non-identical) rectangle in the set, leaving only the
// maximal ones.
func pruneContained(rects []geom.Rectangle) []geom.Rectangle {
	keep := make([]bool, len(rects))
	for i := range rects {
		keep[i] = true
	}
	for i, a := range rects {
		if !keep[i] {
			continue
		}
		for j, c := range rects {
			if i == j || !keep[j] {
				continue
			}
			if a.Contains(c) && !c.Contains(a) {
				keep[j] = false
			}
		}
	}
	var out []geom.Rectangle
	for i, r := range rects {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}

// largestFreeRect returns the free rectangle with the greatest area, and
// whether the bin has any free space at all.
func (b *Bin) largestFreeRect() (geom.Rectangle, bool) {
	if len(b.freeRects) == 0 {
		return geom.Rectangle{}, false
	}
	best := b.freeRects[0]
	for _, r := range b.freeRects[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return best, true
}
