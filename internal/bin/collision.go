package bin

import "polynest/internal/geom"

// TestCollision reports whether piece, if placed exactly as given, would
// overlap the bin's edges or any already-placed piece, or fall outside
// the bin's dimension.
//
// The broad phase queries the R-tree for placed bboxes overlapping
// piece's bbox; only candidates surviving that filter pay for exact
// polygon intersection. In CollisionNFP mode, a piece that survives the
// precise test is additionally required to be a valid placement against
// the cached no-fit-polygons of the candidates, matching the original
// bin's isCollisionNFP/isValidPlacementNFP pairing.
func (b *Bin) TestCollision(piece geom.Polygon) bool {
	bb := piece.BBox()
	if !b.dimension.Contains(bb) {
		return true
	}

	candidates := b.index.QueryIntersecting(bb)
	for _, idx := range candidates {
		other := b.placedByIndex(idx)
		if other.IsEmpty() {
			continue
		}
		if piece.IntersectsPolygon(other) {
			return true
		}
	}

	if b.mode == CollisionNFP {
		for _, idx := range candidates {
			other := b.placedByIndex(idx)
			if other.IsEmpty() {
				continue
			}
			forbidden := b.nfpCache.Get(other, piece)
			if forbidden.ContainsPoint(bb.Min) {
				return true
			}
		}
	}
	return false
}

// placedByIndex looks up a placed piece by its R-tree insertion index.
// Pieces are inserted in commit order starting at 0, so the index is a
// direct slice offset as long as nothing has been removed.
func (b *Bin) placedByIndex(idx int) geom.Polygon {
	if idx < 0 || idx >= len(b.placed) {
		return geom.Polygon{}
	}
	return b.placed[idx]
}

// CollidesAny reports whether piece overlaps any of the given pieces,
// ignoring the bin's own placed set — used by compression to test a
// sliding piece against the other placed pieces.
func CollidesAny(piece geom.Polygon, others []geom.Polygon) bool {
	for _, o := range others {
		if piece.IntersectsPolygon(o) {
			return true
		}
	}
	return false
}
