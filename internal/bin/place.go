package bin

import (
	"context"

	"polynest/internal/geom"
)

// Placement describes where a candidate piece can go: which rotation
// from the caller's rotation set fits, and the reference point (bbox min
// corner) the piece should be translated to.
type Placement struct {
	Rotation float64
	Point    geom.Point
	Found    bool
}

// FindWhereToPlace searches the bin's free rectangles, newest first, for
// the position of piece under each rotation in rotations with the
// smallest wastage = min(F.w - P.w, F.h - P.h), mirroring
// guillotinePacker.insert's bestFit selection generalized to a
// caller-supplied rotation set. Ties keep the first (newest) candidate
// found.
func (b *Bin) FindWhereToPlace(piece geom.Polygon, rotations []float64) Placement {
	if len(rotations) == 0 {
		rotations = []float64{0}
	}

	best := Placement{}
	bestWaste := -1.0

	for _, rot := range rotations {
		candidate := piece.RotateAboutBBoxCenter(rot)
		bb := candidate.BBox()

		// Reverse insertion order: newer free rectangles (tighter
		// corners left by the most recent placement) are tried first.
		for i := len(b.freeRects) - 1; i >= 0; i-- {
			fr := b.freeRects[i]
			if !geom.Fits(bb, fr) {
				continue
			}
			placedAt := candidate.PlaceAt(fr.Min.X, fr.Min.Y)
			if b.TestCollision(placedAt) {
				continue
			}
			waste := min(fr.Width()-bb.Width(), fr.Height()-bb.Height())
			if bestWaste < 0 || waste < bestWaste {
				bestWaste = waste
				best = Placement{Rotation: rot, Point: fr.Min, Found: true}
			}
		}
	}
	return best
}

// Place commits piece at the position and rotation given by a prior
// FindWhereToPlace result, returning the placed piece.
func (b *Bin) Place(piece geom.Polygon, placement Placement) geom.Polygon {
	placed := piece.RotateAboutBBoxCenter(placement.Rotation).PlaceAt(placement.Point.X, placement.Point.Y)
	b.commit(placed)
	return placed
}

// BoundingBoxPack attempts to place every piece in pieces, in order,
// using FindWhereToPlace/Place. It returns the pieces that could not be
// placed, preserving their relative order — the stage-1 pass of the
// packing pipeline (§4.5.4 / §4.6). ctx is checked before every piece
// considered; once cancelled, that piece and everything after it is
// reported unplaced rather than attempted.
func (b *Bin) BoundingBoxPack(ctx context.Context, pieces []geom.Polygon, rotations []float64) []geom.Polygon {
	var unplaced []geom.Polygon
	for i, piece := range pieces {
		if ctx.Err() != nil {
			unplaced = append(unplaced, pieces[i:]...)
			break
		}
		placement := b.FindWhereToPlace(piece, rotations)
		if !placement.Found {
			unplaced = append(unplaced, piece)
			continue
		}
		b.Place(piece, placement)
	}
	return unplaced
}
