package bin

import (
	"context"

	"polynest/internal/geom"
)

// MoveAndReplace re-seats every placed piece up to indexLimit (exclusive):
// it removes the piece, compresses the remaining pieces, then sweeps the
// removed piece against every remaining placed piece's bounding box in
// turn, accepting the first collision-free spot found. A non-improving
// result (or no spot at all) restores the piece, and the pieces compressed
// around it, to where they started.
// Returns whether any piece moved. Mirrors Bin::moveAndReplace/sweep.
// ctx is checked before every piece considered; once cancelled, the
// pieces re-seated so far are kept and the rest are left as they were.
func (b *Bin) MoveAndReplace(ctx context.Context, indexLimit int, rotations []float64) bool {
	if indexLimit > len(b.placed) {
		indexLimit = len(b.placed)
	}
	improved := false

	for i := 0; i < indexLimit; i++ {
		if ctx.Err() != nil {
			break
		}
		saved := b.placed
		original := b.placed[i]
		rest := without(b.placed, i)

		b.placed = rest
		b.reindex()
		b.Compress()

		placement := b.sweepAgainstPlaced(original, rotations)
		if !placement.Found {
			// Put every piece back exactly where it was.
			b.placed = saved
			b.reindex()
			continue
		}

		moved := original.RotateAboutBBoxCenter(placement.Rotation).PlaceAt(placement.Point.X, placement.Point.Y)
		if !betterPosition(moved, original) {
			b.placed = saved
			b.reindex()
			continue
		}
		improved = true
		b.placed = insertAt(b.placed, i, moved)
		b.reindex()
	}
	return improved
}

// sweepAgainstPlaced implements the sweep half of move-and-replace: for
// every piece K still placed, sweep piece starting from K's bounding box
// min corner and take the first position where piece fits without
// overlapping K or colliding with anything else. Pieces are tried in
// placement order, so the first hit found is accepted rather than the
// best one over every K.
func (b *Bin) sweepAgainstPlaced(piece geom.Polygon, rotations []float64) Placement {
	step := sweepStep(piece)
	for _, k := range b.placed {
		if placement := b.Sweep(piece, k.BBox(), step, rotations); placement.Found {
			return placement
		}
	}
	return Placement{}
}

// sweepStep picks a grid step fine enough to find a fit inside a free
// pocket roughly piece's own size, without scanning at sub-unit
// granularity for large pieces.
func sweepStep(piece geom.Polygon) float64 {
	bb := piece.BBox()
	step := min(bb.Width(), bb.Height()) / 4
	if step <= geom.Epsilon {
		return 1
	}
	return step
}

// betterPosition reports whether candidate sits closer to the bin's
// origin (lower Y, then lower X) than original — the tie-break the
// move-and-replace loop uses to decide whether a re-seat is progress.
func betterPosition(candidate, original geom.Polygon) bool {
	c, o := candidate.BBox().Min, original.BBox().Min
	return c.Less(o) && !c.Eq(o)
}

func insertAt(pieces []geom.Polygon, i int, p geom.Polygon) []geom.Polygon {
	out := make([]geom.Polygon, 0, len(pieces)+1)
	out = append(out, pieces[:i]...)
	out = append(out, p)
	out = append(out, pieces[i:]...)
	return out
}

// Sweep scans a grid of candidate positions inside target's bounding box,
// starting at target's min corner, looking for a spot where piece fits
// without colliding — used by MoveAndReplace to tuck a removed piece into
// the space around or inside another placed piece's bbox, mirroring
// Bin::sweep. The first collision-free hit is returned; unlike
// FindWhereToPlace this does not search for the least-wasteful spot.
func (b *Bin) Sweep(piece geom.Polygon, target geom.Rectangle, step float64, rotations []float64) Placement {
	if step <= 0 {
		step = 1
	}
	if len(rotations) == 0 {
		rotations = []float64{0}
	}

	for _, rot := range rotations {
		candidate := piece.RotateAboutBBoxCenter(rot)
		bb := candidate.BBox()
		if !geom.Fits(bb, target) {
			continue
		}
		for y := target.Min.Y; y+bb.Height() <= target.Max.Y+geom.Epsilon; y += step {
			for x := target.Min.X; x+bb.Width() <= target.Max.X+geom.Epsilon; x += step {
				placedAt := candidate.PlaceAt(x, y)
				if b.TestCollision(placedAt) {
					continue
				}
				return Placement{Rotation: rot, Point: geom.Point{X: x, Y: y}, Found: true}
			}
		}
	}
	return Placement{}
}
