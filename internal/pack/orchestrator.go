// Package pack orchestrates the per-bin placement pipeline across as
// many bins as are needed to place every input piece, opening bins one
// at a time and running each through bounding-box placement, iterative
// move-and-replace refinement, and compression.
package pack

import (
	"context"
	"sort"

	"polynest/internal/bin"
	"polynest/internal/geom"
)

// Options configures a packing run.
type Options struct {
	// Rotations is the set of rotation angles (degrees) tried at every
	// placement decision. Defaults to {0, 90, 180, 270} if empty.
	Rotations []float64
	// CollisionMode selects the oracle every opened bin uses.
	CollisionMode bin.CollisionMode
	// Ctx is checked before each bin is opened, between move-and-replace
	// rounds, and before every piece considered by bounding-box packing
	// and move-and-replace; the dive-drop and free-space sweep passes that
	// close a bin do not check it. Cancelling it stops the run and returns
	// the bins produced so far. Defaults to context.Background() (never
	// cancelled) when nil.
	Ctx context.Context
}

func (o Options) normalized() Options {
	if len(o.Rotations) == 0 {
		o.Rotations = []float64{0, 90, 180, 270}
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	return o
}

// Result is the outcome of a packing run: the bins opened, in order, and
// any pieces that could not be placed in any bin (each too large for the
// bin dimension under every rotation, or left over when the run was
// cancelled).
type Result struct {
	Bins      []*bin.Bin
	Unplaced  []geom.Polygon
	Cancelled bool
}

// Pack places pieces into bins of dimension binDim, opening as many bins
// as needed. Pieces are tried largest-area first within each bin to
// improve packing density, matching optimizer.go's best-fit-first
// ordering; use PackPreserveOrder to keep the caller's original order.
func Pack(pieces []geom.Polygon, binDim geom.Rectangle, opts Options) Result {
	ordered := append([]geom.Polygon{}, pieces...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Area() > ordered[j].Area()
	})
	return run(ordered, binDim, opts)
}

// PackPreserveOrder places pieces into bins exactly as Pack does, but
// without reordering the input: pieces are attempted in the caller's
// original sequence.
func PackPreserveOrder(pieces []geom.Polygon, binDim geom.Rectangle, opts Options) Result {
	return run(append([]geom.Polygon{}, pieces...), binDim, opts)
}

func run(pieces []geom.Polygon, binDim geom.Rectangle, opts Options) Result {
	opts = opts.normalized()

	var bins []*bin.Bin
	remaining := pieces

	for len(remaining) > 0 {
		if opts.Ctx.Err() != nil {
			return Result{Bins: bins, Unplaced: remaining, Cancelled: true}
		}

		b := bin.New(binDim, bin.WithCollisionMode(opts.CollisionMode))

		unplaced := b.BoundingBoxPack(opts.Ctx, remaining, opts.Rotations)

		for placedBefore := -1; placedBefore != b.NPlaced(); {
			if opts.Ctx.Err() != nil {
				break
			}
			placedBefore = b.NPlaced()
			b.MoveAndReplace(opts.Ctx, b.NPlaced(), opts.Rotations)
			unplaced = b.BoundingBoxPack(opts.Ctx, unplaced, opts.Rotations)
		}

		b.Compress()
		unplaced = b.DiveDrop(unplaced)
		b.Compress()

		sweepRemainder(b, unplaced, opts.Rotations)

		if b.NPlaced() == 0 {
			// Nothing in `remaining` fits this bin dimension at all;
			// opening another bin would repeat forever, so stop here
			// and report the rest as unplaced.
			return Result{Bins: bins, Unplaced: unplaced}
		}

		bins = append(bins, b)
		remaining = stillUnplaced(b, unplaced)
	}

	return Result{Bins: bins}
}

// sweepRemainder gives every piece that bounding-box placement skipped
// one more chance via the global free-space island search, which can
// find room bbox_pack's free-rectangle scan missed (e.g. inside a
// concave piece's bbox).
func sweepRemainder(b *bin.Bin, unplaced []geom.Polygon, rotations []float64) {
	for i, piece := range unplaced {
		if unplaced[i].IsEmpty() {
			continue
		}
		_, placement := b.PlaceInGlobalFreeSpace(piece, rotations)
		if placement.Found {
			b.Place(piece, placement)
			unplaced[i] = geom.Polygon{}
		}
	}
}

func stillUnplaced(b *bin.Bin, attempted []geom.Polygon) []geom.Polygon {
	var out []geom.Polygon
	placedIDs := make(map[int]bool)
	for _, p := range b.Placed() {
		placedIDs[p.ID()] = true
	}
	for _, p := range attempted {
		if p.IsEmpty() {
			continue
		}
		if !placedIDs[p.ID()] {
			out = append(out, p)
		}
	}
	return out
}
