package bin

import "polynest/internal/geom"

// Compress slides every placed piece, in insertion order, as far toward
// the bin's lower-left corner as it will go without colliding with the
// bin edges or any other placed piece — first horizontally, then
// vertically, matching Bin::compress/compressPiece's axis-by-axis sweep.
// A single pass is order-dependent (an earlier piece can settle against a
// later piece's stale position), so passes repeat until one completes
// with no piece moving; that fixed point is what makes Compress
// idempotent — a call once settled makes no further moves.
func (b *Bin) Compress() {
	for {
		moved := false
		for i := range b.placed {
			if b.compressPiece(i) {
				moved = true
			}
		}
		if !moved {
			return
		}
	}
}

func (b *Bin) compressPiece(i int) bool {
	piece := b.placed[i]
	rest := without(b.placed, i)

	moved := piece
	moved = b.slide(moved, rest, geom.Vector{X: -1, Y: 0})
	moved = b.slide(moved, rest, geom.Vector{X: 0, Y: -1})

	b.placed[i] = moved
	b.reindex()
	return !moved.BBox().Min.Eq(piece.BBox().Min)
}

// slide moves piece along direction until the next step would leave the
// bin or collide: it steps by the piece's own extent to the first blocked
// step, then binary-searches the free travel distance below it.
func (b *Bin) slide(piece geom.Polygon, obstacles []geom.Polygon, direction geom.Vector) geom.Polygon {
	limit := b.travelLimit(piece, direction)
	if limit <= geom.Epsilon {
		return piece
	}

	// Walk in steps of the piece's own extent to the first blocked one, so
	// the search below starts from there instead of the full travel range.
	bb := piece.BBox()
	stride := bb.Width()*direction.X*direction.X + bb.Height()*direction.Y*direction.Y
	lo, hi := 0.0, limit
	for d := stride; stride > geom.Epsilon && d < limit; d += stride {
		moved := piece.Translate(direction.Scale(d))
		if !b.dimension.Contains(moved.BBox()) || CollidesAny(moved, obstacles) {
			hi = d
			break
		}
		lo = d
	}
	best := lo
	for iter := 0; iter < 40 && hi-lo > 1e-7; iter++ {
		mid := (lo + hi) / 2
		moved := piece.Translate(direction.Scale(mid))
		if b.dimension.Contains(moved.BBox()) && !CollidesAny(moved, obstacles) {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}
	return piece.Translate(direction.Scale(best))
}

// travelLimit bounds how far piece can move along an axis-aligned unit
// direction before its bbox would leave the bin's dimension.
func (b *Bin) travelLimit(piece geom.Polygon, direction geom.Vector) float64 {
	bb := piece.BBox()
	switch {
	case direction.X < 0:
		return bb.Min.X - b.dimension.Min.X
	case direction.X > 0:
		return b.dimension.Max.X - bb.Max.X
	case direction.Y < 0:
		return bb.Min.Y - b.dimension.Min.Y
	default:
		return b.dimension.Max.Y - bb.Max.Y
	}
}

func without(pieces []geom.Polygon, i int) []geom.Polygon {
	out := make([]geom.Polygon, 0, len(pieces)-1)
	for j, p := range pieces {
		if j != i {
			out = append(out, p)
		}
	}
	return out
}

// reindex rebuilds the R-tree and free-rectangle set from scratch against
// the current placed set. Compression changes every piece's position, so
// incremental index maintenance isn't worth the bookkeeping here.
func (b *Bin) reindex() {
	fresh := New(b.dimension, WithCollisionMode(b.mode))
	for _, p := range b.placed {
		fresh.commit(p)
	}
	b.freeRects = fresh.freeRects
	b.index = fresh.index
	b.nextIdx = fresh.nextIdx
}

// Dive drops piece straight down from the top of the bin at a fixed X
// position until it rests on the floor, another piece, or the bin's
// bottom edge, mirroring Bin::dive's top-drop placement. It returns the
// Y at which the piece's bbox min corner comes to rest at that X, or false
// if no such position exists without leaving the bin horizontally.
func (b *Bin) Dive(piece geom.Polygon, x float64) (geom.Point, bool) {
	bb := piece.BBox()
	if x < b.dimension.Min.X-geom.Epsilon || x+bb.Width() > b.dimension.Max.X+geom.Epsilon {
		return geom.Point{}, false
	}

	top := piece.PlaceAt(x, b.dimension.Max.Y-bb.Height())
	if b.TestCollision(top) {
		// Even the topmost position collides; no drop position exists.
		return geom.Point{}, false
	}

	lo, hi := b.dimension.Min.Y, b.dimension.Max.Y-bb.Height()
	// Step down by the piece's own height to the first colliding position,
	// so the search below cannot land beneath a piece in the drop path.
	for y := hi - bb.Height(); bb.Height() > geom.Epsilon && y > lo; y -= bb.Height() {
		if b.TestCollision(piece.PlaceAt(x, y)) {
			lo = y
			break
		}
		hi = y
	}
	for iter := 0; iter < 48 && hi-lo > 1e-7; iter++ {
		mid := (lo + hi) / 2
		candidate := piece.PlaceAt(x, mid)
		if b.TestCollision(candidate) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return geom.Point{X: x, Y: hi}, true
}

// diveDropColumns is the number of evenly spaced X positions Dive is tried
// at across the bin's width, plus the bin.w-piece.w fallback column.
const diveDropColumns = 10

// DiveDrop dives every piece in leftover at a series of X positions spread
// across the bin's width — 0, w/k, 2w/k, ... — falling back to
// bin.w-piece.w when none of those columns fit, and commits the first
// successful drop for each piece. It returns the pieces still unplaced
// after every column has been tried, mirroring Bin::diveDrop's top-drop
// gravity placement, the mandatory stage-3 pass of the packing pipeline.
func (b *Bin) DiveDrop(leftover []geom.Polygon) []geom.Polygon {
	var unplaced []geom.Polygon
	for _, piece := range leftover {
		placed, ok := b.diveDropOne(piece)
		if !ok {
			unplaced = append(unplaced, piece)
			continue
		}
		b.commit(placed)
	}
	return unplaced
}

func (b *Bin) diveDropOne(piece geom.Polygon) (geom.Polygon, bool) {
	w := b.dimension.Width()
	columns := make([]float64, 0, diveDropColumns+1)
	for k := 0; k < diveDropColumns; k++ {
		columns = append(columns, b.dimension.Min.X+w*float64(k)/float64(diveDropColumns))
	}
	columns = append(columns, b.dimension.Max.X-piece.BBox().Width())

	for _, x := range columns {
		if p, ok := b.Dive(piece, x); ok {
			return piece.PlaceAt(p.X, p.Y), true
		}
	}
	return geom.Polygon{}, false
}
