// Package bin implements the state and placement algorithms for a single
// rectangular bin being packed with polygon pieces: collision testing,
// maximal free-rectangle bookkeeping, bounding-box placement, compression,
// the two-stage move-and-replace refinement, and free-space island
// detection.
package bin

import (
	"polynest/internal/geom"
	"polynest/internal/nfp"
	"polynest/internal/spatial"
)

// CollisionMode selects how the bin tests two pieces for overlap.
type CollisionMode int

const (
	// CollisionPrecise tests bbox overlap first, then exact polygon
	// intersection — the default, always-available oracle.
	CollisionPrecise CollisionMode = iota
	// CollisionNFP additionally consults the no-fit-polygon cache to
	// validate placements ahead of committing them.
	CollisionNFP
)

// Bin tracks everything placed into one fixed-size rectangular container:
// the placed pieces, the maximal free rectangles remaining, an R-tree over
// placed bounding boxes for broad-phase collision queries, and an
// optional NFP cache for the precise no-fit-polygon oracle.
type Bin struct {
	dimension geom.Rectangle
	placed    []geom.Polygon
	freeRects []geom.Rectangle
	index     *spatial.RTree
	nfpCache  *nfp.Cache
	mode      CollisionMode
	nextIdx   int
}

// Option configures a Bin at construction time.
type Option func(*Bin)

// WithCollisionMode selects the collision oracle the bin uses.
func WithCollisionMode(mode CollisionMode) Option {
	return func(b *Bin) { b.mode = mode }
}

// New creates an empty bin over dimension, with the whole bin as its one
// free rectangle.
func New(dimension geom.Rectangle, opts ...Option) *Bin {
	b := &Bin{
		dimension: dimension,
		freeRects: []geom.Rectangle{dimension},
		index:     spatial.New(),
		nfpCache:  nfp.NewCache(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dimension returns the bin's outer rectangle.
func (b *Bin) Dimension() geom.Rectangle { return b.dimension }

// Placed returns the pieces committed to the bin, in placement order.
func (b *Bin) Placed() []geom.Polygon {
	return append([]geom.Polygon{}, b.placed...)
}

// NPlaced returns the number of pieces committed to the bin.
func (b *Bin) NPlaced() int { return len(b.placed) }

// OccupiedArea returns the sum of the placed pieces' areas.
func (b *Bin) OccupiedArea() float64 {
	total := 0.0
	for _, p := range b.placed {
		total += p.Area()
	}
	return total
}

// EmptyArea returns the bin's total area minus OccupiedArea.
func (b *Bin) EmptyArea() float64 {
	return b.dimension.Area() - b.OccupiedArea()
}

// FreeRectangles returns the current maximal free rectangles.
func (b *Bin) FreeRectangles() []geom.Rectangle {
	return append([]geom.Rectangle{}, b.freeRects...)
}

// commit records piece as placed: appends it, re-splits the free
// rectangles around its bbox, and indexes its bbox in the R-tree.
func (b *Bin) commit(piece geom.Polygon) {
	bb := piece.BBox()
	b.placed = append(b.placed, piece)
	b.index.Insert(bb, b.nextIdx)
	b.nextIdx++
	b.splitAroundPlacement(bb)
}

// AddPieceForTesting places piece without running the placement search,
// for building fixture bins in tests.
func (b *Bin) AddPieceForTesting(piece geom.Polygon) {
	b.commit(piece)
}
