package bin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"polynest/internal/geom"
)

func square(id int, s float64) geom.Polygon {
	return geom.NewPolygon(id, []geom.Point{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}})
}

var defaultRotations = []float64{0, 90, 180, 270}

func TestBinPlacementStaysContained(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	piece := square(1, 20)

	placement := b.FindWhereToPlace(piece, defaultRotations)
	require.True(t, placement.Found)
	placed := b.Place(piece, placement)

	assert.True(t, b.Dimension().Contains(placed.BBox()))
	assert.Equal(t, 1, b.NPlaced())
}

func TestBinRejectsOverlap(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 30, 30))
	first := square(1, 20).PlaceAt(0, 0)
	b.AddPieceForTesting(first)

	overlapping := square(2, 20).PlaceAt(10, 10)
	assert.True(t, b.TestCollision(overlapping))
}

func TestBinNonOverlapInvariant(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	for i := 0; i < 6; i++ {
		piece := square(i, 20)
		placement := b.FindWhereToPlace(piece, defaultRotations)
		if !placement.Found {
			continue
		}
		b.Place(piece, placement)
	}

	placed := b.Placed()
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			assert.False(t, placed[i].IntersectsPolygon(placed[j]))
		}
	}
}

func TestBinAreaMonotonicity(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	before := b.OccupiedArea()
	piece := square(1, 10)
	placement := b.FindWhereToPlace(piece, defaultRotations)
	require.True(t, placement.Found)
	b.Place(piece, placement)
	assert.Greater(t, b.OccupiedArea(), before)
}

func TestBinCompressIsIdempotent(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	b.AddPieceForTesting(square(1, 10).PlaceAt(50, 50))
	b.Compress()
	firstPass := b.Placed()[0].BBox()
	b.Compress()
	secondPass := b.Placed()[0].BBox()
	assert.Equal(t, firstPass, secondPass)
}

// TestBinCompressConvergesOnMultiPieceRow covers three pieces in the same
// row where processing them in insertion order leaves a gap after one
// pass: A(x=40) settles against C's starting position before C has had a
// chance to move, so a second pass would keep shrinking the gap if
// Compress only ran once.
func TestBinCompressConvergesOnMultiPieceRow(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 10))
	b.AddPieceForTesting(square(1, 10).PlaceAt(40, 0))
	b.AddPieceForTesting(square(2, 10).PlaceAt(0, 0))
	b.AddPieceForTesting(square(3, 10).PlaceAt(20, 0))

	b.Compress()
	firstPass := make([]geom.Rectangle, len(b.Placed()))
	for i, p := range b.Placed() {
		firstPass[i] = p.BBox()
	}

	b.Compress()
	for i, p := range b.Placed() {
		assert.Equal(t, firstPass[i], p.BBox())
	}

	minX := b.Placed()[0].BBox().Min.X
	for _, p := range b.Placed()[1:] {
		if p.BBox().Min.X < minX {
			minX = p.BBox().Min.X
		}
	}
	assert.InDelta(t, 0, minX, 1e-5)
}

func TestBinCompressMovesTowardOrigin(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	b.AddPieceForTesting(square(1, 10).PlaceAt(50, 50))
	b.Compress()
	bb := b.Placed()[0].BBox()
	assert.InDelta(t, 0, bb.Min.X, 1e-5)
	assert.InDelta(t, 0, bb.Min.Y, 1e-5)
}

// TestBinSingleOversizedPieceDoesNotFit mirrors scenario S1: a piece
// larger than the bin in every rotation must not be placed.
func TestBinSingleOversizedPieceDoesNotFit(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 10, 10))
	piece := square(1, 20)
	placement := b.FindWhereToPlace(piece, defaultRotations)
	assert.False(t, placement.Found)
	assert.Equal(t, 0, b.NPlaced())
}

// TestBinExactFitFillsBin mirrors scenario S2: a piece exactly the size
// of the bin should be placed flush with it.
func TestBinExactFitFillsBin(t *testing.T) {
	dim := geom.NewRectangleXYWH(0, 0, 30, 30)
	b := New(dim)
	piece := square(1, 30)
	placement := b.FindWhereToPlace(piece, defaultRotations)
	require.True(t, placement.Found)
	placed := b.Place(piece, placement)
	assert.Equal(t, dim, placed.BBox())
}

func TestFreeRectanglesExcludePlacedPiece(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	piece := square(1, 40)
	placement := b.FindWhereToPlace(piece, defaultRotations)
	require.True(t, placement.Found)
	b.Place(piece, placement)

	for _, r := range b.FreeRectangles() {
		assert.False(t, r.Intersects(b.Placed()[0].BBox()))
	}
}

func TestMoveAndReplaceDoesNotIncreaseOccupiedArea(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 100, 100))
	for i := 0; i < 4; i++ {
		piece := square(i, 15)
		placement := b.FindWhereToPlace(piece, defaultRotations)
		if placement.Found {
			b.Place(piece, placement)
		}
	}
	before := b.OccupiedArea()
	b.MoveAndReplace(context.Background(), b.NPlaced(), defaultRotations)
	assert.InDelta(t, before, b.OccupiedArea(), 1e-6)
}

func TestDetectFreeSpaceIslandsCoversEmptyBin(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 50, 50))
	islands := b.DetectFreeSpaceIslands()
	require.Len(t, islands, 1)
	assert.InDelta(t, 2500, islands[0].Area, 1e-6)
}

// lShapedPiece covers the bin except for a 30x30 notch in its top-right
// corner, mirroring scenario S5.
func lShapedPiece(id int) geom.Polygon {
	return geom.NewPolygon(id, []geom.Point{
		{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 60, Y: 30},
		{X: 30, Y: 30}, {X: 30, Y: 60}, {X: 0, Y: 60},
	})
}

// TestPlaceInGlobalFreeSpaceFindsConcaveNotch asserts that a piece whose
// bounding box overlaps the L-shaped placed piece's bounding box entirely
// can still be placed in the actual open notch, which an island built
// from freeRects (excluding the L's full bbox) could never represent.
func TestPlaceInGlobalFreeSpaceFindsConcaveNotch(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 60, 60))
	l := lShapedPiece(1)
	b.AddPieceForTesting(l)

	notchPiece := square(2, 20)
	_, placement := b.PlaceInGlobalFreeSpace(notchPiece, defaultRotations)
	require.True(t, placement.Found)

	placed := notchPiece.RotateAboutBBoxCenter(placement.Rotation).PlaceAt(placement.Point.X, placement.Point.Y)
	assert.False(t, placed.IntersectsPolygon(l))
	assert.True(t, b.Dimension().Contains(placed.BBox()))
}

func TestDiveDropsPieceToFloor(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 50, 50))
	piece := square(1, 10)
	pt, ok := b.Dive(piece, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, pt.Y, 1e-5)
}

func TestDiveDropPlacesEveryLeftoverPiece(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 50, 50))
	unplaced := b.DiveDrop([]geom.Polygon{square(1, 10), square(2, 10)})
	assert.Empty(t, unplaced)
	assert.Equal(t, 2, b.NPlaced())
}

func TestDiveDropReportsOversizedPieceUnplaced(t *testing.T) {
	b := New(geom.NewRectangleXYWH(0, 0, 10, 10))
	unplaced := b.DiveDrop([]geom.Polygon{square(1, 20)})
	assert.Len(t, unplaced, 1)
	assert.Equal(t, 0, b.NPlaced())
}
