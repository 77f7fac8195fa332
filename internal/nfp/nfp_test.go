package nfp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"polynest/internal/geom"
)

func square(id int, x, y, s float64) geom.Polygon {
	return geom.NewPolygon(id, []geom.Point{
		{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}, {X: x, Y: y + s},
	})
}

func TestComputeIFPShrinksContainer(t *testing.T) {
	container := geom.NewRectangleXYWH(0, 0, 100, 50)
	piece := square(1, 0, 0, 10)
	ifp := ComputeIFP(piece, container)
	assert.InDelta(t, 90, ifp.Width(), 1e-9)
	assert.InDelta(t, 40, ifp.Height(), 1e-9)
}

func TestComputeIFPTooLargeIsEmpty(t *testing.T) {
	container := geom.NewRectangleXYWH(0, 0, 5, 5)
	piece := square(1, 0, 0, 10)
	assert.True(t, ComputeIFP(piece, container).IsEmpty())
}

func TestCacheHitsOnRepeatedShape(t *testing.T) {
	c := NewCache()
	a := square(1, 0, 0, 10)
	b := square(2, 0, 0, 5)
	c.getOrCompute(a, b)
	c.getOrCompute(a, b)
	stats := c.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.TotalEntries)
}

func TestFindBestPlacementAvoidsObstacle(t *testing.T) {
	c := NewCache()
	container := geom.NewRectangleXYWH(0, 0, 100, 100)
	obstacle := square(1, 0, 0, 50)
	piece := square(2, 0, 0, 10)

	pt, ok := FindBestPlacement(c, piece, []geom.Polygon{obstacle}, container)
	assert.True(t, ok)
	placed := piece.PlaceAt(pt.X, pt.Y)
	assert.False(t, placed.IntersectsPolygon(obstacle))
	assert.True(t, placed.FitsIn(container))
}

func TestIsValidPlacement(t *testing.T) {
	container := geom.NewRectangleXYWH(0, 0, 100, 100)
	obstacle := square(1, 0, 0, 50)
	piece := square(2, 0, 0, 10)

	assert.False(t, IsValidPlacement(piece, geom.Point{X: 10, Y: 10}, []geom.Polygon{obstacle}, container))
	assert.True(t, IsValidPlacement(piece, geom.Point{X: 60, Y: 60}, []geom.Polygon{obstacle}, container))
}

// lShape builds a 60x60 bounding-box L with its top-right 30x30 quadrant
// cut away, stationary at the origin.
func lShape(id int) geom.Polygon {
	return geom.NewPolygon(id, []geom.Point{
		{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 60, Y: 30},
		{X: 30, Y: 30}, {X: 30, Y: 60}, {X: 0, Y: 60},
	})
}

func TestComputeNFPOfConcavePieceIsNotItsConvexHull(t *testing.T) {
	stationary := lShape(1)
	orbiting := square(2, 0, 0, 20)

	forbidden := ComputeNFP(stationary, orbiting)

	// A convex-hull approximation of the L would forbid every anchor in
	// its cut-away quadrant, including one deep inside the notch.
	notchAnchor := geom.Point{X: 45, Y: 45}
	assert.False(t, forbidden.ContainsPoint(notchAnchor))

	// An anchor over the L's solid lower-left quadrant is still forbidden.
	solidAnchor := geom.Point{X: 10, Y: 10}
	assert.True(t, forbidden.ContainsPoint(solidAnchor))
}

func TestFindBestPlacementFitsIntoConcaveNotch(t *testing.T) {
	c := NewCache()
	container := geom.NewRectangleXYWH(0, 0, 60, 60)
	obstacle := lShape(1)
	piece := square(2, 0, 0, 20)

	pt, ok := FindBestPlacement(c, piece, []geom.Polygon{obstacle}, container)
	require.True(t, ok)
	placed := piece.PlaceAt(pt.X, pt.Y)
	assert.False(t, placed.IntersectsPolygon(obstacle))
	assert.True(t, placed.FitsIn(container))
}
