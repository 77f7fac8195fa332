package pack

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

func TestPackFitsEverythingInOneBin(t *testing.T) {
	pieces := []geom.Polygon{square(1, 10), square(2, 10), square(3, 10)}
	result := Pack(pieces, geom.NewRectangleXYWH(0, 0, 100, 100), Options{})
	require.Len(t, result.Bins, 1)
	assert.Empty(t, result.Unplaced)
	assert.Equal(t, 3, result.Bins[0].NPlaced())
}

func TestPackOpensMultipleBinsWhenNeeded(t *testing.T) {
	var pieces []geom.Polygon
	for i := 0; i < 8; i++ {
		pieces = append(pieces, square(i, 40))
	}
	result := Pack(pieces, geom.NewRectangleXYWH(0, 0, 50, 50), Options{})
	assert.GreaterOrEqual(t, len(result.Bins), 2)
	total := 0
	for _, b := range result.Bins {
		total += b.NPlaced()
	}
	assert.Equal(t, 8, total+len(result.Unplaced))
}

func TestPackReportsUnplaceableOversizedPiece(t *testing.T) {
	pieces := []geom.Polygon{square(1, 500)}
	result := Pack(pieces, geom.NewRectangleXYWH(0, 0, 100, 100), Options{})
	assert.Empty(t, result.Bins)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, 1, result.Unplaced[0].ID())
}

func TestPackPreserveOrderDoesNotSort(t *testing.T) {
	pieces := []geom.Polygon{square(1, 10), square(2, 30), square(3, 5)}
	result := PackPreserveOrder(pieces, geom.NewRectangleXYWH(0, 0, 100, 100), Options{})
	require.Len(t, result.Bins, 1)
	assert.Equal(t, 3, result.Bins[0].NPlaced())
}

func TestPackTerminatesWithMixedSizes(t *testing.T) {
	pieces := []geom.Polygon{square(1, 500), square(2, 10), square(3, 20)}
	result := Pack(pieces, geom.NewRectangleXYWH(0, 0, 100, 100), Options{})
	require.Len(t, result.Bins, 1)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, 1, result.Unplaced[0].ID())
}

func TestPackStopsWhenContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var pieces []geom.Polygon
	for i := 0; i < 8; i++ {
		pieces = append(pieces, square(i, 40))
	}
	result := Pack(pieces, geom.NewRectangleXYWH(0, 0, 50, 50), Options{Ctx: ctx})
	assert.True(t, result.Cancelled)
	assert.Empty(t, result.Bins)
	assert.Len(t, result.Unplaced, 8)
}
