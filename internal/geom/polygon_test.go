package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func TestPolygonAreaAndBBox(t *testing.T) {
	p := NewPolygon(1, rect(0, 0, 10, 4))
	assert.InDelta(t, 40, p.Area(), 1e-9)
	assert.Equal(t, Rectangle{Min: Point{0, 0}, Max: Point{10, 4}}, p.BBox())
	assert.Equal(t, 4, p.VertexCount())
}

func TestPolygonRotate90SwapsBBox(t *testing.T) {
	p := NewPolygon(1, rect(0, 0, 10, 4))
	r := p.RotateAboutBBoxCenter(90)
	bb := r.BBox()
	assert.InDelta(t, 4, bb.Width(), 1e-6)
	assert.InDelta(t, 10, bb.Height(), 1e-6)
	assert.InDelta(t, 90, r.Rotation(), 1e-9)
}

func TestPolygonRotateCumulativeMod360(t *testing.T) {
	p := NewPolygon(1, rect(0, 0, 10, 4))
	r := p.RotateAboutBBoxCenter(270).RotateAboutBBoxCenter(180)
	assert.InDelta(t, 90, r.Rotation(), 1e-9)
}

func TestPolygonTranslateAndPlaceAt(t *testing.T) {
	p := NewPolygon(1, rect(0, 0, 5, 5))
	placed := p.PlaceAt(10, 20)
	bb := placed.BBox()
	assert.InDelta(t, 10, bb.Min.X, 1e-9)
	assert.InDelta(t, 20, bb.Min.Y, 1e-9)
}

func TestPolygonIntersects(t *testing.T) {
	a := NewPolygon(1, rect(0, 0, 10, 10))
	b := NewPolygon(2, rect(5, 5, 10, 10))
	c := NewPolygon(3, rect(20, 20, 5, 5))
	assert.True(t, a.IntersectsPolygon(b))
	assert.False(t, a.IntersectsPolygon(c))
}

func TestPolygonIntersectsRect(t *testing.T) {
	a := NewPolygon(1, rect(0, 0, 10, 10))
	assert.True(t, a.IntersectsRect(NewRectangleXYWH(5, 5, 2, 2)))
	assert.False(t, a.IntersectsRect(NewRectangleXYWH(20, 20, 2, 2)))
}

// TestPolygonSubtractCornerProducesL mirrors scenario S5: a 60x60 square
// with a 30x30 corner removed should yield an L-shaped piece of area 2700.
func TestPolygonSubtractCornerProducesL(t *testing.T) {
	outer := NewPolygon(1, rect(0, 0, 60, 60))
	corner := NewPolygon(2, rect(30, 30, 30, 30))
	l := outer.Subtract(corner)
	require.False(t, l.IsEmpty())
	assert.InDelta(t, 2700, l.Area(), 1e-6)
}

func TestPolygonWithHole(t *testing.T) {
	outer := NewPolygon(1, rect(0, 0, 10, 10))
	hole := NewPolygon(2, rect(3, 3, 2, 2))
	withHole := NewPolygonWithHole(1, outer, hole)
	assert.InDelta(t, 96, withHole.Area(), 1e-9)
}
