package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"polynest/internal/geom"
)

func box(x, y, w, h float64) geom.Rectangle {
	return geom.NewRectangleXYWH(x, y, w, h)
}

func TestRTreeQueryIntersecting(t *testing.T) {
	tr := New()
	tr.Insert(box(0, 0, 10, 10), 1)
	tr.Insert(box(20, 20, 10, 10), 2)
	tr.Insert(box(5, 5, 10, 10), 3)

	got := tr.QueryIntersecting(box(0, 0, 10, 10))
	assert.ElementsMatch(t, []int{1, 3}, got)
}

func TestRTreeRemove(t *testing.T) {
	tr := New()
	tr.Insert(box(0, 0, 1, 1), 1)
	assert.Equal(t, 1, tr.Len())
	assert.True(t, tr.Remove(box(0, 0, 1, 1), 1))
	assert.Equal(t, 0, tr.Len())
	assert.False(t, tr.Remove(box(0, 0, 1, 1), 1))
}

func TestRTreeSplitsUnderLoad(t *testing.T) {
	tr := New()
	for i := 0; i < fanout*4; i++ {
		x := float64(i)
		tr.Insert(box(x, 0, 1, 1), i)
	}
	assert.Equal(t, fanout*4, tr.Len())
	got := tr.QueryIntersecting(box(0, 0, 1, 1))
	assert.Contains(t, got, 0)
}
