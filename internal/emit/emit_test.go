package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"polynest/internal/bin"
	"polynest/internal/geom"
)

func square(id int, s float64) geom.Polygon {
	return geom.NewPolygon(id, []geom.Point{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}})
}

func TestWriteBinFormat(t *testing.T) {
	b := bin.New(geom.NewRectangleXYWH(0, 0, 50, 50))
	b.AddPieceForTesting(square(1, 10).PlaceAt(5, 5))

	var sb strings.Builder
	require.NoError(t, WriteBin(&sb, b))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0])
	assert.Equal(t, "1 0 5,5", lines[1])
}

func TestWriteBinFilesCreatesOneFilePerBin(t *testing.T) {
	dir := t.TempDir()
	b1 := bin.New(geom.NewRectangleXYWH(0, 0, 10, 10))
	b2 := bin.New(geom.NewRectangleXYWH(0, 0, 10, 10))

	require.NoError(t, WriteBinFiles(dir, []*bin.Bin{b1, b2}))

	_, err := os.Stat(filepath.Join(dir, "Bin-1.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Bin-2.txt"))
	assert.NoError(t, err)
}
