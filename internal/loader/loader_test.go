package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasicPiece(t *testing.T) {
	input := `100 50
1

0,0 10,0 5,10
`
	result, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.InDelta(t, 100, result.Bin.Width(), 1e-9)
	assert.InDelta(t, 50, result.Bin.Height(), 1e-9)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, 1, result.Pieces[0].ID())
	assert.Equal(t, 3, result.Pieces[0].VertexCount())
}

// TestLoadScenarioS6 mirrors scenario S6 from the testable-properties
// seeded scenarios: a hole-bearing piece followed by a plain piece.
func TestLoadScenarioS6(t *testing.T) {
	input := `100 50
2
0,0 10,0 10,10 0,10
@ 2,2 8,2 8,8 2,8
0,0 5,0 5,5 0,5
`
	result, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.InDelta(t, 100, result.Bin.Width(), 1e-9)
	assert.InDelta(t, 50, result.Bin.Height(), 1e-9)
	require.Len(t, result.Pieces, 2)
	assert.InDelta(t, 64, result.Pieces[0].Area(), 1e-9)
	assert.InDelta(t, 25, result.Pieces[1].Area(), 1e-9)
}

func TestLoadMultipleHolesOnOnePiece(t *testing.T) {
	input := `100 100
1
0,0 20,0 20,20 0,20
@ 2,2 4,2 4,4 2,4
@ 10,10 12,10 12,12 10,12
`
	result, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Pieces, 1)
	assert.InDelta(t, 400-4-4, result.Pieces[0].Area(), 1e-9)
}

func TestLoadDropsDuplicateConsecutivePoints(t *testing.T) {
	input := `10 10
1
0,0 0,0 5,0 5,5
`
	result, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, 3, result.Pieces[0].VertexCount())
}

func TestLoadReportsLineNumberOnBadDimension(t *testing.T) {
	_, err := Load(strings.NewReader("not-a-number 10\n"))
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 1, pe.Line)
}

func TestLoadReportsLineNumberOnMissingPieces(t *testing.T) {
	input := `10 10
2
0,0 1,0 1,1
`
	_, err := Load(strings.NewReader(input))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
}

func TestLoadRejectsNonPositiveDimension(t *testing.T) {
	_, err := Load(strings.NewReader("0 10\n"))
	require.Error(t, err)
}

func TestLoadEmptyInputZeroPieces(t *testing.T) {
	input := `10 10
0
`
	result, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, result.Pieces)
}

func TestLoadRejectsHoleBeforeAnyPiece(t *testing.T) {
	input := `10 10
1
@ 2,2 4,2 4,4 2,4
`
	_, err := Load(strings.NewReader(input))
	require.Error(t, err)
}
