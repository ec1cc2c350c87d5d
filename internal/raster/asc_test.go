package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleASC = `ncols        4
nrows        3
xllcorner    -2.0
yllcorner    -1.5
cellsize     1.0
NODATA_value -9999
10 20 30 40
50 -9999 70 80
90 100 110 120
`

func writeASC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pop.asc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadASC(t *testing.T) {
	g, err := LoadASC(writeASC(t, sampleASC))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 1.0, g.CellSize())

	// north edge = yllcorner + nrows*cellsize = -1.5 + 3 = 1.5
	lat, lon := g.cellCenter(0, 0)
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, -1.5, lon)

	// Sum of everything except the nodata cell: 720.
	r := New(g)
	assert.Equal(t, 720.0, r.PopulationWithinRadius(0, 0, 5000))
}

func TestLoadASC_MissingFile(t *testing.T) {
	_, err := LoadASC(filepath.Join(t.TempDir(), "missing.asc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raster: open")
}

func TestLoadASC_HeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			"missing nrows",
			"ncols 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
			"header missing nrows",
		},
		{
			"bad cell count",
			"ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n",
			"expected 4 cells",
		},
		{
			"unparseable value",
			"ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 abc\n",
			"parse cell",
		},
		{
			"zero cellsize",
			"ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 0\n1 2\n",
			"invalid cell size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadASC(writeASC(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadASC_DefaultNoData(t *testing.T) {
	// Header without NODATA_value falls back to -9999.
	content := "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n5 -9999\n"
	g, err := LoadASC(writeASC(t, content))
	require.NoError(t, err)

	r := New(g)
	assert.Equal(t, 5.0, r.PopulationWithinRadius(0.5, 1, 500))
}
