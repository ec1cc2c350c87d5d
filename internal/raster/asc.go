package raster

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// defaultNoData is assumed when the header omits NODATA_value. It matches
// the sentinel used by the GPW population-count distribution.
const defaultNoData = -9999

// LoadASC reads an ESRI ASCII grid file. The header carries the affine
// transform (lower-left corner + cell size); the body is row-major with the
// first row being the northernmost.
func LoadASC(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	hdr := map[string]float64{}
	var body []string

	// Header lines are "key value" pairs; the first line that does not start
	// with a known key begins the data section.
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
			if len(fields) != 2 {
				return nil, eris.Errorf("raster: malformed header line %q", line)
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, eris.Wrapf(err, "raster: parse header %s", key)
			}
			hdr[key] = v
		default:
			body = fields
		}
		if body != nil {
			break
		}
	}

	for _, required := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := hdr[required]; !ok {
			return nil, eris.Errorf("raster: header missing %s", required)
		}
	}

	cols := int(hdr["ncols"])
	rows := int(hdr["nrows"])
	if cols <= 0 || rows <= 0 {
		return nil, eris.Errorf("raster: invalid dimensions %dx%d", cols, rows)
	}
	cell := hdr["cellsize"]
	if cell <= 0 {
		return nil, eris.Errorf("raster: invalid cell size %v", cell)
	}
	nodata := float64(defaultNoData)
	if v, ok := hdr["nodata_value"]; ok {
		nodata = v
	}

	values := make([]float64, 0, cols*rows)
	appendFields := func(fields []string) error {
		for _, fv := range fields {
			v, err := strconv.ParseFloat(fv, 64)
			if err != nil {
				return eris.Wrapf(err, "raster: parse cell %d", len(values))
			}
			values = append(values, v)
		}
		return nil
	}
	if err := appendFields(body); err != nil {
		return nil, err
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := appendFields(strings.Fields(line)); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "raster: read %s", path)
	}
	if len(values) != cols*rows {
		return nil, eris.Errorf("raster: expected %d cells, got %d", cols*rows, len(values))
	}

	g := &Grid{
		values: values,
		cols:   cols,
		rows:   rows,
		west:   hdr["xllcorner"],
		north:  hdr["yllcorner"] + float64(rows)*cell,
		cell:   cell,
		nodata: nodata,
	}

	zap.L().Info("raster: dataset loaded",
		zap.String("path", path),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Float64("cell_deg", cell),
	)

	return g, nil
}

// NewGrid constructs a grid directly from values. Intended for tests and
// synthetic datasets; values are row-major with row 0 northernmost.
func NewGrid(values []float64, cols, rows int, west, north, cellDeg, nodata float64) *Grid {
	return &Grid{
		values: values,
		cols:   cols,
		rows:   rows,
		west:   west,
		north:  north,
		cell:   cellDeg,
		nodata: nodata,
	}
}
