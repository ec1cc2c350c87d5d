// Package raster answers population queries against a global gridded
// population-count dataset with a fixed affine geographic transform.
package raster

import (
	"math"

	"go.uber.org/zap"
)

// kmPerDegree is the approximate length of one degree of latitude. The same
// factor, scaled by cos(lat), converts degrees of longitude. All distance
// math in this package uses this planar approximation so that the bounding
// box and the circular mask agree on what "radiusKm" means.
const kmPerDegree = 111.0

// minCosLat guards the longitude correction near the poles, where cos(lat)
// approaches zero and the degree delta would blow up.
const minCosLat = 0.01

// Grid is an immutable population-count grid. Row 0 is the northernmost row;
// values are row-major. The transform (west, north, cell) is fixed at load
// time and never mutated, so concurrent readers need no synchronization.
type Grid struct {
	values []float64
	cols   int
	rows   int
	west   float64 // longitude of the west edge
	north  float64 // latitude of the north edge
	cell   float64 // cell size in degrees (square cells)
	nodata float64
}

// Cols returns the grid width in cells.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell size in degrees.
func (g *Grid) CellSize() float64 { return g.cell }

// cellCenter returns the geographic center of the cell at (row, col).
func (g *Grid) cellCenter(row, col int) (lat, lon float64) {
	lon = g.west + (float64(col)+0.5)*g.cell
	lat = g.north - (float64(row)+0.5)*g.cell
	return lat, lon
}

// window is a rectangular sub-region of the grid, inclusive on both ends.
type window struct {
	row0, row1 int
	col0, col1 int
}

// empty reports whether the window covers zero cells.
func (w window) empty() bool {
	return w.row0 > w.row1 || w.col0 > w.col1
}

// windowFor computes the minimal window covering the given bounding box,
// clamped to the grid extent.
func (g *Grid) windowFor(latMin, latMax, lonMin, lonMax float64) window {
	w := window{
		col0: int(math.Floor((lonMin - g.west) / g.cell)),
		col1: int(math.Ceil((lonMax-g.west)/g.cell)) - 1,
		row0: int(math.Floor((g.north - latMax) / g.cell)),
		row1: int(math.Ceil((g.north-latMin)/g.cell)) - 1,
	}
	if w.col0 < 0 {
		w.col0 = 0
	}
	if w.row0 < 0 {
		w.row0 = 0
	}
	if w.col1 > g.cols-1 {
		w.col1 = g.cols - 1
	}
	if w.row1 > g.rows-1 {
		w.row1 = g.rows - 1
	}
	return w
}

// PopulationRaster answers "total population within radius R of (lat, lon)"
// queries. A nil or unloaded grid degrades every query to zero rather than
// failing; the caller proceeds with a zero-population estimate.
type PopulationRaster struct {
	grid *Grid
}

// New wraps a Grid. A nil grid is valid and puts the raster in degraded
// (zero-population) mode.
func New(grid *Grid) *PopulationRaster {
	return &PopulationRaster{grid: grid}
}

// Loaded reports whether a dataset is backing this raster.
func (r *PopulationRaster) Loaded() bool {
	return r != nil && r.grid != nil
}

// PopulationWithinRadius returns the total population within radiusKm of
// (lat, lon). The radius is converted to degree deltas using kmPerDegree for
// latitude and the cos(lat)-corrected factor for longitude; every cell in the
// covering window is included iff its center lies within radiusKm in the
// same approximate metric. Nodata and negative source cells contribute zero.
//
// Degenerate and degraded cases all return 0: radius zero, out-of-range
// coordinates, an empty window, or no loaded dataset.
func (r *PopulationRaster) PopulationWithinRadius(lat, lon, radiusKm float64) float64 {
	if !r.Loaded() {
		zap.L().Warn("raster: no dataset loaded, degrading to zero population")
		return 0
	}
	if radiusKm <= 0 {
		return 0
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || math.IsNaN(lat) || math.IsNaN(lon) {
		zap.L().Warn("raster: query coordinates out of range",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
		)
		return 0
	}

	g := r.grid

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	latDelta := radiusKm / kmPerDegree
	lonDelta := radiusKm / (kmPerDegree * cosLat)

	w := g.windowFor(lat-latDelta, lat+latDelta, lon-lonDelta, lon+lonDelta)
	if w.empty() {
		return 0
	}

	lonScale := kmPerDegree * cosLat
	var sum float64
	for row := w.row0; row <= w.row1; row++ {
		base := row * g.cols
		for col := w.col0; col <= w.col1; col++ {
			cellLat, cellLon := g.cellCenter(row, col)
			dy := (cellLat - lat) * kmPerDegree
			dx := (cellLon - lon) * lonScale
			if math.Sqrt(dx*dx+dy*dy) > radiusKm {
				continue
			}
			v := g.values[base+col]
			if v == g.nodata || v < 0 || math.IsNaN(v) {
				continue
			}
			sum += v
		}
	}

	if sum < 0 {
		return 0
	}
	return sum
}
