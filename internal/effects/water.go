package effects

// continentBox is a lat/lon rectangle approximating a landmass.
type continentBox struct {
	name           string
	latMin, latMax float64
	lonMin, lonMax float64
}

// continentBoxes is a deliberately coarse land mask. A point outside every
// box is classified as water. The rectangles overshoot coastlines; the
// model favors false land over false water near shores.
var continentBoxes = []continentBox{
	{"North America", 15, 72, -168, -52},
	{"South America", -56, 13, -82, -34},
	{"Europe", 36, 71, -10, 60},
	{"Africa", -35, 37, -18, 52},
	{"Asia", 5, 77, 60, 180},
	{"Australia", -44, -10, 112, 154},
	{"Greenland", 60, 84, -73, -12},
}

// Polar thresholds: beyond these latitudes the point is treated as water
// (open ocean or ice shelf) regardless of longitude.
const (
	northPolarLat = 70.0
	southPolarLat = -60.0
)

// normalizeLon wraps a longitude into [-180, 180].
func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// IsWater reports whether the impact point is classified as water by the
// bounding-box heuristic. Deterministic and symmetric under longitude
// normalization (lon=190 behaves as lon=-170).
func IsWater(lat, lon float64) bool {
	if lat > northPolarLat || lat < southPolarLat {
		return true
	}
	lon = normalizeLon(lon)
	for _, box := range continentBoxes {
		if lat >= box.latMin && lat <= box.latMax && lon >= box.lonMin && lon <= box.lonMax {
			return false
		}
	}
	return true
}
