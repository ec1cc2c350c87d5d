// Package export renders simulation runs as GeoJSON, shapefiles, and XLSX
// reports for downstream GIS and briefing tools.
package export

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

const (
	circleSegments = 64
	kmPerDegree    = 111.0
	minCosLat      = 0.01
)

// zone is one concentric hazard ring of a run, ordered outward.
type zone struct {
	Name       string
	RadiusKm   float64
	Population float64
	Deaths     float64
}

// zonesFor flattens a report into exportable rings, skipping zero-radius
// zones. Tsunami appears only for water impacts.
func zonesFor(report *model.CasualtyReport) []zone {
	z := report.Zones
	zones := []zone{
		{Name: "crater", RadiusKm: z.CraterRadiusKm, Population: report.PopCrater, Deaths: report.CraterDeaths},
		{Name: "strong_shaking", RadiusKm: z.StrongShakingKm, Population: report.PopStrongSeismic, Deaths: report.StrongSeismicDeaths},
		{Name: "shockwave", RadiusKm: z.ShockwaveKm, Population: report.PopShockwave, Deaths: report.ShockwaveDeaths},
		{Name: "wind", RadiusKm: z.WindKm},
		{Name: "moderate_shaking", RadiusKm: z.ModerateShakingKm, Population: report.PopModerateSeismic},
		{Name: "light_shaking", RadiusKm: z.LightShakingKm, Population: report.PopLightSeismic},
	}
	if z.Water && z.Tsunami != nil {
		zones = append(zones, zone{Name: "tsunami", RadiusKm: z.Tsunami.RadiusKm, Population: report.PopTsunami})
	}

	out := zones[:0]
	for _, zn := range zones {
		if zn.RadiusKm > 0 {
			out = append(out, zn)
		}
	}
	return out
}

// circleRing approximates a ground circle as a closed lon/lat ring using the
// flat-earth metric: one degree of latitude is 111 km, one degree of
// longitude is 111*cos(lat) km.
func circleRing(lat, lon, radiusKm float64) []geom.Coord {
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}

	dLat := radiusKm / kmPerDegree
	dLon := radiusKm / (kmPerDegree * cosLat)

	ring := make([]geom.Coord, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, geom.Coord{
			lon + dLon*math.Cos(theta),
			lat + dLat*math.Sin(theta),
		})
	}
	ring = append(ring, ring[0])
	return ring
}

// circlePolygon builds an SRID-4326 polygon for a hazard ring.
func circlePolygon(lat, lon, radiusKm float64) *geom.Polygon {
	ring := circleRing(lat, lon, radiusKm)
	flat := make([]float64, 0, len(ring)*2)
	for _, c := range ring {
		flat = append(flat, c[0], c[1])
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)
}
