package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// WriteGeoJSON writes a run's hazard zones as a GeoJSON FeatureCollection:
// one point feature for the impact site and one polygon per zone, ordered
// outward so layered rendering stacks correctly.
func WriteGeoJSON(w io.Writer, run *model.Run) error {
	if run == nil || run.Report == nil {
		return eris.New("export: run has no report")
	}
	s := run.Report.Scenario

	site := &geojson.Feature{
		ID:       "impact-site",
		Geometry: geom.NewPointFlat(geom.XY, []float64{s.Lon, s.Lat}).SetSRID(4326),
		Properties: map[string]any{
			"run_id":       run.ID,
			"diameter_m":   s.DiameterM,
			"mass_kg":      s.MassKg,
			"velocity_kmh": s.VelocityKmh,
			"energy_mt":    run.Report.Zones.EnergyMt,
			"magnitude":    run.Report.Zones.Magnitude,
			"total_deaths": run.Report.TotalDeaths,
		},
	}

	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{site}}
	for _, zn := range zonesFor(run.Report) {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       zn.Name,
			Geometry: circlePolygon(s.Lat, s.Lon, zn.RadiusKm),
			Properties: map[string]any{
				"zone":       zn.Name,
				"radius_km":  zn.RadiusKm,
				"population": zn.Population,
				"deaths":     zn.Deaths,
			},
		})
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}
