package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// WriteShapefile writes a run's hazard zones to a polygon shapefile at path
// (the .shp/.shx/.dbf trio). Attributes carry the zone name, radius, and
// population figures.
func WriteShapefile(path string, run *model.Run) error {
	if run == nil || run.Report == nil {
		return eris.New("export: run has no report")
	}
	s := run.Report.Scenario

	writer, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer writer.Close()

	fields := []shp.Field{
		shp.StringField("ZONE", 24),
		shp.FloatField("RADIUS_KM", 16, 3),
		shp.FloatField("POP", 16, 0),
		shp.FloatField("DEATHS", 16, 0),
	}
	if err := writer.SetFields(fields); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	zones := zonesFor(run.Report)
	for i, zn := range zones {
		ring := circleRing(s.Lat, s.Lon, zn.RadiusKm)
		points := make([]shp.Point, len(ring))
		for j, c := range ring {
			points[j] = shp.Point{X: c[0], Y: c[1]}
		}

		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{points}))
		writer.Write(&poly)

		attrs := []any{zn.Name, zn.RadiusKm, zn.Population, zn.Deaths}
		for field, val := range attrs {
			if err := writer.WriteAttribute(i, field, val); err != nil {
				return eris.Wrapf(err, "export: write attribute %s[%d]", zn.Name, field)
			}
		}
	}

	zap.L().Info("shapefile written",
		zap.String("path", path),
		zap.Int("zones", len(zones)),
	)
	return nil
}
