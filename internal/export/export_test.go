package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

func sampleRun() *model.Run {
	return &model.Run{
		ID: "8fa9e1f2-0c4f-4e6f-9a6e-0b1a2c3d4e5f",
		Report: &model.CasualtyReport{
			Scenario: model.Scenario{
				Lat:         40.7128,
				Lon:         -74.0060,
				DiameterM:   100,
				MassKg:      1.05e9,
				VelocityKmh: 54000,
			},
			Zones: model.HazardZones{
				CraterRadiusKm:    0.75,
				ShockwaveKm:       24.5,
				WindKm:            48.0,
				StrongShakingKm:   12.3,
				ModerateShakingKm: 61.8,
				LightShakingKm:    195.0,
				Magnitude:         6.18,
				EnergyMt:          28.23,
			},
			PopCrater:    15000,
			PopShockwave: 4_200_000,
			CraterDeaths: 15000,
			TotalDeaths:  1_300_000,
		},
		Advisory: "evacuate the blast radius",
	}
}

func TestZonesForSkipsZeroAndOrdersOutward(t *testing.T) {
	run := sampleRun()
	run.Report.Zones.WindKm = 0

	zones := zonesFor(run.Report)
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	assert.Equal(t, []string{"crater", "strong_shaking", "shockwave", "moderate_shaking", "light_shaking"}, names)
}

func TestZonesForTsunami(t *testing.T) {
	run := sampleRun()
	run.Report.Zones.Water = true
	run.Report.Zones.Tsunami = &model.Tsunami{WaveHeightM: 335, RadiusKm: 50}
	run.Report.PopTsunami = 80000

	zones := zonesFor(run.Report)
	last := zones[len(zones)-1]
	assert.Equal(t, "tsunami", last.Name)
	assert.InDelta(t, 50.0, last.RadiusKm, 1e-9)
	assert.InDelta(t, 80000.0, last.Population, 1e-9)
}

func TestCircleRingClosed(t *testing.T) {
	ring := circleRing(40.0, -74.0, 10.0)
	require.Len(t, ring, circleSegments+1)
	assert.Equal(t, ring[0], ring[len(ring)-1])

	// East-west extent must exceed north-south extent away from the equator.
	var maxLon, maxLat float64
	for _, c := range ring {
		if d := c[0] - (-74.0); d > maxLon {
			maxLon = d
		}
		if d := c[1] - 40.0; d > maxLat {
			maxLat = d
		}
	}
	assert.Greater(t, maxLon, maxLat)
	assert.InDelta(t, 10.0/111.0, maxLat, 1e-3)
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, sampleRun()))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	// Impact site plus six rings (land impact, no tsunami).
	require.Len(t, fc.Features, 7)

	assert.Equal(t, "impact-site", fc.Features[0].ID)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.InDelta(t, 1_300_000, fc.Features[0].Properties["total_deaths"].(float64), 1e-6)

	assert.Equal(t, "crater", fc.Features[1].ID)
	assert.Equal(t, "Polygon", fc.Features[1].Geometry.Type)
	assert.InDelta(t, 0.75, fc.Features[1].Properties["radius_km"].(float64), 1e-9)
}

func TestWriteGeoJSONNoReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGeoJSON(&buf, &model.Run{ID: "x"})
	assert.ErrorContains(t, err, "no report")
}

func TestWriteShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.shp")
	require.NoError(t, WriteShapefile(path, sampleRun()))

	reader, err := shp.Open(path)
	require.NoError(t, err)
	defer reader.Close()

	var names []string
	for reader.Next() {
		n, shape := reader.Shape()
		_, ok := shape.(*shp.Polygon)
		assert.True(t, ok)
		names = append(names, reader.ReadAttribute(n, 0))
	}
	assert.Len(t, names, 6)
	assert.Equal(t, "crater", names[0])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, sampleRun()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	scenario := file.Sheet["Scenario"]
	require.NotNil(t, scenario)
	assert.Equal(t, "Run ID", scenario.Rows[0].Cells[0].String())
	assert.Equal(t, sampleRun().ID, scenario.Rows[0].Cells[1].String())

	zones := file.Sheet["Zones"]
	require.NotNil(t, zones)
	// Header plus six zone rows.
	assert.Len(t, zones.Rows, 7)
	assert.Equal(t, "Zone", zones.Rows[0].Cells[0].String())
	assert.Equal(t, "crater", zones.Rows[1].Cells[0].String())
}
