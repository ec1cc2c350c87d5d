package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// WriteXLSX writes a briefing workbook for a run: a Scenario sheet with the
// input parameters and headline numbers, and a Zones sheet with the per-ring
// breakdown.
func WriteXLSX(path string, run *model.Run) error {
	if run == nil || run.Report == nil {
		return eris.New("export: run has no report")
	}
	report := run.Report
	s := report.Scenario
	z := report.Zones

	file := xlsx.NewFile()

	scenario, err := file.AddSheet("Scenario")
	if err != nil {
		return eris.Wrap(err, "export: add scenario sheet")
	}
	addKV(scenario, "Run ID", run.ID)
	addKV(scenario, "Latitude", fmt.Sprintf("%.4f", s.Lat))
	addKV(scenario, "Longitude", fmt.Sprintf("%.4f", s.Lon))
	addKVFloat(scenario, "Diameter (m)", s.DiameterM)
	addKVFloat(scenario, "Mass (kg)", s.MassKg)
	addKVFloat(scenario, "Velocity (km/h)", s.VelocityKmh)
	addKVFloat(scenario, "Energy (Mt TNT)", z.EnergyMt)
	addKVFloat(scenario, "Seismic magnitude", z.Magnitude)
	addKV(scenario, "Water impact", fmt.Sprintf("%t", z.Water))
	addKVFloat(scenario, "Estimated fatalities", report.TotalDeaths)
	if run.Advisory != "" {
		addKV(scenario, "Advisory", run.Advisory)
	}

	zonesSheet, err := file.AddSheet("Zones")
	if err != nil {
		return eris.Wrap(err, "export: add zones sheet")
	}
	header := zonesSheet.AddRow()
	for _, h := range []string{"Zone", "Radius (km)", "Population", "Deaths"} {
		header.AddCell().Value = h
	}
	for _, zn := range zonesFor(report) {
		row := zonesSheet.AddRow()
		row.AddCell().Value = zn.Name
		row.AddCell().SetFloat(zn.RadiusKm)
		row.AddCell().SetFloat(zn.Population)
		row.AddCell().SetFloat(zn.Deaths)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

func addKV(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().Value = value
}

func addKVFloat(sheet *xlsx.Sheet, key string, value float64) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().SetFloat(value)
}
