package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
	"github.com/ArmaanSap/MeteorMadness2025/pkg/neo"
)

func TestFormatRunsList(t *testing.T) {
	runs := []model.Run{
		{
			ID:       "8fa9e1f2-0c4f-4e6f-9a6e-0b1a2c3d4e5f",
			Scenario: model.Scenario{Lat: 40.7128, Lon: -74.006, DiameterM: 100},
			Report: &model.CasualtyReport{
				Zones:       model.HazardZones{EnergyMt: 28.23},
				TotalDeaths: 12345,
			},
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "no-report-run",
			Scenario:  model.Scenario{Lat: 0, Lon: 0, DiameterM: 50},
			CreatedAt: time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "8fa9e1f2")
	assert.NotContains(t, out, "8fa9e1f2-0c4f")
	assert.Contains(t, out, "28.23")
	assert.Contains(t, out, "12345")
	assert.Contains(t, out, "2026-08-01 12:00")
	// Missing report renders zeros rather than panicking.
	assert.Contains(t, out, "no-repor")
}

func TestFormatAsteroids(t *testing.T) {
	asteroids := []neo.Asteroid{
		{ID: "3542519", Name: "(2010 PK9)", DiameterM: 100, VelocityKmh: 54000, MissDistanceKm: 750000, Hazardous: true},
	}

	var buf bytes.Buffer
	formatAsteroids(&buf, asteroids)

	out := buf.String()
	assert.Contains(t, out, "(2010 PK9)")
	assert.Contains(t, out, "54000")
	assert.Contains(t, out, "true")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "8fa9e1f2", truncateID("8fa9e1f2-0c4f-4e6f-9a6e-0b1a2c3d4e5f"))
	assert.Equal(t, "short", truncateID("short"))
}
