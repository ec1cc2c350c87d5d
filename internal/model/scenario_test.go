package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioValidate(t *testing.T) {
	valid := Scenario{Lat: 40.7, Lon: -74.0, DiameterM: 100, MassKg: 1.05e9, VelocityKmh: 54000}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantMsg string
	}{
		{"lat too high", func(s *Scenario) { s.Lat = 90.5 }, "latitude"},
		{"lat too low", func(s *Scenario) { s.Lat = -91 }, "latitude"},
		{"lat NaN", func(s *Scenario) { s.Lat = math.NaN() }, "latitude"},
		{"lon too high", func(s *Scenario) { s.Lon = 181 }, "longitude"},
		{"lon too low", func(s *Scenario) { s.Lon = -180.1 }, "longitude"},
		{"zero diameter", func(s *Scenario) { s.DiameterM = 0 }, "diameter"},
		{"negative diameter", func(s *Scenario) { s.DiameterM = -5 }, "diameter"},
		{"zero mass", func(s *Scenario) { s.MassKg = 0 }, "mass"},
		{"NaN mass", func(s *Scenario) { s.MassKg = math.NaN() }, "mass"},
		{"negative velocity", func(s *Scenario) { s.VelocityKmh = -1 }, "velocity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestScenarioValidate_ZeroVelocity(t *testing.T) {
	// Zero velocity is degenerate but valid: it yields zero energy downstream.
	s := Scenario{Lat: 0, Lon: 0, DiameterM: 10, MassKg: 1e6, VelocityKmh: 0}
	assert.NoError(t, s.Validate())
}

func TestScenarioValidate_Boundaries(t *testing.T) {
	for _, s := range []Scenario{
		{Lat: 90, Lon: 180, DiameterM: 1, MassKg: 1, VelocityKmh: 0},
		{Lat: -90, Lon: -180, DiameterM: 1, MassKg: 1, VelocityKmh: 0},
	} {
		assert.NoError(t, s.Validate())
	}
}

func TestMassFromDiameter(t *testing.T) {
	// 100 m rocky asteroid: (4/3)*pi*50^3 * 3000 ~ 1.5708e9 kg.
	m := MassFromDiameter(100, RockyDensityKgM3)
	assert.InDelta(t, 1.5708e9, m, 1e6)

	// Doubling the diameter multiplies the mass by 8.
	assert.InDelta(t, 8*m, MassFromDiameter(200, RockyDensityKgM3), 1e4)
}
