package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// pacificScenario is the reference scenario: 100 m rocky asteroid at
// 54000 km/h hitting the mid-Pacific.
var pacificScenario = model.Scenario{
	Lat: 0, Lon: -160,
	DiameterM:   100,
	MassKg:      1.05e9,
	VelocityKmh: 54000,
}

func TestKineticEnergy(t *testing.T) {
	// 54000 km/h = 15000 m/s; E = 0.5 * 1.05e9 * 15000^2 = 1.18125e17 J.
	e := KineticEnergyJ(1.05e9, 54000)
	assert.InDelta(t, 1.18125e17, e, 1e9)
}

func TestKineticEnergy_Scaling(t *testing.T) {
	base := KineticEnergyJ(1.05e9, 54000)

	// Doubling velocity quadruples energy.
	assert.InDelta(t, 4*base, KineticEnergyJ(1.05e9, 108000), base*1e-9)

	// Doubling mass doubles energy.
	assert.InDelta(t, 2*base, KineticEnergyJ(2.1e9, 54000), base*1e-9)
}

func TestCraterDiameter(t *testing.T) {
	assert.Equal(t, 1500.0, CraterDiameterM(100))
}

func TestSeismicMagnitude(t *testing.T) {
	// (2/3)*log10(1.18125e17/1000) - 3.2 ~ 6.18
	m := SeismicMagnitude(1.18125e17)
	assert.InDelta(t, 6.18, m, 0.01)
}

func TestSeismicMagnitude_ZeroEnergy(t *testing.T) {
	// The epsilon clamp keeps zero energy finite instead of -Inf.
	m := SeismicMagnitude(0)
	assert.False(t, math.IsInf(m, 0))
	assert.False(t, math.IsNaN(m))
	assert.Less(t, m, 0.0)
}

func TestShakingRadii_Ordering(t *testing.T) {
	m := 6.18
	strong := ShakingRadiusKm(m, StrongShakingOffset)
	moderate := ShakingRadiusKm(m, ModerateShakingOffset)
	light := ShakingRadiusKm(m, LightShakingOffset)

	assert.Less(t, strong, moderate)
	assert.Less(t, moderate, light)
	assert.InDelta(t, 12.3, strong, 0.2)
}

func TestWindRadius(t *testing.T) {
	r := WindRadiusKm(1.18125e17)
	assert.Greater(t, r, 0.0)
	assert.False(t, math.IsNaN(r))

	// More energy pushes the 60 km/h contour further out.
	assert.Greater(t, WindRadiusKm(1e18), r)

	assert.Zero(t, WindRadiusKm(0))
	assert.Zero(t, WindRadiusKm(-5))
}

func TestCompute_Deterministic(t *testing.T) {
	a := Compute(pacificScenario)
	b := Compute(pacificScenario)
	assert.Equal(t, a, b)
}

func TestCompute_PacificImpact(t *testing.T) {
	z := Compute(pacificScenario)

	assert.True(t, z.Water)
	require.NotNil(t, z.Tsunami)
	assert.Equal(t, 1500.0, z.CraterDiameterM)
	assert.Equal(t, 0.75, z.CraterRadiusKm)
	assert.Greater(t, z.ShockwaveKm, 0.0)
	assert.InDelta(t, 24.5, z.ShockwaveKm, 0.5)
	assert.Equal(t, 50.0, z.Tsunami.RadiusKm)
	assert.InDelta(t, 335, z.Tsunami.WaveHeightM, 5)
	assert.InDelta(t, 28.23, z.EnergyMt, 0.1)
}

func TestCompute_LandImpact(t *testing.T) {
	s := pacificScenario
	s.Lat, s.Lon = 40.7, -74.0 // New York City
	z := Compute(s)

	assert.False(t, z.Water)
	assert.Nil(t, z.Tsunami)
	assert.Equal(t, 1500.0, z.CraterDiameterM)
}

func TestIsWater(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"mid-Pacific", 0, -160, true},
		{"New York City", 40.7, -74.0, false},
		{"Sahara", 23, 10, false},
		{"Sydney", -33.9, 151.2, false},
		{"central Asia", 45, 85, false},
		{"southern Greenland", 65, -45, false},
		{"northern Greenland is polar water", 75, -40, true},
		{"Arctic ocean beyond polar threshold", 75, 100, true},
		{"Southern ocean", -65, 0, true},
		{"South Atlantic", -30, -20, true},
		{"Amazon", -5, -60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWater(tt.lat, tt.lon))
		})
	}
}

func TestIsWater_LongitudeNormalization(t *testing.T) {
	// lon=190 must behave exactly as lon=-170.
	assert.Equal(t, IsWater(0, -170), IsWater(0, 190))
	assert.Equal(t, IsWater(40, -74), IsWater(40, -74-360))
}

func TestNormalizeLon(t *testing.T) {
	assert.Equal(t, -170.0, normalizeLon(190))
	assert.Equal(t, 170.0, normalizeLon(-190))
	assert.Equal(t, 0.0, normalizeLon(720))
	assert.Equal(t, 180.0, normalizeLon(180))
}
