// Package effects maps asteroid physical parameters to hazard-zone geometry.
// Every function is pure; the formulas are simplified empirical
// approximations whose constants are fixed by the model, not physically
// validated values to tune.
package effects

import (
	"math"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

const (
	// craterMultiplier scales impactor diameter to final crater diameter.
	craterMultiplier = 15.0

	// shockwaveCoefficient scales the cube root of kinetic energy (J) to a
	// shockwave radius in meters.
	shockwaveCoefficient = 0.05

	// joulesPerMegaton converts kinetic energy to megatons of TNT.
	joulesPerMegaton = 4.184e15

	// minEnergyJ floors the energy fed into log10 so a zero-velocity
	// scenario yields a finite (deeply negative) magnitude instead of -Inf.
	minEnergyJ = 1e-9

	gravity = 9.81
)

// KineticEnergyJ returns the impact kinetic energy in joules for a mass in
// kg and velocity in km/h.
func KineticEnergyJ(massKg, velocityKmh float64) float64 {
	v := velocityKmh * 1000 / 3600
	return 0.5 * massKg * v * v
}

// Megatons converts joules to megatons of TNT equivalent.
func Megatons(energyJ float64) float64 {
	return energyJ / joulesPerMegaton
}

// CraterDiameterM returns the final crater diameter in meters for an
// impactor diameter in meters.
func CraterDiameterM(diameterM float64) float64 {
	return diameterM * craterMultiplier
}

// ShockwaveRadiusKm returns the severe-overpressure radius in kilometers.
func ShockwaveRadiusKm(energyJ float64) float64 {
	return math.Cbrt(energyJ) * shockwaveCoefficient / 1000
}

// SeismicMagnitude returns the equivalent earthquake magnitude for the
// impact energy. Zero energy is clamped so the result is finite.
func SeismicMagnitude(energyJ float64) float64 {
	e := energyJ
	if e < minEnergyJ {
		e = minEnergyJ
	}
	return (2.0/3.0)*math.Log10(e/1000) - 3.2
}

// ShakingRadiusKm returns the radius of a shaking band for the given
// magnitude and band offset (2.0 strong, 1.3 moderate, 0.8 light).
func ShakingRadiusKm(magnitude, offset float64) float64 {
	return math.Pow(10, 0.5*magnitude-offset)
}

// Band offsets for the three shaking tiers. Larger offsets give smaller
// radii, so strong ⊂ moderate ⊂ light by construction.
const (
	StrongShakingOffset   = 2.0
	ModerateShakingOffset = 1.3
	LightShakingOffset    = 0.8
)

// TsunamiWaveHeightM returns the initial wave height in meters for a water
// impact of the given energy.
func TsunamiWaveHeightM(energyJ float64) float64 {
	return 0.18 * math.Pow(energyJ/(1000*gravity), 0.25)
}

// TsunamiRadiusKm returns the tsunami propagation radius in kilometers for
// an impactor diameter in meters.
func TsunamiRadiusKm(diameterM float64) float64 {
	return 500 * (diameterM / 1000)
}

// Compute runs the full effects model for a scenario. The scenario is
// assumed valid; callers validate first. Water classification drives the
// optional tsunami zone.
func Compute(s model.Scenario) model.HazardZones {
	energy := KineticEnergyJ(s.MassKg, s.VelocityKmh)
	magnitude := SeismicMagnitude(energy)
	water := IsWater(s.Lat, s.Lon)

	z := model.HazardZones{
		CraterDiameterM:   CraterDiameterM(s.DiameterM),
		CraterRadiusKm:    CraterDiameterM(s.DiameterM) / 2000,
		ShockwaveKm:       ShockwaveRadiusKm(energy),
		WindKm:            WindRadiusKm(energy),
		StrongShakingKm:   ShakingRadiusKm(magnitude, StrongShakingOffset),
		ModerateShakingKm: ShakingRadiusKm(magnitude, ModerateShakingOffset),
		LightShakingKm:    ShakingRadiusKm(magnitude, LightShakingOffset),
		Magnitude:         magnitude,
		EnergyJ:           energy,
		EnergyMt:          Megatons(energy),
		Water:             water,
	}
	if water {
		z.Tsunami = &model.Tsunami{
			WaveHeightM: TsunamiWaveHeightM(energy),
			RadiusKm:    TsunamiRadiusKm(s.DiameterM),
		}
	}
	return z
}
