// Package model defines the value objects exchanged between the impact
// engine, the API layer, and the run-history store.
package model

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
)

// RockyDensityKgM3 is the assumed bulk density of a rocky asteroid, used
// when a scenario supplies a diameter but no mass.
const RockyDensityKgM3 = 3000.0

// Scenario describes a hypothetical asteroid impact: where it hits and the
// physical parameters of the impactor.
type Scenario struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DiameterM   float64 `json:"diameter_m"`
	MassKg      float64 `json:"mass_kg"`
	VelocityKmh float64 `json:"velocity_kmh"`
}

// Validate rejects scenarios that would push NaN or Inf into the effects
// formulas. Velocity of zero is allowed (a degenerate but well-defined case).
func (s Scenario) Validate() error {
	switch {
	case math.IsNaN(s.Lat) || s.Lat < -90 || s.Lat > 90:
		return eris.Errorf("model: latitude %v out of range [-90, 90]", s.Lat)
	case math.IsNaN(s.Lon) || s.Lon < -180 || s.Lon > 180:
		return eris.Errorf("model: longitude %v out of range [-180, 180]", s.Lon)
	case math.IsNaN(s.DiameterM) || s.DiameterM <= 0:
		return eris.Errorf("model: diameter %v must be positive", s.DiameterM)
	case math.IsNaN(s.MassKg) || s.MassKg <= 0:
		return eris.Errorf("model: mass %v must be positive", s.MassKg)
	case math.IsNaN(s.VelocityKmh) || s.VelocityKmh < 0:
		return eris.Errorf("model: velocity %v must be non-negative", s.VelocityKmh)
	}
	return nil
}

// MassFromDiameter derives an asteroid mass from its diameter assuming a
// spherical body of the given density. Pass RockyDensityKgM3 when the
// composition is unknown.
func MassFromDiameter(diameterM, densityKgM3 float64) float64 {
	r := diameterM / 2
	volume := (4.0 / 3.0) * math.Pi * r * r * r
	return volume * densityKgM3
}

// Tsunami describes the ocean-impact zone, present only when the impact
// point is classified as water.
type Tsunami struct {
	WaveHeightM float64 `json:"wave_height_m"`
	RadiusKm    float64 `json:"radius_km"`
}

// HazardZones holds the geometry of every modeled effect around the impact
// point. Radii are non-negative; concentric nesting is how the casualty
// model interprets them, but it is not enforced here (shockwave and strong
// shaking are computed independently and either may be the larger).
type HazardZones struct {
	CraterDiameterM   float64  `json:"crater_diameter_m"`
	CraterRadiusKm    float64  `json:"crater_radius_km"`
	ShockwaveKm       float64  `json:"shockwave_radius_km"`
	WindKm            float64  `json:"wind_radius_km"`
	StrongShakingKm   float64  `json:"strong_shaking_radius_km"`
	ModerateShakingKm float64  `json:"moderate_shaking_radius_km"`
	LightShakingKm    float64  `json:"light_shaking_radius_km"`
	Magnitude         float64  `json:"earthquake_magnitude"`
	EnergyJ           float64  `json:"impact_energy_joules"`
	EnergyMt          float64  `json:"impact_energy_megatons"`
	Water             bool     `json:"water"`
	Tsunami           *Tsunami `json:"tsunami,omitempty"`
}

// CasualtyReport is the full structured output of one estimation: zone
// geometry, raw cumulative populations, and per-zone deaths. It is computed
// fresh per scenario and immutable once returned.
type CasualtyReport struct {
	Scenario Scenario    `json:"scenario"`
	Zones    HazardZones `json:"zones"`

	// Cumulative populations within each radius, as sampled from the raster.
	PopCrater          float64 `json:"pop_crater"`
	PopShockwave       float64 `json:"pop_shockwave"`
	PopStrongSeismic   float64 `json:"pop_strong_seismic"`
	PopModerateSeismic float64 `json:"pop_moderate_seismic"`
	PopLightSeismic    float64 `json:"pop_light_seismic"`
	PopTsunami         float64 `json:"pop_tsunami"`

	CraterDeaths        float64 `json:"crater_deaths"`
	StrongSeismicDeaths float64 `json:"strong_seismic_deaths"`
	ShockwaveDeaths     float64 `json:"shockwave_deaths"`
	TotalDeaths         float64 `json:"total_deaths"`
}

// Run is one persisted simulation: the scenario, its report, and any
// generated advisory text.
type Run struct {
	ID        string          `json:"id"`
	Scenario  Scenario        `json:"scenario"`
	Report    *CasualtyReport `json:"report,omitempty"`
	Advisory  string          `json:"advisory,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
