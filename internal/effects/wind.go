package effects

import "math"

// Wind-radius model: scaled distance Z = d / W^(1/3) with W in kg of TNT,
// overpressure dp = overpressureFit * Z^-1.8, and particle (wind) velocity
// u = dp / (rho_air * c_sound). Because u falls off as d^-1.8 at fixed
// yield, the 60 km/h contour follows from the reference value at 1000 m.
const (
	joulesPerKgTNT  = 4.184e6
	windDecay       = 1.8
	overpressureFit = 1e6 // Pa at Z = 1, empirical fit constant
	airDensity      = 1.225
	soundSpeed      = 340.0
	refDistanceM    = 1000.0

	// WindThresholdKmh is the wind speed whose outer contour the model
	// reports: sustained winds strong enough to down trees and damage roofs.
	WindThresholdKmh = 60.0
)

// WindRadiusKm returns the radius in kilometers at which the impact-driven
// wind speed decays to WindThresholdKmh. Returns 0 for non-positive energy
// or when the wind never reaches the threshold at the reference distance
// scale.
func WindRadiusKm(energyJ float64) float64 {
	if energyJ <= 0 {
		return 0
	}

	wKg := energyJ / joulesPerKgTNT
	zRef := refDistanceM / math.Cbrt(wKg)
	dpRef := overpressureFit * math.Pow(zRef, -windDecay)
	uRef := dpRef / (airDensity * soundSpeed)

	uThreshold := WindThresholdKmh * 1000 / 3600
	// u ∝ d^-1.8, so d_threshold = refDistance * (uRef/uThreshold)^(1/1.8).
	radiusM := refDistanceM * math.Pow(uRef/uThreshold, 1/windDecay)
	if radiusM < 0 || math.IsNaN(radiusM) {
		return 0
	}
	return radiusM / 1000
}
