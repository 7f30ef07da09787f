package atmosphere

import (
	"fmt"
)

// Standard atmosphere reference values and the specific gas constant of
// dry air, as used by the barometric and ideal gas density models.
const (
	ambientDensity     = 1.225   // kg/m³ at sea level
	ambientTemperature = 288.15  // K
	ambientPressure    = 101330  // Pa
	gasConstantDryAir  = 287.058 // J/(kg*K)
)

// Barometric estimates air density at hub height from a pressure series
// measured at pressureHeight and the already hub-corrected temperature
// series, using the barometric height equation with a pressure gradient
// of -1/8 hPa/m:
//
//	rho_hub = (p/100 - (h_hub - h_p)/8) * rho0 * T0 * 100 / (p0 * T_hub)
func Barometric(pressure []float64, pressureHeight, hubHeight float64, temperatureHub []float64) ([]float64, error) {
	if err := checkDensityInputs(pressure, temperatureHub); err != nil {
		return nil, err
	}
	out := make([]float64, len(pressure))
	for i, p := range pressure {
		out[i] = (p/100 - (hubHeight-pressureHeight)*1/8) *
			ambientDensity * ambientTemperature * 100 /
			(ambientPressure * temperatureHub[i])
	}
	return out, nil
}

// IdealGas estimates air density at hub height by extrapolating the
// pressure with the -1/8 hPa/m gradient and applying the ideal gas law
// with the specific gas constant of dry air:
//
//	rho_hub = p_hub / (Rs * T_hub)
func IdealGas(pressure []float64, pressureHeight, hubHeight float64, temperatureHub []float64) ([]float64, error) {
	if err := checkDensityInputs(pressure, temperatureHub); err != nil {
		return nil, err
	}
	out := make([]float64, len(pressure))
	for i, p := range pressure {
		out[i] = (p/100 - (hubHeight-pressureHeight)*1/8) * 100 /
			(gasConstantDryAir * temperatureHub[i])
	}
	return out, nil
}

func checkDensityInputs(pressure, temperatureHub []float64) error {
	if len(temperatureHub) != len(pressure) {
		return fmt.Errorf("temperature series has %d values, pressure has %d",
			len(temperatureHub), len(pressure))
	}
	for i, p := range pressure {
		if p <= 0 {
			return fmt.Errorf("%w: pressure must be positive, got %g Pa", ErrDomain, p)
		}
		if temperatureHub[i] <= 0 {
			return fmt.Errorf("%w: temperature must be positive, got %g K", ErrDomain, temperatureHub[i])
		}
	}
	return nil
}
