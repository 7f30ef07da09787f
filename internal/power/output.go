// Package power computes electrical power output time series from
// hub-height wind speed series and a turbine's (or farm's) curve.
package power

import (
	"errors"
	"fmt"
	"math"

	"wind_simulator/internal/curve"
)

// referenceDensity is the air density the manufacturer's power curve
// refers to, 1.225 kg/m³ (standard atmosphere at sea level).
const referenceDensity = 1.225

// ErrMissingDensity is returned when a density series is required but
// absent or misaligned.
var ErrMissingDensity = errors.New("density series required")

// FromPowerCurve evaluates a power curve at each wind speed. Values
// below cut-in and above cut-out are zero (the curve's zero padding);
// any negative interpolation artifact is clamped to the physical floor.
func FromPowerCurve(windSpeed []float64, pc curve.Curve) []float64 {
	out := make([]float64, len(windSpeed))
	for i, v := range windSpeed {
		p := pc.At(v)
		if p < 0 {
			p = 0
		}
		out[i] = p
	}
	return out
}

// FromPowerCurveDensityCorrected evaluates a power curve with the
// Svenningsen air density correction: for each timestamp the curve's
// sampled wind speeds are rescaled by
//
//	v_site = v_std * (rho0 / rho_site)^p(v_std)
//
// where p interpolates from 1/3 at 7.5 m/s to 2/3 at 12.5 m/s. The
// power values are preserved; only the wind speed at which each is
// reached shifts with density.
func FromPowerCurveDensityCorrected(windSpeed, density []float64, pc curve.Curve) ([]float64, error) {
	if len(density) != len(windSpeed) {
		return nil, fmt.Errorf("%w: %d density values for %d wind speeds",
			ErrMissingDensity, len(density), len(windSpeed))
	}
	points := pc.Points()
	out := make([]float64, len(windSpeed))
	shifted := make([]curve.Point, len(points))
	for i, v := range windSpeed {
		rho := density[i]
		if rho <= 0 {
			return nil, fmt.Errorf("%w: density must be positive, got %g kg/m³", ErrMissingDensity, rho)
		}
		for j, p := range points {
			shifted[j] = curve.Point{
				WindSpeed: p.WindSpeed * math.Pow(referenceDensity/rho, correctionExponent(p.WindSpeed)),
				Value:     p.Value,
			}
		}
		corrected, err := curve.New(shifted)
		if err != nil {
			return nil, fmt.Errorf("density corrected curve at timestamp %d: %w", i, err)
		}
		p := corrected.At(v)
		if p < 0 {
			p = 0
		}
		out[i] = p
	}
	return out, nil
}

// correctionExponent interpolates the density correction exponent:
// 1/3 below 7.5 m/s, 2/3 above 12.5 m/s, linear in between.
func correctionExponent(v float64) float64 {
	switch {
	case v <= 7.5:
		return 1.0 / 3.0
	case v >= 12.5:
		return 2.0 / 3.0
	default:
		return 1.0/3.0 + (v-7.5)/(12.5-7.5)*(2.0/3.0-1.0/3.0)
	}
}

// FromCoefficientCurve computes power output from a power coefficient
// curve:
//
//	P = 1/8 * rho * d² * pi * v³ * cp(v)
//
// cp is interpolated at each wind speed and is zero outside the sampled
// range; the result is floored at zero.
func FromCoefficientCurve(windSpeed []float64, cp curve.Curve, density []float64, rotorDiameter float64) ([]float64, error) {
	if len(density) != len(windSpeed) {
		return nil, fmt.Errorf("%w: %d density values for %d wind speeds",
			ErrMissingDensity, len(density), len(windSpeed))
	}
	if rotorDiameter <= 0 {
		return nil, fmt.Errorf("rotor diameter must be positive, got %g m", rotorDiameter)
	}
	out := make([]float64, len(windSpeed))
	for i, v := range windSpeed {
		p := 1.0 / 8.0 * density[i] * rotorDiameter * rotorDiameter * math.Pi *
			v * v * v * cp.At(v)
		if p < 0 {
			p = 0
		}
		out[i] = p
	}
	return out, nil
}

// CapAt caps a power series at the nominal or installed capacity.
// Curve or interpolation artifacts never push output past the rated
// ceiling.
func CapAt(series []float64, limit float64) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		if p > limit {
			p = limit
		}
		out[i] = p
	}
	return out
}
