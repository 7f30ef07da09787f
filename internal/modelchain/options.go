// Package modelchain sequences the physical corrections that turn
// weather time series into power output: height extrapolation of wind
// speed and temperature, air density estimation, optional curve
// transforms and the final curve lookup.
package modelchain

import (
	"errors"
	"fmt"

	"wind_simulator/internal/curve"
	"wind_simulator/internal/turbine"
)

// ErrConfig is returned for configuration errors: unknown model names
// or options inconsistent with the power plant. These are raised at
// construction; an invalid chain is never runnable.
var ErrConfig = errors.New("invalid model chain configuration")

// Wind speed models.
const (
	WindSpeedLogarithmic      = "logarithmic"
	WindSpeedHellman          = "hellman"
	WindSpeedInterpolation    = "interpolation_extrapolation"
	WindSpeedLogInterpolation = "log_interpolation_extrapolation"
)

// Temperature models.
const (
	TemperatureLinearGradient = "linear_gradient"
	TemperatureInterpolation  = "interpolation_extrapolation"
)

// Density models.
const (
	DensityBarometric    = "barometric"
	DensityIdealGas      = "ideal_gas"
	DensityInterpolation = "interpolation_extrapolation"
)

// Power output models.
const (
	OutputPowerCurve            = "power_curve"
	OutputPowerCoefficientCurve = "power_coefficient_curve"
)

// WakeLossesFarmEfficiency applies the farm's configured efficiency to
// the aggregated power curve; any other non-empty wake losses model
// names a wind efficiency curve used to reduce the hub wind speed.
const WakeLossesFarmEfficiency = "wind_farm_efficiency"

// Options selects the sub-model for each pipeline stage.
type Options struct {
	WindSpeedModel   string
	TemperatureModel string
	DensityModel     string
	PowerOutputModel string

	// DensityCorrection applies the density corrected power curve;
	// only meaningful with OutputPowerCurve.
	DensityCorrection bool
	// ObstacleHeight feeds the logarithmic profile's boundary layer
	// displacement; zero for wide spread obstacles.
	ObstacleHeight float64
	// HellmanExponent fixes the power-law exponent; zero derives it
	// from the roughness length, or 1/7 without one.
	HellmanExponent float64
}

// DefaultOptions returns the standard model selection.
func DefaultOptions() Options {
	return Options{
		WindSpeedModel:   WindSpeedLogarithmic,
		TemperatureModel: TemperatureLinearGradient,
		DensityModel:     DensityBarometric,
		PowerOutputModel: OutputPowerCurve,
	}
}

// Validate checks the option values against the known model names.
func (o Options) Validate() error {
	switch o.WindSpeedModel {
	case WindSpeedLogarithmic, WindSpeedHellman, WindSpeedInterpolation, WindSpeedLogInterpolation:
	default:
		return fmt.Errorf("%w: unknown wind speed model %q", ErrConfig, o.WindSpeedModel)
	}
	switch o.TemperatureModel {
	case TemperatureLinearGradient, TemperatureInterpolation:
	default:
		return fmt.Errorf("%w: unknown temperature model %q", ErrConfig, o.TemperatureModel)
	}
	switch o.DensityModel {
	case DensityBarometric, DensityIdealGas, DensityInterpolation:
	default:
		return fmt.Errorf("%w: unknown density model %q", ErrConfig, o.DensityModel)
	}
	switch o.PowerOutputModel {
	case OutputPowerCurve, OutputPowerCoefficientCurve:
	default:
		return fmt.Errorf("%w: unknown power output model %q", ErrConfig, o.PowerOutputModel)
	}
	if o.HellmanExponent < 0 {
		return fmt.Errorf("%w: hellman exponent must not be negative, got %g", ErrConfig, o.HellmanExponent)
	}
	if o.ObstacleHeight < 0 {
		return fmt.Errorf("%w: obstacle height must not be negative, got %g", ErrConfig, o.ObstacleHeight)
	}
	return nil
}

// Plant is the capability set the chain needs from a power plant:
// height correction and curve evaluation. Turbines satisfy it directly;
// farms and clusters are reduced to an equivalent plant by aggregation.
type Plant interface {
	HubHeight() float64
	NominalPower() float64
	RotorDiameter() float64
	PowerCurve() (curve.Curve, bool)
	PowerCoefficientCurve() (curve.Curve, bool)
}

var _ Plant = (*turbine.Turbine)(nil)

// validatePlant checks that the plant carries the curve the selected
// power output model needs.
func validatePlant(plant Plant, o Options) error {
	switch o.PowerOutputModel {
	case OutputPowerCurve:
		if _, ok := plant.PowerCurve(); !ok {
			return fmt.Errorf("%w: power output model %q needs a power curve", ErrConfig, o.PowerOutputModel)
		}
	case OutputPowerCoefficientCurve:
		if _, ok := plant.PowerCoefficientCurve(); !ok {
			return fmt.Errorf("%w: power output model %q needs a power coefficient curve",
				ErrConfig, o.PowerOutputModel)
		}
		if plant.RotorDiameter() <= 0 {
			return fmt.Errorf("%w: power output model %q needs a rotor diameter",
				ErrConfig, o.PowerOutputModel)
		}
	}
	return nil
}
