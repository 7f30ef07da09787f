// Package turbine holds the immutable descriptors of wind turbines,
// wind farms and turbine clusters, and the aggregation of fleet power
// curves into equivalent farm and cluster curves.
package turbine

import (
	"errors"
	"fmt"

	"wind_simulator/internal/curve"
)

// ErrInvalidDescriptor is returned when a turbine, farm or cluster descriptor
// violates its construction invariants.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// Config describes a wind turbine. Exactly one of PowerCurve and
// PowerCoefficientCurve must be given.
type Config struct {
	Name          string
	HubHeight     float64 // m above ground
	NominalPower  float64 // W
	RotorDiameter float64 // m, required with a power coefficient curve

	PowerCurve            []curve.Point // wind speed in m/s, power in W
	PowerCoefficientCurve []curve.Point // wind speed in m/s, cp dimensionless
}

// Turbine is an immutable wind turbine descriptor.
type Turbine struct {
	name          string
	hubHeight     float64
	nominalPower  float64
	rotorDiameter float64

	powerCurve   *curve.Curve
	powerCpCurve *curve.Curve
}

// New validates a turbine configuration eagerly and builds the
// descriptor. A rejected configuration never reaches the pipeline.
func New(cfg Config) (*Turbine, error) {
	if cfg.HubHeight <= 0 {
		return nil, fmt.Errorf("%w: hub height must be positive, got %g m", ErrInvalidDescriptor, cfg.HubHeight)
	}
	if cfg.NominalPower <= 0 {
		return nil, fmt.Errorf("%w: nominal power must be positive, got %g W", ErrInvalidDescriptor, cfg.NominalPower)
	}
	if (cfg.PowerCurve == nil) == (cfg.PowerCoefficientCurve == nil) {
		return nil, fmt.Errorf("%w: exactly one of power curve and power coefficient curve must be given",
			ErrInvalidDescriptor)
	}
	if cfg.RotorDiameter < 0 {
		return nil, fmt.Errorf("%w: rotor diameter must not be negative, got %g m", ErrInvalidDescriptor, cfg.RotorDiameter)
	}
	if cfg.RotorDiameter > 0 && cfg.HubHeight <= cfg.RotorDiameter/2 {
		return nil, fmt.Errorf("%w: hub height %g m must exceed half the rotor diameter %g m",
			ErrInvalidDescriptor, cfg.HubHeight, cfg.RotorDiameter)
	}

	t := &Turbine{
		name:          cfg.Name,
		hubHeight:     cfg.HubHeight,
		nominalPower:  cfg.NominalPower,
		rotorDiameter: cfg.RotorDiameter,
	}

	if cfg.PowerCurve != nil {
		pc, err := curve.New(cfg.PowerCurve)
		if err != nil {
			return nil, fmt.Errorf("power curve of %q: %w", cfg.Name, err)
		}
		if pc.MaxValue() > cfg.NominalPower {
			return nil, fmt.Errorf("%w: power curve of %q peaks at %g W, above nominal power %g W",
				ErrInvalidDescriptor, cfg.Name, pc.MaxValue(), cfg.NominalPower)
		}
		t.powerCurve = &pc
	}
	if cfg.PowerCoefficientCurve != nil {
		if cfg.RotorDiameter <= 0 {
			return nil, fmt.Errorf("%w: rotor diameter is required with a power coefficient curve",
				ErrInvalidDescriptor)
		}
		cp, err := curve.New(cfg.PowerCoefficientCurve)
		if err != nil {
			return nil, fmt.Errorf("power coefficient curve of %q: %w", cfg.Name, err)
		}
		t.powerCpCurve = &cp
	}
	return t, nil
}

// Name returns the turbine name.
func (t *Turbine) Name() string { return t.name }

// HubHeight returns the hub height in m.
func (t *Turbine) HubHeight() float64 { return t.hubHeight }

// NominalPower returns the manufacturer-rated maximum power in W.
func (t *Turbine) NominalPower() float64 { return t.nominalPower }

// RotorDiameter returns the rotor diameter in m (zero when unknown).
func (t *Turbine) RotorDiameter() float64 { return t.rotorDiameter }

// PowerCurve returns the power curve, if the turbine has one.
func (t *Turbine) PowerCurve() (curve.Curve, bool) {
	if t.powerCurve == nil {
		return curve.Curve{}, false
	}
	return *t.powerCurve, true
}

// PowerCoefficientCurve returns the cp curve, if the turbine has one.
func (t *Turbine) PowerCoefficientCurve() (curve.Curve, bool) {
	if t.powerCpCurve == nil {
		return curve.Curve{}, false
	}
	return *t.powerCpCurve, true
}
