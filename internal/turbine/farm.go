package turbine

import (
	"fmt"
	"math"

	"wind_simulator/internal/curve"
)

// Smoothing order for farm curve aggregation.
const (
	SmoothTurbineCurves = "turbine_power_curves"
	SmoothFarmCurve     = "wind_farm_power_curves"
)

// FleetEntry is the aggregation unit of a farm: a turbine type and how
// many of it the farm operates.
type FleetEntry struct {
	Turbine *Turbine
	Count   int
}

// FarmConfig describes a wind farm. Efficiency and EfficiencyCurve
// model farm-level wake losses; at most one may be set.
type FarmConfig struct {
	Name  string
	Fleet []FleetEntry

	// Efficiency is a constant farm efficiency in (0, 1]; zero means
	// no constant efficiency is configured.
	Efficiency float64
	// EfficiencyCurve is a wind-speed-dependent efficiency curve.
	EfficiencyCurve []curve.Point
}

// Farm is an immutable wind farm descriptor.
type Farm struct {
	name            string
	fleet           []FleetEntry
	efficiency      float64
	efficiencyCurve *curve.Curve
}

// NewFarm validates a farm configuration and builds the descriptor.
func NewFarm(cfg FarmConfig) (*Farm, error) {
	if len(cfg.Fleet) == 0 {
		return nil, fmt.Errorf("%w: farm %q has an empty fleet", ErrInvalidDescriptor, cfg.Name)
	}
	for i, entry := range cfg.Fleet {
		if entry.Turbine == nil {
			return nil, fmt.Errorf("%w: farm %q fleet entry %d has no turbine", ErrInvalidDescriptor, cfg.Name, i)
		}
		if entry.Count <= 0 {
			return nil, fmt.Errorf("%w: farm %q fleet entry %d has count %d",
				ErrInvalidDescriptor, cfg.Name, i, entry.Count)
		}
	}
	if cfg.Efficiency < 0 || cfg.Efficiency > 1 {
		return nil, fmt.Errorf("%w: farm %q efficiency %g outside [0, 1]",
			ErrInvalidDescriptor, cfg.Name, cfg.Efficiency)
	}
	if cfg.Efficiency > 0 && cfg.EfficiencyCurve != nil {
		return nil, fmt.Errorf("%w: farm %q has both a constant efficiency and an efficiency curve",
			ErrInvalidDescriptor, cfg.Name)
	}

	f := &Farm{
		name:       cfg.Name,
		fleet:      append([]FleetEntry(nil), cfg.Fleet...),
		efficiency: cfg.Efficiency,
	}
	if cfg.EfficiencyCurve != nil {
		ec, err := curve.New(cfg.EfficiencyCurve)
		if err != nil {
			return nil, fmt.Errorf("efficiency curve of farm %q: %w", cfg.Name, err)
		}
		f.efficiencyCurve = &ec
	}
	return f, nil
}

// Name returns the farm name.
func (f *Farm) Name() string { return f.name }

// Fleet returns a copy of the fleet entries.
func (f *Farm) Fleet() []FleetEntry {
	return append([]FleetEntry(nil), f.fleet...)
}

// NominalPower returns the installed capacity in W, the sum over the
// fleet of count times turbine nominal power.
func (f *Farm) NominalPower() float64 {
	var total float64
	for _, entry := range f.fleet {
		total += float64(entry.Count) * entry.Turbine.NominalPower()
	}
	return total
}

// MeanHubHeight returns the single effective hub height of the farm:
// the capacity-weighted logarithmic mean of the member hub heights,
//
//	h = exp( sum_i ln(h_i) * cap_i / sum_i cap_i )
func (f *Farm) MeanHubHeight() float64 {
	var logSum float64
	for _, entry := range f.fleet {
		capacity := float64(entry.Count) * entry.Turbine.NominalPower()
		logSum += math.Log(entry.Turbine.HubHeight()) * capacity
	}
	return math.Exp(logSum / f.NominalPower())
}

// AggregationOptions configures how a fleet's power curves are combined
// into one equivalent curve.
type AggregationOptions struct {
	// Smoothing enables Gaussian power curve smoothing.
	Smoothing bool
	// SmoothingOrder selects whether individual turbine curves or the
	// aggregated farm curve are smoothed. Default SmoothFarmCurve.
	SmoothingOrder string
	// BlockWidth, StdDevMethod, TurbulenceIntensity configure the
	// smoothing kernel, see curve.SmoothOptions.
	BlockWidth          float64
	StdDevMethod        string
	TurbulenceIntensity float64
	// RoughnessLength is used to estimate the turbulence intensity at
	// each turbine's hub height when TurbulenceIntensity is unset.
	RoughnessLength float64
	// ApplyEfficiency applies the farm's configured wake-loss
	// efficiency to the aggregated curve.
	ApplyEfficiency bool
}

// AssignPowerCurve combines the fleet's power curves (scaled by their
// multiplicities) into one equivalent farm power curve on the union
// wind-speed grid. Wake losses, when requested, are applied to the
// aggregated curve, since efficiency curves are farm-level phenomena.
func (f *Farm) AssignPowerCurve(opts AggregationOptions) (curve.Curve, error) {
	if opts.SmoothingOrder == "" {
		opts.SmoothingOrder = SmoothFarmCurve
	}

	scaled := make([]curve.Curve, 0, len(f.fleet))
	for _, entry := range f.fleet {
		pc, ok := entry.Turbine.PowerCurve()
		if !ok {
			return curve.Curve{}, fmt.Errorf("%w: turbine %q has no power curve to aggregate",
				ErrInvalidDescriptor, entry.Turbine.Name())
		}
		if opts.Smoothing && opts.SmoothingOrder == SmoothTurbineCurves {
			smoothOpts, err := f.smoothOptions(opts, entry.Turbine.HubHeight())
			if err != nil {
				return curve.Curve{}, err
			}
			pc, err = curve.Smooth(pc, smoothOpts)
			if err != nil {
				return curve.Curve{}, fmt.Errorf("smoothing power curve of %q: %w", entry.Turbine.Name(), err)
			}
		}
		scaled = append(scaled, pc.Scale(float64(entry.Count)))
	}

	farmCurve, err := curve.Sum(scaled)
	if err != nil {
		return curve.Curve{}, fmt.Errorf("aggregating farm %q: %w", f.name, err)
	}

	if opts.Smoothing && opts.SmoothingOrder == SmoothFarmCurve {
		smoothOpts, err := f.smoothOptions(opts, f.MeanHubHeight())
		if err != nil {
			return curve.Curve{}, err
		}
		farmCurve, err = curve.Smooth(farmCurve, smoothOpts)
		if err != nil {
			return curve.Curve{}, fmt.Errorf("smoothing farm curve of %q: %w", f.name, err)
		}
	}

	if opts.ApplyEfficiency {
		switch {
		case f.efficiencyCurve != nil:
			farmCurve, err = curve.ApplyEfficiencyCurve(farmCurve, *f.efficiencyCurve)
		case f.efficiency > 0:
			farmCurve, err = curve.ApplyEfficiency(farmCurve, f.efficiency)
		}
		if err != nil {
			return curve.Curve{}, fmt.Errorf("applying wake losses of farm %q: %w", f.name, err)
		}
	}
	return farmCurve, nil
}

// HasEfficiency reports whether the farm has a configured wake-loss
// efficiency (constant or curve).
func (f *Farm) HasEfficiency() bool {
	return f.efficiency > 0 || f.efficiencyCurve != nil
}

func (f *Farm) smoothOptions(opts AggregationOptions, height float64) (curve.SmoothOptions, error) {
	smoothOpts := curve.DefaultSmoothOptions()
	if opts.BlockWidth > 0 {
		smoothOpts.BlockWidth = opts.BlockWidth
	}
	if opts.StdDevMethod != "" {
		smoothOpts.StdDevMethod = opts.StdDevMethod
	}
	smoothOpts.TurbulenceIntensity = opts.TurbulenceIntensity
	if smoothOpts.StdDevMethod == curve.StdDevTurbulenceIntensity &&
		smoothOpts.TurbulenceIntensity == 0 {
		if opts.RoughnessLength <= 0 {
			return curve.SmoothOptions{}, fmt.Errorf(
				"%w: smoothing farm %q needs a turbulence intensity or a roughness length",
				ErrInvalidDescriptor, f.name)
		}
		ti, err := curve.EstimateTurbulenceIntensity(height, opts.RoughnessLength)
		if err != nil {
			return curve.SmoothOptions{}, err
		}
		smoothOpts.TurbulenceIntensity = ti
	}
	return smoothOpts, nil
}
