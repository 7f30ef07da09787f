package modelchain

import (
	"fmt"
	"time"

	"wind_simulator/internal/curve"
	"wind_simulator/internal/model"
	"wind_simulator/internal/power"
	"wind_simulator/internal/turbine"
)

// Site is the capability set of an aggregatable plant: wind farms and
// turbine clusters both reduce to one equivalent power curve at one
// effective hub height.
type Site interface {
	NominalPower() float64
	MeanHubHeight() float64
	AssignPowerCurve(turbine.AggregationOptions) (curve.Curve, error)
	HasEfficiency() bool
}

var (
	_ Site = (*turbine.Farm)(nil)
	_ Site = (*turbine.Cluster)(nil)
)

// FarmOptions extends the chain options with the farm-level stages:
// aggregation-time smoothing and the wake losses model.
type FarmOptions struct {
	Options

	// WakeLossesModel is WakeLossesFarmEfficiency, the name of a wind
	// efficiency curve (e.g. "dena_mean"), or empty for no wake
	// losses.
	WakeLossesModel string
	// Smoothing enables Gaussian smoothing of the power curves.
	Smoothing bool
	// SmoothingOrder selects whether turbine or farm curves are
	// smoothed; see turbine.AggregationOptions.
	SmoothingOrder string
	// BlockWidth and StdDevMethod configure the smoothing kernel.
	BlockWidth   float64
	StdDevMethod string
}

// DefaultFarmOptions returns the standard farm chain setup: dena mean
// wind efficiency curve wake losses, no smoothing.
func DefaultFarmOptions() FarmOptions {
	return FarmOptions{
		Options:         DefaultOptions(),
		WakeLossesModel: "dena_mean",
	}
}

// validate checks the wake losses model eagerly; named wind efficiency
// curves must exist at construction time.
func (o FarmOptions) validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.PowerOutputModel != OutputPowerCurve {
		return fmt.Errorf("%w: farm aggregation produces a power curve; power output model %q is not usable",
			ErrConfig, o.PowerOutputModel)
	}
	if o.WakeLossesModel != "" && o.WakeLossesModel != WakeLossesFarmEfficiency {
		if _, err := curve.WindEfficiencyCurve(o.WakeLossesModel); err != nil {
			return fmt.Errorf("%w: wake losses model: %v", ErrConfig, err)
		}
	}
	return nil
}

// FarmChain runs the power output pipeline for a wind farm or turbine
// cluster. It composes the single-plant ModelChain with an aggregation
// stage: the site is reduced to one equivalent curve and mean hub
// height, then the same height-correct/evaluate pipeline runs on it.
type FarmChain struct {
	site Site
	opts FarmOptions

	// PowerCurve is the aggregated (and possibly smoothed or wake
	// adjusted) site curve of the last Run.
	PowerCurve curve.Curve

	// Results of the last Run, as in ModelChain.
	Times          []time.Time
	WindSpeedHub   []float64
	TemperatureHub []float64
	DensityHub     []float64
	PowerOutput    []float64
}

// NewFarmChain builds a chain for a farm or cluster site.
func NewFarmChain(site Site, opts FarmOptions) (*FarmChain, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &FarmChain{site: site, opts: opts}, nil
}

// Site returns the chain's site.
func (fc *FarmChain) Site() Site { return fc.site }

// Run aggregates the site's power curve for the given weather and runs
// the pipeline on the equivalent plant. Turbulence intensity and
// roughness length are taken from the weather table when present.
func (fc *FarmChain) Run(w *model.Weather) (*FarmChain, error) {
	aggOpts := turbine.AggregationOptions{
		Smoothing:       fc.opts.Smoothing,
		SmoothingOrder:  fc.opts.SmoothingOrder,
		BlockWidth:      fc.opts.BlockWidth,
		StdDevMethod:    fc.opts.StdDevMethod,
		ApplyEfficiency: fc.opts.WakeLossesModel == WakeLossesFarmEfficiency,
	}
	if ti, ok := w.Mean(model.QuantityTurbulenceIntensity); ok {
		aggOpts.TurbulenceIntensity = ti
	}
	if z0, ok := w.Mean(model.QuantityRoughnessLength); ok {
		aggOpts.RoughnessLength = z0
	}

	siteCurve, err := fc.site.AssignPowerCurve(aggOpts)
	if err != nil {
		return nil, err
	}
	fc.PowerCurve = siteCurve

	plant := equivalentPlant{
		hubHeight:    fc.site.MeanHubHeight(),
		nominalPower: fc.site.NominalPower(),
		powerCurve:   siteCurve,
	}
	chain, err := New(plant, fc.opts.Options)
	if err != nil {
		return nil, err
	}

	windSpeedHub, err := chain.windSpeedHub(w)
	if err != nil {
		return nil, err
	}
	if name := fc.opts.WakeLossesModel; name != "" && name != WakeLossesFarmEfficiency {
		windSpeedHub, err = curve.ReduceWindSpeed(windSpeedHub, name)
		if err != nil {
			return nil, err
		}
	}

	var densityHub []float64
	if chain.needsDensity() {
		densityHub, err = chain.densityHub(w)
		if err != nil {
			return nil, err
		}
	}

	output, err := chain.powerOutput(windSpeedHub, densityHub)
	if err != nil {
		return nil, err
	}

	fc.Times = w.Times()
	fc.WindSpeedHub = windSpeedHub
	fc.TemperatureHub = chain.TemperatureHub
	fc.DensityHub = densityHub
	fc.PowerOutput = power.CapAt(output, fc.site.NominalPower())
	return fc, nil
}

// equivalentPlant is the reduction of a farm or cluster to the Plant
// capability set: one curve at one effective height.
type equivalentPlant struct {
	hubHeight    float64
	nominalPower float64
	powerCurve   curve.Curve
}

func (p equivalentPlant) HubHeight() float64     { return p.hubHeight }
func (p equivalentPlant) NominalPower() float64  { return p.nominalPower }
func (p equivalentPlant) RotorDiameter() float64 { return 0 }

func (p equivalentPlant) PowerCurve() (curve.Curve, bool) {
	return p.powerCurve, true
}

func (p equivalentPlant) PowerCoefficientCurve() (curve.Curve, bool) {
	return curve.Curve{}, false
}
