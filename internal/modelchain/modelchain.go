package modelchain

import (
	"fmt"
	"time"

	"wind_simulator/internal/atmosphere"
	"wind_simulator/internal/model"
	"wind_simulator/internal/power"
)

// ModelChain computes the power output of a single power plant from
// weather time series. Results are stored on the chain and overwritten
// by every Run; a chain is meant for single-owner, single-threaded use.
type ModelChain struct {
	plant Plant
	opts  Options

	// Results of the last Run. DensityHub stays nil when the selected
	// models never need air density.
	Times          []time.Time
	WindSpeedHub   []float64
	TemperatureHub []float64
	DensityHub     []float64
	PowerOutput    []float64
}

// New builds a model chain for a plant. Configuration errors are
// raised here, never mid-run.
func New(plant Plant, opts Options) (*ModelChain, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validatePlant(plant, opts); err != nil {
		return nil, err
	}
	return &ModelChain{plant: plant, opts: opts}, nil
}

// Options returns the chain's configured options.
func (mc *ModelChain) Options() Options { return mc.opts }

// Plant returns the chain's power plant.
func (mc *ModelChain) Plant() Plant { return mc.plant }

// Run executes the full pipeline on the given weather and stores the
// derived series on the chain. Air density is only computed when the
// power output model needs it. Run is re-invocable with new weather;
// previous results are discarded.
func (mc *ModelChain) Run(w *model.Weather) (*ModelChain, error) {
	mc.reset()

	windSpeedHub, err := mc.windSpeedHub(w)
	if err != nil {
		return nil, err
	}

	var densityHub []float64
	if mc.needsDensity() {
		densityHub, err = mc.densityHub(w)
		if err != nil {
			return nil, err
		}
	}

	output, err := mc.powerOutput(windSpeedHub, densityHub)
	if err != nil {
		return nil, err
	}

	mc.Times = w.Times()
	mc.WindSpeedHub = windSpeedHub
	mc.DensityHub = densityHub
	mc.PowerOutput = power.CapAt(output, mc.plant.NominalPower())
	return mc, nil
}

func (mc *ModelChain) reset() {
	mc.Times = nil
	mc.WindSpeedHub = nil
	mc.TemperatureHub = nil
	mc.DensityHub = nil
	mc.PowerOutput = nil
}

// needsDensity reports whether a later stage depends on air density at
// hub height. With a plain power curve and no density correction the
// density stages are skipped entirely.
func (mc *ModelChain) needsDensity() bool {
	return mc.opts.PowerOutputModel == OutputPowerCoefficientCurve || mc.opts.DensityCorrection
}

// windSpeedHub derives the wind speed series at hub height. A series
// measured exactly at hub height is used as-is.
func (mc *ModelChain) windSpeedHub(w *model.Weather) ([]float64, error) {
	hub := mc.plant.HubHeight()
	if series, ok := w.Series(model.QuantityWindSpeed, hub); ok {
		return series, nil
	}

	switch mc.opts.WindSpeedModel {
	case WindSpeedLogarithmic:
		series, height, err := w.ClosestSeries(model.QuantityWindSpeed, hub)
		if err != nil {
			return nil, err
		}
		roughness, err := mc.roughnessSeries(w)
		if err != nil {
			return nil, err
		}
		return atmosphere.LogarithmicProfile(series, height, hub, roughness, mc.opts.ObstacleHeight)
	case WindSpeedHellman:
		series, height, err := w.ClosestSeries(model.QuantityWindSpeed, hub)
		if err != nil {
			return nil, err
		}
		// Roughness is optional here; without it the exponent falls
		// back to 1/7.
		roughness, _ := mc.optionalRoughness(w)
		return atmosphere.Hellman(series, height, hub, roughness, mc.opts.HellmanExponent)
	case WindSpeedInterpolation:
		return mc.interpolated(w, model.QuantityWindSpeed, atmosphere.LinearHeightInterpolation)
	case WindSpeedLogInterpolation:
		return mc.interpolated(w, model.QuantityWindSpeed, atmosphere.LogarithmicHeightInterpolation)
	default:
		return nil, fmt.Errorf("%w: unknown wind speed model %q", ErrConfig, mc.opts.WindSpeedModel)
	}
}

// temperatureHubSeries derives the air temperature series at hub
// height, storing it on the chain for inspection.
func (mc *ModelChain) temperatureHubSeries(w *model.Weather) ([]float64, error) {
	hub := mc.plant.HubHeight()
	if series, ok := w.Series(model.QuantityTemperature, hub); ok {
		mc.TemperatureHub = series
		return series, nil
	}

	var series []float64
	var err error
	switch mc.opts.TemperatureModel {
	case TemperatureLinearGradient:
		var measured []float64
		var height float64
		measured, height, err = w.ClosestSeries(model.QuantityTemperature, hub)
		if err == nil {
			series = atmosphere.LinearGradient(measured, height, hub)
		}
	case TemperatureInterpolation:
		series, err = mc.interpolated(w, model.QuantityTemperature, atmosphere.LinearHeightInterpolation)
	default:
		err = fmt.Errorf("%w: unknown temperature model %q", ErrConfig, mc.opts.TemperatureModel)
	}
	if err != nil {
		return nil, err
	}
	mc.TemperatureHub = series
	return series, nil
}

// densityHub derives the air density series at hub height. The
// temperature correction runs first, except when density itself is
// measured at several heights and interpolated directly.
func (mc *ModelChain) densityHub(w *model.Weather) ([]float64, error) {
	hub := mc.plant.HubHeight()

	if mc.opts.DensityModel == DensityInterpolation {
		return mc.interpolated(w, model.QuantityDensity, atmosphere.LinearHeightInterpolation)
	}

	temperatureHub, err := mc.temperatureHubSeries(w)
	if err != nil {
		return nil, err
	}
	pressure, pressureHeight, err := w.ClosestSeries(model.QuantityPressure, hub)
	if err != nil {
		return nil, err
	}

	switch mc.opts.DensityModel {
	case DensityBarometric:
		return atmosphere.Barometric(pressure, pressureHeight, hub, temperatureHub)
	case DensityIdealGas:
		return atmosphere.IdealGas(pressure, pressureHeight, hub, temperatureHub)
	default:
		return nil, fmt.Errorf("%w: unknown density model %q", ErrConfig, mc.opts.DensityModel)
	}
}

// powerOutput evaluates the plant's curve at the hub wind speeds.
func (mc *ModelChain) powerOutput(windSpeedHub, densityHub []float64) ([]float64, error) {
	switch mc.opts.PowerOutputModel {
	case OutputPowerCurve:
		pc, _ := mc.plant.PowerCurve()
		if mc.opts.DensityCorrection {
			return power.FromPowerCurveDensityCorrected(windSpeedHub, densityHub, pc)
		}
		return power.FromPowerCurve(windSpeedHub, pc), nil
	case OutputPowerCoefficientCurve:
		cp, _ := mc.plant.PowerCoefficientCurve()
		return power.FromCoefficientCurve(windSpeedHub, cp, densityHub, mc.plant.RotorDiameter())
	default:
		return nil, fmt.Errorf("%w: unknown power output model %q", ErrConfig, mc.opts.PowerOutputModel)
	}
}

type heightInterpolation func(lower, upper []float64, lowerHeight, upperHeight, target float64) ([]float64, error)

func (mc *ModelChain) interpolated(w *model.Weather, q model.Quantity, interp heightInterpolation) ([]float64, error) {
	hub := mc.plant.HubHeight()
	h1, h2, err := w.TwoClosestHeights(q, hub)
	if err != nil {
		return nil, err
	}
	if h2 < h1 {
		h1, h2 = h2, h1
	}
	lower, _ := w.Series(q, h1)
	upper, _ := w.Series(q, h2)
	return interp(lower, upper, h1, h2, hub)
}

// roughnessSeries returns the roughness length series measured closest
// to the ground, required by the logarithmic profile.
func (mc *ModelChain) roughnessSeries(w *model.Weather) ([]float64, error) {
	heights := w.Heights(model.QuantityRoughnessLength)
	if len(heights) == 0 {
		return nil, fmt.Errorf("%s: %w", model.QuantityRoughnessLength, model.ErrNoData)
	}
	series, _ := w.Series(model.QuantityRoughnessLength, heights[0])
	return series, nil
}

func (mc *ModelChain) optionalRoughness(w *model.Weather) ([]float64, bool) {
	heights := w.Heights(model.QuantityRoughnessLength)
	if len(heights) == 0 {
		return nil, false
	}
	series, _ := w.Series(model.QuantityRoughnessLength, heights[0])
	return series, true
}
