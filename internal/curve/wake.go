package curve

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEfficiencyCurve is returned when a named wind efficiency
// curve does not exist.
var ErrUnknownEfficiencyCurve = errors.New("unknown wind efficiency curve")

// ApplyEfficiency derates every power value of a curve by a constant
// farm efficiency in (0, 1].
func ApplyEfficiency(c Curve, efficiency float64) (Curve, error) {
	if efficiency <= 0 || efficiency > 1 {
		return Curve{}, fmt.Errorf("%w: efficiency %g outside (0, 1]", ErrInvalidCurve, efficiency)
	}
	return c.Scale(efficiency), nil
}

// ApplyEfficiencyCurve derates a power curve by a wind-speed-dependent
// efficiency curve. The efficiency is interpolated at each of the power
// curve's sample speeds and multiplied in pointwise; the wind-speed grid
// is unchanged.
func ApplyEfficiencyCurve(c Curve, efficiency Curve) (Curve, error) {
	points := c.Points()
	for i, p := range points {
		eff := efficiency.AtClamped(p.WindSpeed)
		if eff < 0 || eff > 1 {
			return Curve{}, fmt.Errorf("%w: efficiency %g at %g m/s outside [0, 1]",
				ErrInvalidCurve, eff, p.WindSpeed)
		}
		points[i].Value = p.Value * eff
	}
	return New(points)
}

// ReduceWindSpeed reduces a wind speed series by a named wind efficiency
// curve, the wake-loss formulation used when losses are modelled as a
// wind speed reduction rather than a power derating.
func ReduceWindSpeed(windSpeed []float64, curveName string) ([]float64, error) {
	eff, err := WindEfficiencyCurve(curveName)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(windSpeed))
	for i, v := range windSpeed {
		out[i] = v * eff.AtClamped(v)
	}
	return out, nil
}

// WindEfficiencyCurve returns one of the compiled-in reference wind
// efficiency curves by name.
func WindEfficiencyCurve(name string) (Curve, error) {
	points, ok := windEfficiencyCurves[name]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q (available: %v)",
			ErrUnknownEfficiencyCurve, name, WindEfficiencyCurveNames())
	}
	return New(points)
}

// WindEfficiencyCurveNames returns the available reference curve names,
// sorted.
func WindEfficiencyCurveNames() []string {
	names := make([]string, 0, len(windEfficiencyCurves))
	for name := range windEfficiencyCurves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
