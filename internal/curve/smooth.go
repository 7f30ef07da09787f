package curve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Standard deviation methods for power curve smoothing.
const (
	StdDevTurbulenceIntensity = "turbulence_intensity"
	StdDevStaffellPfenninger  = "staffell_pfenninger"
)

// SmoothOptions configures Gaussian power curve smoothing.
type SmoothOptions struct {
	// BlockWidth is the wind-speed step of the output grid and of the
	// convolution sum. Default 0.5 m/s.
	BlockWidth float64
	// WindSpeedRange is how far below and above each target speed the
	// convolution reaches. Default 15 m/s.
	WindSpeedRange float64
	// StdDevMethod selects how the kernel width varies with wind speed.
	StdDevMethod string
	// TurbulenceIntensity is required for StdDevTurbulenceIntensity;
	// sigma(v) = v * TI.
	TurbulenceIntensity float64
	// Mean shifts the Gaussian kernel. Default 0.
	Mean float64
}

// DefaultSmoothOptions returns the standard smoothing setup.
func DefaultSmoothOptions() SmoothOptions {
	return SmoothOptions{
		BlockWidth:     0.5,
		WindSpeedRange: 15.0,
		StdDevMethod:   StdDevTurbulenceIntensity,
	}
}

// EstimateTurbulenceIntensity estimates the turbulence intensity at a
// height from the terrain roughness length: TI = 1 / ln(h/z0).
func EstimateTurbulenceIntensity(height, roughnessLength float64) (float64, error) {
	if roughnessLength <= 0 || height <= roughnessLength {
		return 0, fmt.Errorf("%w: height %g m and roughness length %g m", ErrInvalidCurve, height, roughnessLength)
	}
	return 1 / math.Log(height/roughnessLength), nil
}

// Smooth convolves a power curve with a Gaussian kernel whose standard
// deviation grows with wind speed, modelling the spatial distribution of
// wind speeds across a rotor or farm footprint. The curve is zero
// extended below cut-in and above cut-out before convolving, and the
// result is resampled onto a regular grid of BlockWidth steps reaching
// WindSpeedRange beyond the original cut-out. Each output value is the
// kernel-weighted average of the padded curve:
//
//	P_smooth(v) = sum_i P(v_i) g(v - v_i) / sum_i g(v - v_i)
func Smooth(c Curve, opts SmoothOptions) (Curve, error) {
	if opts.BlockWidth <= 0 {
		opts.BlockWidth = 0.5
	}
	if opts.WindSpeedRange <= 0 {
		opts.WindSpeedRange = 15.0
	}

	sigma, err := stdDevFunc(opts)
	if err != nil {
		return Curve{}, err
	}

	padded := c.ZeroPadded(opts.BlockWidth)
	maxSpeed := c.MaxWindSpeed() + opts.WindSpeedRange

	var points []Point
	for v := 0.0; v <= maxSpeed+opts.BlockWidth/2; v += opts.BlockWidth {
		sd := sigma(v)
		if sd <= 0 {
			// The Gaussian is undefined for a zero standard deviation;
			// at those speeds curve values are zero anyway.
			points = append(points, Point{WindSpeed: v, Value: 0})
			continue
		}
		kernel := distuv.Normal{Mu: opts.Mean, Sigma: sd}
		var weighted, weightSum float64
		for offset := -opts.WindSpeedRange; offset <= opts.WindSpeedRange+opts.BlockWidth/2; offset += opts.BlockWidth {
			sample := v + offset
			weight := kernel.Prob(v - sample)
			weighted += padded.At(sample) * weight
			weightSum += weight
		}
		value := 0.0
		if weightSum > 0 {
			value = weighted / weightSum
		}
		points = append(points, Point{WindSpeed: v, Value: value})
	}
	return New(points)
}

func stdDevFunc(opts SmoothOptions) (func(float64) float64, error) {
	switch opts.StdDevMethod {
	case StdDevTurbulenceIntensity:
		if opts.TurbulenceIntensity <= 0 {
			return nil, fmt.Errorf("%w: turbulence intensity must be set for the %s method",
				ErrInvalidCurve, StdDevTurbulenceIntensity)
		}
		ti := opts.TurbulenceIntensity
		return func(v float64) float64 { return v * ti }, nil
	case StdDevStaffellPfenninger:
		return func(v float64) float64 { return 0.2*v + 0.6 }, nil
	default:
		return nil, fmt.Errorf("%w: unknown standard deviation method %q",
			ErrInvalidCurve, opts.StdDevMethod)
	}
}
