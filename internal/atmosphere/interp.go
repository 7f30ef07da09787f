package atmosphere

import (
	"fmt"
	"math"
)

// LinearHeightInterpolation inter- or extrapolates a quantity measured
// at two heights to a target height:
//
//	f(h) = (f(h2) - f(h1)) / (h2 - h1) * (h - h1) + f(h1)
//
// Used when a quantity is available at two or more heights bracketing
// (or near) the hub height.
func LinearHeightInterpolation(lower, upper []float64, lowerHeight, upperHeight, targetHeight float64) ([]float64, error) {
	if err := checkHeightPair(lower, upper, lowerHeight, upperHeight); err != nil {
		return nil, err
	}
	out := make([]float64, len(lower))
	for i := range lower {
		out[i] = (upper[i]-lower[i])/(upperHeight-lowerHeight)*
			(targetHeight-lowerHeight) + lower[i]
	}
	return out, nil
}

// LogarithmicHeightInterpolation inter- or extrapolates between two
// heights assuming the quantity varies with the logarithm of height:
//
//	f(h) = (ln(h)*(f(h2)-f(h1)) - f(h2)*ln(h1) + f(h1)*ln(h2)) / (ln(h2) - ln(h1))
//
// Suited to wind speed, whose vertical shear is logarithmic.
func LogarithmicHeightInterpolation(lower, upper []float64, lowerHeight, upperHeight, targetHeight float64) ([]float64, error) {
	if err := checkHeightPair(lower, upper, lowerHeight, upperHeight); err != nil {
		return nil, err
	}
	if lowerHeight <= 0 || upperHeight <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("%w: logarithmic interpolation requires positive heights", ErrDomain)
	}
	logLower := math.Log(lowerHeight)
	logUpper := math.Log(upperHeight)
	out := make([]float64, len(lower))
	for i := range lower {
		out[i] = (math.Log(targetHeight)*(upper[i]-lower[i]) -
			upper[i]*logLower + lower[i]*logUpper) /
			(logUpper - logLower)
	}
	return out, nil
}

func checkHeightPair(lower, upper []float64, lowerHeight, upperHeight float64) error {
	if len(lower) != len(upper) {
		return fmt.Errorf("series at %g m has %d values, series at %g m has %d",
			lowerHeight, len(lower), upperHeight, len(upper))
	}
	if lowerHeight == upperHeight {
		return fmt.Errorf("%w: interpolation needs two distinct heights, got %g m twice",
			ErrDomain, lowerHeight)
	}
	return nil
}
