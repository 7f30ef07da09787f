package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned when an input is outside the physical domain of
// a correction model (non-positive height, roughness length at or above
// a height, etc.).
var ErrDomain = errors.New("input outside model domain")

// defaultHellmanExponent is the commonly used onshore value of 1/7.
const defaultHellmanExponent = 1.0 / 7.0

// LogarithmicProfile extrapolates a wind speed series from the
// measurement height to hub height using the logarithmic wind profile
//
//	v_hub = v * ln((h_hub - d) / z0) / ln((h_meas - d) / z0)
//
// with d = 0.7 * obstacleHeight as boundary layer displacement. Set
// obstacleHeight to zero for wide spread obstacles. roughnessLength is a
// per-timestamp series of the terrain roughness length z0.
func LogarithmicProfile(windSpeed []float64, windSpeedHeight, hubHeight float64, roughnessLength []float64, obstacleHeight float64) ([]float64, error) {
	if len(roughnessLength) != len(windSpeed) {
		return nil, fmt.Errorf("roughness length series has %d values, wind speed has %d",
			len(roughnessLength), len(windSpeed))
	}
	displacement := 0.7 * obstacleHeight
	if displacement > windSpeedHeight {
		return nil, fmt.Errorf("%w: obstacle height %g m requires wind speed data above %g m",
			ErrDomain, obstacleHeight, displacement)
	}

	out := make([]float64, len(windSpeed))
	for i, v := range windSpeed {
		z0 := roughnessLength[i]
		if z0 <= 0 {
			return nil, fmt.Errorf("%w: roughness length must be positive, got %g", ErrDomain, z0)
		}
		if hubHeight-displacement <= z0 || windSpeedHeight-displacement <= z0 {
			return nil, fmt.Errorf("%w: heights (%g m, %g m) must exceed roughness length %g m",
				ErrDomain, windSpeedHeight, hubHeight, z0)
		}
		out[i] = v * math.Log((hubHeight-displacement)/z0) / math.Log((windSpeedHeight-displacement)/z0)
	}
	return out, nil
}

// Hellman extrapolates a wind speed series to hub height assuming a
// power-law profile
//
//	v_hub = v * (h_hub / h_meas)^alpha
//
// exponent selects alpha directly; pass 0 to estimate it from the
// roughness length as 1/ln(h_hub/z0), falling back to 1/7 when no
// roughness series is given. roughnessLength may be nil.
func Hellman(windSpeed []float64, windSpeedHeight, hubHeight float64, roughnessLength []float64, exponent float64) ([]float64, error) {
	if windSpeedHeight <= 0 || hubHeight <= 0 {
		return nil, fmt.Errorf("%w: heights must be positive (%g m, %g m)",
			ErrDomain, windSpeedHeight, hubHeight)
	}
	if roughnessLength != nil && len(roughnessLength) != len(windSpeed) {
		return nil, fmt.Errorf("roughness length series has %d values, wind speed has %d",
			len(roughnessLength), len(windSpeed))
	}

	out := make([]float64, len(windSpeed))
	for i, v := range windSpeed {
		alpha := exponent
		if alpha == 0 {
			if roughnessLength != nil {
				z0 := roughnessLength[i]
				if z0 <= 0 || hubHeight <= z0 {
					return nil, fmt.Errorf("%w: roughness length %g m invalid for hub height %g m",
						ErrDomain, z0, hubHeight)
				}
				alpha = 1 / math.Log(hubHeight/z0)
			} else {
				alpha = defaultHellmanExponent
			}
		}
		out[i] = v * math.Pow(hubHeight/windSpeedHeight, alpha)
	}
	return out, nil
}
