package atmosphere

// temperatureGradient is the ICAO standard atmosphere lapse rate in K/m.
const temperatureGradient = 0.0065

// LinearGradient extrapolates an air temperature series (in K) from the
// measurement height to hub height assuming the standard atmosphere
// lapse rate of -6.5 K/km:
//
//	T_hub = T - 0.0065 * (h_hub - h_meas)
//
// Defined for all real heights; equal heights yield the input unchanged.
func LinearGradient(temperature []float64, temperatureHeight, hubHeight float64) []float64 {
	out := make([]float64, len(temperature))
	for i, t := range temperature {
		out[i] = t - temperatureGradient*(hubHeight-temperatureHeight)
	}
	return out
}
