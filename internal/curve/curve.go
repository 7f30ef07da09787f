// Package curve implements sampled wind-speed curves (power curves,
// power coefficient curves, wind efficiency curves) and the transforms
// applied to them: interpolation, Gaussian smoothing and wake losses.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCurve is returned when curve samples violate the curve
// invariants (strictly increasing wind speeds, non-negative values).
var ErrInvalidCurve = errors.New("invalid curve")

// Point is one curve sample: a wind speed in m/s and the value the
// curve takes there (power in W, or a dimensionless coefficient).
type Point struct {
	WindSpeed float64
	Value     float64
}

// Curve is an ordered sequence of samples, strictly increasing in wind
// speed. Outside the sampled range a curve evaluates to zero unless the
// caller explicitly asks for extrapolation.
type Curve struct {
	points []Point
}

// New validates the samples and builds a curve. Wind speeds must be
// non-negative and strictly increasing, values non-negative.
func New(points []Point) (Curve, error) {
	if len(points) < 2 {
		return Curve{}, fmt.Errorf("%w: need at least two points, got %d", ErrInvalidCurve, len(points))
	}
	ps := make([]Point, len(points))
	copy(ps, points)
	for i, p := range ps {
		if p.WindSpeed < 0 {
			return Curve{}, fmt.Errorf("%w: negative wind speed %g", ErrInvalidCurve, p.WindSpeed)
		}
		if p.Value < 0 {
			return Curve{}, fmt.Errorf("%w: negative value %g at %g m/s", ErrInvalidCurve, p.Value, p.WindSpeed)
		}
		if i > 0 && p.WindSpeed <= ps[i-1].WindSpeed {
			return Curve{}, fmt.Errorf("%w: wind speeds must be strictly increasing (%g after %g)",
				ErrInvalidCurve, p.WindSpeed, ps[i-1].WindSpeed)
		}
	}
	return Curve{points: ps}, nil
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.points) }

// Points returns a copy of the samples.
func (c Curve) Points() []Point {
	ps := make([]Point, len(c.points))
	copy(ps, c.points)
	return ps
}

// WindSpeeds returns the sampled wind speeds.
func (c Curve) WindSpeeds() []float64 {
	vs := make([]float64, len(c.points))
	for i, p := range c.points {
		vs[i] = p.WindSpeed
	}
	return vs
}

// MinWindSpeed returns the first sampled wind speed.
func (c Curve) MinWindSpeed() float64 { return c.points[0].WindSpeed }

// MaxWindSpeed returns the last sampled wind speed.
func (c Curve) MaxWindSpeed() float64 { return c.points[len(c.points)-1].WindSpeed }

// MaxValue returns the largest sampled value.
func (c Curve) MaxValue() float64 {
	max := 0.0
	for _, p := range c.points {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// At linearly interpolates the curve at the given wind speed. Queries
// outside the sampled range return zero; manufacturer curves carry
// explicit zero samples at cut-in and cut-out, so the zero padding is
// the physically safe default. A NaN query yields NaN.
func (c Curve) At(windSpeed float64) float64 {
	if windSpeed < c.MinWindSpeed() || windSpeed > c.MaxWindSpeed() {
		return 0
	}
	return c.interpolate(windSpeed)
}

// AtExtrapolated linearly interpolates inside the sampled range and
// linearly extrapolates beyond it using the two nearest boundary
// samples. Callers needing a physical floor clamp the result.
func (c Curve) AtExtrapolated(windSpeed float64) float64 {
	n := len(c.points)
	if windSpeed < c.points[0].WindSpeed {
		return extrapolate(c.points[0], c.points[1], windSpeed)
	}
	if windSpeed > c.points[n-1].WindSpeed {
		return extrapolate(c.points[n-2], c.points[n-1], windSpeed)
	}
	return c.interpolate(windSpeed)
}

func (c Curve) interpolate(windSpeed float64) float64 {
	// A NaN query fails every range check above and would run the
	// binary search off the end of the samples.
	if math.IsNaN(windSpeed) {
		return math.NaN()
	}
	// Find the first sample at or beyond the query speed.
	idx := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].WindSpeed >= windSpeed
	})
	if idx < len(c.points) && c.points[idx].WindSpeed == windSpeed {
		return c.points[idx].Value
	}
	return extrapolate(c.points[idx-1], c.points[idx], windSpeed)
}

func extrapolate(a, b Point, windSpeed float64) float64 {
	frac := (windSpeed - a.WindSpeed) / (b.WindSpeed - a.WindSpeed)
	return a.Value + frac*(b.Value-a.Value)
}

// AtClamped interpolates the curve at the given wind speed, holding the
// boundary value outside the sampled range. Used for efficiency curves,
// where the boundary efficiency is the best available estimate.
func (c Curve) AtClamped(windSpeed float64) float64 {
	if windSpeed <= c.MinWindSpeed() {
		return c.points[0].Value
	}
	if windSpeed >= c.MaxWindSpeed() {
		return c.points[len(c.points)-1].Value
	}
	return c.interpolate(windSpeed)
}

// Scale returns a new curve with every value multiplied by factor.
func (c Curve) Scale(factor float64) Curve {
	ps := make([]Point, len(c.points))
	for i, p := range c.points {
		ps[i] = Point{WindSpeed: p.WindSpeed, Value: p.Value * factor}
	}
	return Curve{points: ps}
}

// ZeroPadded returns the curve extended with an explicit zero sample at
// 0 m/s and one past the last sample, so that aggregation and smoothing
// over a union grid see zero power outside the manufacturer's range.
// A nonzero sample at 0 m/s is coerced to zero: at standstill a plant
// produces no power, whatever the curve claims.
func (c Curve) ZeroPadded(step float64) Curve {
	ps := c.Points()
	if ps[0].WindSpeed > 0 || ps[0].Value != 0 {
		if ps[0].WindSpeed == 0 {
			ps[0].Value = 0
		} else {
			ps = append([]Point{{WindSpeed: 0, Value: 0}}, ps...)
		}
	}
	if last := ps[len(ps)-1]; last.Value != 0 {
		ps = append(ps, Point{WindSpeed: last.WindSpeed + step, Value: 0})
	}
	return Curve{points: ps}
}

// UnionGrid returns the sorted union of the sampled wind speeds of all
// given curves, without duplicates.
func UnionGrid(curves ...Curve) []float64 {
	var grid []float64
	for _, c := range curves {
		grid = append(grid, c.WindSpeeds()...)
	}
	sort.Float64s(grid)
	out := grid[:0]
	for i, v := range grid {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Sum aggregates curves pointwise on the union of their wind-speed
// grids. Each curve is zero padded and linearly interpolated onto the
// union grid before summation. This is the aggregation rule for turbine
// fleets and farm clusters.
func Sum(curves []Curve) (Curve, error) {
	if len(curves) == 0 {
		return Curve{}, fmt.Errorf("%w: nothing to aggregate", ErrInvalidCurve)
	}
	padded := make([]Curve, len(curves))
	for i, c := range curves {
		padded[i] = c.ZeroPadded(0.5)
	}
	grid := UnionGrid(padded...)
	points := make([]Point, len(grid))
	for i, v := range grid {
		var sum float64
		for _, c := range padded {
			sum += c.At(v)
		}
		points[i] = Point{WindSpeed: v, Value: sum}
	}
	return New(points)
}

// Equal reports whether two curves have the same samples within eps.
func (c Curve) Equal(other Curve, eps float64) bool {
	if len(c.points) != len(other.points) {
		return false
	}
	for i, p := range c.points {
		q := other.points[i]
		if math.Abs(p.WindSpeed-q.WindSpeed) > eps || math.Abs(p.Value-q.Value) > eps {
			return false
		}
	}
	return true
}
