package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind_simulator/internal/curve"
)

func testPowerCurve(t *testing.T) curve.Curve {
	t.Helper()
	pc, err := curve.New([]curve.Point{
		{WindSpeed: 3, Value: 0},
		{WindSpeed: 5, Value: 100000},
		{WindSpeed: 10, Value: 500000},
		{WindSpeed: 25, Value: 500000},
	})
	require.NoError(t, err)
	return pc
}

func TestFromPowerCurve(t *testing.T) {
	out := FromPowerCurve([]float64{0, 2.9, 4, 10, 25.1}, testPowerCurve(t))

	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.0, out[1]) // below cut-in
	assert.InDelta(t, 50000, out[2], 1e-9)
	assert.InDelta(t, 500000, out[3], 1e-9)
	assert.Equal(t, 0.0, out[4]) // above cut-out
}

func TestFromPowerCurve_NeverNegative(t *testing.T) {
	out := FromPowerCurve([]float64{0, 1, 2, 3, 30}, testPowerCurve(t))
	for i, p := range out {
		assert.GreaterOrEqual(t, p, 0.0, "index %d", i)
	}
}

func TestFromPowerCurveDensityCorrected_ReferenceDensityIdentity(t *testing.T) {
	pc := testPowerCurve(t)
	speeds := []float64{4, 5, 10, 20}
	density := []float64{1.225, 1.225, 1.225, 1.225}

	corrected, err := FromPowerCurveDensityCorrected(speeds, density, pc)
	require.NoError(t, err)

	plain := FromPowerCurve(speeds, pc)
	for i := range speeds {
		assert.InDelta(t, plain[i], corrected[i], 1e-6, "at %g m/s", speeds[i])
	}
}

func TestFromPowerCurveDensityCorrected_ThinAir(t *testing.T) {
	pc := testPowerCurve(t)

	// At 1.1 kg/m³ the curve shifts to higher wind speeds, so the same
	// site wind speed yields less power.
	out, err := FromPowerCurveDensityCorrected([]float64{5, 10}, []float64{1.1, 1.1}, pc)
	require.NoError(t, err)

	assert.InDelta(t, 91189.76, out[0], 1.0)
	assert.InDelta(t, 458817.82, out[1], 1.0)
}

func TestFromPowerCurveDensityCorrected_Errors(t *testing.T) {
	pc := testPowerCurve(t)

	_, err := FromPowerCurveDensityCorrected([]float64{5, 10}, []float64{1.1}, pc)
	assert.ErrorIs(t, err, ErrMissingDensity)

	_, err = FromPowerCurveDensityCorrected([]float64{5}, []float64{0}, pc)
	assert.ErrorIs(t, err, ErrMissingDensity)
}

func TestFromCoefficientCurve(t *testing.T) {
	cp, err := curve.New([]curve.Point{
		{WindSpeed: 4, Value: 0.44},
		{WindSpeed: 5, Value: 0.44},
		{WindSpeed: 6.5, Value: 0.43},
		{WindSpeed: 12, Value: 0.3},
	})
	require.NoError(t, err)

	out, err := FromCoefficientCurve([]float64{5.0, 6.5}, cp, []float64{1.3, 1.3}, 80)
	require.NoError(t, err)

	// 1/8 * rho * d² * pi * v³ * cp(v)
	assert.InDelta(t, 179699.10, out[0], 0.01)
	assert.InDelta(t, 385826.22, out[1], 0.01)
}

func TestFromCoefficientCurve_ZeroOutsideRange(t *testing.T) {
	cp, err := curve.New([]curve.Point{
		{WindSpeed: 4, Value: 0.44},
		{WindSpeed: 12, Value: 0.3},
	})
	require.NoError(t, err)

	out, err := FromCoefficientCurve([]float64{2, 30}, cp, []float64{1.225, 1.225}, 80)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 0.0, out[1])
}

func TestFromCoefficientCurve_Errors(t *testing.T) {
	cp, err := curve.New([]curve.Point{
		{WindSpeed: 4, Value: 0.44},
		{WindSpeed: 12, Value: 0.3},
	})
	require.NoError(t, err)

	_, err = FromCoefficientCurve([]float64{5, 6}, cp, []float64{1.3}, 80)
	assert.ErrorIs(t, err, ErrMissingDensity)

	_, err = FromCoefficientCurve([]float64{5}, cp, []float64{1.3}, 0)
	assert.Error(t, err)
}

func TestCapAt(t *testing.T) {
	out := CapAt([]float64{0, 500000, 1000001, 1200000}, 1000000)

	assert.Equal(t, []float64{0, 500000, 1000000, 1000000}, out)
}
