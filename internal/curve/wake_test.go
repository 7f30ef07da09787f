package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEfficiency(t *testing.T) {
	c := testPowerCurve(t)

	derated, err := ApplyEfficiency(c, 0.8)
	require.NoError(t, err)
	assert.InDelta(t, 80000, derated.At(5), 1e-9)
	assert.InDelta(t, 400000, derated.At(25), 1e-9)
}

func TestApplyEfficiency_IdentityAtOne(t *testing.T) {
	c := testPowerCurve(t)

	derated, err := ApplyEfficiency(c, 1.0)
	require.NoError(t, err)
	assert.True(t, c.Equal(derated, 1e-12))
}

func TestApplyEfficiency_OutOfRange(t *testing.T) {
	c := testPowerCurve(t)

	_, err := ApplyEfficiency(c, 0)
	assert.ErrorIs(t, err, ErrInvalidCurve)

	_, err = ApplyEfficiency(c, 1.2)
	assert.ErrorIs(t, err, ErrInvalidCurve)
}

func TestApplyEfficiencyCurve(t *testing.T) {
	c := testPowerCurve(t)
	eff, err := New([]Point{{WindSpeed: 0, Value: 1.0}, {WindSpeed: 10, Value: 0.8}, {WindSpeed: 25, Value: 0.8}})
	require.NoError(t, err)

	derated, err := ApplyEfficiencyCurve(c, eff)
	require.NoError(t, err)

	// Efficiency at 5 m/s interpolates to 0.9.
	assert.InDelta(t, 90000, derated.At(5), 1e-9)
	assert.InDelta(t, 400000, derated.At(10), 1e-9)
	// The wind speed grid is unchanged.
	assert.Equal(t, c.WindSpeeds(), derated.WindSpeeds())
}

func TestReduceWindSpeed(t *testing.T) {
	eff, err := WindEfficiencyCurve("dena_mean")
	require.NoError(t, err)

	out, err := ReduceWindSpeed([]float64{5.0, 10.0}, "dena_mean")
	require.NoError(t, err)

	assert.InDelta(t, 5.0*eff.AtClamped(5.0), out[0], 1e-9)
	assert.InDelta(t, 10.0*eff.AtClamped(10.0), out[1], 1e-9)
	// Wake losses only ever reduce the wind speed.
	assert.Less(t, out[0], 5.0)
	assert.Less(t, out[1], 10.0)
}

func TestReduceWindSpeed_UnknownCurve(t *testing.T) {
	_, err := ReduceWindSpeed([]float64{5.0}, "bogus")
	assert.ErrorIs(t, err, ErrUnknownEfficiencyCurve)
}

func TestWindEfficiencyCurveNames(t *testing.T) {
	names := WindEfficiencyCurveNames()

	assert.Equal(t, []string{
		"dena_extreme1", "dena_extreme2", "dena_mean",
		"knorr_extreme1", "knorr_extreme2", "knorr_extreme3", "knorr_mean",
	}, names)
}

func TestWindEfficiencyCurves_ValuesInRange(t *testing.T) {
	for _, name := range WindEfficiencyCurveNames() {
		c, err := WindEfficiencyCurve(name)
		require.NoError(t, err, name)
		for _, p := range c.Points() {
			assert.GreaterOrEqual(t, p.Value, 0.0, "%s at %g m/s", name, p.WindSpeed)
			assert.LessOrEqual(t, p.Value, 1.0, "%s at %g m/s", name, p.WindSpeed)
		}
	}
}
