package turbine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind_simulator/internal/curve"
)

func testPowerCurvePoints() []curve.Point {
	return []curve.Point{
		{WindSpeed: 3, Value: 0},
		{WindSpeed: 5, Value: 100000},
		{WindSpeed: 10, Value: 1000000},
		{WindSpeed: 25, Value: 1000000},
	}
}

func testTurbine(t *testing.T, name string, hubHeight, nominalPower float64) *Turbine {
	t.Helper()
	pc := testPowerCurvePoints()
	for i := range pc {
		pc[i].Value *= nominalPower / 1000000
	}
	tb, err := New(Config{
		Name:         name,
		HubHeight:    hubHeight,
		NominalPower: nominalPower,
		PowerCurve:   pc,
	})
	require.NoError(t, err)
	return tb
}

func TestNew_PowerCurveTurbine(t *testing.T) {
	tb, err := New(Config{
		Name:          "E-126/4200",
		HubHeight:     135,
		NominalPower:  4200000,
		RotorDiameter: 127,
		PowerCurve:    testPowerCurvePoints(),
	})
	require.NoError(t, err)

	assert.Equal(t, "E-126/4200", tb.Name())
	assert.Equal(t, 135.0, tb.HubHeight())
	assert.Equal(t, 4200000.0, tb.NominalPower())

	pc, ok := tb.PowerCurve()
	require.True(t, ok)
	assert.Equal(t, 4, pc.Len())

	_, ok = tb.PowerCoefficientCurve()
	assert.False(t, ok)
}

func TestNew_CoefficientCurveTurbine(t *testing.T) {
	tb, err := New(Config{
		Name:          "cp turbine",
		HubHeight:     100,
		NominalPower:  1000000,
		RotorDiameter: 80,
		PowerCoefficientCurve: []curve.Point{
			{WindSpeed: 4, Value: 0.4},
			{WindSpeed: 12, Value: 0.3},
		},
	})
	require.NoError(t, err)

	_, ok := tb.PowerCurve()
	assert.False(t, ok)
	cp, ok := tb.PowerCoefficientCurve()
	require.True(t, ok)
	assert.InDelta(t, 0.4, cp.At(4), 1e-12)
}

func TestNew_Validation(t *testing.T) {
	base := Config{HubHeight: 100, NominalPower: 1000000, PowerCurve: testPowerCurvePoints()}

	cfg := base
	cfg.HubHeight = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	cfg = base
	cfg.NominalPower = 0
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	// Neither curve.
	cfg = base
	cfg.PowerCurve = nil
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	// Both curves.
	cfg = base
	cfg.PowerCoefficientCurve = []curve.Point{{WindSpeed: 4, Value: 0.4}, {WindSpeed: 12, Value: 0.3}}
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	// Hub below half the rotor diameter.
	cfg = base
	cfg.RotorDiameter = 220
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	// cp curve without rotor diameter.
	cfg = base
	cfg.PowerCurve = nil
	cfg.PowerCoefficientCurve = []curve.Point{{WindSpeed: 4, Value: 0.4}, {WindSpeed: 12, Value: 0.3}}
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestNew_PowerCurveAboveNominal(t *testing.T) {
	_, err := New(Config{
		HubHeight:    100,
		NominalPower: 500000,
		PowerCurve:   testPowerCurvePoints(), // peaks at 1 MW
	})
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}
