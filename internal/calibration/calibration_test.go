package calibration_test

import (
	"testing"

	"region-tracer/internal/calibration"
	"region-tracer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, u *calibration.Unit, a, b geometry.Point2D) {
	t.Helper()
	step, err := u.AddProbePoint(a)
	require.NoError(t, err)
	require.Equal(t, calibration.StepNeedSecondPoint, step)
	step, err = u.AddProbePoint(b)
	require.NoError(t, err)
	require.Equal(t, calibration.StepNeedDistance, step)
}

func TestUnit_HundredPixelsTenMeters(t *testing.T) {
	var u calibration.Unit
	u.Begin()
	probe(t, &u, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 0})
	assert.Equal(t, 100.0, u.PixelDistance())

	mpp, err := u.Complete("10")
	require.NoError(t, err)
	assert.Equal(t, 0.1, mpp)
	assert.Equal(t, calibration.Idle, u.State())
	assert.Empty(t, u.Probe())

	assert.InDelta(t, 100.0, calibration.SquareMeters(100*100, mpp), 1e-9)
}

func TestUnit_ZeroDistanceAborts(t *testing.T) {
	var u calibration.Unit
	u.Begin()
	_, err := u.AddProbePoint(geometry.Point2D{X: 5, Y: 5})
	require.NoError(t, err)
	_, err = u.AddProbePoint(geometry.Point2D{X: 5, Y: 5})
	assert.ErrorIs(t, err, calibration.ErrZeroDistance)
	assert.Equal(t, calibration.Idle, u.State())
	assert.Empty(t, u.Probe())
}

func TestUnit_BadInput(t *testing.T) {
	cases := map[string]error{
		"":      calibration.ErrCancelled,
		"   ":   calibration.ErrCancelled,
		"abc":   calibration.ErrInvalidDistance,
		"0":     calibration.ErrInvalidDistance,
		"-3":    calibration.ErrInvalidDistance,
		"NaN":   calibration.ErrInvalidDistance,
		"+Inf":  calibration.ErrInvalidDistance,
		"12,5":  calibration.ErrInvalidDistance,
		"1e400": calibration.ErrInvalidDistance,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			var u calibration.Unit
			u.Begin()
			probe(t, &u, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 3, Y: 4})
			_, err := u.Complete(input)
			assert.ErrorIs(t, err, want)
			assert.False(t, u.Active())
		})
	}
}

func TestUnit_RequiresBegin(t *testing.T) {
	var u calibration.Unit
	_, err := u.AddProbePoint(geometry.Point2D{})
	assert.ErrorIs(t, err, calibration.ErrNotCalibrating)
	_, err = u.Complete("1")
	assert.ErrorIs(t, err, calibration.ErrNotCalibrating)
}

func TestUnit_CompleteAcceptsPaddedDecimal(t *testing.T) {
	var u calibration.Unit
	u.Begin()
	probe(t, &u, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 0, Y: 50})
	mpp, err := u.Complete(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 0.25, mpp)
}
