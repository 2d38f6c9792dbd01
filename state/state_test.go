package state

import (
	"testing"

	"github.com/navstack/ins16ekf/quat"
	"github.com/stretchr/testify/assert"
)

func TestNewVectorHasIdentityAttitude(t *testing.T) {
	v := NewVector()
	assert.Equal(t, quat.Identity(), v.Attitude())
	assert.Equal(t, quat.Zero(), v.Position())
}

func TestPositionRoundTrip(t *testing.T) {
	v := NewVector()
	p := quat.NewVector3(1, 2, 3)
	v.SetPosition(p)
	assert.Equal(t, p, v.Position())
}

func TestVelocityRoundTrip(t *testing.T) {
	v := NewVector()
	vel := quat.NewVector3(-1, 0.5, 2)
	v.SetVelocity(vel)
	assert.Equal(t, vel, v.Velocity())
}

func TestAttitudeIsNormalizedOnSet(t *testing.T) {
	v := NewVector()
	v.SetAttitude(quat.New(2, 0, 0, 0))
	got := v.Attitude()
	assert.InDelta(t, 1.0, got.Magnitude(), 1e-9)
}

func TestBiasRoundTrip(t *testing.T) {
	v := NewVector()
	gb := quat.NewVector3(0.01, 0.02, 0.03)
	ab := quat.NewVector3(0.1, 0.2, 0.3)
	v.SetGyroBias(gb)
	v.SetAccelBias(ab)
	assert.Equal(t, gb, v.GyroBias())
	assert.Equal(t, ab, v.AccelBias())
}

func TestDimMatchesBackingMatrix(t *testing.T) {
	v := NewVector()
	rows, cols := v.Matrix().Dims()
	assert.Equal(t, Dim, rows)
	assert.Equal(t, 1, cols)
}
