// Package state defines the named 16-element state vector layout shared by
// the estimator core: position and velocity in the NED tangent frame, the
// body-to-NED attitude quaternion, and gyroscope and accelerometer biases
// in the body frame.
package state

import (
	"github.com/navstack/ins16ekf/matrix"
	"github.com/navstack/ins16ekf/quat"
)

// Dim is the dimension of the state vector.
const Dim = 16

// Index identifies a single state vector element.
type Index int

// State vector layout, matching the estimator's internal convention.
const (
	PosX Index = iota
	PosY
	PosZ
	VelX
	VelY
	VelZ
	QuatW
	QuatX
	QuatY
	QuatZ
	GyroBiasX
	GyroBiasY
	GyroBiasZ
	AccBiasX
	AccBiasY
	AccBiasZ
)

// Vector is a 16x1 state vector backed by matrix.Matrix, with named
// accessors for each physical quantity it carries.
type Vector struct {
	m matrix.Matrix
}

// NewVector returns a zeroed state vector with identity attitude.
func NewVector() Vector {
	v := Vector{m: matrix.New(Dim, 1)}
	v.m.Set(int(QuatW), 0, 1.0)
	return v
}

// FromMatrix wraps an existing Dim x 1 matrix as a Vector.
func FromMatrix(m matrix.Matrix) Vector {
	return Vector{m: m}
}

// Matrix returns the backing Dim x 1 matrix.
func (v Vector) Matrix() matrix.Matrix {
	return v.m
}

// At returns the value of element i.
func (v Vector) At(i Index) float64 {
	return v.m.At(int(i), 0)
}

// Set assigns value to element i.
func (v *Vector) Set(i Index, value float64) {
	v.m.Set(int(i), 0, value)
}

// Position returns the NED position (m).
func (v Vector) Position() quat.Vector3 {
	return quat.NewVector3(v.At(PosX), v.At(PosY), v.At(PosZ))
}

// SetPosition assigns the NED position.
func (v *Vector) SetPosition(p quat.Vector3) {
	v.Set(PosX, p.X)
	v.Set(PosY, p.Y)
	v.Set(PosZ, p.Z)
}

// Velocity returns the NED velocity (m/s).
func (v Vector) Velocity() quat.Vector3 {
	return quat.NewVector3(v.At(VelX), v.At(VelY), v.At(VelZ))
}

// SetVelocity assigns the NED velocity.
func (v *Vector) SetVelocity(vel quat.Vector3) {
	v.Set(VelX, vel.X)
	v.Set(VelY, vel.Y)
	v.Set(VelZ, vel.Z)
}

// Attitude returns the body-to-NED attitude quaternion, renormalized.
func (v Vector) Attitude() quat.Quaternion {
	q := quat.New(v.At(QuatW), v.At(QuatX), v.At(QuatY), v.At(QuatZ))
	return q.Normalize()
}

// SetAttitude assigns the attitude quaternion, normalizing it first.
func (v *Vector) SetAttitude(q quat.Quaternion) {
	qn := q.Normalize()
	v.Set(QuatW, qn.W)
	v.Set(QuatX, qn.X)
	v.Set(QuatY, qn.Y)
	v.Set(QuatZ, qn.Z)
}

// GyroBias returns the gyroscope bias (rad/s).
func (v Vector) GyroBias() quat.Vector3 {
	return quat.NewVector3(v.At(GyroBiasX), v.At(GyroBiasY), v.At(GyroBiasZ))
}

// SetGyroBias assigns the gyroscope bias.
func (v *Vector) SetGyroBias(b quat.Vector3) {
	v.Set(GyroBiasX, b.X)
	v.Set(GyroBiasY, b.Y)
	v.Set(GyroBiasZ, b.Z)
}

// AccelBias returns the accelerometer bias (m/s^2).
func (v Vector) AccelBias() quat.Vector3 {
	return quat.NewVector3(v.At(AccBiasX), v.At(AccBiasY), v.At(AccBiasZ))
}

// SetAccelBias assigns the accelerometer bias.
func (v *Vector) SetAccelBias(b quat.Vector3) {
	v.Set(AccBiasX, b.X)
	v.Set(AccBiasY, b.Y)
	v.Set(AccBiasZ, b.Z)
}

// Euler returns roll, pitch, yaw (radians) derived from the attitude
// quaternion.
func (v Vector) Euler() (roll, pitch, yaw float64) {
	return v.Attitude().ToEuler()
}
