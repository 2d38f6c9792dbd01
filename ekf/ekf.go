// Package ekf implements the 16-state extended Kalman filter that fuses
// IMU strapdown integration with GNSS position/velocity, barometric
// altitude, and magnetometer measurements in a NED tangent frame.
package ekf

import (
	"fmt"

	"github.com/navstack/ins16ekf/internal/log"
	"github.com/navstack/ins16ekf/matrix"
	"github.com/navstack/ins16ekf/quat"
	"github.com/navstack/ins16ekf/state"
)

// Filter is a 16-state extended Kalman filter estimating position,
// velocity, attitude, and IMU biases. A zero Filter is not valid; build one
// with New. Filter is not safe for concurrent use — callers serialize
// Predict/Update calls themselves, matching the single-threaded sensor
// fusion loop this estimator is designed for.
type Filter struct {
	x state.Vector
	p matrix.Matrix // state covariance, 16x16

	q     matrix.Matrix // process noise covariance, 16x16
	rGPS  matrix.Matrix // GPS measurement noise, 6x6
	rBaro matrix.Matrix // baro measurement noise, 1x1
	rMag  matrix.Matrix // magnetometer measurement noise, 3x3

	gravity     float64
	earthMagNED quat.Vector3

	initialized bool

	log *log.Logger
}

// New builds a Filter from cfg. The filter starts uninitialized: call
// SetInitialState before the first Predict.
func New(cfg Config) *Filter {
	f := &Filter{
		x:           state.NewVector(),
		p:           matrix.Diagonal(state.Dim, 1.0),
		gravity:     cfg.Gravity,
		earthMagNED: cfg.EarthMagNED,
		initialized: false,
		log:         cfg.Logger,
	}
	if f.log == nil {
		f.log = log.NewNop()
	}
	if f.gravity == 0 {
		f.gravity = defaultGravity
	}

	f.SetProcessNoise(cfg.ProcessPosStd, cfg.ProcessVelStd, cfg.ProcessAttStd, cfg.ProcessGyroBiasStd, cfg.ProcessAccBiasStd)
	f.SetGPSNoise(cfg.GPSPosStd, cfg.GPSVelStd)
	f.SetBaroNoise(cfg.BaroStd)
	f.SetMagNoise(cfg.MagStd)

	return f
}

// Initialized reports whether SetInitialState has been called since
// construction or the last Reset.
func (f *Filter) Initialized() bool {
	return f.initialized
}

// SetInitialState seeds the filter's state estimate and resets its
// covariance to the initial-uncertainty diagonal. This must be called
// before Predict or Update* will do any work.
func (f *Filter) SetInitialState(pos, vel quat.Vector3, q quat.Quaternion) {
	f.x = state.NewVector()
	f.x.SetPosition(pos)
	f.x.SetVelocity(vel)
	f.x.SetAttitude(q)
	f.x.SetGyroBias(quat.Zero())
	f.x.SetAccelBias(quat.Zero())

	f.p = matrix.DiagonalVector([]float64{
		10, 10, 10, // position (m^2)
		1, 1, 1, // velocity (m/s)^2
		0.1, 0.1, 0.1, 0.1, // attitude
		0.01, 0.01, 0.01, // gyro bias (rad/s)^2
		0.1, 0.1, 0.1, // accel bias (m/s^2)^2
	})

	f.initialized = true
}

// Reset clears the state estimate to zero position/velocity/bias with
// identity attitude, inflates the covariance to the reset-uncertainty
// diagonal, and marks the filter uninitialized.
func (f *Filter) Reset() {
	f.x = state.NewVector()

	f.p = matrix.DiagonalVector([]float64{
		100, 100, 100,
		10, 10, 10,
		1, 1, 1, 1,
		0.01, 0.01, 0.01,
		0.1, 0.1, 0.1,
	})

	f.initialized = false
}

// SetProcessNoise sets the process noise covariance Q from per-block
// standard deviations.
func (f *Filter) SetProcessNoise(posStd, velStd, attStd, gyroBiasStd, accBiasStd float64) {
	f.q = matrix.DiagonalVector([]float64{
		posStd * posStd, posStd * posStd, posStd * posStd,
		velStd * velStd, velStd * velStd, velStd * velStd,
		attStd * attStd, attStd * attStd, attStd * attStd, attStd * attStd,
		gyroBiasStd * gyroBiasStd, gyroBiasStd * gyroBiasStd, gyroBiasStd * gyroBiasStd,
		accBiasStd * accBiasStd, accBiasStd * accBiasStd, accBiasStd * accBiasStd,
	})
}

// SetGPSNoise sets the GPS measurement noise covariance from position and
// velocity standard deviations.
func (f *Filter) SetGPSNoise(posStd, velStd float64) {
	f.rGPS = matrix.DiagonalVector([]float64{
		posStd * posStd, posStd * posStd, posStd * posStd,
		velStd * velStd, velStd * velStd, velStd * velStd,
	})
}

// SetBaroNoise sets the barometric altitude measurement noise variance.
func (f *Filter) SetBaroNoise(baroStd float64) {
	f.rBaro = matrix.DiagonalVector([]float64{baroStd * baroStd})
}

// SetMagNoise sets the magnetometer measurement noise covariance, isotropic
// across all three axes.
func (f *Filter) SetMagNoise(magStd float64) {
	f.rMag = matrix.Diagonal(3, magStd*magStd)
}

// SetEarthMagneticField sets the NED earth magnetic field reference vector
// used by UpdateMag's measurement model.
func (f *Filter) SetEarthMagneticField(mRef quat.Vector3) {
	f.earthMagNED = mRef
}

// InitializeMagneticField derives the NED earth magnetic field reference
// from paired stationary magnetometer/accelerometer samples via magref, and
// installs it. It falls back to the current reference (unchanged) if the
// sample arrays are empty or mismatched in length.
func (f *Filter) InitializeMagneticField(mag, accel []quat.Vector3) error {
	ref, err := deriveMagReference(mag, accel)
	if err != nil {
		return err
	}
	f.earthMagNED = ref
	return nil
}

// Position returns the estimated NED position, or the zero vector if the
// filter is uninitialized.
func (f *Filter) Position() quat.Vector3 {
	if !f.initialized {
		return quat.Zero()
	}
	return f.x.Position()
}

// Velocity returns the estimated NED velocity, or the zero vector if the
// filter is uninitialized.
func (f *Filter) Velocity() quat.Vector3 {
	if !f.initialized {
		return quat.Zero()
	}
	return f.x.Velocity()
}

// Attitude returns the estimated attitude quaternion, or the identity
// quaternion if the filter is uninitialized.
func (f *Filter) Attitude() quat.Quaternion {
	if !f.initialized {
		return quat.Identity()
	}
	return f.x.Attitude()
}

// Euler returns roll, pitch, yaw (radians) derived from Attitude.
func (f *Filter) Euler() (roll, pitch, yaw float64) {
	return f.Attitude().ToEuler()
}

// GyroBias returns the estimated gyroscope bias, or the zero vector if the
// filter is uninitialized.
func (f *Filter) GyroBias() quat.Vector3 {
	if !f.initialized {
		return quat.Zero()
	}
	return f.x.GyroBias()
}

// AccelBias returns the estimated accelerometer bias, or the zero vector if
// the filter is uninitialized.
func (f *Filter) AccelBias() quat.Vector3 {
	if !f.initialized {
		return quat.Zero()
	}
	return f.x.AccelBias()
}

// Covariance returns a copy of the current state covariance matrix.
func (f *Filter) Covariance() matrix.Matrix {
	return matrix.Copy(f.p)
}

func wrapf(op string, err error) error {
	return fmt.Errorf("ekf: %s: %w", op, err)
}
