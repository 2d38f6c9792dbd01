// Package sim is the INS estimator's ground-truth simulation and plotting
// harness: it generates noiseless reference trajectories and synthetic
// sensor streams, drives an ekf.Filter through them, and plots truth
// against the filter's estimate. It is a test/demo collaborator, not part
// of the estimator core, and is free to allocate and depend on
// gonum.org/v1/gonum/mat the way the bounded-capacity matrix package
// cannot.
package sim

import (
	"math"

	"github.com/navstack/ins16ekf/quat"
)

// Sample is one instant of a generated ground-truth trajectory: true
// kinematic state plus the noiseless body-frame IMU readings consistent
// with it.
type Sample struct {
	Time      float64
	Position  quat.Vector3
	Velocity  quat.Vector3
	Attitude  quat.Quaternion
	GyroBody  quat.Vector3 // true angular rate, body frame, rad/s
	AccelBody quat.Vector3 // true specific force, body frame, m/s^2
}

// Trajectory is a generated sequence of ground-truth samples at a fixed
// time step.
type Trajectory struct {
	Dt      float64
	Samples []Sample
}

// Gravity is the NED gravity magnitude used to synthesize specific-force
// readings, matching ekf.DefaultConfig's value.
const Gravity = 9.80665

// LevelFlight generates a constant-heading, constant-altitude, constant-
// speed trajectory: zero angular rate, body attitude fixed at heading.
func LevelFlight(duration, dt, speed, heading float64) Trajectory {
	return CoordinatedTurn(duration, dt, speed, heading, 0, 0)
}

// CoordinatedTurn generates a trajectory at constant speed with a constant
// yaw rate (rad/s) and constant climb rate (m/s, positive is up). Roll and
// pitch are held at zero; only yaw evolves. Ground truth is advanced by
// simple forward-Euler kinematics and the body-frame accelerometer reading
// is recovered from the finite-difference NED acceleration, which is exact
// in the continuous limit and accurate to O(dt) at the step sizes a test or
// demo scenario uses.
func CoordinatedTurn(duration, dt, speed, heading0, yawRate, climbRate float64) Trajectory {
	steps := int(duration/dt) + 1
	samples := make([]Sample, 0, steps)

	yaw := heading0
	pos := quat.Zero()
	vel := quat.NewVector3(speed*math.Cos(yaw), speed*math.Sin(yaw), -climbRate)

	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		q := quat.FromEuler(0, 0, yaw)

		nextYaw := yaw + yawRate*dt
		nextVel := quat.NewVector3(speed*math.Cos(nextYaw), speed*math.Sin(nextYaw), -climbRate)

		trueAccelNED := nextVel.Sub(vel).Scale(1.0 / dt)
		gravityNED := quat.NewVector3(0, 0, Gravity)
		accelBody := q.RotateInverse(trueAccelNED.Add(gravityNED))
		gyroBody := quat.NewVector3(0, 0, yawRate)

		samples = append(samples, Sample{
			Time:      t,
			Position:  pos,
			Velocity:  vel,
			Attitude:  q,
			GyroBody:  gyroBody,
			AccelBody: accelBody,
		})

		pos = pos.Add(vel.Scale(dt))
		vel = nextVel
		yaw = nextYaw
	}

	return Trajectory{Dt: dt, Samples: samples}
}
