package ekf

import (
	"github.com/navstack/ins16ekf/matrix"
	"github.com/navstack/ins16ekf/quat"
	"github.com/navstack/ins16ekf/state"
)

// Predict advances the filter by dt seconds given the raw gyroscope (rad/s)
// and accelerometer (m/s^2) body-frame readings. It strapdown-integrates
// the attitude and kinematics, then propagates the covariance through the
// analytic Jacobian evaluated at the post-integration attitude. Predict is
// a no-op returning an error if the filter is uninitialized or dt is not
// positive; on error the state is left untouched.
func (f *Filter) Predict(gyro, accel quat.Vector3, dt float64) error {
	if !f.initialized {
		return wrapf("predict", errNotInitialized)
	}
	if dt <= 0 {
		return wrapf("predict", errNonPositiveDt)
	}

	q := f.x.Attitude()
	gyroBias := f.x.GyroBias()
	accBias := f.x.AccelBias()

	gyroCorrected := gyro.Sub(gyroBias)
	accelCorrected := accel.Sub(accBias)

	qDot := q.Derivative(gyroCorrected)
	qNew := quat.New(
		q.W+qDot.W*dt,
		q.X+qDot.X*dt,
		q.Y+qDot.Y*dt,
		q.Z+qDot.Z*dt,
	).Normalize()

	gravityNED := quat.NewVector3(0, 0, f.gravity)
	accelNED := qNew.Rotate(accelCorrected).Sub(gravityNED)

	vel := f.x.Velocity().Add(accelNED.Scale(dt))
	pos := f.x.Position().Add(vel.Scale(dt))

	f.x.SetPosition(pos)
	f.x.SetVelocity(vel)
	f.x.SetAttitude(qNew)
	// biases are not touched during predict; they are adjusted only by
	// measurement updates.

	F := propagationJacobian(qNew, dt)

	Ft := matrix.Transpose(F)
	fp, err := matrix.Mul(F, f.p)
	if err != nil {
		return wrapf("predict", err)
	}
	fpft, err := matrix.Mul(fp, Ft)
	if err != nil {
		return wrapf("predict", err)
	}
	scaledQ := matrix.Scale(f.q, dt)
	pNext, err := matrix.Add(fpft, scaledQ)
	if err != nil {
		return wrapf("predict", err)
	}

	f.x.SetPosition(pos)
	f.x.SetVelocity(vel)
	f.x.SetAttitude(qNew)
	// biases are not touched during predict; they are adjusted only by
	// measurement updates.
	f.p = pNext

	return nil
}

// propagationJacobian computes the 16x16 state transition Jacobian F for
// strapdown integration over dt, evaluated at the post-integration
// attitude q (the estimator follows the firmware's convention of computing
// F from the attitude already advanced by this same step).
func propagationJacobian(q quat.Quaternion, dt float64) matrix.Matrix {
	F := matrix.Identity(state.Dim)

	F.Set(int(state.PosX), int(state.VelX), dt)
	F.Set(int(state.PosY), int(state.VelY), dt)
	F.Set(int(state.PosZ), int(state.VelZ), dt)

	qw, qx, qy, qz := q.W, q.X, q.Y, q.Z

	F.Set(int(state.QuatW), int(state.GyroBiasX), -0.5*qx*dt)
	F.Set(int(state.QuatW), int(state.GyroBiasY), -0.5*qy*dt)
	F.Set(int(state.QuatW), int(state.GyroBiasZ), -0.5*qz*dt)

	F.Set(int(state.QuatX), int(state.GyroBiasX), 0.5*qw*dt)
	F.Set(int(state.QuatX), int(state.GyroBiasY), -0.5*qz*dt)
	F.Set(int(state.QuatX), int(state.GyroBiasZ), 0.5*qy*dt)

	F.Set(int(state.QuatY), int(state.GyroBiasX), 0.5*qz*dt)
	F.Set(int(state.QuatY), int(state.GyroBiasY), 0.5*qw*dt)
	F.Set(int(state.QuatY), int(state.GyroBiasZ), -0.5*qx*dt)

	F.Set(int(state.QuatZ), int(state.GyroBiasX), -0.5*qy*dt)
	F.Set(int(state.QuatZ), int(state.GyroBiasY), 0.5*qx*dt)
	F.Set(int(state.QuatZ), int(state.GyroBiasZ), 0.5*qw*dt)

	r11 := 1 - 2*(qy*qy+qz*qz)
	r12 := 2 * (qx*qy - qw*qz)
	r13 := 2 * (qx*qz + qw*qy)
	r21 := 2 * (qx*qy + qw*qz)
	r22 := 1 - 2*(qx*qx+qz*qz)
	r23 := 2 * (qy*qz - qw*qx)
	r31 := 2 * (qx*qz - qw*qy)
	r32 := 2 * (qy*qz + qw*qx)
	r33 := 1 - 2*(qx*qx+qy*qy)

	F.Set(int(state.VelX), int(state.AccBiasX), -r11*dt)
	F.Set(int(state.VelX), int(state.AccBiasY), -r12*dt)
	F.Set(int(state.VelX), int(state.AccBiasZ), -r13*dt)

	F.Set(int(state.VelY), int(state.AccBiasX), -r21*dt)
	F.Set(int(state.VelY), int(state.AccBiasY), -r22*dt)
	F.Set(int(state.VelY), int(state.AccBiasZ), -r23*dt)

	F.Set(int(state.VelZ), int(state.AccBiasX), -r31*dt)
	F.Set(int(state.VelZ), int(state.AccBiasY), -r32*dt)
	F.Set(int(state.VelZ), int(state.AccBiasZ), -r33*dt)

	return F
}
