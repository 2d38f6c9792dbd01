package ekf

import (
	"github.com/navstack/ins16ekf/matrix"
	"github.com/navstack/ins16ekf/quat"
	"github.com/navstack/ins16ekf/state"
)

// UpdateGPS corrects the filter with a GPS position/velocity fix, both in
// the NED frame. It errors (leaving the state untouched) if the filter is
// uninitialized or if the innovation covariance is singular.
func (f *Filter) UpdateGPS(pos, vel quat.Vector3) error {
	if !f.initialized {
		return wrapf("update_gps", errNotInitialized)
	}

	H := gpsJacobian()
	z := []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z}
	predicted := f.x.Position()
	predictedVel := f.x.Velocity()
	zPred := []float64{predicted.X, predicted.Y, predicted.Z, predictedVel.X, predictedVel.Y, predictedVel.Z}

	return f.correct(H, f.rGPS, z, zPred, "update_gps")
}

// UpdateBaro corrects the filter with a barometric altitude measurement.
// altDown is the measured Down position (m), i.e. negative altitude above
// the reference in NED convention.
func (f *Filter) UpdateBaro(altDown float64) error {
	if !f.initialized {
		return wrapf("update_baro", errNotInitialized)
	}

	H := baroJacobian()
	z := []float64{altDown}
	zPred := []float64{f.x.Position().Z}

	return f.correct(H, f.rBaro, z, zPred, "update_baro")
}

// UpdateMag corrects the filter with a body-frame magnetometer reading.
func (f *Filter) UpdateMag(mag quat.Vector3) error {
	if !f.initialized {
		return wrapf("update_mag", errNotInitialized)
	}

	q := f.x.Attitude()
	H := magJacobian(q, f.earthMagNED)

	z := []float64{mag.X, mag.Y, mag.Z}
	predicted := q.RotateInverse(f.earthMagNED)
	zPred := []float64{predicted.X, predicted.Y, predicted.Z}

	return f.correct(H, f.rMag, z, zPred, "update_mag")
}

// correct runs the common Kalman correction: innovation, gain, state and
// covariance update, quaternion renormalization, and covariance
// symmetrization. It uses the simple (I - KH)P covariance form, matching
// the estimator's reference implementation rather than the numerically
// sturdier Joseph form.
func (f *Filter) correct(H, R matrix.Matrix, z, zPred []float64, op string) error {
	y := make([]float64, len(z))
	for i := range z {
		y[i] = z[i] - zPred[i]
	}
	yMat := columnVector(y)

	Ht := matrix.Transpose(H)
	hp, err := matrix.Mul(H, f.p)
	if err != nil {
		return wrapf(op, err)
	}
	hpht, err := matrix.Mul(hp, Ht)
	if err != nil {
		return wrapf(op, err)
	}
	S, err := matrix.Add(hpht, R)
	if err != nil {
		return wrapf(op, err)
	}
	Sinv, err := matrix.Inverse(S)
	if err != nil {
		f.log.WithError(err).Warn("update rejected: singular innovation covariance")
		return wrapf(op, err)
	}

	pht, err := matrix.Mul(f.p, Ht)
	if err != nil {
		return wrapf(op, err)
	}
	K, err := matrix.Mul(pht, Sinv)
	if err != nil {
		return wrapf(op, err)
	}

	dx, err := matrix.Mul(K, yMat)
	if err != nil {
		return wrapf(op, err)
	}
	xNew, err := matrix.Add(f.x.Matrix(), dx)
	if err != nil {
		return wrapf(op, err)
	}

	KH, err := matrix.Mul(K, H)
	if err != nil {
		return wrapf(op, err)
	}
	I := matrix.Identity(state.Dim)
	IKH, err := matrix.Sub(I, KH)
	if err != nil {
		return wrapf(op, err)
	}
	pNew, err := matrix.Mul(IKH, f.p)
	if err != nil {
		return wrapf(op, err)
	}

	pSym, err := matrix.Add(pNew, matrix.Transpose(pNew))
	if err != nil {
		return wrapf(op, err)
	}

	f.x = state.FromMatrix(xNew)
	f.x.SetAttitude(f.x.Attitude())
	f.p = matrix.Scale(pSym, 0.5)

	return nil
}

func gpsJacobian() matrix.Matrix {
	H := matrix.New(6, state.Dim)
	H.Set(0, int(state.PosX), 1.0)
	H.Set(1, int(state.PosY), 1.0)
	H.Set(2, int(state.PosZ), 1.0)
	H.Set(3, int(state.VelX), 1.0)
	H.Set(4, int(state.VelY), 1.0)
	H.Set(5, int(state.VelZ), 1.0)
	return H
}

func baroJacobian() matrix.Matrix {
	H := matrix.New(1, state.Dim)
	H.Set(0, int(state.PosZ), 1.0)
	return H
}

// magJacobian returns the 3x16 measurement Jacobian used by UpdateMag. Its
// only nonzero entries are in the quaternion columns and are the partial
// derivatives of R(q) * mRef with respect to (qw, qx, qy, qz). UpdateMag
// predicts the reading as R(q)^T * mRef; the derivative of that prediction
// has the opposite sign in every term that stems from a qw*(qx, qy or qz)
// product of R(q): the whole qw column and the qw terms of the other three
// columns.
func magJacobian(q quat.Quaternion, mRef quat.Vector3) matrix.Matrix {
	H := matrix.New(3, state.Dim)

	qw, qx, qy, qz := q.W, q.X, q.Y, q.Z
	mx, my, mz := mRef.X, mRef.Y, mRef.Z

	H.Set(0, int(state.QuatW), 2*(-qz*my+qy*mz))
	H.Set(1, int(state.QuatW), 2*(qz*mx-qx*mz))
	H.Set(2, int(state.QuatW), 2*(-qy*mx+qx*my))

	H.Set(0, int(state.QuatX), 2*(qy*my+qz*mz))
	H.Set(1, int(state.QuatX), 2*(qy*mx-2*qx*my-qw*mz))
	H.Set(2, int(state.QuatX), 2*(qz*mx+qw*my-2*qx*mz))

	H.Set(0, int(state.QuatY), 2*(-2*qy*mx+qx*my+qw*mz))
	H.Set(1, int(state.QuatY), 2*(qx*mx+qz*mz))
	H.Set(2, int(state.QuatY), 2*(-qw*mx+qz*my-2*qy*mz))

	H.Set(0, int(state.QuatZ), 2*(-2*qz*mx-qw*my+qx*mz))
	H.Set(1, int(state.QuatZ), 2*(qw*mx-2*qz*my+qy*mz))
	H.Set(2, int(state.QuatZ), 2*(qx*mx+qy*my))

	return H
}

func columnVector(v []float64) matrix.Matrix {
	m := matrix.New(len(v), 1)
	m.SetColumn(0, v)
	return m
}
