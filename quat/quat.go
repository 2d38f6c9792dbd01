// Package quat implements Hamilton scalar-first quaternion and 3-vector
// arithmetic for attitude representation, ported from the estimator's
// original firmware quaternion library.
package quat

import "math"

// epsilon is the magnitude below which normalize operations fall back to an
// identity (quaternion) or zero (vector) result rather than dividing by a
// near-zero magnitude.
const epsilon = 1e-6

// Quaternion is a Hamilton scalar-first unit quaternion: w is the scalar
// part, (x, y, z) the vector part.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity returns the identity quaternion (1, 0, 0, 0).
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// New builds a quaternion from its four components.
func New(w, x, y, z float64) Quaternion {
	return Quaternion{W: w, X: x, Y: y, Z: z}
}

// Magnitude returns the Euclidean norm of q.
func (q Quaternion) Magnitude() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns q scaled to unit magnitude. Below epsilon magnitude it
// returns the identity quaternion rather than dividing by (near) zero.
func (q Quaternion) Normalize() Quaternion {
	mag := q.Magnitude()
	if mag < epsilon {
		return Identity()
	}
	inv := 1.0 / mag
	return Quaternion{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Mul returns the Hamilton product q * r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the conjugate of q.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse of q. Below epsilon squared
// magnitude it returns the identity quaternion.
func (q Quaternion) Inverse() Quaternion {
	magSq := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if magSq < epsilon {
		return Identity()
	}
	c := q.Conjugate()
	inv := 1.0 / magSq
	return Quaternion{W: c.W * inv, X: c.X * inv, Y: c.Y * inv, Z: c.Z * inv}
}

// Rotate rotates v by q, i.e. computes q * (0,v) * q^-1 using the expanded
// rotation-matrix form rather than two quaternion products.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	qw2 := q.W * q.W
	qx2 := q.X * q.X
	qy2 := q.Y * q.Y
	qz2 := q.Z * q.Z

	qwx := q.W * q.X
	qwy := q.W * q.Y
	qwz := q.W * q.Z
	qxy := q.X * q.Y
	qxz := q.X * q.Z
	qyz := q.Y * q.Z

	m11 := qw2 + qx2 - qy2 - qz2
	m12 := 2 * (qxy - qwz)
	m13 := 2 * (qxz + qwy)

	m21 := 2 * (qxy + qwz)
	m22 := qw2 - qx2 + qy2 - qz2
	m23 := 2 * (qyz - qwx)

	m31 := 2 * (qxz - qwy)
	m32 := 2 * (qyz + qwx)
	m33 := qw2 - qx2 - qy2 + qz2

	return Vector3{
		X: m11*v.X + m12*v.Y + m13*v.Z,
		Y: m21*v.X + m22*v.Y + m23*v.Z,
		Z: m31*v.X + m32*v.Y + m33*v.Z,
	}
}

// RotateInverse rotates v by the conjugate of q (i.e. the inverse rotation
// for a unit quaternion). Used to map a NED reference vector into the body
// frame for the magnetometer measurement model.
func (q Quaternion) RotateInverse(v Vector3) Vector3 {
	return q.Conjugate().Rotate(v)
}

// Derivative returns the quaternion rate qDot = 0.5 * q ⊗ (0, omega), where
// omega is the angular rate in the body frame.
func (q Quaternion) Derivative(omega Vector3) Quaternion {
	omegaQuat := Quaternion{X: omega.X, Y: omega.Y, Z: omega.Z}
	qDot := q.Mul(omegaQuat)
	return Quaternion{W: qDot.W * 0.5, X: qDot.X * 0.5, Y: qDot.Y * 0.5, Z: qDot.Z * 0.5}
}

// FromEuler builds a unit quaternion from roll/pitch/yaw (radians), applied
// in ZYX (aerospace) order.
func FromEuler(roll, pitch, yaw float64) Quaternion {
	cr := math.Cos(roll * 0.5)
	sr := math.Sin(roll * 0.5)
	cp := math.Cos(pitch * 0.5)
	sp := math.Sin(pitch * 0.5)
	cy := math.Cos(yaw * 0.5)
	sy := math.Sin(yaw * 0.5)

	q := Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
	return q.Normalize()
}

// ToEuler extracts roll, pitch, yaw (radians) from q, clamping pitch to
// +/-pi/2 at the gimbal-lock singularity.
func (q Quaternion) ToEuler() (roll, pitch, yaw float64) {
	qn := q.Normalize()

	roll = math.Atan2(2*(qn.W*qn.X+qn.Y*qn.Z), 1-2*(qn.X*qn.X+qn.Y*qn.Y))

	sinp := 2 * (qn.W*qn.Y - qn.Z*qn.X)
	if math.Abs(sinp) >= 1.0 {
		pitch = math.Copysign(math.Pi/2.0, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	yaw = math.Atan2(2*(qn.W*qn.Z+qn.X*qn.Y), 1-2*(qn.Y*qn.Y+qn.Z*qn.Z))
	return roll, pitch, yaw
}
