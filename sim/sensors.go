package sim

import (
	"fmt"

	"github.com/navstack/ins16ekf/noise"
	"github.com/navstack/ins16ekf/quat"
	"gonum.org/v1/gonum/mat"
)

// gpsPosVelCorrelation is the assumed correlation coefficient between a
// GPS receiver's position and velocity error on the same axis: both are
// derived from the same underlying carrier-phase/Doppler measurements, so
// their errors are not independent.
const gpsPosVelCorrelation = 0.3

// SensorConfig holds the per-channel standard deviations used to perturb a
// noiseless trajectory sample into synthetic sensor readings.
type SensorConfig struct {
	GyroStd    float64
	AccelStd   float64
	GPSPosStd  float64
	GPSVelStd  float64
	BaroStd    float64
	MagStd     float64
}

// Reading is one synthetic multi-sensor observation derived from a
// trajectory Sample.
type Reading struct {
	Time    float64
	Gyro    quat.Vector3
	Accel   quat.Vector3
	GPSPos  quat.Vector3
	GPSVel  quat.Vector3
	AltDown float64
	Mag     quat.Vector3
}

// Sensors perturbs noiseless trajectory samples with synthetic sensor
// noise: independent per-channel Gaussian noise for gyro, accel, baro, and
// mag (matching the teacher's noise.Gaussian sampler), and a jointly
// correlated position/velocity draw for GPS via noise.CorrelatedSamplesN.
type Sensors struct {
	cfg         SensorConfig
	gyro        *noise.Gaussian
	accel       *noise.Gaussian
	gpsCov      mat.Symmetric
	baro        *noise.Gaussian
	mag         *noise.Gaussian
	earthMagNED quat.Vector3
}

// NewSensors builds a Sensors perturber with the given channel noise and
// earth magnetic field reference (used to synthesize the noiseless
// magnetometer reading from truth attitude).
func NewSensors(cfg SensorConfig, earthMagNED quat.Vector3) (*Sensors, error) {
	s := &Sensors{cfg: cfg, earthMagNED: earthMagNED}

	var err error
	if s.gyro, err = noise.NewGaussian([]float64{0, 0, 0}, noise.DiagFromStd(cfg.GyroStd, cfg.GyroStd, cfg.GyroStd)); err != nil {
		return nil, err
	}
	if s.accel, err = noise.NewGaussian([]float64{0, 0, 0}, noise.DiagFromStd(cfg.AccelStd, cfg.AccelStd, cfg.AccelStd)); err != nil {
		return nil, err
	}
	s.gpsCov = gpsCovariance(cfg.GPSPosStd, cfg.GPSVelStd)
	if _, err := noise.CorrelatedSamplesN(s.gpsCov, 1); err != nil {
		return nil, fmt.Errorf("sim: invalid GPS noise covariance: %w", err)
	}
	if s.baro, err = noise.NewGaussian([]float64{0}, noise.ScalarFromStd(cfg.BaroStd)); err != nil {
		return nil, err
	}
	if s.mag, err = noise.NewGaussian([]float64{0, 0, 0}, noise.DiagFromStd(cfg.MagStd, cfg.MagStd, cfg.MagStd)); err != nil {
		return nil, err
	}

	return s, nil
}

// gpsCovariance builds the 6x6 joint position/velocity covariance for one
// GPS fix, laid out as three independent 2x2 (pos, vel) blocks per axis
// (X, Y, Z), each correlated by gpsPosVelCorrelation.
func gpsCovariance(posStd, velStd float64) *mat.SymDense {
	cov := mat.NewSymDense(6, nil)
	crossTerm := gpsPosVelCorrelation * posStd * velStd
	for axis := 0; axis < 3; axis++ {
		pos := 2 * axis
		vel := pos + 1
		cov.SetSym(pos, pos, posStd*posStd)
		cov.SetSym(vel, vel, velStd*velStd)
		cov.SetSym(pos, vel, crossTerm)
	}
	return cov
}

// Perturb draws a full noisy Reading for sample.
func (s *Sensors) Perturb(sample Sample) Reading {
	gyroNoise := s.gyro.Sample()
	accelNoise := s.accel.Sample()
	baroNoise := s.baro.Sample()
	magNoise := s.mag.Sample()

	// gpsCov was validated in NewSensors; a later factorization failure
	// would mean it was mutated out of band, which never happens here.
	gpsNoise, _ := noise.CorrelatedSamplesN(s.gpsCov, 1)
	gpsPosNoise := quat.NewVector3(gpsNoise.At(0, 0), gpsNoise.At(2, 0), gpsNoise.At(4, 0))
	gpsVelNoise := quat.NewVector3(gpsNoise.At(1, 0), gpsNoise.At(3, 0), gpsNoise.At(5, 0))

	magBody := sample.Attitude.RotateInverse(s.earthMagNED)

	return Reading{
		Time:    sample.Time,
		Gyro:    sample.GyroBody.Add(vec3(gyroNoise)),
		Accel:   sample.AccelBody.Add(vec3(accelNoise)),
		GPSPos:  sample.Position.Add(gpsPosNoise),
		GPSVel:  sample.Velocity.Add(gpsVelNoise),
		AltDown: sample.Position.Z + baroNoise[0],
		Mag:     magBody.Add(vec3(magNoise)),
	}
}

func vec3(v []float64) quat.Vector3 {
	return quat.NewVector3(v[0], v[1], v[2])
}
