package ekf

import (
	"github.com/navstack/ins16ekf/internal/log"
	"github.com/navstack/ins16ekf/quat"
)

// seoulMagNED is the default NED earth magnetic field reference, a
// fallback approximation for roughly 37.5N 127E until a field calibration
// via InitializeMagneticField replaces it.
var seoulMagNED = quat.NewVector3(0.29, -0.05, 0.42)

// defaultGravity is the standard gravity constant, m/s^2.
const defaultGravity = 9.80665

// Config holds the construction-time parameters of a Filter: initial noise
// covariances, the gravity constant, the earth magnetic field reference,
// and an optional diagnostic logger.
type Config struct {
	Gravity     float64
	EarthMagNED quat.Vector3

	ProcessPosStd      float64
	ProcessVelStd      float64
	ProcessAttStd      float64
	ProcessGyroBiasStd float64
	ProcessAccBiasStd  float64

	GPSPosStd float64
	GPSVelStd float64

	BaroStd float64

	MagStd float64

	Logger *log.Logger
}

// DefaultConfig returns a conservative default tuning: 0.1 process noise
// std on every state block, 5m/0.5m/s GPS position/velocity std, 1m baro
// std, and 0.316 mag std, a variance of about 0.1 (all expressed as
// standard deviations; the noise setters square them into variances).
func DefaultConfig() Config {
	return Config{
		Gravity:     defaultGravity,
		EarthMagNED: seoulMagNED,

		ProcessPosStd:      0.1,
		ProcessVelStd:      0.1,
		ProcessAttStd:      0.1,
		ProcessGyroBiasStd: 0.1,
		ProcessAccBiasStd:  0.1,

		GPSPosStd: 5.0,
		GPSVelStd: 0.5,

		BaroStd: 1.0,

		MagStd: 0.316,

		Logger: log.NewNop(),
	}
}
