package sim

import (
	"github.com/navstack/ins16ekf/ekf"
	"github.com/navstack/ins16ekf/quat"
)

// ScenarioConfig controls how often each aiding sensor fires relative to
// the trajectory's sample rate, given as a stride in samples (1 means
// every sample, 10 means every tenth).
type ScenarioConfig struct {
	GPSStride  int
	BaroStride int
	MagStride  int
}

// Track records one estimator run's truth and estimate at every step, for
// assertions in tests and for PlotTrack.
type Track struct {
	Time          []float64
	TruePosition  []quat.Vector3
	EstPosition   []quat.Vector3
	TrueVelocity  []quat.Vector3
	EstVelocity   []quat.Vector3
	TrueAttitude  []quat.Quaternion
	EstAttitude   []quat.Quaternion
}

// RunScenario drives f through traj: the first sample seeds f's initial
// state from truth, every later sample runs an IMU predict, and
// GPS/baro/mag corrections run at the strides named in cfg, using sensors to
// synthesize noisy readings from the noiseless trajectory. It records the
// truth and the filter's estimate at every step.
func RunScenario(f *ekf.Filter, traj Trajectory, sensors *Sensors, cfg ScenarioConfig) Track {
	track := Track{}

	for i, sample := range traj.Samples {
		reading := sensors.Perturb(sample)

		if i == 0 {
			f.SetInitialState(sample.Position, sample.Velocity, sample.Attitude)
		} else {
			_ = f.Predict(reading.Gyro, reading.Accel, traj.Dt)
		}

		if cfg.GPSStride > 0 && i%cfg.GPSStride == 0 {
			_ = f.UpdateGPS(reading.GPSPos, reading.GPSVel)
		}
		if cfg.BaroStride > 0 && i%cfg.BaroStride == 0 {
			_ = f.UpdateBaro(reading.AltDown)
		}
		if cfg.MagStride > 0 && i%cfg.MagStride == 0 {
			_ = f.UpdateMag(reading.Mag)
		}

		track.Time = append(track.Time, sample.Time)
		track.TruePosition = append(track.TruePosition, sample.Position)
		track.EstPosition = append(track.EstPosition, f.Position())
		track.TrueVelocity = append(track.TrueVelocity, sample.Velocity)
		track.EstVelocity = append(track.EstVelocity, f.Velocity())
		track.TrueAttitude = append(track.TrueAttitude, sample.Attitude)
		track.EstAttitude = append(track.EstAttitude, f.Attitude())
	}

	return track
}
