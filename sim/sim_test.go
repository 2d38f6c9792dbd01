package sim

import (
	"testing"

	"github.com/navstack/ins16ekf/ekf"
	"github.com/navstack/ins16ekf/quat"
	"github.com/stretchr/testify/assert"
)

func TestLevelFlightHasZeroAngularRate(t *testing.T) {
	traj := LevelFlight(1.0, 0.1, 10.0, 0.0)
	for _, s := range traj.Samples {
		assert.Equal(t, quat.Zero(), s.GyroBody)
	}
}

func TestLevelFlightAdvancesPositionAlongHeading(t *testing.T) {
	traj := LevelFlight(2.0, 0.1, 5.0, 0.0)
	last := traj.Samples[len(traj.Samples)-1]
	assert.Greater(t, last.Position.X, 0.0)
	assert.InDelta(t, 0.0, last.Position.Y, 1e-9)
}

func TestCoordinatedTurnHasConstantYawRate(t *testing.T) {
	traj := CoordinatedTurn(1.0, 0.05, 10.0, 0.0, 0.2, 0)
	for _, s := range traj.Samples {
		assert.InDelta(t, 0.2, s.GyroBody.Z, 1e-9)
	}
}

func TestSensorsPerturbAddsNoise(t *testing.T) {
	traj := LevelFlight(0.5, 0.1, 5.0, 0.0)
	sensors, err := NewSensors(SensorConfig{
		GyroStd: 0.01, AccelStd: 0.1, GPSPosStd: 3, GPSVelStd: 0.3, BaroStd: 0.5, MagStd: 0.05,
	}, quat.NewVector3(0.29, -0.05, 0.42))
	assert.NoError(t, err)

	reading := sensors.Perturb(traj.Samples[0])
	assert.NotEqual(t, traj.Samples[0].GyroBody, reading.Gyro)
}

func TestRunScenarioProducesTrackOfTrajectoryLength(t *testing.T) {
	traj := LevelFlight(1.0, 0.1, 5.0, 0.0)
	sensors, err := NewSensors(SensorConfig{
		GyroStd: 0.001, AccelStd: 0.01, GPSPosStd: 2, GPSVelStd: 0.2, BaroStd: 0.5, MagStd: 0.02,
	}, quat.NewVector3(0.29, -0.05, 0.42))
	assert.NoError(t, err)

	f := ekf.New(ekf.DefaultConfig())
	track := RunScenario(f, traj, sensors, ScenarioConfig{GPSStride: 10, BaroStride: 5, MagStride: 20})

	assert.Equal(t, len(traj.Samples), len(track.Time))
	assert.Equal(t, len(traj.Samples), len(track.EstPosition))
}

func TestPlotTrackRejectsEmptyTrack(t *testing.T) {
	_, err := PlotTrack(Track{})
	assert.Error(t, err)
}

func TestPlotTrackBuildsPlotForNonEmptyTrack(t *testing.T) {
	traj := LevelFlight(0.5, 0.1, 5.0, 0.0)
	sensors, err := NewSensors(SensorConfig{
		GyroStd: 0.001, AccelStd: 0.01, GPSPosStd: 2, GPSVelStd: 0.2, BaroStd: 0.5, MagStd: 0.02,
	}, quat.NewVector3(0.29, -0.05, 0.42))
	assert.NoError(t, err)

	f := ekf.New(ekf.DefaultConfig())
	track := RunScenario(f, traj, sensors, ScenarioConfig{GPSStride: 5, BaroStride: 5, MagStride: 5})

	p, err := PlotTrack(track)
	assert.NoError(t, err)
	assert.NotNil(t, p)
}
