// Package magref derives the NED earth magnetic field reference vector
// from a batch of stationary body-frame magnetometer and accelerometer
// samples, the way a field calibration routine would during INS startup.
package magref

import (
	"fmt"

	"github.com/navstack/ins16ekf/quat"
)

// Reference computes the NED magnetic field reference from paired
// mag/accel samples: it averages the samples, builds a body-to-NED
// direction cosine matrix from the averaged gravity direction, rotates the
// averaged magnetometer reading into NED, and normalizes the result. It
// errors if the sample slices are empty or of mismatched length.
func Reference(mag, accel []quat.Vector3) (quat.Vector3, error) {
	if len(mag) == 0 || len(accel) == 0 {
		return quat.Zero(), fmt.Errorf("magref: no samples provided")
	}
	if len(mag) != len(accel) {
		return quat.Zero(), fmt.Errorf("magref: mismatched sample counts: %d mag, %d accel", len(mag), len(accel))
	}

	avgMag := quat.Zero()
	avgAccel := quat.Zero()
	for i := range mag {
		avgMag = avgMag.Add(mag[i])
		avgAccel = avgAccel.Add(accel[i])
	}
	n := float64(len(mag))
	avgMag = avgMag.Scale(1.0 / n)
	avgAccel = avgAccel.Scale(1.0 / n)

	north, east, down := nedAxes(avgAccel)
	ned := quat.NewVector3(
		north.Dot(avgMag),
		east.Dot(avgMag),
		down.Dot(avgMag),
	)

	return ned.Normalize(), nil
}

// nedAxes derives the body-to-NED direction cosine axes from a gravity
// measurement: Down is opposite the measured specific force, North is
// Down crossed with a fixed seed of (0,1,0), and East is North crossed
// with Down. The seed does not tie North to any meridian: for a level body
// (specific force along body -Z) the axes come out as North = body -X,
// East = body +Y, Down = body +Z, so a reading keeps its East and Down
// components and its North component changes sign.
func nedAxes(accel quat.Vector3) (north, east, down quat.Vector3) {
	down = accel.Scale(-1).Normalize()
	eastSeed := quat.NewVector3(0, 1, 0)
	north = down.Cross(eastSeed).Normalize()
	east = north.Cross(down).Normalize()
	return north, east, down
}
