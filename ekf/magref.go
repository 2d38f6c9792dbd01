package ekf

import (
	"github.com/navstack/ins16ekf/magref"
	"github.com/navstack/ins16ekf/quat"
)

func deriveMagReference(mag, accel []quat.Vector3) (quat.Vector3, error) {
	return magref.Reference(mag, accel)
}
