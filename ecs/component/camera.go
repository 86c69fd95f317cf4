package component

// Camera follows a target entity. Its Transform holds the camera center in
// world units.
type Camera struct {
	TargetName string
	// Smoothness is the fraction of the remaining distance closed per
	// second; values <= 0 snap to the target.
	Smoothness float64
	// Zoom multiplies the pixels-per-unit scale when rendering.
	Zoom float64
}

var CameraComponent = NewComponent[Camera]("camera")

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]("camera_tag")
