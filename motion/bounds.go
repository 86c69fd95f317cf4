package motion

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dashmotion/common"
)

// ClampToCamera keeps pos inside the rectangle of the given half extents
// centered on the camera. The region follows the camera every tick.
func ClampToCamera(pos, camera, halfExtents cp.Vector) cp.Vector {
	return cp.Vector{
		X: common.Clamp(pos.X, camera.X-halfExtents.X, camera.X+halfExtents.X),
		Y: common.Clamp(pos.Y, camera.Y-halfExtents.Y, camera.Y+halfExtents.Y),
	}
}
