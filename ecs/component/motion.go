package component

import "github.com/milk9111/dashmotion/motion"

// Motion attaches a motion controller to an entity. The controller owns the
// entity's motion state; only MotionSystem advances it.
type Motion struct {
	Controller *motion.Controller
	// Prefab is the prefab file the config was built from, used for hot reload.
	Prefab string
}

var MotionComponent = NewComponent[Motion]("motion")
