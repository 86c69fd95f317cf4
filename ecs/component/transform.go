package component

// Transform is the world-space placement of an entity. Positions are in
// world units with +Y up; Rotation is in radians counter-clockwise.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]("transform")
