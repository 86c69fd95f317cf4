package component

import "image/color"

// Shape selects how RenderSystem draws an entity.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeArrow  Shape = "arrow"
)

// Appearance is a flat-color primitive drawn at the entity transform.
type Appearance struct {
	Shape  Shape
	Radius float64
	Color  color.RGBA
	Layer  int
}

var AppearanceComponent = NewComponent[Appearance]("appearance")
