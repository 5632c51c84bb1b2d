package component

import "image/color"

// Shape is the flat circle every entity is drawn as.
type Shape struct {
	Radius  float64
	Color   color.RGBA
	Alpha   float64
	Layer   int
	Visible bool
	Outline bool
}

var ShapeComponent = NewComponent[Shape]()
