package component

type Camera struct {
	Zoom   float64
	Width  float64
	Height float64
	// Margin widens the view when deciding whether a point is off screen.
	Margin float64

	RecoilX  float64
	RecoilY  float64
	Recovery float64
}

var CameraComponent = NewComponent[Camera]()
