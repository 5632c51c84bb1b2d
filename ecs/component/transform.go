package component

// Transform places an entity in arena units. Rotation is the facing in
// radians; Scale stays 1 outside of pooled VFX.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
