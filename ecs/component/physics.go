package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The physics system creates Body and Shape on first sight.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Mass   float64
	// Kinematic bodies ignore contacts; Sensor shapes report overlaps only.
	Kinematic bool
	Sensor    bool
	Static    bool
	// Teleport asks the physics system to move the body to Transform on the
	// next sync.
	Teleport bool
	Attached bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
