package system

import (
	"math"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

// PlayerSystem aims the player at the cursor and tracks its speed along
// the aim direction. Movement itself is applied in the fixed step.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
			if p.Dead {
				return
			}
			dx, dy := in.AimX-t.X, in.AimY-t.Y
			if dx != 0 || dy != 0 {
				p.Facing = math.Atan2(dy, dx)
			}
			t.Rotation = p.Facing
			p.ForwardSpeed = p.VelX*math.Cos(p.Facing) + p.VelY*math.Sin(p.Facing)
		})
}
