package system

import (
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/pool"
)

// particleDrag is the per-second velocity falloff of burst particles.
const particleDrag = 0.9

// VFXSystem simulates particle bursts at their own time scale and repools
// them once their sequence finishes.
type VFXSystem struct {
	clock Clock
	pools *entity.Pools
}

func NewVFXSystem(clock Clock, pools *entity.Pools) *VFXSystem {
	return &VFXSystem{clock: clock, pools: pools}
}

func (s *VFXSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.pools == nil {
		return
	}
	dt := s.clock.DeltaTime()

	s.pools.VFX.EachActive(func(item *pool.Pooled[*entity.VFXUnit]) {
		e := item.Value.Entity()
		fx, ok := ecs.Get(w, e, component.VFXComponent.Kind())
		if !ok {
			return
		}
		step := dt * timeScale(w, e)
		drag := 1 - particleDrag*step
		if drag < 0 {
			drag = 0
		}
		for i := range fx.Particles {
			p := &fx.Particles[i]
			p.X += p.VX * step
			p.Y += p.VY * step
			p.VX *= drag
			p.VY *= drag
		}

		fx.Runner.Step(dt)
		if fx.Finished && !item.InPool() {
			s.pools.VFX.Repool(item)
		}
	})
}
