package system

import (
	"math"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/pool"
)

// BulletSystem ages bullets in their own scaled time and returns them to
// the pool once spent, expired or too far from the player.
type BulletSystem struct {
	clock Clock
	pools *entity.Pools
}

func NewBulletSystem(clock Clock, pools *entity.Pools) *BulletSystem {
	return &BulletSystem{clock: clock, pools: pools}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.pools == nil {
		return
	}
	dt := s.clock.FixedDeltaTime()

	var px, py float64
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			px, py = pt.X, pt.Y
		}
	}

	s.pools.Bullets.EachActive(func(item *pool.Pooled[*entity.BulletUnit]) {
		e := item.Value.Entity()
		b, ok := ecs.Get(w, e, component.BulletComponent.Kind())
		if !ok {
			return
		}
		b.Age += dt * timeScale(w, e)

		expired := b.Spent || (b.Lifetime > 0 && b.Age > b.Lifetime)
		if !expired && b.MaxDistance > 0 {
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				expired = math.Hypot(t.X-px, t.Y-py) > b.MaxDistance
			}
		}
		if expired && !item.InPool() {
			s.pools.Bullets.Repool(item)
		}
	})
}
