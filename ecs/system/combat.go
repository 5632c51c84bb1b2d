package system

import (
	"image/color"

	"github.com/milk9111/unstable/assets"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
)

const (
	impactVolume = 0.35
	deathVolume  = 0.6
)

// CombatSystem resolves bullet hits and lethal player contacts from the
// contacts of the last physics step.
type CombatSystem struct {
	pools    *entity.Pools
	spawners *SpawnerSystem
}

func NewCombatSystem(pools *entity.Pools, spawners *SpawnerSystem) *CombatSystem {
	return &CombatSystem{pools: pools, spawners: spawners}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	w.Events().Contacts(ecs.ContactBegin, func(c ecs.ContactEvent) {
		if !w.IsAlive(c.A) || !w.IsAlive(c.B) {
			return
		}
		if bullet, target, ok := pick(w, c, component.BulletComponent.Kind()); ok {
			s.bulletHit(w, bullet, target)
			return
		}
		if player, other, ok := pick(w, c, component.PlayerComponent.Kind()); ok {
			if lethal(w, other) {
				killPlayer(w, player, s.pools)
			}
		}
	})
}

// pick orders a contact so the side holding kind comes first.
func pick[T any](w *ecs.World, c ecs.ContactEvent, kind component.ComponentKind[T]) (ecs.Entity, ecs.Entity, bool) {
	if ecs.Has(w, c.A, kind) {
		return c.A, c.B, true
	}
	if ecs.Has(w, c.B, kind) {
		return c.B, c.A, true
	}
	return 0, 0, false
}

// lethal reports whether touching e kills the player. Dissolving spawners
// are harmless.
func lethal(w *ecs.World, e ecs.Entity) bool {
	if ecs.Has(w, e, component.EnemyComponent.Kind()) {
		return true
	}
	sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind())
	return ok && sp.Phase != component.SpawnerDying
}

func (s *CombatSystem) bulletHit(w *ecs.World, bullet, target ecs.Entity) {
	b, ok := ecs.Get(w, bullet, component.BulletComponent.Kind())
	if !ok || b.Spent || parked(w, bullet) {
		return
	}
	if !lethal(w, target) {
		// fields and dying spawners let bullets through
		return
	}
	b.Spent = true

	if t, ok := ecs.Get(w, bullet, component.TransformComponent.Kind()); ok {
		s.pools.Burst(component.VFXImpact, t.X, t.Y, b.Color)
		s.pools.PlayCue(assets.ClipImpact, t.X, t.Y, impactVolume, 1)
	}

	health, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		return
	}
	health.Current -= b.Damage
	if health.Current > 0 {
		flash(w, target)
		return
	}

	if ecs.Has(w, target, component.SpawnerComponent.Kind()) {
		s.spawners.KillSpawner(w, target)
		return
	}
	s.killEnemy(w, target)
}

func (s *CombatSystem) killEnemy(w *ecs.World, e ecs.Entity) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		var c color.RGBA
		if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
			c = shape.Color
		}
		s.pools.Burst(component.VFXDeath, t.X, t.Y, c)
		s.pools.PlayCue(assets.ClipEnemyDeath, t.X, t.Y, deathVolume, 1)
	}
	if gs, ok := gameState(w); ok {
		gs.Kills++
	}
	ecs.DestroyEntity(w, e)
}

// killPlayer marks the player dead; the game system ends the run on the
// next frame. A dead player cannot die again.
func killPlayer(w *ecs.World, e ecs.Entity, pools *entity.Pools) {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Dead || !playing(w) {
		return
	}
	p.Dead = true
	p.ResetMotion()
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		var c color.RGBA
		if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
			c = shape.Color
		}
		pools.Burst(component.VFXDeath, t.X, t.Y, c)
		pools.PlayCue(assets.ClipPlayerDeath, t.X, t.Y, deathVolume, 1)
	}
}
