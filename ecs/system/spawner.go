package system

import (
	"log"
	"math"

	"github.com/milk9111/unstable/assets"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/sequence"
)

// dissolveFrom and dissolveTo bound the dissolve shader amount; the render
// system maps it to alpha.
const (
	dissolveFrom = 5.0
	dissolveTo   = -0.5
)

// SpawnerSystem drives spawner sequences and spin. Travel and arrival run
// in the fixed motion step.
type SpawnerSystem struct {
	clock Clock
	spec  *prefabs.GameSpec
	pools *entity.Pools
}

func NewSpawnerSystem(clock Clock, spec *prefabs.GameSpec, pools *entity.Pools) *SpawnerSystem {
	return &SpawnerSystem{clock: clock, spec: spec, pools: pools}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.clock.DeltaTime()

	ecs.ForEach2(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spawner, t *component.Transform) {
		scale := timeScale(w, e)
		sp.AliveTime += dt * scale
		t.Rotation += sp.SpinSpeed * math.Pi / 180 * dt * scale
		sp.Runner.Step(dt)
	})
}

// LaunchSpawner starts the animate-in of a freshly built spawner. Travel
// begins once it has risen; the first group follows
// TimeBeforeInitialGroup scaled seconds later.
func (s *SpawnerSystem) LaunchSpawner(w *ecs.World, e ecs.Entity) {
	sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind())
	if !ok {
		return
	}
	scale := scaleOf(w, e)
	riseTime := sp.RiseTime

	sp.Runner.Start(sequence.NewChain(
		sequence.Do(func() {
			sp.SpinSpeed = sp.FastSpin
			sp.Rise = sp.RiseDepth
			s.cue(w, e, assets.ClipSpawnerRise, 1)
		}),
		sequence.NewTimed(riseTime, scale, func(p float64) {
			// ease out so the spawner settles like a damped spring
			inv := 1 - p
			sp.Rise = sp.RiseDepth * inv * inv
		}, nil),
		sequence.Do(func() {
			sp.Rise = 0
			sp.SpinSpeed = sp.IdleSpin
			sp.Phase = component.SpawnerTraveling
			sp.Ticket.Depart()
			sp.Runner.Start(s.groups(w, e, sp))
		}),
	))
}

func (s *SpawnerSystem) groups(w *ecs.World, e ecs.Entity, sp *component.Spawner) sequence.Sequence {
	scale := scaleOf(w, e)
	return sequence.NewChain(
		sequence.Wait(sp.TimeBeforeInitialGroup, scale),
		sequence.NewRepeat(0, func(int) sequence.Sequence {
			return sequence.NewChain(
				sequence.Do(func() { sp.SpinSpeed = sp.FastSpin }),
				s.group(w, e, sp, scale),
				sequence.Do(func() { sp.SpinSpeed = sp.IdleSpin }),
				sequence.Wait(sp.TimeBetweenGroups, scale),
			)
		}),
	)
}

// group ejects NumberToSpawn enemies. An empty group is nil so the chain
// skips it; a zero count would otherwise make NewRepeat run forever.
func (s *SpawnerSystem) group(w *ecs.World, e ecs.Entity, sp *component.Spawner, scale sequence.Scale) sequence.Sequence {
	if sp.NumberToSpawn <= 0 {
		return nil
	}
	return sequence.NewRepeat(sp.NumberToSpawn, func(int) sequence.Sequence {
		return sequence.NewChain(
			sequence.Wait(sp.TimeBetweenEnemies, scale),
			sequence.Do(func() { s.spawnEnemy(w, e, sp) }),
		)
	})
}

// spawnEnemy ejects one enemy from the spawner edge toward the player.
func (s *SpawnerSystem) spawnEnemy(w *ecs.World, e ecs.Entity, sp *component.Spawner) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || s.spec == nil {
		return
	}
	dirX, dirY := math.Cos(t.Rotation), math.Sin(t.Rotation)
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			dx, dy := pt.X-t.X, pt.Y-t.Y
			if l := math.Hypot(dx, dy); l > 0 {
				dirX, dirY = dx/l, dy/l
			}
		}
	}
	offset := s.spec.Spawner.Radius + s.spec.Enemy.Radius
	x, y := t.X+dirX*offset, t.Y+dirY*offset
	if _, err := entity.NewEnemy(w, s.spec, x, y, dirX*sp.EjectForce, dirY*sp.EjectForce); err != nil {
		log.Printf("spawner: spawn enemy: %v", err)
		return
	}
	s.cue(w, e, assets.ClipEnemySpawn, 1)
}

func (s *SpawnerSystem) cue(w *ecs.World, e ecs.Entity, clip string, volume float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	s.pools.PlayCue(clip, t.X, t.Y, volume, 1)
}

// KillSpawner releases the spawner's ring slots, counts the kill and starts
// the dissolve. The field is left behind once the dissolve finishes.
// Killing a dying spawner does nothing.
func (s *SpawnerSystem) KillSpawner(w *ecs.World, e ecs.Entity) {
	sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind())
	if !ok || sp.Phase == component.SpawnerDying {
		return
	}
	sp.Phase = component.SpawnerDying
	sp.SpinSpeed = 0
	sp.Ticket.Die()
	if gs, ok := gameState(w); ok {
		gs.Kills++
	}
	s.cue(w, e, assets.ClipSpawnerDeath, 1)
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocity(0, 0)
	}

	sp.Dissolve = dissolveFrom
	sp.Runner.Start(sequence.NewTimed(sp.DissolveTime, scaleOf(w, e), func(p float64) {
		sp.Dissolve = common.Lerp(dissolveFrom, dissolveTo, p)
	}, func() {
		s.leaveField(w, e, sp)
	}))
}

func (s *SpawnerSystem) leaveField(w *ecs.World, e ecs.Entity, sp *component.Spawner) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		if _, err := entity.NewField(w, sp.LeaveField, sp.FieldRadius, t.X, t.Y); err != nil {
			log.Printf("spawner: leave field: %v", err)
		}
	}
	ecs.DestroyEntity(w, e)
}

// DissolveAlpha maps a dissolve amount to draw opacity.
func DissolveAlpha(sp *component.Spawner) float64 {
	if sp == nil || sp.Phase != component.SpawnerDying {
		return 1
	}
	return common.Clamp((sp.Dissolve-dissolveTo)/(dissolveFrom-dissolveTo), 0, 1)
}
