package system

import (
	"math"

	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
)

const (
	// arrivalEpsilon is how close a traveling spawner has to get to its
	// destination slot.
	arrivalEpsilon = 0.002
	// ejectDecay is the per-second falloff of an enemy's spawn push.
	ejectDecay = 3.0
)

// MotionSystem turns intent into body velocities once per fixed step.
// Every velocity is multiplied by the mover's own time scale here, so the
// physics step itself always runs at real time.
type MotionSystem struct {
	clock Clock
	pools *entity.Pools
}

func NewMotionSystem(clock Clock, pools *entity.Pools) *MotionSystem {
	return &MotionSystem{clock: clock, pools: pools}
}

func (s *MotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.clock.FixedDeltaTime()
	if dt <= 0 {
		return
	}

	s.movePlayer(w, dt)
	s.moveEnemies(w, dt)
	s.moveSpawners(w, dt)
	s.moveBullets(w)
}

func (s *MotionSystem) movePlayer(w *ecs.World, dt float64) {
	active := playing(w)
	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			if p.Dead || !active {
				p.ResetMotion()
				body.Body.SetVelocity(0, 0)
				return
			}

			targetX, targetY := in.MoveX*p.MaxSpeed, in.MoveY*p.MaxSpeed
			smooth := 1 / math.Max(p.Accel, 0.0001)
			p.VelX = common.SmoothDamp(p.VelX, targetX, &p.SmoothVelX, smooth, math.Inf(1), dt)
			p.VelY = common.SmoothDamp(p.VelY, targetY, &p.SmoothVelY, smooth, math.Inf(1), dt)

			scale := timeScale(w, e)
			body.Body.SetVelocity(p.VelX*scale, p.VelY*scale)

			if p.ArenaRadius > 0 && math.Hypot(t.X-p.SpawnX, t.Y-p.SpawnY) > p.ArenaRadius {
				killPlayer(w, e, s.pools)
			}
		})
}

func (s *MotionSystem) moveEnemies(w *ecs.World, dt float64) {
	var px, py float64
	hasTarget := false
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			px, py, hasTarget = pt.X, pt.Y, true
		}
	}

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			scale := timeScale(w, e)
			vx, vy := 0.0, 0.0
			if hasTarget {
				dx, dy := px-t.X, py-t.Y
				if l := math.Hypot(dx, dy); l > 0 {
					vx, vy = dx/l*en.MoveSpeed, dy/l*en.MoveSpeed
					t.Rotation = math.Atan2(dy, dx)
				}
			}
			vx += en.EjectX
			vy += en.EjectY
			decay := math.Exp(-ejectDecay * dt * scale)
			en.EjectX *= decay
			en.EjectY *= decay

			body.Body.SetVelocity(vx*scale, vy*scale)
		})
}

func (s *MotionSystem) moveSpawners(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.SpawnerComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, sp *component.Spawner, t *component.Transform, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			if sp.Phase != component.SpawnerTraveling {
				body.Body.SetVelocity(0, 0)
				return
			}

			dx, dy := sp.DestX-t.X, sp.DestY-t.Y
			dist := math.Hypot(dx, dy)
			if dist <= arrivalEpsilon {
				body.Body.SetVelocity(0, 0)
				sp.Phase = component.SpawnerIdle
				sp.Ticket.Arrive()
				return
			}

			// never overshoot the slot in one step
			speed := math.Min(sp.MoveSpeed*timeScale(w, e), dist/dt)
			body.Body.SetVelocity(dx/dist*speed, dy/dist*speed)
		})
}

// moveBullets applies the square of the bullet's scale so slowed bullets
// read as slower than anything else in the field.
func (s *MotionSystem) moveBullets(w *ecs.World) {
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, b *component.Bullet, body *component.PhysicsBody) {
			if body.Body == nil || parked(w, e) {
				return
			}
			scale := timeScale(w, e)
			speed := b.Speed * scale * scale
			body.Body.SetVelocity(b.DirX*speed, b.DirY*speed)
		})
}
