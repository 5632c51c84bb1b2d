package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/unstable/assets"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
)

const (
	minRecoil = 1.0
	maxRecoil = 3.0
)

// WeaponSystem fires the player's gun while the trigger is held. The shot
// interval is measured in the player's scaled time.
type WeaponSystem struct {
	clock Clock
	pools *entity.Pools
	rng   *rand.Rand
}

func NewWeaponSystem(clock Clock, pools *entity.Pools, rng *rand.Rand) *WeaponSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	return &WeaponSystem{clock: clock, pools: pools, rng: rng}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.clock.DeltaTime()
	kills := 0
	if gs, ok := gameState(w); ok {
		kills = gs.Kills
	}
	active := playing(w)

	ecs.ForEach4(w, component.WeaponComponent.Kind(), component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, weapon *component.Weapon, p *component.Player, in *component.Input, t *component.Transform) {
			weapon.ScaledTime += dt * timeScale(w, e)
			weapon.Stage = weapon.StageFor(kills)

			if !active || p.Dead || !(in.Fire || in.FirePressed) || !weapon.CanShoot() {
				return
			}
			s.fire(w, weapon, p, t)
		})
}

func (s *WeaponSystem) fire(w *ecs.World, weapon *component.Weapon, p *component.Player, t *component.Transform) {
	stage := weapon.Current()
	weapon.LastShot = weapon.ScaledTime
	weapon.NextShot = stage.Interval()

	spread := (s.rng.Float64()*2 - 1) * weapon.Spread * math.Pi / 180
	angle := p.Facing + spread
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	x, y := t.X+dirX*weapon.MuzzleOffset, t.Y+dirY*weapon.MuzzleOffset

	s.pools.Fire(entity.BulletParams{
		X:      x,
		Y:      y,
		DirX:   dirX,
		DirY:   dirY,
		Speed:  stage.InitialSpeed + p.ForwardSpeed,
		Damage: stage.Damage,
		Color:  stage.Color,
	})

	pitch := 1 + (s.rng.Float64()*2-1)*weapon.PitchVariance
	s.pools.PlayCue(assets.ClipShoot, x, y, weapon.ShotVolume, pitch)
	s.pools.Burst(component.VFXMuzzle, x, y, stage.Color)

	kick := minRecoil + s.rng.Float64()*(maxRecoil-minRecoil)
	AddRecoil(w, -dirX*kick, -dirY*kick)
}
