package entity

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/pool"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/sequence"
)

const (
	PoolBullets   = "bullets"
	PoolAudioCues = "audio_cues"
	PoolVFX       = "vfx"
)

// Pools owns the three unit pools of a world.
type Pools struct {
	Bullets   *pool.Pool[*BulletUnit, BulletParams]
	AudioCues *pool.Pool[*AudioCueUnit, AudioCueParams]
	VFX       *pool.Pool[*VFXUnit, VFXParams]

	frame uint64
}

// NewPools creates and prewarms every pool. rng seeds particle bursts.
func NewPools(w *ecs.World, spec *prefabs.GameSpec, rng *rand.Rand) *Pools {
	if rng == nil {
		rng = rand.New(rand.NewPCG(spec.Seed, 0))
	}
	p := &Pools{}
	p.Bullets = pool.New[*BulletUnit, BulletParams](PoolBullets, func() *BulletUnit {
		return newBulletUnit(w, spec.Bullet)
	})
	p.AudioCues = pool.New[*AudioCueUnit, AudioCueParams](PoolAudioCues, func() *AudioCueUnit {
		return newAudioCueUnit(w)
	})
	p.VFX = pool.New[*VFXUnit, VFXParams](PoolVFX, func() *VFXUnit {
		return newVFXUnit(w, rng)
	})
	p.Bullets.Prewarm(spec.Pools.Bullets)
	p.AudioCues.Prewarm(spec.Pools.AudioCues)
	p.VFX.Prewarm(spec.Pools.VFX)
	return p
}

// Frame is the frame counter audio cues are stamped with.
func (p *Pools) Frame() uint64 {
	if p == nil {
		return 0
	}
	return p.frame
}

// AdvanceFrame starts a new frame. Cues queued before it become playable.
func (p *Pools) AdvanceFrame() {
	if p != nil {
		p.frame++
	}
}

// Fire hands out a bullet.
func (p *Pools) Fire(params BulletParams) *pool.Pooled[*BulletUnit] {
	if p == nil {
		return nil
	}
	return p.Bullets.Unpool(params)
}

// PlayCue queues a one-shot at x, y. It starts on the next frame.
func (p *Pools) PlayCue(clip string, x, y, volume, pitch float64) *pool.Pooled[*AudioCueUnit] {
	if p == nil || clip == "" {
		return nil
	}
	return p.AudioCues.Unpool(AudioCueParams{Clip: clip, X: x, Y: y, Volume: volume, Pitch: pitch, Frame: p.frame})
}

// Burst spawns a particle effect.
func (p *Pools) Burst(kind component.VFXKind, x, y float64, c color.RGBA) *pool.Pooled[*VFXUnit] {
	if p == nil {
		return nil
	}
	return p.VFX.Unpool(VFXParams{Kind: kind, X: x, Y: y, Color: c})
}

// ResetAll repools every active unit.
func (p *Pools) ResetAll() {
	if p == nil {
		return
	}
	p.Bullets.ResetAll()
	p.AudioCues.ResetAll()
	p.VFX.ResetAll()
}

// unit is the entity half shared by every pooled adapter.
type unit struct {
	world  *ecs.World
	entity ecs.Entity
}

func (u unit) Entity() ecs.Entity { return u.entity }

func (u unit) park() {
	if err := ecs.Add(u.world, u.entity, component.ParkedComponent.Kind(), &component.Parked{}); err != nil {
		panic("pool unit: park: " + err.Error())
	}
	if ts, ok := ecs.Get(u.world, u.entity, component.TimeScaleComponent.Kind()); ok {
		ts.Stack.Clear()
	}
	if s, ok := ecs.Get(u.world, u.entity, component.ShapeComponent.Kind()); ok {
		s.Visible = false
	}
	if body, ok := ecs.Get(u.world, u.entity, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocity(0, 0)
		body.Body.SetAngularVelocity(0)
	}
}

func (u unit) unpark(x, y, rotation float64) {
	ecs.Remove(u.world, u.entity, component.ParkedComponent.Kind())
	if t, ok := ecs.Get(u.world, u.entity, component.TransformComponent.Kind()); ok {
		t.X, t.Y, t.Rotation = x, y, rotation
	}
	if body, ok := ecs.Get(u.world, u.entity, component.PhysicsBodyComponent.Kind()); ok {
		body.Teleport = true
	}
	if s, ok := ecs.Get(u.world, u.entity, component.ShapeComponent.Kind()); ok {
		s.Visible = true
	}
}

func newUnit(w *ecs.World, poolName string) unit {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PooledComponent.Kind(), &component.Pooled{Pool: poolName}); err != nil {
		panic("pool unit: add pooled: " + err.Error())
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		panic("pool unit: add transform: " + err.Error())
	}
	if err := ecs.Add(w, e, component.TimeScaleComponent.Kind(), component.NewTimeScale()); err != nil {
		panic("pool unit: add time scale: " + err.Error())
	}
	return unit{world: w, entity: e}
}

// BulletParams positions and arms a bullet.
type BulletParams struct {
	X, Y       float64
	DirX, DirY float64
	Speed      float64
	Damage     int
	Color      color.RGBA
}

type BulletUnit struct {
	unit
}

func newBulletUnit(w *ecs.World, spec prefabs.BulletSpec) *BulletUnit {
	u := newUnit(w, PoolBullets)
	if err := ecs.Add(w, u.entity, component.BulletComponent.Kind(), &component.Bullet{
		Lifetime:    spec.Lifetime,
		MaxDistance: spec.MaxDistance,
	}); err != nil {
		panic("bullet: add bullet: " + err.Error())
	}
	if err := ecs.Add(w, u.entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius, Mass: 0.05}); err != nil {
		panic("bullet: add physics body: " + err.Error())
	}
	if err := ecs.Add(w, u.entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryBullet,
		Mask:     component.CategoryEnemy | component.CategorySpawner | component.CategoryField,
	}); err != nil {
		panic("bullet: add collision layer: " + err.Error())
	}
	if err := ecs.Add(w, u.entity, component.ShapeComponent.Kind(), &component.Shape{Radius: spec.Radius, Alpha: 1, Layer: 2}); err != nil {
		panic("bullet: add shape: " + err.Error())
	}
	return &BulletUnit{unit: u}
}

func (b *BulletUnit) Spawn(p BulletParams) {
	l := math.Hypot(p.DirX, p.DirY)
	if l == 0 {
		p.DirX, l = 1, 1
	}
	b.unpark(p.X, p.Y, math.Atan2(p.DirY, p.DirX))
	if bullet, ok := ecs.Get(b.world, b.entity, component.BulletComponent.Kind()); ok {
		bullet.DirX, bullet.DirY = p.DirX/l, p.DirY/l
		bullet.Speed = p.Speed
		bullet.Damage = p.Damage
		bullet.Color = p.Color
		bullet.Age = 0
		bullet.Spent = false
	}
	if s, ok := ecs.Get(b.world, b.entity, component.ShapeComponent.Kind()); ok {
		s.Color = p.Color
	}
}

func (b *BulletUnit) Reset() {
	b.park()
	if bullet, ok := ecs.Get(b.world, b.entity, component.BulletComponent.Kind()); ok {
		bullet.Age = 0
		bullet.Spent = false
		bullet.Speed = 0
	}
}

// AudioCueParams describes one queued one-shot. Frame is the frame the
// request was made on.
type AudioCueParams struct {
	Clip   string
	X, Y   float64
	Volume float64
	Pitch  float64
	Frame  uint64
}

type AudioCueUnit struct {
	unit
}

func newAudioCueUnit(w *ecs.World) *AudioCueUnit {
	u := newUnit(w, PoolAudioCues)
	if err := ecs.Add(w, u.entity, component.AudioCueComponent.Kind(), &component.AudioCue{}); err != nil {
		panic("audio cue: add cue: " + err.Error())
	}
	return &AudioCueUnit{unit: u}
}

func (a *AudioCueUnit) Spawn(p AudioCueParams) {
	a.unpark(p.X, p.Y, 0)
	cue, ok := ecs.Get(a.world, a.entity, component.AudioCueComponent.Kind())
	if !ok {
		return
	}
	pitch := p.Pitch
	if pitch == 0 {
		pitch = 1
	}
	*cue = component.AudioCue{
		Clip:        p.Clip,
		Volume:      p.Volume,
		BasePitch:   pitch,
		X:           p.X,
		Y:           p.Y,
		Queued:      true,
		QueuedFrame: p.Frame,
	}
}

// Reset stops the voice and clears the cue's time scale.
func (a *AudioCueUnit) Reset() {
	if cue, ok := ecs.Get(a.world, a.entity, component.AudioCueComponent.Kind()); ok {
		if cue.Voice != nil {
			cue.Voice.Stop()
		}
		cue.Voice = nil
		cue.Queued = false
	}
	a.park()
}

// VFXParams places a burst.
type VFXParams struct {
	Kind  component.VFXKind
	X, Y  float64
	Color color.RGBA
}

// VFXUnit is a particle burst that lasts one scaled second.
type VFXUnit struct {
	unit
	rng *rand.Rand
}

func newVFXUnit(w *ecs.World, rng *rand.Rand) *VFXUnit {
	u := newUnit(w, PoolVFX)
	if err := ecs.Add(w, u.entity, component.VFXComponent.Kind(), &component.VFX{}); err != nil {
		panic("vfx: add vfx: " + err.Error())
	}
	return &VFXUnit{unit: u, rng: rng}
}

var burstShape = map[component.VFXKind]struct {
	count int
	speed float64
	size  float64
}{
	component.VFXImpact: {count: 6, speed: 60, size: 1.5},
	component.VFXDeath:  {count: 14, speed: 110, size: 2.5},
	component.VFXMuzzle: {count: 4, speed: 40, size: 1},
}

func (v *VFXUnit) Spawn(p VFXParams) {
	v.unpark(p.X, p.Y, 0)
	fx, ok := ecs.Get(v.world, v.entity, component.VFXComponent.Kind())
	if !ok {
		return
	}
	shape := burstShape[p.Kind]
	fx.Kind = p.Kind
	fx.Color = p.Color
	fx.Progress = 0
	fx.Finished = false
	fx.Particles = fx.Particles[:0]
	for i := 0; i < shape.count; i++ {
		angle := v.rng.Float64() * 2 * math.Pi
		speed := shape.speed * (0.5 + v.rng.Float64())
		fx.Particles = append(fx.Particles, component.Particle{
			X:    p.X,
			Y:    p.Y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Size: shape.size,
		})
	}

	ts, _ := ecs.Get(v.world, v.entity, component.TimeScaleComponent.Kind())
	fx.Runner.Start(sequence.NewTimed(1, ts.Value, func(t float64) {
		fx.Progress = t
	}, func() {
		fx.Finished = true
	}))
}

func (v *VFXUnit) Reset() {
	if fx, ok := ecs.Get(v.world, v.entity, component.VFXComponent.Kind()); ok {
		fx.Runner.Cancel()
		fx.Finished = false
		fx.Progress = 0
	}
	v.park()
}
