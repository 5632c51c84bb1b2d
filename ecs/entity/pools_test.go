package entity

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/spawnring"
	"golang.org/x/image/colornames"
)

func loadSpec(t *testing.T) *prefabs.GameSpec {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	return spec
}

func TestNewPoolsPrewarms(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	p := NewPools(w, spec, rand.New(rand.NewPCG(1, 1)))

	cases := []struct {
		name string
		free int
		want int
	}{
		{PoolBullets, p.Bullets.FreeCount(), spec.Pools.Bullets},
		{PoolAudioCues, p.AudioCues.FreeCount(), spec.Pools.AudioCues},
		{PoolVFX, p.VFX.FreeCount(), spec.Pools.VFX},
	}
	for _, c := range cases {
		if c.free != c.want {
			t.Fatalf("%s: expected %d free, got %d", c.name, c.want, c.free)
		}
	}
	if got := len(w.Query(component.ParkedComponent.Kind())); got != spec.Pools.Bullets+spec.Pools.AudioCues+spec.Pools.VFX {
		t.Fatalf("every prewarmed unit should be parked, got %d", got)
	}
}

func TestFireArmsBullet(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	p := NewPools(w, spec, nil)

	item := p.Fire(BulletParams{X: 3, Y: 4, DirX: 0, DirY: 2, Speed: 400, Damage: 2, Color: colornames.Red})
	e := item.Value.Entity()
	if ecs.Has(w, e, component.ParkedComponent.Kind()) {
		t.Fatalf("fired bullet should be unparked")
	}
	b, _ := ecs.Get(w, e, component.BulletComponent.Kind())
	if b.DirX != 0 || b.DirY != 1 || b.Speed != 400 || b.Damage != 2 {
		t.Fatalf("unexpected bullet %+v", b)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 3 || tr.Y != 4 {
		t.Fatalf("bullet at %v,%v", tr.X, tr.Y)
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !body.Teleport {
		t.Fatalf("unparked bodies teleport to their transform")
	}
}

func TestResetAllParksAndClearsScale(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	p := NewPools(w, spec, nil)

	item := p.Fire(BulletParams{DirX: 1, Speed: 1})
	e := item.Value.Entity()
	ts, _ := ecs.Get(w, e, component.TimeScaleComponent.Kind())
	ts.Stack.Push(component.Owner(42), 0)
	p.PlayCue("shoot", 0, 0, 1, 1)
	p.Burst(component.VFXImpact, 0, 0, colornames.White)

	p.ResetAll()
	if p.Bullets.ActiveCount()+p.AudioCues.ActiveCount()+p.VFX.ActiveCount() != 0 {
		t.Fatalf("reset should return every unit")
	}
	if !ecs.Has(w, e, component.ParkedComponent.Kind()) {
		t.Fatalf("repooled bullet should be parked")
	}
	if ts.Value() != 1 || ts.Stack.Len() != 0 {
		t.Fatalf("repooled units must forget their effectors, scale %v", ts.Value())
	}
}

func TestCueIsStampedWithFrame(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	p := NewPools(w, spec, nil)
	p.AdvanceFrame()
	p.AdvanceFrame()

	if p.PlayCue("", 0, 0, 1, 1) != nil {
		t.Fatalf("an empty clip queues nothing")
	}
	item := p.PlayCue("impact", 1, 1, 0.5, 0)
	cue, _ := ecs.Get(w, item.Value.Entity(), component.AudioCueComponent.Kind())
	if !cue.Queued || cue.QueuedFrame != 2 || cue.BasePitch != 1 {
		t.Fatalf("unexpected cue %+v", cue)
	}
}

func TestBurstParticleCount(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	p := NewPools(w, spec, rand.New(rand.NewPCG(2, 3)))

	cases := []struct {
		kind component.VFXKind
		want int
	}{
		{component.VFXImpact, 6},
		{component.VFXDeath, 14},
		{component.VFXMuzzle, 4},
	}
	for _, c := range cases {
		item := p.Burst(c.kind, 10, 10, colornames.White)
		fx, _ := ecs.Get(w, item.Value.Entity(), component.VFXComponent.Kind())
		if len(fx.Particles) != c.want {
			t.Fatalf("kind %v: expected %d particles, got %d", c.kind, c.want, len(fx.Particles))
		}
		if !fx.Runner.Running() {
			t.Fatalf("kind %v: burst should be animating", c.kind)
		}
	}
}

func TestNewSpawnerUsesTicketSlots(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	var layers []spawnring.LayerConfig
	for _, r := range spec.Rings {
		layers = append(layers, spawnring.LayerConfig{Radius: r.Radius, Slots: r.Slots})
	}
	ring, err := spawnring.NewScheduler(layers, mgl64.Vec2{}, nil, nil)
	if err != nil {
		t.Fatalf("new ring: %v", err)
	}
	r, ok := ring.FindSpawnReservation()
	if !ok {
		t.Fatalf("no reservation")
	}

	if _, err := NewSpawner(w, spec, nil, 1, component.FieldTimeSlow); err == nil {
		t.Fatalf("expected an error for a nil ticket")
	}

	e, err := NewSpawner(w, spec, spawnring.NewTicket(ring, r), 4, component.FieldTimeSlow)
	if err != nil {
		t.Fatalf("new spawner: %v", err)
	}
	from := ring.SlotPosition(r.SpawnLayer, r.SpawnSlot)
	to := ring.SlotPosition(r.DestinationLayer, r.DestinationSlot)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	sp, _ := ecs.Get(w, e, component.SpawnerComponent.Kind())
	hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	if tr.X != from.X() || tr.Y != from.Y() {
		t.Fatalf("spawner should start at its birth slot")
	}
	if sp.DestX != to.X() || sp.DestY != to.Y() {
		t.Fatalf("spawner should head for its destination slot")
	}
	if hp.Current != 4 || sp.Phase != component.SpawnerRising {
		t.Fatalf("unexpected health %d or phase %v", hp.Current, sp.Phase)
	}
}

func TestResetPlayer(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	e, err := NewPlayer(w, spec)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	ts, _ := ecs.Get(w, e, component.TimeScaleComponent.Kind())
	weapon, _ := ecs.Get(w, e, component.WeaponComponent.Kind())

	p.Dead, p.VelX = true, 30
	tr.X, tr.Y = 120, 80
	ts.Stack.Push(component.Owner(1), 2)
	weapon.Stage, weapon.ScaledTime = 2, 40

	ResetPlayer(w, e, spec)

	if p.Dead || p.VelX != 0 || tr.X != 0 || tr.Y != 0 {
		t.Fatalf("player not back at spawn: %+v at %v,%v", p, tr.X, tr.Y)
	}
	if ts.Value() != 1 {
		t.Fatalf("time scale should be neutral, got %v", ts.Value())
	}
	fresh, _ := ecs.Get(w, e, component.WeaponComponent.Kind())
	if fresh.Stage != 0 || fresh.ScaledTime != 0 || !fresh.CanShoot() {
		t.Fatalf("expected a fresh weapon ready to fire, got %+v", fresh)
	}
}
