package system

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/spawnring"
)

func newRing(t *testing.T, s *session) *spawnring.Scheduler {
	t.Helper()
	layers := make([]spawnring.LayerConfig, 0, len(s.spec.Rings))
	for _, r := range s.spec.Rings {
		layers = append(layers, spawnring.LayerConfig{Radius: r.Radius, Slots: r.Slots})
	}
	ring, err := spawnring.NewScheduler(layers, mgl64.Vec2{}, nil, rand.New(rand.NewPCG(5, 6)))
	if err != nil {
		t.Fatalf("new ring: %v", err)
	}
	return ring
}

func newTestSpawner(t *testing.T, s *session, ring *spawnring.Scheduler) (ecs.Entity, *component.Spawner) {
	t.Helper()
	r, ok := ring.FindSpawnReservation()
	if !ok {
		t.Fatalf("ring has no free slots")
	}
	e, err := entity.NewSpawner(s.w, s.spec, spawnring.NewTicket(ring, r), 2, component.FieldTimeSpeed)
	if err != nil {
		t.Fatalf("new spawner: %v", err)
	}
	sp, _ := ecs.Get(s.w, e, component.SpawnerComponent.Kind())
	return e, sp
}

func enemyCount(w *ecs.World) int {
	return len(w.Query(component.EnemyTagComponent.Kind()))
}

func TestSpawnerRisesThenDeparts(t *testing.T) {
	s := newSession(t)
	ring := newRing(t, s)
	e, sp := newTestSpawner(t, s, ring)
	sys := NewSpawnerSystem(FixedClock{Frame: 0.1}, s.spec, s.pools)
	sys.LaunchSpawner(s.w, e)

	sys.Update(s.w)
	if sp.Phase != component.SpawnerRising || sp.Rise <= 0 {
		t.Fatalf("expected a rising spawner, got phase %v rise %v", sp.Phase, sp.Rise)
	}
	if sp.SpinSpeed != sp.FastSpin {
		t.Fatalf("rising spawners spin fast, got %v", sp.SpinSpeed)
	}

	for i := 0; i < 20; i++ {
		sys.Update(s.w)
	}
	if sp.Phase != component.SpawnerTraveling {
		t.Fatalf("expected traveling after the rise, got %v", sp.Phase)
	}
	if sp.Rise != 0 || sp.SpinSpeed != sp.IdleSpin {
		t.Fatalf("expected settled idle spin, got rise %v spin %v", sp.Rise, sp.SpinSpeed)
	}
	if sp.Ticket.State() != spawnring.Traveling {
		t.Fatalf("ticket should be traveling, got %v", sp.Ticket.State())
	}
	// the birth slot is released on departure
	if got := ring.FilledCount(); got != 1 {
		t.Fatalf("expected only the destination slot filled, got %d", got)
	}
}

func TestSpawnerEjectsGroups(t *testing.T) {
	s := newSession(t)
	ring := newRing(t, s)
	e, _ := newTestSpawner(t, s, ring)
	sys := NewSpawnerSystem(FixedClock{Frame: 0.1}, s.spec, s.pools)
	sys.LaunchSpawner(s.w, e)

	// rise (1.5s) plus the initial wait (8s) comes first
	for i := 0; i < 95; i++ {
		sys.Update(s.w)
	}
	if got := enemyCount(s.w); got != 0 {
		t.Fatalf("no enemies before the first group, got %d", got)
	}

	for i := 0; i < 25; i++ {
		sys.Update(s.w)
	}
	if got := enemyCount(s.w); got != s.spec.Spawner.NumberToSpawn {
		t.Fatalf("expected a group of %d, got %d", s.spec.Spawner.NumberToSpawn, got)
	}

	for _, en := range s.w.Query(component.EnemyComponent.Kind()) {
		enemy, _ := ecs.Get(s.w, en, component.EnemyComponent.Kind())
		if enemy.EjectX == 0 && enemy.EjectY == 0 {
			t.Fatalf("enemy %v spawned without a push", en)
		}
	}
}

func TestEmptyGroupSpawnsNothing(t *testing.T) {
	s := newSession(t)
	ring := newRing(t, s)
	e, sp := newTestSpawner(t, s, ring)
	sp.NumberToSpawn = 0
	sys := NewSpawnerSystem(FixedClock{Frame: 0.1}, s.spec, s.pools)
	sys.LaunchSpawner(s.w, e)

	// long enough for several group cycles
	for i := 0; i < 400; i++ {
		sys.Update(s.w)
	}
	if got := enemyCount(s.w); got != 0 {
		t.Fatalf("a zero size group should spawn nothing, got %d", got)
	}
	if !sp.Runner.Running() {
		t.Fatalf("the group loop should keep running between empty groups")
	}
}

func TestFrozenSpawnerHoldsItsGroup(t *testing.T) {
	s := newSession(t)
	ring := newRing(t, s)
	e, sp := newTestSpawner(t, s, ring)
	speed, _ := ecs.Get(s.w, e, component.TimeScaleComponent.Kind())
	// rough average of 1 and 0 is half speed
	speed.Stack.Push(component.Owner(77), 0)

	sys := NewSpawnerSystem(FixedClock{Frame: 0.1}, s.spec, s.pools)
	sys.LaunchSpawner(s.w, e)
	for i := 0; i < 20; i++ {
		sys.Update(s.w)
	}
	if sp.Phase != component.SpawnerRising {
		t.Fatalf("half speed should still be rising after 2s, got %v", sp.Phase)
	}
	if !approx(sp.AliveTime, 1) {
		t.Fatalf("expected 1 scaled second alive, got %v", sp.AliveTime)
	}
}

func TestKillSpawnerLeavesField(t *testing.T) {
	s := newSession(t)
	s.play(t)
	ring := newRing(t, s)
	e, sp := newTestSpawner(t, s, ring)
	sys := NewSpawnerSystem(FixedClock{Frame: 0.1}, s.spec, s.pools)
	sys.LaunchSpawner(s.w, e)
	sys.Update(s.w)

	sys.KillSpawner(s.w, e)
	sys.KillSpawner(s.w, e)

	if got := s.gameState(t).Kills; got != 1 {
		t.Fatalf("a spawner counts once, got %d kills", got)
	}
	if sp.Ticket.State() != spawnring.Dead || ring.FilledCount() != 0 {
		t.Fatalf("dead spawner should free its slots, state %v filled %d", sp.Ticket.State(), ring.FilledCount())
	}
	t0, _ := ecs.Get(s.w, e, component.TransformComponent.Kind())
	x, y := t0.X, t0.Y

	for i := 0; i < 10; i++ {
		sys.Update(s.w)
	}
	if a := DissolveAlpha(sp); a <= 0 || a >= 1 {
		t.Fatalf("expected a partial dissolve, alpha %v", a)
	}
	if len(s.w.Query(component.FieldComponent.Kind())) != 0 {
		t.Fatalf("field appears only after the dissolve")
	}

	for i := 0; i < 20; i++ {
		sys.Update(s.w)
	}
	if s.w.IsAlive(e) {
		t.Fatalf("spawner should be gone after dissolving")
	}
	fields := s.w.Query(component.FieldComponent.Kind())
	if len(fields) != 1 {
		t.Fatalf("expected one field, got %d", len(fields))
	}
	f, _ := ecs.Get(s.w, fields[0], component.FieldComponent.Kind())
	ft, _ := ecs.Get(s.w, fields[0], component.TransformComponent.Kind())
	if f.Effect != component.FieldTimeSpeed || f.Radius != s.spec.Field.Radius {
		t.Fatalf("unexpected field %+v", f)
	}
	if ft.X != x || ft.Y != y {
		t.Fatalf("field should sit where the spawner died, got %v,%v want %v,%v", ft.X, ft.Y, x, y)
	}
}

func TestSpawnerArrivesAtDestination(t *testing.T) {
	s := newSession(t)
	ring := newRing(t, s)
	e, sp := newTestSpawner(t, s, ring)
	sp.Phase = component.SpawnerTraveling
	sp.Ticket.Depart()

	physics := NewPhysicsSystem(s.clock)
	fixed := ecs.NewScheduler("fixed", NewMotionSystem(s.clock, s.pools), physics).FlushEvents(true)
	fixed.Update(s.w)

	body, _ := ecs.Get(s.w, e, component.PhysicsBodyComponent.Kind())
	dest := mgl64.Vec2{sp.DestX, sp.DestY}
	start := dest.Sub(dest.Normalize().Mul(0.1))
	body.Body.SetPosition(cp.Vector{X: start.X(), Y: start.Y()})
	if tr, ok := ecs.Get(s.w, e, component.TransformComponent.Kind()); ok {
		tr.X, tr.Y = start.X(), start.Y()
	}

	for i := 0; i < 5; i++ {
		fixed.Update(s.w)
	}
	if sp.Phase != component.SpawnerIdle {
		t.Fatalf("expected the spawner to arrive, phase %v", sp.Phase)
	}
	if sp.Ticket.State() != spawnring.Arrived {
		t.Fatalf("ticket should be arrived, got %v", sp.Ticket.State())
	}
	if v := body.Body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("arrived spawner should stop, velocity %v", v)
	}
}
