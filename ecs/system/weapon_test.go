package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

func TestWeaponFiresInPlayerTime(t *testing.T) {
	cases := []struct {
		name   string
		weight float64 // pushed onto the player's stack; -1 pushes nothing
		shots  int
	}{
		{"normal", -1, 4},
		{"slowed", 0, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSession(t)
			s.play(t)
			if c.weight >= 0 {
				s.stack(t, s.player).Stack.Push(component.Owner(99), c.weight)
			}
			in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
			in.Fire = true

			sys := NewWeaponSystem(s.clock, s.pools, rand.New(rand.NewPCG(3, 4)))
			for i := 0; i < 60; i++ {
				sys.Update(s.w)
			}
			if got := s.pools.Bullets.ActiveCount(); got != c.shots {
				t.Fatalf("expected %d shots in one second, got %d", c.shots, got)
			}
		})
	}
}

func TestWeaponHoldsFireWhenDeadOrIdle(t *testing.T) {
	cases := []struct {
		name    string
		playing bool
		dead    bool
	}{
		{"menu", false, false},
		{"dead", true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSession(t)
			if c.playing {
				s.play(t)
			}
			p, _ := ecs.Get(s.w, s.player, component.PlayerComponent.Kind())
			p.Dead = c.dead
			in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
			in.Fire = true

			sys := NewWeaponSystem(s.clock, s.pools, nil)
			for i := 0; i < 30; i++ {
				sys.Update(s.w)
			}
			if got := s.pools.Bullets.ActiveCount(); got != 0 {
				t.Fatalf("expected no shots, got %d", got)
			}
		})
	}
}

func TestWeaponStageFollowsKills(t *testing.T) {
	s := newSession(t)
	s.play(t)
	gs := s.gameState(t)
	weapon, _ := ecs.Get(s.w, s.player, component.WeaponComponent.Kind())
	sys := NewWeaponSystem(s.clock, s.pools, nil)

	cases := []struct {
		kills int
		stage int
	}{
		{0, 0},
		{10, 0},
		{11, 1},
		{25, 1},
		{26, 2},
		{400, 2},
	}
	for _, c := range cases {
		gs.Kills = c.kills
		sys.Update(s.w)
		if weapon.Stage != c.stage {
			t.Fatalf("kills %d: expected stage %d, got %d", c.kills, c.stage, weapon.Stage)
		}
	}
}

func TestShotQueuesSoundAndMuzzle(t *testing.T) {
	s := newSession(t)
	s.play(t)
	in, _ := ecs.Get(s.w, s.player, component.InputComponent.Kind())
	in.FirePressed = true

	NewWeaponSystem(s.clock, s.pools, nil).Update(s.w)

	if s.pools.AudioCues.ActiveCount() != 1 || s.pools.VFX.ActiveCount() != 1 {
		t.Fatalf("expected one cue and one burst, got %d and %d", s.pools.AudioCues.ActiveCount(), s.pools.VFX.ActiveCount())
	}
	cam, _ := w0Camera(t, s)
	if cam.RecoilX == 0 && cam.RecoilY == 0 {
		t.Fatalf("expected the shot to kick the camera")
	}
}

func w0Camera(t *testing.T, s *session) (*component.Camera, ecs.Entity) {
	t.Helper()
	e, ok := s.w.First(component.CameraComponent.Kind())
	if !ok {
		t.Fatalf("missing camera")
	}
	cam, _ := ecs.Get(s.w, e, component.CameraComponent.Kind())
	return cam, e
}
