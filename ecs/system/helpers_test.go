package system

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/scores"
)

const testDT = 1.0 / 60

type session struct {
	w      *ecs.World
	spec   *prefabs.GameSpec
	pools  *entity.Pools
	player ecs.Entity
	state  ecs.Entity
	clock  FixedClock
}

func testSpec(t *testing.T) *prefabs.GameSpec {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	return spec
}

func newSession(t *testing.T) *session {
	t.Helper()
	spec := testSpec(t)
	w := ecs.NewWorld()
	pools := entity.NewPools(w, spec, rand.New(rand.NewPCG(1, 2)))
	state, err := entity.NewGameState(w, spec)
	if err != nil {
		t.Fatalf("game state: %v", err)
	}
	player, err := entity.NewPlayer(w, spec)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if _, err := entity.NewCamera(w, spec); err != nil {
		t.Fatalf("camera: %v", err)
	}
	return &session{
		w:      w,
		spec:   spec,
		pools:  pools,
		player: player,
		state:  state,
		clock:  FixedClock{Frame: testDT, Fixed: testDT},
	}
}

func (s *session) gameState(t *testing.T) *component.GameState {
	t.Helper()
	gs, ok := ecs.Get(s.w, s.state, component.GameStateComponent.Kind())
	if !ok {
		t.Fatalf("missing game state")
	}
	return gs
}

func (s *session) play(t *testing.T) {
	t.Helper()
	s.gameState(t).Phase = component.PhaseGame
}

func (s *session) stack(t *testing.T, e ecs.Entity) *component.TimeScale {
	t.Helper()
	ts, ok := ecs.Get(s.w, e, component.TimeScaleComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no time scale", e)
	}
	return ts
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

type fakeVoice struct {
	playing bool
	stopped bool
}

func (v *fakeVoice) IsPlaying() bool { return v.playing }
func (v *fakeVoice) Stop()           { v.playing, v.stopped = false, true }

type playedCue struct {
	clip  string
	pitch float64
	voice *fakeVoice
}

type fakeSound struct {
	played []playedCue
}

func (f *fakeSound) PlayOneShot(clip string, x, y, volume, pitch float64) Voice {
	v := &fakeVoice{playing: true}
	f.played = append(f.played, playedCue{clip: clip, pitch: pitch, voice: v})
	return v
}

type fakeScores struct {
	runs    []scores.Run
	best    float64
	cleared int
}

func (f *fakeScores) RecordRun(ctx context.Context, seed uint64, duration float64, kills int) (scores.Run, error) {
	run := scores.Run{ID: "run", Seed: seed, Duration: duration, Kills: kills}
	f.runs = append(f.runs, run)
	if duration > f.best {
		f.best = duration
	}
	return run, nil
}

func (f *fakeScores) Best(ctx context.Context) (float64, error) { return f.best, nil }

func (f *fakeScores) ClearBest(ctx context.Context) error {
	f.cleared++
	f.best = 0
	return nil
}
