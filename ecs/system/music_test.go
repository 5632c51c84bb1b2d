package system

import (
	"testing"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
)

func TestActiveMusicLayer(t *testing.T) {
	layers := []component.MusicLayer{
		{Name: "pulse", EnemyCount: 2},
		{Name: "drive", EnemyCount: 6},
		{Name: "frenzy", EnemyCount: 12},
	}
	cases := []struct {
		live int
		want int
	}{
		{0, -1},
		{2, -1},
		{3, 0},
		{6, 0},
		{7, 1},
		{12, 1},
		{13, 2},
		{100, 2},
	}
	for _, c := range cases {
		if got := ActiveMusicLayer(layers, c.live); got != c.want {
			t.Fatalf("live %d: expected layer %d, got %d", c.live, c.want, got)
		}
	}
}

func TestMusicFadesInScaledTime(t *testing.T) {
	s := newSession(t)
	ent, err := entity.NewMusic(s.w, s.spec, nil)
	if err != nil {
		t.Fatalf("new music: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := entity.NewEnemy(s.w, s.spec, float64(i*20), 100, 0, 0); err != nil {
			t.Fatalf("new enemy: %v", err)
		}
	}
	music, _ := ecs.Get(s.w, ent, component.MusicComponent.Kind())
	sys := NewMusicSystem(FixedClock{Frame: 0.1})

	sys.Update(s.w)
	if !approx(music.Base.Volume, 0.1) || !approx(music.Layers[0].Volume, 0.1) {
		t.Fatalf("expected base and pulse fading in, got %v and %v", music.Base.Volume, music.Layers[0].Volume)
	}
	if music.Layers[1].Volume != 0 {
		t.Fatalf("drive should stay silent, got %v", music.Layers[1].Volume)
	}

	for i := 0; i < 10; i++ {
		sys.Update(s.w)
	}
	if !approx(music.Base.Volume, s.spec.Music.OnVolume) {
		t.Fatalf("base should settle at %v, got %v", s.spec.Music.OnVolume, music.Base.Volume)
	}

	// a frozen soundtrack keeps its levels
	s.stack(t, ent).Stack.Push(component.Owner(9), 0)
	for _, e := range s.w.Query(component.EnemyTagComponent.Kind()) {
		ecs.DestroyEntity(s.w, e)
	}
	sys.Update(s.w)
	if !approx(music.Layers[0].Volume, 0.45) {
		t.Fatalf("half speed fade should step by 0.05, got %v", music.Layers[0].Volume)
	}
}
