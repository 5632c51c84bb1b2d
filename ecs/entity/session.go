package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/prefabs"
)

// NewGameState builds the director singleton in the menu phase.
func NewGameState(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.GameStateComponent.Kind(), &component.GameState{
		Phase:         component.PhaseMenu,
		Seed:          spec.Seed,
		SpawnInterval: spec.Director.SpawnInterval,
		SpawnerHealth: spec.Director.SpawnerHealth,
		FreezeWeight:  spec.Director.FreezeWeight,
		PlayerScale:   1,
	}); err != nil {
		return 0, fmt.Errorf("game state: add component: %w", err)
	}
	return ent, nil
}

// NewArena builds the floor disc the player has to stay on.
func NewArena(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("arena: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.ShapeComponent.Kind(), &component.Shape{
		Radius:  spec.Arena.Radius,
		Color:   spec.Arena.Color.RGBA,
		Alpha:   1,
		Layer:   -1,
		Visible: true,
	}); err != nil {
		return 0, fmt.Errorf("arena: add shape: %w", err)
	}
	return ent, nil
}

// MusicSource builds looping layer players.
type MusicSource interface {
	LoopPlayer(name string, frequency float64) (*audio.Player, error)
}

// NewMusic builds the layered soundtrack entity. A nil source leaves the
// layers silent, which headless tests rely on.
func NewMusic(w *ecs.World, spec *prefabs.GameSpec, src MusicSource) (ecs.Entity, error) {
	layer := func(s prefabs.MusicLayerSpec) (component.MusicLayer, error) {
		l := component.MusicLayer{Name: s.Name, EnemyCount: s.EnemyCount}
		if src == nil {
			return l, nil
		}
		p, err := src.LoopPlayer(s.Name, s.Frequency)
		if err != nil {
			return l, err
		}
		l.Player = p
		return l, nil
	}

	base, err := layer(spec.Music.Base)
	if err != nil {
		return 0, fmt.Errorf("music: base layer: %w", err)
	}
	music := &component.Music{Base: base, OnVolume: spec.Music.OnVolume}
	for _, s := range spec.Music.Layers {
		l, err := layer(s)
		if err != nil {
			return 0, fmt.Errorf("music: layer %s: %w", s.Name, err)
		}
		music.Layers = append(music.Layers, l)
	}

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.MusicComponent.Kind(), music); err != nil {
		return 0, fmt.Errorf("music: add component: %w", err)
	}
	if err := ecs.Add(w, ent, component.TimeScaleComponent.Kind(), component.NewTimeScale()); err != nil {
		return 0, fmt.Errorf("music: add time scale: %w", err)
	}
	return ent, nil
}
