package entity

import (
	"fmt"

	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/prefabs"
)

// NewPlayer builds the player at the arena centre.
func NewPlayer(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	player := ecs.CreateEntity(w)

	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		MaxSpeed:    spec.Player.MaxSpeed,
		Accel:       spec.Player.Accel,
		ArenaRadius: spec.Arena.Radius,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, player, component.WeaponComponent.Kind(), NewWeapon(spec)); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}
	if err := ecs.Add(w, player, component.TimeScaleComponent.Kind(), component.NewTimeScale()); err != nil {
		return 0, fmt.Errorf("player: add time scale: %w", err)
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: spec.Player.Radius,
		Mass:   1,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
		Mask:     component.CategoryEnemy | component.CategorySpawner | component.CategoryField,
	}); err != nil {
		return 0, fmt.Errorf("player: add collision layer: %w", err)
	}
	if err := ecs.Add(w, player, component.ShapeComponent.Kind(), &component.Shape{
		Radius:  spec.Player.Radius,
		Color:   spec.Player.Color.RGBA,
		Alpha:   1,
		Layer:   3,
		Visible: true,
	}); err != nil {
		return 0, fmt.Errorf("player: add shape: %w", err)
	}

	return player, nil
}

// NewWeapon converts the tuning stage table.
func NewWeapon(spec *prefabs.GameSpec) *component.Weapon {
	stages := make([]component.WeaponStage, 0, len(spec.Weapon.Stages))
	for _, s := range spec.Weapon.Stages {
		stages = append(stages, component.WeaponStage{
			RPM:             s.RPM,
			InitialSpeed:    s.InitialSpeed,
			Damage:          s.Damage,
			KillRequirement: s.KillRequirement,
			Color:           s.Color.RGBA,
		})
	}
	weapon := &component.Weapon{
		Stages:        stages,
		Spread:        spec.Weapon.Spread,
		PitchVariance: spec.Player.PitchVariance,
		ShotVolume:    spec.Weapon.ShotVolume,
		MuzzleOffset:  spec.Weapon.MuzzleOffset,
	}
	// the first pull of the trigger always fires
	weapon.LastShot = -1
	weapon.NextShot = weapon.Current().Interval()
	return weapon
}

// ResetPlayer puts the player back at its spawn point with a fresh weapon
// and a neutral time scale.
func ResetPlayer(w *ecs.World, player ecs.Entity, spec *prefabs.GameSpec) {
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		p.ResetMotion()
		p.Dead = false
		p.Facing = 0
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			t.X, t.Y, t.Rotation = p.SpawnX, p.SpawnY, 0
		}
	}
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		body.Teleport = true
	}
	if ts, ok := ecs.Get(w, player, component.TimeScaleComponent.Kind()); ok {
		ts.Stack.Clear()
	}
	if err := ecs.Add(w, player, component.WeaponComponent.Kind(), NewWeapon(spec)); err != nil {
		panic("player: reset weapon: " + err.Error())
	}
	if shape, ok := ecs.Get(w, player, component.ShapeComponent.Kind()); ok {
		shape.Visible = true
	}
}
