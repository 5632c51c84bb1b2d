package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/spawnring"
	"golang.org/x/image/colornames"
)

// NewSpawner builds a spawner at the spawn slot of ticket. The spawner
// system drives the ticket from here on.
func NewSpawner(w *ecs.World, spec *prefabs.GameSpec, ticket *spawnring.Ticket, health int, effect component.FieldEffect) (ecs.Entity, error) {
	if ticket == nil {
		return 0, fmt.Errorf("spawner: nil ticket")
	}
	var from, to mgl64.Vec2
	if s := ticket.Scheduler(); s != nil {
		r := ticket.Reservation
		from = s.SlotPosition(r.SpawnLayer, r.SpawnSlot)
		to = s.SlotPosition(r.DestinationLayer, r.DestinationSlot)
	}
	ss := spec.Spawner

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.SpawnerTagComponent.Kind(), &component.SpawnerTag{}); err != nil {
		return 0, fmt.Errorf("spawner: add tag: %w", err)
	}
	if err := ecs.Add(w, ent, component.SessionTagComponent.Kind(), &component.SessionTag{}); err != nil {
		return 0, fmt.Errorf("spawner: add session tag: %w", err)
	}
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: from.X(), Y: from.Y(), ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("spawner: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.SpawnerComponent.Kind(), &component.Spawner{
		Ticket:                 ticket,
		Phase:                  component.SpawnerRising,
		DestX:                  to.X(),
		DestY:                  to.Y(),
		MoveSpeed:              ss.MoveSpeed,
		IdleSpin:               ss.IdleSpin,
		FastSpin:               ss.FastSpin,
		SpinSpeed:              ss.FastSpin,
		Rise:                   ss.RiseDepth,
		RiseDepth:              ss.RiseDepth,
		RiseTime:               ss.RiseTime,
		TimeBeforeInitialGroup: ss.TimeBeforeInitialGroup,
		NumberToSpawn:          ss.NumberToSpawn,
		TimeBetweenEnemies:     ss.TimeBetweenEnemies,
		TimeBetweenGroups:      ss.TimeBetweenGroups,
		EjectForce:             ss.EjectForce,
		DissolveTime:           ss.DissolveTime,
		LeaveField:             effect,
		FieldRadius:            spec.Field.Radius,
	}); err != nil {
		return 0, fmt.Errorf("spawner: add spawner: %w", err)
	}
	if err := ecs.Add(w, ent, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health}); err != nil {
		return 0, fmt.Errorf("spawner: add health: %w", err)
	}
	if err := ecs.Add(w, ent, component.TimeScaleComponent.Kind(), component.NewTimeScale()); err != nil {
		return 0, fmt.Errorf("spawner: add time scale: %w", err)
	}
	if err := ecs.Add(w, ent, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: ss.Radius, Mass: 1000}); err != nil {
		return 0, fmt.Errorf("spawner: add physics body: %w", err)
	}
	if err := ecs.Add(w, ent, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategorySpawner,
		Mask:     component.CategoryPlayer | component.CategoryEnemy | component.CategoryBullet | component.CategoryField,
	}); err != nil {
		return 0, fmt.Errorf("spawner: add collision layer: %w", err)
	}
	if err := ecs.Add(w, ent, component.ShapeComponent.Kind(), &component.Shape{
		Radius:  ss.Radius,
		Color:   ss.Color.RGBA,
		Alpha:   1,
		Layer:   1,
		Visible: true,
		Outline: true,
	}); err != nil {
		return 0, fmt.Errorf("spawner: add shape: %w", err)
	}
	return ent, nil
}

// NewEnemy builds a chaser at x, y with an initial push.
func NewEnemy(w *ecs.World, spec *prefabs.GameSpec, x, y, ejectX, ejectY float64) (ecs.Entity, error) {
	es := spec.Enemy
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}
	if err := ecs.Add(w, ent, component.SessionTagComponent.Kind(), &component.SessionTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add session tag: %w", err)
	}
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.EnemyComponent.Kind(), &component.Enemy{MoveSpeed: es.MoveSpeed, EjectX: ejectX, EjectY: ejectY}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}
	health := es.Health
	if health <= 0 {
		health = 1
	}
	if err := ecs.Add(w, ent, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}
	if err := ecs.Add(w, ent, component.TimeScaleComponent.Kind(), component.NewTimeScale()); err != nil {
		return 0, fmt.Errorf("enemy: add time scale: %w", err)
	}
	if err := ecs.Add(w, ent, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: es.Radius, Mass: 1}); err != nil {
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}
	if err := ecs.Add(w, ent, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryEnemy,
		Mask:     component.CategoryPlayer | component.CategoryEnemy | component.CategorySpawner | component.CategoryBullet | component.CategoryField,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add collision layer: %w", err)
	}
	if err := ecs.Add(w, ent, component.ShapeComponent.Kind(), &component.Shape{
		Radius:  es.Radius,
		Color:   es.Color.RGBA,
		Alpha:   1,
		Layer:   2,
		Visible: true,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add shape: %w", err)
	}
	return ent, nil
}

// NewField builds a static sensor disc left behind by a dead spawner.
func NewField(w *ecs.World, effect component.FieldEffect, radius, x, y float64) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.SessionTagComponent.Kind(), &component.SessionTag{}); err != nil {
		return 0, fmt.Errorf("field: add session tag: %w", err)
	}
	if err := ecs.Add(w, ent, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("field: add transform: %w", err)
	}
	if err := ecs.Add(w, ent, component.FieldComponent.Kind(), &component.Field{
		Effect: effect,
		Radius: radius,
		Inside: make(map[component.Owner]struct{}),
	}); err != nil {
		return 0, fmt.Errorf("field: add field: %w", err)
	}
	if err := ecs.Add(w, ent, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: radius, Static: true, Sensor: true}); err != nil {
		return 0, fmt.Errorf("field: add physics body: %w", err)
	}
	if err := ecs.Add(w, ent, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryField,
		Mask:     component.CategoryPlayer | component.CategoryEnemy | component.CategorySpawner | component.CategoryBullet,
	}); err != nil {
		return 0, fmt.Errorf("field: add collision layer: %w", err)
	}
	if err := ecs.Add(w, ent, component.ShapeComponent.Kind(), &component.Shape{
		Radius:  radius,
		Color:   FieldColor(effect),
		Alpha:   0.25,
		Layer:   0,
		Visible: true,
	}); err != nil {
		return 0, fmt.Errorf("field: add shape: %w", err)
	}
	return ent, nil
}

// FieldColor is the tint a field of the given effect is drawn with.
func FieldColor(effect component.FieldEffect) color.RGBA {
	switch effect {
	case component.FieldTimeSlow:
		return colornames.Deepskyblue
	case component.FieldTimeSpeed:
		return colornames.Orange
	case component.FieldDamage:
		return colornames.Crimson
	default:
		return colornames.Gray
	}
}
