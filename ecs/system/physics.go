package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypeSpawner
	collisionTypeBullet
	collisionTypeField
)

// contactPairs get begin/separate callbacks. Every other pair collides
// silently.
var contactPairs = [][2]cp.CollisionType{
	{collisionTypeField, collisionTypePlayer},
	{collisionTypeField, collisionTypeEnemy},
	{collisionTypeField, collisionTypeSpawner},
	{collisionTypeField, collisionTypeBullet},
	{collisionTypeBullet, collisionTypeEnemy},
	{collisionTypeBullet, collisionTypeSpawner},
	{collisionTypePlayer, collisionTypeEnemy},
	{collisionTypePlayer, collisionTypeSpawner},
}

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space and
// steps it once per fixed tick. Contact callbacks only queue ContactEvents
// on the world; the field and combat systems act on them after the step.
type PhysicsSystem struct {
	space         *cp.Space
	clock         Clock
	handlersReady bool

	world    *ecs.World
	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	static   bool
	attached bool
	// passThrough shapes report contacts without a physical response.
	passThrough bool
}

func NewPhysicsSystem(clock Clock) *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		clock:    clock,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// BodyCount is the number of bodies and static shapes currently in the
// space.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil {
		return 0
	}
	n := 0
	for _, info := range ps.entities {
		if info.attached {
			n++
		}
	}
	return n
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}
	ps.world = w

	ps.ensureHandlers()
	ps.syncEntities(w)

	dt := 1.0 / 60
	if ps.clock != nil {
		dt = ps.clock.FixedDeltaTime()
	}
	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}
	for _, pair := range contactPairs {
		handler := ps.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = ps
		handler.BeginFunc = beginContact
		handler.SeparateFunc = separateContact
	}
	ps.handlersReady = true
}

func beginContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return true
	}
	a, b := arb.Shapes()
	sys.pushContact(ecs.ContactBegin, a, b)
	return !sys.passThrough(a) && !sys.passThrough(b)
}

func separateContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
	sys, ok := userData.(*PhysicsSystem)
	if !ok || sys == nil {
		return
	}
	a, b := arb.Shapes()
	sys.pushContact(ecs.ContactSeparate, a, b)
}

func (ps *PhysicsSystem) pushContact(kind ecs.ContactKind, a, b *cp.Shape) {
	if ps.world == nil {
		return
	}
	ea, okA := ps.shapes[a]
	eb, okB := ps.shapes[b]
	if !okA || !okB {
		return
	}
	ps.world.Events().PushContact(ecs.ContactEvent{Kind: kind, A: ea, B: eb})
}

func (ps *PhysicsSystem) passThrough(shape *cp.Shape) bool {
	e, ok := ps.shapes[shape]
	if !ok {
		return false
	}
	info := ps.entities[e]
	return info != nil && info.passThrough
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, transform, bodyComp)
			if info == nil {
				continue
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		if ecs.Has(w, e, component.ParkedComponent.Kind()) {
			ps.detach(info)
			bodyComp.Attached = false
			bodyComp.Teleport = false
			continue
		}

		if bodyComp.Teleport {
			// re-adding the shape makes overlaps at the new position fire
			// fresh begin events
			ps.detach(info)
			if !info.static {
				info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
				info.body.SetVelocity(0, 0)
			}
			bodyComp.Teleport = false
		}
		ps.attach(info)
		bodyComp.Attached = true
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 1
	}

	info := &bodyInfo{static: bodyComp.Static}
	var shape *cp.Shape
	switch {
	case bodyComp.Static:
		info.body = ps.space.StaticBody
		shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
	case bodyComp.Kinematic:
		info.body = cp.NewKinematicBody()
		info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		shape = cp.NewCircle(info.body, radius, cp.Vector{})
	default:
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// infinite moment: bodies never rotate, systems own Transform.Rotation
		info.body = cp.NewBody(mass, math.Inf(1))
		info.body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		shape = cp.NewCircle(info.body, radius, cp.Vector{})
	}

	shape.SetSensor(bodyComp.Sensor)
	shape.SetFriction(0)
	shape.SetElasticity(0)

	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		shape.SetCollisionType(collisionTypeFor(layer.Category))
		mask := uint(layer.Mask)
		if mask == 0 {
			mask = cp.ALL_CATEGORIES
		}
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer.Category), mask))
		info.passThrough = layer.Category == component.CategoryBullet
	}

	info.shape = shape
	ps.shapes[shape] = e
	return info
}

func collisionTypeFor(category component.CollisionCategory) cp.CollisionType {
	switch category {
	case component.CategoryPlayer:
		return collisionTypePlayer
	case component.CategoryEnemy:
		return collisionTypeEnemy
	case component.CategorySpawner:
		return collisionTypeSpawner
	case component.CategoryBullet:
		return collisionTypeBullet
	case component.CategoryField:
		return collisionTypeField
	default:
		return 0
	}
}

func (ps *PhysicsSystem) attach(info *bodyInfo) {
	if info.attached {
		return
	}
	if !info.static {
		ps.space.AddBody(info.body)
	}
	ps.space.AddShape(info.shape)
	info.attached = true
}

// detach takes the entity out of the space. Chipmunk fires separate
// callbacks for its live contacts, so shape lookups must still resolve.
func (ps *PhysicsSystem) detach(info *bodyInfo) {
	if !info.attached {
		return
	}
	ps.space.RemoveShape(info.shape)
	if !info.static {
		ps.space.RemoveBody(info.body)
	}
	info.attached = false
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || !info.attached {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.detach(info)
		delete(ps.shapes, info.shape)
		delete(ps.entities, e)
	}
}

