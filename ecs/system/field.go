package system

import (
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

const (
	slowWeight  = 0.0
	speedWeight = 2.0
)

// FieldSystem applies field effects from the contacts of the last physics
// step. A field pushes onto the time-scale stack of whatever enters it and
// pops on exit, keyed by its own entity.
type FieldSystem struct{}

func NewFieldSystem() *FieldSystem {
	return &FieldSystem{}
}

func (s *FieldSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events()
	events.Contacts(ecs.ContactBegin, func(c ecs.ContactEvent) {
		field, other, ok := fieldContact(w, c)
		if !ok {
			return
		}
		enterField(w, field, other)
	})
	events.Contacts(ecs.ContactSeparate, func(c ecs.ContactEvent) {
		field, other, ok := fieldContact(w, c)
		if !ok {
			return
		}
		exitField(w, field, other)
	})
}

// fieldContact picks the field side of a contact. Separate events can
// arrive after either side is destroyed, so only the field must be alive.
func fieldContact(w *ecs.World, c ecs.ContactEvent) (ecs.Entity, ecs.Entity, bool) {
	if ecs.Has(w, c.A, component.FieldComponent.Kind()) {
		return c.A, c.B, true
	}
	if ecs.Has(w, c.B, component.FieldComponent.Kind()) {
		return c.B, c.A, true
	}
	return 0, 0, false
}

func enterField(w *ecs.World, field, other ecs.Entity) {
	f, ok := ecs.Get(w, field, component.FieldComponent.Kind())
	if !ok {
		return
	}
	ts, ok := ecs.Get(w, other, component.TimeScaleComponent.Kind())
	if !ok {
		return
	}
	if f.Inside == nil {
		f.Inside = make(map[component.Owner]struct{})
	}
	f.Inside[ownerOf(other)] = struct{}{}

	switch f.Effect {
	case component.FieldTimeSlow:
		ts.Stack.Push(ownerOf(field), slowWeight)
	case component.FieldTimeSpeed:
		ts.Stack.Push(ownerOf(field), speedWeight)
	case component.FieldGravity, component.FieldUpDraft, component.FieldDamage:
	}
}

func exitField(w *ecs.World, field, other ecs.Entity) {
	f, ok := ecs.Get(w, field, component.FieldComponent.Kind())
	if !ok {
		return
	}
	delete(f.Inside, ownerOf(other))

	ts, ok := ecs.Get(w, other, component.TimeScaleComponent.Kind())
	if !ok {
		return
	}
	switch f.Effect {
	case component.FieldTimeSlow, component.FieldTimeSpeed:
		// both effects share the field's key
		ts.Stack.Pop(ownerOf(field))
	case component.FieldGravity, component.FieldUpDraft, component.FieldDamage:
	}
}

// ReleaseField pops the field's effector from everything still inside it
// and destroys the field.
func ReleaseField(w *ecs.World, field ecs.Entity) {
	f, ok := ecs.Get(w, field, component.FieldComponent.Kind())
	if ok {
		for owner := range f.Inside {
			e := ecs.Entity(owner)
			if ts, ok := ecs.Get(w, e, component.TimeScaleComponent.Kind()); ok {
				ts.Stack.Pop(ownerOf(field))
			}
		}
		clear(f.Inside)
	}
	ecs.DestroyEntity(w, field)
}
