package ecs

import "github.com/milk9111/unstable/ecs/component"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

// Add stores value on e, replacing any previous component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind, true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := w.store(kind, false)
	if store == nil {
		return false
	}
	return store.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	store := w.store(kind, false)
	if store == nil || !w.IsAlive(e) {
		return nil, false
	}
	value, ok := store.get(e)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// Ensure returns the component on e, adding fresh if it is missing.
func Ensure[T any](w *World, e Entity, kind component.ComponentKind[T], fresh func() *T) (*T, error) {
	if v, ok := Get(w, e, kind); ok {
		return v, nil
	}
	v := fresh()
	if err := Add(w, e, kind, v); err != nil {
		return nil, err
	}
	return v, nil
}

func First(w *World, kind component.AnyKind) (Entity, bool) {
	return w.First(kind)
}

func Query(w *World, kinds ...component.AnyKind) []Entity {
	return w.Query(kinds...)
}
