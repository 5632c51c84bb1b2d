package ecs

import "github.com/milk9111/unstable/ecs/component"

// World owns entities, their components and the per-tick event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops every component of e and frees its slot. It reports
// false for dead or foreign handles.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Count is the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// HasComponent reports whether e carries a component of the given kind.
func (w *World) HasComponent(e Entity, kind component.AnyKind) bool {
	store := w.store(kind, false)
	return store != nil && store.has(e)
}

// First returns the first live entity that has kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	store := w.store(kind, false)
	if store == nil {
		return 0, false
	}
	for _, e := range store.dense {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Query returns live entities carrying every kind, iterating the smallest
// store.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	var smallest *sparseSet
	for _, k := range kinds {
		store := w.store(k, false)
		if store == nil {
			return nil
		}
		if smallest == nil || store.len() < smallest.len() {
			smallest = store
		}
	}
	var out []Entity
	for _, e := range smallest.dense {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, k := range kinds {
			if !w.stores[k.ID()].has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(kind component.AnyKind, create bool) *sparseSet {
	if w == nil || kind == nil || kind.ID() == 0 {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	store, ok := w.stores[kind.ID()]
	if !ok && create {
		store = &sparseSet{}
		w.stores[kind.ID()] = store
	}
	return store
}
