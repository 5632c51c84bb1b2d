// Package pool recycles short-lived game objects (bullets, one-shot audio
// cues, impact effects) so the shooter loop does not allocate per shot.
package pool

import "log"

// Poolable is the contract every pooled type implements.
//
// Spawn applies caller parameters (position, orientation, payload) and must
// leave the instance visible and simulating. Reset must zero motion, stop
// audio, clear the time-scale stack, hide visuals and take the instance out
// of simulation and collision.
type Poolable[P any] interface {
	Spawn(params P)
	Reset()
}

// Pooled wraps one recycled instance.
type Pooled[T any] struct {
	Value  T
	inPool bool
	index  int
}

// InPool reports whether the instance is parked. Callers must check this
// before Repool: the pool itself does not guard against double repooling.
func (p *Pooled[T]) InPool() bool {
	if p == nil {
		return true
	}
	return p.inPool
}

// Active is the complement of InPool.
func (p *Pooled[T]) Active() bool {
	return !p.InPool()
}

// Index is the position of the instance in the pool registry.
func (p *Pooled[T]) Index() int {
	if p == nil {
		return -1
	}
	return p.index
}

// Pool is an expandable free list over a fixed registry of every instance
// ever created. It grows on demand and never shrinks.
type Pool[T Poolable[P], P any] struct {
	name    string
	newFn   func() T
	free    []*Pooled[T]
	all     []*Pooled[T]
	prewarm int
}

// New creates an empty pool. newFn constructs one instance; the pool calls
// Reset on it before parking it.
func New[T Poolable[P], P any](name string, newFn func() T) *Pool[T, P] {
	return &Pool[T, P]{name: name, newFn: newFn}
}

// Name identifies the pool in logs.
func (p *Pool[T, P]) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Prewarm constructs count parked instances.
func (p *Pool[T, P]) Prewarm(count int) {
	if p == nil || count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		p.free = append(p.free, p.create())
	}
	p.prewarm += count
}

// Unpool hands out a parked instance, constructing one if the free list is
// empty, and spawns it with params.
func (p *Pool[T, P]) Unpool(params P) *Pooled[T] {
	if p == nil {
		return nil
	}
	if len(p.free) == 0 {
		p.free = append(p.free, p.create())
		if len(p.all) > p.prewarm {
			log.Printf("pool: %s grew to %d instances", p.name, len(p.all))
		}
	}
	last := len(p.free) - 1
	item := p.free[last]
	p.free[last] = nil
	p.free = p.free[:last]

	item.inPool = false
	item.Value.Spawn(params)
	return item
}

// Repool resets item and parks it. item must be active.
func (p *Pool[T, P]) Repool(item *Pooled[T]) {
	if p == nil || item == nil {
		return
	}
	item.Value.Reset()
	item.inPool = true
	p.free = append(p.free, item)
}

// ResetAll repools every active instance in the registry.
func (p *Pool[T, P]) ResetAll() {
	if p == nil {
		return
	}
	for _, item := range p.all {
		if item.InPool() {
			continue
		}
		p.Repool(item)
	}
}

// Each visits every instance in registry order, active or not.
func (p *Pool[T, P]) Each(fn func(item *Pooled[T])) {
	if p == nil || fn == nil {
		return
	}
	for _, item := range p.all {
		fn(item)
	}
}

// EachActive visits the active instances in registry order. fn may repool
// the instance it is given.
func (p *Pool[T, P]) EachActive(fn func(item *Pooled[T])) {
	if p == nil || fn == nil {
		return
	}
	for _, item := range p.all {
		if item.InPool() {
			continue
		}
		fn(item)
	}
}

// Len is the number of instances ever created.
func (p *Pool[T, P]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.all)
}

// FreeCount is the size of the free list.
func (p *Pool[T, P]) FreeCount() int {
	if p == nil {
		return 0
	}
	return len(p.free)
}

// ActiveCount is the number of instances currently handed out.
func (p *Pool[T, P]) ActiveCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, item := range p.all {
		if !item.inPool {
			n++
		}
	}
	return n
}

func (p *Pool[T, P]) create() *Pooled[T] {
	item := &Pooled[T]{Value: p.newFn(), inPool: true, index: len(p.all)}
	item.Value.Reset()
	p.all = append(p.all, item)
	return item
}
