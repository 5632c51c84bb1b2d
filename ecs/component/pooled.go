package component

// Pooled marks an entity owned by an object pool.
type Pooled struct {
	Pool string
}

var PooledComponent = NewComponent[Pooled]()

// Parked is present while a pooled entity sits on its free list. Systems
// skip parked entities and the physics system keeps them out of the space.
type Parked struct{}

var ParkedComponent = NewComponent[Parked]()
