package component

// CollisionCategory tags a shape so the physics system can pick contact
// handlers and filters for it.
type CollisionCategory uint32

const (
	CategoryPlayer CollisionCategory = 1 << iota
	CategoryEnemy
	CategorySpawner
	CategoryBullet
	CategoryField
)

// CollisionLayer declares a collision category and the categories it
// collides with. A zero Mask collides with everything.
type CollisionLayer struct {
	Category CollisionCategory
	Mask     CollisionCategory
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
