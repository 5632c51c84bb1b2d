package component

import "image/color"

type Bullet struct {
	Speed       float64
	Damage      int
	DirX        float64
	DirY        float64
	Age         float64
	Lifetime    float64
	MaxDistance float64
	Color       color.RGBA
	// Spent is set on first contact; the bullet system repools it.
	Spent bool
}

var BulletComponent = NewComponent[Bullet]()
