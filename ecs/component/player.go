package component

type Player struct {
	MaxSpeed    float64
	Accel       float64
	ArenaRadius float64
	SpawnX      float64
	SpawnY      float64

	// VelX and VelY are the smoothed input velocity before time scaling.
	VelX       float64
	VelY       float64
	SmoothVelX float64
	SmoothVelY float64

	Facing       float64
	ForwardSpeed float64
	Dead         bool
}

// ResetMotion zeroes every velocity term.
func (p *Player) ResetMotion() {
	p.VelX, p.VelY = 0, 0
	p.SmoothVelX, p.SmoothVelY = 0, 0
	p.ForwardSpeed = 0
}

var PlayerComponent = NewComponent[Player]()
