package component

import (
	"image/color"

	"github.com/milk9111/unstable/sequence"
)

type VFXKind int

const (
	VFXImpact VFXKind = iota
	VFXDeath
	VFXMuzzle
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
}

// VFX is a pooled particle burst simulated at the entity's time scale.
type VFX struct {
	Kind      VFXKind
	Color     color.RGBA
	Particles []Particle
	Progress  float64
	Runner    sequence.Runner
	Finished  bool
}

var VFXComponent = NewComponent[VFX]()
