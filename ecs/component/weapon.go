package component

import "image/color"

// WeaponStage is one tier of the gun, unlocked by kills.
type WeaponStage struct {
	RPM             float64
	InitialSpeed    float64
	Damage          int
	KillRequirement int
	Color           color.RGBA
}

// Interval is the scaled time between shots.
func (s WeaponStage) Interval() float64 {
	if s.RPM <= 0 {
		return 1
	}
	return 1 / (s.RPM / 60)
}

type Weapon struct {
	Stages []WeaponStage
	Stage  int
	// Spread is the maximum deviation from the aim direction in degrees.
	Spread        float64
	PitchVariance float64
	ShotVolume    float64
	MuzzleOffset  float64

	// ScaledTime accumulates the owner's scaled seconds; shot timing is
	// measured on it so slowed players also shoot slower.
	ScaledTime float64
	LastShot   float64
	NextShot   float64
}

// Current returns the active stage, or the zero stage for an empty table.
func (w *Weapon) Current() WeaponStage {
	if w == nil || len(w.Stages) == 0 {
		return WeaponStage{}
	}
	if w.Stage < 0 || w.Stage >= len(w.Stages) {
		return w.Stages[0]
	}
	return w.Stages[w.Stage]
}

var WeaponComponent = NewComponent[Weapon]()

// StageFor is the highest stage whose kill requirement is below kills, or
// stage 0 when none is.
func (w *Weapon) StageFor(kills int) int {
	if w == nil {
		return 0
	}
	for i := len(w.Stages) - 1; i >= 0; i-- {
		if w.Stages[i].KillRequirement < kills {
			return i
		}
	}
	return 0
}

// CanShoot reports whether the shot interval has passed in scaled time.
func (w *Weapon) CanShoot() bool {
	return w != nil && w.LastShot+w.NextShot <= w.ScaledTime
}
