package component

// WhiteFlash renders a shape full white while On. Remaining and Interval are
// seconds in the entity's own time, so a slowed spawner flickers slower.
type WhiteFlash struct {
	Remaining float64
	Interval  float64
	Timer     float64
	On        bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
