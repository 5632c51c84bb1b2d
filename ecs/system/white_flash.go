package system

import (
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

const (
	flashDuration = 0.24
	flashInterval = 0.06
)

// WhiteFlashSystem toggles hit flashes and drops them once they run out.
type WhiteFlashSystem struct {
	clock Clock
}

func NewWhiteFlashSystem(clock Clock) *WhiteFlashSystem {
	return &WhiteFlashSystem{clock: clock}
}

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := s.clock.DeltaTime()

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		if wf.Interval <= 0 {
			wf.Interval = flashInterval
		}
		step := dt * timeScale(w, e)
		wf.Timer += step
		wf.Remaining -= step
		for wf.Timer >= wf.Interval {
			wf.Timer -= wf.Interval
			wf.On = !wf.On
		}
		if wf.Remaining <= 0 {
			_ = ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
		}
	})
}

// flash restarts the hit flash on e.
func flash(w *ecs.World, e ecs.Entity) {
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Remaining: flashDuration,
		Interval:  flashInterval,
		On:        true,
	})
}

func flashing(w *ecs.World, e ecs.Entity) bool {
	wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind())
	return ok && wf.On
}
