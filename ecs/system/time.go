package system

import (
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/sequence"
)

// timeScale is the local multiplier of e; entities without a stack run at 1.
func timeScale(w *ecs.World, e ecs.Entity) float64 {
	ts, _ := ecs.Get(w, e, component.TimeScaleComponent.Kind())
	return ts.Value()
}

// scaleOf reads e's multiplier on every call so sequences follow effector
// changes mid-flight.
func scaleOf(w *ecs.World, e ecs.Entity) sequence.Scale {
	return func() float64 { return timeScale(w, e) }
}

func gameState(w *ecs.World) (*component.GameState, bool) {
	e, ok := w.First(component.GameStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.GameStateComponent.Kind())
}

// PlayerTimeScale is the player's multiplier as sampled this frame.
func PlayerTimeScale(w *ecs.World) float64 {
	if gs, ok := gameState(w); ok {
		return gs.PlayerScale
	}
	return 1
}

// GameTimeScaleOffset is how far the player is from normal time: 0 at
// normal speed, positive when slowed, negative when sped up.
func GameTimeScaleOffset(w *ecs.World) float64 {
	if gs, ok := gameState(w); ok {
		return gs.TimeOffset
	}
	return 0
}

func playing(w *ecs.World) bool {
	gs, ok := gameState(w)
	return ok && gs.Phase == component.PhaseGame
}

func ownerOf(e ecs.Entity) component.Owner {
	return component.Owner(e)
}

func parked(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.ParkedComponent.Kind())
}
