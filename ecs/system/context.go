package system

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/scores"
)

// Clock supplies frame and fixed-step durations in seconds.
type Clock interface {
	DeltaTime() float64
	FixedDeltaTime() float64
}

// FixedClock is a Clock with constant steps.
type FixedClock struct {
	Frame float64
	Fixed float64
}

func (c FixedClock) DeltaTime() float64      { return c.Frame }
func (c FixedClock) FixedDeltaTime() float64 { return c.Fixed }

// Voice is a started one-shot sound.
type Voice = component.Voice

// SoundPlayer starts one-shots at a world position.
type SoundPlayer interface {
	PlayOneShot(clip string, x, y, volume, pitch float64) Voice
}

// Viewport answers whether a world point is outside the camera view.
type Viewport interface {
	IsOffScreen(pos mgl64.Vec2) bool
}

// ScoreBoard persists finished runs.
type ScoreBoard interface {
	RecordRun(ctx context.Context, seed uint64, duration float64, kills int) (scores.Run, error)
	Best(ctx context.Context) (float64, error)
	ClearBest(ctx context.Context) error
}

// Listener follows the point one-shots are attenuated around.
type Listener interface {
	SetListener(x, y float64)
}
