package component

import "github.com/milk9111/unstable/timescale"

// TimeScale is the local time multiplier of a simulated entity. Fields,
// the director and pools push and pop effectors keyed by their entity.
type TimeScale struct {
	Stack *timescale.Stack[Owner]
}

// NewTimeScale returns a neutral rough-average stack.
func NewTimeScale() *TimeScale {
	return &TimeScale{Stack: timescale.New[Owner](timescale.RoughAverage, 1)}
}

// Value is the current multiplier; a missing stack reads as 1.
func (t *TimeScale) Value() float64 {
	if t == nil {
		return 1
	}
	return t.Stack.Value()
}

var TimeScaleComponent = NewComponent[TimeScale]()
