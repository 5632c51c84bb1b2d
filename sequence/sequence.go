// Package sequence runs multi-frame behaviour (animate in, dissolve, timed
// spawning) as explicit step functions driven once per frame.
package sequence

// Status is returned by every step.
type Status int

const (
	Continue Status = iota
	Done
)

// Sequence advances by dt seconds of frame time and reports whether it has
// finished. A finished sequence is never stepped again.
type Sequence interface {
	Step(dt float64) Status
}

// Func adapts a plain function to Sequence.
type Func func(dt float64) Status

func (f Func) Step(dt float64) Status {
	if f == nil {
		return Done
	}
	return f(dt)
}

// Scale reads the owner's current time scale. It is called every step so
// effector changes mid-sequence take effect immediately.
type Scale func() float64

func unit() float64 { return 1 }

const progressEpsilon = 1e-9

// Timed interpolates progress from 0 to 1 over duration scaled seconds.
type Timed struct {
	Duration float64
	Scale    Scale
	OnStep   func(t float64)
	OnDone   func()

	progress float64
	done     bool
}

// NewTimed builds a Timed sequence. onStep receives progress in [0, 1].
func NewTimed(duration float64, scale Scale, onStep func(t float64), onDone func()) *Timed {
	return &Timed{Duration: duration, Scale: scale, OnStep: onStep, OnDone: onDone}
}

// Progress is the current interpolation value.
func (s *Timed) Progress() float64 {
	if s == nil {
		return 0
	}
	return s.progress
}

func (s *Timed) Step(dt float64) Status {
	if s == nil || s.done {
		return Done
	}
	scale := s.Scale
	if scale == nil {
		scale = unit
	}
	if s.Duration <= 0 {
		s.progress = 1
	} else {
		s.progress += dt * scale() / s.Duration
	}
	if s.progress > 1-progressEpsilon {
		s.progress = 1
	}
	if s.OnStep != nil {
		s.OnStep(s.progress)
	}
	if s.progress < 1 {
		return Continue
	}
	s.done = true
	if s.OnDone != nil {
		s.OnDone()
	}
	return Done
}

// Wait finishes after duration scaled seconds.
func Wait(duration float64, scale Scale) Sequence {
	return NewTimed(duration, scale, nil, nil)
}

// Do runs fn once and finishes on the same step.
func Do(fn func()) Sequence {
	return Func(func(float64) Status {
		if fn != nil {
			fn()
		}
		return Done
	})
}

// Chain runs sequences back to back. The next sequence is entered on the
// same frame with dt 0; frame time is never carried over.
type Chain struct {
	steps []Sequence
	index int
}

// NewChain builds a chain. nil entries are skipped.
func NewChain(steps ...Sequence) *Chain {
	c := &Chain{}
	for _, s := range steps {
		if s != nil {
			c.steps = append(c.steps, s)
		}
	}
	return c
}

// Append adds a step to the end of the chain.
func (c *Chain) Append(s Sequence) {
	if c == nil || s == nil {
		return
	}
	c.steps = append(c.steps, s)
}

func (c *Chain) Step(dt float64) Status {
	if c == nil {
		return Done
	}
	for c.index < len(c.steps) {
		if c.steps[c.index].Step(dt) == Continue {
			return Continue
		}
		c.index++
		// time was consumed by the step that just finished
		dt = 0
	}
	return Done
}

// Repeat builds a fresh sequence from next and runs it, forever or count
// times when count > 0.
type Repeat struct {
	next    func(iteration int) Sequence
	count   int
	current Sequence
	iter    int
}

func NewRepeat(count int, next func(iteration int) Sequence) *Repeat {
	return &Repeat{next: next, count: count}
}

func (r *Repeat) Step(dt float64) Status {
	if r == nil || r.next == nil {
		return Done
	}
	for {
		if r.count > 0 && r.iter >= r.count {
			return Done
		}
		if r.current == nil {
			r.current = r.next(r.iter)
			if r.current == nil {
				return Done
			}
		}
		if r.current.Step(dt) == Continue {
			return Continue
		}
		r.current = nil
		r.iter++
		dt = 0
		if r.count <= 0 {
			// an infinite loop of instant steps would never yield
			return Continue
		}
	}
}
