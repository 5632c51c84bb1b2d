package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. The game keeps one for the
// variable-rate frame phase and one for the fixed-rate physics phase.
type Scheduler struct {
	name    string
	systems []System
	flush   bool
}

func NewScheduler(name string, systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{name: name, systems: copied}
}

// FlushEvents makes Update clear the world event queue after the last system.
func (s *Scheduler) FlushEvents(on bool) *Scheduler {
	if s != nil {
		s.flush = on
	}
	return s
}

func (s *Scheduler) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	if s.flush {
		w.events.Flush()
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
