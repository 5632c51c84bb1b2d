package spawnring

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNoLayers   = errors.New("spawnring: no layers configured")
	ErrEmptyLayer = errors.New("spawnring: layer has no slots")
	ErrBadRadius  = errors.New("spawnring: layer radius must be positive")
)

// Visibility is supplied by the camera: spawn origins outside the view are
// preferred so units never pop in on screen.
type Visibility interface {
	IsOffScreen(pos mgl64.Vec2) bool
}

// VisibilityFunc adapts a function to Visibility.
type VisibilityFunc func(pos mgl64.Vec2) bool

func (f VisibilityFunc) IsOffScreen(pos mgl64.Vec2) bool { return f(pos) }

// LayerConfig describes one ring.
type LayerConfig struct {
	Radius float64
	Slots  int
}

// Reservation pairs a birth slot on the outer ring with a destination
// slot. Both are filled when the reservation is returned.
type Reservation struct {
	SpawnLayer       int
	SpawnSlot        int
	DestinationLayer int
	DestinationSlot  int
}

// NoReservation is returned when nothing could be reserved.
var NoReservation = Reservation{SpawnLayer: NoSlot, SpawnSlot: NoSlot, DestinationLayer: NoSlot, DestinationSlot: NoSlot}

// Valid reports whether r holds real slots.
func (r Reservation) Valid() bool {
	return r.SpawnSlot != NoSlot && r.DestinationSlot != NoSlot
}

// Scheduler owns the rings, innermost first. It is not safe for concurrent
// use; the game loop is its only caller.
type Scheduler struct {
	layers     []*Layer
	center     mgl64.Vec2
	visibility Visibility
	rng        *rand.Rand
}

// NewScheduler validates layers and builds the rings. layers must be sorted
// innermost first.
func NewScheduler(layers []LayerConfig, center mgl64.Vec2, vis Visibility, rng *rand.Rand) (*Scheduler, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	s := &Scheduler{center: center, visibility: vis, rng: rng}
	for i, cfg := range layers {
		if cfg.Slots <= 0 {
			return nil, fmt.Errorf("%w: layer %d", ErrEmptyLayer, i)
		}
		if cfg.Radius <= 0 {
			return nil, fmt.Errorf("%w: layer %d", ErrBadRadius, i)
		}
		s.layers = append(s.layers, NewLayer(cfg.Radius, cfg.Slots))
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(0, 0))
	}
	return s, nil
}

// Layers returns the rings, innermost first.
func (s *Scheduler) Layers() []*Layer {
	if s == nil {
		return nil
	}
	return s.layers
}

// Layer returns ring i or nil.
func (s *Scheduler) Layer(i int) *Layer {
	if s == nil || i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Center is the point the rings are centred on.
func (s *Scheduler) Center() mgl64.Vec2 {
	if s == nil {
		return mgl64.Vec2{}
	}
	return s.center
}

// SetVisibility swaps the off-screen test, e.g. when the camera changes.
func (s *Scheduler) SetVisibility(vis Visibility) {
	if s == nil {
		return
	}
	s.visibility = vis
}

// SlotPosition returns the world position of slot on ring layer.
func (s *Scheduler) SlotPosition(layer, slot int) mgl64.Vec2 {
	l := s.Layer(layer)
	if l == nil {
		return s.Center()
	}
	return l.SlotPosition(slot, s.center)
}

// IsSlotFree reports whether slot on ring layer is free.
func (s *Scheduler) IsSlotFree(layer, slot int) bool {
	return s.Layer(layer).IsSlotFree(slot)
}

// FindSpawnReservation picks a destination and a birth slot and fills both.
// It returns false, and fills nothing, when either cannot be found.
func (s *Scheduler) FindSpawnReservation() (Reservation, bool) {
	if s == nil || len(s.layers) == 0 {
		return NoReservation, false
	}

	destLayer, destSlot := s.findDestination()
	if destSlot == NoSlot {
		return NoReservation, false
	}

	spawnLayer := len(s.layers) - 1
	exclude := NoSlot
	if spawnLayer == destLayer {
		exclude = destSlot
	}
	spawnSlot := s.findSpawn(spawnLayer, exclude)
	if spawnSlot == NoSlot {
		return NoReservation, false
	}

	s.layers[destLayer].SetSlotFilled(destSlot)
	s.layers[spawnLayer].SetSlotFilled(spawnSlot)

	return Reservation{
		SpawnLayer:       spawnLayer,
		SpawnSlot:        spawnSlot,
		DestinationLayer: destLayer,
		DestinationSlot:  destSlot,
	}, true
}

// findDestination is first-fit over layers with a random probe start
// inside the chosen layer.
func (s *Scheduler) findDestination() (int, int) {
	for li, l := range s.layers {
		if l.IsFull() {
			continue
		}
		n := l.Slots()
		start := s.rng.IntN(n)
		for probe := 0; probe < n; probe++ {
			slot := (start + probe) % n
			if l.IsSlotFree(slot) {
				return li, slot
			}
		}
		return li, NoSlot
	}
	return NoSlot, NoSlot
}

// findSpawn takes the first free off-screen slot, or else the last free slot
// scanned.
func (s *Scheduler) findSpawn(layer, exclude int) int {
	l := s.layers[layer]
	candidate := NoSlot
	for slot := 0; slot < l.Slots(); slot++ {
		if slot == exclude || !l.IsSlotFree(slot) {
			continue
		}
		candidate = slot
		if s.visibility != nil && s.visibility.IsOffScreen(l.SlotPosition(slot, s.center)) {
			break
		}
	}
	return candidate
}

// ClearSpawnSlot frees the birth slot of r.
func (s *Scheduler) ClearSpawnSlot(r Reservation) {
	s.Layer(r.SpawnLayer).SetSlotClear(r.SpawnSlot)
}

// ClearDestinationSlot frees the destination slot of r.
func (s *Scheduler) ClearDestinationSlot(r Reservation) {
	s.Layer(r.DestinationLayer).SetSlotClear(r.DestinationSlot)
}

// Reset frees every slot on every ring.
func (s *Scheduler) Reset() {
	if s == nil {
		return
	}
	for _, l := range s.layers {
		l.Clear()
	}
}

// FilledCount is the number of occupied slots across all rings.
func (s *Scheduler) FilledCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, l := range s.layers {
		n += l.Filled()
	}
	return n
}
