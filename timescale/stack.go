// Package timescale blends independent float contributions (slow fields,
// speed fields, game-over freeze) into one scalar per entity.
package timescale

// Combine reduces two weights into one.
type Combine func(a, b float64) float64

// RoughAverage is the pairwise average used for entity time scales. It is
// not associative: with more than one live contribution the result depends
// on fold order, which Stack pins to insertion order.
func RoughAverage(a, b float64) float64 {
	return (a + b) * 0.5
}

// Min, Max and Product are order-independent alternatives to RoughAverage.
func Min(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func Max(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}

func Product(a, b float64) float64 {
	return a * b
}

// Stack maps owner keys to weights. Value is always
// fold(combine, default, weights) in the order owners were pushed.
type Stack[K comparable] struct {
	combine  Combine
	def      float64
	weights  map[K]float64
	order    []K
	onChange []func(float64)
}

// New creates an empty stack. A nil combine falls back to RoughAverage.
func New[K comparable](combine Combine, def float64) *Stack[K] {
	if combine == nil {
		combine = RoughAverage
	}
	return &Stack[K]{
		combine: combine,
		def:     def,
		weights: make(map[K]float64),
	}
}

// Default returns the seed value used when folding.
func (s *Stack[K]) Default() float64 {
	if s == nil {
		return 1
	}
	return s.def
}

// Value recomputes the blended scalar.
func (s *Stack[K]) Value() float64 {
	if s == nil {
		return 1
	}
	result := s.def
	for _, k := range s.order {
		result = s.combine(result, s.weights[k])
	}
	return result
}

// Len returns the number of live contributions.
func (s *Stack[K]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Has reports whether owner currently contributes.
func (s *Stack[K]) Has(owner K) bool {
	if s == nil {
		return false
	}
	_, ok := s.weights[owner]
	return ok
}

// Weight returns the stored contribution for owner.
func (s *Stack[K]) Weight(owner K) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.weights[owner]
	return v, ok
}

// OnChange registers fn to receive the recomputed value after every
// successful mutation.
func (s *Stack[K]) OnChange(fn func(float64)) {
	if s == nil || fn == nil {
		return
	}
	s.onChange = append(s.onChange, fn)
}

// Push registers value under owner. An existing owner keeps its value;
// use Update to change it.
func (s *Stack[K]) Push(owner K, value float64) {
	if s == nil {
		return
	}
	if _, ok := s.weights[owner]; ok {
		return
	}
	s.weights[owner] = value
	s.order = append(s.order, owner)
	s.notify()
}

// Update overwrites the value of an existing owner.
func (s *Stack[K]) Update(owner K, value float64) {
	if s == nil {
		return
	}
	if _, ok := s.weights[owner]; !ok {
		return
	}
	s.weights[owner] = value
	s.notify()
}

// Pop removes owner. Popping an absent owner does nothing, so a trigger
// that reports exit twice is harmless.
func (s *Stack[K]) Pop(owner K) {
	if s == nil {
		return
	}
	if _, ok := s.weights[owner]; !ok {
		return
	}
	delete(s.weights, owner)
	for i, k := range s.order {
		if k == owner {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notify()
}

// Clear drops every contribution and always notifies.
func (s *Stack[K]) Clear() {
	if s == nil {
		return
	}
	clear(s.weights)
	s.order = s.order[:0]
	s.notify()
}

// Owners returns the live owners in fold order.
func (s *Stack[K]) Owners() []K {
	if s == nil {
		return nil
	}
	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Stack[K]) notify() {
	if len(s.onChange) == 0 {
		return
	}
	v := s.Value()
	for _, fn := range s.onChange {
		fn(v)
	}
}
