package timescale

import (
	"math"
	"math/rand/v2"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStackEmptyReturnsDefault(t *testing.T) {
	cases := []struct {
		name string
		def  float64
	}{
		{"one", 1},
		{"zero", 0},
		{"negative", -2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New[string](RoughAverage, c.def)
			if got := s.Value(); got != c.def {
				t.Fatalf("expected %v, got %v", c.def, got)
			}
		})
	}
}

func TestStackRoughAverageFoldOrder(t *testing.T) {
	s := New[string](RoughAverage, 1)
	s.Push("A", 0)
	s.Push("B", 2)
	if got := s.Value(); !approx(got, 1.25) {
		t.Fatalf("expected ((1+0)/2+2)/2 = 1.25, got %v", got)
	}
	swapped := New[string](RoughAverage, 1)
	swapped.Push("B", 2)
	swapped.Push("A", 0)
	if got := swapped.Value(); !approx(got, 0.75) {
		t.Fatalf("expected ((1+2)/2+0)/2 = 0.75, got %v", got)
	}

	// rough average is not associative: push order changes the result
	fwd := New[string](RoughAverage, 1)
	fwd.Push("A", 0)
	fwd.Push("B", 4)
	rev := New[string](RoughAverage, 1)
	rev.Push("B", 4)
	rev.Push("A", 0)
	if got := fwd.Value(); !approx(got, 2.25) {
		t.Fatalf("expected 2.25, got %v", got)
	}
	if got := rev.Value(); !approx(got, 1.25) {
		t.Fatalf("expected 1.25, got %v", got)
	}

	// popping the first owner keeps the remaining order intact
	fwd.Pop("A")
	if got := fwd.Value(); !approx(got, 2.5) {
		t.Fatalf("expected 2.5 after pop, got %v", got)
	}
}

func TestStackPushKeepsFirstValue(t *testing.T) {
	s := New[int](RoughAverage, 1)
	s.Push(1, 0)
	s.Push(1, 2)
	if v, _ := s.Weight(1); v != 0 {
		t.Fatalf("push on existing key must not change value, got %v", v)
	}
	s.Update(1, 2)
	if v, _ := s.Weight(1); v != 2 {
		t.Fatalf("update should change value, got %v", v)
	}
}

func TestStackPopAbsentIsSilent(t *testing.T) {
	s := New[string](RoughAverage, 1)
	s.Push("field", 0)
	before := s.Value()
	calls := 0
	s.OnChange(func(float64) { calls++ })

	s.Pop("missing")
	s.Update("missing", 4)

	if s.Value() != before {
		t.Fatalf("value changed after absent pop/update")
	}
	if calls != 0 {
		t.Fatalf("absent pop/update should not notify, got %d calls", calls)
	}

	s.Pop("field")
	s.Pop("field")
	if calls != 1 {
		t.Fatalf("expected one notification for the real pop, got %d", calls)
	}
	if s.Value() != 1 {
		t.Fatalf("expected default after pop, got %v", s.Value())
	}
}

func TestStackClearAlwaysNotifies(t *testing.T) {
	s := New[string](RoughAverage, 1)
	var last float64 = -1
	calls := 0
	s.OnChange(func(v float64) {
		calls++
		last = v
	})

	s.Clear()
	if calls != 1 || last != 1 {
		t.Fatalf("clear on empty stack should notify default, calls=%d last=%v", calls, last)
	}

	s.Push("a", 0)
	s.Push("b", 2)
	s.Clear()
	if s.Value() != 1 || s.Len() != 0 {
		t.Fatalf("expected empty stack at default, got len=%d value=%v", s.Len(), s.Value())
	}
	if last != 1 {
		t.Fatalf("expected notification with default, got %v", last)
	}
}

func TestStackNotifiesRecomputedValue(t *testing.T) {
	s := New[string](RoughAverage, 1)
	var seen []float64
	s.OnChange(func(v float64) { seen = append(seen, v) })

	s.Push("slow", 0)
	s.Update("slow", 2)
	s.Pop("slow")

	want := []float64{0.5, 1.5, 1}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %v", len(want), seen)
	}
	for i := range want {
		if !approx(seen[i], want[i]) {
			t.Fatalf("notification %d: expected %v, got %v", i, want[i], seen[i])
		}
	}
}

func TestStackMatchesFoldFromScratch(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	s := New[int](RoughAverage, 1)

	type entry struct {
		key int
		val float64
	}
	var model []entry

	find := func(k int) int {
		for i, e := range model {
			if e.key == k {
				return i
			}
		}
		return -1
	}

	for step := 0; step < 2000; step++ {
		k := rng.IntN(6)
		v := float64(rng.IntN(5)) * 0.5
		switch rng.IntN(3) {
		case 0:
			s.Push(k, v)
			if find(k) < 0 {
				model = append(model, entry{k, v})
			}
		case 1:
			s.Update(k, v)
			if i := find(k); i >= 0 {
				model[i].val = v
			}
		case 2:
			s.Pop(k)
			if i := find(k); i >= 0 {
				model = append(model[:i], model[i+1:]...)
			}
		}

		want := 1.0
		for _, e := range model {
			want = RoughAverage(want, e.val)
		}
		if got := s.Value(); !approx(got, want) {
			t.Fatalf("step %d: expected %v, got %v", step, want, got)
		}
	}
}

func TestOrderIndependentCombines(t *testing.T) {
	cases := []struct {
		name    string
		combine Combine
		def     float64
		want    float64
	}{
		{"min", Min, 1, 0},
		{"max", Max, 1, 2},
		{"product", Product, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := New[string](c.combine, c.def)
			a.Push("x", 0)
			a.Push("y", 2)
			b := New[string](c.combine, c.def)
			b.Push("y", 2)
			b.Push("x", 0)
			if a.Value() != c.want || b.Value() != c.want {
				t.Fatalf("expected %v both ways, got %v and %v", c.want, a.Value(), b.Value())
			}
		})
	}
}

func TestNilStackIsNeutral(t *testing.T) {
	var s *Stack[string]
	s.Push("a", 0)
	s.Pop("a")
	s.Clear()
	if s.Value() != 1 || s.Len() != 0 {
		t.Fatalf("nil stack should read as neutral")
	}
}
