package assets

import (
	"math"
	"testing"
)

func TestBankKnowsEveryClip(t *testing.T) {
	b := NewBank(1)
	for _, name := range ClipNames() {
		if !b.Has(name) {
			t.Fatalf("missing clip %s", name)
		}
		pcm, err := b.PCM(name, 1)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(pcm) == 0 || len(pcm)%4 != 0 {
			t.Fatalf("%s: expected 16-bit stereo frames, got %d bytes", name, len(pcm))
		}
	}
	if _, err := b.PCM("missing", 1); err == nil {
		t.Fatalf("expected error for unknown clip")
	}
}

func TestEmbeddedImpactDecodes(t *testing.T) {
	data, err := LoadFile(clipPath(ClipImpact))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	samples, err := decodeWAV(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(samples) < SampleRate/20 {
		t.Fatalf("impact clip too short: %d samples", len(samples))
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak < 0.1 {
		t.Fatalf("impact clip is silent, peak %v", peak)
	}
}

func TestPitchChangesLength(t *testing.T) {
	b := NewBank(1)
	cases := []struct {
		name  string
		pitch float64
		ratio float64
	}{
		{"low", 0.6, 1 / 0.6},
		{"unit", 1, 1},
		{"high", 1.4, 1 / 1.4},
	}
	base, _ := b.PCM(ClipShoot, 1)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pcm, err := b.PCM(ClipShoot, c.pitch)
			if err != nil {
				t.Fatal(err)
			}
			got := float64(len(pcm)) / float64(len(base))
			if math.Abs(got-c.ratio) > 0.01 {
				t.Fatalf("expected length ratio %v, got %v", c.ratio, got)
			}
		})
	}
}

func TestPitchIsCached(t *testing.T) {
	b := NewBank(1)
	a, _ := b.PCM(ClipShoot, 1.2345)
	c, _ := b.PCM(ClipShoot, 1.2301)
	if &a[0] != &c[0] {
		t.Fatalf("pitches in the same hundredth should share a buffer")
	}
}

func TestLoopIsWholeCycles(t *testing.T) {
	samples := loop(110, 2)
	if math.Abs(samples[0]) > 1e-9 {
		t.Fatalf("loop should start at a zero crossing")
	}
	cycles := float64(len(samples)) * 110 / SampleRate
	if math.Abs(cycles-math.Round(cycles)) > 0.01 {
		t.Fatalf("loop is not a whole number of cycles: %v", cycles)
	}
}

func TestResampleEdges(t *testing.T) {
	if resample(nil, 2) != nil {
		t.Fatalf("empty input should stay empty")
	}
	src := []float64{0, 1, 2, 3}
	out := resample(src, 2)
	if len(out) != 2 || out[0] != 0 || out[1] != 2 {
		t.Fatalf("unexpected resample %v", out)
	}
}
