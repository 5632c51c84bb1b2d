package assets

import (
	"math"
	"math/rand/v2"
)

// SampleRate is shared by the audio context and every synthesized clip.
const SampleRate = 44100

// Clip names used by the game.
const (
	ClipShoot        = "shoot"
	ClipImpact       = "impact"
	ClipEnemySpawn   = "enemy_spawn"
	ClipEnemyDeath   = "enemy_death"
	ClipSpawnerRise  = "spawner_rise"
	ClipSpawnerDeath = "spawner_death"
	ClipPlayerDeath  = "player_death"
)

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
)

// recipe describes a one-shot as a frequency sweep plus optional noise,
// shaped by an exponential decay.
type recipe struct {
	wave     waveform
	from, to float64
	seconds  float64
	noise    float64
	decay    float64
	gain     float64
}

var recipes = map[string]recipe{
	ClipShoot:        {wave: waveSquare, from: 880, to: 440, seconds: 0.08, decay: 30, gain: 0.5},
	ClipImpact:       {wave: waveSine, from: 180, to: 120, seconds: 0.07, noise: 0.7, decay: 60, gain: 0.8},
	ClipEnemySpawn:   {wave: waveSine, from: 660, to: 990, seconds: 0.1, decay: 18, gain: 0.5},
	ClipEnemyDeath:   {wave: waveSaw, from: 300, to: 80, seconds: 0.35, noise: 0.3, decay: 9, gain: 0.6},
	ClipSpawnerRise:  {wave: waveSaw, from: 120, to: 480, seconds: 0.45, decay: 2, gain: 0.4},
	ClipSpawnerDeath: {wave: waveSaw, from: 200, to: 40, seconds: 0.8, noise: 0.4, decay: 4, gain: 0.7},
	ClipPlayerDeath:  {wave: waveSquare, from: 440, to: 55, seconds: 1.2, noise: 0.2, decay: 2.5, gain: 0.6},
}

// ClipNames lists every clip the bank can produce.
func ClipNames() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	return names
}

func (r recipe) render(rng *rand.Rand) []float64 {
	n := int(r.seconds * SampleRate)
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / SampleRate
		k := t / r.seconds
		freq := r.from + (r.to-r.from)*k
		phase += freq / SampleRate
		phase -= math.Floor(phase)

		var v float64
		switch r.wave {
		case waveSquare:
			v = 1
			if phase > 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2*phase - 1
		default:
			v = math.Sin(2 * math.Pi * phase)
		}
		if r.noise > 0 {
			v = v*(1-r.noise) + (rng.Float64()*2-1)*r.noise
		}
		out[i] = v * math.Exp(-t*r.decay) * r.gain
	}
	fadeEdges(out)
	return out
}

// loop renders a seamless drone. The length is rounded to whole cycles of
// the fundamental so the sample can repeat without a click.
func loop(freq, seconds float64) []float64 {
	if freq <= 0 {
		freq = 110
	}
	cycles := math.Max(1, math.Round(seconds*freq))
	n := int(math.Round(cycles * SampleRate / freq))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		v := math.Sin(2*math.Pi*cycles*t)*0.6 + math.Sin(2*math.Pi*cycles*2*t)*0.25
		out[i] = v * 0.5
	}
	return out
}

func fadeEdges(s []float64) {
	const edge = 64
	for i := 0; i < edge && i < len(s); i++ {
		g := float64(i) / edge
		s[i] *= g
		s[len(s)-1-i] *= g
	}
}
