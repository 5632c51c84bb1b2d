package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Bank holds every one-shot as mono samples and bakes pitched 16-bit
// stereo PCM on demand. Clips found as wav files (on disk or embedded) win
// over the synthesized recipe of the same name.
type Bank struct {
	clips map[string][]float64
	cache map[pitchKey][]byte
}

type pitchKey struct {
	clip  string
	pitch int
}

func NewBank(seed uint64) *Bank {
	rng := rand.New(rand.NewPCG(seed, 0x5eed))
	b := &Bank{
		clips: make(map[string][]float64, len(recipes)),
		cache: make(map[pitchKey][]byte),
	}
	for name, r := range recipes {
		data, err := LoadFile(clipPath(name))
		if err == nil {
			samples, err := decodeWAV(data)
			if err == nil {
				b.clips[name] = samples
				continue
			}
			log.Printf("assets: decode %s: %v", clipPath(name), err)
		}
		b.clips[name] = r.render(rng)
	}
	return b
}

// Has reports whether name is a known clip.
func (b *Bank) Has(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.clips[name]
	return ok
}

// Duration is the unpitched length of a clip in seconds.
func (b *Bank) Duration(name string) float64 {
	if b == nil {
		return 0
	}
	return float64(len(b.clips[name])) / SampleRate
}

// PCM returns the clip resampled to pitch. Pitch is quantized to hundredths
// and the result cached.
func (b *Bank) PCM(name string, pitch float64) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("assets: nil bank")
	}
	samples, ok := b.clips[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown clip %q", name)
	}
	if pitch <= 0 {
		pitch = 1
	}
	key := pitchKey{clip: name, pitch: int(math.Round(pitch * 100))}
	if pcm, ok := b.cache[key]; ok {
		return pcm, nil
	}
	pcm := encodeStereo16(resample(samples, float64(key.pitch)/100))
	b.cache[key] = pcm
	return pcm, nil
}

// Loop returns a seamless drone at freq as 16-bit stereo PCM.
func (b *Bank) Loop(freq, seconds float64) []byte {
	return encodeStereo16(loop(freq, seconds))
}

func decodeWAV(data []byte) ([]float64, error) {
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	raw, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	frames := len(raw) / 4
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		out[i] = (float64(l) + float64(r)) / 2 / math.MaxInt16
	}
	return out, nil
}

// resample plays src back pitch times faster using linear interpolation.
func resample(src []float64, pitch float64) []float64 {
	if len(src) == 0 {
		return nil
	}
	if pitch == 1 {
		return src
	}
	n := int(float64(len(src)) / pitch)
	out := make([]float64, n)
	last := len(src) - 1
	for i := range out {
		pos := float64(i) * pitch
		j := int(pos)
		if j >= last {
			out[i] = src[last]
			continue
		}
		frac := pos - float64(j)
		out[i] = src[j]*(1-frac) + src[j+1]*frac
	}
	return out
}

func encodeStereo16(mono []float64) []byte {
	out := make([]byte, len(mono)*4)
	for i, v := range mono {
		v = math.Max(-1, math.Min(1, v))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
