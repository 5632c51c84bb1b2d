package assets

import (
	"bytes"
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/unstable/ecs/component"
)

// Mixer starts one-shot voices and music loops on the shared ebiten audio
// context. Voices are attenuated by distance from the listener.
type Mixer struct {
	ctx  *audio.Context
	bank *Bank

	listenerX, listenerY float64
	// Falloff is the distance at which a one-shot reaches half volume.
	Falloff float64
}

func NewMixer(bank *Bank) *Mixer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return &Mixer{ctx: ctx, bank: bank, Falloff: 400}
}

// SetListener moves the point voices are attenuated against.
func (m *Mixer) SetListener(x, y float64) {
	if m == nil {
		return
	}
	m.listenerX, m.listenerY = x, y
}

// PlayOneShot bakes clip at pitch and starts it. Unknown clips log and
// return nil.
func (m *Mixer) PlayOneShot(clip string, x, y, volume, pitch float64) component.Voice {
	if m == nil || m.ctx == nil {
		return nil
	}
	pcm, err := m.bank.PCM(clip, pitch)
	if err != nil {
		log.Printf("assets: play %s: %v", clip, err)
		return nil
	}
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(volume * m.attenuation(x, y))
	p.Play()
	return &voice{player: p}
}

// LoopPlayer builds a paused, infinitely looping drone at freq.
func (m *Mixer) LoopPlayer(name string, freq float64) (*audio.Player, error) {
	if m == nil || m.ctx == nil {
		return nil, fmt.Errorf("assets: no audio context")
	}
	pcm := m.bank.Loop(freq, 2)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := m.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("assets: music layer %s: %w", name, err)
	}
	p.SetVolume(0)
	return p, nil
}

func (m *Mixer) attenuation(x, y float64) float64 {
	if m.Falloff <= 0 {
		return 1
	}
	d := math.Hypot(x-m.listenerX, y-m.listenerY)
	return 1 / (1 + d/m.Falloff)
}

type voice struct {
	player *audio.Player
	closed bool
}

func (v *voice) IsPlaying() bool {
	return v != nil && !v.closed && v.player.IsPlaying()
}

// Stop halts the voice and releases its player.
func (v *voice) Stop() {
	if v == nil || v.closed {
		return
	}
	v.player.Pause()
	if err := v.player.Close(); err != nil {
		log.Printf("assets: close voice: %v", err)
	}
	v.closed = true
}
