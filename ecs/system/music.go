package system

import (
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

// fadeRate is the layer volume change per scaled second.
const fadeRate = 1.0

// MusicSystem fades soundtrack layers in and out with the live enemy
// count. The base layer is always on; of the extra layers only the highest
// one whose EnemyCount is below the live count plays.
type MusicSystem struct {
	clock Clock
}

func NewMusicSystem(clock Clock) *MusicSystem {
	return &MusicSystem{clock: clock}
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ent, ok := ecs.First(w, component.MusicComponent.Kind())
	if !ok {
		return
	}
	music, ok := ecs.Get(w, ent, component.MusicComponent.Kind())
	if !ok || music == nil {
		return
	}

	step := fadeRate * m.clock.DeltaTime() * timeScale(w, ent)
	live := len(w.Query(component.EnemyTagComponent.Kind()))

	m.updateLayer(&music.Base, music.OnVolume, true, step)
	active := ActiveMusicLayer(music.Layers, live)
	for i := range music.Layers {
		m.updateLayer(&music.Layers[i], music.OnVolume, i == active, step)
	}
}

// ActiveMusicLayer is the index of the extra layer that should play for
// live enemies, or -1 when none should.
func ActiveMusicLayer(layers []component.MusicLayer, live int) int {
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].EnemyCount < live {
			return i
		}
	}
	return -1
}

func (m *MusicSystem) updateLayer(layer *component.MusicLayer, onVolume float64, on bool, step float64) {
	layer.Target = 0
	if on {
		layer.Target = onVolume
	}
	layer.Volume = common.MoveTowards(layer.Volume, layer.Target, step)

	p := layer.Player
	if p == nil {
		return
	}
	p.SetVolume(layer.Volume)
	if !p.IsPlaying() {
		if err := p.Rewind(); err != nil {
			return
		}
		p.Play()
	}
}
