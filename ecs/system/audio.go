package system

import (
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/pool"
)

const (
	minCuePitch = 0.6
	maxCuePitch = 1.4
)

// AudioSystem starts queued one-shot cues and repools them when their
// voice has stopped. Cues queued on a frame start on the next one, after
// the cue has picked up any field it spawned inside.
type AudioSystem struct {
	pools  *entity.Pools
	player SoundPlayer
}

func NewAudioSystem(pools *entity.Pools, player SoundPlayer) *AudioSystem {
	return &AudioSystem{pools: pools, player: player}
}

func (s *AudioSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.pools == nil {
		return
	}
	frame := s.pools.Frame()

	s.pools.AudioCues.EachActive(func(item *pool.Pooled[*entity.AudioCueUnit]) {
		e := item.Value.Entity()
		cue, ok := ecs.Get(w, e, component.AudioCueComponent.Kind())
		if !ok {
			return
		}

		if cue.Queued {
			if cue.QueuedFrame >= frame {
				return
			}
			cue.Queued = false
			pitch := CuePitch(cue.BasePitch, timeScale(w, e))
			if s.player != nil {
				cue.Voice = s.player.PlayOneShot(cue.Clip, cue.X, cue.Y, cue.Volume, pitch)
			}
			return
		}

		if cue.Voice == nil || !cue.Voice.IsPlaying() {
			if !item.InPool() {
				s.pools.AudioCues.Repool(item)
			}
		}
	})
}

// CuePitch bakes the cue's time scale into its pitch.
func CuePitch(base, scale float64) float64 {
	return common.Clamp(base*scale, minCuePitch, maxCuePitch)
}
