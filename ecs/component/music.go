package component

import "github.com/hajimehoshi/ebiten/v2/audio"

type MusicLayer struct {
	Name       string
	EnemyCount int
	Volume     float64
	Target     float64
	Player     *audio.Player
}

// Music stores layered soundtrack state on a dedicated ECS entity. The
// base layer is always on; at most one extra layer plays at a time.
type Music struct {
	Base     MusicLayer
	Layers   []MusicLayer
	OnVolume float64
}

var MusicComponent = NewComponent[Music]()
