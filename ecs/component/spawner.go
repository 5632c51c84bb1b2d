package component

import (
	"github.com/milk9111/unstable/sequence"
	"github.com/milk9111/unstable/spawnring"
)

type SpawnerPhase int

const (
	SpawnerRising SpawnerPhase = iota
	SpawnerTraveling
	SpawnerIdle
	SpawnerDying
)

type Spawner struct {
	Ticket *spawnring.Ticket
	Phase  SpawnerPhase

	DestX     float64
	DestY     float64
	MoveSpeed float64

	IdleSpin  float64
	FastSpin  float64
	SpinSpeed float64

	// Rise is the visual drop below the floor while animating in, from
	// RiseDepth to 0 over RiseTime scaled seconds.
	Rise      float64
	RiseDepth float64
	RiseTime  float64

	AliveTime              float64
	TimeBeforeInitialGroup float64
	NumberToSpawn          int
	TimeBetweenEnemies     float64
	TimeBetweenGroups      float64
	EjectForce             float64

	Dissolve     float64
	DissolveTime float64
	LeaveField   FieldEffect
	FieldRadius  float64

	Runner sequence.Runner
}

var SpawnerComponent = NewComponent[Spawner]()
