package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type SpawnerTag struct{}

var SpawnerTagComponent = NewComponent[SpawnerTag]()

// SessionTag marks entities that belong to one run and are destroyed on
// reset. Pooled units are repooled instead.
type SessionTag struct{}

var SessionTagComponent = NewComponent[SessionTag]()
