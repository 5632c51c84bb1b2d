package component

type Enemy struct {
	MoveSpeed float64
	// Eject is an initial push that decays while the enemy turns to chase.
	EjectX float64
	EjectY float64
}

var EnemyComponent = NewComponent[Enemy]()
