package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX float64
	MoveY float64
	// AimX and AimY are the cursor in world space.
	AimX        float64
	AimY        float64
	Fire        bool
	FirePressed bool
	Reset       bool
	HardReset   bool
}

var InputComponent = NewComponent[Input]()
