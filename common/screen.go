package common

const (
	ScreenWidth  = 960
	ScreenHeight = 640

	// TicksPerSecond is the fixed physics rate.
	TicksPerSecond = 60
)
