package component

type GamePhase int

const (
	PhaseMenu GamePhase = iota
	PhaseGame
	PhaseGameOver
)

func (p GamePhase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseGame:
		return "game"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState is the director's singleton component.
type GameState struct {
	Phase    GamePhase
	Elapsed  float64
	Kills    int
	BestTime float64
	RunID    string

	Seed uint64

	SpawnTimer    float64
	SpawnInterval float64
	SpawnerHealth int
	FreezeWeight  float64

	// PlayerScale is the player's time scale sampled at the start of the
	// frame; TimeOffset is 1 - PlayerScale.
	PlayerScale float64
	TimeOffset  float64

	// StartRequested and ResetRequested are set by the menu and input and
	// consumed by the game system.
	StartRequested bool
	ResetRequested bool
	ClearBest      bool
	Recorded       bool
}

var GameStateComponent = NewComponent[GameState]()
