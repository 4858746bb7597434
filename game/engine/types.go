package engine

import "github.com/rpoletti/sweepbot/game/grid"

// Validation constants
const (
	MaxRoomRows         = 50
	MaxRoomCols         = 50
	MinEnergy           = 1
	MaxEnergyCap        = 100
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Cell represents a single room cell as seen by the game. Swept and ID are
// populated for litter cells only.
type Cell struct {
	Type  grid.CellType `json:"type"`
	Swept bool          `json:"swept,omitempty"`
	ID    string        `json:"id,omitempty"`
}

// Position represents x,y coordinates (x = column, y = row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameConfig represents the room configuration from JSON
type GameConfig struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Layout         []string          `json:"layout"`
	MaxEnergy      int               `json:"max_energy"`
	StartingEnergy int               `json:"starting_energy"`
	Legend         map[string]string `json:"legend"`
	CrashEndsGame  bool              `json:"crash_ends_game"`
	Messages       struct {
		Welcome            string `json:"welcome"`
		RechargeCharge     string `json:"recharge_charge"`
		LitterSwept        string `json:"litter_swept"`
		LitterAlreadySwept string `json:"litter_already_swept"`
		Victory            string `json:"victory"`
		OutOfEnergy        string `json:"out_of_energy"`
		Stranded           string `json:"stranded"`
		CantMove           string `json:"cant_move"`
		EnergyStatus       string `json:"energy_status"`
		HitObstacle        string `json:"hit_obstacle"`
	} `json:"messages"`
}

// SurroundingCell represents a cell with its absolute position
type SurroundingCell struct {
	X    int           `json:"x"`
	Y    int           `json:"y"`
	Type grid.CellType `json:"type"`
}

// GameState represents the complete game state
type GameState struct {
	Grid        [][]Cell           `json:"grid"`
	RobotPos    Position           `json:"robot_pos"`
	Energy      int                `json:"energy"`
	MaxEnergy   int                `json:"max_energy"`
	Score       int                `json:"score"`
	SweptLitter map[string]bool    `json:"swept_litter"`
	Message     string             `json:"message"`
	GameOver    bool               `json:"game_over"`
	Victory     bool               `json:"victory"`
	ConfigName  string             `json:"config_name"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`
	LocalView   []SurroundingCell  `json:"local_view,omitempty"` // 8 surrounding cells

	// CurrentMoves tracks only the moves since the last reset. It mirrors
	// MoveHistory entries but gets cleared on reset while MoveHistory
	// remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper views (not required for core game logic)
	LocalView3x3 []string `json:"local_view_3x3,omitempty"`
	EnergyRisk   string   `json:"energy_risk,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       string   `json:"action"`
	FromPosition Position `json:"from_position"`
	ToPosition   Position `json:"to_position"`
	Energy       int      `json:"energy"`
	Timestamp    int64    `json:"timestamp"`
	Success      bool     `json:"success"`
	MoveNumber   int      `json:"move_number"`
}
