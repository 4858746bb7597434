package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/planner"
)

// ValidateGameConfig validates a room configuration for correctness and
// playability. Structural layout problems (ragged rows, unknown symbols,
// missing or duplicated dock) surface through grid.Parse; playability is
// checked exactly by running the planner against the room's energy budget.
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate room dimensions
	if len(config.Layout) > MaxRoomRows {
		return fmt.Errorf("config validation: layout has %d rows, maximum is %d", len(config.Layout), MaxRoomRows)
	}
	for i, row := range config.Layout {
		if len(row) > MaxRoomCols {
			return fmt.Errorf("config validation: row %d has %d columns, maximum is %d", i+1, len(row), MaxRoomCols)
		}
	}

	// Structural layout validation
	room, err := grid.Parse(config.Layout)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if room.LitterCount() == 0 {
		return fmt.Errorf("config validation: layout must contain at least one litter (L) cell")
	}

	// Validate energy settings
	if config.MaxEnergy < MinEnergy || config.MaxEnergy > MaxEnergyCap {
		return fmt.Errorf("config validation: max_energy must be between %d and %d, got %d", MinEnergy, MaxEnergyCap, config.MaxEnergy)
	}
	if config.StartingEnergy < MinEnergy || config.StartingEnergy > config.MaxEnergy {
		return fmt.Errorf("config validation: starting_energy must be between %d and max_energy (%d), got %d",
			MinEnergy, config.MaxEnergy, config.StartingEnergy)
	}

	// Validate legend
	requiredLegend := map[string]string{
		"S": "dock",
		".": "floor",
		"X": "obstacle",
		"R": "recharge",
		"L": "litter",
	}
	for key, expectedValue := range requiredLegend {
		if value, ok := config.Legend[key]; !ok || value != expectedValue {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expectedValue, value)
		}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.OutOfEnergy == "" {
		return fmt.Errorf("config validation: messages.out_of_energy is required")
	}

	// Validate crash message if feature is enabled
	if config.CrashEndsGame && config.Messages.HitObstacle == "" {
		return fmt.Errorf("config validation: messages.hit_obstacle is required when crash_ends_game is true")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.LitterSwept, "%d") {
		return fmt.Errorf("config validation: messages.litter_swept must contain %%d for score")
	}
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for litter count")
	}
	if config.Messages.EnergyStatus != "" && !strings.Contains(config.Messages.EnergyStatus, "%d") {
		return fmt.Errorf("config validation: messages.energy_status must contain %%d for energy values")
	}

	// Validate winnability: the room must be fully sweepable at the full
	// energy budget.
	p, err := planner.New(room, config.MaxEnergy)
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if p.MinMoves() == planner.Unreachable {
		return fmt.Errorf("config validation: room cannot be fully swept with max_energy %d", config.MaxEnergy)
	}

	return nil
}

// LoadGameConfig loads a room configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in room used when no configuration is
// provided.
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:           "Default Room",
		Description:    "Open floor with scattered litter and two recharge pads",
		MaxEnergy:      10,
		StartingEnergy: 10,
		Layout: []string{
			"S....L....",
			".XX...XX..",
			".L...R...L",
			"....X.....",
			".L...X..L.",
			"......R...",
		},
		Legend: map[string]string{
			"S": "dock",
			".": "floor",
			"X": "obstacle",
			"R": "recharge",
			"L": "litter",
		},
	}
	config.Messages.Welcome = "Welcome! Sweep every piece of litter. Watch your energy!"
	config.Messages.RechargeCharge = "Recharge pad! Energy fully restored!"
	config.Messages.LitterSwept = "Litter swept! Score: %d"
	config.Messages.LitterAlreadySwept = "This spot is already clean"
	config.Messages.Victory = "Victory! All %d pieces of litter swept!"
	config.Messages.OutOfEnergy = "Out of energy! Game Over!"
	config.Messages.Stranded = "Stranded with no energy! Game Over!"
	config.Messages.CantMove = "Can't move there!"
	config.Messages.EnergyStatus = "Energy: %d/%d"
	return config
}

// InitGameStateFromConfig creates a new game state using the provided
// configuration. A nil config falls back to the built-in default room.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultConfig()
	}

	// Build cells from the layout. Litter IDs carry the dense row-major
	// index so they line up with the planner's bitmask positions.
	cells := make([][]Cell, len(config.Layout))
	litterCount := 0
	var dockPos Position

	for y, row := range config.Layout {
		cells[y] = make([]Cell, len(row))
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case grid.SymbolFloor:
				cells[y][x] = Cell{Type: grid.Floor}
			case grid.SymbolDock:
				cells[y][x] = Cell{Type: grid.Dock}
				dockPos = Position{X: x, Y: y}
			case grid.SymbolLitter:
				litterID := fmt.Sprintf("litter_%d", litterCount)
				cells[y][x] = Cell{Type: grid.Litter, ID: litterID}
				litterCount++
			case grid.SymbolRecharge:
				cells[y][x] = Cell{Type: grid.Recharge}
			case grid.SymbolObstacle:
				cells[y][x] = Cell{Type: grid.Obstacle}
			}
		}
	}

	return &GameState{
		Grid:              cells,
		RobotPos:          dockPos,
		Energy:            config.StartingEnergy,
		MaxEnergy:         config.MaxEnergy,
		Score:             0,
		SweptLitter:       make(map[string]bool),
		Message:           config.Messages.Welcome,
		GameOver:          false,
		Victory:           false,
		ConfigName:        config.Name,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
}
