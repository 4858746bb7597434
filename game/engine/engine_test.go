package engine

import (
	"testing"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:           "Engine Test Room",
		Description:    "Room for engine integration tests",
		MaxEnergy:      10,
		StartingEnergy: 8,
		Layout: []string{
			"XXXXX",
			"XS.LX",
			"X.XRX",
			"XLL.X",
			"XXXXX",
		},
		Legend: map[string]string{
			"S": "dock",
			".": "floor",
			"X": "obstacle",
			"R": "recharge",
			"L": "litter",
		},
		CrashEndsGame: false,
	}
	config.Messages.Welcome = "Welcome to the test room!"
	config.Messages.RechargeCharge = "Recharged!"
	config.Messages.LitterSwept = "Litter swept! Score: %d"
	config.Messages.LitterAlreadySwept = "Already clean"
	config.Messages.Victory = "Victory! All %d swept!"
	config.Messages.OutOfEnergy = "Out of energy!"
	config.Messages.Stranded = "Stranded!"
	config.Messages.CantMove = "Can't move there!"
	config.Messages.EnergyStatus = "Energy: %d/%d"
	config.Messages.HitObstacle = "Hit obstacle!"
	return config
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Test initial state
	if engine.GetEnergy() != config.StartingEnergy {
		t.Errorf("Expected starting energy %d, got %d", config.StartingEnergy, engine.GetEnergy())
	}
	if engine.GetScore() != 0 {
		t.Errorf("Expected initial score 0, got %d", engine.GetScore())
	}
	if engine.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if engine.IsVictory() {
		t.Error("Expected game not to be victory initially")
	}
	if pos := engine.GetRobotPosition(); pos.X != 1 || pos.Y != 1 {
		t.Errorf("Expected robot at dock (1,1), got (%d,%d)", pos.X, pos.Y)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	_, err := NewEngine(config)
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	if engine.GetConfig() == nil {
		t.Fatal("Expected default config to be set")
	}
	if err := ValidateGameConfig(engine.GetConfig()); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if engine.GetTotalLitter() == 0 {
		t.Error("Expected default room to contain litter")
	}
}

func TestEngineLitterCounters(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if engine.GetTotalLitter() != 3 {
		t.Errorf("Expected 3 litter cells, got %d", engine.GetTotalLitter())
	}
	if engine.GetRemainingLitter() != 3 {
		t.Errorf("Expected 3 remaining, got %d", engine.GetRemainingLitter())
	}

	// Sweep the litter at (3,1): right of the dock
	if !engine.Move("right") {
		t.Fatal("Expected move right to succeed")
	}
	if !engine.Move("right") {
		t.Fatal("Expected move right to succeed")
	}

	if engine.GetScore() != 1 {
		t.Errorf("Expected score 1 after sweeping, got %d", engine.GetScore())
	}
	if engine.GetRemainingLitter() != 2 {
		t.Errorf("Expected 2 remaining, got %d", engine.GetRemainingLitter())
	}
}

func TestEngineReset(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	engine.Move("right")
	engine.Move("right")
	movesBefore := engine.GetState().TotalMoves

	state := engine.Reset()

	if state.Energy != engine.GetConfig().StartingEnergy {
		t.Errorf("Expected energy reset to %d, got %d", engine.GetConfig().StartingEnergy, state.Energy)
	}
	if state.Score != 0 {
		t.Errorf("Expected score reset to 0, got %d", state.Score)
	}
	if pos := engine.GetRobotPosition(); pos.X != 1 || pos.Y != 1 {
		t.Errorf("Expected robot back at dock, got (%d,%d)", pos.X, pos.Y)
	}

	// Cumulative history survives reset; current segment is cleared
	if state.TotalMoves != movesBefore {
		t.Errorf("Expected cumulative total %d preserved, got %d", movesBefore, state.TotalMoves)
	}
	if state.CurrentMovesCount != 0 {
		t.Errorf("Expected current segment cleared, got %d", state.CurrentMovesCount)
	}
}

func TestGetPossibleMoves(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// From the dock at (1,1): up and left hit the wall, right and down are open
	possible := engine.GetPossibleMoves()
	want := map[string]bool{"down": true, "right": true}
	if len(possible) != len(want) {
		t.Fatalf("Expected %d possible moves, got %v", len(want), possible)
	}
	for _, dir := range possible {
		if !want[dir] {
			t.Errorf("Unexpected possible move %q", dir)
		}
	}
}

func TestBulkMoveStopsOnGameOver(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Optimal sweep: right right (litter), down (recharge), down, left
	// (litter), left (litter) - victory on the last move.
	results := engine.BulkMove([]string{"right", "right", "down", "down", "left", "left", "up", "up"})

	if !engine.IsVictory() {
		t.Fatalf("Expected victory, state: %+v", engine.GetState().Message)
	}
	// The two trailing moves after victory must not execute
	if len(results) != 6 {
		t.Errorf("Expected 6 executed moves, got %d", len(results))
	}
	for i, ok := range results {
		if !ok {
			t.Errorf("Expected move %d to succeed", i)
		}
	}
}

func TestMoveHistory(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if engine.GetLastMove() != nil {
		t.Error("Expected no last move initially")
	}

	engine.Move("right")
	engine.Move("up") // blocked by wall

	history := engine.GetMoveHistory()
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}
	if !history[0].Success {
		t.Error("Expected first move to be recorded as success")
	}
	if history[1].Success {
		t.Error("Expected blocked move to be recorded as failure")
	}

	last := engine.GetLastMove()
	if last == nil || last.Action != "up" {
		t.Errorf("Expected last move 'up', got %+v", last)
	}
}

func TestSetState(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error setting nil state")
	}

	newState := InitGameStateFromConfig(engine.GetConfig())
	newState.Energy = 3
	if err := engine.SetState(newState); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if engine.GetEnergy() != 3 {
		t.Errorf("Expected energy 3 after SetState, got %d", engine.GetEnergy())
	}
}
