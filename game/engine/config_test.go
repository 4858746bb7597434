package engine

import (
	"strings"
	"testing"
)

func TestValidateGameConfig_Valid(t *testing.T) {
	if err := ValidateGameConfig(createTestConfig()); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidateGameConfig_Structural(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr string
	}{
		{
			"missing name",
			func(c *GameConfig) { c.Name = "" },
			"name is required",
		},
		{
			"missing description",
			func(c *GameConfig) { c.Description = "" },
			"description is required",
		},
		{
			"ragged layout",
			func(c *GameConfig) { c.Layout = []string{"XXXXX", "XS.LX", "XXX"} },
			"inconsistent lengths",
		},
		{
			"no dock",
			func(c *GameConfig) { c.Layout = []string{"..L", "..."} },
			"no dock",
		},
		{
			"two docks",
			func(c *GameConfig) { c.Layout = []string{"S.L", "..S"} },
			"more than one dock",
		},
		{
			"unknown symbol",
			func(c *GameConfig) { c.Layout = []string{"S?L"} },
			"unknown layout symbol",
		},
		{
			"no litter",
			func(c *GameConfig) { c.Layout = []string{"S..", ".R."} },
			"at least one litter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestValidateGameConfig_Energy(t *testing.T) {
	config := createTestConfig()
	config.MaxEnergy = 0
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for zero max_energy")
	}

	config = createTestConfig()
	config.MaxEnergy = MaxEnergyCap + 1
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for max_energy above cap")
	}

	config = createTestConfig()
	config.StartingEnergy = config.MaxEnergy + 1
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for starting_energy above max_energy")
	}
}

func TestValidateGameConfig_Legend(t *testing.T) {
	config := createTestConfig()
	config.Legend["L"] = "trash"
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for wrong legend entry")
	}

	config = createTestConfig()
	delete(config.Legend, "R")
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for missing legend entry")
	}
}

func TestValidateGameConfig_Messages(t *testing.T) {
	config := createTestConfig()
	config.Messages.Victory = "no format verb"
	if err := ValidateGameConfig(config); err == nil {
		t.Errorf("Expected error for victory message without %%d")
	}

	config = createTestConfig()
	config.Messages.OutOfEnergy = ""
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for missing out_of_energy message")
	}

	config = createTestConfig()
	config.CrashEndsGame = true
	config.Messages.HitObstacle = ""
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for missing hit_obstacle message when crashes end the game")
	}
}

func TestValidateGameConfig_Unsolvable(t *testing.T) {
	// Litter sealed behind obstacles: the planner proves the room cannot
	// be swept, so the config must be rejected.
	config := createTestConfig()
	config.Layout = []string{
		"S.X.L",
		"..X..",
	}
	err := ValidateGameConfig(config)
	if err == nil {
		t.Fatal("Expected error for unsweepable room")
	}
	if !strings.Contains(err.Error(), "cannot be fully swept") {
		t.Errorf("Expected sweepability error, got %q", err)
	}

	// Reachable in principle but not within the energy budget.
	config = createTestConfig()
	config.Layout = []string{"S....L"}
	config.MaxEnergy = 3
	config.StartingEnergy = 3
	if err := ValidateGameConfig(config); err == nil {
		t.Error("Expected error for room beyond the energy budget")
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	state := InitGameStateFromConfig(createTestConfig())

	if state.RobotPos != (Position{X: 1, Y: 1}) {
		t.Errorf("Expected robot at (1,1), got (%d,%d)", state.RobotPos.X, state.RobotPos.Y)
	}
	if state.Energy != 8 || state.MaxEnergy != 10 {
		t.Errorf("Expected energy 8/10, got %d/%d", state.Energy, state.MaxEnergy)
	}
	if CountTotalLitter(state.Grid) != 3 {
		t.Errorf("Expected 3 litter cells, got %d", CountTotalLitter(state.Grid))
	}

	// Litter IDs carry row-major indices
	if id := state.Grid[1][3].ID; id != "litter_0" {
		t.Errorf("Expected litter_0 at (3,1), got %q", id)
	}
	if id := state.Grid[3][1].ID; id != "litter_1" {
		t.Errorf("Expected litter_1 at (1,3), got %q", id)
	}
	if id := state.Grid[3][2].ID; id != "litter_2" {
		t.Errorf("Expected litter_2 at (2,3), got %q", id)
	}
}

func TestInitGameStateFromNilConfig(t *testing.T) {
	state := InitGameStateFromConfig(nil)
	if state == nil {
		t.Fatal("Expected default state")
	}
	if CountTotalLitter(state.Grid) == 0 {
		t.Error("Expected default room to contain litter")
	}
}
