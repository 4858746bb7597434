package engine

import (
	"testing"

	"github.com/rpoletti/sweepbot/game/grid"
)

func TestCanMoveTo(t *testing.T) {
	state := InitGameStateFromConfig(createTestConfig())

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"open floor", 2, 1, true},
		{"litter cell", 3, 1, true},
		{"recharge pad", 3, 2, true},
		{"obstacle", 2, 2, false},
		{"negative x", -1, 1, false},
		{"negative y", 1, -1, false},
		{"beyond width", 5, 1, false},
		{"beyond height", 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := state.CanMoveTo(tt.x, tt.y); got != tt.want {
				t.Errorf("CanMoveTo(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMoveConsumesEnergy(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	before := state.Energy
	if !state.MoveRobot("right", config) {
		t.Fatal("Expected move to succeed")
	}
	if state.Energy != before-1 {
		t.Errorf("Expected energy %d after move, got %d", before-1, state.Energy)
	}
}

func TestBlockedMoveKeepsEnergy(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	before := state.Energy
	if state.MoveRobot("up", config) {
		t.Fatal("Expected move into wall to fail")
	}
	if state.Energy != before {
		t.Errorf("Expected energy unchanged at %d, got %d", before, state.Energy)
	}
	if state.GameOver {
		t.Error("Expected game to continue after blocked move")
	}
}

func TestCrashEndsGame(t *testing.T) {
	config := createTestConfig()
	config.CrashEndsGame = true
	state := InitGameStateFromConfig(config)

	if state.MoveRobot("up", config) {
		t.Fatal("Expected move into wall to fail")
	}
	if !state.GameOver {
		t.Error("Expected crash to end the game")
	}
}

func TestRechargeRestoresEnergy(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	// right, right, down lands on the recharge pad at (3,2)
	state.MoveRobot("right", config)
	state.MoveRobot("right", config)
	state.MoveRobot("down", config)

	if !state.OnRechargePad() {
		t.Fatalf("Expected robot on recharge pad, at (%d,%d)", state.RobotPos.X, state.RobotPos.Y)
	}
	if state.Energy != config.MaxEnergy {
		t.Errorf("Expected energy restored to %d, got %d", config.MaxEnergy, state.Energy)
	}
}

func TestSweepingLitterIsIdempotent(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	// Sweep the litter at (3,1), step off, step back on
	state.MoveRobot("right", config)
	state.MoveRobot("right", config)
	if state.Score != 1 {
		t.Fatalf("Expected score 1, got %d", state.Score)
	}

	state.MoveRobot("left", config)
	state.MoveRobot("right", config)
	if state.Score != 1 {
		t.Errorf("Expected score to stay 1 on revisit, got %d", state.Score)
	}
	if state.Message != config.Messages.LitterAlreadySwept {
		t.Errorf("Expected already-swept message, got %q", state.Message)
	}
}

func TestOutOfEnergyEndsGame(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)
	state.Energy = 1

	// One move away from the dock onto open floor leaves zero energy off
	// any recharge pad: stranded.
	if !state.MoveRobot("down", config) {
		t.Fatal("Expected move to succeed")
	}
	if state.Energy != 0 {
		t.Errorf("Expected energy 0, got %d", state.Energy)
	}
	if !state.GameOver {
		t.Error("Expected stranded robot to end the game")
	}
	if state.Message != config.Messages.Stranded {
		t.Errorf("Expected stranded message, got %q", state.Message)
	}

	// Any further move attempt is rejected outright
	if state.MoveRobot("up", config) {
		t.Error("Expected moves after game over to fail")
	}
}

func TestZeroEnergyReachingPadSurvives(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	// Position the robot one step above the pad with a single energy unit
	state.RobotPos = Position{X: 3, Y: 1}
	state.Energy = 1

	if !state.MoveRobot("down", config) {
		t.Fatal("Expected move onto pad to succeed")
	}
	if state.GameOver {
		t.Error("Expected game to continue after recharging")
	}
	if state.Energy != config.MaxEnergy {
		t.Errorf("Expected full energy, got %d", state.Energy)
	}
}

func TestVictoryOnLastLitter(t *testing.T) {
	config := createTestConfig()
	state := InitGameStateFromConfig(config)

	for _, dir := range []string{"right", "right", "down", "down", "left", "left"} {
		if !state.MoveRobot(dir, config) {
			t.Fatalf("Expected move %s to succeed", dir)
		}
	}

	if !state.Victory || !state.GameOver {
		t.Errorf("Expected victory, got victory=%v gameOver=%v", state.Victory, state.GameOver)
	}
	if state.Score != 3 {
		t.Errorf("Expected score 3, got %d", state.Score)
	}
}

func TestGenerateLocalView(t *testing.T) {
	state := InitGameStateFromConfig(createTestConfig())

	view := state.GenerateLocalView()
	if len(view) != 8 {
		t.Fatalf("Expected 8 surrounding cells, got %d", len(view))
	}

	// Robot at (1,1): north is the wall, east is open floor
	if view[0].Type != grid.Obstacle {
		t.Errorf("Expected obstacle to the north, got %s", view[0].Type)
	}
	if view[2].Type != grid.Floor {
		t.Errorf("Expected floor to the east, got %s", view[2].Type)
	}
}

func TestSweptMask(t *testing.T) {
	state := InitGameStateFromConfig(createTestConfig())

	if SweptMask(state) != 0 {
		t.Errorf("Expected empty mask initially, got %b", SweptMask(state))
	}

	state.SweptLitter["litter_0"] = true
	state.SweptLitter["litter_2"] = true

	mask := SweptMask(state)
	if !mask.Has(0) || mask.Has(1) || !mask.Has(2) {
		t.Errorf("Expected bits 0 and 2 set, got %b", mask)
	}
}
