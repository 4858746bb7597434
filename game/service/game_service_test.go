package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/planner"
	"github.com/rpoletti/sweepbot/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	// Create a default test config
	defaultConfig := &engine.GameConfig{
		Name:           "test",
		Description:    "Test configuration",
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
	}
	defaultConfig.Messages.Welcome = "Welcome to test!"
	defaultConfig.Messages.RechargeCharge = "Recharged!"
	defaultConfig.Messages.LitterSwept = "Litter swept! Score: %d"
	defaultConfig.Messages.LitterAlreadySwept = "Already swept here"
	defaultConfig.Messages.Victory = "Victory! All %d litter swept!"
	defaultConfig.Messages.OutOfEnergy = "Out of energy!"
	defaultConfig.Messages.Stranded = "Stranded!"
	defaultConfig.Messages.CantMove = "Can't move there!"
	defaultConfig.Messages.EnergyStatus = "Energy: %d/%d"
	defaultConfig.Messages.HitObstacle = "Hit obstacle!"

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"test":    defaultConfig,
			"default": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Rows:        len(config.Layout),
			Cols:        len(config.Layout[0]),
			MaxEnergy:   config.MaxEnergy,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() (service.GameService, *MockSessionManager, *MockConfigManager) {
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	return service.NewGameService(sessions, configs), sessions, configs
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && session == nil {
				t.Error("CreateSession() returned nil session")
			}
		})
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	// Create a session first
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		direction string
		reset     bool
		wantErr   bool
	}{
		{
			name:      "valid move right",
			sessionID: sessionInfo.ID,
			direction: "right",
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "valid move with reset",
			sessionID: sessionInfo.ID,
			direction: "down",
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			direction: "up",
			reset:     false,
			wantErr:   true,
		},
		{
			name:      "invalid direction",
			sessionID: sessionInfo.ID,
			direction: "diagonal",
			reset:     false,
			wantErr:   false, // Won't error but success will be false
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Move(ctx, tt.sessionID, tt.direction, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("Move() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("Move() returned nil result")
			}
		})
	}

	// Additional checks: StepInfo on success and AttemptInfo on failure
	// Reset to ensure consistent start at the dock (1,1)
	_, _ = svc.Reset(ctx, sessionInfo.ID)

	// Successful move from dock (1,1) right to (2,1) which is floor
	res1, err := svc.Move(ctx, sessionInfo.ID, "right", false)
	if err != nil {
		t.Fatalf("Move right failed unexpectedly: %v", err)
	}
	if res1.Step == nil || !res1.Success {
		t.Errorf("Expected success with StepInfo, got success=%v step=%v", res1.Success, res1.Step)
	} else {
		if res1.Step.Dir != "right" || res1.Step.CellChar != "." {
			t.Errorf("Invalid StepInfo: %+v", res1.Step)
		}
	}

	// Failing move: from (2,1) attempt up into the obstacle border at (2,0)
	res2, err := svc.Move(ctx, sessionInfo.ID, "up", false)
	if err != nil {
		t.Fatalf("Move up failed with error: %v", err)
	}
	if res2.Success {
		t.Errorf("Expected failure moving into obstacle, got success")
	}
	if res2.AttemptedTo == nil || res2.AttemptedTo.CellChar != "X" || res2.AttemptedTo.Passable {
		t.Errorf("Expected AttemptedTo with impassable obstacle, got %+v", res2.AttemptedTo)
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	// Create a session
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		moves     []string
		reset     bool
		wantErr   bool
	}{
		{
			name:      "valid bulk moves",
			sessionID: sessionInfo.ID,
			moves:     []string{"right", "left"},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "bulk moves with reset",
			sessionID: sessionInfo.ID,
			moves:     []string{"down", "up"},
			reset:     true,
			wantErr:   false,
		},
		{
			name:      "empty moves",
			sessionID: sessionInfo.ID,
			moves:     []string{},
			reset:     false,
			wantErr:   false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			moves:     []string{"up"},
			reset:     false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BulkMove(ctx, tt.sessionID, tt.moves, tt.reset)
			if (err != nil) != tt.wantErr {
				t.Errorf("BulkMove() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("BulkMove() returned nil result")
			}
			if !tt.wantErr && result != nil {
				if result.RequestedMoves != len(tt.moves) {
					t.Errorf("BulkMove() RequestedMoves = %v, want %v", result.RequestedMoves, len(tt.moves))
				}
			}
		})
	}

	// Additional bulk diagnostics: steps, stop_reason_code, attempted_to
	// Reset to start from the dock (1,1)
	_, _ = svc.Reset(ctx, sessionInfo.ID)
	// Sequence: right (ok), up (blocked by the obstacle border)
	res3, err := svc.BulkMove(ctx, sessionInfo.ID, []string{"right", "up"}, false)
	if err != nil {
		t.Fatalf("BulkMove diagnostics failed with error: %v", err)
	}
	if res3.MovesExecuted != 1 {
		t.Errorf("Expected 1 executed move, got %d", res3.MovesExecuted)
	}
	if len(res3.Steps) != 1 {
		t.Errorf("Expected 1 step, got %d", len(res3.Steps))
	}
	if res3.StopReasonCode != "blocked_obstacle" || res3.AttemptedTo == nil || res3.AttemptedTo.CellChar != "X" {
		t.Errorf("Expected blocked_obstacle with attempted_to=X, got code=%s attempted=%+v", res3.StopReasonCode, res3.AttemptedTo)
	}

	// A full cleanup run ends in victory
	res4, err := svc.BulkMove(ctx, sessionInfo.ID, []string{"right", "right", "down", "down", "left", "left"}, true)
	if err != nil {
		t.Fatalf("BulkMove victory run failed with error: %v", err)
	}
	if !res4.GameOver || res4.GameOverCode != "victory" {
		t.Errorf("Expected victory, got game_over=%v code=%s", res4.GameOver, res4.GameOverCode)
	}
	if res4.ScoreDelta != 3 {
		t.Errorf("Expected score delta 3, got %d", res4.ScoreDelta)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	// Create a session and make some moves
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Make some moves to generate history
	moves := []string{"right", "left", "down", "up"}
	_, err = svc.BulkMove(ctx, sessionInfo.ID, moves, false)
	if err != nil {
		t.Fatalf("Failed to make moves: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{},
			wantErr:   false,
		},
		{
			name:      "with pagination",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 2,
				Order: "asc",
			},
			wantErr: false,
		},
		{
			name:      "descending order",
			sessionID: sessionInfo.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 10,
				Order: "desc",
			},
			wantErr: false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			opts:      service.HistoryOptions{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetMoveHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetMoveHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("GetMoveHistory() returned nil result")
			}
			if !tt.wantErr && result != nil {
				if result.Moves == nil {
					t.Error("GetMoveHistory() returned nil moves slice")
				}
			}
		})
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	// Create multiple sessions
	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	// List sessions
	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}

	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	// Create a session
	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Make some moves
	_, err = svc.Move(ctx, sessionInfo.ID, "right", false)
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	// Reset the game
	state, err := svc.Reset(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if state == nil {
		t.Fatal("Reset() returned nil state")
	}

	// Verify the robot is back at the dock
	if state.RobotPos.X != 1 || state.RobotPos.Y != 1 {
		t.Errorf("Expected robot back at dock (1,1), got (%d,%d)", state.RobotPos.X, state.RobotPos.Y)
	}
}

func TestGameService_SolveLayout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	t.Run("solvable layout", func(t *testing.T) {
		result, err := svc.SolveLayout(ctx, []string{"L.S", "RXL"}, 5)
		if err != nil {
			t.Fatalf("SolveLayout() error = %v", err)
		}
		if !result.Reachable || result.MinMoves != 4 {
			t.Errorf("Expected reachable in 4 moves, got reachable=%v min_moves=%d", result.Reachable, result.MinMoves)
		}
		if len(result.Route) != 4 {
			t.Errorf("Expected route of length 4, got %v", result.Route)
		}
		if result.LitterCount != 2 || result.Rows != 2 || result.Cols != 3 {
			t.Errorf("Unexpected layout stats: %+v", result)
		}
	})

	t.Run("unreachable layout", func(t *testing.T) {
		result, err := svc.SolveLayout(ctx, []string{"SXL"}, 10)
		if err != nil {
			t.Fatalf("SolveLayout() error = %v", err)
		}
		if result.Reachable || result.MinMoves != planner.Unreachable {
			t.Errorf("Expected unreachable, got %+v", result)
		}
	})

	t.Run("invalid layout", func(t *testing.T) {
		if _, err := svc.SolveLayout(ctx, []string{"L.L"}, 5); err == nil {
			t.Error("Expected error for layout without a dock")
		}
	})

	t.Run("negative energy", func(t *testing.T) {
		if _, err := svc.SolveLayout(ctx, []string{"SL"}, -1); err == nil {
			t.Error("Expected error for negative max energy")
		}
	})
}

func TestGameService_Solve(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	result, err := svc.Solve(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Reachable || result.MinMoves != 6 {
		t.Errorf("Expected reachable in 6 moves, got reachable=%v min_moves=%d", result.Reachable, result.MinMoves)
	}

	if _, err := svc.Solve(ctx, "nonexistent"); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_Hint(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Fresh session: an optimal completion takes 6 moves
	hint, err := svc.Hint(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if !hint.Reachable || hint.Complete {
		t.Fatalf("Expected incomplete reachable hint, got %+v", hint)
	}
	if hint.RemainingMoves != 6 {
		t.Errorf("Expected 6 remaining moves, got %d", hint.RemainingMoves)
	}
	if hint.Direction != "down" && hint.Direction != "right" {
		t.Errorf("Expected first move down or right, got %q", hint.Direction)
	}

	// Follow the hints to completion
	for i := 0; i < 6; i++ {
		hint, err := svc.Hint(ctx, sessionInfo.ID)
		if err != nil {
			t.Fatalf("Hint() error on step %d: %v", i, err)
		}
		if hint.Complete {
			t.Fatalf("Hint reported complete after %d moves, expected 6", i)
		}
		res, err := svc.Move(ctx, sessionInfo.ID, hint.Direction, false)
		if err != nil {
			t.Fatalf("Move %q failed on step %d: %v", hint.Direction, i, err)
		}
		if !res.Success {
			t.Fatalf("Hinted move %q was rejected on step %d", hint.Direction, i)
		}
	}

	final, err := svc.GetGameState(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetGameState() error = %v", err)
	}
	if !final.Victory {
		t.Error("Expected victory after following hints")
	}

	hint, err = svc.Hint(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Hint() after victory error = %v", err)
	}
	if !hint.Complete || hint.RemainingMoves != 0 {
		t.Errorf("Expected complete hint after victory, got %+v", hint)
	}
}
