package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/planner"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new cleanup session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Get session
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed time
	s.sessions.UpdateLastAccessed(sessionID)

	// Collect events
	events := []GameEvent{}

	// Handle reset if requested
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	// Execute move
	prevPos := sess.Engine.GetRobotPosition()
	prevState := sess.Engine.GetState()
	prevEnergy := prevState.Energy
	success := sess.Engine.Move(direction)
	newPos := sess.Engine.GetRobotPosition()
	state := sess.Engine.GetState()

	// Build result
	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	// Add move event
	if success {
		moveEvents := s.extractMoveEvents(sess, prevPos, newPos, direction)
		result.Events = append(result.Events, moveEvents...)

		// Fill compact step info
		cellChar, cellType := "", ""
		if newPos.Y >= 0 && newPos.Y < len(state.Grid) && newPos.X >= 0 && newPos.X < len(state.Grid[0]) {
			cellChar, cellType = mapCellToCharAndType(state.Grid[newPos.Y][newPos.X])
		}
		recharged := false
		swept := false
		victory := false
		for _, ev := range moveEvents {
			switch ev.Type {
			case "recharge":
				recharged = true
			case "litter_swept":
				swept = true
			case "victory":
				victory = true
			}
		}
		result.Step = &StepInfo{
			Idx:          1,
			Dir:          direction,
			From:         prevPos,
			To:           newPos,
			CellChar:     cellChar,
			CellType:     cellType,
			EnergyBefore: prevEnergy,
			EnergyAfter:  state.Energy,
			Success:      true,
			Recharged:    recharged,
			Swept:        swept,
			Victory:      victory,
		}
	} else {
		result.AttemptedTo = attemptedTarget(state, prevPos, direction)
	}

	// Enrich state with decision aids
	state.LocalView3x3 = buildLocal3x3(state)
	state.EnergyRisk = riskCode(engine.AnalyzeEnergyRisk(state))

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed
	s.sessions.UpdateLastAccessed(sessionID)

	// Initialize result and capture start snapshot
	state := sess.Engine.GetState()
	startPos := state.RobotPos
	startEnergy := state.Energy
	startScore := state.Score

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       startPos,
		StartEnergy:    startEnergy,
		GameOver:       state.GameOver,
		Message:        state.Message,
	}

	// Handle reset
	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	// Execute moves
	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game_over"
			result.StopReasonCode = "game_over"
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		prevPos := sess.Engine.GetRobotPosition()
		prevState := sess.Engine.GetState()
		prevEnergy := prevState.Energy
		success := sess.Engine.Move(move)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, move)
			result.StoppedOnMove = i + 1

			st := sess.Engine.GetState()
			attempt := attemptedTarget(st, prevPos, move)
			switch {
			case attempt.CellType == "boundary":
				result.StopReasonCode = "blocked_boundary"
			case !attempt.Passable:
				result.StopReasonCode = "blocked_obstacle"
			case prevEnergy <= 0:
				result.StopReasonCode = "out_of_energy"
			case st.GameOver:
				result.StopReasonCode = "game_over"
			}
			result.AttemptedTo = attempt
			break
		}

		result.MovesExecuted++
		newPos := sess.Engine.GetRobotPosition()

		// Collect events for this move
		events := s.extractMoveEvents(sess, prevPos, newPos, move)
		result.Events = append(result.Events, events...)

		// Build step info for this executed move
		currState := sess.Engine.GetState()
		energyAfter := currState.Energy
		cellChar, cellType := "", ""
		if newPos.Y >= 0 && newPos.Y < len(currState.Grid) && newPos.X >= 0 && newPos.X < len(currState.Grid[0]) {
			cellChar, cellType = mapCellToCharAndType(currState.Grid[newPos.Y][newPos.X])
		}
		recharged := false
		swept := false
		victory := false
		for _, ev := range events {
			switch ev.Type {
			case "recharge":
				recharged = true
			case "litter_swept":
				swept = true
			case "victory":
				victory = true
			}
		}
		step := StepInfo{
			Idx:          i + 1,
			Dir:          move,
			From:         prevPos,
			To:           newPos,
			CellChar:     cellChar,
			CellType:     cellType,
			EnergyBefore: prevEnergy,
			EnergyAfter:  energyAfter,
			Success:      true,
			Recharged:    recharged,
			Swept:        swept,
			Victory:      victory,
		}
		result.Steps = append(result.Steps, step)
	}

	result.GameState = sess.Engine.GetState()

	// Finalize snapshots
	endState := result.GameState
	result.EndPos = endState.RobotPos
	result.EndEnergy = endState.Energy
	result.ScoreDelta = endState.Score - startScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message

	// If we ended due to game over without explicit stop reason code
	if result.GameOver && result.StopReasonCode == "" {
		if endState.Victory {
			result.StopReasonCode = "victory"
			result.GameOverCode = "victory"
		} else if endState.Energy == 0 {
			if result.MovesExecuted > 0 {
				last := result.Steps[len(result.Steps)-1]
				if last.EnergyAfter == 0 {
					// Stranded if not on a recharge pad
					currCell := endState.Grid[endState.RobotPos.Y][endState.RobotPos.X]
					if currCell.Type != grid.Recharge {
						result.StopReasonCode = "stranded"
						result.GameOverCode = "stranded"
					} else {
						result.StopReasonCode = "game_over"
						result.GameOverCode = "game_over"
					}
				} else {
					result.StopReasonCode = "game_over"
					result.GameOverCode = "game_over"
				}
			} else {
				// No executed moves, energy must have been 0 at start
				result.StopReasonCode = "out_of_energy"
				result.GameOverCode = "out_of_energy"
			}
		} else {
			result.StopReasonCode = "game_over"
			result.GameOverCode = "game_over"
		}
	}

	// Decision aids
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	result.LocalView3x3 = buildLocal3x3(endState)
	result.EnergyRisk = riskCode(engine.AnalyzeEnergyRisk(endState))

	// Also expose decision aids on the returned state for parity
	endState.LocalView3x3 = result.LocalView3x3
	endState.EnergyRisk = result.EnergyRisk

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk moves: %v", sessionID, err)
	}

	return result, nil
}

// Reset resets a session to its initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()
	// Enrich state with decision aids
	state.LocalView3x3 = buildLocal3x3(state)
	state.EnergyRisk = riskCode(engine.AnalyzeEnergyRisk(state))

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.GetState()
	// Enrich state with decision aids
	state.LocalView3x3 = buildLocal3x3(state)
	state.EnergyRisk = riskCode(engine.AnalyzeEnergyRisk(state))
	return state, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// SolveLayout computes the exact minimum number of moves to sweep every
// litter cell in an ad-hoc layout
func (s *gameServiceImpl) SolveLayout(ctx context.Context, layout []string, maxEnergy int) (*SolveResult, error) {
	room, err := grid.Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	p, err := planner.New(room, maxEnergy)
	if err != nil {
		return nil, err
	}

	result := &SolveResult{
		Rows:        room.Rows(),
		Cols:        room.Cols(),
		LitterCount: room.LitterCount(),
		MaxEnergy:   maxEnergy,
		MinMoves:    planner.Unreachable,
	}

	route, ok := p.Route()
	if !ok {
		return result, nil
	}

	result.Reachable = true
	result.MinMoves = len(route)
	result.Route = directionNames(route)
	return result, nil
}

// Solve computes the exact from-scratch cleanup plan for a session's room
func (s *gameServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.SolveLayout(ctx, sess.Config.Layout, sess.Config.MaxEnergy)
}

// Hint suggests the next move on an optimal completion of the session's
// current position, energy, and swept litter
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	room, err := grid.Parse(sess.Config.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	p, err := planner.New(room, sess.Config.MaxEnergy)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	pos := grid.Pos{Row: state.RobotPos.Y, Col: state.RobotPos.X}
	swept := engine.SweptMask(state)

	route, ok := p.RouteFrom(pos, state.Energy, swept)
	if !ok {
		return &HintResult{Reachable: false, RemainingMoves: planner.Unreachable}, nil
	}

	result := &HintResult{
		Reachable:      true,
		RemainingMoves: len(route),
		Route:          directionNames(route),
	}
	if len(route) == 0 {
		result.Complete = true
		return result, nil
	}
	result.Direction = route[0].String()
	return result, nil
}

// ListConfigs returns available room configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific room configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a room configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from a move
func (s *gameServiceImpl) extractMoveEvents(sess *Session, prevPos, newPos engine.Position, direction string) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	// Basic move event
	events = append(events, GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, newPos.X, newPos.Y),
		Timestamp: time.Now(),
		Position:  newPos,
	})

	// Check if position actually changed (might be blocked)
	if prevPos.X == newPos.X && prevPos.Y == newPos.Y {
		return events // Move was blocked, no additional events
	}

	// Check for special cell events
	if newPos.Y >= 0 && newPos.Y < len(state.Grid) &&
		newPos.X >= 0 && newPos.X < len(state.Grid[0]) {
		cell := state.Grid[newPos.Y][newPos.X]

		switch cell.Type {
		case grid.Recharge:
			events = append(events, GameEvent{
				Type:      "recharge",
				Message:   fmt.Sprintf("Energy recharged to %d/%d", state.Energy, state.MaxEnergy),
				Timestamp: time.Now(),
				Position:  newPos,
			})
		case grid.Litter:
			if cell.Swept {
				events = append(events, GameEvent{
					Type:      "litter_swept",
					Message:   fmt.Sprintf("Litter %s swept! Score: %d", cell.ID, state.Score),
					Timestamp: time.Now(),
					Position:  newPos,
				})
			}
		}
	}

	// Check for game over events
	if state.GameOver {
		if state.Victory {
			events = append(events, GameEvent{
				Type:      "victory",
				Message:   "Victory! Room fully swept!",
				Timestamp: time.Now(),
			})
		} else {
			events = append(events, GameEvent{
				Type:      "game_over",
				Message:   state.Message,
				Timestamp: time.Now(),
			})
		}
	}

	return events
}

// attemptedTarget describes the cell a failed move was aimed at
func attemptedTarget(state *engine.GameState, from engine.Position, direction string) *AttemptInfo {
	attemptedX, attemptedY := from.X, from.Y
	switch strings.ToLower(direction) {
	case "up":
		attemptedY--
	case "down":
		attemptedY++
	case "left":
		attemptedX--
	case "right":
		attemptedX++
	}

	gridH := len(state.Grid)
	var cellChar, cellType string
	passable := false
	if attemptedX < 0 || attemptedY < 0 || attemptedY >= gridH || (gridH > 0 && attemptedX >= len(state.Grid[0])) {
		cellChar = "X"
		cellType = "boundary"
	} else {
		cell := state.Grid[attemptedY][attemptedX]
		cellChar, cellType = mapCellToCharAndType(cell)
		passable = cell.Type != grid.Obstacle
	}
	return &AttemptInfo{X: attemptedX, Y: attemptedY, CellChar: cellChar, CellType: cellType, Passable: passable}
}

// directionNames renders a planner route as lowercase direction strings
func directionNames(route []grid.Direction) []string {
	names := make([]string, len(route))
	for i, d := range route {
		names[i] = d.String()
	}
	return names
}

// Helpers for result enrichment
func mapCellToCharAndType(cell engine.Cell) (string, string) {
	switch cell.Type {
	case grid.Floor:
		return ".", "floor"
	case grid.Dock:
		return "S", "dock"
	case grid.Litter:
		if cell.Swept {
			return "✓", "litter_swept"
		}
		return "L", "litter"
	case grid.Recharge:
		return "R", "recharge"
	case grid.Obstacle:
		return "X", "obstacle"
	default:
		return "?", "unknown"
	}
}

func buildLocal3x3(state *engine.GameState) []string {
	if state == nil {
		return nil
	}
	px, py := state.RobotPos.X, state.RobotPos.Y
	lines := make([]string, 0, 3)
	for dy := -1; dy <= 1; dy++ {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			x, y := px+dx, py+dy
			if dx == 0 && dy == 0 {
				row.WriteString("@")
				continue
			}
			// out of bounds → treat as obstacle wall
			if y < 0 || y >= len(state.Grid) || x < 0 || x >= len(state.Grid[0]) {
				row.WriteString("X")
				continue
			}
			ch, _ := mapCellToCharAndType(state.Grid[y][x])
			row.WriteString(ch)
		}
		lines = append(lines, row.String())
	}
	return lines
}

func riskCode(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "critical"):
		return "CRITICAL"
	case strings.Contains(t, "danger"):
		return "DANGER"
	case strings.Contains(t, "caution"):
		return "CAUTION"
	case strings.Contains(t, "low"):
		return "LOW"
	case strings.Contains(t, "safe"):
		return "SAFE"
	default:
		return "UNKNOWN"
	}
}
