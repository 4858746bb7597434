package engine

import (
	"fmt"
	"time"

	"github.com/rpoletti/sweepbot/game/grid"
)

// CanMoveTo checks if the robot can move to the specified coordinates
func (gs *GameState) CanMoveTo(x, y int) bool {
	// Check bounds - handle non-square rooms properly
	if y < 0 || y >= len(gs.Grid) {
		return false
	}
	if x < 0 || x >= len(gs.Grid[0]) {
		return false
	}
	// Only obstacles block movement
	return gs.Grid[y][x].Type != grid.Obstacle
}

// MoveRobot attempts to move the robot in the specified direction
func (gs *GameState) MoveRobot(direction string, config *GameConfig) bool {
	if gs.GameOver {
		return false
	}

	newX, newY := gs.RobotPos.X, gs.RobotPos.Y

	switch direction {
	case "up":
		newY--
	case "down":
		newY++
	case "left":
		newX--
	case "right":
		newX++
	default:
		return false
	}

	// Check obstacle collision BEFORE energy check
	if !gs.CanMoveTo(newX, newY) {
		obstacleType := "boundary"
		if newY >= 0 && newY < len(gs.Grid) && newX >= 0 && newX < len(gs.Grid[0]) {
			obstacleType = string(gs.Grid[newY][newX].Type)
		}

		// Check if crashing ends the game
		if config.CrashEndsGame {
			gs.Message = fmt.Sprintf("COLLISION: Hit %s at (%d,%d) moving %s from (%d,%d)! Game Over!",
				obstacleType, newX, newY, direction, gs.RobotPos.X, gs.RobotPos.Y)
			if config.Messages.HitObstacle != "" {
				gs.Message = config.Messages.HitObstacle + fmt.Sprintf(" [Hit: %s at (%d,%d)]", obstacleType, newX, newY)
			}
			gs.GameOver = true
			return false
		}
		gs.Message = fmt.Sprintf("Can't move %s: %s at (%d,%d)", direction, obstacleType, newX, newY)
		if config.Messages.CantMove != "" {
			gs.Message = config.Messages.CantMove + fmt.Sprintf(" [Blocked by: %s]", obstacleType)
		}
		return false
	}

	// Now check energy for valid moves
	if gs.Energy <= 0 {
		gs.Message = config.Messages.OutOfEnergy
		gs.GameOver = true
		return false
	}

	// Move robot and consume energy. The recharge override applies after
	// the decrement, on arrival.
	gs.RobotPos.X = newX
	gs.RobotPos.Y = newY
	gs.Energy--

	// Check current cell
	currentCell := &gs.Grid[newY][newX]

	switch currentCell.Type {
	case grid.Recharge:
		gs.Energy = gs.MaxEnergy
		gs.Message = config.Messages.RechargeCharge

	case grid.Litter:
		if currentCell.ID != "" && !gs.SweptLitter[currentCell.ID] {
			gs.SweptLitter[currentCell.ID] = true
			currentCell.Swept = true
			gs.Score++
			gs.Message = fmt.Sprintf(config.Messages.LitterSwept, gs.Score)

			// Check victory condition
			if gs.Score == CountTotalLitter(gs.Grid) {
				gs.Victory = true
				gs.GameOver = true
				gs.Message = fmt.Sprintf(config.Messages.Victory, gs.Score)
			}
		} else if currentCell.Swept {
			gs.Message = config.Messages.LitterAlreadySwept
		}

	default:
		gs.Message = fmt.Sprintf(config.Messages.EnergyStatus, gs.Energy, gs.MaxEnergy)
	}

	// Check if stranded
	if gs.Energy == 0 && !gs.GameOver && !gs.OnRechargePad() {
		gs.GameOver = true
		gs.Message = config.Messages.Stranded
	}

	return true
}

// OnRechargePad reports whether the robot currently sits on a recharge pad
func (gs *GameState) OnRechargePad() bool {
	return gs.Grid[gs.RobotPos.Y][gs.RobotPos.X].Type == grid.Recharge
}

// GenerateLocalView creates list of 8 surrounding cells around the robot
func (gs *GameState) GenerateLocalView() []SurroundingCell {
	px, py := gs.RobotPos.X, gs.RobotPos.Y

	getCellType := func(x, y int) grid.CellType {
		if y >= 0 && y < len(gs.Grid) && x >= 0 && x < len(gs.Grid[0]) {
			return gs.Grid[y][x].Type
		}
		return grid.Obstacle // Out of bounds = obstacle
	}

	directions := []struct{ dx, dy int }{
		{0, -1},  // North
		{1, -1},  // North-East
		{1, 0},   // East
		{1, 1},   // South-East
		{0, 1},   // South
		{-1, 1},  // South-West
		{-1, 0},  // West
		{-1, -1}, // North-West
	}

	surroundings := make([]SurroundingCell, 8)
	for i, dir := range directions {
		x, y := px+dir.dx, py+dir.dy
		surroundings[i] = SurroundingCell{
			X:    x,
			Y:    y,
			Type: getCellType(x, y),
		}
	}

	return surroundings
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, fromPos, toPos Position, success bool) {
	entry := MoveHistoryEntry{
		Action:       action,
		FromPosition: fromPos,
		ToPosition:   toPos,
		Energy:       gs.Energy,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
