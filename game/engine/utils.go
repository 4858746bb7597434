package engine

import (
	"fmt"

	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/planner"
)

// CountTotalLitter counts the total number of litter cells in the room
func CountTotalLitter(cells [][]Cell) int {
	count := 0
	for _, row := range cells {
		for _, cell := range row {
			if cell.Type == grid.Litter {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// FindNearestUnsweptLitter finds the closest unswept litter and returns its position and distance
func FindNearestUnsweptLitter(state *GameState) (Position, int, bool) {
	minDistance := -1
	var nearestPos Position
	found := false

	for y := 0; y < len(state.Grid); y++ {
		for x := 0; x < len(state.Grid[y]); x++ {
			cell := state.Grid[y][x]
			if cell.Type == grid.Litter && !cell.Swept {
				pos := Position{X: x, Y: y}
				distance := ManhattanDistance(state.RobotPos, pos)
				if minDistance == -1 || distance < minDistance {
					minDistance = distance
					nearestPos = pos
					found = true
				}
			}
		}
	}

	return nearestPos, minDistance, found
}

// FindNearestRecharge finds the closest recharge pad and returns its position and distance
func FindNearestRecharge(state *GameState) (Position, int, bool) {
	minDistance := -1
	var nearestPos Position
	found := false

	for y := 0; y < len(state.Grid); y++ {
		for x := 0; x < len(state.Grid[y]); x++ {
			if state.Grid[y][x].Type == grid.Recharge {
				pos := Position{X: x, Y: y}
				distance := ManhattanDistance(state.RobotPos, pos)
				if minDistance == -1 || distance < minDistance {
					minDistance = distance
					nearestPos = pos
					found = true
				}
			}
		}
	}

	return nearestPos, minDistance, found
}

// AnalyzeEnergyRisk assesses energy danger level based on current energy and distance to nearest recharge pad
func AnalyzeEnergyRisk(state *GameState) string {
	if state.Energy <= 0 {
		return "CRITICAL: Energy empty!"
	}

	_, padDistance, padFound := FindNearestRecharge(state)
	if !padFound {
		return "WARNING: No recharge pads available!"
	}

	if state.Energy <= padDistance {
		return "DANGER: Insufficient energy to reach nearest recharge pad!"
	} else if state.Energy <= padDistance+2 {
		return "CAUTION: Low energy, prioritize recharging"
	} else if state.Energy <= state.MaxEnergy/3 {
		return "LOW: Consider recharging soon"
	}

	return "SAFE: Energy sufficient"
}

// CountCellType counts the total number of cells of a specific type in the room
func CountCellType(cells [][]Cell, cellType grid.CellType) int {
	count := 0
	for _, row := range cells {
		for _, cell := range row {
			if cell.Type == cellType {
				count++
			}
		}
	}
	return count
}

// SweptMask packs the state's swept litter set into a planner bitmask.
// Litter IDs carry the dense row-major index assigned at init time.
func SweptMask(state *GameState) planner.Mask {
	var mask planner.Mask
	for id, swept := range state.SweptLitter {
		if !swept {
			continue
		}
		var index int
		if _, err := fmt.Sscanf(id, "litter_%d", &index); err == nil {
			mask = mask.With(index)
		}
	}
	return mask
}
