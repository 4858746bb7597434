package grid

import "fmt"

// Direction is one of the four orthogonal robot moves.
type Direction int

const (
	Down Direction = iota
	Up
	Right
	Left
)

// Directions lists all moves in the order the planner expands them. The
// order is not semantically significant but is applied consistently so
// tie-breaking between equal-length routes is deterministic.
var Directions = [4]Direction{Down, Up, Right, Left}

// Offset returns the (row, column) delta for the direction.
func (d Direction) Offset() (dr, dc int) {
	switch d {
	case Down:
		return 1, 0
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Left:
		return 0, -1
	}
	return 0, 0
}

// String returns the lowercase direction name used across the API surface.
func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	case Right:
		return "right"
	case Left:
		return "left"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps a direction name back to a Direction.
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "down":
		return Down, true
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "left":
		return Left, true
	}
	return 0, false
}
