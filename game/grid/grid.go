package grid

import (
	"errors"
	"fmt"
)

// CellType represents different types of room cells
type CellType string

const (
	Floor    CellType = "floor"
	Dock     CellType = "dock"
	Obstacle CellType = "obstacle"
	Recharge CellType = "recharge"
	Litter   CellType = "litter"
)

// Layout symbols accepted by Parse.
const (
	SymbolDock     = 'S'
	SymbolFloor    = '.'
	SymbolObstacle = 'X'
	SymbolRecharge = 'R'
	SymbolLitter   = 'L'
)

// Validation errors returned by Parse. Callers can match them with errors.Is
// after unwrapping the positional context added by Parse.
var (
	ErrEmptyLayout   = errors.New("layout is empty")
	ErrRaggedLayout  = errors.New("layout rows have inconsistent lengths")
	ErrNoDock        = errors.New("layout has no dock cell")
	ErrMultipleDocks = errors.New("layout has more than one dock cell")
	ErrUnknownSymbol = errors.New("unknown layout symbol")
)

// Pos is a cell coordinate in (row, column) form.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is a single parsed room cell. LitterIndex is the dense litter index
// for litter cells and -1 for everything else.
type Cell struct {
	Type        CellType
	LitterIndex int
}

// Grid is an immutable, validated room. It is safe for concurrent readers.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	start      Pos
	litter     []Pos
}

// Parse validates layout rows and builds a Grid. It fails if the layout is
// empty or ragged, contains an unrecognized symbol, or does not contain
// exactly one dock ('S') cell.
func Parse(layout []string) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyLayout
	}

	g := &Grid{
		rows:  len(layout),
		cols:  len(layout[0]),
		cells: make([][]Cell, len(layout)),
	}

	dockFound := false
	for r, row := range layout {
		if len(row) != g.cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), g.cols, ErrRaggedLayout)
		}

		g.cells[r] = make([]Cell, g.cols)
		for c := 0; c < g.cols; c++ {
			cell := Cell{LitterIndex: -1}
			switch row[c] {
			case SymbolFloor:
				cell.Type = Floor
			case SymbolObstacle:
				cell.Type = Obstacle
			case SymbolRecharge:
				cell.Type = Recharge
			case SymbolDock:
				if dockFound {
					return nil, fmt.Errorf("second dock at (%d,%d): %w", r, c, ErrMultipleDocks)
				}
				dockFound = true
				cell.Type = Dock
				g.start = Pos{Row: r, Col: c}
			case SymbolLitter:
				cell.Type = Litter
				cell.LitterIndex = len(g.litter)
				g.litter = append(g.litter, Pos{Row: r, Col: c})
			default:
				return nil, fmt.Errorf("symbol %q at (%d,%d): %w", row[c], r, c, ErrUnknownSymbol)
			}
			g.cells[r][c] = cell
		}
	}

	if !dockFound {
		return nil, ErrNoDock
	}

	return g, nil
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int { return g.cols }

// Start returns the position of the dock cell.
func (g *Grid) Start() Pos { return g.start }

// LitterCount returns the total number of litter cells.
func (g *Grid) LitterCount() int { return len(g.litter) }

// InBounds reports whether (r, c) lies inside the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the cell at (r, c). It panics on out-of-bounds coordinates;
// callers are expected to check InBounds first.
func (g *Grid) At(r, c int) Cell {
	return g.cells[r][c]
}

// LitterIndex returns the dense index of the litter cell at (r, c), or
// false if the cell is not litter or out of bounds.
func (g *Grid) LitterIndex(r, c int) (int, bool) {
	if !g.InBounds(r, c) {
		return 0, false
	}
	cell := g.cells[r][c]
	if cell.Type != Litter {
		return 0, false
	}
	return cell.LitterIndex, true
}

// LitterPositions returns the litter cell positions in index order. The
// returned slice is a copy and may be modified by the caller.
func (g *Grid) LitterPositions() []Pos {
	out := make([]Pos, len(g.litter))
	copy(out, g.litter)
	return out
}

// Passable reports whether the robot may occupy (r, c): in bounds and not
// an obstacle.
func (g *Grid) Passable(r, c int) bool {
	return g.InBounds(r, c) && g.cells[r][c].Type != Obstacle
}
