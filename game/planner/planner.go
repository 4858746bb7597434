package planner

import (
	"errors"
	"fmt"

	"github.com/rpoletti/sweepbot/game/grid"
)

// Unreachable is returned by MinMoves when the room cannot be fully swept
// within the energy budget.
const Unreachable = -1

// MaxLitter caps the number of litter cells a single plan may cover. The
// state space grows as 2^k in the litter count, so the cap is a safety
// valve against adversarial rooms rather than a mask-width limit.
const MaxLitter = 20

var (
	ErrNegativeEnergy = errors.New("max energy must be non-negative")
	ErrTooMuchLitter  = fmt.Errorf("litter count exceeds planner capacity of %d", MaxLitter)
)

// Mask is a bitset of swept litter, one bit per dense litter index. Bits
// are only ever set along a route, never cleared.
type Mask uint32

// Has reports whether litter index i is marked swept.
func (m Mask) Has(i int) bool { return m&(1<<i) != 0 }

// With returns the mask with litter index i marked swept. Idempotent.
func (m Mask) With(i int) Mask { return m | 1<<i }

// FullMask returns the mask with the first k bits set.
func FullMask(k int) Mask { return Mask(1)<<k - 1 }

// state is the search key: position plus collection progress. Energy is
// deliberately not part of the key; it is tracked by the dominance table.
type state struct {
	row, col int
	mask     Mask
}

// node is a frontier entry. It records the energy the state was reached
// with and links back to its parent so the winning route can be unwound.
type node struct {
	st     state
	energy int
	moves  int
	dir    grid.Direction
	parent *node
}

// bestEnergy is the dominance table: the highest energy each state has
// been reached with. Absent entries behave as -1, so the first arrival at
// any state is always accepted.
type bestEnergy map[state]int

// improve records energy for s and reports true only if it strictly
// exceeds the previous best. Equal-or-lower arrivals are dominated: they
// cannot reach anything the recorded arrival cannot, and re-expanding
// them would let the search loop through recharge cycles forever.
func (b bestEnergy) improve(s state, energy int) bool {
	if prev, ok := b[s]; ok && energy <= prev {
		return false
	}
	b[s] = energy
	return true
}

// Planner plans sweep routes for one room at a fixed energy budget. It
// holds no search state between calls; each solve owns its own frontier
// and dominance table.
type Planner struct {
	grid      *grid.Grid
	maxEnergy int
}

// New creates a planner for the grid. maxEnergy is both the robot's
// starting energy and the level recharge pads restore to.
func New(g *grid.Grid, maxEnergy int) (*Planner, error) {
	if maxEnergy < 0 {
		return nil, ErrNegativeEnergy
	}
	if g.LitterCount() > MaxLitter {
		return nil, ErrTooMuchLitter
	}
	return &Planner{grid: g, maxEnergy: maxEnergy}, nil
}

// MinMoves returns the minimum number of moves needed to sweep all litter
// starting from the dock with a full energy budget, or Unreachable.
func (p *Planner) MinMoves() int {
	n := p.search(p.grid.Start(), p.maxEnergy, p.initialMask())
	if n == nil {
		return Unreachable
	}
	return n.moves
}

// Route returns an optimal move sequence from the dock, or false if the
// room cannot be fully swept. A room with no litter yields an empty route.
func (p *Planner) Route() ([]grid.Direction, bool) {
	return p.unwind(p.search(p.grid.Start(), p.maxEnergy, p.initialMask()))
}

// RouteFrom replans from an arbitrary mid-game situation: the robot's
// current position, remaining energy, and the litter already swept. Litter
// on the current cell counts as swept.
func (p *Planner) RouteFrom(pos grid.Pos, energy int, swept Mask) ([]grid.Direction, bool) {
	if !p.grid.Passable(pos.Row, pos.Col) || energy < 0 {
		return nil, false
	}
	if energy > p.maxEnergy {
		energy = p.maxEnergy
	}
	if i, ok := p.grid.LitterIndex(pos.Row, pos.Col); ok {
		swept = swept.With(i)
	}
	return p.unwind(p.search(pos, energy, swept))
}

// MinMoves parses layout rows and returns the minimal move count to sweep
// every litter cell with the given energy budget, or Unreachable if no
// route exists. Errors are raised only for malformed input, before any
// search begins; running out of energy mid-room is not an error.
func MinMoves(layout []string, maxEnergy int) (int, error) {
	p, err := newFromLayout(layout, maxEnergy)
	if err != nil {
		return 0, err
	}
	return p.MinMoves(), nil
}

// Route parses layout rows and returns an optimal move sequence. The
// route is nil when the room cannot be fully swept and empty (non-nil)
// when there is no litter to sweep.
func Route(layout []string, maxEnergy int) ([]grid.Direction, error) {
	p, err := newFromLayout(layout, maxEnergy)
	if err != nil {
		return nil, err
	}
	route, ok := p.Route()
	if !ok {
		return nil, nil
	}
	return route, nil
}

func newFromLayout(layout []string, maxEnergy int) (*Planner, error) {
	g, err := grid.Parse(layout)
	if err != nil {
		return nil, err
	}
	return New(g, maxEnergy)
}

// initialMask marks litter under the start cell as already swept. Parse
// never places litter on the dock, but RouteFrom relies on the same rule.
func (p *Planner) initialMask() Mask {
	var m Mask
	start := p.grid.Start()
	if i, ok := p.grid.LitterIndex(start.Row, start.Col); ok {
		m = m.With(i)
	}
	return m
}

// search runs the breadth-first exploration and returns the first node
// popped with a full mask, or nil if the frontier drains first. Every push
// adds exactly one move over its parent and the frontier is strict FIFO,
// so nodes pop in non-decreasing move order; dominance pruning changes
// which arrivals are eligible, never their ordering.
func (p *Planner) search(startPos grid.Pos, startEnergy int, startMask Mask) *node {
	full := FullMask(p.grid.LitterCount())
	start := state{row: startPos.Row, col: startPos.Col, mask: startMask}

	best := bestEnergy{start: startEnergy}
	queue := []*node{{st: start, energy: startEnergy}}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		queue[head] = nil

		if n.st.mask == full {
			return n
		}

		for _, d := range grid.Directions {
			dr, dc := d.Offset()
			r, c := n.st.row+dr, n.st.col+dc
			if !p.grid.Passable(r, c) {
				continue
			}

			// Decrement first, then apply the recharge override: a move
			// that would underflow energy is rejected even when the
			// destination is a recharge pad.
			energy := n.energy - 1
			if energy < 0 {
				continue
			}

			cell := p.grid.At(r, c)
			if cell.Type == grid.Recharge {
				energy = p.maxEnergy
			}

			mask := n.st.mask
			if cell.Type == grid.Litter {
				mask = mask.With(cell.LitterIndex)
			}

			next := state{row: r, col: c, mask: mask}
			if !best.improve(next, energy) {
				continue
			}

			queue = append(queue, &node{
				st:     next,
				energy: energy,
				moves:  n.moves + 1,
				dir:    d,
				parent: n,
			})
		}
	}

	return nil
}

// unwind walks parent links from the goal node back to the root and
// reverses the collected moves into route order.
func (p *Planner) unwind(goal *node) ([]grid.Direction, bool) {
	if goal == nil {
		return nil, false
	}
	route := make([]grid.Direction, goal.moves)
	for n := goal; n.parent != nil; n = n.parent {
		route[n.moves-1] = n.dir
	}
	return route, true
}
