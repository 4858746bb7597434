// Package planner computes the minimum number of moves a SweepBot needs to
// sweep every piece of litter in a room, given a rechargeable energy budget.
//
// The search runs breadth-first over compound states of (row, column,
// collected-litter bitmask). Because a recharge pad can restore energy
// mid-route, a plain visited set is not enough: the same position and mask
// can legitimately be worth revisiting when reached with strictly more
// energy. The planner therefore keeps a dominance table mapping each state
// to the best energy it has been reached with, and only enqueues arrivals
// that strictly improve on it. An arrival with equal or lower energy can
// never reach anything the recorded one cannot, so pruning it loses no
// optimal route, and the strict improvement requirement bounds the search.
//
// The frontier is a strict FIFO, so states pop in non-decreasing move
// order exactly as in unweighted BFS; the first state popped with all
// litter bits set is therefore globally optimal.
//
// Usage:
//
//	moves, err := planner.MinMoves([]string{"L.S", "RXL"}, 5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if moves == planner.Unreachable {
//		fmt.Println("room cannot be fully swept")
//	}
package planner
