// Package grid models the room a SweepBot operates in.
//
// A room is described by equal-length layout strings using the symbols:
//   - 'S' the charging dock the robot starts on (exactly one per room)
//   - '.' open floor
//   - 'X' an impassable obstacle
//   - 'R' a recharge pad that refills the robot's energy on arrival
//   - 'L' a piece of litter to sweep
//
// Parse validates the layout and produces an immutable Grid. Each litter
// cell receives a dense, zero-based index assigned in row-major scan order;
// the indices are stable for the lifetime of the grid and are what the
// planner packs into its collection bitmask.
//
// Usage:
//
//	g, err := grid.Parse([]string{"L.S", "RXL"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	start := g.Start()
//	total := g.LitterCount()
package grid
