// Package engine provides the core game logic for the SweepBot cleanup game.
//
// The engine package implements the game mechanics including:
//   - Grid-based movement and collision detection
//   - Energy management and recharge mechanics
//   - Litter sweeping and victory conditions
//   - Game state management and persistence
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the current game state,
// while GameConfig defines the room rules and layout loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/warehouse.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the robot
//	success := gameEngine.Move("up")
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The robot starts on its charging dock and must sweep every piece of
// litter in the room. Each move costs one unit of energy; stepping onto a
// recharge pad restores energy to the maximum. The game ends in victory
// when all litter is swept, or in defeat when energy runs out away from a
// recharge pad. Room configurations are validated with the route planner,
// so a loadable room is always fully sweepable at its energy budget.
package engine
