// Command validate provides a small CLI that validates room configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Layout consistency and allowed characters (S, ., X, R, L)
//   - Presence of exactly one dock (S) and at least one litter (L)
//   - Energy constraints (starting <= max and both positive)
//   - Required message keys
//   - Connectivity: all litter is reachable from the dock via passable cells
//   - Solvability: the exact planner can fully sweep the room within the
//     energy budget
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpoletti/sweepbot/game/planner"
)

// Config mirrors the JSON schema for a room configuration.
type Config struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Layout         []string          `json:"layout"`
	MaxEnergy      int               `json:"max_energy"`
	StartingEnergy int               `json:"starting_energy"`
	Messages       map[string]string `json:"messages"`
	CrashEndsGame  bool              `json:"crash_ends_game"`
	Legend         map[string]string `json:"legend"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, layout/legend validation, message presence,
// and reachability analysis for litter.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate layout
	if len(config.Layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
	}

	roomWidth := -1
	dockCount := 0
	litterCount := 0
	rechargeCount := 0
	validChars := map[rune]bool{
		'S': true, // Dock
		'.': true, // Floor
		'X': true, // Obstacle
		'R': true, // Recharge
		'L': true, // Litter
	}

	for i, row := range config.Layout {
		if roomWidth == -1 {
			roomWidth = len(row)
		} else if len(row) != roomWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent layout width at row %d: expected %d, got %d", i+1, roomWidth, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
			switch char {
			case 'S':
				dockCount++
			case 'L':
				litterCount++
			case 'R':
				rechargeCount++
			}
		}
	}

	// Validate room elements
	if dockCount == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have exactly 1 dock (S) cell, found none")
	} else if dockCount > 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 dock (S) cell, found %d", dockCount))
	}

	if litterCount == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 litter (L) cell")
	}

	// Validate energy settings
	if config.MaxEnergy <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_energy must be positive, got %d", config.MaxEnergy))
	}

	if config.StartingEnergy <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_energy must be positive, got %d", config.StartingEnergy))
	}

	if config.StartingEnergy > config.MaxEnergy {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_energy (%d) cannot exceed max_energy (%d)", config.StartingEnergy, config.MaxEnergy))
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"recharge_charge",
		"litter_swept",
		"litter_already_swept",
		"victory",
		"out_of_energy",
		"stranded",
		"cant_move",
		"energy_status",
		"hit_obstacle",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Connectivity validation - check that all litter is reachable from the dock
	if result.Valid {
		reachabilityResult := validateConnectivity(config.Layout)
		result.Errors = append(result.Errors, reachabilityResult.Errors...)
		if !reachabilityResult.Valid {
			result.Valid = false
		}
	}

	// Solvability: connectivity alone cannot see energy limits, so run the
	// exact planner as the final check.
	if result.Valid {
		moves, err := planner.MinMoves(config.Layout, config.MaxEnergy)
		switch {
		case err != nil:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Planner rejected layout: %v", err))
		case moves == planner.Unreachable:
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Room cannot be fully swept with max_energy=%d", config.MaxEnergy))
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Solvable: minimum %d moves", moves))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Room: %dx%d", len(config.Layout), roomWidth))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Litter cells: %d", litterCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Recharge pads: %d", rechargeCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Energy: %d/%d", config.StartingEnergy, config.MaxEnergy))
	}

	return result
}

// validateConnectivity ensures all litter is reachable from the dock using
// 4-directional movement over passable cells (., S, R, L). It reports any
// sealed litter and returns an aggregated ValidationResult.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	// Find the dock and all litter cells
	var dock []int
	var litter [][]int

	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			switch layout[y][x] {
			case 'S':
				dock = []int{x, y}
			case 'L':
				litter = append(litter, []int{x, y})
			}
		}
	}

	if dock == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No dock position found for connectivity test")
		return result
	}

	if len(litter) == 0 {
		// Already validated elsewhere, but just in case
		result.Valid = false
		result.Errors = append(result.Errors, "No litter found for connectivity test")
		return result
	}

	// Flood fill from the dock to find all reachable cells
	visited := make(map[string]bool)
	queue := [][]int{dock}

	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != 'X'
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	// Check that all litter is reachable
	sealedLitter := []string{}
	for _, cell := range litter {
		lx, ly := cell[0], cell[1]
		key := fmt.Sprintf("%d,%d", lx, ly)
		if !visited[key] {
			sealedLitter = append(sealedLitter, fmt.Sprintf("Litter at (%d,%d)", lx, ly))
		}
	}

	if len(sealedLitter) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d/%d litter cells unreachable from dock", len(sealedLitter), len(litter)))
		for _, cell := range sealedLitter {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", cell))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d litter cells reachable from dock", len(litter)))
	}

	return result
}

// main scans the configs directory (first argument, default ../configs) for
// *.json files and validates each one, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
