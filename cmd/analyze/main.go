// Command analyze prints quick, human-readable diagnostics about room
// configuration files in the project's configs directory. It summarizes
// dimensions, energy settings, counts of recharge stations and litter,
// and runs the exact planner to report the minimum number of moves
// needed to sweep each room (or flag it as unsolvable).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/planner"
)

// AnalysisConfig is a light struct for reading config files used by analysis.
type AnalysisConfig struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	MaxEnergy      int               `json:"max_energy"`
	StartingEnergy int               `json:"starting_energy"`
	Layout         []string          `json:"layout"`
	Legend         map[string]string `json:"legend"`
	CrashEndsGame  bool              `json:"crash_ends_game"`
	Messages       map[string]string `json:"messages"`
}

// AnalysisPoint denotes a room coordinate used during analysis output.
type AnalysisPoint struct {
	X, Y int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	entries, err := os.ReadDir(configDir)
	if err != nil {
		fmt.Printf("Error reading config directory: %v\n", err)
		os.Exit(1)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, configFile := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join(configDir, configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	rows := len(config.Layout)
	cols := 0
	if rows > 0 {
		cols = len(config.Layout[0])
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Room Size: %d x %d\n", rows, cols)
	fmt.Printf("Max Energy: %d\n", config.MaxEnergy)
	fmt.Printf("Starting Energy: %d\n", config.StartingEnergy)

	// Find recharge stations, litter, and the dock
	var recharges []AnalysisPoint
	var litter []AnalysisPoint
	var dockPos AnalysisPoint
	foundDock := false

	for y, row := range config.Layout {
		for x, cell := range row {
			switch cell {
			case 'R':
				recharges = append(recharges, AnalysisPoint{x, y})
			case 'L':
				litter = append(litter, AnalysisPoint{x, y})
			case 'S':
				if !foundDock {
					dockPos = AnalysisPoint{x, y}
					foundDock = true
				}
			}
		}
	}

	fmt.Printf("Dock Position: (%d, %d)\n", dockPos.X, dockPos.Y)
	fmt.Printf("Total Recharge Stations: %d\n", len(recharges))
	fmt.Printf("Total Litter: %d\n", len(litter))

	// Quick heuristic: flag litter further than max energy from every
	// energy source (dock counts only as the starting point)
	unreachableByDistance := []AnalysisPoint{}
	for _, l := range litter {
		minDist := abs(l.X-dockPos.X) + abs(l.Y-dockPos.Y)
		for _, r := range recharges {
			dist := abs(l.X-r.X) + abs(l.Y-r.Y)
			if dist < minDist {
				minDist = dist
			}
		}
		if minDist > config.MaxEnergy {
			unreachableByDistance = append(unreachableByDistance, l)
		}
	}

	if len(unreachableByDistance) > 0 {
		fmt.Printf("⚠️  WARNING: %d litter cells are further than max energy from every energy source\n", len(unreachableByDistance))
		for i, p := range unreachableByDistance {
			if i < 5 {
				fmt.Printf("   Out of range: (%d, %d)\n", p.X, p.Y)
			}
		}
		if len(unreachableByDistance) > 5 {
			fmt.Printf("   ... and %d more\n", len(unreachableByDistance)-5)
		}
	}

	// Exact answer from the planner
	room, err := grid.Parse(config.Layout)
	if err != nil {
		fmt.Printf("⚠️  Layout error: %v\n", err)
		return
	}

	p, err := planner.New(room, config.MaxEnergy)
	if err != nil {
		fmt.Printf("⚠️  Planner error: %v\n", err)
		return
	}

	moves := p.MinMoves()
	if moves == planner.Unreachable {
		fmt.Printf("⚠️  CRITICAL: this room cannot be fully swept (exact search exhausted)\n")
		return
	}

	fmt.Printf("✅ Solvable: minimum %d moves to sweep all litter\n", moves)
	if route, ok := p.Route(); ok && len(route) <= 40 {
		names := make([]string, len(route))
		for i, d := range route {
			names[i] = d.String()
		}
		fmt.Printf("   Optimal route: %s\n", strings.Join(names, ","))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
