// Command autopilot drives a live game session to victory over the REST API.
// It fetches the session state, rebuilds the room layout, asks the exact
// planner for an optimal route from the robot's current position, and replays
// that route move by move (or as one bulk request with -bulk).
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/planner"
	"github.com/rpoletti/sweepbot/game/service"
)

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configName string) (*engine.GameState, error) {
	var reqBody []byte
	var err error

	if configName != "" {
		reqBody, err = json.Marshal(map[string]string{"config_name": configName})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session service.SessionInfo
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*engine.GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var session service.SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return session.GameState, nil
}

func (c *Client) Move(direction string) (*service.MoveResult, error) {
	body, err := json.Marshal(map[string]string{"direction": direction})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute move: %w", err)
	}
	defer resp.Body.Close()

	var result service.MoveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}

	return &result, nil
}

func (c *Client) BulkMove(moves []string) (*service.BulkMoveResult, error) {
	body, err := json.Marshal(map[string]interface{}{"moves": moves})
	if err != nil {
		return nil, fmt.Errorf("marshal bulk move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/bulk-move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute bulk move: %w", err)
	}
	defer resp.Body.Close()

	var result service.BulkMoveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse bulk move response: %w", err)
	}

	return &result, nil
}

type resetResponse struct {
	Message string            `json:"message"`
	State   *engine.GameState `json:"state"`
}

func (c *Client) Reset() (*engine.GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp resetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.State, nil
}

// layoutFromState reverses the state grid back into layout rows. Swept litter
// cells still come back as 'L'; sweptness is tracked separately so the planner
// keeps a stable litter index order.
func layoutFromState(state *engine.GameState) ([]string, error) {
	rows := make([]string, len(state.Grid))
	for y, row := range state.Grid {
		line := make([]byte, len(row))
		for x, cell := range row {
			switch cell.Type {
			case grid.Floor:
				line[x] = grid.SymbolFloor
			case grid.Dock:
				line[x] = grid.SymbolDock
			case grid.Obstacle:
				line[x] = grid.SymbolObstacle
			case grid.Recharge:
				line[x] = grid.SymbolRecharge
			case grid.Litter:
				line[x] = grid.SymbolLitter
			default:
				return nil, fmt.Errorf("unknown cell type %q at (%d,%d)", cell.Type, x, y)
			}
		}
		rows[y] = string(line)
	}
	return rows, nil
}

// sweptMask builds the planner's swept-litter bitmask from the state grid.
func sweptMask(room *grid.Grid, state *engine.GameState) planner.Mask {
	var mask planner.Mask
	for y, row := range state.Grid {
		for x, cell := range row {
			if cell.Type != grid.Litter || !cell.Swept {
				continue
			}
			if idx, ok := room.LitterIndex(y, x); ok {
				mask = mask.With(idx)
			}
		}
	}
	return mask
}

// planRoute computes an optimal route from the robot's current position,
// energy, and swept litter. ok is false when no completion exists.
func planRoute(state *engine.GameState) ([]grid.Direction, bool, error) {
	layout, err := layoutFromState(state)
	if err != nil {
		return nil, false, err
	}

	room, err := grid.Parse(layout)
	if err != nil {
		return nil, false, fmt.Errorf("parse layout: %w", err)
	}

	p, err := planner.New(room, state.MaxEnergy)
	if err != nil {
		return nil, false, fmt.Errorf("init planner: %w", err)
	}

	pos := grid.Pos{Row: state.RobotPos.Y, Col: state.RobotPos.X}
	route, ok := p.RouteFrom(pos, state.Energy, sweptMask(room, state))
	return route, ok, nil
}

func countTotalLitter(state *engine.GameState) int {
	count := 0
	for _, row := range state.Grid {
		for _, cell := range row {
			if cell.Type == grid.Litter {
				count++
			}
		}
	}
	return count
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configName := flag.String("config", "", "Room configuration name (office, warehouse, ...)")
	continueSession := flag.String("continue", "", "Resume an existing session by ID")
	bulk := flag.Bool("bulk", false, "Send the whole route as one bulk-move request")
	maxReplans := flag.Int("max-replans", 5, "Maximum replans before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *engine.GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*configName)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	totalLitter := countTotalLitter(state)
	log.Printf("Room: %dx%d, Litter to sweep: %d, Energy: %d/%d",
		len(state.Grid[0]), len(state.Grid), totalLitter, state.Energy, state.MaxEnergy)

	// Plan and execute, replanning from the live state after each pass.
	for attempt := 1; attempt <= *maxReplans; attempt++ {
		if state.Victory {
			break
		}
		if state.GameOver {
			log.Printf("🔄 Session is game over, resetting...")
			state, err = client.Reset()
			if err != nil {
				log.Fatalf("Failed to reset game: %v", err)
			}
		}

		route, ok, err := planRoute(state)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}
		if !ok {
			log.Printf("❌ No completion exists from (%d,%d) with energy %d; the room cannot be fully swept from here",
				state.RobotPos.X, state.RobotPos.Y, state.Energy)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(1)
		}
		if len(route) == 0 {
			// Nothing left to sweep but the server has not flagged victory yet.
			log.Printf("Route is empty; all litter already swept")
			break
		}

		log.Printf("=== 🤖 Pass %d/%d: optimal route has %d moves ===", attempt, *maxReplans, len(route))

		if *bulk {
			moves := make([]string, len(route))
			for i, d := range route {
				moves[i] = d.String()
			}
			result, err := client.BulkMove(moves)
			if err != nil {
				log.Fatalf("Bulk move failed: %v", err)
			}
			log.Printf("Bulk: executed %d/%d moves, stop=%s, energy=%d",
				result.MovesExecuted, len(moves), result.StopReasonCode, result.EndEnergy)
			state = result.GameState
		} else {
			for i, d := range route {
				result, err := client.Move(d.String())
				if err != nil {
					log.Printf("Move %d (%s) failed: %v", i+1, d, err)
					break
				}
				state = result.GameState
				if *verbose {
					log.Printf("Move %d/%d: %s -> (%d,%d), energy %d/%d",
						i+1, len(route), d, state.RobotPos.X, state.RobotPos.Y, state.Energy, state.MaxEnergy)
				}
				if state.Victory || state.GameOver {
					break
				}
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
			}
		}

		sweptCount := len(state.SweptLitter)
		log.Printf("Pass %d: Swept=%d/%d, Energy=%d/%d, Position=(%d,%d)",
			attempt, sweptCount, totalLitter, state.Energy, state.MaxEnergy,
			state.RobotPos.X, state.RobotPos.Y)
	}

	if state.Victory {
		log.Printf("🎉 VICTORY! Room fully swept in %d moves", state.TotalMoves)
		log.Printf("Session: %s", client.sessionID)
		os.Exit(0)
	}

	log.Printf("❌ Failed to finish after %d passes", *maxReplans)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
