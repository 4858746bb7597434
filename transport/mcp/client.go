package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/grid"
	"github.com/rpoletti/sweepbot/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"SweepBot Cleanup Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`SweepBot Cleanup Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sweep all litter (L) to win. Your robot (@) starts at the dock (S) with limited energy that depletes with each move. Recharge stations (R) restore energy to full; the dock does NOT recharge.

AVAILABLE TOOLS:
- game_state: Get current game state
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- reset_game: Reset to initial state
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- solve: Compute the exact minimum number of moves to sweep a session's room
- hint: Get the next move on an optimal completion from the current state
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific room cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the robot in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	// Planning
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Compute the exact minimum number of moves needed to sweep all litter in a session's room, starting fresh from the dock. Returns -1 when the room cannot be fully swept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Get the next move on an optimal completion from the robot's CURRENT position, energy, and already-swept litter. Use when stuck mid-game.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific cell in the room, including its exact character type. Useful for verifying whether a cell is passable (., S, R, L) or impassable (X).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Room: %dx%d, Energy: %d\n\n",
			config.Name, config.Description, config.Rows, config.Cols, config.MaxEnergy)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var solve service.SolveResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/solve", sessionID), nil, &solve)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !solve.Reachable {
		return mcp.NewToolResultText(fmt.Sprintf(
			"This room cannot be fully swept (min_moves = %d).\nRoom: %dx%d, Litter: %d, Max energy: %d",
			solve.MinMoves, solve.Rows, solve.Cols, solve.LitterCount, solve.MaxEnergy)), nil
	}

	result := fmt.Sprintf("Minimum moves to sweep all litter: %d\n", solve.MinMoves)
	result += fmt.Sprintf("Room: %dx%d, Litter: %d, Max energy: %d\n", solve.Rows, solve.Cols, solve.LitterCount, solve.MaxEnergy)
	if len(solve.Route) > 0 {
		result += fmt.Sprintf("Optimal route: %s\n", strings.Join(solve.Route, ", "))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var hint service.HintResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/hint", sessionID), nil, &hint)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if hint.Complete {
		return mcp.NewToolResultText("All litter is already swept. Nothing left to do!"), nil
	}
	if !hint.Reachable {
		return mcp.NewToolResultText("No completion exists from the current position and energy. Consider resetting the session."), nil
	}

	result := fmt.Sprintf("Next move: %s\n", hint.Direction)
	result += fmt.Sprintf("Remaining moves on an optimal completion: %d\n", hint.RemainingMoves)
	if len(hint.Route) > 0 {
		result += fmt.Sprintf("Full route: %s\n", strings.Join(hint.Route, ", "))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🤖 SweepBot Cleanup Game - Complete Instructions

GAME OBJECTIVE:
Navigate your cleanup robot to sweep all litter while managing energy and avoiding obstacles.

GAME MECHANICS:
• Movement: Each move consumes 1 energy unit
• Recharging: Restore energy to full at recharge stations (R)
• The dock (S) is only the starting point - it does NOT recharge
• Victory: Sweep all litter to win the game
• Game Over: Energy depleted with no reachable recharge station

ROOM LEGEND:
• @ - Robot (your current position)
• . - Floor (passable terrain)
• S - Dock (passable, starting point, no recharge)
• L - Litter (passable, sweep objective)
• R - Recharge station (passable, restores energy to full)
• X - Obstacle (impassable)
• ✓ - Swept litter (shows completed objectives)

🤖 AI AGENTS - CRITICAL SUCCESS STRATEGIES:

⚠️ CHARACTER RECOGNITION:
BEFORE any navigation planning, you MUST:

1. **Parse Character-by-Character**: Never scan visually - examine each position
   Example: "XXXX.XXXXX" must be parsed as:
   Position 0-3: X X X X (obstacles)
   Position 4: . (FLOOR!) ← This is passable!
   Position 5-9: X X X X X (obstacles)

2. **Verification Strategy**:
   - If a row appears "completely blocked", re-examine position by position
   - Look for single . characters between X clusters
   - Use the describe_cell tool to verify individual cells

🧮 EXACT PLANNING TOOLS:
- Use the solve tool to get the exact minimum number of moves for the
  whole room, computed from the dock with a fresh energy budget
- Use the hint tool mid-game: it plans from your CURRENT position,
  remaining energy, and already-swept litter
- If solve returns -1, the room cannot be fully swept no matter what

⚡ PROACTIVE ENERGY MANAGEMENT:
- Calculate distances to ALL recharge stations before starting routes
- A move that would drop energy below zero is rejected, even onto a
  recharge station - you need at least 1 energy to reach it
- Stepping on a recharge station resets energy to the maximum
- Always maintain enough energy to reach the nearest recharge station

🎯 SECTION-BASED PROBLEM SOLVING:
- Divide large rooms into logical sections anchored on recharge stations
- Complete one section fully before moving to the next
- Use bulk_move with a planned route for efficiency

MOVEMENT COMMANDS:
- up, down, left, right - Single moves in cardinal directions
- Bulk moves - Execute multiple moves in sequence for efficiency
- Reset parameter available for fresh starts

VICTORY CONDITIONS:
- Sweep ALL litter in the room to achieve victory
- Litter shows as ✓ when successfully swept
- Game displays "🎉 VICTORY!" when all litter is swept

GAME OVER CONDITIONS:
- Energy reaches 0 with no accessible recharge stations
- Game displays "💀 GAME OVER" when this occurs

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and configuration
- Use session-specific tools for multi-game management

Remember: success requires careful character recognition, exact distance accounting, and proactive energy management. When in doubt, ask for a hint!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	// Get the current game state to access the room grid
	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Check bounds
	rows := len(state.Grid)
	cols := 0
	if rows > 0 {
		cols = len(state.Grid[0])
	}
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Room is %d rows x %d cols (y 0-%d, x 0-%d)",
			x, y, rows, cols, rows-1, cols-1)), nil
	}

	// Get cell information
	cell := state.Grid[y][x]

	// Determine cell character and description
	var cellChar string
	var cellType string
	var passable bool
	var description string

	// Check if the robot is at this position
	if x == state.RobotPos.X && y == state.RobotPos.Y {
		cellChar = "@"
		description = "Robot's current position"
	}

	switch cell.Type {
	case grid.Floor:
		if cellChar == "" {
			cellChar = "."
		}
		cellType = "Floor"
		passable = true
		if description == "" {
			description = "Empty floor - safe to travel"
		}
	case grid.Dock:
		if cellChar == "" {
			cellChar = "S"
		}
		cellType = "Dock"
		passable = true
		if description == "" {
			description = "Dock - the robot's starting point (does NOT recharge)"
		}
	case grid.Litter:
		if cell.Swept {
			if cellChar == "" {
				cellChar = "✓"
			}
			cellType = "Litter (Swept)"
			if description == "" {
				description = "Litter already swept - objective completed here"
			}
		} else {
			if cellChar == "" {
				cellChar = "L"
			}
			cellType = "Litter"
			if description == "" {
				description = "Litter to sweep - objective location"
			}
		}
		passable = true
	case grid.Recharge:
		if cellChar == "" {
			cellChar = "R"
		}
		cellType = "Recharge"
		passable = true
		if description == "" {
			description = "Recharge station - restores energy to full"
		}
	case grid.Obstacle:
		if cellChar == "" {
			cellChar = "X"
		}
		cellType = "Obstacle"
		passable = false
		if description == "" {
			description = "Obstacle - IMPASSABLE"
		}
	default:
		cellChar = "?"
		cellType = "Unknown"
		passable = false
		description = "Unknown cell type"
	}

	// Build result
	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %s
Type: %s
Passable: %v
Description: %s

IMPORTANT: The character '%s' is what appears in the room display.
%s`,
		x, y,
		cellChar,
		cellType,
		passable,
		description,
		cellChar,
		getCharacterReminder(cellChar))

	return mcp.NewToolResultText(result), nil
}

func getCharacterReminder(char string) string {
	switch char {
	case ".":
		return "✅ This is open floor and is PASSABLE."
	case "X":
		return "⚠️ REMINDER: 'X' is an obstacle. This is IMPASSABLE!"
	case "R":
		return "✅ This is a recharge station - safe to move here and will restore energy to full!"
	case "S":
		return "ℹ️ This is the dock - passable, but it does NOT recharge energy."
	case "L":
		return "🎯 This is litter - you need to sweep all litter to win!"
	case "✓":
		return "✅ This litter has already been swept."
	case "@":
		return "🤖 This is where the robot currently is."
	default:
		return ""
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Energy: %d/%d | Score: %d | Moves: %d\n\n",
		state.RobotPos.X, state.RobotPos.Y,
		state.Energy, state.MaxEnergy, state.Score, state.TotalMoves))

	// Decision aids (if available)
	if state.EnergyRisk != "" {
		result.WriteString(fmt.Sprintf("Energy risk: %s\n", state.EnergyRisk))
	}
	// Prefer server-provided local_view_3x3; otherwise derive
	if len(state.LocalView3x3) == 3 {
		result.WriteString("Local 3x3:\n")
		result.WriteString(state.LocalView3x3[0] + "\n")
		result.WriteString(state.LocalView3x3[1] + "\n")
		result.WriteString(state.LocalView3x3[2] + "\n\n")
	} else if v := formatLocal3x3(state); v != "" {
		result.WriteString("Local 3x3:\n")
		result.WriteString(v + "\n")
	}

	// Room
	for y := 0; y < len(state.Grid); y++ {
		for x := 0; x < len(state.Grid[y]); x++ {
			if x == state.RobotPos.X && y == state.RobotPos.Y {
				result.WriteString("@")
			} else {
				result.WriteString(mapCellToChar(state.Grid[y][x]))
			}
		}
		result.WriteString("\n")
	}

	// Status
	if state.GameOver {
		if state.Victory {
			result.WriteString("\n🎉 VICTORY!")
		} else {
			result.WriteString("\n💀 GAME OVER")
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move failed\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Success {
			status = "✓"
		}
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) cell=%s energy=%d %s\n",
			s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.CellChar, s.EnergyAfter, status)
	}

	// Failure diagnostic (if available)
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		passStr := "impassable"
		if a.Passable {
			passStr = "passable"
		}
		response += fmt.Sprintf("Blocked: attempted (%d,%d) cell=%s %s (%s)\n", a.X, a.Y, a.CellChar, a.CellType, passStr)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	// Session header
	rows, cols := 0, 0
	configName := ""
	if result.GameState != nil {
		rows = len(result.GameState.Grid)
		if rows > 0 {
			cols = len(result.GameState.Grid[0])
		}
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Room: %dx%d\n",
		sessionID, configName, rows, cols))

	// Bulk summary
	requested := result.RequestedMoves
	if requested == 0 {
		requested = result.MovesExecuted
	}
	b.WriteString(fmt.Sprintf("Executed %d/%d moves\n", result.MovesExecuted, requested))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace from this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Success {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) cell=%s energy=%d %s\n",
				s.Idx, s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.CellChar, s.EnergyAfter, status))
		}
	}

	// Failure diagnostic from the first blocked attempt
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		passStr := "impassable"
		if a.Passable {
			passStr = "passable"
		}
		b.WriteString(fmt.Sprintf("\nBlocked: attempted (%d,%d) cell=%s %s (%s)\n", a.X, a.Y, a.CellChar, a.CellType, passStr))
	}

	// Possible moves and local 3x3 view from final state
	if len(result.PossibleMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.PossibleMoves, ","))
		b.WriteString("\n")
	} else if result.GameState != nil {
		pm := computePossibleMoves(result.GameState)
		if len(pm) > 0 {
			b.WriteString("\nPossible moves: ")
			b.WriteString(strings.Join(pm, ","))
			b.WriteString("\n")
		}
	}
	if result.GameState != nil {
		if v := formatLocal3x3(result.GameState); v != "" {
			b.WriteString("Local 3x3:\n")
			b.WriteString(v)
			if !strings.HasSuffix(v, "\n") {
				b.WriteString("\n")
			}
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

// computePossibleMoves returns valid directions from the current state
func computePossibleMoves(state *engine.GameState) []string {
	if state == nil || state.GameOver || state.Energy <= 0 {
		return []string{}
	}
	dirs := []string{"up", "down", "left", "right"}
	var res []string
	px, py := state.RobotPos.X, state.RobotPos.Y
	gridH := len(state.Grid)
	gridW := 0
	if gridH > 0 {
		gridW = len(state.Grid[0])
	}
	can := func(x, y int) bool {
		if x < 0 || y < 0 || y >= gridH || x >= gridW {
			return false
		}
		return state.Grid[y][x].Type != grid.Obstacle
	}
	for _, d := range dirs {
		x, y := px, py
		switch d {
		case "up":
			y--
		case "down":
			y++
		case "left":
			x--
		case "right":
			x++
		}
		if can(x, y) {
			res = append(res, d)
		}
	}
	return res
}

// formatLocal3x3 renders a 3x3 character window centered on the robot
func formatLocal3x3(state *engine.GameState) string {
	if state == nil {
		return ""
	}
	px, py := state.RobotPos.X, state.RobotPos.Y
	var lines [3]string
	for dy := -1; dy <= 1; dy++ {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			x, y := px+dx, py+dy
			if dx == 0 && dy == 0 {
				row.WriteString("@")
				continue
			}
			row.WriteString(inferCellChar(state, x, y))
		}
		lines[dy+1] = row.String()
	}
	return lines[0] + "\n" + lines[1] + "\n" + lines[2] + "\n"
}

// inferCellChar returns a single-character representation for a cell at (x,y), handling OOB
func inferCellChar(state *engine.GameState, x, y int) string {
	gridH := len(state.Grid)
	if x < 0 || y < 0 || y >= gridH || (gridH > 0 && x >= len(state.Grid[0])) {
		return "X" // out-of-bounds treated as obstacle
	}
	return mapCellToChar(state.Grid[y][x])
}

func mapCellToChar(cell engine.Cell) string {
	switch cell.Type {
	case grid.Floor:
		return "."
	case grid.Dock:
		return "S"
	case grid.Litter:
		if cell.Swept {
			return "✓"
		}
		return "L"
	case grid.Recharge:
		return "R"
	case grid.Obstacle:
		return "X"
	default:
		return "?"
	}
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		result += fmt.Sprintf("%d. %s %s [Energy: %d]\n",
			num, move.Action, status, move.Energy)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s %s [Energy: %d]\n", i+1, move.Action, status, move.Energy))
	}
	return b.String()
}
