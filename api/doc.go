// Package api provides HTTP REST API handlers for the SweepBot cleanup game.
//
// The api package implements:
//   - RESTful endpoints for cleanup operations
//   - Session management endpoints
//   - Room configuration listing and creation
//   - Exact planning endpoints (solve, hint)
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/unified - Multi-session view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/move - Execute a single move
//   - POST /api/sessions/{id}/bulk-move - Execute a sequence of moves
//   - POST /api/sessions/{id}/reset - Reset to the starting state
//   - GET /api/sessions/{id}/history - Move history with pagination
//
// Planning:
//   - POST /api/solve - Exact minimum-move plan for an ad-hoc layout
//   - GET /api/sessions/{id}/solve - Plan the session's room from scratch
//   - GET /api/sessions/{id}/hint - Next move on an optimal completion
//     from the robot's current position, energy, and swept litter
//
// Configuration:
//   - GET /api/configs - List available room configurations
//   - POST /api/configs - Save a new room configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Moves are sent as:
//
//	{
//	  "direction": "up|down|left|right",
//	  "reset": true|false  // optional reset before move
//	}
//
// Solve requests for ad-hoc layouts:
//
//	{
//	  "layout": ["S....L", "..X..R"],
//	  "max_energy": 10
//	}
//
// and return min_moves (-1 when the room cannot be fully swept) plus
// the optimal route as direction names.
//
// Enriched Responses (Move and Bulk Move)
//
// Move (POST /api/sessions/{id}/move)
//   Response:
//     - step: { dir, from{x,y}, to{x,y}, cell_char, cell_type, energy_before, energy_after, success }
//     - attempted_to: { x, y, cell_char, cell_type, passable } // present when blocked
//     - game_state additions:
//         local_view_3x3: ["...","...","..."] // 3x3 characters around the robot (@ centered)
//         energy_risk: "SAFE|LOW|CAUTION|DANGER|CRITICAL|WARNING"
//
// Bulk Move (POST /api/sessions/{id}/bulk-move)
//   Response:
//     - requested_moves, moves_executed
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_move (1-based), truncated, limit
//     - steps: [{ idx, dir, from, to, cell_char, cell_type, energy_before, energy_after, success, recharged?, swept?, victory? }]
//     - attempted_to: failed target cell on first block
//     - start_pos, end_pos, start_energy, end_energy, score_delta
//     - possible_moves: ["up","right"], local_view_3x3, energy_risk
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
