// Package mcp provides Model Context Protocol server implementation for the SweepBot cleanup game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for cleanup operations
//   - Session-aware command execution
//   - Stdio transport via the main command
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with room visualization
//   - move: Execute single directional movement
//   - bulk_move: Execute multiple moves in sequence
//   - reset_game: Reset game to initial state
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available room configurations
//   - solve: Exact minimum-move plan for a session's room from scratch
//   - hint: Next move on an optimal completion from the current state
//   - game_instructions: Comprehensive game rules and strategies
//   - describe_cell: Detailed info about a single room cell
//
// Architecture:
//
// The client is a thin proxy: every tool call translates into a REST
// request against the API server, so MCP agents and HTTP/WebSocket
// clients always observe the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously sweep rooms
//   - Develop and test navigation strategies
//   - Verify plans against the exact solver
//   - Manage multiple cleanup sessions
//   - Learn from move history
package mcp
