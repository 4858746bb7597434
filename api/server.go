package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/service"
	"github.com/rpoletti/sweepbot/transport/websocket"
)

// Server exposes the game service over REST and upgrades /ws connections
// onto the websocket hub.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer wires the routes and returns a ready http.Handler.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Sessions. The /sessions/unified route must be registered before the
	// {id} pattern or mux would treat "unified" as a session ID.
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Robot control and state
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/bulk-move", s.handleBulkMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Planning
	api.HandleFunc("/solve", s.handleSolveLayout).Methods("POST")
	api.HandleFunc("/sessions/{id}/solve", s.handleSolveSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/hint", s.handleHint).Methods("GET")

	// Room configs
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// sessionID pulls the {id} path variable.
func sessionID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

// pushState fans a fresh game state out to websocket watchers of the
// session, with a dedicated victory event when the room just got finished.
func (s *Server) pushState(sessionID string, state *engine.GameState) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, state)
	if state.Victory {
		s.hub.BroadcastEvent(sessionID, "victory", state.Score)
	}
}

// Session handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // older clients send this
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")
	if sortBy != "created" {
		sortBy = "accessed"
	}
	order := query.Get("order")
	if order != "asc" {
		order = "desc"
	}

	sortSessions(sessions, sortBy, order)

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func sortSessions(sessions []*service.SessionInfo, sortBy, order string) {
	key := func(s *service.SessionInfo) time.Time {
		if sortBy == "created" {
			return s.CreatedAt
		}
		return s.LastAccessedAt
	}
	sort.Slice(sessions, func(i, j int) bool {
		if order == "asc" {
			return key(sessions[i]).Before(key(sessions[j]))
		}
		return key(sessions[i]).After(key(sessions[j]))
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := s.service.DeleteSession(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", id),
	})
}

// Robot control handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	var req struct {
		Direction string `json:"direction"`
		Reset     bool   `json:"reset,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Move(r.Context(), id, req.Direction, req.Reset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.pushState(id, result.GameState)
	s.logMove(id, result)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) logMove(id string, result *service.MoveResult) {
	switch {
	case result.Step != nil:
		st := result.Step
		status := "FAIL"
		if result.Success {
			status = "OK"
		}
		fmt.Printf("[MOVE] session=%s %s (%d,%d)->(%d,%d) cell=%s energy=%d status=%s\n",
			id, st.Dir, st.From.X, st.From.Y, st.To.X, st.To.Y, st.CellChar, st.EnergyAfter, status)
	case result.AttemptedTo != nil:
		a := result.AttemptedTo
		fmt.Printf("[MOVE] session=%s BLOCKED attempt=(%d,%d) cell=%s type=%s\n",
			id, a.X, a.Y, a.CellChar, a.CellType)
	}
}

func (s *Server) handleBulkMove(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	var req struct {
		Moves []string `json:"moves"`
		Reset bool     `json:"reset,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.BulkMove(r.Context(), id, req.Moves, req.Reset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.pushState(id, result.GameState)

	requested := result.RequestedMoves
	if requested == 0 {
		requested = result.MovesExecuted
	}
	stop := result.StopReasonCode
	if stop == "" && result.StoppedReason != "" {
		stop = "stopped"
	}
	fmt.Printf("[BULK] session=%s exec=%d/%d stop=%s end=(%d,%d) energy=%d score+=%d\n",
		id, result.MovesExecuted, requested, stop,
		result.GameState.RobotPos.X, result.GameState.RobotPos.Y,
		result.GameState.Energy, result.ScoreDelta)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)

	state, err := s.service.Reset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(id, state)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Game reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), sessionID(r), opts)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// Planning handlers

func (s *Server) handleSolveLayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Layout    []string `json:"layout"`
		MaxEnergy int      `json:"max_energy"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SolveLayout(r.Context(), req.Layout, req.MaxEnergy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSolveSession(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Solve(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	hint, err := s.service.Hint(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, hint)
}

// Config handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var gameConfig engine.GameConfig

	if err := json.NewDecoder(r.Body).Decode(&gameConfig); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if gameConfig.Name == "" {
		writeError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), gameConfig.Name, &gameConfig); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": gameConfig.Name,
	})
}

// handleUnifiedSessions answers a combined view over several sessions of the
// same room, selected by explicit IDs, by config name, or all of them.
func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.selectSessions(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	configName := ""
	totalLitter := 0
	if len(sessions) > 0 {
		configName = sessions[0].ConfigName
		if cfg := sessions[0].GameConfig; cfg != nil {
			totalLitter = countLitter(cfg.Layout)
		}
	}

	out := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, map[string]interface{}{
			"session_id":    session.ID,
			"config_name":   session.ConfigName,
			"game_state":    session.GameState,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"config_name":  configName,
		"total_litter": totalLitter,
		"sessions":     out,
	})
}

func (s *Server) selectSessions(r *http.Request) ([]*service.SessionInfo, error) {
	query := r.URL.Query()

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		ids := strings.Split(sessionIDs, ",")
		sessions := make([]*service.SessionInfo, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			// Unknown IDs are skipped rather than failing the batch.
			if session, err := s.service.GetSession(r.Context(), id); err == nil {
				sessions = append(sessions, session)
			}
		}
		return sessions, nil
	}

	all, err := s.service.ListSessions(r.Context())
	if err != nil {
		return nil, err
	}

	if configName := query.Get("configName"); configName != "" {
		sessions := make([]*service.SessionInfo, 0)
		for _, session := range all {
			if session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
		return sessions, nil
	}

	return all, nil
}

func countLitter(layout []string) int {
	n := 0
	for _, row := range layout {
		n += strings.Count(row, "L")
	}
	return n
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(context.Background(), id); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, id)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
