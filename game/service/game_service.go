package service

import (
	"context"
	"time"

	"github.com/rpoletti/sweepbot/game/engine"
)

// GameService is the transport-independent surface shared by the REST API
// and the MCP tools. Every operation takes a context so callers can cancel
// long bulk runs.
type GameService interface {
	// Sessions
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Robot control. Move applies one step; BulkMove replays a whole
	// sequence and reports how far it got and why it stopped.
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// State inspection
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Planning. SolveLayout works on a raw layout with no session;
	// Solve answers for a session's room from the dock, and Hint replans
	// from wherever the robot currently is.
	SolveLayout(ctx context.Context, layout []string, maxEnergy int) (*SolveResult, error)
	Solve(ctx context.Context, sessionID string) (*SolveResult, error)
	Hint(ctx context.Context, sessionID string) (*HintResult, error)

	// Room configs
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager abstracts session storage so the service can be tested
// against an in-memory manager.
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager resolves named room configs.
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session is a live cleanup run: one engine plus access metadata. It has no
// JSON tags on purpose; the wire shape is SessionInfo.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
