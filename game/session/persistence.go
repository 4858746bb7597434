package session

import (
	"time"

	"github.com/rpoletti/sweepbot/game/engine"
	"github.com/rpoletti/sweepbot/game/service"
)

// SessionPersistence stores session snapshots across restarts. The manager
// saves on create and access updates; Load rebuilds the engine from the
// snapshot's config reference and game state.
type SessionPersistence interface {
	Save(session *service.Session) error
	Load(id string) (*service.Session, error)
	Delete(id string) error
	ListAll() ([]string, error)
	Exists(id string) bool
}

// snapshot is the on-disk JSON form of a session. The config is stored by ID
// so a snapshot survives config display-name edits, and the full game state
// is embedded rather than replayed from history.
type snapshot struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}
