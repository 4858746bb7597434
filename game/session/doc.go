// Package session tracks live cleanup runs and keeps them around between
// requests.
//
// A Session pairs a game engine with bookkeeping metadata (ID, config name,
// creation and last-access timestamps). The Manager owns all sessions behind
// a single mutex, generates collision-checked 4-character hex IDs, and
// normalizes caller-supplied IDs to lowercase so lookups and snapshot file
// names agree.
//
// When constructed with a SessionPersistence, the manager writes a JSON
// snapshot of each session's state after every mutation and falls back to
// the snapshot store on a cache miss, so sessions survive process restarts.
// FilePersistence is the bundled implementation; it keeps one file per
// session and writes through a temp file rename so a crash mid-write never
// leaves a truncated snapshot.
//
// Idle sessions are reaped by CleanupExpiredSessions, which removes both the
// in-memory entry and its snapshot. Callers typically run it on a ticker:
//
//	manager := session.NewManagerWithPersistence(persistence)
//	sess, err := manager.Create("", cfg)
//	...
//	n := manager.CleanupExpiredSessions(30 * time.Minute)
package session
