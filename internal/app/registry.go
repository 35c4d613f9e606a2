package app

import (
	"context"
	"sync"

	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Room   domain.RoomCode
	Conn   core.SignalConnection
	Cancel context.CancelFunc
	Client string
}

// SessionInfo is the public part of a session, as reported by whoami.
type SessionInfo struct {
	ID     domain.PlayerID `json:"id"`
	Client string          `json:"client,omitempty"`
	Room   domain.RoomCode `json:"room,omitempty"`
}

// Registry maps live connection identities to their transport and current room.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.PlayerID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.PlayerID]*sessionEntry)}
}

// BindSignal registers a fresh connection that is not in any room yet.
func (r *Registry) BindSignal(sid domain.PlayerID, conn core.SignalConnection, cancel context.CancelFunc, client string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel, Client: client}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("client", client).Msg("bound signal")
}

func (r *Registry) Unbind(sid domain.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Conn(sid domain.PlayerID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (r *Registry) Info(sid domain.PlayerID) (SessionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return SessionInfo{}, false
	}
	return SessionInfo{ID: sid, Client: e.Client, Room: e.Room}, true
}

func (r *Registry) RoomOf(sid domain.PlayerID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) UpdateRoom(sid domain.PlayerID, code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return false
	}
	e.Room = code
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(code)).Msg("updated room")
	return true
}

// RemoveRoom clears the room association if it still points at code.
func (r *Registry) RemoveRoom(sid domain.PlayerID, code domain.RoomCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok && e.Room == code {
		e.Room = ""
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(code)).Msg("removed room association")
	}
}

// Cancel asks the transport to tear the session down. It never blocks on the teardown.
func (r *Registry) Cancel(sid domain.PlayerID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
