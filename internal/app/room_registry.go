package app

import (
	"maps"
	"slices"
	"sync"

	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	RoomCodeLength = 6
	RoomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RoomHandle is the single owner of one room. Every read or mutation of the
// room happens between Lock and Unlock.
type RoomHandle struct {
	mu     sync.Mutex
	code   domain.RoomCode
	room   *core.Room
	closed bool
}

func (h *RoomHandle) Lock()                 { h.mu.Lock() }
func (h *RoomHandle) Unlock()               { h.mu.Unlock() }
func (h *RoomHandle) Code() domain.RoomCode { return h.code }

// Room must only be used while holding the lock.
func (h *RoomHandle) Room() *core.Room { return h.room }

// Closed reports whether the room was destroyed; must hold the lock.
func (h *RoomHandle) Closed() bool { return h.closed }

type RoomInfo struct {
	Code    domain.RoomCode `json:"code"`
	Phase   domain.Phase    `json:"phase"`
	Players int             `json:"players"`
}

// RoomRegistry is the process-scoped code → room table.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]*RoomHandle
	deps  core.Deps
}

func NewRoomRegistry(deps core.Deps) *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[domain.RoomCode]*RoomHandle),
		deps:  deps.WithDefaults(),
	}
}

// Create registers a new lobby hosted by hostID under a fresh code.
// The handle is returned locked; the caller must Unlock it.
func (rr *RoomRegistry) Create(hostID domain.PlayerID, hostName string) *RoomHandle {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	code := rr.generateCode()
	for rr.rooms[code] != nil {
		code = rr.generateCode()
	}
	h := &RoomHandle{code: code, room: core.NewRoom(code, hostID, hostName, rr.deps)}
	h.mu.Lock()
	rr.rooms[code] = h

	log.Info().Str("module", "app.rooms").Str("room", string(code)).Str("host", string(hostID)).Msg("room created")
	return h
}

// Find looks a room up by a user-typed code.
func (rr *RoomRegistry) Find(raw string) (*RoomHandle, error) {
	code := domain.NormalizeCode(raw)
	rr.mu.RLock()
	h, ok := rr.rooms[code]
	rr.mu.RUnlock()
	if !ok {
		return nil, core.ErrRoomNotFound
	}
	return h, nil
}

// DestroyIfEmpty unregisters the room once its last player is gone.
// The caller must hold h's lock.
func (rr *RoomRegistry) DestroyIfEmpty(h *RoomHandle) bool {
	if h.closed || !h.room.IsEmpty() {
		return h.closed
	}
	h.closed = true

	rr.mu.Lock()
	if rr.rooms[h.code] == h {
		delete(rr.rooms, h.code)
	}
	rr.mu.Unlock()

	log.Info().Str("module", "app.rooms").Str("room", string(h.code)).Msg("room destroyed")
	return true
}

func (rr *RoomRegistry) Len() int {
	rr.mu.RLock()
	defer rr.mu.RUnlock()
	return len(rr.rooms)
}

// List snapshots every room. Room locks are taken after the table lock is released.
func (rr *RoomRegistry) List() []RoomInfo {
	rr.mu.RLock()
	handles := slices.Collect(maps.Values(rr.rooms))
	rr.mu.RUnlock()

	out := make([]RoomInfo, 0, len(handles))
	for _, h := range handles {
		h.Lock()
		if !h.closed {
			out = append(out, RoomInfo{Code: h.code, Phase: h.room.Phase(), Players: h.room.PlayerCount()})
		}
		h.Unlock()
	}
	return out
}

// Close drops every room. Handles still held by callers report Closed afterwards.
func (rr *RoomRegistry) Close() {
	rr.mu.Lock()
	handles := slices.Collect(maps.Values(rr.rooms))
	clear(rr.rooms)
	rr.mu.Unlock()

	for _, h := range handles {
		h.Lock()
		h.closed = true
		h.Unlock()
	}
	log.Info().Str("module", "app.rooms").Int("rooms", len(handles)).Msg("room registry closed")
}

func (rr *RoomRegistry) generateCode() domain.RoomCode {
	b := make([]byte, RoomCodeLength)
	for i := range b {
		b[i] = RoomCodeChars[rr.deps.Rand.IntN(len(RoomCodeChars))]
	}
	return domain.RoomCode(b)
}
