package app

import (
	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomProbe answers whether a code can be joined right now.
type RoomProbe struct {
	Code     domain.RoomCode `json:"code"`
	Phase    domain.Phase    `json:"state"`
	Players  int             `json:"players"`
	Joinable bool            `json:"joinable"`
}

// CreateRoom opens a new lobby with the caller as host. A caller already in a
// room leaves it first.
func (g *Gateway) CreateRoom(sid domain.PlayerID, name, ref string) (domain.RoomCode, error) {
	if _, ok := g.Registry.Conn(sid); !ok {
		return "", ErrUnknownSession
	}
	g.leaveCurrent(sid)

	h := g.Rooms.Create(sid, name)
	defer h.Unlock()
	g.Registry.UpdateRoom(sid, h.Code())

	g.send(h.Code(), sid, encode(Outbound{Type: MsgCreated, Ref: ref, Code: h.Code()}))
	g.broadcast(h)
	return h.Code(), nil
}

// JoinRoom adds the caller to the lobby behind rawCode. Failures are answered
// with an error frame.
func (g *Gateway) JoinRoom(sid domain.PlayerID, rawCode, name, ref string) error {
	err := g.joinRoom(sid, rawCode, name, ref)
	if err != nil {
		log.Debug().Err(err).Str("module", "app.gateway").Str("sid", string(sid)).Str("room", rawCode).Msg("join rejected")
		g.reply(sid, Outbound{Type: MsgError, Ref: ref, Action: "joinRoom", Error: ErrorText(err)})
	}
	return err
}

func (g *Gateway) joinRoom(sid domain.PlayerID, rawCode, name, ref string) error {
	if _, ok := g.Registry.Conn(sid); !ok {
		return ErrUnknownSession
	}
	h, err := g.Rooms.Find(rawCode)
	if err != nil {
		return err
	}

	// Only one room lock is ever held at a time, so the old room is left
	// before the new one is locked for the join itself.
	if cur, ok := g.Registry.RoomOf(sid); ok && cur != h.Code() {
		if joinable, err := g.joinable(h); !joinable {
			return err
		}
		g.leaveCurrent(sid)
	}

	h.Lock()
	defer h.Unlock()
	if h.Closed() {
		return core.ErrRoomNotFound
	}
	if err := h.Room().Join(sid, name); err != nil {
		return err
	}
	g.Registry.UpdateRoom(sid, h.Code())

	g.send(h.Code(), sid, encode(Outbound{Type: MsgJoined, Ref: ref, OK: true, Code: h.Code()}))
	g.broadcast(h)
	return nil
}

func (g *Gateway) joinable(h *RoomHandle) (bool, error) {
	h.Lock()
	defer h.Unlock()
	switch {
	case h.Closed():
		return false, core.ErrRoomNotFound
	case h.Room().Phase() != domain.PhaseLobby:
		return false, core.ErrGameStarted
	}
	return true, nil
}

// LeaveRoom removes the caller from their room. The connection stays open.
func (g *Gateway) LeaveRoom(sid domain.PlayerID) {
	g.leaveCurrent(sid)
}

func (g *Gateway) leaveCurrent(sid domain.PlayerID) {
	code, ok := g.Registry.RoomOf(sid)
	if !ok {
		return
	}
	g.Registry.RemoveRoom(sid, code)
	h, err := g.Rooms.Find(string(code))
	if err != nil {
		return
	}

	h.Lock()
	defer h.Unlock()
	if h.Closed() || !h.Room().Remove(sid) {
		return
	}
	log.Info().Str("module", "app.gateway").Str("sid", string(sid)).Str("room", string(code)).Msg("left room")
	g.deliver(h, nil)
}

func (g *Gateway) Kick(sid, target domain.PlayerID) error {
	return g.apply(sid, "kickPlayer", nil, func(r *core.Room) ([]core.Notice, error) {
		return r.Kick(sid, target)
	})
}

func (g *Gateway) UpdateSettings(sid domain.PlayerID, upd domain.SettingsUpdate) error {
	return g.apply(sid, "updateSettings", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.UpdateSettings(sid, upd)
	})
}

// Probe reports a room's phase and size without joining it.
func (g *Gateway) Probe(rawCode string) (RoomProbe, error) {
	h, err := g.Rooms.Find(rawCode)
	if err != nil {
		return RoomProbe{}, err
	}
	h.Lock()
	defer h.Unlock()
	if h.Closed() {
		return RoomProbe{}, core.ErrRoomNotFound
	}
	r := h.Room()
	return RoomProbe{
		Code:     r.Code(),
		Phase:    r.Phase(),
		Players:  r.PlayerCount(),
		Joinable: r.Phase() == domain.PhaseLobby,
	}, nil
}

func (g *Gateway) reply(sid domain.PlayerID, m Outbound) {
	code, _ := g.Registry.RoomOf(sid)
	g.send(code, sid, encode(m))
}
