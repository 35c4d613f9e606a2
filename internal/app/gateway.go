package app

import (
	"context"
	"errors"

	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrUnknownSession = errors.New("unknown session")

// Gateway routes player actions to their room. All mutation of one room and
// the delivery of its outcome happen under that room's handle lock, so every
// member observes transitions in the order they were applied.
type Gateway struct {
	Registry *Registry
	Rooms    *RoomRegistry
	Policy   Policy
}

func NewGateway(reg *Registry, rooms *RoomRegistry, policy Policy) *Gateway {
	return &Gateway{Registry: reg, Rooms: rooms, Policy: policy}
}

// Connect registers a fresh connection. It is not in any room yet.
func (g *Gateway) Connect(sid domain.PlayerID, conn core.SignalConnection, cancel context.CancelFunc, client string) {
	g.Registry.BindSignal(sid, conn, cancel, client)
}

// Disconnect removes the player from their room and forgets the session.
func (g *Gateway) Disconnect(sid domain.PlayerID) {
	g.leaveCurrent(sid)
	g.Registry.Unbind(sid)
}

func (g *Gateway) WhoAmI(sid domain.PlayerID) (SessionInfo, bool) {
	return g.Registry.Info(sid)
}

// apply runs fn against the caller's current room and delivers the outcome.
// ack, if set, reaches the caller ahead of the room broadcast.
func (g *Gateway) apply(sid domain.PlayerID, action string, ack *Outbound, fn func(*core.Room) ([]core.Notice, error)) error {
	code, ok := g.Registry.RoomOf(sid)
	if !ok {
		return g.rejected(sid, "", action, core.ErrNotMember)
	}
	h, err := g.Rooms.Find(string(code))
	if err != nil {
		g.Registry.RemoveRoom(sid, code)
		return g.rejected(sid, code, action, err)
	}

	h.Lock()
	defer h.Unlock()
	if h.Closed() {
		return g.rejected(sid, code, action, core.ErrRoomNotFound)
	}
	notices, err := fn(h.Room())
	if err != nil {
		return g.rejected(sid, code, action, err)
	}
	if ack != nil {
		g.send(code, sid, encode(*ack))
	}
	g.deliver(h, notices)
	return nil
}

func (g *Gateway) rejected(sid domain.PlayerID, code domain.RoomCode, action string, err error) error {
	log.Debug().Err(err).Str("module", "app.gateway").Str("sid", string(sid)).Str("room", string(code)).Str("action", action).Msg("action rejected")
	return err
}

// deliver sends private notices, destroys the room if it emptied and
// otherwise broadcasts the new view. Caller holds h's lock.
func (g *Gateway) deliver(h *RoomHandle, notices []core.Notice) {
	code := h.Code()
	for _, n := range notices {
		switch n.Kind {
		case core.NoticeRole:
			g.send(code, n.To, encode(Outbound{Type: MsgRole, Role: n.Role}))
		case core.NoticeKicked:
			g.send(code, n.To, encode(Outbound{Type: MsgKicked, Code: code}))
			g.Registry.RemoveRoom(n.To, code)
		}
	}
	if g.Rooms.DestroyIfEmpty(h) {
		return
	}
	g.broadcast(h)
}

func (g *Gateway) broadcast(h *RoomHandle) {
	room := h.Room()
	view := room.View()
	frame := encode(Outbound{Type: MsgUpdate, Room: &view})
	for _, id := range room.PlayerIDs() {
		g.send(h.Code(), id, frame)
	}
}

// send never blocks. A full queue is handed to the policy.
func (g *Gateway) send(code domain.RoomCode, sid domain.PlayerID, f core.Frame) {
	if f == nil {
		return
	}
	conn, ok := g.Registry.Conn(sid)
	if !ok {
		return
	}
	err := conn.TrySend(f)
	if err == nil {
		return
	}
	if !errors.Is(err, core.ErrBackpressure) {
		log.Debug().Err(err).Str("module", "app.gateway").Str("sid", string(sid)).Msg("send skipped")
		return
	}
	log.Warn().Str("module", "app.gateway").Str("sid", string(sid)).Str("room", string(code)).Msg("send queue full")
	if g.Policy == nil {
		return
	}
	switch g.Policy.OnBackPressure(code, sid) {
	case DropSession:
		g.Registry.Cancel(sid)
	case NoAction:
	}
}
