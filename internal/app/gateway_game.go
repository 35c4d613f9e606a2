package app

import (
	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
)

func (g *Gateway) StartGame(sid domain.PlayerID) error {
	return g.apply(sid, "startGame", nil, func(r *core.Room) ([]core.Notice, error) {
		return r.StartGame(sid)
	})
}

func (g *Gateway) Ready(sid domain.PlayerID) error {
	return g.apply(sid, "ready", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.Ready(sid)
	})
}

func (g *Gateway) StartVoting(sid domain.PlayerID) error {
	return g.apply(sid, "startVoting", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.StartVoting(sid)
	})
}

func (g *Gateway) Vote(sid, target domain.PlayerID) error {
	return g.apply(sid, "vote", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.Vote(sid, target)
	})
}

func (g *Gateway) EndGame(sid domain.PlayerID) error {
	return g.apply(sid, "endGame", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.EndGame(sid)
	})
}

func (g *Gateway) ResetLobby(sid domain.PlayerID) error {
	return g.apply(sid, "resetLobby", nil, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.ResetLobby(sid)
	})
}

// SendChat posts a chat line. Accepted lines are acknowledged before the broadcast.
func (g *Gateway) SendChat(sid domain.PlayerID, text, ref string) error {
	ack := &Outbound{Type: MsgChatOK, Ref: ref, OK: true}
	return g.apply(sid, "chatSend", ack, func(r *core.Room) ([]core.Notice, error) {
		return nil, r.SendChat(sid, text)
	})
}
