package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/imposter/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, sid domain.PlayerID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("writePump ctx done")
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(ctl.Opts.WriteWait))
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("writePump ping")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.PlayerID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		cancel()
		ctl.Gateway.Disconnect(sid)
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.Opts.ReadLimit)
	extend := func() error { return c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait)) }
	_ = extend()
	c.conn.SetPongHandler(func(string) error { return extend() })

	guard := newFloodGuard()
	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
			}
			return
		}
		_ = extend()
		if !guard.Allow(time.Now()) {
			log.Warn().Str("module", "signal").Str("sid", string(sid)).Int("dropped", guard.dropped).Msg("inbound flood, frame dropped")
			continue
		}
		ctl.handleSignal(sid, c, data)
	}
}

type envelope struct {
	Type string `json:"type"`
	Ref  string `json:"ref,omitempty"`
}

func (ctl *SignalWSController) handleSignal(sid domain.PlayerID, c *WsSignalConn, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "", "", "bad_payload")
		return
	}

	switch env.Type {
	case "createRoom":
		ctl.handleCreateRoom(sid, c, env, data)
	case "joinRoom":
		ctl.handleJoinRoom(sid, c, env, data)
	case "leaveRoom":
		ctl.Gateway.LeaveRoom(sid)
	case "kickPlayer":
		ctl.handleKick(sid, c, env, data)
	case "updateSettings":
		ctl.handleUpdateSettings(sid, c, env, data)
	case "startGame":
		_ = ctl.Gateway.StartGame(sid)
	case "ready":
		_ = ctl.Gateway.Ready(sid)
	case "startVoting":
		_ = ctl.Gateway.StartVoting(sid)
	case "vote":
		ctl.handleVote(sid, c, env, data)
	case "endGame":
		_ = ctl.Gateway.EndGame(sid)
	case "resetLobby":
		_ = ctl.Gateway.ResetLobby(sid)
	case "chatSend":
		ctl.handleChat(sid, c, env, data)
	case "ping":
		ctl.handlePing(c, env)
	case "whoami":
		ctl.handleWhoAmI(sid, c, env)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

// decode fills p from data, answering malformed payloads with an error frame.
func (ctl *SignalWSController) decode(c *WsSignalConn, env envelope, data []byte, p any) bool {
	if err := json.Unmarshal(data, p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("type", env.Type).Msg("bad payload")
		ctl.sendError(c, env.Type, env.Ref, "bad_payload")
		return false
	}
	return true
}

func (ctl *SignalWSController) sendError(c *WsSignalConn, action, ref, msg string) {
	ctl.sendJSON(c, struct {
		Type   string `json:"type"`
		Ref    string `json:"ref,omitempty"`
		Action string `json:"action,omitempty"`
		Error  string `json:"error"`
	}{"error", ref, action, msg})
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
