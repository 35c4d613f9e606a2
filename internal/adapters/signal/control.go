package signal

import "github.com/dkeye/imposter/internal/domain"

func (ctl *SignalWSController) handlePing(c *WsSignalConn, env envelope) {
	resp := struct {
		Type string `json:"type"`
		Ref  string `json:"ref,omitempty"`
	}{
		Type: "pong",
		Ref:  env.Ref,
	}
	ctl.sendJSON(c, resp)
}

func (ctl *SignalWSController) handleWhoAmI(sid domain.PlayerID, c *WsSignalConn, env envelope) {
	info, _ := ctl.Gateway.WhoAmI(sid)
	resp := struct {
		Type   string          `json:"type"`
		Ref    string          `json:"ref,omitempty"`
		ID     domain.PlayerID `json:"id"`
		Client string          `json:"client,omitempty"`
		Room   domain.RoomCode `json:"room,omitempty"`
	}{
		Type:   "whoami",
		Ref:    env.Ref,
		ID:     sid,
		Client: info.Client,
		Room:   info.Room,
	}
	ctl.sendJSON(c, resp)
}
