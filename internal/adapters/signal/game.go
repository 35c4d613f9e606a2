package signal

import "github.com/dkeye/imposter/internal/domain"

func (ctl *SignalWSController) handleVote(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type votePayload struct {
		TargetID string `json:"targetId"`
	}
	var p votePayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	_ = ctl.Gateway.Vote(sid, domain.PlayerID(p.TargetID))
}

func (ctl *SignalWSController) handleChat(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type chatPayload struct {
		Text string `json:"text"`
	}
	var p chatPayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	_ = ctl.Gateway.SendChat(sid, p.Text, env.Ref)
}
