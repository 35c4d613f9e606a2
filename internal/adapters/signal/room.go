package signal

import (
	"strings"

	"github.com/dkeye/imposter/internal/app"
	"github.com/dkeye/imposter/internal/domain"
)

func (ctl *SignalWSController) handleCreateRoom(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type createPayload struct {
		Name string `json:"name"`
	}
	var p createPayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	if _, err := ctl.Gateway.CreateRoom(sid, p.Name, env.Ref); err != nil {
		ctl.sendError(c, env.Type, env.Ref, app.ErrorText(err))
	}
}

func (ctl *SignalWSController) handleJoinRoom(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type joinPayload struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	var p joinPayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	// JoinRoom answers failures itself.
	_ = ctl.Gateway.JoinRoom(sid, p.Code, p.Name, env.Ref)
}

func (ctl *SignalWSController) handleKick(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type kickPayload struct {
		TargetID string `json:"targetId"`
		PlayerID string `json:"playerId"`
	}
	var p kickPayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	target := p.TargetID
	if target == "" {
		target = p.PlayerID
	}
	_ = ctl.Gateway.Kick(sid, domain.PlayerID(strings.TrimSpace(target)))
}

func (ctl *SignalWSController) handleUpdateSettings(sid domain.PlayerID, c *WsSignalConn, env envelope, data []byte) {
	type settingsPayload struct {
		Category string `json:"category"`
		Settings struct {
			ImposterCount          looseNumber `json:"imposterCount"`
			Imposters              looseNumber `json:"imposters"`
			ShowCategoryToImposter looseBool   `json:"showCategoryToImposter"`
			ShowHintToImposter     looseBool   `json:"showHintToImposter"`
		} `json:"settings"`
	}
	var p settingsPayload
	if !ctl.decode(c, env, data, &p) {
		return
	}
	count := p.Settings.ImposterCount.v
	if count == nil {
		count = p.Settings.Imposters.v
	}
	_ = ctl.Gateway.UpdateSettings(sid, domain.SettingsUpdate{
		Category:               p.Category,
		ImposterCount:          count,
		ShowCategoryToImposter: p.Settings.ShowCategoryToImposter.v,
		ShowHintToImposter:     p.Settings.ShowHintToImposter.v,
	})
}
