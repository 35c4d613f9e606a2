package app

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/rs/zerolog/log"
)

// Outbound frame types.
const (
	MsgUpdate  = "update"
	MsgRole    = "role"
	MsgKicked  = "kicked"
	MsgCreated = "created"
	MsgJoined  = "joined"
	MsgChatOK  = "chat_ok"
	MsgError   = "error"
)

// Outbound is the envelope of every server → client frame.
type Outbound struct {
	Type   string           `json:"type"`
	Ref    string           `json:"ref,omitempty"`
	Code   domain.RoomCode  `json:"code,omitempty"`
	OK     bool             `json:"ok,omitempty"`
	Action string           `json:"action,omitempty"`
	Error  string           `json:"error,omitempty"`
	Room   *core.RoomView   `json:"room,omitempty"`
	Role   *core.RoleReveal `json:"role,omitempty"`
}

func encode(m Outbound) core.Frame {
	b, err := json.Marshal(m)
	if err != nil {
		log.Error().Err(err).Str("module", "app.gateway").Str("type", m.Type).Msg("encode frame")
		return nil
	}
	return b
}

// ErrorText is the player-facing wording of a rejected create or join.
func ErrorText(err error) string {
	switch {
	case errors.Is(err, core.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, core.ErrGameStarted):
		return "Game already started"
	case errors.Is(err, ErrUnknownSession):
		return "Not connected"
	default:
		return "Request rejected"
	}
}
