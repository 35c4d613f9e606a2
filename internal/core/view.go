package core

import (
	"slices"

	"github.com/dkeye/imposter/internal/domain"
)

// RoleReveal is the private payload each player gets when a round starts.
type RoleReveal struct {
	IsImposter   bool    `json:"isImposter"`
	Word         *string `json:"word"`
	Category     string  `json:"category"`
	ShowCategory bool    `json:"showCategory"`
	ShowHint     bool    `json:"showHint"`
	Hint         *string `json:"hint"`
}

// PlayerDTO is a read-only view of a member (no secrets, no transport).
type PlayerDTO struct {
	ID    domain.PlayerID `json:"id"`
	Name  string          `json:"name"`
	Ready bool            `json:"ready"`
	Voted bool            `json:"voted"`
}

type TurnDTO struct {
	ID   domain.PlayerID `json:"id"`
	Name string          `json:"name"`
}

// Results is only present in the view once the round is over.
type Results struct {
	Word      string                              `json:"word"`
	Imposters []domain.PlayerID                   `json:"imposters"`
	Votes     map[domain.PlayerID]domain.PlayerID `json:"votes"`
}

// RoomView is what every member sees after each accepted mutation.
type RoomView struct {
	Code      domain.RoomCode      `json:"code"`
	Host      domain.PlayerID      `json:"host"`
	Phase     domain.Phase         `json:"state"`
	Category  string               `json:"category"`
	Settings  domain.Settings      `json:"settings"`
	Players   []PlayerDTO          `json:"players"`
	TurnOrder []TurnDTO            `json:"turnOrder"`
	Results   *Results             `json:"results"`
	Chat      []domain.ChatMessage `json:"chat"`
}

// View renders the broadcast-safe snapshot of the room.
func (r *Room) View() RoomView {
	v := RoomView{
		Code:      r.code,
		Host:      r.hostID,
		Phase:     r.phase,
		Category:  r.category,
		Settings:  r.settings,
		Players:   make([]PlayerDTO, 0, len(r.players)),
		TurnOrder: make([]TurnDTO, 0, len(r.turnOrder)),
	}
	for _, p := range r.players {
		v.Players = append(v.Players, PlayerDTO{ID: p.ID, Name: p.Name, Ready: p.Ready, Voted: p.Vote != ""})
	}
	for _, id := range r.turnOrder {
		name := "Player"
		if p := r.player(id); p != nil {
			name = p.Name
		}
		v.TurnOrder = append(v.TurnOrder, TurnDTO{ID: id, Name: name})
	}
	if r.phase == domain.PhaseResults {
		votes := make(map[domain.PlayerID]domain.PlayerID, len(r.players))
		for _, p := range r.players {
			if p.Vote != "" {
				votes[p.ID] = p.Vote
			}
		}
		v.Results = &Results{Word: r.word, Imposters: slices.Clone(r.imposters), Votes: votes}
		if v.Results.Imposters == nil {
			v.Results.Imposters = []domain.PlayerID{}
		}
	}
	v.Chat = slices.Clone(r.chat[max(0, len(r.chat)-ChatBroadcast):])
	if v.Chat == nil {
		v.Chat = []domain.ChatMessage{}
	}
	return v
}
