package domain

import "strings"

type RoomCode string

// NormalizeCode makes user-typed codes comparable with generated ones.
func NormalizeCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhaseReveal  Phase = "reveal"
	PhaseSteps   Phase = "steps"
	PhaseVote    Phase = "vote"
	PhaseResults Phase = "results"
)

// InProgress reports whether a round is running (anything but the lobby).
func (p Phase) InProgress() bool { return p != PhaseLobby }

type Settings struct {
	ImposterCount          int  `json:"imposterCount"`
	ShowCategoryToImposter bool `json:"showCategoryToImposter"`
	ShowHintToImposter     bool `json:"showHintToImposter"`
}

func DefaultSettings() Settings {
	return Settings{ImposterCount: 1, ShowCategoryToImposter: true, ShowHintToImposter: true}
}

// SettingsUpdate carries a host's partial settings change. Nil fields are left untouched.
type SettingsUpdate struct {
	Category               string   `json:"category,omitempty"`
	ImposterCount          *float64 `json:"imposterCount,omitempty"`
	ShowCategoryToImposter *bool    `json:"showCategoryToImposter,omitempty"`
	ShowHintToImposter     *bool    `json:"showHintToImposter,omitempty"`
}
