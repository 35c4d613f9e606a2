// Package domain contains entity without logic, just meta-data
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLen  = 18
	DefaultName = "Guest"
)

// PlayerID is the connection identity assigned by the transport.
type PlayerID string

type Player struct {
	ID    PlayerID
	Name  string
	Ready bool
	// Vote is empty until the player votes in the current round.
	Vote     PlayerID
	JoinedAt time.Time
	// JoinSeq breaks JoinedAt ties; lower joined earlier.
	JoinSeq uint64
}

// NewPlayer is a tiny helper to avoid ad-hoc struct literals in the room.
func NewPlayer(id PlayerID, name string, joinedAt time.Time, seq uint64) *Player {
	return &Player{ID: id, Name: CleanName(name), JoinedAt: joinedAt, JoinSeq: seq}
}

// JoinedBefore orders players by join time, then by join sequence.
func (p *Player) JoinedBefore(o *Player) bool {
	if !p.JoinedAt.Equal(o.JoinedAt) {
		return p.JoinedAt.Before(o.JoinedAt)
	}
	return p.JoinSeq < o.JoinSeq
}

// CleanName trims a display name, falls back to DefaultName and caps it at MaxNameLen runes.
func CleanName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLen]))
	}
	return name
}
