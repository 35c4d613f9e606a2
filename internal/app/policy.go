package app

import "github.com/dkeye/imposter/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropSession
)

// Policy decides what happens to a session whose send queue is full.
type Policy interface {
	OnBackPressure(room domain.RoomCode, sid domain.PlayerID) BackpressureAction
}

// SimplePolicy drops any session that cannot keep up. The player then leaves
// through the regular disconnect path.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomCode, domain.PlayerID) BackpressureAction {
	return DropSession
}
