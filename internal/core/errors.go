package core

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrGameStarted  = errors.New("game already started")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidPhase = errors.New("invalid phase")
	ErrValidation   = errors.New("invalid input")

	ErrNotHost          = fmt.Errorf("%w: host only", ErrForbidden)
	ErrNotMember        = fmt.Errorf("%w: not a member", ErrForbidden)
	ErrNotEnoughPlayers = fmt.Errorf("%w: not enough players", ErrValidation)
	ErrEmptyMessage     = fmt.Errorf("%w: empty message", ErrValidation)
	ErrRateLimited      = errors.New("slow mode")
)
