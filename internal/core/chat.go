package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkeye/imposter/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	MaxChatLen    = 160
	ChatRetained  = 120
	ChatBroadcast = 80
	ChatCooldown  = 1200 * time.Millisecond
)

// SendChat appends a moderated message from a member. Messages in the lobby,
// empty messages and messages inside the sender's cooldown are dropped.
func (r *Room) SendChat(caller domain.PlayerID, raw string) error {
	p := r.player(caller)
	if p == nil {
		return ErrNotMember
	}
	if r.phase == domain.PhaseLobby {
		return ErrInvalidPhase
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrEmptyMessage
	}
	if runes := []rune(text); len(runes) > MaxChatLen {
		text = string(runes[:MaxChatLen])
	}

	now := r.deps.Now()
	if !r.slow.allow(caller, now) {
		return ErrRateLimited
	}

	r.chat = append(r.chat, domain.ChatMessage{
		ID:         fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()),
		Timestamp:  now.UnixMilli(),
		SenderName: p.Name,
		Text:       MaskProfanity(text),
	})
	if over := len(r.chat) - ChatRetained; over > 0 {
		r.chat = append(r.chat[:0:0], r.chat[over:]...)
	}
	return nil
}

// slowMode lets each sender through at most once per interval.
type slowMode struct {
	every    time.Duration
	limiters map[domain.PlayerID]*rate.Limiter
}

func newSlowMode(every time.Duration) *slowMode {
	return &slowMode{every: every, limiters: make(map[domain.PlayerID]*rate.Limiter)}
}

func (s *slowMode) allow(id domain.PlayerID, now time.Time) bool {
	l, ok := s.limiters[id]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.every), 1)
		s.limiters[id] = l
	}
	return l.AllowN(now, 1)
}

func (s *slowMode) forget(id domain.PlayerID) { delete(s.limiters, id) }

func (s *slowMode) reset() { clear(s.limiters) }
