package core_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/imposter/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChat_Guards(t *testing.T) {
	f := newFixture(t, 3)
	assert.ErrorIs(t, f.room.SendChat(pid(1), "hi"), core.ErrInvalidPhase)

	f.start(t)
	assert.ErrorIs(t, f.room.SendChat("ghost", "hi"), core.ErrNotMember)
	assert.ErrorIs(t, f.room.SendChat(pid(1), "   \t "), core.ErrEmptyMessage)
	assert.Empty(t, f.room.Chat())
}

func TestSendChat_Accepted(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(2), "  where were you?  "))

	chat := f.room.Chat()
	require.Len(t, chat, 1)
	assert.Equal(t, "where were you?", chat[0].Text)
	assert.Equal(t, "Player 2", chat[0].SenderName)
	assert.Equal(t, f.clock.Now().UnixMilli(), chat[0].Timestamp)
	assert.True(t, strings.HasPrefix(chat[0].ID, fmt.Sprintf("%d-", f.clock.Now().UnixMilli())))
}

func TestSendChat_Truncates(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(1), strings.Repeat("é", 200)))
	assert.Equal(t, strings.Repeat("é", core.MaxChatLen), f.room.Chat()[0].Text)
}

func TestSendChat_SlowMode(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(1), "same"))
	f.clock.Advance(500 * time.Millisecond)
	assert.ErrorIs(t, f.room.SendChat(pid(1), "same"), core.ErrRateLimited)
	assert.Len(t, f.room.Chat(), 1)

	// other senders are not affected
	require.NoError(t, f.room.SendChat(pid(2), "me too"))

	f.clock.Advance(800 * time.Millisecond)
	require.NoError(t, f.room.SendChat(pid(1), "same"))
	assert.Len(t, f.room.Chat(), 3)
}

func TestSendChat_DroppedMessagesDoNotExtendCooldown(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(1), "one"))
	for range 3 {
		f.clock.Advance(300 * time.Millisecond)
		assert.ErrorIs(t, f.room.SendChat(pid(1), "spam"), core.ErrRateLimited)
	}
	f.clock.Advance(400 * time.Millisecond)
	assert.NoError(t, f.room.SendChat(pid(1), "two"))
}

func TestSendChat_Profanity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"this is shit", "this is ****"},
		{"SHIT happens", "**** happens"},
		{"Shitake mushrooms", "Shitake mushrooms"},
		{"what the fuck, dick", "what the ****, ****"},
		{"scunthorpe", "scunthorpe"},
		{"clean words only", "clean words only"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, core.MaskProfanity(tt.in), tt.in)
	}

	f := newFixture(t, 3)
	f.start(t)
	require.NoError(t, f.room.SendChat(pid(1), "this is shit"))
	assert.Equal(t, "this is ****", f.room.Chat()[0].Text)
}

func TestSendChat_Retention(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)

	for i := range 130 {
		f.clock.Advance(2 * time.Second)
		require.NoError(t, f.room.SendChat(pid(1), fmt.Sprintf("msg %d", i)))
	}

	chat := f.room.Chat()
	require.Len(t, chat, core.ChatRetained)
	assert.Equal(t, "msg 10", chat[0].Text)
	assert.Equal(t, "msg 129", chat[len(chat)-1].Text)

	view := f.room.View()
	require.Len(t, view.Chat, core.ChatBroadcast)
	assert.Equal(t, "msg 50", view.Chat[0].Text)
	assert.Equal(t, "msg 129", view.Chat[len(view.Chat)-1].Text)
}

func TestSendChat_SenderNameSurvivesLeaving(t *testing.T) {
	f := newFixture(t, 4)
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(4), "bye"))
	f.room.Remove(pid(4))

	require.Len(t, f.room.Chat(), 1)
	assert.Equal(t, "Player 4", f.room.Chat()[0].SenderName)
}

func TestSendChat_CooldownResetsWithNewRound(t *testing.T) {
	f := newFixture(t, 3)
	f.start(t)
	require.NoError(t, f.room.SendChat(pid(1), "first round"))
	require.NoError(t, f.room.ResetLobby(pid(1)))
	f.start(t)

	require.NoError(t, f.room.SendChat(pid(1), "second round"))
	assert.Len(t, f.room.Chat(), 1)
}
