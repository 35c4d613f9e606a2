package app_test

import (
	"regexp"
	"testing"

	"github.com/dkeye/imposter/internal/app"
	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func create(rr *app.RoomRegistry, host domain.PlayerID) *app.RoomHandle {
	h := rr.Create(host, string(host))
	h.Unlock()
	return h
}

func TestRoomRegistry_CreateCodeFormat(t *testing.T) {
	rr := app.NewRoomRegistry(core.Deps{})
	codeRe := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	for range 50 {
		h := create(rr, "host")
		assert.Regexp(t, codeRe, string(h.Code()))
	}
	assert.Equal(t, 50, rr.Len())
}

func TestRoomRegistry_CreateRetriesOnCollision(t *testing.T) {
	rnd := &scriptedRand{seq: make([]int, 12)}
	rr := app.NewRoomRegistry(core.Deps{Rand: rnd})

	first := create(rr, pid(1))
	second := create(rr, pid(2))

	assert.Equal(t, domain.RoomCode("AAAAAA"), first.Code())
	assert.Equal(t, domain.RoomCode("999999"), second.Code())
	assert.Equal(t, 2, rr.Len())
}

func TestRoomRegistry_CreateHostsLobby(t *testing.T) {
	rr := app.NewRoomRegistry(core.Deps{})
	h := rr.Create(pid(1), "Ann")
	defer h.Unlock()

	r := h.Room()
	assert.Equal(t, h.Code(), r.Code())
	assert.Equal(t, pid(1), r.Host())
	assert.Equal(t, domain.PhaseLobby, r.Phase())
	assert.Equal(t, []domain.PlayerID{pid(1)}, r.PlayerIDs())
}

func TestRoomRegistry_Find(t *testing.T) {
	rnd := &scriptedRand{seq: []int{0, 1, 2, 26, 27, 28}}
	rr := app.NewRoomRegistry(core.Deps{Rand: rnd})
	h := create(rr, pid(1))
	require.Equal(t, domain.RoomCode("ABC012"), h.Code())

	for _, raw := range []string{"ABC012", "abc012", "  aBc012\t"} {
		got, err := rr.Find(raw)
		require.NoError(t, err, raw)
		assert.Same(t, h, got)
	}

	_, err := rr.Find("ZZZZZZ")
	assert.ErrorIs(t, err, core.ErrRoomNotFound)
}

func TestRoomRegistry_DestroyIfEmpty(t *testing.T) {
	rr := app.NewRoomRegistry(core.Deps{})
	h := create(rr, pid(1))

	h.Lock()
	assert.False(t, rr.DestroyIfEmpty(h))
	h.Room().Remove(pid(1))
	assert.True(t, rr.DestroyIfEmpty(h))
	assert.True(t, h.Closed())
	h.Unlock()

	assert.Zero(t, rr.Len())
	_, err := rr.Find(string(h.Code()))
	assert.ErrorIs(t, err, core.ErrRoomNotFound)
}

func TestRoomRegistry_ListAndClose(t *testing.T) {
	rr := app.NewRoomRegistry(core.Deps{})
	a := create(rr, pid(1))
	b := create(rr, pid(2))

	a.Lock()
	require.NoError(t, a.Room().Join(pid(3), "Cid"))
	a.Unlock()

	assert.ElementsMatch(t, []app.RoomInfo{
		{Code: a.Code(), Phase: domain.PhaseLobby, Players: 2},
		{Code: b.Code(), Phase: domain.PhaseLobby, Players: 1},
	}, rr.List())

	rr.Close()
	assert.Zero(t, rr.Len())
	assert.Empty(t, rr.List())

	b.Lock()
	assert.True(t, b.Closed())
	b.Unlock()
}
