package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/dkeye/imposter/internal/content"
	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/stretchr/testify/require"
)

const testBank = `
categories:
  - name: Places
    hints: ["somewhere"]
    words:
      - { word: Beach, hints: ["sand", "waves"] }
      - { word: Attic }
  - name: Food
    words:
      - { word: Pizza, hints: ["slices"] }
`

// scriptedRand replays seq (mod n) and then always answers n-1, which makes
// shuffle an identity permutation and pick the last element.
type scriptedRand struct {
	seq []int
	i   int
}

func (s *scriptedRand) IntN(n int) int {
	if s.i < len(s.seq) {
		v := s.seq[s.i] % n
		s.i++
		return v
	}
	return n - 1
}

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	room  *core.Room
	rnd   *scriptedRand
	clock *fakeClock
}

func pid(i int) domain.PlayerID { return domain.PlayerID(fmt.Sprintf("p%d", i)) }

// newFixture builds a lobby hosted by p1 with players p1..pn, each joining a second apart.
func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	bank, err := content.Parse([]byte(testBank))
	require.NoError(t, err)

	f := &fixture{rnd: &scriptedRand{}, clock: newFakeClock()}
	f.room = core.NewRoom("ABC123", pid(1), "Player 1", core.Deps{
		Bank: bank,
		Rand: f.rnd,
		Now:  f.clock.Now,
	})
	for i := 2; i <= n; i++ {
		f.clock.Advance(time.Second)
		require.NoError(t, f.room.Join(pid(i), fmt.Sprintf("Player %d", i)))
	}
	return f
}

func (f *fixture) start(t *testing.T) []core.Notice {
	t.Helper()
	notices, err := f.room.StartGame(f.room.Host())
	require.NoError(t, err)
	return notices
}

func (f *fixture) toSteps(t *testing.T) {
	t.Helper()
	f.start(t)
	for _, id := range f.room.PlayerIDs() {
		require.NoError(t, f.room.Ready(id))
	}
	require.Equal(t, domain.PhaseSteps, f.room.Phase())
}

func (f *fixture) toVote(t *testing.T) {
	t.Helper()
	f.toSteps(t)
	require.NoError(t, f.room.StartVoting(f.room.Host()))
}

func count(n float64) *float64 { return &n }
func flag(b bool) *bool        { return &b }
