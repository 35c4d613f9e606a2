package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/dkeye/imposter/internal/app"
	"github.com/dkeye/imposter/internal/core"
	"github.com/dkeye/imposter/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays seq (mod n) and then always answers n-1.
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

// counterRand walks 1, 2, 3... so consecutive room codes never collide.
type counterRand struct{ n int }

func (c *counterRand) IntN(n int) int {
	c.n++
	return c.n % n
}

type recordingConn struct {
	mu     sync.Mutex
	raw    []string
	frames []app.Outbound
	full   bool
	closed bool
}

func (c *recordingConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	var m app.Outbound
	if err := json.Unmarshal(f, &m); err != nil {
		return err
	}
	c.raw = append(c.raw, string(f))
	c.frames = append(c.frames, m)
	return nil
}

func (c *recordingConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

type mockPolicy struct{ mock.Mock }

func (m *mockPolicy) OnBackPressure(code domain.RoomCode, sid domain.PlayerID) app.BackpressureAction {
	args := m.Called(code, sid)
	return args.Get(0).(app.BackpressureAction)
}

type harness struct {
	gw      *app.Gateway
	conns   map[domain.PlayerID]*recordingConn
	cancels map[domain.PlayerID]int
}

func pid(i int) domain.PlayerID { return domain.PlayerID(fmt.Sprintf("p%d", i)) }

func newHarness(t *testing.T, policy app.Policy) *harness {
	t.Helper()
	rooms := app.NewRoomRegistry(core.Deps{Rand: &counterRand{}})
	t.Cleanup(rooms.Close)
	return &harness{
		gw:      app.NewGateway(app.NewRegistry(), rooms, policy),
		conns:   make(map[domain.PlayerID]*recordingConn),
		cancels: make(map[domain.PlayerID]int),
	}
}

func (h *harness) connect(sid domain.PlayerID) *recordingConn {
	conn := &recordingConn{}
	h.conns[sid] = conn
	var cancel context.CancelFunc = func() { h.cancels[sid]++ }
	h.gw.Connect(sid, conn, cancel, "client-"+string(sid))
	return conn
}

// lobby creates a room hosted by p1 and joins p2..pn.
func (h *harness) lobby(t *testing.T, n int) domain.RoomCode {
	t.Helper()
	h.connect(pid(1))
	code, err := h.gw.CreateRoom(pid(1), "Player 1", "")
	require.NoError(t, err)
	for i := 2; i <= n; i++ {
		h.connect(pid(i))
		require.NoError(t, h.gw.JoinRoom(pid(i), string(code), fmt.Sprintf("Player %d", i), ""))
	}
	h.clear()
	return code
}

func (h *harness) clear() {
	for _, c := range h.conns {
		c.mu.Lock()
		c.raw, c.frames = nil, nil
		c.mu.Unlock()
	}
}

func (h *harness) frames(sid domain.PlayerID) []app.Outbound {
	c := h.conns[sid]
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]app.Outbound(nil), c.frames...)
}

func (h *harness) types(sid domain.PlayerID) []string {
	var out []string
	for _, f := range h.frames(sid) {
		out = append(out, f.Type)
	}
	return out
}

// lastView is the most recent room view delivered to sid.
func (h *harness) lastView(t *testing.T, sid domain.PlayerID) *core.RoomView {
	t.Helper()
	frames := h.frames(sid)
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].Type == app.MsgUpdate {
			return frames[i].Room
		}
	}
	require.FailNow(t, "no update delivered", "sid %s", sid)
	return nil
}
