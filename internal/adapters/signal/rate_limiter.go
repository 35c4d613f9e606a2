package signal

import (
	"time"

	"golang.org/x/time/rate"
)

const (
	inboundRate  = 20
	inboundBurst = 40
)

// floodGuard caps how many frames one connection may push per second.
// Frames over the cap are dropped before they reach the gateway.
type floodGuard struct {
	lim     *rate.Limiter
	dropped int
}

func newFloodGuard() *floodGuard {
	return &floodGuard{lim: rate.NewLimiter(rate.Limit(inboundRate), inboundBurst)}
}

func (g *floodGuard) Allow(now time.Time) bool {
	if g.lim.AllowN(now, 1) {
		return true
	}
	g.dropped++
	return false
}
