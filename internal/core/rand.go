package core

import (
	"math/rand/v2"
	"time"
)

// Rand is the randomness source for words, imposters, hints and turn order.
// Tests inject a scripted one. A Rand shared by several rooms must be safe
// for concurrent use.
type Rand interface {
	IntN(n int) int
}

// Clock returns the current time.
type Clock func() time.Time

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

func DefaultRand() Rand { return globalRand{} }

// shuffle returns a Fisher–Yates permutation of in, leaving in untouched.
func shuffle[T any](rnd Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func pick[T any](rnd Rand, in []T) T {
	return in[rnd.IntN(len(in))]
}
