package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is one serialized outbound message.
type Frame []byte

// SignalConnection abstracts the per-player message transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues a frame without blocking. A full queue yields ErrBackpressure.
	TrySend(Frame) error
	Close()
}
