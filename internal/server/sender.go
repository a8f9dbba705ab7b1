package server

import (
	"sync"

	"github.com/jpalmerr/scoreboard/internal/remote"
)

// queueSender is a remote.Sender backed by a buffered channel drained by a
// connection's writer. A full buffer closes the queue so the writer exits
// and the hub drops the peer.
type queueSender struct {
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func newQueueSender(size int) *queueSender {
	return &queueSender{ch: make(chan []byte, size)}
}

// Send implements remote.Sender. It never blocks.
func (q *queueSender) Send(data []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return remote.ErrPeerClosed
	}
	select {
	case q.ch <- data:
		return nil
	default:
		q.closeLocked()
		return remote.ErrSendBufferFull
	}
}

// messages returns the channel the writer drains. It is closed on close or
// overflow.
func (q *queueSender) messages() <-chan []byte { return q.ch }

func (q *queueSender) close() {
	q.mu.Lock()
	q.closeLocked()
	q.mu.Unlock()
}

func (q *queueSender) closeLocked() {
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
