// Package events decouples the game session from feedback consumers.
// Producers push events instead of calling render or audio directly; the
// frame loop drains the queue once per tick.
package events

import (
	"sync/atomic"
)

// QueueSize is the ring capacity. Must be a power of two.
const QueueSize = 64

const bufferMask = QueueSize - 1

// Queue is a lock-free MPSC ring buffer.
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Consume: single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: oldest events are overwritten when full.
type Queue struct {
	events    [QueueSize]Event
	published [QueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event using lock-free CAS with published flags.
func (q *Queue) Push(event Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & bufferMask

			q.events[idx] = event
			q.published[idx].Store(true) // MUST be after the write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > QueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-QueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head.
// Single-consumer design; skips slots whose write has not been published.
func (q *Queue) Consume() []Event {
	currentHead := q.head.Load()
	currentTail := q.tail.Load()

	if currentTail == currentHead {
		return nil
	}

	available := currentTail - currentHead
	if available > QueueSize {
		available = QueueSize
		currentHead = currentTail - QueueSize
	}

	out := make([]Event, 0, available)
	for i := uint64(0); i < available; i++ {
		idx := (currentHead + i) & bufferMask
		if !q.published[idx].Load() {
			break
		}
		out = append(out, q.events[idx])
		q.published[idx].Store(false)
	}

	q.head.Store(currentHead + uint64(len(out)))
	return out
}

// Pending reports how many events are waiting. Approximate under
// concurrent pushes; exact on the consumer thread.
func (q *Queue) Pending() int {
	d := q.tail.Load() - q.head.Load()
	if d > QueueSize {
		d = QueueSize
	}
	return int(d)
}
