// Package queue provides the bounded FIFO that carries button presses from
// the GPIO event context to the main loop. It is a single-producer,
// single-consumer ring: Push runs only on the GPIO event goroutine, Pop only
// on the main loop. The head/tail indices are atomics, so the empty/non-empty
// transition cannot lose an update between the two contexts.
package queue

import (
	"sync/atomic"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Capacity is the number of presses the queue holds. A push into a full
// queue is silently dropped — best-effort input, a missed extra press is
// harmless at the buttons.
const Capacity = 50

// Queue is a bounded SPSC FIFO of button presses.
type Queue struct {
	buf [Capacity + 1]logic.ButtonPress // one slot kept empty to distinguish full from empty

	head  atomic.Uint32 // next read index, advanced only by Pop
	tail  atomic.Uint32 // next write index, advanced only by Push
	drops atomic.Uint64
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues p. Returns false if the queue was full and the press was
// dropped. Safe to call concurrently with Pop, from one producer goroutine.
func (q *Queue) Push(p logic.ButtonPress) bool {
	tail := q.tail.Load()
	next := (tail + 1) % uint32(len(q.buf))
	if next == q.head.Load() {
		q.drops.Add(1)
		return false
	}
	q.buf[tail] = p
	q.tail.Store(next)
	return true
}

// Pop dequeues the oldest press. The second return is false when the queue
// is empty. Safe to call concurrently with Push, from one consumer goroutine.
func (q *Queue) Pop() (logic.ButtonPress, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return logic.ButtonPress{}, false
	}
	p := q.buf[head]
	q.head.Store((head + 1) % uint32(len(q.buf)))
	return p, true
}

// Len returns the number of queued presses. Approximate under concurrency;
// exact when called from the consumer with the producer idle.
func (q *Queue) Len() int {
	n := int(q.tail.Load()) - int(q.head.Load())
	if n < 0 {
		n += len(q.buf)
	}
	return n
}

// Drops returns how many presses were discarded on a full queue. Exposed for
// the status page only; the core never branches on it.
func (q *Queue) Drops() uint64 {
	return q.drops.Load()
}
