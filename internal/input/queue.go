package input

import "github.com/eapache/queue"

// DefaultQueueLimit bounds how many events wait for the next tick.
const DefaultQueueLimit = 256

// Queue buffers events between terminal reads and simulation ticks.
// Events are delivered in arrival order. Once the limit is reached the oldest
// event is dropped, so a stalled simulation cannot grow the buffer forever.
//
// Queue is not safe for concurrent use; the host loop goroutine owns it.
type Queue struct {
	q       *queue.Queue
	limit   int
	dropped uint64
}

// NewQueue creates a queue holding at most limit events (DefaultQueueLimit if <= 0).
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = DefaultQueueLimit
	}
	return &Queue{q: queue.New(), limit: limit}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	if q.q.Length() >= q.limit {
		q.q.Remove()
		q.dropped++
	}
	q.q.Add(ev)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return q.q.Length()
}

// Drain removes every pending event in order and passes it to fn.
// It returns the number of events delivered.
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for q.q.Length() > 0 {
		ev := q.q.Remove().(Event)
		if fn != nil {
			fn(ev)
		}
		n++
	}
	return n
}

// Clear discards pending events.
func (q *Queue) Clear() {
	q.Drain(nil)
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
