package scheduler

import "sync"

// eventQueue is an unbounded FIFO for events.
//
// Producers (tick goroutines, presenters, gRPC handlers) enqueue from any
// goroutine; only the Run loop dequeues. A size-1 signal channel lets the loop
// wait for work and for context cancellation in one select.
type eventQueue struct {
	// mu guards events and closed.
	mu sync.Mutex
	// events holds queued events in arrival order.
	events []Event
	// closed rejects further enqueues once the loop has stopped.
	closed bool
	// signal is non-empty while events may be available.
	signal chan struct{}
}

// newEventQueue creates an empty queue.
func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// enqueue appends ev. It returns false if the queue is closed.
func (q *eventQueue) enqueue(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.events = append(q.events, ev)

	// Coalesce: one pending signal is enough to wake the loop.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// tryDequeue pops the front event without blocking.
func (q *eventQueue) tryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	ev := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]

	return ev, true
}

// close rejects new events and returns whatever was still queued.
func (q *eventQueue) close() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	rest := q.events
	q.events = nil

	return rest
}

// len returns the number of queued events.
func (q *eventQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}
