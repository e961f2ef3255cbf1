// Package event provides the shared event queue connecting the action
// dispatcher to streaming sessions.
package event

import "sync"

// Result status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Event is one dispatcher result or lifecycle notice. Immutable once
// enqueued; a nil Data marshals as JSON null.
type Event struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// OK builds a success event.
func OK(message string, data map[string]any) Event {
	return Event{Status: StatusOK, Message: message, Data: data}
}

// Err builds an error event.
func Err(message string, data map[string]any) Event {
	return Event{Status: StatusError, Message: message, Data: data}
}

// Queue is an unbounded, FIFO-ordered, concurrency-safe event queue. It is
// the single hand-off point between the synchronous request path and any
// live streaming sessions.
//
// Delivery is at-most-once across consumers: with multiple sessions draining
// the same queue, the first TryConsume wins and the event is gone for the
// others. There is no per-session cursor and no broadcast.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue. One queue is created at process start and
// shared by reference; it lives for the process lifetime and is never
// cleared.
func NewQueue() *Queue {
	return &Queue{}
}

// Publish appends an event to the tail. It never blocks the caller.
func (q *Queue) Publish(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// TryConsume pops the head event if one is present. It never blocks; the
// second return value reports whether an event was available.
func (q *Queue) TryConsume() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]
	// Shift rather than re-slice so consumed events are released to the GC.
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
