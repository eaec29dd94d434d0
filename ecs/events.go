package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventArrived is pushed when a walker reaches the end of its path.
	EventArrived = "arrived"
	// EventUnreachable is pushed when a walk request finds no path.
	EventUnreachable = "unreachable"
)

// WalkEvent is the Data of walk related events.
type WalkEvent struct {
	Entity Entity
	Actor  string
}

// EventQueue is a FIFO queue that lives for one scheduler tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the queued events without clearing them, so several
// systems can observe the same tick.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
