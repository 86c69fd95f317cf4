package ecs

// EventType identifies the kind of a queued event.
type EventType string

const (
	// EventDashBurst asks for a one-shot burst at the dash origin.
	// Data is DashBurst.
	EventDashBurst EventType = "dash_burst"
	// EventDashTrail asks for the trail to follow the dashing entity.
	// Data is DashTrail.
	EventDashTrail EventType = "dash_trail"
	// EventConfigReloaded reports a motion config swapped in from disk.
	// Data is the reloaded prefab file name.
	EventConfigReloaded EventType = "config_reloaded"
)

// Event is a fire-and-forget notification raised during a frame.
type Event struct {
	Type EventType
	Data any
}

// DashBurst is the payload of EventDashBurst.
type DashBurst struct {
	Entity Entity
	X, Y   float64
}

// DashTrail is the payload of EventDashTrail.
type DashTrail struct {
	Entity Entity
}

// EventQueue is a FIFO of events for the current frame. Anything still
// queued when the frame ends is dropped.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
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

// DrainType removes and returns the events of one type, keeping the rest
// queued in order.
func (q *EventQueue) DrainType(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
