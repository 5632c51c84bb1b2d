package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// ContactKind identifies contact event types.
type ContactKind string

const (
	ContactBegin    ContactKind = "begin"
	ContactSeparate ContactKind = "separate"
)

// ContactEvent is queued by the physics step. Callbacks inside the step
// only record events; consumers act on them after the step returns.
type ContactEvent struct {
	Kind ContactKind
	A    Entity
	B    Entity
}

// Other returns the entity on the far side of the contact from e.
func (c ContactEvent) Other(e Entity) (Entity, bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

const EventContact = "contact"

// EventQueue is a simple FIFO queue.
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

// PushContact queues a contact event.
func (q *EventQueue) PushContact(c ContactEvent) {
	q.Push(Event{Type: EventContact, Data: c})
}

// Each visits queued events in order without consuming them.
func (q *EventQueue) Each(fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		fn(evt)
	}
}

// Contacts visits queued contact events of the given kind.
func (q *EventQueue) Contacts(kind ContactKind, fn func(ContactEvent)) {
	q.Each(func(evt Event) {
		c, ok := evt.Data.(ContactEvent)
		if !ok || evt.Type != EventContact || c.Kind != kind {
			return
		}
		fn(c)
	})
}

// Len is the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

// Flush drops every queued event.
func (q *EventQueue) Flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
