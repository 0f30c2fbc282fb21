package outbox

import "context"

// Event is any domain event identified by a stable name.
type Event interface {
	EventName() string
}

// Handler processes one published event.
type Handler func(ctx context.Context, e Event) error

// Publisher delivers events to interested subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers a handler for an event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
