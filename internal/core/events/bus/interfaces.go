package bus

import "time"

// EventBus is a synchronous in-process pub/sub bus.
//
// Publish calls every active handler for the event's type in the caller
// goroutine, in the order the handlers subscribed, and returns only after the
// last one ran. Handler errors are joined and returned from Publish.
// All methods are safe for concurrent use.
type EventBus interface {
	Publish(event Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	Unsubscribe(Subscription) error

	AddObserver(obs Observer)
	RemoveObserver(obs Observer)
	// Metrics counts deliveries only while at least one observer is registered.
	Metrics() Metrics
}

// Event is an immutable message transported by the bus.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

type (
	EventHandler func(event Event) error
)

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about deliveries. Observers should return quickly.
type Observer interface {
	OnPublish(event Event)
	OnDelivered(event Event, handlers int, err error, took time.Duration)
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
