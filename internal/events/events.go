package events

import (
	"sync"
	"time"
)

// Domain event types published by the services.
const (
	TypeReservationCreated  = "reservation.created"
	TypeReservationCanceled = "reservation.canceled"
	TypeCheckInNotified     = "checkin.notified"
	TypeInvoiceGenerated    = "invoice.generated"
)

// ReservationEvent is the payload for reservation lifecycle events.
type ReservationEvent struct {
	ReservationID int64
	ClientID      int64
	RoomID        int64
	StartDate     time.Time
	EndDate       time.Time
	Status        string
}

// InvoiceEvent is the payload for invoice.generated.
type InvoiceEvent struct {
	InvoiceID     int64
	ReservationID int64
	TotalAmount   float64
}

// Event is a lightweight in-process domain event.
type Event struct {
	Type      string
	Payload   interface{}
	CreatedAt time.Time
}

// Handler reacts to an event.
type Handler func(event Event)

// Bus provides in-process pub/sub for domain events.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type. Handlers run
// synchronously; the caller decides the concurrency model.
func (b *Bus) Publish(eventType string, payload interface{}) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[eventType]...)
	b.mu.RUnlock()

	event := Event{Type: eventType, Payload: payload, CreatedAt: time.Now()}
	for _, handler := range handlers {
		handler(event)
	}
}
