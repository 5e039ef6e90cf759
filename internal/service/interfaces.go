package service

import (
	"context"
	"time"

	"hotelier/internal/models"
)

// RoomStore is the room persistence interface consumed by the services.
type RoomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	SearchRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	SetRoomAvailability(ctx context.Context, roomID int64, available bool) error
	ListRooms(ctx context.Context) ([]models.Room, error)
	CountRooms(ctx context.Context) (int, error)
	CountRoomsByType(ctx context.Context) (map[string]int, error)
}

// ReservationStore is the reservation persistence interface.
type ReservationStore interface {
	CreateReservation(ctx context.Context, res *models.Reservation) error
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, res *models.Reservation) error
	MarkNotified(ctx context.Context, id int64) error
	GetClientReservations(ctx context.Context, clientID int64) ([]models.Reservation, error)
	GetReservationsByStartRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error)
	HasOverlappingConfirmed(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error)
	GetOverlappingCountsByType(ctx context.Context, start, end time.Time) (map[string]int, error)
}

// InvoiceStore is the invoice persistence interface.
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoiceByReservation(ctx context.Context, reservationID int64) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
}

// ClientStore is the client persistence interface.
type ClientStore interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClient(ctx context.Context, id int64) (*models.Client, error)
}

// Publisher emits domain events to interested subscribers.
type Publisher interface {
	Publish(eventType string, payload interface{})
}
