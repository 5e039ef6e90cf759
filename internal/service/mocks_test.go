package service

import (
	"context"
	"time"

	"hotelier/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRoomStore struct {
	mock.Mock
}

func (m *mockRoomStore) CreateRoom(ctx context.Context, room *models.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *mockRoomStore) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *mockRoomStore) SearchRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *mockRoomStore) SetRoomAvailability(ctx context.Context, roomID int64, available bool) error {
	return m.Called(ctx, roomID, available).Error(0)
}

func (m *mockRoomStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *mockRoomStore) CountRooms(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRoomStore) CountRoomsByType(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type mockReservationStore struct {
	mock.Mock
}

func (m *mockReservationStore) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *mockReservationStore) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockReservationStore) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *mockReservationStore) MarkNotified(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReservationStore) GetClientReservations(ctx context.Context, clientID int64) ([]models.Reservation, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockReservationStore) GetReservationsByStartRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockReservationStore) HasOverlappingConfirmed(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	args := m.Called(ctx, roomID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationStore) GetOverlappingCountsByType(ctx context.Context, start, end time.Time) (map[string]int, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type mockInvoiceStore struct {
	mock.Mock
}

func (m *mockInvoiceStore) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *mockInvoiceStore) GetInvoiceByReservation(ctx context.Context, reservationID int64) (*models.Invoice, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *mockInvoiceStore) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invoice), args.Error(1)
}

type mockClientStore struct {
	mock.Mock
}

func (m *mockClientStore) CreateClient(ctx context.Context, client *models.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientStore) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

type mockBus struct {
	mock.Mock
}

func (m *mockBus) Publish(eventType string, payload interface{}) {
	m.Called(eventType, payload)
}
