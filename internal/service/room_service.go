package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelier/internal/cache"
	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// RoomService manages the room inventory and answers availability queries.
type RoomService struct {
	rooms        RoomStore
	availability *Availability
	cache        *cache.RoomCache
	logger       *zerolog.Logger
}

// NewRoomService creates the room service. searchCache may be nil when
// Redis is not configured.
func NewRoomService(rooms RoomStore, reservations ReservationStore, searchCache *cache.RoomCache, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		rooms:        rooms,
		availability: NewAvailability(rooms, reservations),
		cache:        searchCache,
		logger:       logger,
	}
}

// Register validates and persists a new room. Rooms start available; from
// then on the flag belongs to the reservation lifecycle.
func (s *RoomService) Register(ctx context.Context, room *models.Room) (*models.Room, error) {
	if room == nil {
		return nil, ErrNilRoom
	}
	if strings.TrimSpace(room.Type) == "" {
		return nil, fmt.Errorf("%w: room type is required", ErrInvalidArgument)
	}
	if room.PricePerNight <= 0 {
		return nil, fmt.Errorf("%w: price per night must be greater than zero", ErrInvalidArgument)
	}

	room.Available = true
	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info().
		Int64("room_id", room.ID).
		Str("type", room.Type).
		Float64("price_per_night", room.PricePerNight).
		Msg("Room registered")

	return room, nil
}

// Search returns rooms matching the filter, served from the Redis cache
// when a fresh entry exists.
func (s *RoomService) Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	if rooms, ok := s.cache.GetSearch(ctx, filter); ok {
		return rooms, nil
	}

	rooms, err := s.rooms.SearchRooms(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}

	s.cache.SetSearch(ctx, filter, rooms)
	return rooms, nil
}

// Get returns a single room by id.
func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.rooms.GetRoom(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// CheckAvailability returns every room that can be booked for [start, end).
func (s *RoomService) CheckAvailability(ctx context.Context, start, end time.Time) ([]models.Room, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	return s.availability.FindAvailableRooms(ctx, start.UTC(), end.UTC())
}

// IsRoomAvailable answers the booking-conflict predicate for one room.
func (s *RoomService) IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	return s.availability.IsRoomAvailable(ctx, roomID, start.UTC(), end.UTC())
}
