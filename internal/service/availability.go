package service

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"
)

// Availability decides whether rooms are free for date ranges. The cached
// Available flag on a room is only a fast-path short circuit; the authority
// for conflicts is always the confirmed-overlap scan against the
// reservation store.
type Availability struct {
	rooms        RoomStore
	reservations ReservationStore
}

func NewAvailability(rooms RoomStore, reservations ReservationStore) *Availability {
	return &Availability{rooms: rooms, reservations: reservations}
}

// IsRoomAvailable reports whether the room can be booked for [start, end).
// A missing room and a false cached flag both answer false; otherwise the
// answer is derived from the confirmed reservations on the room.
func (a *Availability) IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !room.Available {
		return false, nil
	}

	overlapping, err := a.reservations.HasOverlappingConfirmed(ctx, roomID, start, end, 0)
	if err != nil {
		return false, err
	}
	return !overlapping, nil
}

// HasConfirmedReservations reports whether any confirmed reservation other
// than excludeID overlaps [start, end) on the room. Cancellation uses it to
// decide whether the room may be re-opened.
func (a *Availability) HasConfirmedReservations(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	return a.reservations.HasOverlappingConfirmed(ctx, roomID, start, end, excludeID)
}

// FindAvailableRooms returns every room passing IsRoomAvailable for the range.
func (a *Availability) FindAvailableRooms(ctx context.Context, start, end time.Time) ([]models.Room, error) {
	rooms, err := a.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	var available []models.Room
	for _, room := range rooms {
		if !room.Available {
			continue
		}
		overlapping, err := a.reservations.HasOverlappingConfirmed(ctx, room.ID, start, end, 0)
		if err != nil {
			return nil, err
		}
		if !overlapping {
			available = append(available, room)
		}
	}
	return available, nil
}
