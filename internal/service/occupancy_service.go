package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// OccupancyService computes per-room-type occupancy rates over a window.
type OccupancyService struct {
	rooms        RoomStore
	reservations ReservationStore
	logger       *zerolog.Logger
}

func NewOccupancyService(rooms RoomStore, reservations ReservationStore, logger *zerolog.Logger) *OccupancyService {
	return &OccupancyService{
		rooms:        rooms,
		reservations: reservations,
		logger:       logger,
	}
}

// Report returns, for each room type with at least one reservation
// overlapping [start, end), the percentage of that type's rooms reserved,
// rounded to two decimals. Types without overlapping reservations are
// omitted. The window must start strictly after today and before it ends.
func (s *OccupancyService) Report(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	today := models.DateOnly(time.Now())
	if !models.DateOnly(start).After(today) {
		return nil, fmt.Errorf("%w: start date must be in the future", ErrInvalidRange)
	}
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	total, err := s.rooms.CountRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	if total == 0 {
		return nil, ErrNoRooms
	}

	reserved, err := s.reservations.GetOverlappingCountsByType(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("overlapping reservations: %w", err)
	}

	inventory, err := s.rooms.CountRoomsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("room inventory: %w", err)
	}

	rates := make(map[string]float64, len(reserved))
	for roomType, count := range reserved {
		roomsOfType := inventory[roomType]
		if roomsOfType == 0 {
			continue
		}
		rate := float64(count) / float64(roomsOfType) * 100
		rates[roomType] = math.Round(rate*100) / 100
	}

	s.logger.Debug().
		Time("start", start).
		Time("end", end).
		Int("types", len(rates)).
		Msg("Occupancy report generated")

	metrics.IncOccupancyReport()
	return rates, nil
}
