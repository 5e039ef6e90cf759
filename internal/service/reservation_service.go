package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

const notifyDateFormat = "02/01/2006"

// checkInWindowDays is how far ahead (inclusive) NotifyCheckIn looks for
// upcoming stays.
const checkInWindowDays = 2

// ReservationService orchestrates the reservation lifecycle: reserve,
// cancel, check-in notification and per-client history. It owns the
// room's cached availability flag and is the only writer of it.
type ReservationService struct {
	reservations ReservationStore
	rooms        RoomStore
	availability *Availability
	bus          Publisher
	locks        *roomLocks
	logger       *zerolog.Logger
}

func NewReservationService(reservations ReservationStore, rooms RoomStore, bus Publisher, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		availability: NewAvailability(rooms, reservations),
		bus:          bus,
		locks:        newRoomLocks(),
		logger:       logger,
	}
}

// Reserve validates and persists a new reservation, then marks the room's
// cached availability flag false. The reservation is durably confirmed
// before the flag changes: a failure between the two steps leaves the room
// still showing available, which is safe because the overlap scan, not the
// flag, is authoritative for conflicts.
func (s *ReservationService) Reserve(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	if res == nil {
		return nil, ErrNilReservation
	}
	if !res.StartDate.Before(res.EndDate) {
		return nil, ErrInvalidRange
	}

	today := models.DateOnly(time.Now())
	if models.DateOnly(res.StartDate).Before(today) {
		return nil, ErrPastDate
	}

	res.NormalizeUTC()

	unlock := s.locks.Lock(res.RoomID)
	defer unlock()

	available, err := s.availability.IsRoomAvailable(ctx, res.RoomID, res.StartDate, res.EndDate)
	if err != nil {
		return nil, fmt.Errorf("availability check: %w", err)
	}
	if !available {
		metrics.IncReservationConflict()
		return nil, ErrRoomUnavailable
	}

	res.Status = models.StatusConfirmed
	res.IsNotified = false

	if err := s.reservations.CreateReservation(ctx, res); err != nil {
		// The store re-checks the overlap inside its transaction; a
		// conflict here means another writer won the race.
		if errors.Is(err, database.ErrConflict) {
			metrics.IncReservationConflict()
			return nil, ErrRoomUnavailable
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	if err := s.rooms.SetRoomAvailability(ctx, res.RoomID, false); err != nil {
		s.logger.Error().Err(err).
			Int64("reservation_id", res.ID).
			Int64("room_id", res.RoomID).
			Msg("Reservation recorded but availability flag update failed")
		return nil, fmt.Errorf("update room availability: %w", err)
	}

	s.logger.Info().
		Int64("reservation_id", res.ID).
		Int64("room_id", res.RoomID).
		Int64("client_id", res.ClientID).
		Time("start", res.StartDate).
		Time("end", res.EndDate).
		Msg("Reservation confirmed")

	metrics.IncReservationCreated()
	s.publish(events.TypeReservationCreated, res)

	return res, nil
}

// Cancel transitions a confirmed, not-yet-started reservation to canceled.
// The room's cached flag is restored to available only when no other
// confirmed reservation still overlaps the canceled interval.
func (s *ReservationService) Cancel(ctx context.Context, reservationID int64) error {
	res, err := s.reservations.GetReservation(ctx, reservationID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
	}
	if err != nil {
		return fmt.Errorf("get reservation: %w", err)
	}

	unlock := s.locks.Lock(res.RoomID)
	defer unlock()

	// Re-read under the room lock: a concurrent Cancel on the same id must
	// observe the committed status, not the pre-lock snapshot.
	res, err = s.reservations.GetReservation(ctx, reservationID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
	}
	if err != nil {
		return fmt.Errorf("get reservation: %w", err)
	}

	if res.Status != models.StatusConfirmed {
		return fmt.Errorf("%w: only confirmed reservations can be canceled", ErrInvalidState)
	}

	today := models.DateOnly(time.Now())
	if models.DateOnly(res.StartDate).Before(today) {
		return fmt.Errorf("%w: cannot cancel a reservation that has already started or passed", ErrInvalidState)
	}

	res.Status = models.StatusCanceled
	if err := s.reservations.UpdateReservation(ctx, res); err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	stillHeld, err := s.availability.HasConfirmedReservations(ctx, res.RoomID, res.StartDate, res.EndDate, res.ID)
	if err != nil {
		return fmt.Errorf("check remaining reservations: %w", err)
	}
	if !stillHeld {
		if err := s.rooms.SetRoomAvailability(ctx, res.RoomID, true); err != nil {
			return fmt.Errorf("update room availability: %w", err)
		}
	}

	s.logger.Info().
		Int64("reservation_id", res.ID).
		Int64("room_id", res.RoomID).
		Bool("room_reopened", !stillHeld).
		Msg("Reservation canceled")

	metrics.IncReservationCanceled()
	s.publish(events.TypeReservationCanceled, res)

	return nil
}

// NotifyCheckIn builds check-in messages for confirmed reservations whose
// stay begins within the next two days (inclusive), marking each one
// notified so it is never re-notified. Message construction only; delivery
// belongs to an external collaborator.
func (s *ReservationService) NotifyCheckIn(ctx context.Context) ([]string, error) {
	start := models.DateOnly(time.Now())
	end := start.AddDate(0, 0, checkInWindowDays)

	upcoming, err := s.reservations.GetReservationsByStartRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("upcoming reservations: %w", err)
	}

	if len(upcoming) == 0 {
		return []string{fmt.Sprintf(
			"No confirmed reservations found in the date range (%s to %s).",
			start.Format(notifyDateFormat), end.Format(notifyDateFormat),
		)}, nil
	}

	var (
		messages    []string
		notifiedIDs []string
	)
	for i := range upcoming {
		res := &upcoming[i]
		if res.IsNotified {
			notifiedIDs = append(notifiedIDs, fmt.Sprintf("%d", res.ID))
			continue
		}

		// The mark is guarded by status in the store: a reservation
		// canceled since the read above stays canceled and gets no
		// message.
		if err := s.reservations.MarkNotified(ctx, res.ID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("mark reservation %d notified: %w", res.ID, err)
		}
		res.IsNotified = true

		messages = append(messages, fmt.Sprintf(
			"Notification: Dear Client %d, your reservation (ID: %d) check-in is on %s. We look forward to welcoming you!",
			res.ClientID, res.ID, res.StartDate.Format(notifyDateFormat),
		))
		metrics.IncCheckInNotification()
		s.publish(events.TypeCheckInNotified, res)
	}

	if len(messages) == 0 && len(notifiedIDs) == 0 {
		return []string{fmt.Sprintf(
			"No confirmed reservations found in the date range (%s to %s).",
			start.Format(notifyDateFormat), end.Format(notifyDateFormat),
		)}, nil
	}

	if len(messages) == 0 {
		return []string{fmt.Sprintf(
			"All reservations in the date range (%s to %s) have already been notified. Reservation IDs: %s",
			start.Format(notifyDateFormat), end.Format(notifyDateFormat),
			strings.Join(notifiedIDs, ", "),
		)}, nil
	}

	return messages, nil
}

// History returns all reservations held by a client.
func (s *ReservationService) History(ctx context.Context, clientID int64) ([]models.Reservation, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("%w: client id must be greater than zero", ErrInvalidArgument)
	}

	reservations, err := s.reservations.GetClientReservations(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client reservations: %w", err)
	}
	if len(reservations) == 0 {
		return nil, fmt.Errorf("%w: no reservations found for client %d", ErrNotFound, clientID)
	}
	return reservations, nil
}

// Availability exposes the engine for callers that only need the predicate.
func (s *ReservationService) Availability() *Availability {
	return s.availability
}

func (s *ReservationService) publish(eventType string, res *models.Reservation) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventType, events.ReservationEvent{
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		RoomID:        res.RoomID,
		StartDate:     res.StartDate,
		EndDate:       res.EndDate,
		Status:        res.Status,
	})
}
