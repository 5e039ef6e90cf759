package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/export"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InvoiceService issues post-stay invoices for completed reservations.
type InvoiceService struct {
	reservations ReservationStore
	rooms        RoomStore
	invoices     InvoiceStore
	bus          Publisher
	logger       *zerolog.Logger
}

func NewInvoiceService(reservations ReservationStore, rooms RoomStore, invoices InvoiceStore, bus Publisher, logger *zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		reservations: reservations,
		rooms:        rooms,
		invoices:     invoices,
		bus:          bus,
		logger:       logger,
	}
}

// Generate issues the invoice for a confirmed reservation whose stay has
// ended. The invoice snapshots the room's current price per night and is
// immutable afterwards; a reservation is invoiced at most once.
func (s *InvoiceService) Generate(ctx context.Context, reservationID int64) (*models.Invoice, error) {
	res, err := s.reservations.GetReservation(ctx, reservationID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	if res.Status != models.StatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed reservations can generate invoices", ErrInvalidState)
	}

	now := time.Now().UTC()
	if res.EndDate.After(now) {
		return nil, fmt.Errorf("%w: invoice can only be generated after check-out", ErrInvalidState)
	}

	if _, err := s.invoices.GetInvoiceByReservation(ctx, reservationID); err == nil {
		return nil, fmt.Errorf("%w: reservation %d", ErrInvoiceExists, reservationID)
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("check existing invoice: %w", err)
	}

	nights := res.Nights()
	if nights <= 0 {
		return nil, fmt.Errorf("%w: nights stayed must be greater than zero", ErrInvalidState)
	}

	room, err := s.rooms.GetRoom(ctx, res.RoomID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: room %d", ErrNotFound, res.RoomID)
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	total := float64(nights) * room.PricePerNight
	if total <= 0 {
		return nil, fmt.Errorf("%w: total amount must be greater than zero", ErrInvalidState)
	}

	invoice := &models.Invoice{
		Number:            uuid.NewString(),
		ReservationID:     reservationID,
		IssueDate:         now,
		NightsStayed:      nights,
		RoomPricePerNight: room.PricePerNight,
		TotalAmount:       total,
	}

	if err := s.invoices.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.logger.Info().
		Int64("invoice_id", invoice.ID).
		Str("number", invoice.Number).
		Int64("reservation_id", reservationID).
		Int("nights", nights).
		Float64("total", total).
		Msg("Invoice generated")

	metrics.IncInvoiceGenerated()
	if s.bus != nil {
		s.bus.Publish(events.TypeInvoiceGenerated, events.InvoiceEvent{
			InvoiceID:     invoice.ID,
			ReservationID: reservationID,
			TotalAmount:   total,
		})
	}

	return invoice, nil
}

// GetByReservation returns the invoice issued for a reservation.
func (s *InvoiceService) GetByReservation(ctx context.Context, reservationID int64) (*models.Invoice, error) {
	invoice, err := s.invoices.GetInvoiceByReservation(ctx, reservationID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: no invoice for reservation %d", ErrNotFound, reservationID)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return invoice, nil
}

// Export writes all issued invoices to w as an Excel workbook.
func (s *InvoiceService) Export(ctx context.Context, w io.Writer) error {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("list invoices: %w", err)
	}
	return export.WriteInvoices(w, invoices)
}
