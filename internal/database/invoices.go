package database

import (
	"context"
	"database/sql"
	"fmt"

	"hotelier/internal/models"
)

// CreateInvoice inserts an invoice and fills in its assigned ID. The unique
// constraint on reservation_id enforces one invoice per reservation.
func (db *DB) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	result, err := db.ExecContext(ctx, `
		INSERT INTO invoices (number, reservation_id, issue_date, nights_stayed, room_price_per_night, total_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.Number, inv.ReservationID, inv.IssueDate, inv.NightsStayed, inv.RoomPricePerNight, inv.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	inv.ID = id
	return nil
}

// GetInvoiceByReservation returns the invoice issued for a reservation, or
// ErrNotFound when none was issued.
func (db *DB) GetInvoiceByReservation(ctx context.Context, reservationID int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := db.QueryRowContext(ctx, `
		SELECT id, number, reservation_id, issue_date, nights_stayed, room_price_per_night, total_amount
		FROM invoices WHERE reservation_id = ?`, reservationID,
	).Scan(&inv.ID, &inv.Number, &inv.ReservationID, &inv.IssueDate, &inv.NightsStayed, &inv.RoomPricePerNight, &inv.TotalAmount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListInvoices returns all issued invoices in issue order.
func (db *DB) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, number, reservation_id, issue_date, nights_stayed, room_price_per_night, total_amount
		FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.ReservationID, &inv.IssueDate, &inv.NightsStayed, &inv.RoomPricePerNight, &inv.TotalAmount); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
