package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// CreateReservation inserts a reservation inside a transaction that re-checks
// the confirmed-overlap invariant first. The service layer serializes
// same-room sequences with a per-room lock; this check is the store-level
// backstop so that no interleaving can commit an overlap.
func (db *DB) CreateReservation(ctx context.Context, res *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var overlapping int64
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE room_id = ? AND status = ?
		  AND datetime(start_date) < datetime(?)
		  AND datetime(end_date) > datetime(?)`,
		res.RoomID, models.StatusConfirmed, res.EndDate, res.StartDate,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrConflict
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO reservations (client_id, room_id, start_date, end_date, status, is_notified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ClientID, res.RoomID, res.StartDate, res.EndDate, res.Status, res.IsNotified, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	res.ID = id
	res.CreatedAt = now
	res.UpdatedAt = now
	return nil
}

// GetReservation returns the reservation with the given id, or ErrNotFound.
func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var r models.Reservation
	err := db.QueryRowContext(ctx, `
		SELECT id, client_id, room_id, start_date, end_date, status, is_notified, created_at, updated_at
		FROM reservations WHERE id = ?`, id,
	).Scan(&r.ID, &r.ClientID, &r.RoomID, &r.StartDate, &r.EndDate, &r.Status, &r.IsNotified, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &r, nil
}

// UpdateReservation persists status and notification changes.
func (db *DB) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	result, err := db.ExecContext(ctx, `
		UPDATE reservations SET status = ?, is_notified = ?, updated_at = ? WHERE id = ?`,
		res.Status, res.IsNotified, time.Now().UTC(), res.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkNotified sets the notification flag on a reservation, touching
// nothing else. The status guard makes the write a no-op when the
// reservation was canceled after the caller read it; ErrNotFound reports
// that case so the caller can skip the message.
func (db *DB) MarkNotified(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `
		UPDATE reservations SET is_notified = 1, updated_at = ?
		WHERE id = ? AND status = ?`,
		time.Now().UTC(), id, models.StatusConfirmed,
	)
	if err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetClientReservations returns all reservations held by a client, newest stay first.
func (db *DB) GetClientReservations(ctx context.Context, clientID int64) ([]models.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, client_id, room_id, start_date, end_date, status, is_notified, created_at, updated_at
		FROM reservations WHERE client_id = ?
		ORDER BY datetime(start_date) DESC, id DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("client reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetReservationsByStartRange returns confirmed reservations whose start
// date falls within [start, end], inclusive on both ends, in id order. The
// comparison is by calendar date: a stay starting at any time of day on the
// boundary day is inside the window.
func (db *DB) GetReservationsByStartRange(ctx context.Context, start, end time.Time) ([]models.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, client_id, room_id, start_date, end_date, status, is_notified, created_at, updated_at
		FROM reservations
		WHERE status = ?
		  AND date(start_date) >= date(?)
		  AND date(start_date) <= date(?)
		ORDER BY id`, models.StatusConfirmed, start, end)
	if err != nil {
		return nil, fmt.Errorf("reservations by start range: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// HasOverlappingConfirmed reports whether any confirmed reservation on the
// room overlaps [start, end). excludeID, when non-zero, skips one
// reservation; cancellation uses it to ask about *other* holders.
func (db *DB) HasOverlappingConfirmed(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	var n int64
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE room_id = ? AND status = ? AND id != ?
		  AND datetime(start_date) < datetime(?)
		  AND datetime(end_date) > datetime(?)`,
		roomID, models.StatusConfirmed, excludeID, end, start,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("overlapping confirmed: %w", err)
	}
	return n > 0, nil
}

// GetOverlappingCountsByType counts reservations overlapping [start, end)
// grouped by their room's type. Used by the occupancy report.
func (db *DB) GetOverlappingCountsByType(ctx context.Context, start, end time.Time) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT rooms.type, COUNT(reservations.id)
		FROM reservations
		JOIN rooms ON rooms.id = reservations.room_id
		WHERE datetime(reservations.start_date) < datetime(?)
		  AND datetime(reservations.end_date) > datetime(?)
		GROUP BY rooms.type`, end, start)
	if err != nil {
		return nil, fmt.Errorf("overlapping counts by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			roomType string
			n        int
		)
		if err := rows.Scan(&roomType, &n); err != nil {
			return nil, err
		}
		counts[roomType] = n
	}
	return counts, rows.Err()
}

func scanReservations(rows *sql.Rows) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.ID, &r.ClientID, &r.RoomID, &r.StartDate, &r.EndDate, &r.Status, &r.IsNotified, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}
