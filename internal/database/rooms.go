package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hotelier/internal/models"
)

// CreateRoom inserts a new room and fills in its assigned ID.
func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO rooms (type, price_per_night, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		room.Type, room.PricePerNight, room.Available, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

// GetRoom returns the room with the given id, or ErrNotFound.
func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var r models.Room
	err := db.QueryRowContext(ctx, `
		SELECT id, type, price_per_night, available, created_at, updated_at
		FROM rooms WHERE id = ?`, id,
	).Scan(&r.ID, &r.Type, &r.PricePerNight, &r.Available, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &r, nil
}

// SearchRooms returns rooms matching the filter. Empty filter fields are ignored.
func (db *DB) SearchRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Type != "" {
		conds = append(conds, "type LIKE ?")
		args = append(args, "%"+filter.Type+"%")
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price_per_night >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price_per_night <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.Available != nil {
		conds = append(conds, "available = ?")
		args = append(args, *filter.Available)
	}

	query := `SELECT id, type, price_per_night, available, created_at, updated_at FROM rooms`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

// SetRoomAvailability updates the cached availability flag on a room.
func (db *DB) SetRoomAvailability(ctx context.Context, roomID int64, available bool) error {
	result, err := db.ExecContext(ctx, `
		UPDATE rooms SET available = ?, updated_at = ? WHERE id = ?`,
		available, time.Now().UTC(), roomID,
	)
	if err != nil {
		return fmt.Errorf("set availability: %w", err)
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

// ListRooms returns all registered rooms ordered by id.
func (db *DB) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, type, price_per_night, available, created_at, updated_at
		FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

// CountRooms returns the total number of registered rooms.
func (db *DB) CountRooms(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

// CountRoomsByType returns the room inventory grouped by type.
func (db *DB) CountRoomsByType(ctx context.Context) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT type, COUNT(*) FROM rooms GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("count rooms by type: %w", err)
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

func scanRooms(rows *sql.Rows) ([]models.Room, error) {
	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Type, &r.PricePerNight, &r.Available, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}
