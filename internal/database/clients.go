package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// CreateClient inserts a new client and fills in its assigned ID.
func (db *DB) CreateClient(ctx context.Context, client *models.Client) error {
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `
		INSERT INTO clients (name, last_name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		client.Name, client.LastName, client.Email, client.Phone, now,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last id: %w", err)
	}
	client.ID = id
	client.CreatedAt = now
	return nil
}

// GetClient returns the client with the given id, or ErrNotFound.
func (db *DB) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := db.QueryRowContext(ctx, `
		SELECT id, name, last_name, email, phone, created_at
		FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}
