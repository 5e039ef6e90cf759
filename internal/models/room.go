package models

import "time"

// Room represents a bookable hotel room.
//
// Available is a cached summary of the booking state, maintained by the
// reservation service. It is a fast-path hint only: overlap detection always
// re-derives availability from the set of confirmed reservations.
type Room struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"` // e.g. "Single", "Double", "Suite"
	PricePerNight float64   `json:"price_per_night"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomFilter narrows a room search. Nil fields are ignored.
type RoomFilter struct {
	Type      string   `json:"type,omitempty"`
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	Available *bool    `json:"available,omitempty"`
}
