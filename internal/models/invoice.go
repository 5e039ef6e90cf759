package models

import "time"

// Invoice is an immutable post-stay billing snapshot for a reservation.
// At most one invoice exists per reservation. RoomPricePerNight is the
// price captured at issue time, not a live reference to the room.
type Invoice struct {
	ID                int64     `json:"id"`
	Number            string    `json:"number"` // uuid assigned at issue time
	ReservationID     int64     `json:"reservation_id"`
	IssueDate         time.Time `json:"issue_date"`
	NightsStayed      int       `json:"nights_stayed"`
	RoomPricePerNight float64   `json:"room_price_per_night"`
	TotalAmount       float64   `json:"total_amount"`
}
