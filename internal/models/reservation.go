package models

import "time"

// Reservation statuses. A reservation is created confirmed and may only
// transition to canceled; canceled is terminal.
const (
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// Reservation represents a client's booking of a room for a date range.
// The interval is half-open: [StartDate, EndDate). Touching boundaries
// (one stay ending the day another begins) do not conflict.
type Reservation struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	RoomID     int64     `json:"room_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	IsNotified bool      `json:"is_notified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Overlaps reports whether the reservation's interval overlaps [start, end)
// using the open-interval test: start < EndDate && end > StartDate.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndDate) && end.After(r.StartDate)
}

// Nights returns the whole number of nights between start and end dates.
// Fractional days truncate down.
func (r *Reservation) Nights() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// NormalizeUTC rewrites both dates as UTC instants.
func (r *Reservation) NormalizeUTC() {
	r.StartDate = r.StartDate.UTC()
	r.EndDate = r.EndDate.UTC()
}

// DateOnly truncates t to midnight UTC. All temporal preconditions
// (past-date checks, notification windows) compare dates, not instants.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
