package service

import "errors"

// Error kinds returned by the services. Callers classify with errors.Is;
// the presentation layer maps each kind to a user-facing response.
var (
	// ErrNilReservation is returned when a required reservation argument is absent.
	ErrNilReservation = errors.New("reservation is required")
	// ErrNilRoom is returned when a required room argument is absent.
	ErrNilRoom = errors.New("room is required")
	// ErrNilClient is returned when a required client argument is absent.
	ErrNilClient = errors.New("client is required")
	// ErrInvalidArgument is returned for malformed input values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidRange is returned when a start date is not strictly before an end date.
	ErrInvalidRange = errors.New("start date must be earlier than end date")
	// ErrPastDate is returned when a reservation would start in the past.
	ErrPastDate = errors.New("start date cannot be in the past")
	// ErrRoomUnavailable is returned when a room cannot be booked for the requested range.
	ErrRoomUnavailable = errors.New("room is not available for the selected dates")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when an entity exists but does not permit the transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrNoRooms is returned by aggregate operations when no rooms are registered.
	ErrNoRooms = errors.New("no rooms registered")
	// ErrInvoiceExists is returned when a reservation already has an invoice.
	ErrInvoiceExists = errors.New("invoice already issued for reservation")
)
