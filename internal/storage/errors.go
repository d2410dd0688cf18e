package storage

import "errors"

var (
	// ErrDuplicateBooking is returned when the bookings uniqueness key
	// (email, appointment date, treatment) is already taken.
	ErrDuplicateBooking = errors.New("duplicate booking")

	// ErrDuplicateTreatment is returned when a catalog entry with the same
	// name already exists.
	ErrDuplicateTreatment = errors.New("duplicate treatment")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
