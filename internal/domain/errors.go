package domain

import "errors"

// Business outcomes the API maps to client-facing statuses. Anything not
// matching one of these is treated as a transient infrastructure failure.
var (
	ErrTrainNotFound    = errors.New("train not found")
	ErrTrainExists      = errors.New("train already exists")
	ErrNoSeatsAvailable = errors.New("no seats available on this train")
	ErrDuplicateBooking = errors.New("booking already exists for this seat")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrInvalidInput     = errors.New("invalid input")
)
