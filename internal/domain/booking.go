package domain

import "time"

type Booking struct {
	ID        int64
	UserID    int64
	TrainNo   string
	SeatID    int64
	SeatNo    int
	CreatedAt time.Time
}

// BookingDetails is a booking joined with its route, the shape returned
// to the caller on confirmation and lookup.
type BookingDetails struct {
	BookingID   int64     `json:"booking_id"`
	TrainNo     string    `json:"train_no"`
	SeatNo      int       `json:"seat_no"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Username    string    `json:"user"`
	BookedAt    time.Time `json:"booked_at"`
}
