package domain

import "time"

type Train struct {
	TrainNo     string
	Source      string
	Destination string
	TotalSeats  int
	CreatedAt   time.Time
}

// TrainAvailability is the read model returned by route search: train
// metadata plus the current number of unbooked seats.
type TrainAvailability struct {
	TrainNo        string `json:"train_no"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

type Seat struct {
	ID       int64
	TrainNo  string
	SeatNo   int
	IsBooked bool
	BookedBy *int64
}
