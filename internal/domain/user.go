package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
