package domain

import "time"

// Participant is a person who can hold bookings. Names are unique.
type Participant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
