package domain

import "time"

// Booking reserves a room for the half-open interval [StartTime, EndTime).
// Participant and room are referenced by id only; see BookingView for the resolved form.
type Booking struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participant_id" validate:"required"`
	RoomID        int64     `json:"room_id" validate:"required"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingView is a booking with its participant and room looked up by id.
type BookingView struct {
	Booking
	Participant *Participant `json:"participant,omitempty"`
	Room        *Room        `json:"room,omitempty"`
}
