package booking

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrInvalidInterval     = errors.New("start time must be before end time")
	ErrPastBooking         = errors.New("cannot book room in the past")
	ErrRoomConflict        = errors.New("room is already booked for this time period")
	ErrValidation          = errors.New("validation error")
)
