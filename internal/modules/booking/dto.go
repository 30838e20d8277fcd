package booking

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// instantLayouts are tried in order. Layouts without an offset are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

type CreateBookingRequest struct {
	ParticipantID int64  `json:"participant_id" binding:"required,gt=0"`
	RoomID        int64  `json:"room_id" binding:"required,gt=0"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
}

type ListBookingsQuery struct {
	RoomID string `form:"room_id"`
	Date   string `form:"date"`
}

// CreateBookingInput is the validated, typed form of a booking request.
type CreateBookingInput struct {
	ParticipantID int64
	RoomID        int64
	Start         time.Time
	End           time.Time
}

func (r CreateBookingRequest) toInput() (CreateBookingInput, error) {
	start, err := ParseInstant(r.StartTime)
	if err != nil {
		return CreateBookingInput{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseInstant(r.EndTime)
	if err != nil {
		return CreateBookingInput{}, fmt.Errorf("end_time: %w", err)
	}
	return CreateBookingInput{
		ParticipantID: r.ParticipantID,
		RoomID:        r.RoomID,
		Start:         start,
		End:           end,
	}, nil
}

// ParseInstant accepts ISO-8601 timestamps with or without an offset and
// returns the instant in UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, s)
}

// ParseDate parses YYYY-MM-DD into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD", ErrValidation, s)
	}
	return d, nil
}

// dayOf truncates t to midnight of its calendar date on the canonical (UTC) clock.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
