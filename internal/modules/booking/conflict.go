package booking

import (
	"time"

	"meetingroom/internal/domain"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd)
// share any instant. Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict returns the first booking in existing that overlaps [start, end).
// The order of existing does not matter.
func FindConflict(existing []domain.Booking, start, end time.Time) (*domain.Booking, bool) {
	for i := range existing {
		if Overlaps(existing[i].StartTime, existing[i].EndTime, start, end) {
			return &existing[i], true
		}
	}
	return nil, false
}

func Conflicts(existing []domain.Booking, start, end time.Time) bool {
	_, found := FindConflict(existing, start, end)
	return found
}
