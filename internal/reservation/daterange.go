package reservation

import "time"

const day = 24 * time.Hour

// Date truncates t to its calendar date, expressed as midnight UTC.
// The calendar date is read in t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to calendar dates and checks their order.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Date(start), End: Date(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// Overlaps reports whether the two ranges share at least one date.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Length is the distance between the bounds; a single-day range has length 0.
func (r DateRange) Length() time.Duration {
	return r.End.Sub(r.Start)
}
