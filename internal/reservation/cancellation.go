package reservation

import "time"

// CancellationNotice is how long before its start a reservation can still be
// cancelled by its requester.
const CancellationNotice = 12 * time.Hour

const (
	morningStartHour   = 8
	afternoonStartHour = 14
)

// EffectiveStart is the instant a reservation begins: 08:00 for morning and
// full-day segments, 14:00 for afternoons, on dateStart in loc.
func EffectiveStart(dateStart time.Time, segment Segment, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	hour := morningStartHour
	if segment == SegmentAfternoon {
		hour = afternoonStartHour
	}
	y, m, d := dateStart.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// CanCancel reports whether a reservation starting on dateStart in segment may
// still be cancelled at now.
func CanCancel(dateStart time.Time, segment Segment, now time.Time, loc *time.Location) bool {
	return EffectiveStart(dateStart, segment, loc).Sub(now) >= CancellationNotice
}
