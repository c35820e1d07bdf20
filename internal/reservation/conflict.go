package reservation

// Conflicts reports whether two slots of the same room compete for the same time:
// their date ranges share a day and their segments overlap on that day.
func Conflicts(a, b Slot) bool {
	if a.RoomID != b.RoomID {
		return false
	}
	return a.Span.Overlaps(b.Span) && a.Segment.Overlaps(b.Segment)
}

// ConflictingWith returns the reservations among existing that hold a slot
// competing with slot. Refused and cancelled reservations never compete.
// The reservation with ID excludeID is ignored, so a reservation being
// modified or validated does not conflict with itself.
func ConflictingWith(existing []*Reservation, slot Slot, excludeID string) []*Reservation {
	var conflicts []*Reservation
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if !r.Status.Occupies() {
			continue
		}
		if Conflicts(r.Slot(), slot) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}

// IsAvailable reports whether slot is free given the existing reservations.
// It only reads its arguments.
func IsAvailable(existing []*Reservation, slot Slot, excludeID string) bool {
	return len(ConflictingWith(existing, slot, excludeID)) == 0
}
