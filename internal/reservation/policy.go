package reservation

// RequiresValidation decides whether a new reservation waits for an administrator.
// Requests spanning more than one day after their first date, and official
// categories, need validation; the rest are confirmed immediately.
//
// It is evaluated once, at creation.
func RequiresValidation(span DateRange, category Category) bool {
	return span.Length() > day || category.Official()
}

// InitialStatus is the status a new reservation is created in.
func InitialStatus(span DateRange, category Category) Status {
	if RequiresValidation(span, category) {
		return StatusPending
	}
	return StatusConfirmed
}
