package reservation

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

// Action names what an actor does to a reservation. It is also the action
// recorded in the audit trail.
type Action string

const (
	ActionCreate        Action = "create"
	ActionReschedule    Action = "reschedule"
	ActionValidate      Action = "validate"
	ActionRefuse        Action = "refuse"
	ActionCancelByUser  Action = "cancel_by_user"
	ActionCancelByAdmin Action = "cancel_by_admin"
)

// Command asks for one lifecycle transition.
type Command struct {
	Action  Action
	ActorID string
	Reason  string // comment for validate, reason otherwise
	At      time.Time

	// Slot is the new slot requested by a reschedule.
	Slot *Slot
}

// Guards supplies the facts a transition depends on beyond the reservation itself.
type Guards struct {
	// SlotFree checks the calendar for the slot the reservation will hold,
	// ignoring the reservation itself. Validate and reschedule fail with
	// ErrSlotConflict when it reports false.
	SlotFree func() (bool, error)

	// Location is where segment start hours are read for the cancellation notice.
	Location *time.Location
}

var (
	errNoSlotCheck = errors.New("transition needs a slot check")
	errNoSlot      = errors.New("reschedule needs a target slot")
)

type rule struct {
	from []Status
	to   Status

	// invalid is returned when the current status is not in from.
	invalid *apperror.AppError

	// missingReason is returned when a mandatory reason is blank; nil when optional.
	missingReason *apperror.AppError

	// ownerOnly restricts the action to the requester of the reservation.
	ownerOnly bool

	// checksSlot makes the transition consult Guards.SlotFree.
	checksSlot bool
}

var rules = map[Action]rule{
	ActionValidate: {
		from:       []Status{StatusPending},
		to:         StatusConfirmed,
		invalid:    ErrNotPending,
		checksSlot: true,
	},
	ActionReschedule: {
		from:       []Status{StatusPending},
		to:         StatusPending,
		invalid:    ErrNotReschedulable,
		ownerOnly:  true,
		checksSlot: true,
	},
	ActionRefuse: {
		from:          []Status{StatusPending, StatusConfirmed},
		to:            StatusRefused,
		invalid:       ErrAlreadyClosed,
		missingReason: ErrRefusalReasonRequired,
	},
	ActionCancelByAdmin: {
		from:          []Status{StatusPending, StatusConfirmed},
		to:            StatusCancelledByAdmin,
		invalid:       ErrAlreadyClosed,
		missingReason: ErrCancelReasonRequired,
	},
	ActionCancelByUser: {
		from:      []Status{StatusPending, StatusConfirmed},
		to:        StatusCancelledByUser,
		invalid:   ErrAlreadyClosed,
		ownerOnly: true,
	},
}

// CanTransition reports whether action is legal from status, ignoring every
// other precondition.
func CanTransition(status Status, action Action) bool {
	rl, ok := rules[action]
	return ok && slices.Contains(rl.from, status)
}

// Transition applies cmd to r if every precondition holds and returns the audit
// entry describing the change. On error r is left untouched.
func Transition(r *Reservation, cmd Command, g Guards) (*audit.Entry, error) {
	rl, ok := rules[cmd.Action]
	if !ok {
		return nil, ErrInvalidTransition
	}

	if rl.ownerOnly && r.UserID != cmd.ActorID {
		return nil, ErrNotOwner
	}

	if !slices.Contains(rl.from, r.Status) {
		return nil, rl.invalid
	}

	reason := strings.TrimSpace(cmd.Reason)
	if rl.missingReason != nil && reason == "" {
		return nil, rl.missingReason
	}

	if cmd.Action == ActionCancelByUser && !CanCancel(r.DateStart, r.Segment, cmd.At, g.Location) {
		return nil, ErrTooLate
	}
	if cmd.Action == ActionReschedule && cmd.Slot == nil {
		return nil, errNoSlot
	}

	if rl.checksSlot {
		if g.SlotFree == nil {
			return nil, errNoSlotCheck
		}
		free, err := g.SlotFree()
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrSlotConflict
		}
	}

	previous := r.Status
	if cmd.Slot != nil {
		r.DateStart = cmd.Slot.Span.Start
		r.DateEnd = cmd.Slot.Span.End
		r.Segment = cmd.Slot.Segment
	}
	stamp(r, cmd.Action, cmd.ActorID, optional(reason), cmd.At)
	r.Status = rl.to

	return newEntry(r, cmd.Action, cmd.ActorID, previous, optional(reason)), nil
}

func stamp(r *Reservation, action Action, actorID string, reason *string, at time.Time) {
	actor := actorID
	switch action {
	case ActionValidate, ActionRefuse:
		r.DecidedBy = &actor
		r.DecidedAt = &at
		r.AdminComment = reason
	case ActionCancelByUser, ActionCancelByAdmin:
		r.CancelledBy = &actor
		r.CancelledAt = &at
		r.CancellationReason = reason
	}
	r.UpdatedAt = at
}

// CreationEntry is the first line of a reservation's history.
func CreationEntry(r *Reservation, actorID string) *audit.Entry {
	return newEntry(r, ActionCreate, actorID, "", nil)
}

func newEntry(r *Reservation, action Action, actorID string, previous Status, comment *string) *audit.Entry {
	return &audit.Entry{
		ReservationID:  r.ID,
		ActorID:        actorID,
		Action:         string(action),
		PreviousStatus: string(previous),
		NewStatus:      string(r.Status),
		Comment:        comment,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
