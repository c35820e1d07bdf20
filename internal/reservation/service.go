package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
)

// RoomFinder looks up the room a reservation targets.
type RoomFinder interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// BlackoutRegistry returns the blocked dates falling inside [start, end].
type BlackoutRegistry interface {
	FindBlocking(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type Options struct {
	// Location is where dates and segment hours are read. Defaults to UTC.
	Location *time.Location

	// EnforceBlackoutForAdmin applies blackout dates to admin direct creation.
	EnforceBlackoutForAdmin bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type CreateRequest struct {
	RoomID      string
	RequesterID string

	// ActorID is who submits the request. It differs from RequesterID when an
	// administrator books on behalf of a user.
	ActorID string
	ByAdmin bool

	DateStart     time.Time
	DateEnd       time.Time
	Segment       Segment
	Category      Category
	Participants  int
	Justification string
}

// RescheduleRequest carries the fields to change; nil keeps the current value.
type RescheduleRequest struct {
	DateStart *time.Time
	DateEnd   *time.Time
	Segment   *Segment
}

type Service interface {
	CreateReservation(ctx context.Context, req CreateRequest) (*Reservation, error)
	ValidateReservation(ctx context.Context, id, adminID, comment string) (*Reservation, error)
	RefuseReservation(ctx context.Context, id, adminID, reason string) (*Reservation, error)
	CancelByUser(ctx context.Context, id, requesterID, reason string) (*Reservation, error)
	CancelByAdmin(ctx context.Context, id, adminID, reason string) (*Reservation, error)
	Reschedule(ctx context.Context, id, requesterID string, req RescheduleRequest) (*Reservation, error)

	CheckAvailability(ctx context.Context, roomID string, start, end time.Time, segment Segment) (bool, error)
	Calendar(ctx context.Context, roomID string, start, end time.Time) ([]*Reservation, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
}

type service struct {
	repo      Repository
	rooms     RoomFinder
	blackouts BlackoutRegistry
	opts      Options
}

func NewService(repo Repository, rooms RoomFinder, blackouts BlackoutRegistry, opts Options) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:      repo,
		rooms:     rooms,
		blackouts: blackouts,
		opts:      opts,
	}
}

func (s *service) today() time.Time {
	return Date(s.opts.Now().In(s.opts.Location))
}

func (s *service) CreateReservation(ctx context.Context, req CreateRequest) (*Reservation, error) {
	res, err := s.create(ctx, req)
	return s.finish(ActionCreate, req.RoomID, res, err)
}

func (s *service) create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	// 1. Validate input
	if !req.Segment.Valid() {
		return nil, ErrInvalidSegment
	}
	if !req.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if req.Participants < 1 || req.Participants > MaxParticipants {
		return nil, ErrCapacityExceeded
	}
	span, err := NewDateRange(req.DateStart, req.DateEnd)
	if err != nil {
		return nil, err
	}
	if span.Start.Before(s.today()) {
		return nil, ErrDateInPast
	}

	// 2. Room must exist and accept reservations
	rm, err := s.bookableRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if req.Participants > rm.Capacity {
		log.Warn().
			Str("room_id", rm.ID).
			Int("capacity", rm.Capacity).
			Int("participants", req.Participants).
			Msg("reservation exceeds room capacity")
	}

	// 3. Blackout dates, skipped for admins unless enforced
	if !req.ByAdmin || s.opts.EnforceBlackoutForAdmin {
		if err := s.checkBlackout(ctx, span); err != nil {
			return nil, err
		}
	}

	// 4. Initial status is decided once, here
	actorID := req.ActorID
	if actorID == "" {
		actorID = req.RequesterID
	}
	res := &Reservation{
		RoomID:        rm.ID,
		RoomName:      rm.Name,
		UserID:        req.RequesterID,
		DateStart:     span.Start,
		DateEnd:       span.End,
		Segment:       req.Segment,
		Category:      req.Category,
		Participants:  req.Participants,
		Justification: strings.TrimSpace(req.Justification),
		Status:        InitialStatus(span, req.Category),
	}

	// 5. Conflict check and insert under the room's write lock
	err = s.repo.Reserve(ctx, res, func(occupying []*Reservation) (*audit.Entry, error) {
		if !IsAvailable(occupying, res.Slot(), "") {
			return nil, ErrSlotConflict
		}
		return CreationEntry(res, actorID), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *service) ValidateReservation(ctx context.Context, id, adminID, comment string) (*Reservation, error) {
	res, err := s.repo.Mutate(ctx, id, func(r *Reservation, occupying OccupyingFunc) (*audit.Entry, error) {
		return Transition(r, Command{
			Action:  ActionValidate,
			ActorID: adminID,
			Reason:  comment,
			At:      s.opts.Now(),
		}, Guards{
			SlotFree: func() (bool, error) {
				existing, err := occupying(r.Span())
				if err != nil {
					return false, err
				}
				return IsAvailable(existing, r.Slot(), r.ID), nil
			},
			Location: s.opts.Location,
		})
	})
	return s.finish(ActionValidate, id, res, err)
}

func (s *service) RefuseReservation(ctx context.Context, id, adminID, reason string) (*Reservation, error) {
	return s.transition(ctx, id, ActionRefuse, adminID, reason)
}

func (s *service) CancelByUser(ctx context.Context, id, requesterID, reason string) (*Reservation, error) {
	return s.transition(ctx, id, ActionCancelByUser, requesterID, reason)
}

func (s *service) CancelByAdmin(ctx context.Context, id, adminID, reason string) (*Reservation, error) {
	return s.transition(ctx, id, ActionCancelByAdmin, adminID, reason)
}

// transition runs an action that depends on nothing but the reservation and the clock.
func (s *service) transition(ctx context.Context, id string, action Action, actorID, reason string) (*Reservation, error) {
	res, err := s.repo.Mutate(ctx, id, func(r *Reservation, _ OccupyingFunc) (*audit.Entry, error) {
		return Transition(r, Command{
			Action:  action,
			ActorID: actorID,
			Reason:  reason,
			At:      s.opts.Now(),
		}, Guards{Location: s.opts.Location})
	})
	return s.finish(action, id, res, err)
}

func (s *service) Reschedule(ctx context.Context, id, requesterID string, req RescheduleRequest) (*Reservation, error) {
	if req.Segment != nil && !req.Segment.Valid() {
		return s.finish(ActionReschedule, id, nil, ErrInvalidSegment)
	}

	res, err := s.repo.Mutate(ctx, id, func(r *Reservation, occupying OccupyingFunc) (*audit.Entry, error) {
		start, end, segment := r.DateStart, r.DateEnd, r.Segment
		if req.DateStart != nil {
			start = *req.DateStart
		}
		if req.DateEnd != nil {
			end = *req.DateEnd
		}
		if req.Segment != nil {
			segment = *req.Segment
		}

		// Ownership and status errors from Transition take precedence over date errors.
		span, err := NewDateRange(start, end)
		if r.UserID == requesterID && CanTransition(r.Status, ActionReschedule) {
			if err != nil {
				return nil, err
			}
			if span.Start.Before(s.today()) {
				return nil, ErrDateInPast
			}
			if err := s.checkBlackout(ctx, span); err != nil {
				return nil, err
			}
		}

		target := Slot{RoomID: r.RoomID, Span: span, Segment: segment}

		return Transition(r, Command{
			Action:  ActionReschedule,
			ActorID: requesterID,
			At:      s.opts.Now(),
			Slot:    &target,
		}, Guards{
			SlotFree: func() (bool, error) {
				existing, err := occupying(span)
				if err != nil {
					return false, err
				}
				return IsAvailable(existing, target, r.ID), nil
			},
			Location: s.opts.Location,
		})
	})
	return s.finish(ActionReschedule, id, res, err)
}

func (s *service) CheckAvailability(ctx context.Context, roomID string, start, end time.Time, segment Segment) (bool, error) {
	if !segment.Valid() {
		return false, ErrInvalidSegment
	}
	span, err := NewDateRange(start, end)
	if err != nil {
		return false, err
	}

	if _, err := s.bookableRoom(ctx, roomID); err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			return false, nil
		}
		return false, err
	}

	occupying, err := s.repo.FindOccupying(ctx, roomID, span)
	if err != nil {
		return false, err
	}
	return IsAvailable(occupying, Slot{RoomID: roomID, Span: span, Segment: segment}, ""), nil
}

func (s *service) Calendar(ctx context.Context, roomID string, start, end time.Time) ([]*Reservation, error) {
	span, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := s.lookupRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.repo.FindOccupying(ctx, roomID, span)
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) lookupRoom(ctx context.Context, roomID string) (*room.Room, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("lookup room failed: %w", err)
	}
	return rm, nil
}

func (s *service) bookableRoom(ctx context.Context, roomID string) (*room.Room, error) {
	rm, err := s.lookupRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !rm.Bookable() {
		return nil, ErrRoomUnavailable
	}
	return rm, nil
}

func (s *service) checkBlackout(ctx context.Context, span DateRange) error {
	blocked, err := s.blackouts.FindBlocking(ctx, span.Start, span.End)
	if err != nil {
		return fmt.Errorf("find blackout dates failed: %w", err)
	}
	if len(blocked) == 0 {
		return nil
	}

	dates := make([]string, len(blocked))
	for i, d := range blocked {
		dates[i] = d.Format(time.DateOnly)
	}
	return apperror.WithMessage(ErrBlackoutConflict, "blocked date: "+strings.Join(dates, ", "))
}

// finish records the decision and logs it. Business rejections are expected
// outcomes and stay at debug level.
func (s *service) finish(action Action, subject string, res *Reservation, err error) (*Reservation, error) {
	recordDecision(action, err)

	var appErr *apperror.AppError
	switch {
	case err == nil:
		log.Info().
			Str("action", string(action)).
			Str("reservation_id", res.ID).
			Str("status", string(res.Status)).
			Msg("reservation updated")
		return res, nil
	case errors.As(err, &appErr):
		log.Debug().
			Str("action", string(action)).
			Str("subject", subject).
			Str("code", appErr.Code).
			Msg("reservation request rejected")
	default:
		log.Error().Err(err).
			Str("action", string(action)).
			Str("subject", subject).
			Msg("reservation request failed")
	}
	return nil, err
}
