package blackout

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Date      time.Time
	Reason    string
	CreatedBy string
}

// Service is the registry of globally blocked dates.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*BlackoutDate, error)
	List(ctx context.Context, filter Filter) ([]*BlackoutDate, int, error)
	Delete(ctx context.Context, id string) error
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
	// FindBlocking returns every blocked date inside the inclusive range, ascending.
	FindBlocking(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*BlackoutDate, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	b := &BlackoutDate{
		Date:      day(req.Date),
		Reason:    reason,
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*BlackoutDate, int, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, ErrInvalidRange
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	d := day(date)
	dates, err := s.repo.DatesBetween(ctx, d, d)
	if err != nil {
		return false, err
	}
	return len(dates) > 0, nil
}

func (s *service) FindBlocking(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	start, end = day(start), day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	dates, err := s.repo.DatesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for i, d := range dates {
		dates[i] = day(d)
	}
	return dates, nil
}
