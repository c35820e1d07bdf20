package audit

import "context"

// Service exposes the read side of the audit trail. Writes go through Recorder,
// inside the transaction of the change being recorded.
type Service interface {
	History(ctx context.Context, reservationID string) ([]*Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) History(ctx context.Context, reservationID string) ([]*Entry, error) {
	entries, err := s.repo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}
