package site

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name    string
	Address string
}

type UpdateRequest struct {
	Name    *string
	Address *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Site, error)
	GetByID(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, filter Filter) ([]*Site, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Site, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Site, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	st := &Site{
		Name:    name,
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Site, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Site, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Site, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		st.Name = name
	}
	if req.Address != nil {
		st.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
