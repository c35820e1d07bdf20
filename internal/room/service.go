package room

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/locaux-booking-backend/internal/site"
)

type CreateRequest struct {
	SiteID   string
	Name     string
	Capacity int
	Status   Status
}

type UpdateRequest struct {
	Name     *string
	Capacity *int
	IsActive *bool
	Status   *Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	SetPhoto(ctx context.Context, id string, fileID string) (*Room, error)
	Delete(ctx context.Context, id string) error
}

// SiteFinder is the part of the site service rooms depend on.
type SiteFinder interface {
	GetByID(ctx context.Context, id string) (*site.Site, error)
}

type service struct {
	repo  Repository
	sites SiteFinder
}

func NewService(repo Repository, sites SiteFinder) Service {
	return &service{
		repo:  repo,
		sites: sites,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if req.Status == "" {
		req.Status = StatusAvailable
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	st, err := s.sites.GetByID(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			return nil, ErrInvalidSite
		}
		return nil, err
	}

	rm := &Room{
		SiteID:   st.ID,
		SiteName: st.Name,
		Name:     name,
		Capacity: req.Capacity,
		IsActive: true,
		Status:   req.Status,
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		rm.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		rm.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		rm.IsActive = *req.IsActive
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		rm.Status = *req.Status
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) SetPhoto(ctx context.Context, id string, fileID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rm.PhotoID = &fileID
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
