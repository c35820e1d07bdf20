package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/locaux-booking-backend/internal/site"
)

type memRepo struct {
	items map[string]*Room
}

func (m *memRepo) Create(_ context.Context, r *Room) error {
	r.ID = "room-" + r.Name
	c := *r
	m.items[r.ID] = &c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Room, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r
	return &c, nil
}

func (m *memRepo) List(_ context.Context, filter Filter) ([]*Room, int, error) {
	var out []*Room
	for _, r := range m.items {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, r *Room) error {
	c := *r
	m.items[r.ID] = &c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type fakeSites map[string]*site.Site

func (f fakeSites) GetByID(_ context.Context, id string) (*site.Site, error) {
	s, ok := f[id]
	if !ok {
		return nil, site.ErrNotFound
	}
	return s, nil
}

func newTestService() (Service, *memRepo) {
	repo := &memRepo{items: map[string]*Room{}}
	sites := fakeSites{"site-1": {ID: "site-1", Name: "Campus Nord"}}
	return NewService(repo, sites), repo
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{SiteID: "site-1", Name: " Amphi A ", Capacity: 120})
	require.NoError(t, err)
	assert.Equal(t, "Amphi A", rm.Name)
	assert.Equal(t, "Campus Nord", rm.SiteName)
	assert.Equal(t, StatusAvailable, rm.Status)
	assert.True(t, rm.IsActive)
	assert.True(t, rm.Bookable())

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{"blank name", CreateRequest{SiteID: "site-1", Name: " ", Capacity: 10}, ErrEmptyName},
		{"zero capacity", CreateRequest{SiteID: "site-1", Name: "B1", Capacity: 0}, ErrInvalidCapacity},
		{"unknown status", CreateRequest{SiteID: "site-1", Name: "B1", Capacity: 10, Status: "closed"}, ErrInvalidStatus},
		{"unknown site", CreateRequest{SiteID: "site-9", Name: "B1", Capacity: 10}, ErrInvalidSite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookable(t *testing.T) {
	tests := []struct {
		active bool
		status Status
		want   bool
	}{
		{true, StatusAvailable, true},
		{true, StatusOccupied, true},
		{true, StatusMaintenance, false},
		{false, StatusAvailable, false},
	}
	for _, tt := range tests {
		rm := Room{IsActive: tt.active, Status: tt.status}
		assert.Equal(t, tt.want, rm.Bookable(), "active=%v status=%s", tt.active, tt.status)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{SiteID: "site-1", Name: "Amphi A", Capacity: 120})
	require.NoError(t, err)

	maintenance := StatusMaintenance
	updated, err := svc.Update(ctx, rm.ID, UpdateRequest{Status: &maintenance})
	require.NoError(t, err)
	assert.False(t, updated.Bookable())

	negative := -1
	_, err = svc.Update(ctx, rm.ID, UpdateRequest{Capacity: &negative})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	bogus := Status("flooded")
	_, err = svc.Update(ctx, rm.ID, UpdateRequest{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Update(ctx, "missing", UpdateRequest{Status: &maintenance})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPhoto(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	rm, err := svc.Create(ctx, CreateRequest{SiteID: "site-1", Name: "Amphi A", Capacity: 120})
	require.NoError(t, err)

	updated, err := svc.SetPhoto(ctx, rm.ID, "file-1")
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoID)
	assert.Equal(t, "file-1", *repo.items[rm.ID].PhotoID)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.List(context.Background(), Filter{Status: "flooded"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
