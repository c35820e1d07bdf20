package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
)

type memRepo struct {
	byID         map[string]*User
	lastLoginErr error
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*User{}}
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	u.ID = "user-" + u.Email
	u.CreatedAt = time.Now()
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	if m.lastLoginErr != nil {
		return m.lastLoginErr
	}
	m.byID[id].LastLoginAt = &t
	return nil
}

func (m *memRepo) List(context.Context, UserFilter) ([]*User, int, error) {
	out := make([]*User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return ErrNotFound
	}
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Univ.Test ", "correct horse", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice@univ.test", u.Email)
	assert.Equal(t, "Alice", u.Name())
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	_, err = svc.Register(ctx, "alice@univ.test", "another password", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = svc.Register(ctx, "   ", "correct horse", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "bob@univ.test", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.Contains(t, err.Error(), "at least 8")
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@univ.test", "correct horse", "")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ALICE@univ.test", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "alice@univ.test", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@univ.test", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.lastLoginErr = errors.New("db down")
	u, err = svc.Login(ctx, "alice@univ.test", "correct horse")
	require.NoError(t, err, "a failed last-login update does not block the login")
	assert.Equal(t, registered.ID, u.ID)

	inactive := false
	_, err = svc.Update(ctx, registered.ID, UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice@univ.test", "correct horse")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestIsAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "admin@univ.test", "correct horse", "")
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	yes := true
	_, err = svc.Update(ctx, u.ID, UpdateUserRequest{IsAdmin: &yes})
	require.NoError(t, err)
	isAdmin, err = svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// Deactivation revokes the role immediately.
	no := false
	_, err = svc.Update(ctx, u.ID, UpdateUserRequest{IsActive: &no})
	require.NoError(t, err)
	isAdmin, err = svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = svc.IsAdmin(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestUpdate_DisplayName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@univ.test", "correct horse", "Alice")
	require.NoError(t, err)

	blank := "  "
	updated, err := svc.Update(ctx, u.ID, UpdateUserRequest{DisplayName: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.DisplayName)
	assert.Equal(t, "alice@univ.test", updated.Name())

	_, err = svc.Update(ctx, "ghost", UpdateUserRequest{DisplayName: &blank})
	assert.ErrorIs(t, err, ErrNotFound)
}
