package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email_already_used", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "inactive_user", "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email_required", "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password_too_short", "password is too short")
)

// User is a member of the university (student, staff or administrator).
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsAdmin      bool
}

// Name returns the display name, falling back to the email.
func (u *User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email       string
	DisplayName string
	IsActive    *bool // nil = not set

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
