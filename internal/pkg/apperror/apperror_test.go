package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsMatchSentinel(t *testing.T) {
	sentinel := New(http.StatusConflict, "slot_conflict", "slot already reserved")

	wrapped := Wrap(sentinel, errors.New("duplicate key"))
	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, "slot already reserved", wrapped.Error())

	detailed := WithMessage(sentinel, "slot already reserved on 2026-03-01")
	assert.ErrorIs(t, fmt.Errorf("create: %w", detailed), sentinel)

	other := New(http.StatusConflict, "blackout_conflict", "blocked date")
	assert.NotErrorIs(t, wrapped, other)
}

func TestAsExposesStatus(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(http.StatusForbidden, "not_owner", "not your reservation"))

	var appErr *AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, http.StatusForbidden, appErr.Status)
		assert.Equal(t, "not_owner", appErr.Code)
	}
}
