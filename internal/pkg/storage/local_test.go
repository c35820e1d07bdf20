package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "upload/ab/photo.jpg", strings.NewReader("pixels")))

	rc, err := s.Get(ctx, "upload/ab/photo.jpg")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "pixels", string(got))

	require.NoError(t, s.Delete(ctx, "upload/ab/photo.jpg"))
	_, err = s.Get(ctx, "upload/ab/photo.jpg")
	assert.ErrorIs(t, err, ErrNotExist)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, "upload/ab/photo.jpg"))
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	err = s.Save(ctx, "../outside.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = s.Get(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
