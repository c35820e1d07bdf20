package reservation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/db"
	"github.com/nekogravitycat/locaux-booking-backend/migrations"
)

// These tests run against a disposable PostgreSQL database named by
// TEST_DB_DSN. Every table is truncated between tests.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}
	require.NoError(t, db.Migrate(migrations.FS, dsn, db.MigrateUp))

	pool, err := db.NewPool(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(),
		"TRUNCATE public.reservation_audit, public.reservations, public.blackout_dates, public.rooms, public.files, public.sites, public.users CASCADE")
	require.NoError(t, err)
	return pool
}

type seed struct {
	userIDs []string
	roomID  string
}

func seedRoom(t *testing.T, pool *pgxpool.Pool, users int) seed {
	t.Helper()
	ctx := context.Background()

	var s seed
	for i := 0; i < users; i++ {
		var id string
		err := pool.QueryRow(ctx,
			"INSERT INTO public.users (email, password_hash) VALUES ($1, 'x') RETURNING id",
			fmt.Sprintf("user%d@univ.test", i)).Scan(&id)
		require.NoError(t, err)
		s.userIDs = append(s.userIDs, id)
	}

	var siteID string
	require.NoError(t, pool.QueryRow(ctx, "INSERT INTO public.sites (name) VALUES ('Campus Nord') RETURNING id").Scan(&siteID))
	require.NoError(t, pool.QueryRow(ctx,
		"INSERT INTO public.rooms (site_id, name, capacity) VALUES ($1, 'Amphi A', 100) RETURNING id", siteID).Scan(&s.roomID))
	return s
}

func admitIfFree(r *Reservation, actorID string) AdmitFunc {
	return func(occupying []*Reservation) (*audit.Entry, error) {
		if !IsAvailable(occupying, r.Slot(), "") {
			return nil, ErrSlotConflict
		}
		return CreationEntry(r, actorID), nil
	}
}

func newRow(roomID, userID string, seg Segment) *Reservation {
	return &Reservation{
		RoomID:       roomID,
		UserID:       userID,
		DateStart:    d(2030, 6, 10),
		DateEnd:      d(2030, 6, 11),
		Segment:      seg,
		Category:     CategoryMeeting,
		Participants: 5,
		Status:       StatusConfirmed,
	}
}

func TestPgxRepository_ReserveSerializesPerRoom(t *testing.T) {
	pool := testPool(t)
	s := seedRoom(t, pool, 6)
	repo := NewPgxRepository(pool, audit.NewPgxRepository(pool))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, len(s.userIDs))
	for i, userID := range s.userIDs {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			r := newRow(s.roomID, userID, SegmentFullDay)
			errs[i] = repo.Reserve(ctx, r, admitIfFree(r, userID))
		}(i, userID)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}
	assert.Equal(t, 1, ok)

	items, total, err := repo.List(ctx, Filter{RoomID: s.roomID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Amphi A", items[0].RoomName)
}

func TestPgxRepository_ExclusionConstraintBacksTheLock(t *testing.T) {
	pool := testPool(t)
	s := seedRoom(t, pool, 2)
	repo := NewPgxRepository(pool, audit.NewPgxRepository(pool))
	ctx := context.Background()

	first := newRow(s.roomID, s.userIDs[0], SegmentMorning)
	require.NoError(t, repo.Reserve(ctx, first, admitIfFree(first, s.userIDs[0])))

	// An admit function that skips the calendar check still cannot double-book.
	second := newRow(s.roomID, s.userIDs[1], SegmentFullDay)
	err := repo.Reserve(ctx, second, func([]*Reservation) (*audit.Entry, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrSlotConflict)

	// The other half of the day is free.
	third := newRow(s.roomID, s.userIDs[1], SegmentAfternoon)
	assert.NoError(t, repo.Reserve(ctx, third, admitIfFree(third, s.userIDs[1])))
}

func TestPgxRepository_MutateRecordsHistory(t *testing.T) {
	pool := testPool(t)
	s := seedRoom(t, pool, 2)
	auditRepo := audit.NewPgxRepository(pool)
	repo := NewPgxRepository(pool, auditRepo)
	ctx := context.Background()

	r := newRow(s.roomID, s.userIDs[0], SegmentMorning)
	r.Status = StatusPending
	require.NoError(t, repo.Reserve(ctx, r, admitIfFree(r, s.userIDs[0])))

	adminID := s.userIDs[1]
	updated, err := repo.Mutate(ctx, r.ID, func(res *Reservation, _ OccupyingFunc) (*audit.Entry, error) {
		return Transition(res, Command{Action: ActionRefuse, ActorID: adminID, Reason: "exams"}, Guards{})
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRefused, updated.Status)

	// A rejected mutation writes nothing.
	_, err = repo.Mutate(ctx, r.ID, func(res *Reservation, _ OccupyingFunc) (*audit.Entry, error) {
		return Transition(res, Command{Action: ActionRefuse, ActorID: adminID, Reason: "again"}, Guards{})
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRefused, stored.Status)
	require.NotNil(t, stored.AdminComment)
	assert.Equal(t, "exams", *stored.AdminComment)

	history, err := auditRepo.ListByReservation(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, string(ActionCreate), history[0].Action)
	assert.Equal(t, string(ActionRefuse), history[1].Action)
	assert.Equal(t, string(StatusPending), history[1].PreviousStatus)

	_, err = repo.Mutate(ctx, "00000000-0000-4000-8000-000000000000", func(*Reservation, OccupyingFunc) (*audit.Entry, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTranslateWriteError(t *testing.T) {
	wrap := func(code, constraint string) error {
		return fmt.Errorf("create reservation failed: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
	}
	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"overlap", wrap(pgerrcode.ExclusionViolation, "reservations_no_overlap"), ErrSlotConflict},
		{"unknown requester", wrap(pgerrcode.ForeignKeyViolation, userForeignKey), ErrRequesterNotFound},
		{"unknown room", wrap(pgerrcode.ForeignKeyViolation, roomForeignKey), ErrRoomNotFound},
		{"other foreign key", wrap(pgerrcode.ForeignKeyViolation, "reservations_decided_by_fkey"), nil},
		{"not a postgres error", plain, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateWriteError(tt.err)
			if tt.wantErr == nil {
				assert.Same(t, tt.err, got)
				assert.Equal(t, "error", outcome(got))
				return
			}
			assert.ErrorIs(t, got, tt.wantErr)
			assert.NotEqual(t, "error", outcome(got))

			var pgErr *pgconn.PgError
			assert.True(t, errors.As(got, &pgErr), "cause is kept")
		})
	}
}

func TestPgxRepository_UnknownRequester(t *testing.T) {
	pool := testPool(t)
	s := seedRoom(t, pool, 1)
	repo := NewPgxRepository(pool, audit.NewPgxRepository(pool))

	ghost := "00000000-0000-4000-8000-0000000000aa"
	r := newRow(s.roomID, ghost, SegmentMorning)
	err := repo.Reserve(context.Background(), r, admitIfFree(r, s.userIDs[0]))
	assert.ErrorIs(t, err, ErrRequesterNotFound)

	_, total, err := repo.List(context.Background(), Filter{RoomID: s.roomID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
