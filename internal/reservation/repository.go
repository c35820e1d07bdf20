package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/db"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

// AdmitFunc decides, from the room's occupying reservations, whether a new
// reservation may be inserted. It returns the audit entry to record with it.
type AdmitFunc func(occupying []*Reservation) (*audit.Entry, error)

// OccupyingFunc lists the room's occupying reservations intersecting span.
type OccupyingFunc func(span DateRange) ([]*Reservation, error)

// MutateFunc changes r in place and returns the audit entry describing the change.
type MutateFunc func(r *Reservation, occupying OccupyingFunc) (*audit.Entry, error)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// FindOccupying returns the pending and confirmed reservations of roomID whose
	// date range intersects span.
	FindOccupying(ctx context.Context, roomID string, span DateRange) ([]*Reservation, error)

	// Reserve inserts r if admit accepts the room's current occupying reservations.
	// The read, the decision and the insert are serialized with every other writer
	// of the same room. On success r carries its ID and timestamps.
	Reserve(ctx context.Context, r *Reservation, admit AdmitFunc) error

	// Mutate loads reservation id while holding its room's write lock, applies fn
	// and persists the result together with the audit entry fn returns.
	// Nothing is written when fn fails.
	Mutate(ctx context.Context, id string, fn MutateFunc) (*Reservation, error)
}

var reservationColumns = []string{
	"b.id", "b.room_id", "r.name", "b.user_id", "COALESCE(u.display_name, u.email)",
	"b.date_start", "b.date_end", "b.segment", "b.event_category", "b.participants",
	"b.justification", "b.status",
	"b.decided_by", "b.decided_at", "b.admin_comment",
	"b.cancelled_by", "b.cancelled_at", "b.cancellation_reason",
	"b.created_at", "b.updated_at",
}

type pgxRepository struct {
	pool     *pgxpool.Pool
	recorder audit.Recorder
}

func NewPgxRepository(pool *pgxpool.Pool, recorder audit.Recorder) Repository {
	return &pgxRepository{pool: pool, recorder: recorder}
}

var sortColumns = map[string]string{
	"date_start": "b.date_start",
	"created_at": "b.created_at",
}

func roomLockKey(roomID string) string {
	return "reservation-room:" + roomID
}

func selectReservations() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(reservationColumns...).
		From("public.reservations b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.users u ON b.user_id = u.id")
}

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var b Reservation
	dest := []any{
		&b.ID, &b.RoomID, &b.RoomName, &b.UserID, &b.UserName,
		&b.DateStart, &b.DateEnd, &b.Segment, &b.Category, &b.Participants,
		&b.Justification, &b.Status,
		&b.DecidedBy, &b.DecidedAt, &b.AdminComment,
		&b.CancelledBy, &b.CancelledAt, &b.CancellationReason,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return getByID(ctx, r.pool, id, false)
}

func getByID(ctx context.Context, q db.Querier, id string, forUpdate bool) (*Reservation, error) {
	builder := selectReservations().Where(squirrel.Eq{"b.id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	b, err := scanReservation(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := selectReservations().Column("count(*) OVER() as total_count")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date window filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"b.date_end": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"b.date_start": *filter.To})
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "b.date_start"
	}

	orderDir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		orderDir = "ASC"
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		b, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}

	return reservations, total, nil
}

func (r *pgxRepository) FindOccupying(ctx context.Context, roomID string, span DateRange) ([]*Reservation, error) {
	return findOccupying(ctx, r.pool, roomID, span)
}

func findOccupying(ctx context.Context, q db.Querier, roomID string, span DateRange) ([]*Reservation, error) {
	// Logic:
	// 1. Room matches
	// 2. Status is pending or confirmed
	// 3. Ranges intersect: (ExistingStart <= NewEnd) AND (ExistingEnd >= NewStart)
	query, args, err := selectReservations().
		Where(squirrel.Eq{"b.room_id": roomID}).
		Where(squirrel.Eq{"b.status": OccupyingStatuses}).
		Where(squirrel.LtOrEq{"b.date_start": span.End}).
		Where(squirrel.GtOrEq{"b.date_end": span.Start}).
		OrderBy("b.date_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find occupying query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find occupying reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		b, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupying reservations failed: %w", err)
	}
	return reservations, nil
}

func (r *pgxRepository) Reserve(ctx context.Context, b *Reservation, admit AdmitFunc) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := db.LockKey(ctx, tx, roomLockKey(b.RoomID)); err != nil {
			return err
		}

		occupying, err := findOccupying(ctx, tx, b.RoomID, b.Span())
		if err != nil {
			return err
		}

		entry, err := admit(occupying)
		if err != nil {
			return err
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Insert("public.reservations").
			Columns(
				"room_id", "user_id", "date_start", "date_end", "segment",
				"event_category", "participants", "justification", "status",
			).
			Values(
				b.RoomID, b.UserID, b.DateStart, b.DateEnd, b.Segment,
				b.Category, b.Participants, b.Justification, b.Status,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create reservation query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("create reservation failed: %w", err)
		}

		return r.record(ctx, tx, b, entry)
	})
	return translateWriteError(err)
}

func (r *pgxRepository) Mutate(ctx context.Context, id string, fn MutateFunc) (*Reservation, error) {
	// The room of a reservation never changes, so it can be read before locking.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var result *Reservation
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := db.LockKey(ctx, tx, roomLockKey(current.RoomID)); err != nil {
			return err
		}

		b, err := getByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		occupying := func(span DateRange) ([]*Reservation, error) {
			return findOccupying(ctx, tx, b.RoomID, span)
		}

		entry, err := fn(b, occupying)
		if err != nil {
			return err
		}

		psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		query, args, err := psql.Update("public.reservations").
			Set("date_start", b.DateStart).
			Set("date_end", b.DateEnd).
			Set("segment", b.Segment).
			Set("status", b.Status).
			Set("decided_by", b.DecidedBy).
			Set("decided_at", b.DecidedAt).
			Set("admin_comment", b.AdminComment).
			Set("cancelled_by", b.CancelledBy).
			Set("cancelled_at", b.CancelledAt).
			Set("cancellation_reason", b.CancellationReason).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": b.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build update reservation query failed: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
			return fmt.Errorf("update reservation failed: %w", err)
		}

		if err := r.record(ctx, tx, b, entry); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return result, nil
}

func (r *pgxRepository) record(ctx context.Context, tx pgx.Tx, b *Reservation, entry *audit.Entry) error {
	if entry == nil {
		return nil
	}
	entry.ReservationID = b.ID
	if err := r.recorder.Append(ctx, tx, entry); err != nil {
		return fmt.Errorf("record audit entry failed: %w", err)
	}
	return nil
}

// Constraints whose violation is a rejected request rather than a failure.
const (
	userForeignKey = "reservations_user_id_fkey"
	roomForeignKey = "reservations_room_id_fkey"
)

// translateWriteError maps constraint violations to business errors. The
// exclusion constraint guarding the calendar only fires if a writer bypassed
// the room lock. The foreign keys catch a requester or room that vanished or
// never existed.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgerrcode.ExclusionViolation:
		return apperror.Wrap(ErrSlotConflict, err)
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == userForeignKey:
		return apperror.Wrap(ErrRequesterNotFound, err)
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == roomForeignKey:
		return apperror.Wrap(ErrRoomNotFound, err)
	}
	return err
}
