package audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/locaux-booking-backend/internal/db"
)

// Recorder appends entries using the caller's querier, so the write commits or
// rolls back together with the state change it describes.
type Recorder interface {
	Append(ctx context.Context, q db.Querier, e *Entry) error
}

type Repository interface {
	Recorder
	ListByReservation(ctx context.Context, reservationID string) ([]*Entry, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Append(ctx context.Context, q db.Querier, e *Entry) error {
	if e.ReservationID == "" {
		return ErrReservationRequired
	}

	var previous any
	if e.PreviousStatus != "" {
		previous = e.PreviousStatus
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservation_audit").
		Columns("reservation_id", "actor_id", "action", "previous_status", "new_status", "comment").
		Values(e.ReservationID, e.ActorID, e.Action, previous, e.NewStatus, e.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append audit query failed: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("append audit entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByReservation(ctx context.Context, reservationID string) ([]*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "reservation_id", "actor_id", "action",
		"COALESCE(previous_status, '')", "new_status", "comment", "created_at",
	).
		From("public.reservation_audit").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.ReservationID, &e.ActorID, &e.Action,
			&e.PreviousStatus, &e.NewStatus, &e.Comment, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry failed: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries failed: %w", err)
	}

	return entries, nil
}
