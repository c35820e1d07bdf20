package blackout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *BlackoutDate) error
	GetByID(ctx context.Context, id string) (*BlackoutDate, error)
	List(ctx context.Context, filter Filter) ([]*BlackoutDate, int, error)
	// DatesBetween returns the blocked dates within [start, end], ascending.
	DatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *BlackoutDate) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.blackout_dates").
		Columns("date", "reason", "created_by").
		Values(b.Date, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create blackout query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDateTaken
		}
		return fmt.Errorf("create blackout failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*BlackoutDate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "date", "reason", "created_by", "created_at").
		From("public.blackout_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blackout query failed: %w", err)
	}

	var b BlackoutDate
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Date, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blackout failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*BlackoutDate, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "date", "reason", "created_by", "created_at", "count(*) OVER() as total_count").
		From("public.blackout_dates")

	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.To})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("date ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list blackouts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blackouts failed: %w", err)
	}
	defer rows.Close()

	var items []*BlackoutDate
	var total int
	for rows.Next() {
		var b BlackoutDate
		if err := rows.Scan(&b.ID, &b.Date, &b.Reason, &b.CreatedBy, &b.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan blackout failed: %w", err)
		}
		items = append(items, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blackouts failed: %w", err)
	}

	return items, total, nil
}

func (r *pgxRepository) DatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("date").
		From("public.blackout_dates").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blackout range query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blackout range failed: %w", err)
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("scan blackout range failed: %w", err)
	}
	return dates, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.blackout_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete blackout query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete blackout failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
