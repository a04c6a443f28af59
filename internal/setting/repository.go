package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Create(ctx context.Context, s *Settings) error
	Update(ctx context.Context, s *Settings) error
	// Upsert writes s whether or not a row already exists.
	Upsert(ctx context.Context, s *Settings) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{
		pool: pool,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const columns = "min_booking_length, max_booking_length, max_guests_per_booking, breakfast_price, created_at, updated_at"

func (r *pgxRepository) Get(ctx context.Context) (*Settings, error) {
	query := `SELECT ` + columns + ` FROM public.settings WHERE singleton`

	var s Settings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.MinBookingLength, &s.MaxBookingLength, &s.MaxGuestsPerBooking,
		&s.BreakfastPrice, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get settings failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Settings) error {
	query, args, err := r.psql.Insert("public.settings").
		Columns("min_booking_length", "max_booking_length", "max_guests_per_booking", "breakfast_price").
		Values(s.MinBookingLength, s.MaxBookingLength, s.MaxGuestsPerBooking, s.BreakfastPrice).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create settings query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create settings failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Settings) error {
	query, args, err := r.psql.Update("public.settings").
		Set("min_booking_length", s.MinBookingLength).
		Set("max_booking_length", s.MaxBookingLength).
		Set("max_guests_per_booking", s.MaxGuestsPerBooking).
		Set("breakfast_price", s.BreakfastPrice).
		Set("updated_at", squirrel.Expr("now()")).
		Where("singleton").
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update settings query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update settings failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Upsert(ctx context.Context, s *Settings) error {
	query, args, err := r.psql.Insert("public.settings").
		Columns("min_booking_length", "max_booking_length", "max_guests_per_booking", "breakfast_price").
		Values(s.MinBookingLength, s.MaxBookingLength, s.MaxGuestsPerBooking, s.BreakfastPrice).
		Suffix(`ON CONFLICT (singleton) DO UPDATE SET
			min_booking_length = EXCLUDED.min_booking_length,
			max_booking_length = EXCLUDED.max_booking_length,
			max_guests_per_booking = EXCLUDED.max_guests_per_booking,
			breakfast_price = EXCLUDED.breakfast_price,
			updated_at = now()
			RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert settings query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert settings failed: %w", err)
	}
	return nil
}
