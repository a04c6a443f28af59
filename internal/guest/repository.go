package guest

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
	Create(ctx context.Context, g *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	GetByEmail(ctx context.Context, email string) (*Guest, error)
	List(ctx context.Context, filter Filter) ([]*Guest, int, error)
	Update(ctx context.Context, g *Guest) error
	UpdateImage(ctx context.Context, id, image string) error
	// DeleteWithBookings removes the guest and their bookings in one transaction.
	DeleteWithBookings(ctx context.Context, id string) error
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

var sortColumns = map[string]string{
	"fullName":    "full_name",
	"email":       "email",
	"nationality": "nationality",
	"createdAt":   "created_at",
}

// mapWriteError turns the unique email index violation into ErrEmailTaken.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return fmt.Errorf("%s guest failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, g *Guest) error {
	query, args, err := r.psql.Insert("public.guests").
		Columns("full_name", "email", "nationality", "national_id", "country_flag", "phone_number", "address", "image").
		Values(g.FullName, g.Email, g.Nationality, g.NationalID, g.CountryFlag, g.PhoneNumber, g.Address, g.Image).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create guest query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return mapWriteError(err, "create")
	}
	return nil
}

func (r *pgxRepository) selectGuests() squirrel.SelectBuilder {
	return r.psql.Select(
		"id", "full_name", "email", "nationality", "national_id", "country_flag",
		"phone_number", "address", "image", "created_at", "updated_at",
	).From("public.guests")
}

func scanGuest(row pgx.Row, extra ...any) (*Guest, error) {
	var g Guest
	dest := []any{
		&g.ID, &g.FullName, &g.Email, &g.Nationality, &g.NationalID, &g.CountryFlag,
		&g.PhoneNumber, &g.Address, &g.Image, &g.CreatedAt, &g.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*Guest, error) {
	query, args, err := r.selectGuests().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get guest query failed: %w", err)
	}

	g, err := scanGuest(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get guest failed: %w", err)
	}
	return g, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Guest, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Guest, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Guest, int, error) {
	q := r.selectGuests().Column("count(*) OVER() AS total_count")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if filter.SortOrder == "ASC" {
		dir = "ASC"
	}
	q = q.OrderBy(col+" "+dir, "id")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	q = q.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list guests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list guests failed: %w", err)
	}
	defer rows.Close()

	var result []*Guest
	var total int
	for rows.Next() {
		g, err := scanGuest(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan guest failed: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate guests failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, g *Guest) error {
	query, args, err := r.psql.Update("public.guests").
		Set("full_name", g.FullName).
		Set("email", g.Email).
		Set("nationality", g.Nationality).
		Set("national_id", g.NationalID).
		Set("country_flag", g.CountryFlag).
		Set("phone_number", g.PhoneNumber).
		Set("address", g.Address).
		Set("image", g.Image).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": g.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update guest query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return mapWriteError(err, "update")
	}
	return nil
}

func (r *pgxRepository) UpdateImage(ctx context.Context, id, image string) error {
	const query = `UPDATE public.guests SET image = $1, updated_at = now() WHERE id = $2`
	ct, err := r.pool.Exec(ctx, query, image, id)
	if err != nil {
		return fmt.Errorf("update guest image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteWithBookings(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM public.bookings WHERE guest_id = $1`, id); err != nil {
			return fmt.Errorf("delete guest bookings failed: %w", err)
		}

		ct, err := tx.Exec(ctx, `DELETE FROM public.guests WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete guest failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
