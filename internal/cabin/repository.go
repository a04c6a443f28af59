package cabin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Cabin) error
	GetByID(ctx context.Context, id string) (*Cabin, error)
	List(ctx context.Context, filter Filter) ([]*Cabin, int, error)
	Update(ctx context.Context, c *Cabin) error
	UpdateImage(ctx context.Context, id, image string) error
	// DeleteWithBookings removes the cabin and its bookings in one transaction.
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
	"name":         "name",
	"regularPrice": "regular_price",
	"maxCapacity":  "max_capacity",
	"discount":     "discount",
	"createdAt":    "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, c *Cabin) error {
	query, args, err := r.psql.Insert("public.cabins").
		Columns("name", "description", "regular_price", "max_capacity", "discount", "image").
		Values(c.Name, c.Description, c.RegularPrice, c.MaxCapacity, c.Discount, c.Image).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create cabin query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create cabin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) selectCabins() squirrel.SelectBuilder {
	return r.psql.Select(
		"id", "name", "description", "regular_price", "max_capacity",
		"discount", "image", "created_at", "updated_at",
	).From("public.cabins")
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Cabin, error) {
	query, args, err := r.selectCabins().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get cabin query failed: %w", err)
	}

	var c Cabin
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.RegularPrice, &c.MaxCapacity,
		&c.Discount, &c.Image, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cabin failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Cabin, int, error) {
	q := r.selectCabins().Column("count(*) OVER() AS total_count")

	switch filter.Discount {
	case DiscountWith:
		q = q.Where("discount > 0")
	case DiscountNone:
		q = q.Where("discount = 0")
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
		return nil, 0, fmt.Errorf("build list cabins query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cabins failed: %w", err)
	}
	defer rows.Close()

	var result []*Cabin
	var total int
	for rows.Next() {
		var c Cabin
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.RegularPrice, &c.MaxCapacity,
			&c.Discount, &c.Image, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan cabin failed: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate cabins failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Cabin) error {
	query, args, err := r.psql.Update("public.cabins").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("regular_price", c.RegularPrice).
		Set("max_capacity", c.MaxCapacity).
		Set("discount", c.Discount).
		Set("image", c.Image).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update cabin query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update cabin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateImage(ctx context.Context, id, image string) error {
	const query = `UPDATE public.cabins SET image = $1, updated_at = now() WHERE id = $2`
	ct, err := r.pool.Exec(ctx, query, image, id)
	if err != nil {
		return fmt.Errorf("update cabin image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteWithBookings(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM public.bookings WHERE cabin_id = $1`, id); err != nil {
			return fmt.Errorf("delete cabin bookings failed: %w", err)
		}

		ct, err := tx.Exec(ctx, `DELETE FROM public.cabins WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete cabin failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
