package booking

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
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	// Patch writes only the non-nil fields of p.
	Patch(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error

	// HasOverlap checks if another booking of the cabin intersects [start, end).
	// excludeBookingID is used during updates to ignore the booking itself.
	HasOverlap(ctx context.Context, cabinID string, start, end time.Time, excludeBookingID string) (bool, error)

	// ListCreatedBetween returns bookings with from <= createdAt <= to.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)
	// ListStays returns checked-in and checked-out bookings with from <= startDate < before.
	ListStays(ctx context.Context, from, before time.Time) ([]*Booking, error)
	// ListActivityCandidates returns open bookings starting or ending inside the day.
	ListActivityCandidates(ctx context.Context, dayStart, dayEnd time.Time) ([]*Booking, error)
	// ListByGuest returns the guest's bookings, optionally limited to statuses.
	ListByGuest(ctx context.Context, guestID string, statuses []Status) ([]*Booking, error)
	ListDatesByCabin(ctx context.Context, cabinID string) ([]DateRange, error)
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
	"startDate":  "b.start_date",
	"endDate":    "b.end_date",
	"createdAt":  "b.created_at",
	"totalPrice": "b.total_price",
	"numGuests":  "b.num_guests",
	"numNights":  "b.num_nights",
	"status":     "b.status",
}

// mapWriteError turns foreign key violations into the missing referent's error.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "bookings_cabin_id_fkey":
			return ErrCabinNotFound
		case "bookings_guest_id_fkey":
			return ErrGuestNotFound
		}
	}
	return fmt.Errorf("%s booking failed: %w", op, err)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := r.psql.Insert("public.bookings").
		Columns(
			"cabin_id", "guest_id", "start_date", "end_date", "num_nights", "num_guests",
			"cabin_price", "extras_price", "total_price", "status", "has_breakfast",
			"is_paid", "payment_intent_id", "observations",
		).
		Values(
			b.CabinID, b.GuestID, b.StartDate, b.EndDate, b.NumNights, b.NumGuests,
			b.CabinPrice, b.ExtrasPrice, b.TotalPrice, b.Status, b.HasBreakfast,
			b.IsPaid, b.PaymentIntentID, b.Observations,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapWriteError(err, "create")
	}
	return nil
}

// selectBookings joins the cabin and guest summaries onto every row.
func (r *pgxRepository) selectBookings(extra ...string) squirrel.SelectBuilder {
	cols := []string{
		"b.id", "b.cabin_id", "b.guest_id", "b.start_date", "b.end_date",
		"b.num_nights", "b.num_guests", "b.cabin_price", "b.extras_price", "b.total_price",
		"b.status", "b.has_breakfast", "b.is_paid", "b.payment_intent_id", "b.observations",
		"b.created_at", "b.updated_at",
		"c.name", "c.image", "c.max_capacity", "c.regular_price", "c.discount",
		"g.full_name", "g.email", "g.nationality", "g.national_id", "g.country_flag", "g.phone_number",
	}
	return r.psql.Select(append(cols, extra...)...).
		From("public.bookings b").
		Join("public.cabins c ON b.cabin_id = c.id").
		Join("public.guests g ON b.guest_id = g.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	c := &CabinInfo{}
	g := &GuestInfo{}
	dest := []any{
		&b.ID, &b.CabinID, &b.GuestID, &b.StartDate, &b.EndDate,
		&b.NumNights, &b.NumGuests, &b.CabinPrice, &b.ExtrasPrice, &b.TotalPrice,
		&b.Status, &b.HasBreakfast, &b.IsPaid, &b.PaymentIntentID, &b.Observations,
		&b.CreatedAt, &b.UpdatedAt,
		&c.Name, &c.Image, &c.MaxCapacity, &c.RegularPrice, &c.Discount,
		&g.FullName, &g.Email, &g.Nationality, &g.NationalID, &g.CountryFlag, &g.PhoneNumber,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.ID = b.CabinID
	g.ID = b.GuestID
	b.Cabin = c
	b.Guest = g
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := r.selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := r.selectBookings("count(*) OVER() AS total_count")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.CabinID != "" {
		query = query.Where(squirrel.Eq{"b.cabin_id": filter.CabinID})
	}
	if filter.GuestID != "" {
		query = query.Where(squirrel.Eq{"b.guest_id": filter.GuestID})
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "b.created_at"
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy+" "+orderDir, "b.id")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) query(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*Booking, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	return bookings, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query, args, err := r.psql.Update("public.bookings").
		Set("cabin_id", b.CabinID).
		Set("guest_id", b.GuestID).
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("num_nights", b.NumNights).
		Set("num_guests", b.NumGuests).
		Set("cabin_price", b.CabinPrice).
		Set("extras_price", b.ExtrasPrice).
		Set("total_price", b.TotalPrice).
		Set("status", b.Status).
		Set("has_breakfast", b.HasBreakfast).
		Set("is_paid", b.IsPaid).
		Set("payment_intent_id", b.PaymentIntentID).
		Set("observations", b.Observations).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "update")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Patch(ctx context.Context, id string, p Patch) error {
	q := r.psql.Update("public.bookings").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if p.Status != nil {
		q = q.Set("status", *p.Status)
	}
	if p.IsPaid != nil {
		q = q.Set("is_paid", *p.IsPaid)
	}
	if p.PaymentIntentID != nil {
		q = q.Set("payment_intent_id", *p.PaymentIntentID)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build patch booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, cabinID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// A stay ending on the day another starts does not overlap it.
	q := r.psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"cabin_id": cabinID}).
		Where(squirrel.Lt{"start_date": end}).
		Where(squirrel.Gt{"end_date": start})
	if excludeBookingID != "" {
		q = q.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("build overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check booking overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	q := r.selectBookings().
		Where(squirrel.GtOrEq{"b.created_at": from}).
		Where(squirrel.LtOrEq{"b.created_at": to}).
		OrderBy("b.created_at ASC")
	return r.query(ctx, q, "list bookings created between")
}

func (r *pgxRepository) ListStays(ctx context.Context, from, before time.Time) ([]*Booking, error) {
	q := r.selectBookings().
		Where(squirrel.Eq{"b.status": []Status{StatusCheckedIn, StatusCheckedOut}}).
		Where(squirrel.GtOrEq{"b.start_date": from}).
		Where(squirrel.Lt{"b.start_date": before}).
		OrderBy("b.start_date ASC")
	return r.query(ctx, q, "list stays")
}

func (r *pgxRepository) ListActivityCandidates(ctx context.Context, dayStart, dayEnd time.Time) ([]*Booking, error) {
	q := r.selectBookings().
		Where(squirrel.Eq{"b.status": []Status{StatusUnconfirmed, StatusConfirmed, StatusCheckedIn}}).
		Where(squirrel.Or{
			squirrel.And{squirrel.GtOrEq{"b.start_date": dayStart}, squirrel.LtOrEq{"b.start_date": dayEnd}},
			squirrel.And{squirrel.GtOrEq{"b.end_date": dayStart}, squirrel.LtOrEq{"b.end_date": dayEnd}},
		}).
		OrderBy("b.start_date ASC")
	return r.query(ctx, q, "list today activity")
}

func (r *pgxRepository) ListByGuest(ctx context.Context, guestID string, statuses []Status) ([]*Booking, error) {
	q := r.selectBookings().Where(squirrel.Eq{"b.guest_id": guestID})
	if len(statuses) > 0 {
		q = q.Where(squirrel.Eq{"b.status": statuses})
	}
	return r.query(ctx, q.OrderBy("b.start_date DESC"), "list guest bookings")
}

func (r *pgxRepository) ListDatesByCabin(ctx context.Context, cabinID string) ([]DateRange, error) {
	sql, args, err := r.psql.Select("id", "start_date", "end_date", "status").
		From("public.bookings").
		Where(squirrel.Eq{"cabin_id": cabinID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cabin dates query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cabin dates failed: %w", err)
	}
	defer rows.Close()

	var ranges []DateRange
	for rows.Next() {
		var d DateRange
		if err := rows.Scan(&d.BookingID, &d.StartDate, &d.EndDate, &d.Status); err != nil {
			return nil, fmt.Errorf("scan cabin dates failed: %w", err)
		}
		ranges = append(ranges, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cabin dates failed: %w", err)
	}
	return ranges, nil
}
