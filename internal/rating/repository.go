package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

type Repository interface {
	// Create fails with ErrAlreadyRated when the booking already has a rating.
	Create(ctx context.Context, r *Rating) error
	GetByID(ctx context.Context, id string) (*Rating, error)
	GetByBookingID(ctx context.Context, bookingID string) (*Rating, error)
	ListByFacility(ctx context.Context, facilityID string, page, pageSize int) ([]*Rating, int, error)
	// AllByFacility returns every rating of a facility, unpaginated, for aggregation.
	AllByFacility(ctx context.Context, facilityID string) ([]*Rating, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ratingColumns = []string{
	"id", "booking_id", "facility_id", "guest_name", "guest_email",
	"overall", "cleanliness", "comfort", "hospitality", "value",
	"comment", "visit_date", "created_at",
}

func scanRating(row pgx.Row, extra ...any) (*Rating, error) {
	var r Rating
	dest := []any{
		&r.ID, &r.BookingID, &r.FacilityID, &r.GuestName, &r.GuestEmail,
		&r.Overall, &r.Cleanliness, &r.Comfort, &r.Hospitality, &r.Value,
		&r.Comment, &r.VisitDate, &r.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *pgxRepository) Create(ctx context.Context, r *Rating) error {
	sql, args, err := psql.Insert("public.ratings").
		Columns(
			"booking_id", "facility_id", "guest_name", "guest_email",
			"overall", "cleanliness", "comfort", "hospitality", "value",
			"comment", "visit_date",
		).
		Values(
			r.BookingID, r.FacilityID, r.GuestName, r.GuestEmail,
			r.Overall, r.Cleanliness, r.Comfort, r.Hospitality, r.Value,
			r.Comment, r.VisitDate,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rating query failed: %w", err)
	}

	if err := repo.pool.QueryRow(ctx, sql, args...).Scan(&r.ID, &r.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyRated
		}
		return fmt.Errorf("create rating failed: %w", err)
	}
	return nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Rating, error) {
	return repo.getOne(ctx, squirrel.Eq{"id": id})
}

func (repo *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Rating, error) {
	return repo.getOne(ctx, squirrel.Eq{"booking_id": bookingID})
}

func (repo *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Rating, error) {
	sql, args, err := psql.Select(ratingColumns...).
		From("public.ratings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rating query failed: %w", err)
	}

	r, err := scanRating(repo.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rating failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) ListByFacility(ctx context.Context, facilityID string, page, pageSize int) ([]*Rating, int, error) {
	p := request.ListParams{Page: page, PageSize: pageSize}.Normalize()

	sql, args, err := psql.Select(append(ratingColumns, "count(*) OVER() as total_count")...).
		From("public.ratings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("created_at DESC", "id ASC").
		Limit(uint64(p.PageSize)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list ratings query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings failed: %w", err)
	}
	defer rows.Close()

	var ratings []*Rating
	var total int
	for rows.Next() {
		r, err := scanRating(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rating failed: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list ratings failed: %w", err)
	}

	return ratings, total, nil
}

func (repo *pgxRepository) AllByFacility(ctx context.Context, facilityID string) ([]*Rating, error) {
	sql, args, err := psql.Select(ratingColumns...).
		From("public.ratings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build facility ratings query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("facility ratings failed: %w", err)
	}
	defer rows.Close()

	var ratings []*Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rating failed: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (repo *pgxRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("public.ratings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rating query failed: %w", err)
	}

	tag, err := repo.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete rating failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
