package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

// Repository defines data access methods for facilities.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var facilityColumns = []string{
	"f.id", "f.name", "f.description", "f.city", "f.state", "f.address", "f.phone", "f.amenities", "f.created_at",
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(facilityColumns...).
		From("public.facilities f").
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get facility query failed: %w", err)
	}

	var f Facility
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&f.ID, &f.Name, &f.Description, &f.City, &f.State, &f.Address, &f.Phone, &f.Amenities, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(facilityColumns, "count(*) OVER() as total_count")...).
		From("public.facilities f")

	if filter.City != "" {
		query = query.Where(squirrel.ILike{"f.city": filter.City})
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"f.name": pattern},
			squirrel.ILike{"f.address": pattern},
		})
	}

	query = query.OrderBy("f.name ASC")

	// Pagination
	page := request.ListParams{Page: filter.Page, PageSize: filter.PageSize}.Normalize()
	query = query.Limit(uint64(page.PageSize)).Offset(uint64(page.Offset()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	var total int

	for rows.Next() {
		var f Facility
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Description, &f.City, &f.State, &f.Address, &f.Phone, &f.Amenities, &f.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}

	return facilities, total, nil
}
