package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	// ListByFacility returns rooms ordered by room number.
	ListByFacility(ctx context.Context, facilityID string) ([]*Room, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var roomColumns = []string{
	"id", "facility_id", "room_number", "type", "description",
	"capacity", "nightly_price", "total_units", "amenities",
}

func scanRoom(row pgx.Row) (*Room, error) {
	var r Room
	if err := row.Scan(
		&r.ID, &r.FacilityID, &r.RoomNumber, &r.Type, &r.Description,
		&r.Capacity, &r.NightlyPrice, &r.TotalUnits, &r.Amenities,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	res, err := scanRoom(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) ListByFacility(ctx context.Context, facilityID string) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("room_number ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var result []*Room
	for rows.Next() {
		res, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}

	return result, nil
}
