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

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// OverlapCounts returns, per room, the number of non-cancelled bookings
	// overlapping [checkIn, checkOut). Rooms without overlaps may be absent.
	OverlapCounts(ctx context.Context, roomIDs []string, checkIn, checkOut time.Time) (map[string]int, error)

	// WithRoomLock runs fn while holding exclusive write access to the bookings of roomID.
	// Writers of other rooms and all readers proceed concurrently.
	WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error
}

// Tx is the write view handed to WithRoomLock callbacks.
type Tx interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error)
	Create(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, b *Booking) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"id", "room_id", "facility_id", "guest_name", "guest_contact",
	"check_in", "check_out", "guest_count", "status", "total_price", "notes",
	"created_at", "updated_at",
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return getByID(ctx, r.pool, id, false)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings")

	if filter.FacilityID != "" {
		query = query.Where(squirrel.Eq{"facility_id": filter.FacilityID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"room_id": filter.RoomID})
	}
	if filter.GuestContact != "" {
		query = query.Where(squirrel.Eq{"guest_contact": filter.GuestContact})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("created_at DESC", "id ASC")

	// Pagination
	page := request.ListParams{Page: filter.Page, PageSize: filter.PageSize}.Normalize()
	query = query.Limit(uint64(page.PageSize)).Offset(uint64(page.Offset()))

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
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.FacilityID, &b.GuestName, &b.GuestContact,
			&b.CheckIn, &b.CheckOut, &b.GuestCount, &b.Status, &b.TotalPrice, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) OverlapCounts(ctx context.Context, roomIDs []string, checkIn, checkOut time.Time) (map[string]int, error) {
	counts := make(map[string]int, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}

	// Overlap: existing.check_in < requested.check_out AND requested.check_in < existing.check_out
	sql, args, err := psql.Select("room_id", "count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomIDs}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		GroupBy("room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap counts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("overlap counts failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID string
		var n int
		if err := rows.Scan(&roomID, &n); err != nil {
			return nil, fmt.Errorf("scan overlap count failed: %w", err)
		}
		counts[roomID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("overlap counts failed: %w", err)
	}

	return counts, nil
}

// WithRoomLock serialises writers of one room by locking its row for the
// duration of a transaction.
func (r *pgxRepository) WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	sql, args, err := psql.Select("1").
		From("public.rooms").
		Where(squirrel.Eq{"id": roomID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock room query failed: %w", err)
	}

	var one int
	if err := tx.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return room.ErrNotFound
		}
		return fmt.Errorf("lock room failed: %w", err)
	}

	if err := fn(&pgxTx{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking transaction failed: %w", err)
	}
	return nil
}

type pgxTx struct {
	q querier
}

func (t *pgxTx) GetByID(ctx context.Context, id string) (*Booking, error) {
	return getByID(ctx, t.q, id, true)
}

func (t *pgxTx) CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error) {
	sql, args, err := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count overlapping query failed: %w", err)
	}

	var n int
	if err := t.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count overlapping failed: %w", err)
	}
	return n, nil
}

func (t *pgxTx) Create(ctx context.Context, b *Booking) error {
	sql, args, err := psql.Insert("public.bookings").
		Columns(
			"room_id", "facility_id", "guest_name", "guest_contact",
			"check_in", "check_out", "guest_count", "status", "total_price", "notes",
		).
		Values(
			b.RoomID, b.FacilityID, b.GuestName, b.GuestContact,
			b.CheckIn, b.CheckOut, b.GuestCount, b.Status, b.TotalPrice, b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := t.q.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return room.ErrNotFound
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (t *pgxTx) UpdateStatus(ctx context.Context, b *Booking) error {
	sql, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	if err := t.q.QueryRow(ctx, sql, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}
	return nil
}

func getByID(ctx context.Context, q querier, id string, forUpdate bool) (*Booking, error) {
	query := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := q.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.RoomID, &b.FacilityID, &b.GuestName, &b.GuestContact,
		&b.CheckIn, &b.CheckOut, &b.GuestCount, &b.Status, &b.TotalPrice, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}
