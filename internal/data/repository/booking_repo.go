package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindByTurfID(ctx context.Context, turfID uuid.UUID) ([]*entity.Booking, error)
	FindByTurfAndDate(ctx context.Context, turfID uuid.UUID, date time.Time) ([]*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error

	// WithSlotLock runs fn inside one transaction holding a
	// transaction-scoped advisory lock on key. fn receives a repository
	// bound to that transaction; returning an error rolls it back.
	WithSlotLock(ctx context.Context, key string, fn func(tx BookingRepository) error) error
}

type bookingRepository struct {
	db   database.Querier
	pool database.PgxIface // nil inside a transaction
	log  *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:   db,
		pool: db,
		log:  log.With(zap.String("repository", "booking")),
	}
}

const bookingSelect = `
	SELECT b.id, b.turf_id, b.user_id, b.date, b.start_time, b.end_time, b.status,
	       b.total_price, b.created_at, b.updated_at, t.name, u.name
	FROM bookings b
	JOIN turfs t ON t.id = b.turf_id
	JOIN users u ON u.id = b.user_id
`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TurfID,
		&booking.UserID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.TotalPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.TurfName,
		&booking.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) list(ctx context.Context, op string, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, turf_id, user_id, date, start_time, end_time, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.TurfID,
		booking.UserID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.TotalPrice,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("turf_id", booking.TurfID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking for turf %s: %w", booking.TurfID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return r.list(ctx, "find bookings by user ID "+userID.String(),
		bookingSelect+` WHERE b.user_id = $1 ORDER BY b.date DESC, b.start_time DESC`, userID)
}

func (r *bookingRepository) FindByTurfID(ctx context.Context, turfID uuid.UUID) ([]*entity.Booking, error) {
	return r.list(ctx, "find bookings by turf ID "+turfID.String(),
		bookingSelect+` WHERE b.turf_id = $1 ORDER BY b.date, b.start_time`, turfID)
}

func (r *bookingRepository) FindByTurfAndDate(ctx context.Context, turfID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	return r.list(ctx, "find bookings by turf "+turfID.String()+" and date",
		bookingSelect+` WHERE b.turf_id = $1 AND b.date = $2 ORDER BY b.start_time`, turfID, date)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	return r.list(ctx, "find all bookings", bookingSelect+` ORDER BY b.created_at DESC`)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s status: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) WithSlotLock(ctx context.Context, key string, fn func(tx BookingRepository) error) error {
	if r.pool == nil {
		return errors.New("nested slot lock is not supported")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("begin booking transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		r.log.Error("Failed to take slot lock", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("take slot lock %s: %w", key, err)
	}

	if err := fn(&bookingRepository{db: tx, log: r.log}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking transaction", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("commit booking transaction: %w", err)
	}
	committed = true

	return nil
}
