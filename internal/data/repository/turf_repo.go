package repository

import (
	"context"
	"errors"
	"fmt"

	"turf-booking/internal/data/entity"
	"turf-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TurfRepository interface {
	Create(ctx context.Context, turf *entity.Turf) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Turf, error)
	FindAll(ctx context.Context) ([]*entity.Turf, error)
	Update(ctx context.Context, turf *entity.Turf) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type turfRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTurfRepository(db database.PgxIface, log *zap.Logger) TurfRepository {
	return &turfRepository{
		db:  db,
		log: log.With(zap.String("repository", "turf")),
	}
}

const turfColumns = `id, name, location, price, description, open_time, close_time,
	slot_duration, facilities, images, owner_id, created_at, updated_at`

func scanTurf(row pgx.Row) (*entity.Turf, error) {
	var turf entity.Turf
	err := row.Scan(
		&turf.ID,
		&turf.Name,
		&turf.Location,
		&turf.Price,
		&turf.Description,
		&turf.OpenTime,
		&turf.CloseTime,
		&turf.SlotDuration,
		&turf.Facilities,
		&turf.Images,
		&turf.OwnerID,
		&turf.CreatedAt,
		&turf.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &turf, nil
}

func (r *turfRepository) Create(ctx context.Context, turf *entity.Turf) error {
	query := `INSERT INTO turfs (` + turfColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		turf.ID,
		turf.Name,
		turf.Location,
		turf.Price,
		turf.Description,
		turf.OpenTime,
		turf.CloseTime,
		turf.SlotDuration,
		turf.Facilities,
		turf.Images,
		turf.OwnerID,
		turf.CreatedAt,
		turf.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create turf",
			zap.Error(err),
			zap.String("name", turf.Name),
			zap.String("owner_id", turf.OwnerID.String()),
		)
		return fmt.Errorf("create turf %s: %w", turf.Name, err)
	}

	return nil
}

func (r *turfRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Turf, error) {
	query := `SELECT ` + turfColumns + ` FROM turfs WHERE id = $1`

	turf, err := scanTurf(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find turf by ID",
			zap.Error(err),
			zap.String("turf_id", id.String()),
		)
		return nil, fmt.Errorf("find turf by ID %s: %w", id.String(), err)
	}

	return turf, nil
}

func (r *turfRepository) FindAll(ctx context.Context) ([]*entity.Turf, error) {
	query := `SELECT ` + turfColumns + ` FROM turfs ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all turfs", zap.Error(err))
		return nil, fmt.Errorf("find all turfs: %w", err)
	}
	defer rows.Close()

	var turfs []*entity.Turf
	for rows.Next() {
		turf, err := scanTurf(rows)
		if err != nil {
			r.log.Error("Failed to scan turf row", zap.Error(err))
			return nil, fmt.Errorf("scan turf row: %w", err)
		}
		turfs = append(turfs, turf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turf rows: %w", err)
	}

	return turfs, nil
}

func (r *turfRepository) Update(ctx context.Context, turf *entity.Turf) error {
	query := `
		UPDATE turfs
		SET name = $2, location = $3, price = $4, description = $5, open_time = $6,
		    close_time = $7, slot_duration = $8, facilities = $9, images = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		turf.ID,
		turf.Name,
		turf.Location,
		turf.Price,
		turf.Description,
		turf.OpenTime,
		turf.CloseTime,
		turf.SlotDuration,
		turf.Facilities,
		turf.Images,
		turf.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update turf",
			zap.Error(err),
			zap.String("turf_id", turf.ID.String()),
		)
		return fmt.Errorf("update turf %s: %w", turf.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("turf %s not found", turf.ID.String())
	}

	return nil
}

func (r *turfRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM turfs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete turf",
			zap.Error(err),
			zap.String("turf_id", id.String()),
		)
		return fmt.Errorf("delete turf %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("turf %s not found", id.String())
	}

	r.log.Info("Turf deleted", zap.String("turf_id", id.String()))
	return nil
}
