package repository

import (
	"context"
	"errors"
	"fmt"

	"turf-booking/internal/data/entity"
	"turf-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*entity.Rating, error)

	// WithPlayerLock runs fn inside one transaction holding a row lock on the
	// rated player. fn receives rating and player repositories bound to that
	// transaction; returning an error rolls it back. A missing player yields
	// ErrNotFound.
	WithPlayerLock(ctx context.Context, playerID uuid.UUID, fn func(ratings RatingRepository, players PlayerRepository) error) error
}

type ratingRepository struct {
	db   database.Querier
	pool database.PgxIface // nil inside a transaction
	log  *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:   db,
		pool: db,
		log:  log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, player_id, rater_id, value, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.PlayerID,
		rating.RaterID,
		rating.Value,
		rating.Comment,
		rating.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("player_id", rating.PlayerID.String()),
			zap.String("rater_id", rating.RaterID.String()),
		)
		return fmt.Errorf("create rating for player %s by %s: %w",
			rating.PlayerID.String(), rating.RaterID.String(), err)
	}

	return nil
}

// FindByPlayerID returns every rating the player received, newest first.
func (r *ratingRepository) FindByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*entity.Rating, error) {
	query := `
		SELECT r.id, r.player_id, r.rater_id, r.value, r.comment, r.created_at, u.name
		FROM ratings r
		JOIN players p ON p.id = r.rater_id
		JOIN users u ON u.id = p.user_id
		WHERE r.player_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		r.log.Error("Failed to find ratings by player ID",
			zap.Error(err),
			zap.String("player_id", playerID.String()),
		)
		return nil, fmt.Errorf("find ratings by player ID %s: %w", playerID.String(), err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.PlayerID,
			&rating.RaterID,
			&rating.Value,
			&rating.Comment,
			&rating.CreatedAt,
			&rating.RaterName,
		)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) WithPlayerLock(ctx context.Context, playerID uuid.UUID, fn func(ratings RatingRepository, players PlayerRepository) error) error {
	if r.pool == nil {
		return errors.New("nested player lock is not supported")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin rating transaction", zap.Error(err), zap.String("player_id", playerID.String()))
		return fmt.Errorf("begin rating transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	result, err := tx.Exec(ctx, `SELECT 1 FROM players WHERE id = $1 FOR UPDATE`, playerID)
	if err != nil {
		r.log.Error("Failed to lock player row", zap.Error(err), zap.String("player_id", playerID.String()))
		return fmt.Errorf("lock player %s: %w", playerID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("lock player %s: %w", playerID.String(), ErrNotFound)
	}

	ratings := &ratingRepository{db: tx, log: r.log}
	players := &playerRepository{db: tx, log: r.log}
	if err := fn(ratings, players); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit rating transaction", zap.Error(err), zap.String("player_id", playerID.String()))
		return fmt.Errorf("commit rating transaction: %w", err)
	}
	committed = true

	return nil
}
