package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PlayerFilter narrows a player search. Location and Position match
// case-insensitive substrings; Availability matches exactly.
type PlayerFilter struct {
	Location     string
	Position     string
	Availability entity.Availability
}

type PlayerRepository interface {
	Create(ctx context.Context, player *entity.Player) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Player, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Player, error)
	Search(ctx context.Context, filter PlayerFilter) ([]*entity.Player, error)
	Update(ctx context.Context, player *entity.Player) error
	UpdateAvailability(ctx context.Context, id uuid.UUID, availability entity.Availability, updatedAt time.Time) error
	UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, total int) error
}

type playerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPlayerRepository(db database.PgxIface, log *zap.Logger) PlayerRepository {
	return &playerRepository{
		db:  db,
		log: log.With(zap.String("repository", "player")),
	}
}

const playerSelect = `
	SELECT p.id, p.user_id, p.position, p.phone_number, p.location, p.skills, p.experience,
	       p.bio, p.availability, p.rating, p.total_ratings, p.created_at, p.updated_at,
	       u.name, u.email
	FROM players p
	JOIN users u ON u.id = p.user_id
`

func scanPlayer(row pgx.Row) (*entity.Player, error) {
	var player entity.Player
	err := row.Scan(
		&player.ID,
		&player.UserID,
		&player.Position,
		&player.PhoneNumber,
		&player.Location,
		&player.Skills,
		&player.Experience,
		&player.Bio,
		&player.Availability,
		&player.Rating,
		&player.TotalRatings,
		&player.CreatedAt,
		&player.UpdatedAt,
		&player.UserName,
		&player.UserEmail,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) Create(ctx context.Context, player *entity.Player) error {
	query := `
		INSERT INTO players (id, user_id, position, phone_number, location, skills, experience,
		                     bio, availability, rating, total_ratings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		player.ID,
		player.UserID,
		player.Position,
		player.PhoneNumber,
		player.Location,
		player.Skills,
		player.Experience,
		player.Bio,
		player.Availability,
		player.Rating,
		player.TotalRatings,
		player.CreatedAt,
		player.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create player",
			zap.Error(err),
			zap.String("user_id", player.UserID.String()),
		)
		return fmt.Errorf("create player for user %s: %w", player.UserID.String(), err)
	}

	return nil
}

func (r *playerRepository) findOne(ctx context.Context, where string, arg uuid.UUID) (*entity.Player, error) {
	player, err := scanPlayer(r.db.QueryRow(ctx, playerSelect+" WHERE "+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return player, err
}

func (r *playerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Player, error) {
	player, err := r.findOne(ctx, "p.id = $1", id)
	if err != nil {
		r.log.Error("Failed to find player by ID",
			zap.Error(err),
			zap.String("player_id", id.String()),
		)
		return nil, fmt.Errorf("find player by ID %s: %w", id.String(), err)
	}
	return player, nil
}

func (r *playerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Player, error) {
	player, err := r.findOne(ctx, "p.user_id = $1", userID)
	if err != nil {
		r.log.Error("Failed to find player by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find player by user ID %s: %w", userID.String(), err)
	}
	return player, nil
}

// Search with an empty filter lists every player, best rated first.
func (r *playerRepository) Search(ctx context.Context, filter PlayerFilter) ([]*entity.Player, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.Location != "" {
		add("p.location ILIKE '%' || ? || '%'", filter.Location)
	}
	if filter.Position != "" {
		add("p.position ILIKE '%' || ? || '%'", filter.Position)
	}
	if filter.Availability != "" {
		add("p.availability = ?", filter.Availability)
	}

	query := playerSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.rating DESC, p.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search players",
			zap.Error(err),
			zap.String("location", filter.Location),
			zap.String("position", filter.Position),
		)
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()

	var players []*entity.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			r.log.Error("Failed to scan player row", zap.Error(err))
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player rows: %w", err)
	}

	return players, nil
}

func (r *playerRepository) Update(ctx context.Context, player *entity.Player) error {
	query := `
		UPDATE players
		SET position = $2, phone_number = $3, location = $4, skills = $5, experience = $6,
		    bio = $7, availability = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		player.ID,
		player.Position,
		player.PhoneNumber,
		player.Location,
		player.Skills,
		player.Experience,
		player.Bio,
		player.Availability,
		player.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update player",
			zap.Error(err),
			zap.String("player_id", player.ID.String()),
		)
		return fmt.Errorf("update player %s: %w", player.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", player.ID.String())
	}

	return nil
}

func (r *playerRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, availability entity.Availability, updatedAt time.Time) error {
	query := `UPDATE players SET availability = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, availability, updatedAt)
	if err != nil {
		r.log.Error("Failed to update player availability",
			zap.Error(err),
			zap.String("player_id", id.String()),
		)
		return fmt.Errorf("update player %s availability: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("player %s not found", id.String())
	}

	return nil
}

func (r *playerRepository) UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, total int) error {
	query := `UPDATE players SET rating = $2, total_ratings = $3 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, rating, total); err != nil {
		r.log.Error("Failed to update player rating",
			zap.Error(err),
			zap.String("player_id", id.String()),
			zap.Float64("rating", rating),
		)
		return fmt.Errorf("update player %s rating: %w", id.String(), err)
	}

	return nil
}
