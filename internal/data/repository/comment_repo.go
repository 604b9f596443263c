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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, c.updated_at, u.name
	FROM comments c
	JOIN players p ON p.id = c.author_id
	JOIN users u ON u.id = p.user_id
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("post_id", comment.PostID.String()),
		)
		return fmt.Errorf("create comment on post %s: %w", comment.PostID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return nil, fmt.Errorf("find comment by ID %s: %w", id.String(), err)
	}

	return comment, nil
}

// FindByPostID returns comments oldest first.
func (r *commentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error) {
	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.post_id = $1 ORDER BY c.created_at`, postID)
	if err != nil {
		r.log.Error("Failed to find comments by post ID",
			zap.Error(err),
			zap.String("post_id", postID.String()),
		)
		return nil, fmt.Errorf("find comments by post ID %s: %w", postID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("delete comment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found", id.String())
	}

	return nil
}

func (r *commentRepository) DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		r.log.Error("Failed to delete comments by post ID",
			zap.Error(err),
			zap.String("post_id", postID.String()),
		)
		return 0, fmt.Errorf("delete comments for post %s: %w", postID.String(), err)
	}

	return result.RowsAffected(), nil
}
