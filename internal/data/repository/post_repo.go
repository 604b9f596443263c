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

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindAll(ctx context.Context) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostRepository(db database.PgxIface, log *zap.Logger) PostRepository {
	return &postRepository{
		db:  db,
		log: log.With(zap.String("repository", "post")),
	}
}

const postSelect = `
	SELECT po.id, po.author_id, po.title, po.content, po.type, po.location,
	       po.created_at, po.updated_at, u.name, p.user_id
	FROM posts po
	JOIN players p ON p.id = po.author_id
	JOIN users u ON u.id = p.user_id
`

func scanPost(row pgx.Row) (*entity.Post, error) {
	var post entity.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.Type,
		&post.Location,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorName,
		&post.AuthorUserID,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, author_id, title, content, type, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		post.Title,
		post.Content,
		post.Type,
		post.Location,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create post",
			zap.Error(err),
			zap.String("author_id", post.AuthorID.String()),
		)
		return fmt.Errorf("create post by %s: %w", post.AuthorID.String(), err)
	}

	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE po.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find post by ID",
			zap.Error(err),
			zap.String("post_id", id.String()),
		)
		return nil, fmt.Errorf("find post by ID %s: %w", id.String(), err)
	}

	return post, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	rows, err := r.db.Query(ctx, postSelect+` ORDER BY po.created_at DESC`)
	if err != nil {
		r.log.Error("Failed to get all posts", zap.Error(err))
		return nil, fmt.Errorf("find all posts: %w", err)
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.log.Error("Failed to scan post row", zap.Error(err))
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, type = $4, location = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Type,
		post.Location,
		post.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update post",
			zap.Error(err),
			zap.String("post_id", post.ID.String()),
		)
		return fmt.Errorf("update post %s: %w", post.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found", post.ID.String())
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete post",
			zap.Error(err),
			zap.String("post_id", id.String()),
		)
		return fmt.Errorf("delete post %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found", id.String())
	}

	r.log.Info("Post deleted", zap.String("post_id", id.String()))
	return nil
}
