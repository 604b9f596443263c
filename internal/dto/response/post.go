package response

import (
	"time"

	"turf-booking/internal/data/entity"
)

type PostResponse struct {
	ID         string            `json:"id"`
	AuthorID   string            `json:"author_id"`
	AuthorName string            `json:"author_name"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Type       entity.PostType   `json:"type"`
	Location   *string           `json:"location,omitempty"`
	Comments   []CommentResponse `json:"comments"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func PostToResponse(p *entity.Post) PostResponse {
	comments := make([]CommentResponse, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = CommentToResponse(c)
	}
	return PostResponse{
		ID:         p.ID.String(),
		AuthorID:   p.AuthorID.String(),
		AuthorName: p.AuthorName,
		Title:      p.Title,
		Content:    p.Content,
		Type:       p.Type,
		Location:   p.Location,
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func CommentToResponse(c *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID.String(),
		PostID:     c.PostID.String(),
		AuthorID:   c.AuthorID.String(),
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
