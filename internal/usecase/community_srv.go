package usecase

import (
	"context"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/dto/request"
	"turf-booking/internal/dto/response"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommunityService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req *request.CreatePostRequest) (*response.PostResponse, error)
	GetPosts(ctx context.Context) ([]response.PostResponse, error)
	GetPost(ctx context.Context, postID uuid.UUID) (*response.PostResponse, error)
	UpdatePost(ctx context.Context, postID, userID uuid.UUID, req *request.UpdatePostRequest) (*response.PostResponse, error)
	DeletePost(ctx context.Context, postID, userID uuid.UUID, role string) error

	AddComment(ctx context.Context, postID, userID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error
}

type communityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommunityService(repo *repository.Repository, log *zap.Logger) CommunityService {
	return &communityService{
		repo: repo,
		log:  log.With(zap.String("service", "community")),
	}
}

// author resolves the caller's player profile; posting and commenting need one.
func (s *communityService) author(ctx context.Context, userID uuid.UUID, op string) (*entity.Player, error) {
	player, err := s.repo.Player.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to "+op, err)
	}
	if player == nil {
		return nil, apperror.Validation("player profile required", nil)
	}
	return player, nil
}

func (s *communityService) CreatePost(ctx context.Context, userID uuid.UUID, req *request.CreatePostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	player, err := s.author(ctx, userID, "create post")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &entity.Post{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AuthorID:     player.ID,
		Title:        req.Title,
		Content:      req.Content,
		Type:         entity.PostType(req.Type),
		Location:     req.Location,
		AuthorName:   player.UserName,
		AuthorUserID: userID,
	}

	if err := s.repo.Post.Create(ctx, post); err != nil {
		return nil, apperror.Internal("failed to create post", err)
	}

	s.log.Info("Post created", zap.String("post_id", post.ID.String()), zap.String("author_id", player.ID.String()))

	resp := response.PostToResponse(post)
	return &resp, nil
}

func (s *communityService) GetPosts(ctx context.Context) ([]response.PostResponse, error) {
	posts, err := s.repo.Post.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to get posts", err)
	}

	out := make([]response.PostResponse, len(posts))
	for i, post := range posts {
		post.Comments, err = s.repo.Comment.FindByPostID(ctx, post.ID)
		if err != nil {
			return nil, apperror.Internal("failed to get posts", err)
		}
		out[i] = response.PostToResponse(post)
	}
	return out, nil
}

func (s *communityService) findPost(ctx context.Context, postID uuid.UUID, op string) (*entity.Post, error) {
	post, err := s.repo.Post.FindByID(ctx, postID)
	if err != nil {
		return nil, apperror.Internal("failed to "+op, err)
	}
	if post == nil {
		return nil, apperror.NotFound("post not found")
	}
	return post, nil
}

func (s *communityService) GetPost(ctx context.Context, postID uuid.UUID) (*response.PostResponse, error) {
	post, err := s.findPost(ctx, postID, "get post")
	if err != nil {
		return nil, err
	}

	post.Comments, err = s.repo.Comment.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get post", err)
	}

	resp := response.PostToResponse(post)
	return &resp, nil
}

func (s *communityService) UpdatePost(ctx context.Context, postID, userID uuid.UUID, req *request.UpdatePostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	post, err := s.findPost(ctx, postID, "update post")
	if err != nil {
		return nil, err
	}
	if post.AuthorUserID != userID {
		return nil, apperror.Forbidden("not authorized")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Type != nil {
		post.Type = entity.PostType(*req.Type)
	}
	if req.Location != nil {
		post.Location = req.Location
	}
	post.UpdatedAt = time.Now()

	if err := s.repo.Post.Update(ctx, post); err != nil {
		return nil, apperror.Internal("failed to update post", err)
	}

	resp := response.PostToResponse(post)
	return &resp, nil
}

// DeletePost is open to the author and to admins. Comments go first.
func (s *communityService) DeletePost(ctx context.Context, postID, userID uuid.UUID, role string) error {
	post, err := s.findPost(ctx, postID, "delete post")
	if err != nil {
		return err
	}
	if post.AuthorUserID != userID && role != string(entity.RoleAdmin) {
		return apperror.Forbidden("not authorized")
	}

	removed, err := s.repo.Comment.DeleteByPostID(ctx, post.ID)
	if err != nil {
		return apperror.Internal("failed to delete post", err)
	}
	if err := s.repo.Post.Delete(ctx, post.ID); err != nil {
		return apperror.Internal("failed to delete post", err)
	}

	s.log.Info("Post deleted",
		zap.String("post_id", post.ID.String()),
		zap.String("by", userID.String()),
		zap.Int64("comments_removed", removed),
	)
	return nil
}

func (s *communityService) AddComment(ctx context.Context, postID, userID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	player, err := s.author(ctx, userID, "add comment")
	if err != nil {
		return nil, err
	}

	if _, err := s.findPost(ctx, postID, "add comment"); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &entity.Comment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PostID:     postID,
		AuthorID:   player.ID,
		Content:    req.Content,
		AuthorName: player.UserName,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, apperror.Internal("failed to add comment", err)
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *communityService) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return apperror.Internal("failed to delete comment", err)
	}
	if comment == nil {
		return apperror.NotFound("comment not found")
	}

	player, err := s.repo.Player.FindByUserID(ctx, userID)
	if err != nil {
		return apperror.Internal("failed to delete comment", err)
	}
	if player == nil || player.ID != comment.AuthorID {
		return apperror.Forbidden("not authorized")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		return apperror.Internal("failed to delete comment", err)
	}
	return nil
}
