package usecase

import (
	"context"
	"errors"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/dto/request"
	"turf-booking/internal/dto/response"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/metrics"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, userID uuid.UUID, req *request.CreatePlayerRequest) (*response.PlayerResponse, error)
	GetPlayers(ctx context.Context) ([]response.PlayerResponse, error)
	SearchPlayers(ctx context.Context, req *request.SearchPlayersRequest) ([]response.PlayerResponse, error)
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*response.PlayerResponse, error)
	UpdatePlayer(ctx context.Context, playerID, userID uuid.UUID, req *request.UpdatePlayerRequest) (*response.PlayerResponse, error)
	UpdateAvailability(ctx context.Context, playerID, userID uuid.UUID, req *request.UpdateAvailabilityRequest) (*response.PlayerResponse, error)

	// SubmitRating stores a rating and refreshes the target's aggregate.
	SubmitRating(ctx context.Context, raterUserID, playerID uuid.UUID, req *request.RatePlayerRequest) (*response.RatingResponse, error)
}

type playerService struct {
	repo   *repository.Repository
	locker lock.Locker
	log    *zap.Logger
}

func NewPlayerService(repo *repository.Repository, locker lock.Locker, log *zap.Logger) PlayerService {
	return &playerService{
		repo:   repo,
		locker: locker,
		log:    log.With(zap.String("service", "player")),
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, userID uuid.UUID, req *request.CreatePlayerRequest) (*response.PlayerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create player validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("validation failed", errs)
	}

	existing, err := s.repo.Player.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to create player profile", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("player profile already exists")
	}

	availability := entity.AvailabilityAvailable
	if req.Availability != "" {
		availability = entity.Availability(req.Availability)
	}

	now := time.Now()
	player := &entity.Player{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userID,
		Position:     req.Position,
		PhoneNumber:  req.PhoneNumber,
		Location:     req.Location,
		Skills:       nonNil(req.Skills),
		Experience:   req.Experience,
		Bio:          req.Bio,
		Availability: availability,
	}

	if err := s.repo.Player.Create(ctx, player); err != nil {
		return nil, apperror.Internal("failed to create player profile", err)
	}

	s.log.Info("Player profile created",
		zap.String("player_id", player.ID.String()),
		zap.String("user_id", userID.String()),
	)

	// reload for the joined user fields
	return s.GetPlayer(ctx, player.ID)
}

func (s *playerService) GetPlayers(ctx context.Context) ([]response.PlayerResponse, error) {
	return s.SearchPlayers(ctx, &request.SearchPlayersRequest{})
}

func (s *playerService) SearchPlayers(ctx context.Context, req *request.SearchPlayersRequest) ([]response.PlayerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	players, err := s.repo.Player.Search(ctx, repository.PlayerFilter{
		Location:     req.Location,
		Position:     req.Position,
		Availability: entity.Availability(req.Availability),
	})
	if err != nil {
		return nil, apperror.Internal("failed to search players", err)
	}

	out := make([]response.PlayerResponse, len(players))
	for i, p := range players {
		out[i] = response.PlayerToResponse(p)
	}
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, playerID uuid.UUID) (*response.PlayerResponse, error) {
	player, err := s.repo.Player.FindByID(ctx, playerID)
	if err != nil {
		return nil, apperror.Internal("failed to get player", err)
	}
	if player == nil {
		return nil, apperror.NotFound("player not found")
	}

	ratings, err := s.repo.Rating.FindByPlayerID(ctx, playerID)
	if err != nil {
		return nil, apperror.Internal("failed to get player", err)
	}

	resp := response.PlayerToResponse(player)
	resp.Ratings = make([]response.RatingResponse, len(ratings))
	for i, r := range ratings {
		resp.Ratings[i] = response.RatingToResponse(r)
	}
	return &resp, nil
}

func (s *playerService) ownProfile(ctx context.Context, playerID, userID uuid.UUID, op string) (*entity.Player, error) {
	player, err := s.repo.Player.FindByID(ctx, playerID)
	if err != nil {
		return nil, apperror.Internal("failed to "+op, err)
	}
	if player == nil {
		return nil, apperror.NotFound("player not found")
	}
	if player.UserID != userID {
		return nil, apperror.Forbidden("not authorized")
	}
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, playerID, userID uuid.UUID, req *request.UpdatePlayerRequest) (*response.PlayerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	player, err := s.ownProfile(ctx, playerID, userID, "update player")
	if err != nil {
		return nil, err
	}

	if req.Position != nil {
		player.Position = *req.Position
	}
	if req.PhoneNumber != nil {
		player.PhoneNumber = req.PhoneNumber
	}
	if req.Location != nil {
		player.Location = *req.Location
	}
	if req.Skills != nil {
		player.Skills = req.Skills
	}
	if req.Experience != nil {
		player.Experience = *req.Experience
	}
	if req.Bio != nil {
		player.Bio = req.Bio
	}
	if req.Availability != nil {
		player.Availability = entity.Availability(*req.Availability)
	}
	player.UpdatedAt = time.Now()

	if err := s.repo.Player.Update(ctx, player); err != nil {
		return nil, apperror.Internal("failed to update player", err)
	}

	resp := response.PlayerToResponse(player)
	return &resp, nil
}

func (s *playerService) UpdateAvailability(ctx context.Context, playerID, userID uuid.UUID, req *request.UpdateAvailabilityRequest) (*response.PlayerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	player, err := s.ownProfile(ctx, playerID, userID, "update availability")
	if err != nil {
		return nil, err
	}

	player.Availability = entity.Availability(req.Availability)
	player.UpdatedAt = time.Now()
	if err := s.repo.Player.UpdateAvailability(ctx, player.ID, player.Availability, player.UpdatedAt); err != nil {
		return nil, apperror.Internal("failed to update availability", err)
	}

	resp := response.PlayerToResponse(player)
	return &resp, nil
}

func (s *playerService) SubmitRating(ctx context.Context, raterUserID, playerID uuid.UUID, req *request.RatePlayerRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	rater, err := s.repo.Player.FindByUserID(ctx, raterUserID)
	if err != nil {
		return nil, apperror.Internal("failed to submit rating", err)
	}
	if rater == nil {
		return nil, apperror.Validation("player profile required", nil)
	}
	if rater.ID == playerID {
		return nil, apperror.Validation("cannot rate yourself", nil)
	}

	target, err := s.repo.Player.FindByID(ctx, playerID)
	if err != nil {
		return nil, apperror.Internal("failed to submit rating", err)
	}
	if target == nil {
		return nil, apperror.NotFound("player not found")
	}

	// serialise aggregate refreshes for one player
	release, err := s.locker.Acquire(ctx, "player:"+target.ID.String())
	if err != nil {
		return nil, apperror.Internal("failed to submit rating", err)
	}
	defer release()

	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		PlayerID:  target.ID,
		RaterID:   rater.ID,
		Value:     req.Value,
		Comment:   req.Comment,
		RaterName: rater.UserName,
	}

	var mean float64
	var total int
	err = s.repo.Rating.WithPlayerLock(ctx, target.ID, func(ratings repository.RatingRepository, players repository.PlayerRepository) error {
		if err := ratings.Create(ctx, rating); err != nil {
			return err
		}

		all, err := ratings.FindByPlayerID(ctx, target.ID)
		if err != nil {
			return err
		}

		mean, total = averageRating(all)
		return players.UpdateRatingStats(ctx, target.ID, mean, total)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("player not found")
	}
	if err != nil {
		s.log.Error("Failed to submit rating", zap.Error(err), zap.String("player_id", target.ID.String()))
		return nil, apperror.Internal("failed to submit rating", err)
	}

	metrics.RecordRating()
	s.log.Info("Player rated",
		zap.String("player_id", target.ID.String()),
		zap.String("rater_id", rater.ID.String()),
		zap.Int("value", req.Value),
		zap.Float64("rating", mean),
		zap.Int("total_ratings", total),
	)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

// averageRating is the plain mean over every rating received.
func averageRating(ratings []*entity.Rating) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings)), len(ratings)
}
