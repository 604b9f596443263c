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

type TurfService interface {
	CreateTurf(ctx context.Context, ownerID uuid.UUID, req *request.CreateTurfRequest) (*response.TurfResponse, error)
	GetTurfs(ctx context.Context) ([]response.TurfResponse, error)
	GetTurf(ctx context.Context, turfID uuid.UUID) (*response.TurfResponse, error)
	UpdateTurf(ctx context.Context, turfID, ownerID uuid.UUID, req *request.UpdateTurfRequest) (*response.TurfResponse, error)
	DeleteTurf(ctx context.Context, turfID, ownerID uuid.UUID) error
}

type turfService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTurfService(repo *repository.Repository, log *zap.Logger) TurfService {
	return &turfService{
		repo: repo,
		log:  log.With(zap.String("service", "turf")),
	}
}

func (s *turfService) CreateTurf(ctx context.Context, ownerID uuid.UUID, req *request.CreateTurfRequest) (*response.TurfResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create turf validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("validation failed", errs)
	}

	now := time.Now()
	turf := &entity.Turf{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Location:     req.Location,
		Price:        req.Price,
		Description:  req.Description,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		SlotDuration: req.SlotDuration,
		Facilities:   nonNil(req.Facilities),
		Images:       nonNil(req.Images),
		OwnerID:      ownerID,
	}

	if err := s.repo.Turf.Create(ctx, turf); err != nil {
		return nil, apperror.Internal("failed to create turf", err)
	}

	s.log.Info("Turf created",
		zap.String("turf_id", turf.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	resp := response.TurfToResponse(turf)
	return &resp, nil
}

func (s *turfService) GetTurfs(ctx context.Context) ([]response.TurfResponse, error) {
	turfs, err := s.repo.Turf.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to get turfs", err)
	}

	out := make([]response.TurfResponse, len(turfs))
	for i, t := range turfs {
		out[i] = response.TurfToResponse(t)
	}
	return out, nil
}

func (s *turfService) GetTurf(ctx context.Context, turfID uuid.UUID) (*response.TurfResponse, error) {
	turf, err := s.repo.Turf.FindByID(ctx, turfID)
	if err != nil {
		return nil, apperror.Internal("failed to get turf", err)
	}
	if turf == nil {
		return nil, apperror.NotFound("turf not found")
	}

	resp := response.TurfToResponse(turf)
	return &resp, nil
}

func (s *turfService) ownedTurf(ctx context.Context, turfID, ownerID uuid.UUID, op string) (*entity.Turf, error) {
	turf, err := s.repo.Turf.FindByID(ctx, turfID)
	if err != nil {
		return nil, apperror.Internal("failed to "+op, err)
	}
	if turf == nil {
		return nil, apperror.NotFound("turf not found")
	}
	if turf.OwnerID != ownerID {
		s.log.Warn(op+" by non-owner",
			zap.String("turf_id", turfID.String()),
			zap.String("user_id", ownerID.String()),
		)
		return nil, apperror.Forbidden("not authorized")
	}
	return turf, nil
}

func (s *turfService) UpdateTurf(ctx context.Context, turfID, ownerID uuid.UUID, req *request.UpdateTurfRequest) (*response.TurfResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	turf, err := s.ownedTurf(ctx, turfID, ownerID, "update turf")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		turf.Name = *req.Name
	}
	if req.Location != nil {
		turf.Location = *req.Location
	}
	if req.Price != nil {
		turf.Price = *req.Price
	}
	if req.Description != nil {
		turf.Description = *req.Description
	}
	if req.OpenTime != nil {
		turf.OpenTime = req.OpenTime
	}
	if req.CloseTime != nil {
		turf.CloseTime = req.CloseTime
	}
	if req.SlotDuration != nil {
		turf.SlotDuration = req.SlotDuration
	}
	if req.Facilities != nil {
		turf.Facilities = req.Facilities
	}
	if req.Images != nil {
		turf.Images = req.Images
	}
	turf.UpdatedAt = time.Now()

	if err := s.repo.Turf.Update(ctx, turf); err != nil {
		return nil, apperror.Internal("failed to update turf", err)
	}

	resp := response.TurfToResponse(turf)
	return &resp, nil
}

// DeleteTurf also removes the turf's bookings (cascade).
func (s *turfService) DeleteTurf(ctx context.Context, turfID, ownerID uuid.UUID) error {
	if _, err := s.ownedTurf(ctx, turfID, ownerID, "delete turf"); err != nil {
		return err
	}

	if err := s.repo.Turf.Delete(ctx, turfID); err != nil {
		return apperror.Internal("failed to delete turf", err)
	}

	s.log.Info("Turf deleted", zap.String("turf_id", turfID.String()))
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
