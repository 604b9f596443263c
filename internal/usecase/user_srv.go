package usecase

import (
	"context"
	"strings"
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

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, req *request.UpdateRoleRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperror.Internal("failed to get profile", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CreateUser provisions an account for the operator CLI.
func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}

	existing, err := us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.UserRole(req.Role),
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}

	us.log.Info("User created", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, apperror.Internal("failed to get users", err)
	}

	out := make([]response.UserResponse, len(users))
	for i, user := range users {
		out[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved", zap.Int("count", len(users)))
	return out, nil
}

func (us *userService) UpdateRole(ctx context.Context, userID uuid.UUID, req *request.UpdateRoleRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to update role", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	user.Role = entity.UserRole(req.Role)
	user.UpdatedAt = time.Now()
	if err := us.userRepo.UpdateRole(ctx, user.ID, user.Role, user.UpdatedAt); err != nil {
		return nil, apperror.Internal("failed to update role", err)
	}

	us.log.Info("User role updated", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}
