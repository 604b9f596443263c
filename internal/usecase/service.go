package usecase

import (
	"turf-booking/internal/data/repository"
	"turf-booking/internal/scheduler"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User      UserService
	Turf      TurfService
	Booking   BookingService
	Player    PlayerService
	Community CommunityService
}

func NewService(repo *repository.Repository, locker lock.Locker, config *utils.Config, log *zap.Logger) *Service {
	policy := scheduler.Policy{
		StrictTransitions: config.Booking.StrictTransitions,
		IncludeCancelled:  config.Booking.IncludeCancelled,
	}

	return &Service{
		User:      NewUserService(repo.User, log),
		Turf:      NewTurfService(repo, log),
		Booking:   NewBookingService(repo, locker, policy, log),
		Player:    NewPlayerService(repo, locker, log),
		Community: NewCommunityService(repo, log),
	}
}
