package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/dto/request"
	"turf-booking/internal/dto/response"
	"turf-booking/internal/scheduler"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/metrics"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Player endpoints
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*response.BookingResponse, error)

	// Turf owner endpoints
	UpdateBookingStatus(ctx context.Context, bookingID, ownerID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetTurfBookings(ctx context.Context, turfID uuid.UUID, date *time.Time) ([]response.BookingResponse, error)

	// Admin endpoints
	GetAllBookings(ctx context.Context) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	locker lock.Locker
	policy scheduler.Policy
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, locker lock.Locker, policy scheduler.Policy, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		locker: locker,
		policy: policy,
		log:    log.With(zap.String("service", "booking")),
	}
}

// CreateBooking admits a booking if no blocking booking on the same turf and
// day overlaps the requested window. The read, check and insert run under the
// per-slot lock and inside one transaction holding the matching advisory lock.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		metrics.RecordAdmission("rejected")
		return nil, apperror.Validation("validation failed", errs)
	}

	turfID, ok := utils.ParseUUID(req.TurfID)
	if !ok {
		metrics.RecordAdmission("rejected")
		return nil, apperror.Validation("invalid turf ID", nil)
	}

	slot, err := scheduler.ParseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		metrics.RecordAdmission("rejected")
		return nil, apperror.Validation(err.Error(), nil)
	}

	turf, err := s.repo.Turf.FindByID(ctx, turfID)
	if err != nil {
		metrics.RecordAdmission("error")
		return nil, apperror.Internal("failed to create booking", err)
	}
	if turf == nil {
		metrics.RecordAdmission("rejected")
		return nil, apperror.NotFound("turf not found")
	}

	key := scheduler.SlotKey(turf.ID, slot.Date)

	waitStart := time.Now()
	release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		s.log.Error("Failed to acquire slot lock", zap.Error(err), zap.String("key", key))
		metrics.RecordAdmission("error")
		return nil, apperror.Internal("failed to create booking", err)
	}
	defer release()
	metrics.RecordLockWait(time.Since(waitStart).Seconds())

	var booking *entity.Booking
	err = s.repo.Booking.WithSlotLock(ctx, key, func(tx repository.BookingRepository) error {
		existing, err := tx.FindByTurfAndDate(ctx, turf.ID, slot.Date)
		if err != nil {
			return err
		}

		if hit := s.policy.FindConflict(existing, slot.Window); hit != nil {
			s.log.Info("Booking rejected - slot taken",
				zap.String("turf_id", turf.ID.String()),
				zap.String("existing_booking_id", hit.ID.String()),
				zap.String("date", req.Date),
				zap.String("start_time", req.StartTime),
				zap.String("end_time", req.EndTime),
			)
			return apperror.Conflict("time slot already booked")
		}

		now := time.Now()
		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			TurfID:     turf.ID,
			UserID:     userID,
			Date:       slot.Date,
			StartTime:  slot.Window.Start,
			EndTime:    slot.Window.End,
			Status:     entity.BookingStatusPending,
			TotalPrice: scheduler.TotalPrice(turf.Price, slot.Window),
		}
		return tx.Create(ctx, booking)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindConflict {
			metrics.RecordAdmission("conflict")
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("turf_id", turf.ID.String()),
		)
		metrics.RecordAdmission("error")
		return nil, apperror.Internal("failed to create booking", err)
	}

	metrics.RecordAdmission("admitted")
	booking.TurfName = turf.Name

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("turf_id", turf.ID.String()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperror.Internal("failed to get bookings", err)
	}

	return response.BookingsToResponse(bookings), nil
}

// UpdateBookingStatus lets the owner of the booked turf move a booking
// between statuses. Concurrent updates are last writer wins.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID, ownerID uuid.UUID, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	status := entity.BookingStatus(req.Status)
	if !status.Valid() {
		return nil, apperror.Validation("invalid status", map[string]string{
			"status": "Must be one of: PENDING, CONFIRMED, CANCELLED",
		})
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("failed to update booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking not found")
	}

	turf, err := s.repo.Turf.FindByID(ctx, booking.TurfID)
	if err != nil {
		return nil, apperror.Internal("failed to update booking", err)
	}
	if turf == nil {
		return nil, apperror.NotFound("turf not found")
	}

	if turf.OwnerID != ownerID {
		s.log.Warn("Status change by non-owner",
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", ownerID.String()),
		)
		return nil, apperror.Forbidden("not authorized")
	}

	from := booking.Status
	if !s.policy.CanTransition(from, status) {
		return nil, apperror.Validation(fmt.Sprintf("cannot change status from %s to %s", from, status), nil)
	}

	now := time.Now()
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, status, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("booking not found")
		}
		s.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, apperror.Internal("failed to update booking", err)
	}
	booking.Status = status
	booking.UpdatedAt = now

	metrics.RecordStatusChange(string(from), string(status))
	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// CancelBooking is open only to whoever made the booking. It ignores the
// transition policy and repeating it is a no-op.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, apperror.Internal("failed to cancel booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking not found")
	}

	if booking.UserID != userID {
		s.log.Warn("Cancel by non-requester",
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, apperror.Forbidden("not authorized")
	}

	if booking.Status != entity.BookingStatusCancelled {
		now := time.Now()
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.NotFound("booking not found")
			}
			s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
			return nil, apperror.Internal("failed to cancel booking", err)
		}
		booking.Status = entity.BookingStatusCancelled
		booking.UpdatedAt = now

		metrics.RecordCancellation()
		s.log.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()))
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetTurfBookings(ctx context.Context, turfID uuid.UUID, date *time.Time) ([]response.BookingResponse, error) {
	turf, err := s.repo.Turf.FindByID(ctx, turfID)
	if err != nil {
		return nil, apperror.Internal("failed to get bookings", err)
	}
	if turf == nil {
		return nil, apperror.NotFound("turf not found")
	}

	var bookings []*entity.Booking
	if date != nil {
		bookings, err = s.repo.Booking.FindByTurfAndDate(ctx, turfID, *date)
	} else {
		bookings, err = s.repo.Booking.FindByTurfID(ctx, turfID)
	}
	if err != nil {
		s.log.Error("Failed to get turf bookings", zap.Error(err), zap.String("turf_id", turfID.String()))
		return nil, apperror.Internal("failed to get bookings", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get all bookings", zap.Error(err))
		return nil, apperror.Internal("failed to get bookings", err)
	}

	s.log.Info("Bookings retrieved", zap.Int("count", len(bookings)))
	return response.BookingsToResponse(bookings), nil
}
