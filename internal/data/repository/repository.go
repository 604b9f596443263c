package repository

import (
	"errors"

	"turf-booking/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User    UserRepository
	Turf    TurfRepository
	Booking BookingRepository
	Player  PlayerRepository
	Rating  RatingRepository
	Post    PostRepository
	Comment CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Turf:    NewTurfRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Player:  NewPlayerRepository(db, log),
		Rating:  NewRatingRepository(db, log),
		Post:    NewPostRepository(db, log),
		Comment: NewCommentRepository(db, log),
	}
}
