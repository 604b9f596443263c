package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"turf-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRatingRepo(t *testing.T) (RatingRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRatingRepository(mock, zap.NewNop()), mock
}

func submit(ratings RatingRepository, players PlayerRepository, rating *entity.Rating) error {
	ctx := context.Background()
	if err := ratings.Create(ctx, rating); err != nil {
		return err
	}
	all, err := ratings.FindByPlayerID(ctx, rating.PlayerID)
	if err != nil {
		return err
	}
	return players.UpdateRatingStats(ctx, rating.PlayerID, float64(all[0].Value), len(all))
}

func TestWithPlayerLock_Commit(t *testing.T) {
	repo, mock := newRatingRepo(t)
	playerID, raterID := uuid.New(), uuid.New()
	comment := "solid keeper"
	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		PlayerID:   playerID,
		RaterID:    raterID,
		Value:      4,
		Comment:    &comment,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT 1 FROM players WHERE id = $1 FOR UPDATE")).
		WithArgs(playerID).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings")).
		WithArgs(rating.ID, playerID, raterID, 4, &comment, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.player_id = $1")).
		WithArgs(playerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "player_id", "rater_id", "value", "comment", "created_at", "name"}).
			AddRow(rating.ID, playerID, raterID, 4, &comment, rating.CreatedAt, "Ana"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE players SET rating = $2, total_ratings = $3")).
		WithArgs(playerID, 4.0, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.WithPlayerLock(context.Background(), playerID, func(ratings RatingRepository, players PlayerRepository) error {
		return submit(ratings, players, rating)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithPlayerLock_RollbackWhenAggregateFails(t *testing.T) {
	repo, mock := newRatingRepo(t)
	playerID := uuid.New()
	comment := "quick feet"
	rating := &entity.Rating{BaseSimple: entity.BaseSimple{ID: uuid.New()}, PlayerID: playerID, RaterID: uuid.New(), Value: 5, Comment: &comment}
	errStats := errors.New("deadlock detected")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(playerID).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings")).
		WithArgs(pgxmock.AnyArg(), playerID, pgxmock.AnyArg(), 5, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.player_id = $1")).
		WithArgs(playerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "player_id", "rater_id", "value", "comment", "created_at", "name"}).
			AddRow(rating.ID, playerID, rating.RaterID, 5, &comment, time.Now(), "Ana"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE players SET rating")).
		WithArgs(playerID, 5.0, 1).
		WillReturnError(errStats)
	mock.ExpectRollback()

	err := repo.WithPlayerLock(context.Background(), playerID, func(ratings RatingRepository, players PlayerRepository) error {
		return submit(ratings, players, rating)
	})

	assert.ErrorIs(t, err, errStats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithPlayerLock_MissingPlayer(t *testing.T) {
	repo, mock := newRatingRepo(t)
	playerID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(playerID).
		WillReturnResult(pgxmock.NewResult("SELECT", 0))
	mock.ExpectRollback()

	called := false
	err := repo.WithPlayerLock(context.Background(), playerID, func(RatingRepository, PlayerRepository) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
