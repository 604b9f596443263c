package usecase

import (
	"context"
	"testing"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/dto/request"
	"turf-booking/pkg/apperror"
	"turf-booking/pkg/lock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPlayerRepo struct{ mock.Mock }
// MockRatingRepo runs WithPlayerLock callbacks against itself and players.
type MockRatingRepo struct {
	mock.Mock
	players repository.PlayerRepository
}

func (m *MockPlayerRepo) Create(ctx context.Context, player *entity.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *MockPlayerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (m *MockPlayerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Player), args.Error(1)
}

func (m *MockPlayerRepo) Search(ctx context.Context, filter repository.PlayerFilter) ([]*entity.Player, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Player), args.Error(1)
}

func (m *MockPlayerRepo) Update(ctx context.Context, player *entity.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *MockPlayerRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, availability entity.Availability, updatedAt time.Time) error {
	return m.Called(ctx, id, availability, updatedAt).Error(0)
}

func (m *MockPlayerRepo) UpdateRatingStats(ctx context.Context, id uuid.UUID, rating float64, total int) error {
	return m.Called(ctx, id, rating, total).Error(0)
}

func (m *MockRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepo) FindByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*entity.Rating, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rating), args.Error(1)
}

func (m *MockRatingRepo) WithPlayerLock(ctx context.Context, playerID uuid.UUID, fn func(repository.RatingRepository, repository.PlayerRepository) error) error {
	if err := m.Called(ctx, playerID).Error(0); err != nil {
		return err
	}
	return fn(m, m.players)
}

func newPlayerService(players *MockPlayerRepo, ratings *MockRatingRepo) PlayerService {
	ratings.players = players
	repo := &repository.Repository{Player: players, Rating: ratings}
	return NewPlayerService(repo, lock.NewKeyedMutex(), zap.NewNop())
}

func ratingsOf(values ...int) []*entity.Rating {
	out := make([]*entity.Rating, len(values))
	for i, v := range values {
		out[i] = &entity.Rating{Value: v}
	}
	return out
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		mean   float64
		total  int
	}{
		{"none", nil, 0, 0},
		{"single", []int{5}, 5, 1},
		{"mixed", []int{4, 5, 3}, 4, 3},
		{"unrounded", []int{5, 4}, 4.5, 2},
		{"thirds", []int{1, 2, 2}, 5.0 / 3.0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, total := averageRating(ratingsOf(tt.values...))
			assert.InDelta(t, tt.mean, mean, 1e-9)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestSubmitRating_RecomputesOnEachWrite(t *testing.T) {
	target := &entity.Player{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New()}
	raters := []*entity.Player{
		{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New(), UserName: "Ana"},
		{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New(), UserName: "Ben"},
		{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New(), UserName: "Chi"},
	}
	players := newMemPlayers(append([]*entity.Player{target}, raters...)...)
	ratings := &memRatings{players: players}
	svc := NewPlayerService(&repository.Repository{Player: players, Rating: ratings}, lock.NewKeyedMutex(), zap.NewNop())
	ctx := context.Background()

	steps := []struct {
		value int
		mean  float64
		total int
	}{
		{4, 4.0, 1},
		{5, 4.5, 2},
		{3, 4.0, 3},
	}

	for i, step := range steps {
		resp, err := svc.SubmitRating(ctx, raters[i].UserID, target.ID, &request.RatePlayerRequest{Value: step.value})
		require.NoError(t, err)
		assert.Equal(t, step.value, resp.Value)
		assert.Equal(t, raters[i].UserName, resp.RaterName)

		stored, err := players.FindByID(ctx, target.ID)
		require.NoError(t, err)
		assert.InDelta(t, step.mean, stored.Rating, 1e-9, "after rating %d", i+1)
		assert.Equal(t, step.total, stored.TotalRatings, "after rating %d", i+1)
	}
}

func TestSubmitRating_RollsBackWhenAggregateFails(t *testing.T) {
	rater := &entity.Player{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New(), UserName: "Ana"}
	target := &entity.Player{Base: entity.Base{ID: uuid.New()}, UserID: uuid.New()}
	players := newMemPlayers(rater, target)
	ratings := &memRatings{players: players}
	svc := NewPlayerService(&repository.Repository{Player: players, Rating: ratings}, lock.NewKeyedMutex(), zap.NewNop())
	ctx := context.Background()

	players.failStats = assert.AnError
	_, err := svc.SubmitRating(ctx, rater.UserID, target.ID, &request.RatePlayerRequest{Value: 4})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.ErrorIs(t, err, assert.AnError)

	stored, err := ratings.FindByPlayerID(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "rating must not outlive the failed aggregate write")
	unchanged, _ := players.FindByID(ctx, target.ID)
	assert.Zero(t, unchanged.TotalRatings)

	// a retry stores exactly one rating
	players.failStats = nil
	_, err = svc.SubmitRating(ctx, rater.UserID, target.ID, &request.RatePlayerRequest{Value: 4})
	require.NoError(t, err)
	stored, _ = ratings.FindByPlayerID(ctx, target.ID)
	assert.Len(t, stored, 1)
	updated, _ := players.FindByID(ctx, target.ID)
	assert.Equal(t, 1, updated.TotalRatings)
	assert.InDelta(t, 4.0, updated.Rating, 1e-9)
}

func TestSubmitRating_TargetRemovedBeforeLock(t *testing.T) {
	players := new(MockPlayerRepo)
	ratings := new(MockRatingRepo)
	svc := newPlayerService(players, ratings)
	user := uuid.New()
	target := &entity.Player{Base: entity.Base{ID: uuid.New()}}
	players.On("FindByUserID", mock.Anything, user).Return(&entity.Player{Base: entity.Base{ID: uuid.New()}}, nil)
	players.On("FindByID", mock.Anything, target.ID).Return(target, nil)
	ratings.On("WithPlayerLock", mock.Anything, target.ID).Return(repository.ErrNotFound)

	_, err := svc.SubmitRating(context.Background(), user, target.ID, &request.RatePlayerRequest{Value: 4})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRating_SelfRating(t *testing.T) {
	players := new(MockPlayerRepo)
	ratings := new(MockRatingRepo)
	svc := newPlayerService(players, ratings)

	user := uuid.New()
	self := &entity.Player{Base: entity.Base{ID: uuid.New()}, UserID: user}
	players.On("FindByUserID", mock.Anything, user).Return(self, nil)

	_, err := svc.SubmitRating(context.Background(), user, self.ID, &request.RatePlayerRequest{Value: 5})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.EqualError(t, err, "cannot rate yourself")

	ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	players.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRating_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("value out of range", func(t *testing.T) {
		players := new(MockPlayerRepo)
		svc := newPlayerService(players, new(MockRatingRepo))

		for _, v := range []int{0, 6, -1} {
			_, err := svc.SubmitRating(ctx, uuid.New(), uuid.New(), &request.RatePlayerRequest{Value: v})
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "value %d", v)
		}
		players.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})

	t.Run("rater without profile", func(t *testing.T) {
		players := new(MockPlayerRepo)
		svc := newPlayerService(players, new(MockRatingRepo))
		user := uuid.New()
		players.On("FindByUserID", mock.Anything, user).Return(nil, nil)

		_, err := svc.SubmitRating(ctx, user, uuid.New(), &request.RatePlayerRequest{Value: 4})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.EqualError(t, err, "player profile required")
	})

	t.Run("unknown target", func(t *testing.T) {
		players := new(MockPlayerRepo)
		ratings := new(MockRatingRepo)
		svc := newPlayerService(players, ratings)
		user := uuid.New()
		missing := uuid.New()
		players.On("FindByUserID", mock.Anything, user).Return(&entity.Player{Base: entity.Base{ID: uuid.New()}}, nil)
		players.On("FindByID", mock.Anything, missing).Return(nil, nil)

		_, err := svc.SubmitRating(ctx, user, missing, &request.RatePlayerRequest{Value: 4})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		players := new(MockPlayerRepo)
		ratings := new(MockRatingRepo)
		svc := newPlayerService(players, ratings)
		user := uuid.New()
		target := &entity.Player{Base: entity.Base{ID: uuid.New()}}
		players.On("FindByUserID", mock.Anything, user).Return(&entity.Player{Base: entity.Base{ID: uuid.New()}}, nil)
		players.On("FindByID", mock.Anything, target.ID).Return(target, nil)
		ratings.On("WithPlayerLock", mock.Anything, target.ID).Return(nil)
		ratings.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.SubmitRating(ctx, user, target.ID, &request.RatePlayerRequest{Value: 4})
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		assert.ErrorIs(t, err, assert.AnError)
		players.AssertNotCalled(t, "UpdateRatingStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreatePlayer_AlreadyExists(t *testing.T) {
	players := new(MockPlayerRepo)
	svc := newPlayerService(players, new(MockRatingRepo))
	user := uuid.New()
	players.On("FindByUserID", mock.Anything, user).Return(&entity.Player{UserID: user}, nil)

	_, err := svc.CreatePlayer(context.Background(), user, &request.CreatePlayerRequest{
		Position: "Striker",
		Location: "Kandy",
	})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	players.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateAvailability_OwnProfileOnly(t *testing.T) {
	players := new(MockPlayerRepo)
	svc := newPlayerService(players, new(MockRatingRepo))
	owner := uuid.New()
	player := &entity.Player{Base: entity.Base{ID: uuid.New()}, UserID: owner, Availability: entity.AvailabilityAvailable}
	players.On("FindByID", mock.Anything, player.ID).Return(player, nil)
	players.On("UpdateAvailability", mock.Anything, player.ID, entity.AvailabilityBusy, mock.Anything).Return(nil)

	_, err := svc.UpdateAvailability(context.Background(), player.ID, uuid.New(), &request.UpdateAvailabilityRequest{Availability: "BUSY"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	resp, err := svc.UpdateAvailability(context.Background(), player.ID, owner, &request.UpdateAvailabilityRequest{Availability: "BUSY"})
	require.NoError(t, err)
	assert.Equal(t, entity.AvailabilityBusy, resp.Availability)
	players.AssertExpectations(t)
}
