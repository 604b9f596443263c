package usecase

import (
	"context"
	"runtime"
	"sync"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memTurfs and memBookings are goroutine-safe in-memory repositories. Each
// call is atomic on its own; WithSlotLock adds no exclusion, so tests see
// exactly the protection the service's locker provides.

type memTurfs struct {
	mu    sync.Mutex
	turfs map[uuid.UUID]*entity.Turf
}

func newMemTurfs(turfs ...*entity.Turf) *memTurfs {
	m := &memTurfs{turfs: make(map[uuid.UUID]*entity.Turf)}
	for _, t := range turfs {
		m.turfs[t.ID] = t
	}
	return m
}

func (m *memTurfs) Create(_ context.Context, turf *entity.Turf) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turfs[turf.ID] = turf
	return nil
}

func (m *memTurfs) FindByID(_ context.Context, id uuid.UUID) (*entity.Turf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.turfs[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (m *memTurfs) FindAll(_ context.Context) ([]*entity.Turf, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Turf
	for _, t := range m.turfs {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (m *memTurfs) Update(_ context.Context, turf *entity.Turf) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *turf
	m.turfs[turf.ID] = &c
	return nil
}

func (m *memTurfs) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turfs, id)
	return nil
}

type memBookings struct {
	mu       sync.Mutex
	bookings []*entity.Booking
	txCalls  int
}

func (m *memBookings) Create(_ context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *booking
	m.bookings = append(m.bookings, &c)
	return nil
}

func (m *memBookings) filter(keep func(*entity.Booking) bool) []*entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if keep(b) {
			c := *b
			out = append(out, &c)
		}
	}
	return out
}

func (m *memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	found := m.filter(func(b *entity.Booking) bool { return b.ID == id })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (m *memBookings) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return m.filter(func(b *entity.Booking) bool { return b.UserID == userID }), nil
}

func (m *memBookings) FindByTurfID(_ context.Context, turfID uuid.UUID) ([]*entity.Booking, error) {
	return m.filter(func(b *entity.Booking) bool { return b.TurfID == turfID }), nil
}

func (m *memBookings) FindByTurfAndDate(_ context.Context, turfID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	out := m.filter(func(b *entity.Booking) bool { return b.TurfID == turfID && b.Date.Equal(date) })
	// widen the read-check-insert window
	runtime.Gosched()
	return out, nil
}

func (m *memBookings) FindAll(_ context.Context) ([]*entity.Booking, error) {
	return m.filter(func(*entity.Booking) bool { return true }), nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			b.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memBookings) remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.bookings {
		if b.ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return
		}
	}
}

func (m *memBookings) WithSlotLock(_ context.Context, _ string, fn func(tx repository.BookingRepository) error) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	return fn(m)
}

func (m *memBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

// memPlayers and memRatings are single-goroutine stores. WithPlayerLock
// snapshots both and restores them when fn fails, as a rollback would.

type memPlayers struct {
	players   map[uuid.UUID]*entity.Player
	failStats error
}

func newMemPlayers(players ...*entity.Player) *memPlayers {
	m := &memPlayers{players: make(map[uuid.UUID]*entity.Player)}
	for _, p := range players {
		m.players[p.ID] = p
	}
	return m
}

func (m *memPlayers) Create(_ context.Context, player *entity.Player) error {
	c := *player
	m.players[player.ID] = &c
	return nil
}

func (m *memPlayers) FindByID(_ context.Context, id uuid.UUID) (*entity.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (m *memPlayers) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Player, error) {
	for _, p := range m.players {
		if p.UserID == userID {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memPlayers) Search(_ context.Context, _ repository.PlayerFilter) ([]*entity.Player, error) {
	var out []*entity.Player
	for _, p := range m.players {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (m *memPlayers) Update(_ context.Context, player *entity.Player) error {
	c := *player
	m.players[player.ID] = &c
	return nil
}

func (m *memPlayers) UpdateAvailability(_ context.Context, id uuid.UUID, availability entity.Availability, updatedAt time.Time) error {
	p, ok := m.players[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Availability = availability
	p.UpdatedAt = updatedAt
	return nil
}

func (m *memPlayers) UpdateRatingStats(_ context.Context, id uuid.UUID, rating float64, total int) error {
	if m.failStats != nil {
		return m.failStats
	}
	p, ok := m.players[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Rating = rating
	p.TotalRatings = total
	return nil
}

type memRatings struct {
	ratings []*entity.Rating
	players *memPlayers
}

func (m *memRatings) Create(_ context.Context, rating *entity.Rating) error {
	c := *rating
	m.ratings = append(m.ratings, &c)
	return nil
}

func (m *memRatings) FindByPlayerID(_ context.Context, playerID uuid.UUID) ([]*entity.Rating, error) {
	var out []*entity.Rating
	for _, r := range m.ratings {
		if r.PlayerID == playerID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memRatings) WithPlayerLock(_ context.Context, playerID uuid.UUID, fn func(repository.RatingRepository, repository.PlayerRepository) error) error {
	if _, ok := m.players.players[playerID]; !ok {
		return repository.ErrNotFound
	}

	ratings := append([]*entity.Rating(nil), m.ratings...)
	players := make(map[uuid.UUID]entity.Player, len(m.players.players))
	for id, p := range m.players.players {
		players[id] = *p
	}

	if err := fn(m, m.players); err != nil {
		m.ratings = ratings
		for id, p := range players {
			c := p
			m.players.players[id] = &c
		}
		return err
	}
	return nil
}
