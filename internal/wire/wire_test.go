package wire

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"turf-booking/internal/data/entity"
	"turf-booking/internal/data/repository"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// userStore satisfies only what the auth middleware touches.
type userStore struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s userStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:       utils.JWTConfig{Secret: "wire-secret"},
		RateLimit: utils.RateLimitConfig{RPS: 100, Burst: 100},
	}
}

func newTestApp(db pinger, users ...*entity.User) *App {
	store := userStore{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		store.users[u.ID] = u
	}
	repo := &repository.Repository{User: store}
	return Wiring(repo, db, lock.NewKeyedMutex(), testConfig(), zap.NewNop())
}

func tokenFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": id.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("wire-secret"))
	require.NoError(t, err)
	return token
}

func serve(app *App, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec.Code
}

func TestHealth(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(newTestApp(pinger{}), http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusServiceUnavailable,
		serve(newTestApp(pinger{err: errors.New("down")}), http.MethodGet, "/health", ""))
}

func TestMetricsEndpoint(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(newTestApp(pinger{}), http.MethodGet, "/metrics", ""))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(pinger{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings"},
		{http.MethodPut, "/api/bookings/" + uuid.NewString() + "/cancel"},
		{http.MethodPost, "/api/turfs"},
		{http.MethodPost, "/api/community/players"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/admin/users"},
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(app, tc.method, tc.path, ""), "%s %s", tc.method, tc.path)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleUser}
	app := newTestApp(pinger{}, user)

	assert.Equal(t, http.StatusForbidden, serve(app, http.MethodGet, "/api/admin/bookings", tokenFor(t, user.ID)))
	assert.Equal(t, http.StatusUnauthorized, serve(app, http.MethodGet, "/api/admin/bookings", tokenFor(t, uuid.New())))
}

func TestMalformedPathID(t *testing.T) {
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleUser}
	app := newTestApp(pinger{}, user)

	assert.Equal(t, http.StatusBadRequest, serve(app, http.MethodGet, "/api/turfs/not-a-uuid", ""))
	assert.Equal(t, http.StatusBadRequest, serve(app, http.MethodPut, "/api/bookings/42/cancel", tokenFor(t, user.ID)))
}

func TestUnknownRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(newTestApp(pinger{}), http.MethodGet, "/api/nothing-here", ""))
}
