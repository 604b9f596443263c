package wire

import (
	"context"
	"net/http"
	"time"

	"turf-booking/internal/adaptor"
	"turf-booking/internal/data/repository"
	"turf-booking/internal/usecase"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/middleware"
	"turf-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, db Pinger, locker lock.Locker, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, locker, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, db, config, logger),
		Service: service,
	}
}

// routes carries what every feature wiring needs.
type routes struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst, 3*time.Minute)

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	rt := routes{
		auth:  middleware.Authenticate(repo.User, config.JWT.Secret, logger),
		admin: middleware.Admin(logger),
	}

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		wireUser(r, handler.User, rt)
		wireTurf(r, handler.Turf, rt)
		wireBooking(r, handler.Booking, rt)
		wireCommunity(r, handler.Community, rt)
		wireAdmin(r, handler, rt)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unreachable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
