package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turf-booking/internal/data/repository"
	"turf-booking/internal/wire"
	"turf-booking/pkg/database"
	"turf-booking/pkg/lock"
	"turf-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap("server")
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
				zap.String("lock_backend", config.Lock.Backend),
			)

			db, err := connect(ctx, config, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if migrateUp {
				if err := runMigrations(ctx, db, logger); err != nil {
					return err
				}
			}

			locker, closeLocker, err := newLocker(ctx, config, logger)
			if err != nil {
				return err
			}
			defer closeLocker()

			repos := repository.NewRepository(db, logger)
			app := wire.Wiring(repos, db, locker, config, logger)

			return APIServer(ctx, app.Router, config.App.Port, logger)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func runMigrations(ctx context.Context, db *database.DB, logger *zap.Logger) error {
	migrator, err := database.NewMigrator(db.Pool())
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		return err
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	logger.Info("Migrations applied", zap.Int64("version", version))
	return nil
}

// newLocker picks the admission lock. The local one only serialises within
// this process; run the redis one when more than one replica serves traffic.
func newLocker(ctx context.Context, config *utils.Config, logger *zap.Logger) (lock.Locker, func(), error) {
	if config.Lock.Backend != "redis" {
		return lock.NewKeyedMutex(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", config.Redis.Addr, err)
	}

	logger.Info("Redis lock backend connected", zap.String("addr", config.Redis.Addr))
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	return lock.NewRedisLocker(client, config.Lock.TTL, logger), closeFn, nil
}

// APIServer serves until ctx is cancelled, then drains in-flight requests.
func APIServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
