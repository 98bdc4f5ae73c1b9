package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"simpeg_backend/internal/app/di"
	"simpeg_backend/internal/app/router"
	authadapters "simpeg_backend/internal/feature/auth/adapters"
	authhandler "simpeg_backend/internal/feature/auth/transport/handler"
	authusecase "simpeg_backend/internal/feature/auth/usecase"
	employeehandler "simpeg_backend/internal/feature/employee/transport/handler"
	employeeusecase "simpeg_backend/internal/feature/employee/usecase"
	"simpeg_backend/internal/platform/config"
	platformdb "simpeg_backend/internal/platform/db"
	platformhandler "simpeg_backend/internal/platform/http/handler"
	jwtmw "simpeg_backend/internal/platform/jwt"
	platformredis "simpeg_backend/internal/platform/redis"
	"simpeg_backend/internal/shared/ratelimiter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// JWT_SECRETがないとトークンを発行も検証もできない
	if cfg.JWTSecret == "" {
		return errors.New(config.EnvKeyJWTSecret + " is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg := platformdb.LoadConfigFromEnv()
	if cfg.RunMigrations {
		if err := platformdb.Migrate(platformdb.MigrateUp, cfg.MigrationsDir, platformdb.BuildDSN(dbCfg)); err != nil {
			return err
		}
		slog.Info("migrations applied", "dir", cfg.MigrationsDir)
	}
	db, err := platformdb.OpenDB(dbCfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()
	checks := []platformhandler.Check{{Name: "database", Ping: sqlDB.PingContext}}

	// Redis
	var rdb *redisv9.Client
	if redisCfg := platformredis.LoadConfigFromEnv(); redisCfg.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			checks = append(checks, platformhandler.Check{
				Name: "redis",
				Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			})
		}
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	employeeRepo := di.NewEmployeeRepository(db, rdb, cfg.UnitOptionsTTL)

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	loginThrottle := ratelimiter.NewRateLimiter(cfg.LoginMaxAttempts, cfg.LoginLockout)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen, loginThrottle)
	employeeUC := employeeusecase.NewEmployeeUsecase(employeeRepo, nil)

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Auth:           authhandler.NewAuthHandler(authUC),
		Employees:      employeehandler.NewEmployeeHandler(employeeUC),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		HealthChecks:   checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
