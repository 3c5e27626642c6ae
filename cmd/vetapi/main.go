package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myvet/internal/adapters/auth/jwtauth"
	"myvet/internal/adapters/auth/remote"
	lockadapter "myvet/internal/adapters/lock"
	pg "myvet/internal/adapters/storage/postgres"
	"myvet/internal/backend"
	"myvet/internal/config"
	"myvet/internal/middleware"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/lock"
	"myvet/internal/router"
)

// @title        MyVet API
// @version      1.0
// @description  Pets, medical records, appointments and veterinarians for the MyVet app.
// @BasePath     /v1
func main() {
	cfg, err := config.LoadServer()
	log := logger.NewFromEnv()
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{Logger: log, Slots: backend.SlotConfig{
		Minutes:   cfg.SlotMinutes,
		OpenHour:  cfg.ClinicOpenHour,
		CloseHour: cfg.ClinicCloseHour,
	}}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err})
			os.Exit(1)
		}
		defer db.Close()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("schema setup failed", map[string]any{"error": err})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Info("storage: memory", nil)
	}

	var locker lock.Locker
	if cfg.RedisAddr != "" {
		rdb, err := lockadapter.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Error("redis connect failed", map[string]any{"error": err, "addr": cfg.RedisAddr})
			os.Exit(1)
		}
		defer rdb.Close()
		locker = lockadapter.NewRedis(rdb, cfg.LockTTL)
		log.Info("booking lock: redis", map[string]any{"addr": cfg.RedisAddr})
	}
	opts.Locker = locker

	switch {
	case cfg.JWTSecret != "":
		opts.AuthVerifier = jwtauth.New(cfg.JWTSecret, cfg.TokenTTL)
	case cfg.AuthVerifyURL != "":
		opts.AuthVerifier = remote.New(remote.Config{
			BaseURL: cfg.AuthVerifyURL,
			APIKey:  cfg.AuthAPIKey,
			Logger:  log,
		})
		log.Info("auth: identity service", map[string]any{"url": cfg.AuthVerifyURL})
	default:
		log.Warn("JWT_SECRET not set: dev auth via "+middleware.DebugUserHeader, nil)
	}

	if cfg.RateLimitRPS > 0 {
		opts.RateLimiter = middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	svc := router.NewService(opts)
	opts.Service = svc

	if cfg.SeedCount > 0 {
		res, err := backend.Seed(ctx, svc, backend.SeedOptions{
			Owners:     cfg.SeedCount,
			Seed:       uint64(cfg.SeedCount),
			DemoUserID: os.Getenv("SEED_DEMO_USER_ID"),
		})
		if err != nil {
			log.Error("seed failed", map[string]any{"error": err})
			os.Exit(1)
		}
		log.Info("seeded", map[string]any{"users": res.UserIDs})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", map[string]any{"error": err})
		}
	}
}
