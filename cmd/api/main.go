package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/toshitha/habithub/internal/adapters/cache"
	adapterHTTP "github.com/toshitha/habithub/internal/adapters/handler/http"
	"github.com/toshitha/habithub/internal/adapters/repository"
	"github.com/toshitha/habithub/internal/config"
	"github.com/toshitha/habithub/internal/core/domain"
	"github.com/toshitha/habithub/internal/core/services"
	"github.com/toshitha/habithub/internal/core/workers"
	"github.com/toshitha/habithub/internal/database"
	"github.com/toshitha/habithub/internal/logger"
	"github.com/toshitha/habithub/internal/metrics"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("Critical: failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("connecting to database...")

	if err := database.RunMigrations(cfg.DSN()); err != nil {
		zlog.Fatalw("database migration failed", "error", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	zlog.Info("database connected")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	logRepo := repository.NewPostgresHabitLogRepository(db)
	weeklyRepo := repository.NewPostgresWeeklyRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Warnw("redis unavailable, running without cache and rate limiting", "error", err)
		rdb = nil
	} else {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb, zlog)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	jobMetrics := metrics.NewCollector(registry)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habitRepo)
	logService := services.NewLogService(logRepo, habitRepo, zlog)
	reportService := services.NewReportService(habitRepo, logRepo, weeklyRepo, cfg.StarScheme)

	materializer := workers.NewMaterializer(userRepo, habitRepo, logRepo, jobMetrics, zlog)
	rollup := workers.NewRollupWorker(userRepo, reportService, jobMetrics, zlog)
	scheduler := workers.NewScheduler(materializer, rollup, cfg.SchedulerTick, zlog)

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Start(schedCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:   adapterHTTP.NewAuthHandler(authService),
		HabitHandler:  adapterHTTP.NewHabitHandler(habitService, logService),
		ReportHandler: adapterHTTP.NewReportHandler(reportService),
		TokenService:  tokenService,
		DB:            db,
		Redis:         rdb,
		Registry:      registry,
		Logger:        zlog,
		RateLimit:     cfg.RateLimit,
		RateWindow:    cfg.RateLimitWindow,
		StartTime:     startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Infow("HabitHub API running", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("critical server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("stop signal received, shutting down...")

	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalw("forced shutdown error", "error", err)
	}

	zlog.Info("server stopped gracefully")
}
