package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	lrucache "github.com/jwalitptl/scheduler-api/internal/cache/lru"
	memorycache "github.com/jwalitptl/scheduler-api/internal/cache/memory"
	rediscache "github.com/jwalitptl/scheduler-api/internal/cache/redis"
	"github.com/jwalitptl/scheduler-api/internal/config"
	availabilityHandler "github.com/jwalitptl/scheduler-api/internal/handler/availability"
	healthHandler "github.com/jwalitptl/scheduler-api/internal/handler/health"
	slotHandler "github.com/jwalitptl/scheduler-api/internal/handler/slot"
	"github.com/jwalitptl/scheduler-api/internal/middleware"
	"github.com/jwalitptl/scheduler-api/internal/repository/postgres"
	"github.com/jwalitptl/scheduler-api/internal/router"
	"github.com/jwalitptl/scheduler-api/internal/service/schedule"
	slotService "github.com/jwalitptl/scheduler-api/internal/service/slot"
	"github.com/jwalitptl/scheduler-api/pkg/logger"
	"github.com/jwalitptl/scheduler-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	}).WithComponent("scheduler-api")
	zlog := *appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	templateRepo := postgres.NewTemplateSlotRepository(db)
	overrideRepo := postgres.NewOverrideSlotRepository(db)
	blockedRepo := postgres.NewBlockedSlotRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	providerRepo := postgres.NewProviderRepository(db)

	slotCache, redisClient, err := buildCache(cfg, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize slot cache")
	}

	m := metrics.NewMetrics("scheduler", "api")

	loader := schedule.NewWeeklyLoader(templateRepo, overrideRepo, blockedRepo, providerRepo, slotCache, m, zlog)
	projector := schedule.NewProjector(reservationRepo, providerRepo)
	invalidator := schedule.NewInvalidator(slotCache, m, zlog)
	scheduleSvc := schedule.NewService(loader, projector, m, zlog)
	slotSvc := slotService.NewService(templateRepo, overrideRepo, blockedRepo, providerRepo, invalidator)

	r := router.NewRouter(
		healthHandler.NewHandler(db, redisClient),
		availabilityHandler.NewHandler(scheduleSvc),
		slotHandler.NewHandler(slotSvc),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "scheduler_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		zlog.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	zlog.Info().Msg("server exited properly")
}

// buildCache picks the configured SlotCache backend. The redis client is
// returned separately so the readiness probe can ping it.
func buildCache(cfg *config.Config, logger *zerolog.Logger) (cache.SlotCache, *goredis.Client, error) {
	switch cfg.Cache.Backend {
	case "redis":
		c, err := rediscache.New(rediscache.Config{
			URL:          cfg.Redis.URL,
			TTL:          cfg.Cache.TTL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Client(), nil
	case "lru":
		c, err := lrucache.New(cfg.Cache.LRUSize)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case "memory":
		return memorycache.New(cfg.Cache.TTL), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
