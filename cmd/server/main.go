package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/contestlet/contestlet/internal/clock"
	"github.com/contestlet/contestlet/internal/config"
	"github.com/contestlet/contestlet/internal/db"
	"github.com/contestlet/contestlet/internal/handlers"
	"github.com/contestlet/contestlet/internal/logger"
	"github.com/contestlet/contestlet/internal/ratelimit"
	"github.com/contestlet/contestlet/internal/repository"
	"github.com/contestlet/contestlet/internal/service"
	"github.com/contestlet/contestlet/internal/sms"
)

func main() {
	// 1. Load configuration and logging
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel)
	log.Info().Msg("configuration loaded")

	// 2. Initialize database connection
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// 3. OTP challenge and rate-limit state: Redis when configured,
	// in-process otherwise
	clk := clock.New()
	var challenges repository.ChallengeStore
	var limitStore ratelimit.Store
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		challenges = repository.NewRedisChallengeStore(rdb)
		limitStore = ratelimit.NewRedisStore(rdb)
	} else {
		log.Warn().Msg("REDIS_URL not set, using in-memory OTP state")
		challenges = repository.NewMemoryChallengeStore()
		limitStore = ratelimit.NewMemoryStore(clk)
	}

	// 4. Initialize layers
	limiter := ratelimit.NewLimiter(limitStore, cfg.OTPRateLimit, cfg.OTPRateWindow())

	contestRepo := repository.NewContestRepository(pool)
	entryRepo := repository.NewEntryRepository(pool)

	authService := service.NewAuthService(
		challenges, limiter, sms.NewLogSender(), clk,
		cfg.JWTSecret, cfg.OTPExpiry(), cfg.OTPMaxAttempts,
	)
	contestService := service.NewContestService(
		contestRepo, entryRepo, clk, cfg.DefaultRadiusMiles, service.CryptoPicker,
	)

	// 5. Setup Gin router
	router := gin.Default()

	handlers.NewHealthHandler().RegisterRoutes(router)
	handlers.NewAuthHandler(authService).RegisterRoutes(router)
	handlers.NewContestHandler(contestService, cfg.JWTSecret).RegisterRoutes(router)
	handlers.NewAdminHandler(contestService, cfg.AdminToken).RegisterRoutes(router)

	// 6. Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
