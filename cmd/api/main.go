package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/addresskit/internal/cache"
	"github.com/GTDGit/addresskit/internal/config"
	"github.com/GTDGit/addresskit/internal/handler"
	"github.com/GTDGit/addresskit/internal/middleware"
	"github.com/GTDGit/addresskit/pkg/addresskit"
)

const version = "1.0.0"

// main is the entrypoint for the AddressKit territory gateway.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("upstream", cfg.AddressKit.BaseURL).Msg("starting addresskit gateway")

	// 3. Initialize AddressKit client
	client := addresskit.NewClient(addresskit.Config{
		BaseURL: cfg.AddressKit.BaseURL,
		Timeout: cfg.AddressKit.Timeout,
		Headers: cfg.AddressKit.Headers(),
		Debug:   cfg.AddressKit.Debug,
	})

	// 4. Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Rate limiter (Redis when reachable, in-process otherwise)
	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable - falling back to in-memory rate limiter")
			memLimiter := middleware.NewMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
			go memLimiter.RunCleanup(ctx, 5*time.Minute)
			limiter = memLimiter
		} else {
			defer redisClient.Close()
			log.Info().Msg("redis connected successfully")
			limiter = cache.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(client, version),
		Territory: handler.NewTerritoryHandler(client),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	if limiter != nil {
		router.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimit.Window))
	}
	setupRoutes(router, handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Territory *handler.TerritoryHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	handler.RegisterTerritoryRoutes(router.Group("/v1/territory"), handlers.Territory)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
