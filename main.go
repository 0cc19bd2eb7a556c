package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corkphoto/itinerary-backend/config"
	"github.com/corkphoto/itinerary-backend/db"
	"github.com/corkphoto/itinerary-backend/handlers"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/middleware"
	"github.com/corkphoto/itinerary-backend/models/itinerary"
	itineraryservice "github.com/corkphoto/itinerary-backend/models/itinerary/service"
	locationservice "github.com/corkphoto/itinerary-backend/models/location/service"
	"github.com/corkphoto/itinerary-backend/router"
	"github.com/corkphoto/itinerary-backend/services"
	"github.com/corkphoto/itinerary-backend/store/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := config.ConfigurePostgresPool(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to configure database pool: %v", err)
	}
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(config.ConfigureRedisOptions(&cfg.Redis))
	defer func() { _ = redisClient.Close() }()
	if err := config.TestRedisConnection(ctx, redisClient, 3, 2*time.Second); err != nil {
		// Only rate limiting depends on redis, and the limiter fails open.
		log.Warnw("Redis unavailable at startup, continuing without rate limiting guarantees", "error", err)
	}

	jwtValidator, err := middleware.NewJWTValidator(cfg.Server.JwtSecretKey)
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}

	itineraryStore := postgres.NewItineraryStore(pool, postgres.WithNormalizeObserver(itineraryservice.ObserveNormalization))
	locationStore := postgres.NewLocationStore(pool)

	itinerarySvc := itineraryservice.NewItineraryService(itineraryStore, locationStore, itinerary.NewSampler(nil), cfg.Itinerary)
	catalogSvc := locationservice.NewCatalogService(locationStore)
	healthSvc := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		JWTValidator:     jwtValidator,
		ItineraryHandler: handlers.NewItineraryHandler(itinerarySvc),
		LocationHandler:  handlers.NewLocationHandler(catalogSvc),
		HealthHandler:    handlers.NewHealthHandler(healthSvc),
		RateLimiter: middleware.MutationRateLimiter(
			redisClient,
			cfg.RateLimit.MutationsPerMinute,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment, "version", cfg.Server.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
	log.Info("Server exited")
}
