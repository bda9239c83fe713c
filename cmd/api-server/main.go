package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"moviehub/database"
	"moviehub/internal/cache"
	"moviehub/internal/config"
	"moviehub/internal/http-api/handler"
	"moviehub/internal/http-api/middleware"
	"moviehub/internal/http-api/repository"
	"moviehub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// cache is optional: a nil MovieCache is a no-op
	var movieCache *cache.MovieCache
	if cfg.RedisURL != "" {
		movieCache, err = cache.NewMovieCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer movieCache.Close()
		logger.Info("movie cache enabled", "ttl", cfg.CacheTTL)
	}

	// repositories
	movieRepo := repository.NewMovieRepo(db)
	relationRepo := repository.NewRelationRepository(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	movieService := service.NewMovieService(movieRepo, movieCache, logger)
	ratingService := service.NewRatingService(relationRepo, movieRepo)
	relationService := service.NewRelationService(relationRepo, movieRepo, ratingService, movieCache, logger)

	// handlers
	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService)
	relationHandler := handler.NewRelationHandler(relationService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(limiter.Middleware())
	r.Use(middleware.Authenticate(authService))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	movieHandler.RegisterRoutes(api.Group("/movies"))
	relationHandler.RegisterRoutes(api.Group("/relations"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
