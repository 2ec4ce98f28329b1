// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	_ "cinegraph/docs" // swagger docs
	"cinegraph/internal/cache"
	"cinegraph/internal/config"
	"cinegraph/internal/database"
	"cinegraph/internal/featureflags"
	"cinegraph/internal/middleware"
	"cinegraph/internal/models"
	"cinegraph/internal/repository"
	"cinegraph/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userService    *service.UserService
	filmService    *service.FilmService
	friendService  *service.FriendService
	reviewService  *service.ReviewService
	recService     *service.RecommendationService
	feedService    *service.FeedService
	catalogService *service.CatalogService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	eventRepo := repository.NewEventRepository(db)
	recRepo := repository.NewRecommendationRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// The popular-films cache ships behind a flag so it can be switched off
	// without a redeploy when Redis misbehaves.
	flags := featureflags.NewManager(cfg.FeatureFlags)
	var popularCache service.PopularCache
	if flags.Enabled("popular_cache", 0) {
		popularCache = cache.NewPopularFilmCache(redisClient,
			time.Duration(cfg.PopularCacheTTLSeconds)*time.Second)
	}

	prom := middleware.InitMetrics("cinegraph-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userService:    service.NewUserService(userRepo),
		filmService:    service.NewFilmService(filmRepo, userRepo, likeRepo, eventRepo, popularCache),
		friendService:  service.NewFriendService(friendRepo, userRepo, eventRepo),
		reviewService:  service.NewReviewService(reviewRepo, filmRepo, userRepo, eventRepo),
		recService:     service.NewRecommendationService(likeRepo, recRepo, filmRepo, userRepo),
		feedService:    service.NewFeedService(eventRepo, friendRepo, userRepo),
		catalogService: service.NewCatalogService(catalogRepo),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Cinegraph Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Film routes
	films := api.Group("/films")
	films.Post("/", s.CreateFilm)
	films.Put("/", s.UpdateFilm)
	films.Get("/", s.GetFilms)
	// Specific routes before generic /:id
	films.Get("/popular", s.GetPopularFilms)
	films.Get("/common", s.GetCommonFilms)
	films.Put("/:id/like/:userId", middleware.RateLimit(
		s.redis, 60, time.Minute, "film_like"), s.AddLike)
	films.Delete("/:id/like/:userId", s.RemoveLike)
	films.Get("/:id", s.GetFilm)
	films.Delete("/:id", s.DeleteFilm)

	// User routes
	users := api.Group("/users")
	users.Post("/", s.CreateUser)
	users.Put("/", s.UpdateUser)
	users.Get("/", s.GetUsers)
	// Specific /:id/:resource routes before generic /:id
	users.Put("/:id/friends/:friendId", middleware.RateLimit(
		s.redis, 30, time.Minute, "add_friend"), s.AddFriend)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Get("/:id/friends", s.GetFriends)
	users.Get("/:id/feed", s.GetFeed)
	users.Get("/:id/recommendations", s.GetRecommendations)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", s.DeleteUser)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_review"), s.CreateReview)
	reviews.Put("/", s.UpdateReview)
	reviews.Get("/", s.GetReviewsByFilm)
	reviews.Put("/:id/like/:userId", s.AddReviewLike)
	reviews.Put("/:id/dislike/:userId", s.AddReviewDislike)
	reviews.Delete("/:id/like/:userId", s.RemoveReviewVote)
	reviews.Delete("/:id/dislike/:userId", s.RemoveReviewVote)
	reviews.Get("/:id", s.GetReview)
	reviews.Delete("/:id", s.DeleteReview)

	// Catalog routes
	genres := api.Group("/genres")
	genres.Get("/", s.GetGenres)
	genres.Get("/:id", s.GetGenre)
	mpa := api.Group("/mpa")
	mpa.Get("/", s.GetMpaRatings)
	mpa.Get("/:id", s.GetMpaRating)

	// Batch recommendation trigger
	api.Post("/recommendations/compute", middleware.RateLimitWithPolicy(
		s.redis, 2, time.Minute, middleware.FailOpen, "compute_recommendations"), s.ComputeRecommendations)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The popular-films cache degrades to the ranking query without
		// Redis, so a missing client is reported but not unhealthy.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Cinegraph API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
