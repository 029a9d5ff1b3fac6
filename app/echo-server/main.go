package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movieRecommender/app/echo-server/router"
	"movieRecommender/business/query"
	"movieRecommender/business/recommender"
	"movieRecommender/internal/middleware"
	fileRepo "movieRecommender/internal/repository/file"
	memRepo "movieRecommender/internal/repository/memory"
	"movieRecommender/internal/repository/movielens"
	redisRepo "movieRecommender/internal/repository/redis"
	"movieRecommender/internal/rest"
	"movieRecommender/pkg/config"
	"movieRecommender/pkg/database/redis"
	"movieRecommender/pkg/logger"
	"movieRecommender/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting movie recommendation service", "version", cfg.App.Version)

	metrics.Init()

	// Ingest datasets. Missing or unreadable datasets are fatal; the process
	// must not accept queries without them.
	startupCtx := context.Background()
	loader := movielens.NewLoader(cfg.Data.RatingsPath, cfg.Data.MoviesPath)

	movies, err := loader.LoadMovies(startupCtx)
	if err != nil {
		logger.Fatal("Failed to load movies dataset", "error", err)
	}

	ratings, err := loader.LoadRatings(startupCtx)
	if err != nil {
		logger.Fatal("Failed to load ratings dataset", "error", err)
	}

	// Immutable in-memory stores, built once
	catalogRepo := memRepo.NewCatalogRepository(movies)
	ratingRepo := memRepo.NewRatingRepository(ratings)

	logger.Info("Catalog built",
		"movies", catalogRepo.Count(),
		"users", ratingRepo.UserCount(),
		"ratings", ratingRepo.TotalRatings(),
	)

	// Model: load the artifact or train before serving
	modelStore := fileRepo.NewModelStore(cfg.Model.Path)
	accessor := recommender.NewModelAccessor(modelStore, loader, recommender.TrainingConfig{
		Rank:           cfg.Model.Rank,
		Iterations:     cfg.Model.Iterations,
		Regularization: cfg.Model.Regularization,
		Holdout:        cfg.Model.Holdout,
		Seed:           cfg.Model.Seed,
		Workers:        cfg.Model.Workers,
	})

	if err := accessor.Init(startupCtx, ratings); err != nil {
		logger.Fatal("Failed to initialize model", "error", err)
	}

	// Optional recommendation cache
	var cache recommender.RecommendationCache
	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redis.CloseRedisClient(client)

		cache = redisRepo.NewRecommendationCache(client)
		logger.Info("Recommendation cache enabled")
	}

	// Init service
	recommenderService := recommender.NewRecommenderService(
		accessor,
		catalogRepo,
		ratingRepo,
		cache,
		cfg.Recommend.DefaultN,
		cfg.Recommend.MaxN,
		time.Duration(cfg.Recommend.CacheTTLSecs)*time.Second,
	)
	queryService := query.NewQueryService(catalogRepo, ratingRepo, cfg.Recommend.SearchLimit)

	// Init handler
	queryHandler := rest.NewQueryHandler(queryService)
	recommendationHandler := rest.NewRecommendationHandler(recommenderService)
	adminHandler := rest.NewAdminHandler(recommenderService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupQueryRoutes(api, queryHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupAdminRoutes(api, adminHandler, middleware.AdminAuth(cfg.Admin.Token))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
