// Command main runs the batch recommendation pass for Cinegraph.
// It recomputes the stored recommendation set for every user and exits.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cinegraph/internal/bootstrap"
	"cinegraph/internal/config"
	"cinegraph/internal/observability"
	"cinegraph/internal/repository"
	"cinegraph/internal/service"
)

func main() {
	maxPerUser := flag.Int("max", 0, "Max recommendations per user (0 uses RECOMMEND_MAX_PER_USER)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	limit := *maxPerUser
	if limit <= 0 {
		limit = cfg.RecommendMaxPerUser
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	likeRepo := repository.NewLikeRepository(db)
	recRepo := repository.NewRecommendationRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	userRepo := repository.NewUserRepository(db)
	recService := service.NewRecommendationService(likeRepo, recRepo, filmRepo, userRepo)

	ctx := observability.WithCorrelationID(context.Background(),
		observability.GenerateCorrelationID())

	observability.LogBatchStart(ctx, "recommendation_compute", map[string]interface{}{
		"max_per_user": limit,
	})

	stats, err := recService.ComputeAll(ctx, limit)
	if err != nil {
		observability.LogBatchError(ctx, "recommendation_compute", err, nil)
		os.Exit(1)
	}

	observability.LogBatchEnd(ctx, "recommendation_compute", map[string]interface{}{
		"users_processed": stats.UsersProcessed,
		"users_failed":    stats.UsersFailed,
		"duration_ms":     stats.Duration.Milliseconds(),
	})

	if stats.UsersFailed > 0 {
		os.Exit(2)
	}
}
