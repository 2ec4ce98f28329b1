package bootstrap

import (
	"fmt"

	"cinegraph/internal/cache"
	"cinegraph/internal/config"
	"cinegraph/internal/database"
	"cinegraph/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedCatalogs bool
}

// InitRuntime connects to DB and Redis and optionally asserts the built-in
// genre and MPA rating catalogs.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedCatalogs {
		if err := seed.Catalogs(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed built-in catalogs: %w", err)
		}
	}

	return db, r, nil
}
