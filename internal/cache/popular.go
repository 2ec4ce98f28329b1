package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinegraph/internal/models"
	"cinegraph/internal/observability"
	"cinegraph/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	popularVersionKey = "popular:version"
	popularKeyPrefix  = "popular:v%d:limit%d:genre%d:year%d"
)

// DefaultPopularTTL bounds staleness when an invalidation is missed.
const DefaultPopularTTL = 5 * time.Minute

// PopularFilmCache caches ranked popular-film lists in Redis. Invalidation
// bumps a version counter instead of scanning keys, so every cached variant
// (any limit/filter combination) expires at once after a like write.
type PopularFilmCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPopularFilmCache returns a PopularFilmCache over the given client.
// A nil client yields a cache that always misses.
func NewPopularFilmCache(client *redis.Client, ttl time.Duration) *PopularFilmCache {
	if ttl <= 0 {
		ttl = DefaultPopularTTL
	}
	return &PopularFilmCache{client: client, ttl: ttl}
}

func (p *PopularFilmCache) key(ctx context.Context, limit int, filter repository.PopularFilter) (string, error) {
	version, err := p.client.Get(ctx, popularVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf(popularKeyPrefix, version, limit, filter.GenreID, filter.Year), nil
}

// Get returns a cached ranking for the limit/filter pair. Backend failures
// are reported as misses; the caller falls back to the ranking query.
func (p *PopularFilmCache) Get(ctx context.Context, limit int, filter repository.PopularFilter) ([]models.Film, bool) {
	if p == nil || p.client == nil {
		return nil, false
	}

	key, err := p.key(ctx, limit, filter)
	if err != nil {
		observability.PopularCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	}

	payload, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		observability.PopularCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	}

	var films []models.Film
	if err := json.Unmarshal(payload, &films); err != nil {
		observability.PopularCacheRequests.WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.PopularCacheRequests.WithLabelValues("hit").Inc()
	return films, true
}

// Set stores a ranking. Failures are silently dropped; the cache is an
// optimization, not a source of truth.
func (p *PopularFilmCache) Set(ctx context.Context, limit int, filter repository.PopularFilter, films []models.Film) {
	if p == nil || p.client == nil {
		return
	}

	key, err := p.key(ctx, limit, filter)
	if err != nil {
		return
	}
	payload, err := json.Marshal(films)
	if err != nil {
		return
	}
	p.client.Set(ctx, key, payload, p.ttl)
}

// Invalidate expires every cached ranking by bumping the version counter.
func (p *PopularFilmCache) Invalidate(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}
	p.client.Incr(ctx, popularVersionKey)
}
