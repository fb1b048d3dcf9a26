package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/healthlens/healthlens-api/internal/domain/providers"
)

// ProviderCache is a read-through cache in front of the provider catalog.
// Cache trouble never surfaces to the caller; every miss or Redis error falls
// back to the wrapped repository.
type ProviderCache struct {
	inner providers.Repository
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewProviderCache(inner providers.Repository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ProviderCache {
	return &ProviderCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *ProviderCache) FindBySpecialty(ctx context.Context, specialty string, limit int) ([]providers.Provider, error) {
	key := fmt.Sprintf("providers:%s:%d", specialty, limit)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var list []providers.Provider
		if jsonErr := json.Unmarshal([]byte(cached), &list); jsonErr == nil {
			return list, nil
		}
		c.log.Warn().Str("key", key).Msg("dropping undecodable provider cache entry")
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Str("key", key).Msg("provider cache read failed")
	}

	list, err := c.inner.FindBySpecialty(ctx, specialty, limit)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(list); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("key", key).Msg("provider cache write failed")
		}
	}
	return list, nil
}
