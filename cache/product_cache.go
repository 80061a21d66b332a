package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vegholic-api/models"
)

// ProductCache holds product listings keyed by category. An empty
// category is the full catalog. Cache failures are never fatal: a failed
// Get is a miss and a failed Set is dropped.
type ProductCache interface {
	Get(ctx context.Context, category string) ([]models.Product, bool)
	Set(ctx context.Context, category string, products []models.Product)
	Invalidate(ctx context.Context)
}

// Key is the cache key for a category listing.
func Key(category string) string {
	if category == "" {
		return "products:all"
	}
	return "products:" + category
}

func allKeys() []string {
	keys := []string{Key("")}
	for _, c := range models.Categories {
		keys = append(keys, Key(c))
	}
	return keys
}

type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisProductCache) Get(ctx context.Context, category string) ([]models.Product, bool) {
	raw, err := c.client.Get(ctx, Key(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("product cache read failed", zap.String("key", Key(category)), zap.Error(err))
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("product cache entry corrupt", zap.String("key", Key(category)), zap.Error(err))
		return nil, false
	}
	return products, true
}

func (c *RedisProductCache) Set(ctx context.Context, category string, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("product cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, Key(category), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.String("key", Key(category)), zap.Error(err))
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, allKeys()...).Err(); err != nil {
		c.logger.Warn("product cache invalidate failed", zap.Error(err))
	}
}

// NoopCache never holds anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]models.Product, bool) { return nil, false }
func (NoopCache) Set(context.Context, string, []models.Product)        {}
func (NoopCache) Invalidate(context.Context)                           {}
