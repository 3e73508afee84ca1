package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"booktime/internal/models"
)

const cacheKey = "catalog:books"

// Source is anything that can produce the book collection. Client satisfies
// it; tests substitute their own.
type Source interface {
	Books(ctx context.Context) ([]models.Book, error)
}

// CachedSource wraps a Source with a redis-backed cache of the whole
// collection. Cache failures are logged and ignored: the upstream fetch is
// the source of truth and a broken cache must never break the book list.
type CachedSource struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSource(source Source, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{source: source, client: client, ttl: ttl, logger: logger}
}

func (c *CachedSource) Books(ctx context.Context) ([]models.Book, error) {
	if raw, err := c.client.Get(ctx, cacheKey).Result(); err == nil {
		var books []models.Book
		if jsonErr := json.Unmarshal([]byte(raw), &books); jsonErr == nil {
			return books, nil
		}
		// corrupt cache entry, fall through to the upstream
	} else if err != redis.Nil {
		c.logger.Warn("catalog cache read failed", "error", err)
	}

	books, err := c.source.Books(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(books); err == nil {
		if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", "error", err)
		}
	}
	return books, nil
}
