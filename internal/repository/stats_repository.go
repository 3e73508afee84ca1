package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"booktime/internal/models"
)

// StatsRepository persists the ReadingTime collection, one blob per identity.
// The identity is an opaque partition key; the repository never interprets it.
// Load returns an empty collection when the identity has no history.
type StatsRepository interface {
	Load(ctx context.Context, identity string) ([]models.ReadingTime, error)
	Save(ctx context.Context, identity string, stats []models.ReadingTime) error
}

// statsRedisRepository stores each collection as a single JSON value under
// reading_stats:<identity>. The whole collection is the unit of persistence:
// read entirely, written back entirely, no partial updates.
type statsRedisRepository struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &statsRedisRepository{client: client}
}

func statsKey(identity string) string {
	return fmt.Sprintf("reading_stats:%s", identity)
}

func (r *statsRedisRepository) Load(ctx context.Context, identity string) ([]models.ReadingTime, error) {
	raw, err := r.client.Get(ctx, statsKey(identity)).Result()
	if err == redis.Nil {
		return []models.ReadingTime{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return decodeStats([]byte(raw)), nil
}

func (r *statsRedisRepository) Save(ctx context.Context, identity string, stats []models.ReadingTime) error {
	if stats == nil {
		stats = []models.ReadingTime{}
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := r.client.Set(ctx, statsKey(identity), raw, 0).Err(); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// decodeStats parses a stored blob. A blob that does not parse as the
// expected shape is treated as no history rather than crashing the session:
// the store is client-adjacent and a corrupt value must fail closed.
func decodeStats(raw []byte) []models.ReadingTime {
	var stats []models.ReadingTime
	if err := json.Unmarshal(raw, &stats); err != nil {
		return []models.ReadingTime{}
	}
	if stats == nil {
		return []models.ReadingTime{}
	}
	return stats
}
