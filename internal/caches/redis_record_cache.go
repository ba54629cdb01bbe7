package caches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"query-metrics/internal/models"
)

const (
	redisRecordsPrefix    = "query-metrics:records:"
	redisGenerationPrefix = "query-metrics:generation:"
)

// redisCommander is the subset of *redis.Client the cache uses.
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type redisRecordCache struct {
	client redisCommander
	ttl    time.Duration
}

// NewRedisRecordCache stores record sets as JSON values with a TTL, so every
// service instance sharing the Redis server sees the same cache.
//
// Record keys carry the project generation, e.g.
// "query-metrics:records:sales-bot:week:3". Invalidate increments the
// generation, after which a late Set from an older generation lands on a key
// no reader looks up and simply expires.
func NewRedisRecordCache(client *redis.Client, ttl time.Duration) RecordCache {
	return &redisRecordCache{client: client, ttl: ttl}
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

func (c *redisRecordCache) Generation(ctx context.Context, project string) (int64, error) {
	generation, err := c.client.Get(ctx, redisGenerationPrefix+project).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return generation, nil
}

func (c *redisRecordCache) Get(ctx context.Context, project string, window models.ReportWindow) ([]*models.QueryRecord, bool, error) {
	generation, err := c.Generation(ctx, project)
	if err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, recordsKey(project, window, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached records: %w", err)
	}

	var records []*models.QueryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached records: %w", err)
	}
	return records, true, nil
}

func (c *redisRecordCache) Set(ctx context.Context, project string, window models.ReportWindow, generation int64, records []*models.QueryRecord) error {
	current, err := c.Generation(ctx, project)
	if err != nil {
		return err
	}
	if current != generation {
		return nil
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := c.client.Set(ctx, recordsKey(project, window, generation), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache records: %w", err)
	}
	return nil
}

func (c *redisRecordCache) Invalidate(ctx context.Context, project string) error {
	generation, err := c.client.Incr(ctx, redisGenerationPrefix+project).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cached records: %w", err)
	}

	// The previous generation is unreachable now; deleting it only frees memory early.
	keys := make([]string, 0, len(models.ReportWindows))
	for _, window := range models.ReportWindows {
		keys = append(keys, recordsKey(project, window, generation-1))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete stale cached records: %w", err)
	}
	return nil
}

func recordsKey(project string, window models.ReportWindow, generation int64) string {
	return redisRecordsPrefix + CacheKey(project, window) + ":" + strconv.FormatInt(generation, 10)
}
