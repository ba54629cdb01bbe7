package app

import (
	"context"
	"fmt"
	"time"

	"query-metrics/internal/caches"
	"query-metrics/internal/shared/configs"
	"query-metrics/internal/shared/filestorages"
	"query-metrics/internal/stores"
)

const (
	backendFile   = "file"
	backendSQLite = "sqlite"
	backendMemory = "memory"
	backendRedis  = "redis"
)

func noopClose() error { return nil }

// OpenRecordStore builds the query record store selected by record_store.backend.
// The returned func releases the backend connection.
func OpenRecordStore(ctx context.Context, config *configs.Config) (stores.QueryRecordStore, func() error, error) {
	switch config.RecordStore.Backend {
	case backendSQLite:
		db, err := stores.OpenSQLite(ctx, config.RecordStore.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite record store: %w", err)
		}
		return stores.NewSQLiteQueryRecordStore(db), db.Close, nil
	case backendFile:
		fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return stores.NewFileQueryRecordStore(fileStorage), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unsupported record store backend %q", config.RecordStore.Backend)
	}
}

// OpenRecordCache builds the record cache selected by cache.backend.
func OpenRecordCache(ctx context.Context, config *configs.Config) (caches.RecordCache, func() error, error) {
	ttl := time.Duration(config.Cache.TTLSeconds) * time.Second

	switch config.Cache.Backend {
	case backendRedis:
		client, err := caches.NewRedisClient(ctx, config.Cache.RedisAddr, config.Cache.RedisPassword, config.Cache.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		return caches.NewRedisRecordCache(client, ttl), client.Close, nil
	case backendMemory:
		return caches.NewMemoryRecordCache(ttl), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", config.Cache.Backend)
	}
}
