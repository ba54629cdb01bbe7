package caches

import (
	"context"
	"sync"
	"time"

	"query-metrics/internal/models"
)

type memoryEntry struct {
	records   []*models.QueryRecord
	expiresAt time.Time
}

type memoryRecordCache struct {
	mu          sync.Mutex
	entries     map[string]memoryEntry
	generations map[string]int64
	ttl         time.Duration
	now         func() time.Time
}

// NewMemoryRecordCache returns a process-local cache whose entries expire ttl after being set.
func NewMemoryRecordCache(ttl time.Duration) RecordCache {
	return newMemoryRecordCache(ttl, time.Now)
}

func newMemoryRecordCache(ttl time.Duration, now func() time.Time) *memoryRecordCache {
	return &memoryRecordCache{
		entries:     make(map[string]memoryEntry),
		generations: make(map[string]int64),
		ttl:         ttl,
		now:         now,
	}
}

func (c *memoryRecordCache) Generation(_ context.Context, project string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[project], nil
}

func (c *memoryRecordCache) Get(_ context.Context, project string, window models.ReportWindow) ([]*models.QueryRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := CacheKey(project, window)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.records, true, nil
}

func (c *memoryRecordCache) Set(_ context.Context, project string, window models.ReportWindow, generation int64, records []*models.QueryRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// invalidated while the caller was fetching
	if c.generations[project] != generation {
		return nil
	}
	c.entries[CacheKey(project, window)] = memoryEntry{records: records, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *memoryRecordCache) Invalidate(_ context.Context, project string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[project]++
	for _, key := range projectKeys(project) {
		delete(c.entries, key)
	}
	return nil
}
