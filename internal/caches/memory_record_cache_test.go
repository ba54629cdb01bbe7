package caches

import (
	"context"
	"sync"
	"testing"
	"time"

	"query-metrics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testRecords() []*models.QueryRecord {
	return []*models.QueryRecord{
		{UserID: "u-1", Status: models.StatusSuccess, Timestamp: time.Date(2025, 12, 28, 18, 3, 12, 0, time.UTC)},
		{UserID: "u-2", Status: models.StatusFailure, Timestamp: time.Date(2025, 12, 28, 18, 4, 0, 0, time.UTC)},
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sales-bot:week", CacheKey("sales-bot", models.WindowWeek))
	assert.Equal(t, []string{"sales-bot:day", "sales-bot:week", "sales-bot:month"}, projectKeys("sales-bot"))
}

func TestMemoryRecordCache_GetSet(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)}
	cache := newMemoryRecordCache(5*time.Minute, clock.Now)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "sales-bot", models.WindowWeek)
	require.NoError(t, err)
	assert.False(t, found)

	generation, err := cache.Generation(ctx, "sales-bot")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "sales-bot", models.WindowWeek, generation, testRecords()))

	records, found, err := cache.Get(ctx, "sales-bot", models.WindowWeek)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testRecords(), records)
}

func TestMemoryRecordCache_EmptyRecordSetIsAHit(t *testing.T) {
	t.Parallel()

	cache := NewMemoryRecordCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sales-bot", models.WindowDay, 0, []*models.QueryRecord{}))

	records, found, err := cache.Get(ctx, "sales-bot", models.WindowDay)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, records)
}

func TestMemoryRecordCache_Expiry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected bool
	}{
		{name: "before ttl", elapsed: 5*time.Minute - time.Nanosecond, expected: true},
		{name: "at ttl", elapsed: 5 * time.Minute, expected: false},
		{name: "after ttl", elapsed: time.Hour, expected: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := &fakeClock{now: time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)}
			cache := newMemoryRecordCache(5*time.Minute, clock.Now)
			ctx := context.Background()

			require.NoError(t, cache.Set(ctx, "sales-bot", models.WindowWeek, 0, testRecords()))
			clock.Advance(tt.elapsed)

			_, found, err := cache.Get(ctx, "sales-bot", models.WindowWeek)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, found)
		})
	}
}

func TestMemoryRecordCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache := NewMemoryRecordCache(time.Hour)
	ctx := context.Background()

	for _, window := range models.ReportWindows {
		require.NoError(t, cache.Set(ctx, "sales-bot", window, 0, testRecords()))
		require.NoError(t, cache.Set(ctx, "other-bot", window, 0, testRecords()))
	}

	require.NoError(t, cache.Invalidate(ctx, "sales-bot"))

	for _, window := range models.ReportWindows {
		_, found, err := cache.Get(ctx, "sales-bot", window)
		require.NoError(t, err)
		assert.False(t, found, "sales-bot %s should be invalidated", window)

		_, found, err = cache.Get(ctx, "other-bot", window)
		require.NoError(t, err)
		assert.True(t, found, "other-bot %s should be kept", window)
	}

	generation, err := cache.Generation(ctx, "sales-bot")
	require.NoError(t, err)
	assert.Equal(t, int64(1), generation)

	generation, err = cache.Generation(ctx, "other-bot")
	require.NoError(t, err)
	assert.Equal(t, int64(0), generation)
}

func TestMemoryRecordCache_SetAfterInvalidateIsDropped(t *testing.T) {
	t.Parallel()

	cache := NewMemoryRecordCache(time.Hour)
	ctx := context.Background()

	generation, err := cache.Generation(ctx, "sales-bot")
	require.NoError(t, err)

	// a batch is ingested while the reader is still fetching
	require.NoError(t, cache.Invalidate(ctx, "sales-bot"))
	require.NoError(t, cache.Set(ctx, "sales-bot", models.WindowWeek, generation, testRecords()))

	_, found, err := cache.Get(ctx, "sales-bot", models.WindowWeek)
	require.NoError(t, err)
	assert.False(t, found, "pre-ingest records must not be cached")

	current, err := cache.Generation(ctx, "sales-bot")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "sales-bot", models.WindowWeek, current, testRecords()))

	_, found, err = cache.Get(ctx, "sales-bot", models.WindowWeek)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryRecordCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := NewMemoryRecordCache(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				generation, _ := cache.Generation(ctx, "sales-bot")
				_ = cache.Set(ctx, "sales-bot", models.WindowWeek, generation, testRecords())
				_, _, _ = cache.Get(ctx, "sales-bot", models.WindowWeek)
				_ = cache.Invalidate(ctx, "sales-bot")
			}
		}()
	}
	wg.Wait()
}
