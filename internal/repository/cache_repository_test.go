package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

func TestCacheRepositoryMemoryRoundTrip(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "stats:summary", map[string]int{"exams": 3}, time.Minute))

	var out map[string]int
	require.NoError(t, repo.Get(ctx, "stats:summary", &out))
	assert.Equal(t, 3, out["exams"])
}

func TestCacheRepositoryMemoryExpiry(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "run:1", "done", time.Minute))
	now = now.Add(2 * time.Minute)

	var out string
	err := repo.Get(ctx, "run:1", &out)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryMemoryDeleteByPattern(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "stats:summary", 1, 0))
	require.NoError(t, repo.Set(ctx, "timetable:run:1", 2, 0))
	require.NoError(t, repo.DeleteByPattern(ctx, "stats:*"))

	var out int
	assert.ErrorIs(t, repo.Get(ctx, "stats:summary", &out), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Get(ctx, "timetable:run:1", &out))
	assert.Equal(t, 2, out)
}
