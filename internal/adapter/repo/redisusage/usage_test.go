package redisusage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return repo, mr
}

func TestIncrementAndCount(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.Increment(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.Increment(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.Count(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestCount_MissingKeyIsZero(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.Count(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestIncrement_SetsTTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Increment(ctx, "bob")
	require.NoError(t, err)

	key := fmt.Sprintf("usage:bob:%s", time.Now().UTC().Format("2006-01"))
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	// Subsequent increments keep the original TTL.
	mr.SetTTL(key, time.Hour)
	_, err = repo.Increment(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL(key))
}

func TestMonthIsolation(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	fixed := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	_, err := repo.Increment(ctx, "carol")
	require.NoError(t, err)

	repo.now = func() time.Time { return fixed.AddDate(0, 1, 0) }
	got, err := repo.Count(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, got, "new month starts a fresh counter")
}
