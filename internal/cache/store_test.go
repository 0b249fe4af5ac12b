package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSoup struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func newStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, New(rdb)
}

func TestStore_Aside(t *testing.T) {
	mr, store := newStore(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedSoup) func() error {
		return func() error {
			calls++
			*dest = cachedSoup{ID: 1, Content: "hot"}
			return nil
		}
	}

	var first cachedSoup
	require.NoError(t, store.Aside(ctx, SoupKey(1), FamilySoup, &first, SoupTTL, fetch(&first)))
	assert.Equal(t, "hot", first.Content)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("soup:1"))

	var second cachedSoup
	require.NoError(t, store.Aside(ctx, SoupKey(1), FamilySoup, &second, SoupTTL, fetch(&second)))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read must be served from cache")

	store.Invalidate(ctx, SoupKey(1))
	assert.False(t, mr.Exists("soup:1"))
}

func TestStore_AsideFetchErrorNotCached(t *testing.T) {
	mr, store := newStore(t)
	boom := errors.New("boom")

	var dest cachedSoup
	err := store.Aside(context.Background(), SoupKey(2), FamilySoup, &dest, SoupTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("soup:2"))
}

func TestStore_TTL(t *testing.T) {
	mr, store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, SoupStarsKey(3), int64(4), SoupStarsTTL))
	mr.FastForward(SoupStarsTTL + time.Second)

	var n int64
	found, err := store.GetJSON(ctx, SoupStarsKey(3), &n)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_NilIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, store := range []*Store{nil, New(nil)} {
		found, err := store.GetJSON(ctx, "k", &struct{}{})
		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, store.SetJSON(ctx, "k", 1, time.Minute))
		store.Invalidate(ctx, "k")
		assert.NoError(t, store.Ping(ctx))

		calls := 0
		var n int
		require.NoError(t, store.Aside(ctx, "k", "f", &n, time.Minute, func() error { calls++; n = 7; return nil }))
		assert.Equal(t, 1, calls)
		assert.Equal(t, 7, n)
	}
}

func TestStore_RedisDownFallsBackToFetch(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	store := New(rdb)

	var n int
	err := store.Aside(context.Background(), "k", "f", &n, time.Minute, func() error { n = 3; return nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "soup:12", SoupKey(12))
	assert.Equal(t, "soup:12:stars", SoupStarsKey(12))
}
