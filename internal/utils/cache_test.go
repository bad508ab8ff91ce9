package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, ttl), mr
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*Cache{nil, NewCache(nil, time.Minute)} {
		assert.False(t, c.Enabled())
		require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}))
		var out map[string]int
		found, err := c.Get(ctx, "k", &out)
		require.NoError(t, err)
		assert.False(t, found)
		require.NoError(t, c.DeleteNamespace(ctx, "k"))
	}
	assert.Equal(t, "ledger:user:ana", LedgerKey("ana"))
	assert.Equal(t, "ledger:user:ana:tx:main", LedgerEntry("ana", "tx", "main"))
}

func TestCacheRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)
	require.True(t, c.Enabled())

	key := LedgerEntry("ana", "summary")
	var out map[string]int
	found, err := c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, map[string]int{"balance": 150}))
	found, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 150, out["balance"])
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	found, err = c.Get(ctx, key, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteNamespaceKeepsSimilarUsers(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	for _, k := range []string{
		LedgerEntry("ann", "summary"),
		LedgerEntry("ann", "tx", "main", "page", "1"),
		LedgerEntry("anna", "summary"),
	} {
		require.NoError(t, c.Set(ctx, k, 1))
	}

	require.NoError(t, c.DeleteNamespace(ctx, LedgerKey("ann")))
	assert.False(t, mr.Exists(LedgerEntry("ann", "summary")))
	assert.False(t, mr.Exists(LedgerEntry("ann", "tx", "main", "page", "1")))
	assert.True(t, mr.Exists(LedgerEntry("anna", "summary")))

	require.NoError(t, c.DeleteNamespace(ctx, LedgerKey("nobody")))
}
