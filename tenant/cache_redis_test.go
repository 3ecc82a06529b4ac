package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/tenant"
)

func redisTestCache(t *testing.T) (tenant.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return tenant.NewRedisCache(client, ""), mr
}

func TestRedisCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round-trips tenant records", func(t *testing.T) {
		t.Parallel()

		cache, _ := redisTestCache(t)
		want := createTestTenant("acme", true)
		cache.Set(ctx, "acme", want, time.Minute)

		got, ok := cache.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Subdomain, got.Subdomain)
		assert.True(t, got.Active)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()

		cache, _ := redisTestCache(t)
		_, ok := cache.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		t.Parallel()

		cache, mr := redisTestCache(t)
		cache.Set(ctx, "acme", createTestTenant("acme", true), time.Second)

		mr.FastForward(2 * time.Second)

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		t.Parallel()

		cache, _ := redisTestCache(t)
		cache.Set(ctx, "acme", createTestTenant("acme", true), time.Minute)
		cache.Delete(ctx, "acme")

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("treats corrupt entries as misses and drops them", func(t *testing.T) {
		t.Parallel()

		cache, mr := redisTestCache(t)
		require.NoError(t, mr.Set(tenant.DefaultRedisKeyPrefix+"acme", "{not json"))

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
		assert.False(t, mr.Exists(tenant.DefaultRedisKeyPrefix+"acme"))
	})

	t.Run("redis outage degrades to misses", func(t *testing.T) {
		t.Parallel()

		cache, mr := redisTestCache(t)
		cache.Set(ctx, "acme", createTestTenant("acme", true), time.Minute)
		mr.Close()

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("custom key prefix", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		cache := tenant.NewRedisCache(client, "org:")
		cache.Set(ctx, "acme", createTestTenant("acme", true), time.Minute)

		assert.True(t, mr.Exists("org:acme"))
	})
}
