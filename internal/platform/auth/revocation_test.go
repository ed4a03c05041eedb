package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndIsRevoked(t *testing.T) {
	store := NewMemoryRevocationStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "token-abc-123", "user-1", time.Now().Add(time.Hour)))

	revoked, err := store.IsRevoked(ctx, "token-abc-123")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func entryCount(s *MemoryRevocationStore) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func TestMemoryStore_CleanupRemovesExpired(t *testing.T) {
	store := NewMemoryRevocationStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	_ = store.Revoke(ctx, "expired-jti", "user-1", time.Now().Add(-time.Second))
	_ = store.Revoke(ctx, "active-jti", "user-2", time.Now().Add(time.Hour))
	require.Equal(t, 2, entryCount(store))

	store.cleanup()

	assert.Equal(t, 1, entryCount(store))
	revoked, _ := store.IsRevoked(ctx, "expired-jti")
	assert.False(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "active-jti")
	assert.True(t, revoked)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryRevocationStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	const goroutines = 100
	wg.Add(goroutines * 2)
	for i := 0; i < goroutines; i++ {
		jti := fmt.Sprintf("jti-%d", i)
		go func() {
			defer wg.Done()
			_ = store.Revoke(ctx, jti, "", time.Now().Add(time.Hour))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.IsRevoked(ctx, jti)
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, entryCount(store))
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryRevocationStore(time.Minute)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	require.NoError(t, store.Revoke(context.Background(), "after-close", "", time.Now().Add(time.Hour)))
	revoked, _ := store.IsRevoked(context.Background(), "after-close")
	assert.True(t, revoked)
}

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisRevocationStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisRevocationStore(client)
}

func TestRedisStore_RevokeSetsTTL(t *testing.T) {
	mr, store := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1", "user-42", time.Now().Add(30*time.Minute)))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL(revokedKeyPrefix + "jti-1")
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute, "unexpected ttl %s", ttl)

	val, err := mr.Get(revokedKeyPrefix + "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-42", val)
}

func TestRedisStore_ExpiresWithToken(t *testing.T) {
	mr, store := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-2", "", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisStore_AlreadyExpiredIsNoop(t *testing.T) {
	mr, store := setupRedisStore(t)

	require.NoError(t, store.Revoke(context.Background(), "old", "", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(revokedKeyPrefix+"old"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, store := setupRedisStore(t)
	mr.Close()

	_, err := store.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "::not a url")
	assert.Error(t, err)
}
