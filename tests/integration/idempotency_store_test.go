package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/clientregistry/backend/internal/infrastructure/cache"
)

func newRedisStore(t *testing.T) *cache.RedisIdempotencyStore {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	store, err := cache.NewRedisIdempotencyStore(ctx, &redis.Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisIdempotencyStore(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "POST /clients k-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.MarkProcessed(ctx, "POST /clients k-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)

	require.NoError(t, store.Release(ctx, "POST /clients k-1"))
	fresh, err = store.MarkProcessed(ctx, "POST /clients k-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh, "a released key can be claimed again")

	require.NoError(t, store.Release(ctx, "never-seen"))
}
