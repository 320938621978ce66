package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/cache"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// ──── UserCache ──────────────────────────────────────────────────────────────

func TestUserCache_MissYHit(t *testing.T) {
	mr, client := setupRedis(t)
	c := cache.NewUserCache(client, 30*time.Minute)
	ctx := context.Background()

	u, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, u, "sin entrada devuelve nil")

	require.NoError(t, c.Set(ctx, &entity.User{ID: "u-1", Username: "ana", Email: "a@a.com", PasswordHash: "secreto", Role: entity.RoleEmpleado}))

	u, err = c.Get(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, entity.RoleEmpleado, u.Role)
	assert.Empty(t, u.PasswordHash, "el hash no se cachea")

	raw, err := mr.Get("user:u-1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "secreto")
}

func TestUserCache_Expira(t *testing.T) {
	mr, client := setupRedis(t)
	c := cache.NewUserCache(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, &entity.User{ID: "u-1", Role: entity.RoleCliente}))

	mr.FastForward(2 * time.Minute)

	u, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

// ──── RateLimiter ────────────────────────────────────────────────────────────

func TestRateLimiter_BloqueaAlSuperarLimite(t *testing.T) {
	_, client := setupRedis(t)
	l := cache.NewRateLimiter(client, "login:", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "intento %d", i+1)
	}
	ok, retry, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))

	ok, _, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "cada IP tiene su propia ventana")
}

func TestRateLimiter_VentanaSeReinicia(t *testing.T) {
	mr, client := setupRedis(t)
	l := cache.NewRateLimiter(client, "login:", 1, time.Minute)
	ctx := context.Background()

	ok, _, _ := l.Allow(ctx, "ip")
	assert.True(t, ok)
	ok, _, _ = l.Allow(ctx, "ip")
	assert.False(t, ok)

	mr.FastForward(61 * time.Second)

	ok, _, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_ClaveSinExpiracionSeRecupera(t *testing.T) {
	mr, client := setupRedis(t)
	l := cache.NewRateLimiter(client, "login:", 1, time.Minute)
	ctx := context.Background()

	// Contador que quedó sin TTL (EXPIRE perdido).
	require.NoError(t, mr.Set("login:1.2.3.4", "5"))

	ok, retry, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)
	assert.Greater(t, mr.TTL("login:1.2.3.4"), time.Duration(0), "se vuelve a fijar la expiración")

	mr.FastForward(61 * time.Second)

	ok, _, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "la IP no queda bloqueada para siempre")
}
