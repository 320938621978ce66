package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

var _ auth.UserCache = (*UserCache)(nil)

const userKeyPrefix = "user:"

// cachedUser lo que se guarda en Redis: nunca el hash del password.
type cachedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCache caché cache-aside de identidades con TTL.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache construye la caché.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

// Get devuelve (nil, nil) si no hay entrada.
func (c *UserCache) Get(ctx context.Context, userID string) (*entity.User, error) {
	raw, err := c.client.Get(ctx, userKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user cache get: %w", err)
	}
	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &entity.User{
		ID:        cu.ID,
		Username:  cu.Username,
		Email:     cu.Email,
		Role:      entity.Role(cu.Role),
		CreatedAt: cu.CreatedAt,
	}, nil
}

// Set guarda el usuario con el TTL configurado.
func (c *UserCache) Set(ctx context.Context, u *entity.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err := c.client.Set(ctx, userKeyPrefix+u.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}
	return nil
}
