package auth

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// UserCache caché de identidades usada por el gate para no consultar la base en cada petición.
// Get devuelve (nil, nil) si no hay entrada. Las entradas no incluyen el hash del password.
type UserCache interface {
	Get(ctx context.Context, userID string) (*entity.User, error)
	Set(ctx context.Context, user *entity.User) error
}

// IdentityResolver resuelve el usuario dueño de un bearer token.
type IdentityResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
}
