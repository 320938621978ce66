package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get*/Find* devuelven (nil, nil) si no existe el usuario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// FindByUsernameOrEmail busca en una sola consulta un usuario que coincida en username o email.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
}
