package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate obtiene el pedido bloqueándolo dentro de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// UpdateStatus cambia el estado y updated_at. domain.ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, order *entity.Order) error
}
