package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// ProviderRepository define el puerto de persistencia para Provider (clave natural: RUC).
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByRUC(ctx context.Context, ruc string) (*entity.Provider, error)
	List(ctx context.Context) ([]*entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, ruc string) error
}
