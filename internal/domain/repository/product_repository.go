package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetByCodeForUpdate obtiene el producto bloqueando su fila/documento dentro de la transacción en curso.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Update persiste nombre, descripción, precio y proveedor. No toca el stock.
	Update(ctx context.Context, product *entity.Product) error
	// SetStock fija el stock de forma explícita (edición de inventario). domain.ErrNotFound si no existe.
	SetStock(ctx context.Context, code string, stock int) error
	// AdjustStock suma delta al stock de forma atómica. Devuelve domain.ErrInsufficientStock
	// si el resultado quedaría negativo y domain.ErrNotFound si el producto no existe.
	AdjustStock(ctx context.Context, code string, delta int) error
	Delete(ctx context.Context, code string) error
}
