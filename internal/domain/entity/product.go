package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del supermercado, identificado por su código (clave natural).
// Stock nunca es negativo; solo lo modifican la creación y cancelación de pedidos
// además de las actualizaciones manuales.
type Product struct {
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ProviderRUC string // referencia débil a Provider (opcional)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
