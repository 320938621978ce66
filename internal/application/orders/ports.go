package orders

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repos de productos y pedidos atados a ella.
// Si fn devuelve error se deshace todo (stock incluido).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}
