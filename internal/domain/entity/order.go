package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

// Estados de un pedido. Los cambios hechos por administrador/empleado son permisivos
// (cualquier estado a cualquier estado); el cliente solo puede pasar de pendiente a cancelado.
const (
	OrderStatusPendiente  OrderStatus = "pendiente"
	OrderStatusProcesando OrderStatus = "procesando"
	OrderStatusCompletado OrderStatus = "completado"
	OrderStatusCancelado  OrderStatus = "cancelado"
)

// ParseOrderStatus convierte un string en OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPendiente, OrderStatusProcesando, OrderStatusCompletado, OrderStatusCancelado:
		return st, nil
	default:
		return "", fmt.Errorf("estado de pedido desconocido %q", s)
	}
}

// OrderItem línea de un pedido. Nombre y precio son una foto del producto al momento del pedido.
type OrderItem struct {
	ProductCode string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewOrderItem construye la línea calculando Subtotal = UnitPrice * Quantity.
func NewOrderItem(p *Product, quantity int) OrderItem {
	return OrderItem{
		ProductCode: p.Code,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		Subtotal:    p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// DeliveryInfo datos de entrega del pedido.
type DeliveryInfo struct {
	Address string
	Phone   string
	Notes   string
}

// Order pedido de un cliente. Total == Σ Items[i].Subtotal.
type Order struct {
	ID        string
	UserID    string
	Items     []OrderItem
	Total     decimal.Decimal
	Status    OrderStatus
	Delivery  DeliveryInfo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotal suma los subtotales de las líneas.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// OwnedBy indica si el pedido pertenece al usuario.
func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

// VisibleTo aplica la regla de acceso: staff ve cualquier pedido, el cliente solo los suyos.
func (o *Order) VisibleTo(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role.IsStaff() || o.OwnedBy(u.ID)
}
