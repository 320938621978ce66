package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada: código de producto y cantidad.
type OrderItemRequest struct {
	Producto string `json:"producto"`
	Cantidad int    `json:"cantidad"`
}

// DeliveryRequest datos de entrega.
type DeliveryRequest struct {
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Notas     string `json:"notas"`
}

// CreateOrderRequest entrada de POST /pedidos.
type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	DatosEntrega DeliveryRequest    `json:"datosEntrega"`
}

// Normalize recorta espacios y pasa los códigos a mayúsculas.
func (r *CreateOrderRequest) Normalize() {
	for i := range r.Items {
		r.Items[i].Producto = strings.ToUpper(trim(r.Items[i].Producto))
	}
	r.DatosEntrega.Direccion = trim(r.DatosEntrega.Direccion)
	r.DatosEntrega.Telefono = trim(r.DatosEntrega.Telefono)
	r.DatosEntrega.Notas = trim(r.DatosEntrega.Notas)
}

// UpdateOrderStatusRequest entrada de PUT /pedidos/:id/estado.
type UpdateOrderStatusRequest struct {
	Estado string `json:"estado"`
}

// OrderItemResponse línea de pedido con foto de nombre y precio.
type OrderItemResponse struct {
	Producto       string          `json:"producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// DeliveryResponse datos de entrega en la salida.
type DeliveryResponse struct {
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Notas     string `json:"notas"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string              `json:"id"`
	Usuario      string              `json:"usuario"`
	Items        []OrderItemResponse `json:"items"`
	Total        decimal.Decimal     `json:"total"`
	Estado       string              `json:"estado"`
	DatosEntrega DeliveryResponse    `json:"datosEntrega"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// OrderEnvelope respuesta {msg, pedido} de las operaciones de escritura.
type OrderEnvelope struct {
	Msg    string         `json:"msg"`
	Pedido *OrderResponse `json:"pedido"`
}
