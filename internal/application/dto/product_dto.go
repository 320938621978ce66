package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,product_code"`
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=300"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Provider    string          `json:"provider" validate:"omitempty,ruc"`
}

// Normalize recorta espacios y pasa el código a mayúsculas.
func (r *CreateProductRequest) Normalize() {
	r.Code = strings.ToUpper(trim(r.Code))
	r.Name = trim(r.Name)
	r.Description = trim(r.Description)
	r.Provider = trim(r.Provider)
}

// UpdateProductRequest actualización parcial: nil = no enviado, "" = limpiar (solo campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Provider    *string          `json:"provider"`
}

// ApplyTo copia sobre base los campos enviados (recortados).
func (r UpdateProductRequest) ApplyTo(base *CreateProductRequest) {
	if v := trimPtr(r.Name); v != nil {
		base.Name = *v
	}
	if v := trimPtr(r.Description); v != nil {
		base.Description = *v
	}
	if r.Price != nil {
		base.Price = *r.Price
	}
	if r.Stock != nil {
		base.Stock = *r.Stock
	}
	if v := trimPtr(r.Provider); v != nil {
		base.Provider = *v
	}
}

// ProductResponse salida de un producto. Los opcionales ausentes salen como "".
type ProductResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Provider    string          `json:"provider"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListRequest filtros del listado público.
type ProductListRequest struct {
	PageRequest
	Query string `query:"q"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
