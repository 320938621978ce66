package dto

import (
	"strings"
	"time"
)

// ProviderRequest entrada para crear un proveedor.
type ProviderRequest struct {
	RUC       string `json:"ruc" validate:"required,ruc"`
	Nombre    string `json:"nombre" validate:"required,max=100"`
	Direccion string `json:"direccion" validate:"required,max=200"`
	Telefono  string `json:"telefono" validate:"omitempty,phone_ec"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Contacto  string `json:"contacto" validate:"max=100"`
}

// Normalize recorta espacios.
func (r *ProviderRequest) Normalize() {
	r.RUC = trim(r.RUC)
	r.Nombre = trim(r.Nombre)
	r.Direccion = trim(r.Direccion)
	r.Telefono = trim(r.Telefono)
	r.Email = strings.ToLower(trim(r.Email))
	r.Contacto = trim(r.Contacto)
}

// UpdateProviderRequest actualización parcial (el RUC no se modifica).
type UpdateProviderRequest struct {
	Nombre    *string `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Contacto  *string `json:"contacto"`
}

// ApplyTo copia sobre base los campos enviados.
func (r UpdateProviderRequest) ApplyTo(base *ProviderRequest) {
	if v := trimPtr(r.Nombre); v != nil {
		base.Nombre = *v
	}
	if v := trimPtr(r.Direccion); v != nil {
		base.Direccion = *v
	}
	if v := trimPtr(r.Telefono); v != nil {
		base.Telefono = *v
	}
	if v := trimPtr(r.Email); v != nil {
		base.Email = strings.ToLower(*v)
	}
	if v := trimPtr(r.Contacto); v != nil {
		base.Contacto = *v
	}
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	RUC       string    `json:"ruc"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Contacto  string    `json:"contacto"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
