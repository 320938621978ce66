package dto

import (
	"strings"
	"time"
)

// ClientRequest entrada para crear un cliente.
type ClientRequest struct {
	DNI       string `json:"dni" validate:"required,cedula_ec"`
	Nombre    string `json:"nombre" validate:"required,max=100"`
	Apellido  string `json:"apellido" validate:"required,max=100"`
	Direccion string `json:"direccion" validate:"required,max=200"`
	Telefono  string `json:"telefono" validate:"omitempty,phone_ec"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
}

// Normalize recorta espacios.
func (r *ClientRequest) Normalize() {
	r.DNI = trim(r.DNI)
	r.Nombre = trim(r.Nombre)
	r.Apellido = trim(r.Apellido)
	r.Direccion = trim(r.Direccion)
	r.Telefono = trim(r.Telefono)
	r.Email = strings.ToLower(trim(r.Email))
}

// UpdateClientRequest actualización parcial (el DNI no se modifica).
type UpdateClientRequest struct {
	Nombre    *string `json:"nombre"`
	Apellido  *string `json:"apellido"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
}

// ApplyTo copia sobre base los campos enviados.
func (r UpdateClientRequest) ApplyTo(base *ClientRequest) {
	if v := trimPtr(r.Nombre); v != nil {
		base.Nombre = *v
	}
	if v := trimPtr(r.Apellido); v != nil {
		base.Apellido = *v
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
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	DNI       string    `json:"dni"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
