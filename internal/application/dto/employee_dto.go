package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRequest entrada para crear un empleado.
type EmployeeRequest struct {
	Cedula   string          `json:"cedula" validate:"required,cedula_ec"`
	Nombre   string          `json:"nombre" validate:"required,max=100"`
	Apellido string          `json:"apellido" validate:"required,max=100"`
	Cargo    string          `json:"cargo" validate:"required,max=60"`
	Telefono string          `json:"telefono" validate:"omitempty,phone_ec"`
	Email    string          `json:"email" validate:"omitempty,email,max=100"`
	Salario  decimal.Decimal `json:"salario" validate:"gt=0"`
}

// Normalize recorta espacios.
func (r *EmployeeRequest) Normalize() {
	r.Cedula = trim(r.Cedula)
	r.Nombre = trim(r.Nombre)
	r.Apellido = trim(r.Apellido)
	r.Cargo = trim(r.Cargo)
	r.Telefono = trim(r.Telefono)
	r.Email = strings.ToLower(trim(r.Email))
}

// UpdateEmployeeRequest actualización parcial (la cédula no se modifica).
type UpdateEmployeeRequest struct {
	Nombre   *string          `json:"nombre"`
	Apellido *string          `json:"apellido"`
	Cargo    *string          `json:"cargo"`
	Telefono *string          `json:"telefono"`
	Email    *string          `json:"email"`
	Salario  *decimal.Decimal `json:"salario"`
}

// ApplyTo copia sobre base los campos enviados.
func (r UpdateEmployeeRequest) ApplyTo(base *EmployeeRequest) {
	if v := trimPtr(r.Nombre); v != nil {
		base.Nombre = *v
	}
	if v := trimPtr(r.Apellido); v != nil {
		base.Apellido = *v
	}
	if v := trimPtr(r.Cargo); v != nil {
		base.Cargo = *v
	}
	if v := trimPtr(r.Telefono); v != nil {
		base.Telefono = *v
	}
	if v := trimPtr(r.Email); v != nil {
		base.Email = strings.ToLower(*v)
	}
	if r.Salario != nil {
		base.Salario = *r.Salario
	}
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	Cedula    string          `json:"cedula"`
	Nombre    string          `json:"nombre"`
	Apellido  string          `json:"apellido"`
	Cargo     string          `json:"cargo"`
	Telefono  string          `json:"telefono"`
	Email     string          `json:"email"`
	Salario   decimal.Decimal `json:"salario"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
