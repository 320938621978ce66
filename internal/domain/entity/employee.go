package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado, identificado por su cédula.
type Employee struct {
	Cedula    string
	Nombre    string
	Apellido  string
	Cargo     string
	Telefono  string
	Email     string
	Salario   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
