package entity

import "time"

// Provider representa un proveedor, identificado por su RUC.
type Provider struct {
	RUC       string
	Nombre    string
	Direccion string
	Telefono  string
	Email     string
	Contacto  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
