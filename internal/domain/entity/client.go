package entity

import "time"

// Client representa un cliente del supermercado, identificado por su DNI (cédula ecuatoriana).
type Client struct {
	DNI       string
	Nombre    string
	Apellido  string
	Direccion string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
