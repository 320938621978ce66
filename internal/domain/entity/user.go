package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role es el rol de un usuario. Conjunto cerrado: administrador, empleado, cliente.
type Role string

// Roles válidos para User.
const (
	RoleAdministrador Role = "administrador"
	RoleEmpleado      Role = "empleado"
	RoleCliente       Role = "cliente"
)

// Roles devuelve todos los roles válidos en orden estable.
func Roles() []Role {
	return []Role{RoleAdministrador, RoleEmpleado, RoleCliente}
}

// ParseRole convierte un string en Role. Devuelve error para valores desconocidos.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdministrador, RoleEmpleado, RoleCliente:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido %q", s)
	}
}

// Valid indica si r es uno de los roles definidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrador, RoleEmpleado, RoleCliente:
		return true
	}
	return false
}

// IsStaff es true para administrador y empleado (roles que gestionan pedidos de cualquier cliente).
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdministrador, RoleEmpleado:
		return true
	case RoleCliente:
		return false
	}
	return false
}

// User representa un usuario del sistema. Inmutable una vez creado.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
}
