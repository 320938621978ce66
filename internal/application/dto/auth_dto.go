package dto

import "strings"

// RegisterRequest entrada para registro: username, password, email y rol opcional (por defecto cliente).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Role     string `json:"role"`
}

// Normalize recorta espacios (el password se conserva tal cual).
func (r *RegisterRequest) Normalize() {
	r.Username = trim(r.Username)
	r.Email = strings.ToLower(trim(r.Email))
	r.Role = trim(r.Role)
}

// RegisterResponse salida del registro.
type RegisterResponse struct {
	Msg string `json:"msg"`
	Rol string `json:"rol"`
}

// LoginRequest entrada para login por username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary datos públicos del usuario autenticado.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func trim(s string) string { return strings.TrimSpace(s) }
