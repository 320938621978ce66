package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// LocalUser clave en c.Locals del usuario resuelto por el gate.
const LocalUser = "user"

// Authorizer puerto del gate de autorización.
type Authorizer interface {
	Authorize(ctx context.Context, token string, allowed ...entity.Role) (*entity.User, error)
}

// Authorize exige un Bearer token válido y, si se indican roles, que el usuario tenga uno de ellos.
// El rol se lee del usuario persistido en cada petición, no del token.
func Authorize(gate Authorizer, roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := gate.Authorize(c.UserContext(), bearerToken(c), roles...)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// bearerToken extrae el token de "Authorization: Bearer <token>".
// Un header con otro esquema se devuelve tal cual y el gate lo rechaza como token inválido.
func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return h
	}
	return strings.TrimSpace(token)
}

// GetUser devuelve el usuario autenticado (después de Authorize).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
