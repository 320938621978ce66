package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// Gate decide si el portador de un token puede ejecutar una operación:
// sin token → ErrUnauthenticated, token inválido → ErrInvalidToken,
// usuario inexistente → ErrUserNotFound, rol no permitido → ErrForbidden.
type Gate struct {
	resolver IdentityResolver
}

// NewGate construye el gate sobre un resolvedor de identidades.
func NewGate(resolver IdentityResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authorize resuelve la identidad del token y verifica que su rol esté en allowed.
// Un allowed vacío solo exige autenticación.
func (g *Gate) Authorize(ctx context.Context, token string, allowed ...entity.Role) (*entity.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.Errorf(domain.ErrUnauthenticated, "Acceso denegado: token no proporcionado")
	}
	user, err := g.resolver.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(allowed) > 0 && !slices.Contains(allowed, user.Role) {
		names := lo.Map(allowed, func(r entity.Role, _ int) string { return string(r) })
		return nil, domain.Errorf(domain.ErrForbidden,
			"Acceso denegado: se requiere uno de los roles [%s]", strings.Join(names, ", "))
	}
	return user, nil
}
