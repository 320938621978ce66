package http

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
)

// Limiter ventana de intentos por clave.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimit limita por IP de cliente. Si el limitador falla se deja pasar la petición.
func RateLimit(l Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, retry, err := l.Allow(c.UserContext(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("rate limit no disponible")
			return c.Next()
		}
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "Demasiados intentos, intenta de nuevo más tarde",
			})
		}
		return c.Next()
	}
}
