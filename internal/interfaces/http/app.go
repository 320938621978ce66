package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// FiberConfig configuración común de la app. Immutable copia params y headers fuera del buffer
// de fasthttp: los ids de ruta viajan a spans que se exportan después de la petición.
func FiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler,
	}
}
