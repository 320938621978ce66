package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Supermercado-api/internal/application/orders"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     AuthService
	Gate       Authorizer
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.ClientUseCase
	EmployeeUC *usecase.EmployeeUseCase
	ProviderUC *usecase.ProviderUseCase
	OrderUC    *orders.OrderUseCase
	// LoginLimiter opcional (Redis). nil desactiva el rate limit de auth.
	LoginLimiter Limiter
	ServiceName  string
}

// Router registra las rutas de la API y el 404 final.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	staff := []entity.Role{entity.RoleAdministrador, entity.RoleEmpleado}
	adminOnly := Authorize(deps.Gate, entity.RoleAdministrador)
	staffOnly := Authorize(deps.Gate, staff...)
	clienteOnly := Authorize(deps.Gate, entity.RoleCliente)
	anyUser := Authorize(deps.Gate)

	// Auth (público)
	authGroup := api.Group("/auth")
	if deps.LoginLimiter != nil {
		authGroup.Use(RateLimit(deps.LoginLimiter))
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: lectura pública, escritura admin/empleado
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Post("/", staffOnly, productHandler.Create)
	products.Put("/:code", staffOnly, productHandler.Update)
	products.Delete("/:code", staffOnly, productHandler.Delete)

	// El gate va por ruta y no en el grupo: una ruta inexistente responde 404 aunque no haya token.
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", staffOnly, clientHandler.List)
	clients.Post("/", staffOnly, clientHandler.Create)
	clients.Get("/:dni", staffOnly, clientHandler.Get)
	clients.Put("/:dni", staffOnly, clientHandler.Update)
	clients.Delete("/:dni", staffOnly, clientHandler.Delete)

	employees := api.Group("/empleados")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", adminOnly, employeeHandler.List)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Get("/:cedula", adminOnly, employeeHandler.Get)
	employees.Put("/:cedula", adminOnly, employeeHandler.Update)
	employees.Delete("/:cedula", adminOnly, employeeHandler.Delete)

	providers := api.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Get("/", staffOnly, providerHandler.List)
	providers.Post("/", staffOnly, providerHandler.Create)
	providers.Get("/:id", staffOnly, providerHandler.Get)
	providers.Put("/:id", staffOnly, providerHandler.Update)
	providers.Delete("/:id", staffOnly, providerHandler.Delete)

	// Pedidos: /mis-pedidos se registra antes que /:id
	pedidos := api.Group("/pedidos")
	orderHandler := NewOrderHandler(deps.OrderUC)
	pedidos.Post("/", clienteOnly, orderHandler.Create)
	pedidos.Get("/mis-pedidos", clienteOnly, orderHandler.ListMine)
	pedidos.Get("/", staffOnly, orderHandler.ListAll)
	pedidos.Get("/:id", anyUser, orderHandler.Get)
	pedidos.Get("/:id/comprobante", anyUser, orderHandler.Receipt)
	pedidos.Put("/:id/estado", staffOnly, orderHandler.SetStatus)
	pedidos.Put("/:id/cancelar", clienteOnly, orderHandler.Cancel)

	app.Use(NotFound)
}
