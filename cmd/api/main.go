package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/application/orders"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Supermercado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Supermercado-api/internal/interfaces/http"
	"github.com/jhoicas/Supermercado-api/pkg/config"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
	"github.com/jhoicas/Supermercado-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Precios y totales como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar telemetría")
	}

	be, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer be.Close()

	var (
		authOpts     []auth.Option
		loginLimiter httpRouter.Limiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		authOpts = append(authOpts, auth.WithUserCache(
			cache.NewUserCache(rdb, time.Duration(cfg.Redis.UserCacheTTLMinutes)*time.Minute)))
		loginLimiter = cache.NewRateLimiter(rdb, "ratelimit:auth:", cfg.Redis.LoginRateLimit, time.Minute)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de usuarios y rate limit activos")
	}

	authUC := auth.NewAuthUseCase(be.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, authOpts...)

	orderUC := orders.NewOrderUseCase(be.TxRunner, be.Orders, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(httpRouter.FiberConfig(cfg.App.Name))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Supermercado API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Gate:         auth.NewGate(authUC),
		ProductUC:    usecase.NewProductUseCase(be.Products, be.Providers),
		ClientUC:     usecase.NewClientUseCase(be.Clients),
		EmployeeUC:   usecase.NewEmployeeUseCase(be.Employees),
		ProviderUC:   usecase.NewProviderUseCase(be.Providers),
		OrderUC:      orderUC,
		LoginLimiter: loginLimiter,
		ServiceName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
