// seed carga el usuario administrador, proveedores y productos iniciales.
// Los registros que ya existen se omiten, así que puede ejecutarse varias veces.
//
// Uso: go run ./cmd/seed [seed/catalogo.yaml]
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/storage"
	"github.com/jhoicas/Supermercado-api/pkg/config"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

func main() {
	path := "seed/catalogo.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	cat, err := loadCatalog(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("leer catálogo")
	}

	ctx := context.Background()
	be, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer be.Close()

	authUC := auth.NewAuthUseCase(be.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	_, err = authUC.Register(ctx, dto.RegisterRequest{
		Username: cat.Admin.Username,
		Password: cat.Admin.Password,
		Email:    cat.Admin.Email,
		Role:     string(entity.RoleAdministrador),
	})
	report(log, "admin", cat.Admin.Username, err)

	providerUC := usecase.NewProviderUseCase(be.Providers)
	for _, p := range cat.Providers {
		_, err := providerUC.Create(ctx, p)
		report(log, "proveedor", p.RUC, err)
	}

	productUC := usecase.NewProductUseCase(be.Products, be.Providers)
	for _, p := range cat.Products {
		in, err := p.request()
		if err == nil {
			_, err = productUC.Create(ctx, in)
		}
		report(log, "producto", p.Code, err)
	}

	log.Info().Msg("seed completado")
}

func report(log *logger.Logger, kind, key string, err error) {
	switch {
	case err == nil:
		log.Info().Str("tipo", kind).Str("clave", key).Msg("creado")
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("tipo", kind).Str("clave", key).Msg("ya existe, se omite")
	default:
		log.Error().Err(err).Str("tipo", kind).Str("clave", key).Msg(domain.Message(err))
	}
}
