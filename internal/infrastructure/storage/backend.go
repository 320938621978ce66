// Package storage abre el backend de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"time"

	"github.com/jhoicas/Supermercado-api/internal/application/orders"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Supermercado-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Supermercado-api/pkg/config"
	"github.com/jhoicas/Supermercado-api/pkg/logger"
)

// Backend repositorios y runner transaccional del driver elegido.
type Backend struct {
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Clients   repository.ClientRepository
	Employees repository.EmployeeRepository
	Providers repository.ProviderRepository
	TxRunner  orders.TxRunner

	close func()
}

// Close libera las conexiones.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open conecta con PostgreSQL (aplicando el esquema si DB_AUTO_MIGRATE) o con MongoDB (creando índices).
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	if cfg.DB.Driver == config.DriverMongo {
		return openMongo(ctx, cfg.Mongo, log)
	}
	return openPostgres(ctx, cfg.DB, log)
}

func openPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema PostgreSQL aplicado")
	}
	return &Backend{
		Users:     postgres.NewUserRepository(pool),
		Products:  postgres.NewProductRepository(pool),
		Orders:    postgres.NewOrderRepository(pool),
		Clients:   postgres.NewClientRepository(pool),
		Employees: postgres.NewEmployeeRepository(pool),
		Providers: postgres.NewProviderRepository(pool),
		TxRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*Backend, error) {
	store, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	db := store.Database()
	log.Info().Str("database", cfg.Database).Msg("MongoDB conectado")
	return &Backend{
		Users:     mongodb.NewUserRepository(db),
		Products:  mongodb.NewProductRepository(db),
		Orders:    mongodb.NewOrderRepository(db),
		Clients:   mongodb.NewClientRepository(db),
		Employees: mongodb.NewEmployeeRepository(db),
		Providers: mongodb.NewProviderRepository(db),
		TxRunner:  mongodb.NewTxRunner(store),
		close: func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		},
	}, nil
}
