// Package mongodb implementa los puertos de persistencia sobre MongoDB (DB_DRIVER=mongodb).
// Las claves naturales (código, DNI, cédula, RUC) son el _id de cada colección.
// Los pedidos usan transacciones multi-documento, por lo que el servidor debe ser un replica set.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Supermercado-api/pkg/config"
)

// Nombres de colecciones.
const (
	colUsers     = "users"
	colProducts  = "products"
	colOrders    = "orders"
	colClients   = "clients"
	colEmployees = "employees"
	colProviders = "providers"
)

// Store conexión a MongoDB y base de datos de la aplicación.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect abre la conexión y verifica con ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{client: client, database: client.Database(cfg.Database)}, nil
}

// Database base de datos de la aplicación.
func (s *Store) Database() *mongo.Database { return s.database }

// Close cierra la conexión.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes crea los índices únicos y de consulta. Es idempotente.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	users := s.database.Collection(colUsers)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("índices de users: %w", err)
	}
	orders := s.database.Collection(colOrders)
	_, err = orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("índices de orders: %w", err)
	}
	return nil
}
