package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Supermercado-api/internal/application/orders"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento (sesión).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunOrder abre una sesión y ejecuta fn con WithTransaction. Los repos reciben el SessionContext
// como ctx, así cada operación forma parte de la transacción. WithTransaction reintenta fn
// ante errores transitorios (write conflicts), por lo que fn no debe tener efectos fuera de la base.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	sess, err := r.store.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongo start session: %w", err)
	}
	defer sess.EndSession(ctx)

	db := r.store.database
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, NewProductRepository(db), NewOrderRepository(db))
	})
	return err
}
