package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// execQuerier registra las sentencias ejecutadas y devuelve err en Exec.
type execQuerier struct {
	err   error
	execs []string
}

func (q *execQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, q.err
}

func (q *execQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (q *execQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (q *execQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func TestMigrate_AplicaEsquemaEmbebido(t *testing.T) {
	q := &execQuerier{}
	require.NoError(t, Migrate(context.Background(), q))
	require.Len(t, q.execs, 1)

	for _, table := range []string{"users", "providers", "products", "clients", "employees", "orders", "order_items"} {
		assert.Contains(t, q.execs[0], "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, q.execs[0], "CHECK (stock >= 0)")
}

func TestMigrate_PropagaError(t *testing.T) {
	q := &execQuerier{err: errors.New("conexión cerrada")}
	err := Migrate(context.Background(), q)
	assert.ErrorContains(t, err, "aplicar esquema")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("23514")), "solo errores de Postgres")
}

func TestProductCreate_DuplicadoMapeaErrDuplicate(t *testing.T) {
	repo := NewProductRepository(&execQuerier{err: &pgconn.PgError{Code: "23505"}})
	err := repo.Create(context.Background(), &entity.Product{Code: "ABC123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	repo = NewProductRepository(&execQuerier{err: errors.New("timeout")})
	err = repo.Create(context.Background(), &entity.Product{Code: "ABC123"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

// stockQuerier simula el resultado del UPDATE condicionado y del SELECT EXISTS posterior.
type stockQuerier struct {
	execQuerier
	tag    string
	exists bool
	rows   []string
}

func (q *stockQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.NewCommandTag(q.tag), q.err
}

func (q *stockQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.rows = append(q.rows, sql)
	return existsRow(q.exists)
}

type existsRow bool

func (r existsRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = bool(r)
	return nil
}

func TestAdjustStock_ActualizaConCondicion(t *testing.T) {
	q := &stockQuerier{tag: "UPDATE 1"}
	require.NoError(t, NewProductRepository(q).AdjustStock(context.Background(), "ABC123", -3))

	require.Len(t, q.execs, 1)
	assert.Contains(t, q.execs[0], "stock + $2 >= 0", "el UPDATE no deja stock negativo")
	assert.Empty(t, q.rows, "sin filas afectadas no hace falta consultar existencia")
}

func TestAdjustStock_DistingueInexistenteDeInsuficiente(t *testing.T) {
	ctx := context.Background()

	q := &stockQuerier{tag: "UPDATE 0", exists: true}
	assert.ErrorIs(t, NewProductRepository(q).AdjustStock(ctx, "ABC123", -50), domain.ErrInsufficientStock)
	require.Len(t, q.rows, 1)
	assert.Contains(t, q.rows[0], "EXISTS")

	q = &stockQuerier{tag: "UPDATE 0", exists: false}
	assert.ErrorIs(t, NewProductRepository(q).AdjustStock(ctx, "NOP1", -1), domain.ErrNotFound)

	q = &stockQuerier{execQuerier: execQuerier{err: &pgconn.PgError{Code: "23514"}}}
	assert.ErrorIs(t, NewProductRepository(q).AdjustStock(ctx, "ABC123", -1), domain.ErrInsufficientStock)
}

func TestProductUpdate_NoEscribeStock(t *testing.T) {
	q := &stockQuerier{tag: "UPDATE 1"}
	err := NewProductRepository(q).Update(context.Background(), &entity.Product{Code: "ABC123", Name: "Arroz", Stock: 99})
	require.NoError(t, err)
	require.Len(t, q.execs, 1)
	assert.NotContains(t, q.execs[0], "stock")
}

func TestSetStock(t *testing.T) {
	ctx := context.Background()

	q := &stockQuerier{tag: "UPDATE 1"}
	require.NoError(t, NewProductRepository(q).SetStock(ctx, "ABC123", 25))
	assert.Contains(t, q.execs[0], "SET stock = $2")

	q = &stockQuerier{tag: "UPDATE 0"}
	assert.ErrorIs(t, NewProductRepository(q).SetStock(ctx, "NOP1", 25), domain.ErrNotFound)

	q = &stockQuerier{execQuerier: execQuerier{err: &pgconn.PgError{Code: "23514"}}}
	assert.ErrorIs(t, NewProductRepository(q).SetStock(ctx, "ABC123", -1), domain.ErrInsufficientStock)
}
