package orders_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/orders"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/testutil/memstore"
)

var (
	cliente  = &entity.User{ID: "cli-1", Username: "ana", Role: entity.RoleCliente}
	otro     = &entity.User{ID: "cli-2", Username: "luis", Role: entity.RoleCliente}
	empleado = &entity.User{ID: "emp-1", Username: "eva", Role: entity.RoleEmpleado}
)

type fakeReceipt struct{}

func (fakeReceipt) GenerateOrderReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	return []byte("%PDF-" + o.ID), nil
}

func setup(t *testing.T) (*orders.OrderUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	now := time.Now()
	for _, p := range []entity.Product{
		{Code: "ABC123", Name: "Arroz", Price: decimal.RequireFromString("2.50"), Stock: 10, CreatedAt: now, UpdatedAt: now},
		{Code: "LEC1", Name: "Leche", Price: decimal.RequireFromString("0.95"), Stock: 3, CreatedAt: now, UpdatedAt: now},
	} {
		p := p
		require.NoError(t, store.Products().Create(ctx, &p))
	}
	return orders.NewOrderUseCase(store, store.Orders(), fakeReceipt{}), store
}

func stockOf(t *testing.T, store *memstore.Store, code string) int {
	t.Helper()
	p, err := store.Products().GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func pedido(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Items:        items,
		DatosEntrega: dto.DeliveryRequest{Direccion: "Av. Siempre Viva 742", Telefono: "0991234567"},
	}
}

func item(code string, qty int) dto.OrderItemRequest {
	return dto.OrderItemRequest{Producto: code, Cantidad: qty}
}

// ──── Create ─────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYCalculaTotal(t *testing.T) {
	uc, store := setup(t)

	out, err := uc.Create(context.Background(), cliente.ID, pedido(item("ABC123", 3), item("lec1", 2)))
	require.NoError(t, err)

	assert.Equal(t, "pendiente", out.Estado)
	assert.Equal(t, cliente.ID, out.Usuario)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Arroz", out.Items[0].Nombre)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, "LEC1", out.Items[1].Producto, "el código se normaliza a mayúsculas")
	assert.True(t, out.Items[1].Subtotal.Equal(decimal.RequireFromString("1.90")))
	assert.True(t, out.Total.Equal(decimal.RequireFromString("9.40")), "total = suma de subtotales, got %s", out.Total)

	assert.Equal(t, 7, stockOf(t, store, "ABC123"))
	assert.Equal(t, 1, stockOf(t, store, "LEC1"))
}

func TestCreate_PrecioEsFotoDelMomento(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 2)))
	require.NoError(t, err)

	p, _ := store.Products().GetByCode(ctx, "ABC123")
	p.Price = decimal.RequireFromString("99")
	require.NoError(t, store.Products().Update(ctx, p))

	got, err := uc.Get(ctx, out.ID, cliente)
	require.NoError(t, err)
	assert.True(t, got.Items[0].PrecioUnitario.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, got.Total.Equal(decimal.RequireFromString("5")))
}

func TestCreate_StockInsuficiente_NoPersisteNiDescuenta(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	// La primera línea pasa y descuenta; la segunda falla: todo se deshace.
	_, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 4), item("LEC1", 4)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, domain.Message(err), "Leche")
	assert.Contains(t, domain.Message(err), "3")

	assert.Equal(t, 10, stockOf(t, store, "ABC123"))
	assert.Equal(t, 3, stockOf(t, store, "LEC1"))
	list, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	uc, store := setup(t)

	_, err := uc.Create(context.Background(), cliente.ID, pedido(item("ABC123", 1), item("XYZ999", 1)))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Producto XYZ999 no encontrado", domain.Message(err))
	assert.Equal(t, 10, stockOf(t, store, "ABC123"))
}

func TestCreate_MismoProductoEnVariasLineas(t *testing.T) {
	uc, store := setup(t)

	_, err := uc.Create(context.Background(), cliente.ID, pedido(item("LEC1", 2), item("LEC1", 2)))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, stockOf(t, store, "LEC1"))
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	cases := map[string]dto.CreateOrderRequest{
		"sin items":         pedido(),
		"cantidad cero":     pedido(item("ABC123", 0)),
		"cantidad negativa": pedido(item("ABC123", -2)),
		"sin código":        pedido(item(" ", 1)),
		"sin dirección": {
			Items:        []dto.OrderItemRequest{item("ABC123", 1)},
			DatosEntrega: dto.DeliveryRequest{Telefono: "0991234567"},
		},
		"sin teléfono": {
			Items:        []dto.OrderItemRequest{item("ABC123", 1)},
			DatosEntrega: dto.DeliveryRequest{Direccion: "Calle 1"},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, cliente.ID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_ConcurrenteNoSobrevende(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Create(ctx, cliente.ID, pedido(item("LEC1", 1))); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok, "solo se pueden aceptar tantos pedidos como unidades hay")
	assert.Equal(t, 0, stockOf(t, store, "LEC1"))
}

// ──── Cancel ─────────────────────────────────────────────────────────────────

func TestCancel_DevuelveStock(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 3), item("LEC1", 3)))
	require.NoError(t, err)
	assert.Equal(t, 7, stockOf(t, store, "ABC123"))

	cancelled, err := uc.Cancel(ctx, out.ID, cliente)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", cancelled.Estado)
	assert.Equal(t, 10, stockOf(t, store, "ABC123"))
	assert.Equal(t, 3, stockOf(t, store, "LEC1"))
}

func TestCancel_PedidoDeOtroUsuario(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 3)))
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, out.ID, otro)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 7, stockOf(t, store, "ABC123"))
}

func TestCancel_SoloPendientes(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 3)))
	require.NoError(t, err)

	_, err = uc.SetStatus(ctx, out.ID, dto.UpdateOrderStatusRequest{Estado: "procesando"})
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, out.ID, cliente)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 7, stockOf(t, store, "ABC123"), "el stock no cambia")
}

func TestCancel_DosVeces(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 3)))
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, out.ID, cliente)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, out.ID, cliente)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 10, stockOf(t, store, "ABC123"), "el stock se devuelve una sola vez")
}

func TestCancel_ProductoEliminado(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 3), item("LEC1", 1)))
	require.NoError(t, err)
	require.NoError(t, store.Products().Delete(ctx, "LEC1"))

	cancelled, err := uc.Cancel(ctx, out.ID, cliente)
	require.NoError(t, err)
	assert.Equal(t, "cancelado", cancelled.Estado)
	assert.Equal(t, 10, stockOf(t, store, "ABC123"))
}

func TestCancel_Inexistente(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Cancel(context.Background(), "no-existe", cliente)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──── SetStatus ──────────────────────────────────────────────────────────────

func TestSetStatus_TransicionesPermisivas(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 2)))
	require.NoError(t, err)

	for _, st := range []string{"completado", "pendiente", "cancelado", "procesando"} {
		got, err := uc.SetStatus(ctx, out.ID, dto.UpdateOrderStatusRequest{Estado: st})
		require.NoError(t, err, st)
		assert.Equal(t, st, got.Estado)
	}
	assert.Equal(t, 8, stockOf(t, store, "ABC123"), "cambiar estado no toca el stock")
}

func TestSetStatus_EstadoInvalido(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 2)))
	require.NoError(t, err)

	_, err = uc.SetStatus(ctx, out.ID, dto.UpdateOrderStatusRequest{Estado: "enviado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SetStatus(ctx, "no-existe", dto.UpdateOrderStatusRequest{Estado: "completado"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──── Consultas ──────────────────────────────────────────────────────────────

func TestGet_Propiedad(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 1)))
	require.NoError(t, err)

	_, err = uc.Get(ctx, out.ID, cliente)
	assert.NoError(t, err)
	_, err = uc.Get(ctx, out.ID, empleado)
	assert.NoError(t, err, "el staff ve cualquier pedido")
	_, err = uc.Get(ctx, out.ID, otro)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListMine_SoloPropios(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 1)))
	require.NoError(t, err)
	_, err = uc.Create(ctx, otro.ID, pedido(item("ABC123", 1)))
	require.NoError(t, err)

	mine, err := uc.ListMine(ctx, cliente.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, cliente.ID, mine[0].Usuario)

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReceiptPDF(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	out, err := uc.Create(ctx, cliente.ID, pedido(item("ABC123", 1)))
	require.NoError(t, err)

	pdf, filename, err := uc.ReceiptPDF(ctx, out.ID, cliente)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-"+out.ID, string(pdf))
	assert.Equal(t, "pedido_"+out.ID[:8]+".pdf", filename)

	_, _, err = uc.ReceiptPDF(ctx, out.ID, otro)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
