package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/usecase"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/testutil/memstore"
)

func ptr[T any](v T) *T { return &v }

func newProductUC() (*usecase.ProductUseCase, *memstore.Store) {
	store := memstore.New()
	return usecase.NewProductUseCase(store.Products(), store.Providers()), store
}

func arroz() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:        "abc123",
		Name:        "  Arroz Flor  ",
		Description: "Arroz de grano largo",
		Price:       decimal.RequireFromString("2.50"),
		Stock:       10,
	}
}

func TestProductCreate_OK(t *testing.T) {
	uc, _ := newProductUC()

	out, err := uc.Create(context.Background(), arroz())
	require.NoError(t, err)
	assert.Equal(t, "ABC123", out.Code)
	assert.Equal(t, "Arroz Flor", out.Name)
	assert.Equal(t, "", out.Provider, "opcional ausente = cadena vacía")
	assert.Equal(t, 10, out.Stock)
}

func TestProductCreate_Duplicado(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, arroz())
	require.NoError(t, err)

	dup := arroz()
	dup.Name = "Otro"
	_, err = uc.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Arroz Flor", got.Name, "el original no cambia")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()

	cases := map[string]func(*dto.CreateProductRequest){
		"código inválido":  func(r *dto.CreateProductRequest) { r.Code = "12ABC" },
		"nombre vacío":     func(r *dto.CreateProductRequest) { r.Name = "   " },
		"precio cero":      func(r *dto.CreateProductRequest) { r.Price = decimal.Zero },
		"stock negativo":   func(r *dto.CreateProductRequest) { r.Stock = -1 },
		"proveedor mal":    func(r *dto.CreateProductRequest) { r.Provider = "12" },
		"nombre muy largo": func(r *dto.CreateProductRequest) { r.Name = string(make([]byte, 101)) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := arroz()
			mutate(&in)
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()

	in := arroz()
	in.Provider = "1790012345001"
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = usecase.NewProviderUseCase(store.Providers()).Create(ctx, proveedor())
	require.NoError(t, err)
	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "1790012345001", out.Provider)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, arroz())
	require.NoError(t, err)

	out, err := uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("3"))})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, created.Name, out.Name)
	assert.Equal(t, created.Description, out.Description)
	assert.Equal(t, created.Stock, out.Stock)

	out, err = uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Description: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "", out.Description, "un opcional se puede limpiar")
}

// orderBetweenReads descuenta stock justo después de la primera lectura, como haría un pedido concurrente.
type orderBetweenReads struct {
	*memstore.ProductRepo
	qty  int
	done bool
}

func (r *orderBetweenReads) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.ProductRepo.GetByCode(ctx, code)
	if err != nil || p == nil || r.done {
		return p, err
	}
	r.done = true
	return p, r.ProductRepo.AdjustStock(ctx, code, -r.qty)
}

func TestProductUpdate_SinStockNoPisaDescuentoDePedido(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	_, err := usecase.NewProductUseCase(store.Products(), store.Providers()).Create(ctx, arroz())
	require.NoError(t, err)

	repo := &orderBetweenReads{ProductRepo: store.Products(), qty: 3}
	uc := usecase.NewProductUseCase(repo, store.Providers())

	out, err := uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Name: ptr("Arroz Premium")})
	require.NoError(t, err)
	assert.Equal(t, "Arroz Premium", out.Name)
	assert.Equal(t, 7, out.Stock)

	got, err := store.Products().GetByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock, "el descuento del pedido se conserva")
}

func TestProductUpdate_StockExplicito(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, arroz())
	require.NoError(t, err)

	out, err := uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Stock: ptr(25)})
	require.NoError(t, err)
	assert.Equal(t, 25, out.Stock)

	got, err := store.Products().GetByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 25, got.Stock)
	assert.Equal(t, "Arroz Flor", got.Name)
}

func TestProduct_PrecioConDemasiadosDecimales(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()

	in := arroz()
	in.Price = decimal.RequireFromString("1.00000000000000000000000000000000001")
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, arroz())
	require.NoError(t, err)
	_, err = uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Price: ptr(decimal.RequireFromString("0.001"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoPermiteInvalidos(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, arroz())
	require.NoError(t, err)

	_, err = uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, "ABC123", dto.UpdateProductRequest{Stock: ptr(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Arroz Flor", got.Name)
	assert.Equal(t, 10, got.Stock)
}

func TestProductUpdateDelete_Inexistente(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()

	_, err := uc.Update(ctx, "NOP1", dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "NOP1"), domain.ErrNotFound)
	_, err = uc.GetByCode(ctx, "NOP1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_BusquedaYPaginacion(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	for _, p := range []dto.CreateProductRequest{
		{Code: "CAF1", Name: "Café molido", Price: decimal.NewFromInt(5), Stock: 1},
		{Code: "CAF2", Name: "Cafe en grano", Price: decimal.NewFromInt(6), Stock: 1},
		{Code: "TEV1", Name: "Té verde", Price: decimal.NewFromInt(2), Stock: 1},
	} {
		_, err := uc.Create(ctx, p)
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, dto.ProductListRequest{Query: "CAFÉ"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total, "la búsqueda ignora acentos y mayúsculas")

	out, err = uc.List(ctx, dto.ProductListRequest{PageRequest: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Page.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "TEV1", out.Items[0].Code)
}
