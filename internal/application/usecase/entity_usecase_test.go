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
	"github.com/jhoicas/Supermercado-api/internal/testutil/memstore"
)

func proveedor() dto.ProviderRequest {
	return dto.ProviderRequest{
		RUC:       "1790012345001",
		Nombre:    "Distribuidora Andina",
		Direccion: "Quito",
	}
}

// ──── Clients ────────────────────────────────────────────────────────────────

func cliente() dto.ClientRequest {
	return dto.ClientRequest{
		DNI:       "1710034065",
		Nombre:    "Ana",
		Apellido:  "Pérez",
		Direccion: "Av. Amazonas",
		Telefono:  "0991234567",
	}
}

func TestClientCreate_OpcionalesVacios(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())

	out, err := uc.Create(context.Background(), cliente())
	require.NoError(t, err)
	assert.Equal(t, "", out.Email)
	assert.Equal(t, "0991234567", out.Telefono)
}

func TestClientCreate_CedulaInvalida(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())

	in := cliente()
	in.DNI = "1710034066"
	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Cédula ecuatoriana inválida", domain.Message(err))
}

func TestClientCreate_TelefonoInvalido(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())

	in := cliente()
	in.Telefono = "0891234567"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientCreate_Duplicado(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())
	ctx := context.Background()
	_, err := uc.Create(ctx, cliente())
	require.NoError(t, err)

	_, err = uc.Create(ctx, cliente())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientUpdate_CamposNoEnviadosIntactos(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())
	ctx := context.Background()
	created, err := uc.Create(ctx, cliente())
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.DNI, dto.UpdateClientRequest{Telefono: ptr("0987654321")})
	require.NoError(t, err)
	assert.Equal(t, "0987654321", out.Telefono)
	assert.Equal(t, created.Nombre, out.Nombre)
	assert.Equal(t, created.Apellido, out.Apellido)
	assert.Equal(t, created.Direccion, out.Direccion)
	assert.Equal(t, created.CreatedAt, out.CreatedAt)

	_, err = uc.Update(ctx, created.DNI, dto.UpdateClientRequest{Direccion: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se puede limpiar un requerido")
}

func TestClientDelete(t *testing.T) {
	uc := usecase.NewClientUseCase(memstore.New().Clients())
	ctx := context.Background()
	_, err := uc.Create(ctx, cliente())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "1710034065"))
	assert.ErrorIs(t, uc.Delete(ctx, "1710034065"), domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──── Employees ──────────────────────────────────────────────────────────────

func empleado() dto.EmployeeRequest {
	return dto.EmployeeRequest{
		Cedula:   "0926687856",
		Nombre:   "Luis",
		Apellido: "Mora",
		Cargo:    "Cajero",
		Salario:  decimal.RequireFromString("480.00"),
	}
}

func TestEmployeeCrud(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(memstore.New().Employees())
	ctx := context.Background()

	created, err := uc.Create(ctx, empleado())
	require.NoError(t, err)
	assert.True(t, created.Salario.Equal(decimal.NewFromInt(480)))

	_, err = uc.Create(ctx, empleado())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, created.Cedula, dto.UpdateEmployeeRequest{Salario: ptr(decimal.Zero)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el salario debe ser mayor a cero")

	out, err := uc.Update(ctx, created.Cedula, dto.UpdateEmployeeRequest{Cargo: ptr("Supervisor")})
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", out.Cargo)
	assert.True(t, out.Salario.Equal(created.Salario))

	got, err := uc.GetByCedula(ctx, created.Cedula)
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", got.Cargo)

	require.NoError(t, uc.Delete(ctx, created.Cedula))
	_, err = uc.GetByCedula(ctx, created.Cedula)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeCreate_SalarioInvalido(t *testing.T) {
	uc := usecase.NewEmployeeUseCase(memstore.New().Employees())

	in := empleado()
	in.Salario = decimal.RequireFromString("-1")
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──── Providers ──────────────────────────────────────────────────────────────

func TestProviderCrud(t *testing.T) {
	uc := usecase.NewProviderUseCase(memstore.New().Providers())
	ctx := context.Background()

	created, err := uc.Create(ctx, proveedor())
	require.NoError(t, err)
	assert.Equal(t, "", created.Contacto)

	_, err = uc.Create(ctx, proveedor())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.Update(ctx, created.RUC, dto.UpdateProviderRequest{Contacto: ptr("María")})
	require.NoError(t, err)
	assert.Equal(t, "María", out.Contacto)
	assert.Equal(t, created.Nombre, out.Nombre)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.RUC))
	_, err = uc.Update(ctx, created.RUC, dto.UpdateProviderRequest{Contacto: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProviderCreate_RUCInvalido(t *testing.T) {
	uc := usecase.NewProviderUseCase(memstore.New().Providers())

	in := proveedor()
	in.RUC = "1790012345002"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "RUC de 13 dígitos debe terminar en 001")
}
