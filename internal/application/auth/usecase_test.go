package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Supermercado-api/internal/application/auth"
	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/testutil/memstore"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T, opts ...auth.Option) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	opts = append(opts, auth.WithBcryptCost(bcrypt.MinCost))
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, opts...)
	return uc, store
}

// ──── Register ───────────────────────────────────────────────────────────────

func TestRegister_RolPorDefectoCliente(t *testing.T) {
	uc, store := newAuth(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com"})
	require.NoError(t, err)
	assert.Equal(t, "cliente", out.Rol)
	assert.Equal(t, "Usuario registrado correctamente", out.Msg)

	u, err := store.Users().GetByUsername(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "p", u.PasswordHash, "el password no se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("p")))
}

func TestRegister_Duplicado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "otro", Email: "b@b.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "mismo username")

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "b", Password: "otro", Email: "A@A.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "mismo email (sin distinguir mayúsculas)")
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com", Role: "superusuario"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RolExplicito(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "jefe", Password: "p", Email: "j@s.com", Role: "administrador"})
	require.NoError(t, err)
	assert.Equal(t, "administrador", out.Rol)
}

func TestRegister_CamposFaltantes(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "  ", Password: "p", Email: "a@a.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Username: "a", Password: "p", Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──── Login ──────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "a", Password: "p"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "a", out.User.Username)
	assert.Equal(t, "cliente", out.User.Rol)

	userID, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID, "el token lleva el id del usuario")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "a", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposFaltantes(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──── ResolveToken ───────────────────────────────────────────────────────────

type fakeCache struct {
	users map[string]entity.User
	hits  int
}

func (c *fakeCache) Get(_ context.Context, id string) (*entity.User, error) {
	u, ok := c.users[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &u, nil
}

func (c *fakeCache) Set(_ context.Context, u *entity.User) error {
	c.users[u.ID] = *u
	return nil
}

func TestResolveToken_UsaCache(t *testing.T) {
	cache := &fakeCache{users: map[string]entity.User{}}
	uc, _ := newAuth(t, auth.WithUserCache(cache))
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "a", Password: "p", Email: "a@a.com"})
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Username: "a", Password: "p"})
	require.NoError(t, err)

	u, err := uc.ResolveToken(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, u.ID)
	assert.Equal(t, 0, cache.hits, "la primera resolución llena la caché")

	u, err = uc.ResolveToken(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCliente, u.Role)
	assert.Equal(t, 1, cache.hits)
}

func TestResolveToken_Invalido(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.ResolveToken(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	otro, err := jwt.Generate("otro-secreto", "id", "test", 60)
	require.NoError(t, err)
	_, err = uc.ResolveToken(context.Background(), otro)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "firmado con otro secreto")
}

func TestResolveToken_UsuarioBorrado(t *testing.T) {
	uc, _ := newAuth(t)
	tok, err := jwt.Generate(testSecret, "id-inexistente", "test", 60)
	require.NoError(t, err)

	_, err = uc.ResolveToken(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
