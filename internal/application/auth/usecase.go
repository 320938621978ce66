package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/validation"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: registro, login y resolución de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cache    UserCache
	jwtCfg   JWTConfig
	cost     int
}

// Option ajusta el AuthUseCase.
type Option func(*AuthUseCase)

// WithUserCache habilita la caché de usuarios para ResolveToken.
func WithUserCache(c UserCache) Option {
	return func(uc *AuthUseCase) { uc.cache = c }
}

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.cost = cost }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea un usuario: valida, comprueba username/email en una sola búsqueda,
// hashea el password con bcrypt y persiste. El rol por defecto es cliente.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	in.Normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role := entity.RoleCliente
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Rol inválido: %s", in.Role)
		}
		role = r
	}

	existing, err := uc.userRepo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "El usuario o email ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("rol", string(role)).Msg("usuario registrado")
	return &dto.RegisterResponse{Msg: "Usuario registrado correctamente", Rol: string(role)}, nil
}

// Login verifica username/password, genera JWT y retorna token + resumen del usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Username = trimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrUserNotFound, "Usuario no encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "Contraseña incorrecta")
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserSummary(user)}, nil
}

// ResolveToken decodifica el token y carga el usuario (primero desde la caché si existe).
func (uc *AuthUseCase) ResolveToken(ctx context.Context, token string) (*entity.User, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidToken, "Token inválido o expirado")
	}
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("caché de usuarios no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrUserNotFound, "Usuario no encontrado")
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, user); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo cachear el usuario")
		}
	}
	return user, nil
}

func toUserSummary(u *entity.User) dto.UserSummary {
	return dto.UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Rol:      string(u.Role),
	}
}

func trimSpace(s string) string { return strings.TrimSpace(s) }
