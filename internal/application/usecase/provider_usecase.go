package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/validation"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

// ProviderUseCase casos de uso CRUD para proveedores (clave: RUC).
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

// Create registra un proveedor.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.ProviderRequest) (*dto.ProviderResponse, error) {
	in.Normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRUC(ctx, in.RUC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "Ya existe un proveedor con el RUC %s", in.RUC)
	}
	now := time.Now()
	provider := &entity.Provider{
		RUC:       in.RUC,
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Contacto:  in.Contacto,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// GetByRUC obtiene un proveedor.
func (uc *ProviderUseCase) GetByRUC(ctx context.Context, ruc string) (*dto.ProviderResponse, error) {
	provider, err := uc.get(ctx, ruc)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// List lista los proveedores.
func (uc *ProviderUseCase) List(ctx context.Context) ([]dto.ProviderResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(p *entity.Provider, _ int) dto.ProviderResponse { return *toProviderResponse(p) }), nil
}

// Update actualización parcial.
func (uc *ProviderUseCase) Update(ctx context.Context, ruc string, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := uc.get(ctx, ruc)
	if err != nil {
		return nil, err
	}
	merged := dto.ProviderRequest{
		RUC:       provider.RUC,
		Nombre:    provider.Nombre,
		Direccion: provider.Direccion,
		Telefono:  provider.Telefono,
		Email:     provider.Email,
		Contacto:  provider.Contacto,
	}
	in.ApplyTo(&merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	provider.Nombre = merged.Nombre
	provider.Direccion = merged.Direccion
	provider.Telefono = merged.Telefono
	provider.Email = merged.Email
	provider.Contacto = merged.Contacto
	provider.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, provider); err != nil {
		return nil, err
	}
	return toProviderResponse(provider), nil
}

// Delete elimina un proveedor. Los productos que lo referencian conservan el RUC.
func (uc *ProviderUseCase) Delete(ctx context.Context, ruc string) error {
	provider, err := uc.get(ctx, ruc)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, provider.RUC)
}

func (uc *ProviderUseCase) get(ctx context.Context, ruc string) (*entity.Provider, error) {
	ruc = normalizeKey(ruc)
	provider, err := uc.repo.GetByRUC(ctx, ruc)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Proveedor %s no encontrado", ruc)
	}
	return provider, nil
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		RUC:       p.RUC,
		Nombre:    p.Nombre,
		Direccion: p.Direccion,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Contacto:  p.Contacto,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
