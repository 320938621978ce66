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

// ClientUseCase casos de uso CRUD para clientes (clave: DNI).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente nuevo.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	in.Normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDNI(ctx, in.DNI)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "Ya existe un cliente con el DNI %s", in.DNI)
	}
	now := time.Now()
	client := &entity.Client{
		DNI:       in.DNI,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByDNI obtiene un cliente.
func (uc *ClientUseCase) GetByDNI(ctx context.Context, dni string) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, dni)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista todos los clientes.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(c *entity.Client, _ int) dto.ClientResponse { return *toClientResponse(c) }), nil
}

// Update actualización parcial; no permite dejar vacíos los campos requeridos.
func (uc *ClientUseCase) Update(ctx context.Context, dni string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.get(ctx, dni)
	if err != nil {
		return nil, err
	}
	merged := dto.ClientRequest{
		DNI:       client.DNI,
		Nombre:    client.Nombre,
		Apellido:  client.Apellido,
		Direccion: client.Direccion,
		Telefono:  client.Telefono,
		Email:     client.Email,
	}
	in.ApplyTo(&merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	client.Nombre = merged.Nombre
	client.Apellido = merged.Apellido
	client.Direccion = merged.Direccion
	client.Telefono = merged.Telefono
	client.Email = merged.Email
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, dni string) error {
	client, err := uc.get(ctx, dni)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, client.DNI)
}

func (uc *ClientUseCase) get(ctx context.Context, dni string) (*entity.Client, error) {
	dni = normalizeKey(dni)
	client, err := uc.repo.GetByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Cliente %s no encontrado", dni)
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		DNI:       c.DNI,
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
