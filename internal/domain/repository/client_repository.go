package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (clave natural: DNI).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByDNI(ctx context.Context, dni string) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, dni string) error
}
