package repository

import (
	"context"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (clave natural: cédula).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByCedula(ctx context.Context, cedula string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, cedula string) error
}
