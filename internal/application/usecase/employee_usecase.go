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

// EmployeeUseCase casos de uso CRUD para empleados (clave: cédula). Solo administradores.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	in.Normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validation.Money("salario", in.Salario); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCedula(ctx, in.Cedula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "Ya existe un empleado con la cédula %s", in.Cedula)
	}
	now := time.Now()
	employee := &entity.Employee{
		Cedula:    in.Cedula,
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Cargo:     in.Cargo,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Salario:   in.Salario,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByCedula obtiene un empleado.
func (uc *EmployeeUseCase) GetByCedula(ctx context.Context, cedula string) (*dto.EmployeeResponse, error) {
	employee, err := uc.get(ctx, cedula)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista los empleados.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(e *entity.Employee, _ int) dto.EmployeeResponse { return *toEmployeeResponse(e) }), nil
}

// Update actualización parcial; el salario debe seguir siendo mayor a cero.
func (uc *EmployeeUseCase) Update(ctx context.Context, cedula string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.get(ctx, cedula)
	if err != nil {
		return nil, err
	}
	merged := dto.EmployeeRequest{
		Cedula:   employee.Cedula,
		Nombre:   employee.Nombre,
		Apellido: employee.Apellido,
		Cargo:    employee.Cargo,
		Telefono: employee.Telefono,
		Email:    employee.Email,
		Salario:  employee.Salario,
	}
	in.ApplyTo(&merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	if err := validation.Money("salario", merged.Salario); err != nil {
		return nil, err
	}
	employee.Nombre = merged.Nombre
	employee.Apellido = merged.Apellido
	employee.Cargo = merged.Cargo
	employee.Telefono = merged.Telefono
	employee.Email = merged.Email
	employee.Salario = merged.Salario
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Delete elimina un empleado.
func (uc *EmployeeUseCase) Delete(ctx context.Context, cedula string) error {
	employee, err := uc.get(ctx, cedula)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, employee.Cedula)
}

func (uc *EmployeeUseCase) get(ctx context.Context, cedula string) (*entity.Employee, error) {
	cedula = normalizeKey(cedula)
	employee, err := uc.repo.GetByCedula(ctx, cedula)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Empleado %s no encontrado", cedula)
	}
	return employee, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		Cedula:    e.Cedula,
		Nombre:    e.Nombre,
		Apellido:  e.Apellido,
		Cargo:     e.Cargo,
		Telefono:  e.Telefono,
		Email:     e.Email,
		Salario:   e.Salario,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
