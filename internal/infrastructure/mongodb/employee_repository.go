package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

type employeeDoc struct {
	Cedula    string               `bson:"_id"`
	Nombre    string               `bson:"nombre"`
	Apellido  string               `bson:"apellido"`
	Cargo     string               `bson:"cargo"`
	Telefono  string               `bson:"telefono"`
	Email     string               `bson:"email"`
	Salario   primitive.Decimal128 `bson:"salario"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (d *employeeDoc) toEntity() *entity.Employee {
	return &entity.Employee{
		Cedula:    d.Cedula,
		Nombre:    d.Nombre,
		Apellido:  d.Apellido,
		Cargo:     d.Cargo,
		Telefono:  d.Telefono,
		Email:     d.Email,
		Salario:   fromDecimal128(d.Salario),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// EmployeeRepo empleados en la colección employees (_id = cédula).
type EmployeeRepo struct {
	coll *mongo.Collection
}

// NewEmployeeRepository construye el repositorio.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{coll: db.Collection(colEmployees)}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	salario, err := toDecimal128(e.Salario)
	if err != nil {
		return err
	}
	return insertOne(ctx, r.coll, employeeDoc{
		Cedula:    e.Cedula,
		Nombre:    e.Nombre,
		Apellido:  e.Apellido,
		Cargo:     e.Cargo,
		Telefono:  e.Telefono,
		Email:     e.Email,
		Salario:   salario,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})
}

func (r *EmployeeRepo) GetByCedula(ctx context.Context, cedula string) (*entity.Employee, error) {
	doc, err := findOne[employeeDoc](ctx, r.coll, bson.M{"_id": cedula})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	docs, err := findAll[employeeDoc](ctx, r.coll, bson.M{}, sortBy("apellido", "nombre"))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Employee, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	salario, err := toDecimal128(e.Salario)
	if err != nil {
		return err
	}
	return setByID(ctx, r.coll, e.Cedula, bson.M{
		"nombre":     e.Nombre,
		"apellido":   e.Apellido,
		"cargo":      e.Cargo,
		"telefono":   e.Telefono,
		"email":      e.Email,
		"salario":    salario,
		"updated_at": e.UpdatedAt,
	})
}

func (r *EmployeeRepo) Delete(ctx context.Context, cedula string) error {
	return deleteByID(ctx, r.coll, cedula)
}
