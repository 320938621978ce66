package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

type providerDoc struct {
	RUC       string    `bson:"_id"`
	Nombre    string    `bson:"nombre"`
	Direccion string    `bson:"direccion"`
	Telefono  string    `bson:"telefono"`
	Email     string    `bson:"email"`
	Contacto  string    `bson:"contacto"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *providerDoc) toEntity() *entity.Provider {
	p := entity.Provider(*d)
	return &p
}

// ProviderRepo proveedores en la colección providers (_id = RUC).
type ProviderRepo struct {
	coll *mongo.Collection
}

// NewProviderRepository construye el repositorio.
func NewProviderRepository(db *mongo.Database) *ProviderRepo {
	return &ProviderRepo{coll: db.Collection(colProviders)}
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	return insertOne(ctx, r.coll, providerDoc(*p))
}

func (r *ProviderRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Provider, error) {
	doc, err := findOne[providerDoc](ctx, r.coll, bson.M{"_id": ruc})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	docs, err := findAll[providerDoc](ctx, r.coll, bson.M{}, sortBy("nombre"))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Provider, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	return setByID(ctx, r.coll, p.RUC, bson.M{
		"nombre":     p.Nombre,
		"direccion":  p.Direccion,
		"telefono":   p.Telefono,
		"email":      p.Email,
		"contacto":   p.Contacto,
		"updated_at": p.UpdatedAt,
	})
}

func (r *ProviderRepo) Delete(ctx context.Context, ruc string) error {
	return deleteByID(ctx, r.coll, ruc)
}
