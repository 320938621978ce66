package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

type clientDoc struct {
	DNI       string    `bson:"_id"`
	Nombre    string    `bson:"nombre"`
	Apellido  string    `bson:"apellido"`
	Direccion string    `bson:"direccion"`
	Telefono  string    `bson:"telefono"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *clientDoc) toEntity() *entity.Client {
	c := entity.Client(*d)
	return &c
}

// ClientRepo clientes en la colección clients (_id = DNI).
type ClientRepo struct {
	coll *mongo.Collection
}

// NewClientRepository construye el repositorio.
func NewClientRepository(db *mongo.Database) *ClientRepo {
	return &ClientRepo{coll: db.Collection(colClients)}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return insertOne(ctx, r.coll, clientDoc(*c))
}

func (r *ClientRepo) GetByDNI(ctx context.Context, dni string) (*entity.Client, error) {
	doc, err := findOne[clientDoc](ctx, r.coll, bson.M{"_id": dni})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	docs, err := findAll[clientDoc](ctx, r.coll, bson.M{}, sortBy("apellido", "nombre"))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Client, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return setByID(ctx, r.coll, c.DNI, bson.M{
		"nombre":     c.Nombre,
		"apellido":   c.Apellido,
		"direccion":  c.Direccion,
		"telefono":   c.Telefono,
		"email":      c.Email,
		"updated_at": c.UpdatedAt,
	})
}

func (r *ClientRepo) Delete(ctx context.Context, dni string) error {
	return deleteByID(ctx, r.coll, dni)
}
