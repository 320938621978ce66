package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productDoc struct {
	Code        string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	ProviderRUC string               `bson:"provider_ruc"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d *productDoc) toEntity() *entity.Product {
	return &entity.Product{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Price:       fromDecimal128(d.Price),
		Stock:       d.Stock,
		ProviderRUC: d.ProviderRUC,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ProductRepo productos en la colección products (_id = código).
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el repositorio. Dentro de RunOrder se usa con el SessionContext como ctx.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{coll: db.Collection(colProducts)}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return err
	}
	return insertOne(ctx, r.coll, productDoc{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		ProviderRUC: p.ProviderRUC,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	doc, err := findOne[productDoc](ctx, r.coll, bson.M{"_id": code})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// GetByCodeForUpdate incrementa un contador de bloqueo para tomar el lock de escritura del documento
// dentro de la transacción; otra transacción que lo toque choca con un write conflict y se reintenta.
func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	var doc productDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": code},
		bson.M{"$inc": bson.M{"lock_version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("products lock: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	docs, err := findAll[productDoc](ctx, r.coll, bson.M{}, sortBy("_id"))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

// Update actualiza los campos descriptivos; el stock lo mueven SetStock y AdjustStock.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return err
	}
	return setByID(ctx, r.coll, p.Code, bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"price":        price,
		"provider_ruc": p.ProviderRUC,
		"updated_at":   p.UpdatedAt,
	})
}

func (r *ProductRepo) SetStock(ctx context.Context, code string, stock int) error {
	return setByID(ctx, r.coll, code, bson.M{"stock": stock, "updated_at": time.Now()})
}

// AdjustStock $inc condicionado a que el stock resultante no sea negativo.
func (r *ProductRepo) AdjustStock(ctx context.Context, code string, delta int) error {
	filter := bson.M{"_id": code}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("products adjust stock: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": code})
	if err != nil {
		return fmt.Errorf("products adjust stock: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

func (r *ProductRepo) Delete(ctx context.Context, code string) error {
	return deleteByID(ctx, r.coll, code)
}
