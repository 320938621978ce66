package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Supermercado-api/internal/domain"
)

// toDecimal128 guarda los importes como Decimal128 para no perder precisión.
// Un valor fuera del rango de Decimal128 es entrada inválida, nunca se redondea a cero.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, domain.Errorf(domain.ErrInvalidInput, "importe no representable: %s", d.String())
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// findOne decodifica un documento; (nil, nil) si no existe.
func findOne[D any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*D, error) {
	var doc D
	err := coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s find: %w", coll.Name(), err)
	}
	return &doc, nil
}

func findAll[D any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]D, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s find: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)
	docs := []D{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s decode: %w", coll.Name(), err)
	}
	return docs, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("%s insert: %w", coll.Name(), err)
	}
	return nil
}

// setByID aplica $set sobre el documento con ese _id; domain.ErrNotFound si no existe.
func setByID(ctx context.Context, coll *mongo.Collection, id string, set bson.M) error {
	res, err := coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s update: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s delete: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func sortBy(fields ...string) *options.FindOptions {
	sort := bson.D{}
	for _, f := range fields {
		sort = append(sort, bson.E{Key: f, Value: 1})
	}
	return options.Find().SetSort(sort)
}
