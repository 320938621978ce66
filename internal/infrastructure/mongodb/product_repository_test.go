package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jhoicas/Supermercado-api/internal/domain"
)

func TestAdjustStock_Mongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	updated := func(n int32) bson.D {
		return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
	}
	count := func(mt *mtest.T, docs ...bson.D) bson.D {
		return mtest.CreateCursorResponse(0, mt.DB.Name()+"."+colProducts, mtest.FirstBatch, docs...)
	}

	mt.Run("descuenta", func(mt *mtest.T) {
		mt.AddMockResponses(updated(1))
		err := NewProductRepository(mt.DB).AdjustStock(context.Background(), "ABC123", -3)
		assert.NoError(mt, err)
	})

	mt.Run("stock insuficiente", func(mt *mtest.T) {
		mt.AddMockResponses(updated(0), count(mt, bson.D{{Key: "n", Value: int32(1)}}))
		err := NewProductRepository(mt.DB).AdjustStock(context.Background(), "ABC123", -50)
		assert.ErrorIs(mt, err, domain.ErrInsufficientStock)
	})

	mt.Run("producto inexistente", func(mt *mtest.T) {
		mt.AddMockResponses(updated(0), count(mt))
		err := NewProductRepository(mt.DB).AdjustStock(context.Background(), "NOP1", -1)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("set stock inexistente", func(mt *mtest.T) {
		mt.AddMockResponses(updated(0))
		err := NewProductRepository(mt.DB).SetStock(context.Background(), "NOP1", 5)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}
