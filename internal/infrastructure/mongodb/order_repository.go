package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

type orderItemDoc struct {
	ProductCode string               `bson:"product_code"`
	ProductName string               `bson:"product_name"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
	Subtotal    primitive.Decimal128 `bson:"subtotal"`
}

type deliveryDoc struct {
	Address string `bson:"address"`
	Phone   string `bson:"phone"`
	Notes   string `bson:"notes"`
}

// orderDoc guarda las líneas embebidas en el pedido.
type orderDoc struct {
	ID        string               `bson:"_id"`
	UserID    string               `bson:"user_id"`
	Items     []orderItemDoc       `bson:"items"`
	Total     primitive.Decimal128 `bson:"total"`
	Status    string               `bson:"status"`
	Delivery  deliveryDoc          `bson:"delivery"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func newOrderDoc(o *entity.Order) (orderDoc, error) {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		unit, err := toDecimal128(it.UnitPrice)
		if err != nil {
			return orderDoc{}, err
		}
		subtotal, err := toDecimal128(it.Subtotal)
		if err != nil {
			return orderDoc{}, err
		}
		items = append(items, orderItemDoc{
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   unit,
			Subtotal:    subtotal,
		})
	}
	total, err := toDecimal128(o.Total)
	if err != nil {
		return orderDoc{}, err
	}
	return orderDoc{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     items,
		Total:     total,
		Status:    string(o.Status),
		Delivery:  deliveryDoc{Address: o.Delivery.Address, Phone: o.Delivery.Phone, Notes: o.Delivery.Notes},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func (d *orderDoc) toEntity() *entity.Order {
	items := make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.OrderItem{
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   fromDecimal128(it.UnitPrice),
			Subtotal:    fromDecimal128(it.Subtotal),
		})
	}
	return &entity.Order{
		ID:        d.ID,
		UserID:    d.UserID,
		Items:     items,
		Total:     fromDecimal128(d.Total),
		Status:    entity.OrderStatus(d.Status),
		Delivery:  entity.DeliveryInfo{Address: d.Delivery.Address, Phone: d.Delivery.Phone, Notes: d.Delivery.Notes},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// OrderRepo pedidos en la colección orders.
type OrderRepo struct {
	coll *mongo.Collection
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db *mongo.Database) *OrderRepo {
	return &OrderRepo{coll: db.Collection(colOrders)}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	doc, err := newOrderDoc(o)
	if err != nil {
		return err
	}
	return insertOne(ctx, r.coll, doc)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := findOne[orderDoc](ctx, r.coll, bson.M{"_id": id})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// GetByIDForUpdate en MongoDB basta con leer dentro de la transacción: dos cancelaciones
// concurrentes chocan al escribir el estado y WithTransaction reintenta la perdedora.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	return setByID(ctx, r.coll, o.ID, bson.M{"status": string(o.Status), "updated_at": o.UpdatedAt})
}

func (r *OrderRepo) list(ctx context.Context, filter bson.M) ([]*entity.Order, error) {
	docs, err := findAll[orderDoc](ctx, r.coll, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}
