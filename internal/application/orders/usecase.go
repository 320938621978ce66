// Package orders implementa el motor de pedidos: creación con control de stock,
// cancelación con devolución de stock, cambios de estado y consultas.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/Supermercado-api/internal/application/orders"

// OrderUseCase casos de uso de pedidos.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	generator ReceiptGenerator
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configura OrderUseCase.
type Option func(*OrderUseCase)

// WithTracerProvider usa tp en lugar del provider global de otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *OrderUseCase) { uc.tracer = tp.Tracer(tracerName) }
}

// NewOrderUseCase construye el caso de uso. generator puede ser nil si no se exponen comprobantes.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, generator ReceiptGenerator, opts ...Option) *OrderUseCase {
	uc := &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		generator: generator,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create registra un pedido del usuario. Por cada línea, en el orden recibido: bloquea el producto,
// verifica stock, toma foto de nombre y precio y descuenta. Cualquier fallo deshace la transacción completa.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.Create", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.Int("order.lines", len(in.Items)),
	))
	defer span.End()

	in.Normalize()
	if err := validateCreate(in); err != nil {
		return nil, recordErr(span, err)
	}

	now := uc.now()
	order := &entity.Order{
		ID:     uuid.New().String(),
		UserID: userID,
		Status: entity.OrderStatusPendiente,
		Delivery: entity.DeliveryInfo{
			Address: in.DatosEntrega.Direccion,
			Phone:   in.DatosEntrega.Telefono,
			Notes:   in.DatosEntrega.Notas,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.RunOrder(ctx, func(ctx context.Context, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		items := make([]entity.OrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			product, err := productRepo.GetByCodeForUpdate(ctx, line.Producto)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.Errorf(domain.ErrNotFound, "Producto %s no encontrado", line.Producto)
			}
			if line.Cantidad > product.Stock {
				return insufficientStock(product)
			}
			if err := productRepo.AdjustStock(ctx, product.Code, -line.Cantidad); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return insufficientStock(product)
				}
				return err
			}
			items = append(items, entity.NewOrderItem(product, line.Cantidad))
		}
		order.Items = items
		order.Total = order.ComputeTotal()
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, recordErr(span, err)
	}

	span.SetAttributes(attribute.String("order.id", order.ID), attribute.String("order.total", order.Total.String()))
	log.Info().Str("order_id", order.ID).Str("user_id", userID).Str("total", order.Total.String()).Msg("pedido creado")
	resp := toOrderResponse(order)
	return &resp, nil
}

// Cancel cancela un pedido pendiente del propio usuario y devuelve el stock de cada línea.
// Las líneas cuyo producto ya no existe se omiten.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID string, requester *entity.User) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.Cancel", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(ctx context.Context, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.Errorf(domain.ErrNotFound, "Pedido no encontrado")
		}
		if !o.OwnedBy(requester.ID) {
			return domain.Errorf(domain.ErrForbidden, "No tienes permiso para cancelar este pedido")
		}
		if o.Status != entity.OrderStatusPendiente {
			return domain.Errorf(domain.ErrInvalidState, "Solo se pueden cancelar pedidos pendientes (estado actual: %s)", o.Status)
		}
		for _, it := range o.Items {
			err := productRepo.AdjustStock(ctx, it.ProductCode, it.Quantity)
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn().Str("order_id", o.ID).Str("product", it.ProductCode).Msg("producto eliminado, no se devuelve stock")
				continue
			}
			if err != nil {
				return err
			}
		}
		o.Status = entity.OrderStatusCancelado
		o.UpdatedAt = uc.now()
		if err := orderRepo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, recordErr(span, err)
	}
	log.Info().Str("order_id", order.ID).Str("user_id", requester.ID).Msg("pedido cancelado")
	resp := toOrderResponse(order)
	return &resp, nil
}

// SetStatus cambia el estado de un pedido (administrador/empleado). Cualquier transición es válida
// y no tiene efectos sobre el stock.
func (uc *OrderUseCase) SetStatus(ctx context.Context, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.SetStatus", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.status", in.Estado),
	))
	defer span.End()

	status, err := entity.ParseOrderStatus(in.Estado)
	if err != nil {
		return nil, recordErr(span, domain.Errorf(domain.ErrInvalidInput,
			"Estado inválido: %q (pendiente, procesando, completado, cancelado)", in.Estado))
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, recordErr(span, err)
	}
	if order == nil {
		return nil, recordErr(span, domain.Errorf(domain.ErrNotFound, "Pedido no encontrado"))
	}
	order.Status = status
	order.UpdatedAt = uc.now()
	if err := uc.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, recordErr(span, err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ListMine pedidos del usuario.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.ListMine", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	list, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, recordErr(span, err)
	}
	return toOrderResponses(list), nil
}

// ListAll todos los pedidos (administrador/empleado).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.ListAll")
	defer span.End()

	list, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, recordErr(span, err)
	}
	return toOrderResponses(list), nil
}

// Get devuelve un pedido si el solicitante puede verlo (staff o dueño).
func (uc *OrderUseCase) Get(ctx context.Context, orderID string, requester *entity.User) (*dto.OrderResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.Get", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	order, err := uc.visibleOrder(ctx, orderID, requester)
	if err != nil {
		return nil, recordErr(span, err)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ReceiptPDF genera el comprobante del pedido con la misma regla de acceso que Get.
// Retorna los bytes del PDF y el nombre de archivo sugerido.
func (uc *OrderUseCase) ReceiptPDF(ctx context.Context, orderID string, requester *entity.User) ([]byte, string, error) {
	ctx, span := uc.tracer.Start(ctx, "orders.ReceiptPDF", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	if uc.generator == nil {
		return nil, "", recordErr(span, errors.New("orders: generador de comprobantes no configurado"))
	}
	order, err := uc.visibleOrder(ctx, orderID, requester)
	if err != nil {
		return nil, "", recordErr(span, err)
	}
	pdfBytes, err := uc.generator.GenerateOrderReceipt(ctx, order)
	if err != nil {
		return nil, "", recordErr(span, err)
	}
	return pdfBytes, "pedido_" + shortID(order.ID) + ".pdf", nil
}

func (uc *OrderUseCase) visibleOrder(ctx context.Context, orderID string, requester *entity.User) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Pedido no encontrado")
	}
	if !order.VisibleTo(requester) {
		return nil, domain.Errorf(domain.ErrForbidden, "No tienes permiso para ver este pedido")
	}
	return order, nil
}

func validateCreate(in dto.CreateOrderRequest) error {
	if len(in.Items) == 0 {
		return domain.Errorf(domain.ErrInvalidInput, "El pedido debe tener al menos un producto")
	}
	for _, it := range in.Items {
		if it.Producto == "" {
			return domain.Errorf(domain.ErrInvalidInput, "Cada producto del pedido requiere su código")
		}
		if it.Cantidad < 1 {
			return domain.Errorf(domain.ErrInvalidInput, "La cantidad de %s debe ser al menos 1", it.Producto)
		}
	}
	if in.DatosEntrega.Direccion == "" || in.DatosEntrega.Telefono == "" {
		return domain.Errorf(domain.ErrInvalidInput, "La dirección y el teléfono de entrega son requeridos")
	}
	return nil
}

func insufficientStock(p *entity.Product) error {
	return domain.Errorf(domain.ErrInsufficientStock,
		"Stock insuficiente para el producto %s. Disponible: %d", p.Name, p.Stock)
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, domain.Message(err))
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	return lo.Map(list, func(o *entity.Order, _ int) dto.OrderResponse { return toOrderResponse(o) })
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:      o.ID,
		Usuario: o.UserID,
		Items: lo.Map(o.Items, func(it entity.OrderItem, _ int) dto.OrderItemResponse {
			return dto.OrderItemResponse{
				Producto:       it.ProductCode,
				Nombre:         it.ProductName,
				Cantidad:       it.Quantity,
				PrecioUnitario: it.UnitPrice,
				Subtotal:       it.Subtotal,
			}
		}),
		Total:  o.Total,
		Estado: string(o.Status),
		DatosEntrega: dto.DeliveryResponse{
			Direccion: o.Delivery.Address,
			Telefono:  o.Delivery.Phone,
			Notas:     o.Delivery.Notes,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
