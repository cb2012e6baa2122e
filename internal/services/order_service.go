package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop_backoffice/internal/events"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"
	"shop_backoffice/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Data Transfer Objects (DTOs) ---

// CreateOrderItemRequest is one requested line. The unit price is taken from the product.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0,max=2147483647"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerName    string                   `json:"customerName" binding:"required,max=200"`
	CustomerPhone   string                   `json:"customerPhone" binding:"required,max=20"`
	CustomerAddress string                   `json:"customerAddress" binding:"required,max=500"`
	City            string                   `json:"city" binding:"required,max=100"`
	DeliveryPrice   *decimal.Decimal         `json:"deliveryPrice" binding:"required,gte=0,money"`
	Notes           *string                  `json:"notes" binding:"omitempty,max=1000"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
}

// UpdateOrderStatusRequest changes the lifecycle and/or payment status.
type UpdateOrderStatusRequest struct {
	Status        *models.OrderStatus   `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED IN_TRANSIT DELIVERED RETURNED CANCELLED"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=UNPAID PAID REFUNDED"`
}

// --- End of DTOs ---

// OrderService manages customer orders. Orders never touch stock.
type OrderService interface {
	CreateOrder(ctx context.Context, actorID int64, req CreateOrderRequest) (*models.Order, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, actorID, orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, actorID, orderID int64) (*models.Order, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   events.Publisher
	db          *sql.DB // For managing transactions
	now         func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	pr repositories.ProductRepository,
	publisher events.Publisher,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:   or,
		productRepo: pr,
		publisher:   publisher,
		db:          db,
		now:         time.Now,
	}
}

// NewOrderNumber formats ORD-YYYYMMDD-XXXXXX with six random hex digits.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// OrderTotal is the sum of item subtotals plus the delivery price.
func OrderTotal(items []models.OrderItem, delivery decimal.Decimal) decimal.Decimal {
	total := delivery
	for _, it := range items {
		total = total.Add(it.Subtotal.Decimal)
	}
	return total
}

// --- Method Implementations ---

func (s *orderService) CreateOrder(ctx context.Context, actorID int64, req CreateOrderRequest) (*models.Order, error) {
	ids := make([]int64, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.productRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for i, it := range req.Items {
		product, ok := products[it.ProductID]
		if !ok {
			return nil, newValidationError(fmt.Sprintf("items[%d].productId", i), "does not reference an active product")
		}
		unit := product.SellingPrice.Decimal
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    it.Quantity,
			UnitPrice:   models.NewMoney(unit),
			Subtotal:    models.NewMoney(unit.Mul(decimal.NewFromInt(int64(it.Quantity)))),
		})
	}

	total := OrderTotal(items, *req.DeliveryPrice)
	if !validator.MoneyInRange(total) {
		return nil, newValidationError("items", "order total is too large")
	}

	now := s.now()
	order := &models.Order{
		OrderNumber:     NewOrderNumber(now),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		City:            strings.TrimSpace(req.City),
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentUnpaid,
		DeliveryPrice:   models.NewMoney(*req.DeliveryPrice),
		TotalAmount:     models.NewMoney(total),
		Notes:           utils.TrimPtr(req.Notes),
		CreatedBy:       &actorID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := s.orderRepo.CreateOrderItem(ctx, tx, &items[i]); err != nil {
			return nil, fmt.Errorf("failed to create order item for product %d: %w", items[i].ProductID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	order.Items = items

	s.publisher.Publish(ctx, events.Event{Type: events.OrderCreated, EntityID: order.ID, ActorID: actorID,
		Payload: map[string]interface{}{"orderNumber": order.OrderNumber, "totalAmount": order.TotalAmount}})
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order.Items = items
	return order, nil
}

// UpdateOrderStatus applies a lifecycle transition. Re-applying the current
// status succeeds without a write.
func (s *orderService) UpdateOrderStatus(ctx context.Context, actorID, orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if req.Status == nil && req.PaymentStatus == nil {
		return nil, newValidationError("status", "status or paymentStatus is required")
	}
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	next, nextPayment := order.Status, order.PaymentStatus
	if req.Status != nil {
		next = *req.Status
	}
	if req.PaymentStatus != nil {
		nextPayment = *req.PaymentStatus
	}
	if !previous.CanTransitionTo(next) {
		return nil, newValidationError("status", fmt.Sprintf("cannot change from %s to %s", previous, next))
	}
	if next == order.Status && nextPayment == order.PaymentStatus {
		return order, nil
	}

	order.Status, order.PaymentStatus = next, nextPayment
	if err := s.orderRepo.UpdateOrderStatus(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{Type: events.OrderStatusChanged, EntityID: order.ID, ActorID: actorID,
		Payload: map[string]interface{}{"from": previous, "to": order.Status, "paymentStatus": order.PaymentStatus}})
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, actorID, orderID int64) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	s.publisher.Publish(ctx, events.Event{Type: events.OrderDeleted, EntityID: order.ID, ActorID: actorID,
		Payload: map[string]interface{}{"orderNumber": order.OrderNumber}})
	return order, nil
}
