package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"

	"github.com/shopspring/decimal"
)

type fakeProductRepo struct {
	repositories.ProductRepository
	active map[int64]models.Product
}

func (r *fakeProductRepo) FindActiveByIDs(_ context.Context, ids []int64) (map[int64]models.Product, error) {
	out := map[int64]models.Product{}
	for _, id := range ids {
		if p, ok := r.active[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	repositories.OrderRepository
	orders  map[int64]*models.Order
	items   []models.OrderItem
	updates int
	deletes int
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, _ repositories.SQLExecutor, o *models.Order) error {
	o.ID = 77
	return nil
}

func (r *fakeOrderRepo) CreateOrderItem(_ context.Context, _ repositories.SQLExecutor, it *models.OrderItem) error {
	it.ID = int64(len(r.items) + 1)
	r.items = append(r.items, *it)
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetOrderItemsByOrderID(context.Context, int64) ([]models.OrderItem, error) {
	return []models.OrderItem{}, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, o *models.Order) error {
	r.updates++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(context.Context, int64) error {
	r.deletes++
	return nil
}

func money(s string) models.Money {
	return models.NewMoney(decimal.RequireFromString(s))
}

func TestOrderTotal(t *testing.T) {
	items := []models.OrderItem{
		{Subtotal: money("19.98")},
		{Subtotal: money("5.50")},
	}
	got := OrderTotal(items, decimal.RequireFromString("3.00"))
	if got.StringFixed(2) != "28.48" {
		t.Fatalf("total = %s", got.StringFixed(2))
	}
}

func TestNewOrderNumber(t *testing.T) {
	n := NewOrderNumber(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	if !regexp.MustCompile(`^ORD-20260309-[0-9A-F]{6}$`).MatchString(n) {
		t.Fatalf("unexpected order number %q", n)
	}
}

func TestCreateOrderPricesFromCatalogue(t *testing.T) {
	db, mock := newTxMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	products := &fakeProductRepo{active: map[int64]models.Product{
		1: {ID: 1, Name: "Lipstick", SKU: "LIP-1", SellingPrice: money("9.99")},
		2: {ID: 2, Name: "Mascara", SKU: "MAS-1", SellingPrice: money("12.50")},
	}}
	orders := &fakeOrderRepo{orders: map[int64]*models.Order{}}
	pub := &recordingPublisher{}
	svc := NewOrderService(orders, products, pub, db)

	delivery := decimal.RequireFromString("5")
	order, err := svc.CreateOrder(context.Background(), 3, CreateOrderRequest{
		CustomerName: "Ann", CustomerPhone: "+1", CustomerAddress: "Street 1", City: "Town",
		DeliveryPrice: &delivery,
		Items:         []CreateOrderItemRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.TotalAmount.StringFixed(2) != "37.48" {
		t.Fatalf("total = %s, want 37.48", order.TotalAmount.StringFixed(2))
	}
	if order.Status != models.OrderPending || order.PaymentStatus != models.PaymentUnpaid {
		t.Fatalf("unexpected initial status %s/%s", order.Status, order.PaymentStatus)
	}
	if len(orders.items) != 2 || orders.items[0].OrderID != 77 || orders.items[0].Subtotal.StringFixed(2) != "19.98" {
		t.Fatalf("items not stored correctly: %+v", orders.items)
	}
	if got := pub.types(); len(got) != 1 || got[0] != "order.created" {
		t.Fatalf("events = %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	db, _ := newTxMock(t)
	svc := NewOrderService(&fakeOrderRepo{}, &fakeProductRepo{active: map[int64]models.Product{}}, &recordingPublisher{}, db)
	delivery := decimal.Zero
	_, err := svc.CreateOrder(context.Background(), 1, CreateOrderRequest{
		CustomerName: "Ann", CustomerPhone: "+1", CustomerAddress: "A", City: "B",
		DeliveryPrice: &delivery, Items: []CreateOrderItemRequest{{ProductID: 9, Quantity: 1}},
	})
	if fieldOf(t, err) != "items[0].productId" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCreateOrderRejectsOversizedTotal(t *testing.T) {
	db, mock := newTxMock(t)
	products := &fakeProductRepo{active: map[int64]models.Product{
		1: {ID: 1, Name: "Safe", SKU: "SAFE-1", SellingPrice: money("9999999999.99")},
	}}
	svc := NewOrderService(&fakeOrderRepo{}, products, &recordingPublisher{}, db)
	delivery := decimal.Zero
	_, err := svc.CreateOrder(context.Background(), 1, CreateOrderRequest{
		CustomerName: "Ann", CustomerPhone: "+1", CustomerAddress: "A", City: "B",
		DeliveryPrice: &delivery, Items: []CreateOrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	if fieldOf(t, err) != "items" {
		t.Fatalf("unexpected error %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	status := func(s models.OrderStatus) *models.OrderStatus { return &s }
	newSvc := func(current models.OrderStatus) (OrderService, *fakeOrderRepo, *recordingPublisher) {
		orders := &fakeOrderRepo{orders: map[int64]*models.Order{
			1: {ID: 1, Status: current, PaymentStatus: models.PaymentUnpaid},
		}}
		pub := &recordingPublisher{}
		return NewOrderService(orders, &fakeProductRepo{}, pub, nil), orders, pub
	}

	t.Run("allowed transition", func(t *testing.T) {
		svc, orders, pub := newSvc(models.OrderPending)
		o, err := svc.UpdateOrderStatus(context.Background(), 2, 1, UpdateOrderStatusRequest{Status: status(models.OrderConfirmed)})
		if err != nil || o.Status != models.OrderConfirmed || orders.updates != 1 {
			t.Fatalf("got %v %+v updates=%d", err, o, orders.updates)
		}
		if got := pub.types(); len(got) != 1 || got[0] != "order.status_changed" {
			t.Fatalf("events = %v", got)
		}
	})

	t.Run("rejected transition", func(t *testing.T) {
		svc, orders, _ := newSvc(models.OrderPending)
		_, err := svc.UpdateOrderStatus(context.Background(), 2, 1, UpdateOrderStatusRequest{Status: status(models.OrderDelivered)})
		if fieldOf(t, err) != "status" || orders.updates != 0 {
			t.Fatalf("want status field error without a write, got %v", err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, orders, pub := newSvc(models.OrderDelivered)
		o, err := svc.UpdateOrderStatus(context.Background(), 2, 1, UpdateOrderStatusRequest{Status: status(models.OrderDelivered)})
		if err != nil || o.Status != models.OrderDelivered || orders.updates != 0 || len(pub.types()) != 0 {
			t.Fatalf("got %v updates=%d", err, orders.updates)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		svc, _, _ := newSvc(models.OrderPending)
		if _, err := svc.UpdateOrderStatus(context.Background(), 2, 404, UpdateOrderStatusRequest{Status: status(models.OrderConfirmed)}); err != ErrOrderNotFound {
			t.Fatalf("want ErrOrderNotFound, got %v", err)
		}
	})
}

func TestDeleteOrderChecksExistence(t *testing.T) {
	orders := &fakeOrderRepo{orders: map[int64]*models.Order{}}
	svc := NewOrderService(orders, &fakeProductRepo{}, &recordingPublisher{}, nil)
	if _, err := svc.DeleteOrder(context.Background(), 1, 404); err != ErrOrderNotFound || orders.deletes != 0 {
		t.Fatalf("want ErrOrderNotFound without delete, got %v (deletes=%d)", err, orders.deletes)
	}
}
