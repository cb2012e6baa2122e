package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(ctx context.Context, executor SQLExecutor, order *models.Order) error
	CreateOrderItem(ctx context.Context, executor SQLExecutor, item *models.OrderItem) error
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error)
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, orderID int64) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `o.id, o.order_number, o.customer_name, o.customer_phone, o.customer_address, o.city,
	o.status, o.payment_status, o.delivery_price, o.total_amount, o.notes, o.created_by, o.created_at, o.updated_at`

func scanOrder(row scanner) (*models.Order, error) {
	o := &models.Order{}
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.City,
		&o.Status, &o.PaymentStatus, &o.DeliveryPrice, &o.TotalAmount, &o.Notes, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return o, nil
}

// --- Order Methods ---

func (r *orderRepository) CreateOrder(ctx context.Context, executor SQLExecutor, order *models.Order) error {
	query := `INSERT INTO orders
	            (order_number, customer_name, customer_phone, customer_address, city,
	             status, payment_status, delivery_price, total_amount, notes, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at, updated_at`
	err := executor.QueryRowContext(ctx, query,
		order.OrderNumber, order.CustomerName, order.CustomerPhone, order.CustomerAddress, order.City,
		order.Status, order.PaymentStatus, order.DeliveryPrice, order.TotalAmount, order.Notes, order.CreatedBy,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return wrapError("creating order", err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, orderID))
	if err != nil {
		return nil, wrapError("getting order", err)
	}
	return o, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error) {
	var where whereBuilder
	if filters.Status != "" {
		where.add("o.status = $%d", filters.Status)
	}
	if filters.Search != "" {
		where.addSearch(filters.Search, "o.order_number", "o.customer_name", "o.customer_phone", "o.city")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders o`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting orders", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders o`+where.clause()+` ORDER BY o.created_at DESC, o.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing orders", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, wrapError("scanning order", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating orders", err)
	}
	return orders, total, nil
}

// UpdateOrderStatus writes both status columns of order.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	query := `UPDATE orders SET status = $2, payment_status = $3, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	if err := r.db.QueryRowContext(ctx, query, order.ID, order.Status, order.PaymentStatus).Scan(&order.UpdatedAt); err != nil {
		return wrapError("updating order status", err)
	}
	return nil
}

// DeleteOrder removes the order; its items go with it through the cascade.
func (r *orderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return wrapError("deleting order", err)
	}
	return requireOneRow("deleting order", res)
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItem(ctx context.Context, executor SQLExecutor, item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRowContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal).
		Scan(&item.ID)
	if err != nil {
		return wrapError("creating order item", err)
	}
	return nil
}

func (r *orderRepository) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, p.name, p.sku, oi.quantity, oi.unit_price, oi.subtotal
	            FROM order_items oi
	            JOIN products p ON p.id = oi.product_id
	           WHERE oi.order_id = $1
	           ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, wrapError("getting order items", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductSKU,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, wrapError("scanning order item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating order items", err)
	}
	return items, nil
}
