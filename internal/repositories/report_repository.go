package repositories

import (
	"context"
	"database/sql"
	"time"

	"shop_backoffice/internal/models"
)

// ReportRepository runs the read-only dashboard aggregates. Every monetary
// aggregate is wrapped in COALESCE so an empty table yields zero.
type ReportRepository interface {
	ActiveProductCount(ctx context.Context) (int, error)
	StockTotals(ctx context.Context) (value models.Money, units int64, err error)
	LowStockCount(ctx context.Context) (int, error)
	OutOfStockCount(ctx context.Context) (int, error)
	DeliveredRevenue(ctx context.Context, since *time.Time) (models.Money, error)
	OrdersCreatedSince(ctx context.Context, since time.Time) (int, error)
	OrderCountByStatus(ctx context.Context, status models.OrderStatus) (int, error)
	OrderStatusHistogram(ctx context.Context) (map[models.OrderStatus]int, error)
	DeliveredRevenueByMonth(ctx context.Context, since time.Time) ([]models.MonthlyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	LowStockProducts(ctx context.Context, limit int) ([]models.Stock, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) count(ctx context.Context, op, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapError(op, err)
	}
	return n, nil
}

func (r *reportRepository) ActiveProductCount(ctx context.Context) (int, error) {
	return r.count(ctx, "counting active products", `SELECT COUNT(*) FROM products WHERE is_active = TRUE`)
}

func (r *reportRepository) StockTotals(ctx context.Context) (models.Money, int64, error) {
	var value models.Money
	var units int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(s.quantity * p.cost_price), 0), COALESCE(SUM(s.quantity), 0)
		   FROM stock s
		   JOIN products p ON p.id = s.product_id
		  WHERE p.is_active = TRUE`).Scan(&value, &units)
	if err != nil {
		return value, 0, wrapError("computing stock totals", err)
	}
	return value, units, nil
}

func (r *reportRepository) LowStockCount(ctx context.Context) (int, error) {
	return r.count(ctx, "counting low stock",
		`SELECT COUNT(*) FROM stock s JOIN products p ON p.id = s.product_id
		  WHERE p.is_active = TRUE AND s.quantity < s.min_stock_level`)
}

func (r *reportRepository) OutOfStockCount(ctx context.Context) (int, error) {
	return r.count(ctx, "counting out of stock",
		`SELECT COUNT(*) FROM stock s JOIN products p ON p.id = s.product_id
		  WHERE p.is_active = TRUE AND s.quantity = 0`)
}

// DeliveredRevenue sums delivered order totals, optionally from since onwards.
func (r *reportRepository) DeliveredRevenue(ctx context.Context, since *time.Time) (models.Money, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1`
	args := []interface{}{models.OrderDelivered}
	if since != nil {
		query += ` AND created_at >= $2`
		args = append(args, *since)
	}
	var revenue models.Money
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return revenue, wrapError("computing revenue", err)
	}
	return revenue, nil
}

func (r *reportRepository) OrdersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "counting recent orders", `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since)
}

func (r *reportRepository) OrderCountByStatus(ctx context.Context, status models.OrderStatus) (int, error) {
	return r.count(ctx, "counting orders by status", `SELECT COUNT(*) FROM orders WHERE status = $1`, status)
}

func (r *reportRepository) OrderStatusHistogram(ctx context.Context) (map[models.OrderStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, wrapError("grouping orders by status", err)
	}
	defer rows.Close()

	out := map[models.OrderStatus]int{}
	for rows.Next() {
		var status models.OrderStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, wrapError("scanning status histogram", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating status histogram", err)
	}
	return out, nil
}

// DeliveredRevenueByMonth returns only the months that have delivered orders.
// Months are UTC calendar months regardless of the session time zone.
func (r *reportRepository) DeliveredRevenueByMonth(ctx context.Context, since time.Time) ([]models.MonthlyRevenue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT TO_CHAR(DATE_TRUNC('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
		        COALESCE(SUM(total_amount), 0), COUNT(*)
		   FROM orders
		  WHERE status = $1 AND created_at >= $2
		  GROUP BY month
		  ORDER BY month`, models.OrderDelivered, since)
	if err != nil {
		return nil, wrapError("grouping revenue by month", err)
	}
	defer rows.Close()

	out := []models.MonthlyRevenue{}
	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Orders); err != nil {
			return nil, wrapError("scanning monthly revenue", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating monthly revenue", err)
	}
	return out, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.sku, COALESCE(SUM(oi.quantity), 0), COALESCE(SUM(oi.subtotal), 0)
		   FROM order_items oi
		   JOIN orders o ON o.id = oi.order_id
		   JOIN products p ON p.id = oi.product_id
		  WHERE o.status = $1
		  GROUP BY p.id, p.name, p.sku
		  ORDER BY SUM(oi.quantity) DESC, p.id
		  LIMIT $2`, models.OrderDelivered, limit)
	if err != nil {
		return nil, wrapError("ranking top products", err)
	}
	defer rows.Close()

	out := []models.TopProduct{}
	for rows.Next() {
		var t models.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.SKU, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, wrapError("scanning top product", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating top products", err)
	}
	return out, nil
}

func (r *reportRepository) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders o ORDER BY o.created_at DESC, o.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapError("listing recent orders", err)
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, wrapError("scanning recent order", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating recent orders", err)
	}
	return out, nil
}

func (r *reportRepository) LowStockProducts(ctx context.Context, limit int) ([]models.Stock, error) {
	rows, err := r.db.QueryContext(ctx,
		stockSelect+` WHERE s.quantity < s.min_stock_level ORDER BY s.quantity ASC, p.name ASC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapError("listing low stock products", err)
	}
	defer rows.Close()

	out := []models.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, wrapError("scanning low stock product", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating low stock products", err)
	}
	return out, nil
}
