package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// StockRepository defines stock level operations. Only active products are visible.
type StockRepository interface {
	Create(ctx context.Context, executor SQLExecutor, stock *models.Stock) error
	FindByProductID(ctx context.Context, executor SQLExecutor, productID int64) (*models.Stock, error)
	ApplyDelta(ctx context.Context, executor SQLExecutor, productID int64, delta int) (previous, current int, err error)
	UpdateSettings(ctx context.Context, stock *models.Stock) error
	List(ctx context.Context, lowStockOnly bool) ([]models.Stock, error)
	Stats(ctx context.Context) (models.StockStats, error)
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

const stockSelect = `SELECT s.product_id, s.quantity, s.min_stock_level, s.warehouse_location, s.last_updated,
	       p.name, p.sku, p.category, p.cost_price, p.selling_price
	  FROM stock s
	  JOIN products p ON p.id = s.product_id AND p.is_active = TRUE`

func scanStock(row scanner) (*models.Stock, error) {
	s := &models.Stock{}
	var cost, selling models.Money
	if err := row.Scan(&s.ProductID, &s.Quantity, &s.MinStockLevel, &s.WarehouseLocation, &s.LastUpdated,
		&s.ProductName, &s.SKU, &s.Category, &cost, &selling); err != nil {
		return nil, err
	}
	s.CostPrice = &cost
	s.SellingPrice = &selling
	s.SetFlags()
	return s, nil
}

func (r *stockRepository) Create(ctx context.Context, executor SQLExecutor, stock *models.Stock) error {
	query := `INSERT INTO stock (product_id, quantity, min_stock_level, warehouse_location)
	          VALUES ($1, $2, $3, $4)
	          RETURNING last_updated`
	err := executor.QueryRowContext(ctx, query, stock.ProductID, stock.Quantity, stock.MinStockLevel, stock.WarehouseLocation).
		Scan(&stock.LastUpdated)
	if err != nil {
		return wrapError("creating stock", err)
	}
	stock.SetFlags()
	return nil
}

func (r *stockRepository) FindByProductID(ctx context.Context, executor SQLExecutor, productID int64) (*models.Stock, error) {
	if executor == nil {
		executor = r.db
	}
	s, err := scanStock(executor.QueryRowContext(ctx, stockSelect+` WHERE s.product_id = $1`, productID))
	if err != nil {
		return nil, wrapError("finding stock", err)
	}
	return s, nil
}

// ApplyDelta adds delta to the quantity in a single statement. It returns
// ErrNotFound when no row matched, either because the product has no active
// stock row or because the result would go below zero.
func (r *stockRepository) ApplyDelta(ctx context.Context, executor SQLExecutor, productID int64, delta int) (int, int, error) {
	query := `UPDATE stock s
	          SET quantity = s.quantity + $2, last_updated = NOW()
	          FROM products p
	          WHERE s.product_id = $1 AND p.id = s.product_id AND p.is_active = TRUE
	            AND s.quantity + $2 >= 0
	          RETURNING s.quantity - $2, s.quantity`
	var previous, current int
	if err := executor.QueryRowContext(ctx, query, productID, delta).Scan(&previous, &current); err != nil {
		return 0, 0, wrapError("adjusting stock", err)
	}
	return previous, current, nil
}

func (r *stockRepository) UpdateSettings(ctx context.Context, stock *models.Stock) error {
	query := `UPDATE stock SET min_stock_level = $2, warehouse_location = $3, last_updated = NOW()
	          WHERE product_id = $1
	          RETURNING last_updated`
	err := r.db.QueryRowContext(ctx, query, stock.ProductID, stock.MinStockLevel, stock.WarehouseLocation).
		Scan(&stock.LastUpdated)
	if err != nil {
		return wrapError("updating stock settings", err)
	}
	stock.SetFlags()
	return nil
}

func (r *stockRepository) List(ctx context.Context, lowStockOnly bool) ([]models.Stock, error) {
	query := stockSelect
	if lowStockOnly {
		query += ` WHERE s.quantity < s.min_stock_level`
	}
	query += ` ORDER BY s.quantity ASC, p.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("listing stock", err)
	}
	defer rows.Close()

	stock := []models.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, wrapError("scanning stock", err)
		}
		stock = append(stock, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating stock", err)
	}
	return stock, nil
}

// Stats covers every active product regardless of any list filter.
func (r *stockRepository) Stats(ctx context.Context) (models.StockStats, error) {
	var stats models.StockStats
	query := `SELECT COUNT(*),
	                 COALESCE(SUM(s.quantity), 0),
	                 COALESCE(SUM(s.quantity * p.cost_price), 0),
	                 COUNT(*) FILTER (WHERE s.quantity < s.min_stock_level),
	                 COUNT(*) FILTER (WHERE s.quantity = 0)
	            FROM stock s
	            JOIN products p ON p.id = s.product_id AND p.is_active = TRUE`
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalProducts, &stats.TotalUnits, &stats.TotalValue,
		&stats.LowStockCount, &stats.OutOfStockCount)
	if err != nil {
		return stats, wrapError("computing stock stats", err)
	}
	return stats, nil
}
