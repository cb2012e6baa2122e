package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// StockHistoryRepository is append-only: there is no update or delete.
type StockHistoryRepository interface {
	Create(ctx context.Context, executor SQLExecutor, entry *models.StockHistory) error
	List(ctx context.Context, filters models.StockHistoryFilters) ([]models.StockHistory, int, error)
}

type stockHistoryRepository struct {
	db *sql.DB
}

// NewStockHistoryRepository creates a new instance of StockHistoryRepository.
func NewStockHistoryRepository(db *sql.DB) StockHistoryRepository {
	return &stockHistoryRepository{db: db}
}

func (r *stockHistoryRepository) Create(ctx context.Context, executor SQLExecutor, entry *models.StockHistory) error {
	query := `INSERT INTO stock_history
	          (product_id, quantity_change, type, reason, previous_quantity, new_quantity, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query,
		entry.ProductID, entry.QuantityChange, entry.Type, entry.Reason,
		entry.PreviousQuantity, entry.NewQuantity, entry.CreatedBy,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return wrapError("creating stock history", err)
	}
	return nil
}

func (r *stockHistoryRepository) List(ctx context.Context, filters models.StockHistoryFilters) ([]models.StockHistory, int, error) {
	var where whereBuilder
	if filters.ProductID != nil {
		where.add("h.product_id = $%d", *filters.ProductID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_history h`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting stock history", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	query := `SELECT h.id, h.product_id, h.quantity_change, h.type, h.reason, h.previous_quantity,
	                 h.new_quantity, h.created_by, h.created_at, p.name, p.sku, u.name
	            FROM stock_history h
	            JOIN products p ON p.id = h.product_id
	            LEFT JOIN users u ON u.id = h.created_by` +
		where.clause() + ` ORDER BY h.created_at DESC, h.id DESC` + suffix

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapError("listing stock history", err)
	}
	defer rows.Close()

	history := []models.StockHistory{}
	for rows.Next() {
		var h models.StockHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.QuantityChange, &h.Type, &h.Reason, &h.PreviousQuantity,
			&h.NewQuantity, &h.CreatedBy, &h.CreatedAt, &h.ProductName, &h.ProductSKU, &h.CreatedByName); err != nil {
			return nil, 0, wrapError("scanning stock history", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating stock history", err)
	}
	return history, total, nil
}
