package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the catalogue operations.
type ProductRepository interface {
	Create(ctx context.Context, executor SQLExecutor, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindActiveByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, filters models.ProductFilters) ([]models.Product, int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `SELECT p.id, p.sku, p.barcode, p.name, p.category, p.custom_category,
	       p.selling_price, p.cost_price, p.is_active, p.created_at, p.updated_at,
	       s.quantity, s.min_stock_level, s.warehouse_location, s.last_updated
	  FROM products p
	  LEFT JOIN stock s ON s.product_id = p.id`

func scanProduct(row scanner) (*models.Product, error) {
	p := &models.Product{}
	var (
		quantity, minLevel sql.NullInt64
		location           sql.NullString
		lastUpdated        sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Category, &p.CustomCategory,
		&p.SellingPrice, &p.CostPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&quantity, &minLevel, &location, &lastUpdated); err != nil {
		return nil, err
	}
	if quantity.Valid {
		st := &models.Stock{
			ProductID:     p.ID,
			Quantity:      int(quantity.Int64),
			MinStockLevel: int(minLevel.Int64),
			LastUpdated:   lastUpdated.Time,
		}
		if location.Valid {
			loc := location.String
			st.WarehouseLocation = &loc
		}
		st.SetFlags()
		p.Stock = st
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, executor SQLExecutor, product *models.Product) error {
	query := `INSERT INTO products (sku, barcode, name, category, custom_category, selling_price, cost_price, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	          RETURNING id, is_active, created_at, updated_at`
	err := executor.QueryRowContext(ctx, query,
		product.SKU, product.Barcode, product.Name, product.Category, product.CustomCategory,
		product.SellingPrice, product.CostPrice,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return wrapError("creating product", err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, wrapError("finding product", err)
	}
	return p, nil
}

// FindActiveByIDs returns the active products among ids, keyed by id.
func (r *productRepository) FindActiveByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx,
		productSelect+` WHERE p.id = ANY($1) AND p.is_active = TRUE`, pq.Array(ids))
	if err != nil {
		return nil, wrapError("finding products", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapError("scanning product", err)
		}
		out[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterating products", err)
	}
	return out, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products
	          SET sku = $2, barcode = $3, name = $4, category = $5, custom_category = $6,
	              selling_price = $7, cost_price = $8, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, product.ID, product.SKU, product.Barcode, product.Name,
		product.Category, product.CustomCategory, product.SellingPrice, product.CostPrice,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return wrapError("updating product", err)
	}
	return nil
}

func (r *productRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return wrapError("deactivating product", err)
	}
	return requireOneRow("deactivating product", res)
}

func (r *productRepository) List(ctx context.Context, filters models.ProductFilters) ([]models.Product, int, error) {
	var where whereBuilder
	where.addRaw("p.is_active = TRUE")
	if filters.Category != "" {
		where.add("p.category = $%d", filters.Category)
	}
	if filters.Search != "" {
		where.addSearch(filters.Search, "p.name", "p.sku", "p.barcode")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting products", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx, productSelect+where.clause()+` ORDER BY p.created_at DESC, p.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, wrapError("scanning product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating products", err)
	}
	return products, total, nil
}
