package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shop_backoffice/internal/events"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultMinStockLevel applies when a product is created without one.
const DefaultMinStockLevel = 10

// CreateProductRequest DTO. Creates the product, its stock row and the opening ledger entry.
type CreateProductRequest struct {
	SKU               string                 `json:"sku" binding:"required,max=64"`
	Barcode           *string                `json:"barcode" binding:"omitempty,max=64"`
	Name              string                 `json:"name" binding:"required,max=200"`
	Category          models.ProductCategory `json:"category" binding:"required,oneof=Electronics Clothing Beauty Home Accessories Food Other"`
	CustomCategory    *string                `json:"customCategory" binding:"omitempty,max=100"`
	SellingPrice      *decimal.Decimal       `json:"sellingPrice" binding:"required,gte=0,money"`
	CostPrice         *decimal.Decimal       `json:"costPrice" binding:"required,gte=0,money"`
	InitialQuantity   int                    `json:"initialQuantity" binding:"gte=0,max=2147483647"`
	MinStockLevel     *int                   `json:"minStockLevel" binding:"omitempty,gte=0,max=2147483647"`
	WarehouseLocation *string                `json:"warehouseLocation" binding:"omitempty,max=100"`
}

// UpdateProductRequest DTO; only provided fields change.
type UpdateProductRequest struct {
	SKU            *string                 `json:"sku" binding:"omitempty,min=1,max=64"`
	Barcode        *string                 `json:"barcode" binding:"omitempty,max=64"`
	Name           *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Category       *models.ProductCategory `json:"category" binding:"omitempty,oneof=Electronics Clothing Beauty Home Accessories Food Other"`
	CustomCategory *string                 `json:"customCategory" binding:"omitempty,max=100"`
	SellingPrice   *decimal.Decimal        `json:"sellingPrice" binding:"omitempty,gte=0,money"`
	CostPrice      *decimal.Decimal        `json:"costPrice" binding:"omitempty,gte=0,money"`
}

// ProductService manages the catalogue.
type ProductService interface {
	ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, int, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, actorID int64, req CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*models.Product, error)
	DeactivateProduct(ctx context.Context, id int64) (*models.Product, error)
}

type productService struct {
	products  repositories.ProductRepository
	stock     repositories.StockRepository
	history   repositories.StockHistoryRepository
	publisher events.Publisher
	db        *sql.DB
}

// NewProductService creates a new instance of ProductService.
func NewProductService(
	products repositories.ProductRepository,
	stock repositories.StockRepository,
	history repositories.StockHistoryRepository,
	publisher events.Publisher,
	db *sql.DB,
) ProductService {
	return &productService{products: products, stock: stock, history: history, publisher: publisher, db: db}
}

func (s *productService) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, int, error) {
	products, total, err := s.products.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, actorID int64, req CreateProductRequest) (*models.Product, error) {
	custom, verr := requireCustomLabel("customCategory", req.Category == models.CategoryOther, req.CustomCategory)
	if verr != nil {
		return nil, verr
	}

	product := &models.Product{
		SKU:            strings.TrimSpace(req.SKU),
		Barcode:        utils.TrimPtr(req.Barcode),
		Name:           strings.TrimSpace(req.Name),
		Category:       req.Category,
		CustomCategory: custom,
		SellingPrice:   models.NewMoney(*req.SellingPrice),
		CostPrice:      models.NewMoney(*req.CostPrice),
	}
	minLevel := DefaultMinStockLevel
	if req.MinStockLevel != nil {
		minLevel = *req.MinStockLevel
	}
	stock := &models.Stock{
		Quantity:          req.InitialQuantity,
		MinStockLevel:     minLevel,
		WarehouseLocation: utils.TrimPtr(req.WarehouseLocation),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.products.Create(ctx, tx, product); err != nil {
		return nil, mapProductWriteError(err)
	}
	stock.ProductID = product.ID
	if err := s.stock.Create(ctx, tx, stock); err != nil {
		return nil, fmt.Errorf("failed to create stock row: %w", err)
	}
	entry := &models.StockHistory{
		ProductID:        product.ID,
		QuantityChange:   req.InitialQuantity,
		Type:             models.StockInitial,
		Reason:           utils.NewNullString("Initial stock"),
		PreviousQuantity: 0,
		NewQuantity:      req.InitialQuantity,
		CreatedBy:        &actorID,
	}
	if err := s.history.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to record initial stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product: %w", err)
	}

	product.Stock = stock
	s.publisher.Publish(ctx, events.Event{Type: events.ProductCreated, EntityID: product.ID, ActorID: actorID,
		Payload: map[string]interface{}{"sku": product.SKU, "initialQuantity": req.InitialQuantity}})
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*models.Product, error) {
	if req.SKU == nil && req.Barcode == nil && req.Name == nil && req.Category == nil &&
		req.CustomCategory == nil && req.SellingPrice == nil && req.CostPrice == nil {
		return nil, errEmptyUpdate
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}

	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Barcode != nil {
		product.Barcode = utils.TrimPtr(req.Barcode)
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.CustomCategory != nil {
		product.CustomCategory = req.CustomCategory
	}
	if req.SellingPrice != nil {
		product.SellingPrice = models.NewMoney(*req.SellingPrice)
	}
	if req.CostPrice != nil {
		product.CostPrice = models.NewMoney(*req.CostPrice)
	}

	custom, verr := requireCustomLabel("customCategory", product.Category == models.CategoryOther, product.CustomCategory)
	if verr != nil {
		return nil, verr
	}
	product.CustomCategory = custom

	if err := s.products.Update(ctx, product); err != nil {
		return nil, mapProductWriteError(err)
	}
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.products.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to deactivate product: %w", err)
	}
	product.IsActive = false
	return product, nil
}

func mapProductWriteError(err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		if strings.Contains(err.Error(), "barcode") {
			return newValidationError("barcode", "is already used by an active product")
		}
		return newValidationError("sku", "is already used by an active product")
	}
	return fmt.Errorf("failed to save product: %w", err)
}
