package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shop_backoffice/internal/events"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"
	"shop_backoffice/pkg/validator"
)

// AdjustStockRequest DTO. IN and RETURN add Quantity, OUT removes it,
// ADJUSTMENT sets the absolute level.
type AdjustStockRequest struct {
	ProductID int64                   `json:"productId" binding:"required,gt=0"`
	Type      models.StockHistoryType `json:"type" binding:"required,oneof=IN OUT ADJUSTMENT RETURN"`
	Quantity  *int                    `json:"quantity" binding:"required,gte=0,max=2147483647"`
	Reason    *string                 `json:"reason" binding:"omitempty,max=500"`
}

// UpdateStockSettingsRequest DTO.
type UpdateStockSettingsRequest struct {
	MinStockLevel     *int    `json:"minStockLevel" binding:"omitempty,gte=0,max=2147483647"`
	WarehouseLocation *string `json:"warehouseLocation" binding:"omitempty,max=100"`
}

// StockOverview is the stock listing with stats over every active product.
type StockOverview struct {
	Stock []models.Stock    `json:"stock"`
	Stats models.StockStats `json:"stats"`
}

// StockAdjustment is the result of one adjustment.
type StockAdjustment struct {
	Stock   *models.Stock        `json:"stock"`
	History *models.StockHistory `json:"history"`
}

// StockService manages stock levels and the stock ledger.
type StockService interface {
	ListStock(ctx context.Context, lowStockOnly bool) (*StockOverview, error)
	ListHistory(ctx context.Context, filters models.StockHistoryFilters) ([]models.StockHistory, int, error)
	AdjustStock(ctx context.Context, actorID int64, req AdjustStockRequest) (*StockAdjustment, error)
	UpdateSettings(ctx context.Context, productID int64, req UpdateStockSettingsRequest) (*models.Stock, error)
}

type stockService struct {
	stock     repositories.StockRepository
	history   repositories.StockHistoryRepository
	publisher events.Publisher
	db        *sql.DB
}

// NewStockService creates a new instance of StockService.
func NewStockService(
	stock repositories.StockRepository,
	history repositories.StockHistoryRepository,
	publisher events.Publisher,
	db *sql.DB,
) StockService {
	return &stockService{stock: stock, history: history, publisher: publisher, db: db}
}

func (s *stockService) ListStock(ctx context.Context, lowStockOnly bool) (*StockOverview, error) {
	rows, err := s.stock.List(ctx, lowStockOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	stats, err := s.stock.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock stats: %w", err)
	}
	return &StockOverview{Stock: rows, Stats: stats}, nil
}

func (s *stockService) ListHistory(ctx context.Context, filters models.StockHistoryFilters) ([]models.StockHistory, int, error) {
	history, total, err := s.history.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stock history: %w", err)
	}
	return history, total, nil
}

// StockDelta converts a request into a signed change against current.
func StockDelta(kind models.StockHistoryType, quantity, current int) (int, *ValidationError) {
	switch kind {
	case models.StockIn, models.StockReturn:
		if quantity <= 0 {
			return 0, newValidationError("quantity", "must be greater than 0")
		}
		if quantity > validator.MaxInt32-current {
			return 0, newValidationError("quantity", "would exceed the maximum stock level")
		}
		return quantity, nil
	case models.StockOut:
		if quantity <= 0 {
			return 0, newValidationError("quantity", "must be greater than 0")
		}
		if quantity > current {
			return 0, newValidationError("quantity", fmt.Sprintf("exceeds available stock (%d)", current))
		}
		return -quantity, nil
	case models.StockAdjustment:
		return quantity - current, nil
	default:
		return 0, newValidationError("type", "must be one of: IN, OUT, ADJUSTMENT, RETURN")
	}
}

// AdjustStock updates the level and appends the ledger entry in one transaction.
func (s *stockService) AdjustStock(ctx context.Context, actorID int64, req AdjustStockRequest) (*StockAdjustment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	stock, err := s.stock.FindByProductID(ctx, tx, req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}

	delta, verr := StockDelta(req.Type, *req.Quantity, stock.Quantity)
	if verr != nil {
		return nil, verr
	}

	previous, current, err := s.stock.ApplyDelta(ctx, tx, req.ProductID, delta)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newValidationError("quantity", "would make stock negative")
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	entry := &models.StockHistory{
		ProductID:        req.ProductID,
		QuantityChange:   current - previous,
		Type:             req.Type,
		Reason:           utils.TrimPtr(req.Reason),
		PreviousQuantity: previous,
		NewQuantity:      current,
		CreatedBy:        &actorID,
	}
	if err := s.history.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to record stock history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	stock.Quantity = current
	stock.SetFlags()
	entry.ProductName = stock.ProductName
	entry.ProductSKU = stock.SKU

	s.publisher.Publish(ctx, events.Event{Type: events.StockAdjusted, EntityID: req.ProductID, ActorID: actorID,
		Payload: entry})
	return &StockAdjustment{Stock: stock, History: entry}, nil
}

func (s *stockService) UpdateSettings(ctx context.Context, productID int64, req UpdateStockSettingsRequest) (*models.Stock, error) {
	if req.MinStockLevel == nil && req.WarehouseLocation == nil {
		return nil, errEmptyUpdate
	}
	stock, err := s.stock.FindByProductID(ctx, nil, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load stock: %w", err)
	}
	if req.MinStockLevel != nil {
		stock.MinStockLevel = *req.MinStockLevel
	}
	if req.WarehouseLocation != nil {
		stock.WarehouseLocation = utils.TrimPtr(req.WarehouseLocation)
	}
	if err := s.stock.UpdateSettings(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to update stock settings: %w", err)
	}
	return stock, nil
}
