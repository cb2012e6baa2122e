package models

import "time"

// ProductCategory is the closed product category enum.
type ProductCategory string

const (
	CategoryElectronics ProductCategory = "Electronics"
	CategoryClothing    ProductCategory = "Clothing"
	CategoryBeauty      ProductCategory = "Beauty"
	CategoryHome        ProductCategory = "Home"
	CategoryAccessories ProductCategory = "Accessories"
	CategoryFood        ProductCategory = "Food"
	CategoryOther       ProductCategory = "Other"
)

// Product is a sellable catalogue entry.
type Product struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Barcode        *string         `json:"barcode"`
	Name           string          `json:"name"`
	Category       ProductCategory `json:"category"`
	CustomCategory *string         `json:"customCategory"`
	SellingPrice   Money           `json:"sellingPrice"`
	CostPrice      Money           `json:"costPrice"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Stock          *Stock          `json:"stock,omitempty"`
}

// ProductFilters narrows product listings. Only active products are listed.
type ProductFilters struct {
	Search   string
	Category ProductCategory
	Page     int
	Limit    int
}

// Stock is the single stock row of a product.
type Stock struct {
	ProductID         int64     `json:"productId"`
	Quantity          int       `json:"quantity"`
	MinStockLevel     int       `json:"minStockLevel"`
	WarehouseLocation *string   `json:"warehouseLocation"`
	LastUpdated       time.Time `json:"lastUpdated"`
	IsLowStock        bool      `json:"isLowStock"`
	IsOutOfStock      bool      `json:"isOutOfStock"`

	ProductName  string          `json:"productName,omitempty"`
	SKU          string          `json:"sku,omitempty"`
	Category     ProductCategory `json:"category,omitempty"`
	CostPrice    *Money          `json:"costPrice,omitempty"`
	SellingPrice *Money          `json:"sellingPrice,omitempty"`
}

// SetFlags derives the low and out of stock markers from quantity.
func (s *Stock) SetFlags() {
	s.IsLowStock = s.Quantity < s.MinStockLevel
	s.IsOutOfStock = s.Quantity == 0
}

// StockStats summarises stock over all active products.
type StockStats struct {
	TotalProducts   int   `json:"totalProducts"`
	TotalUnits      int64 `json:"totalUnits"`
	TotalValue      Money `json:"totalValue"`
	LowStockCount   int   `json:"lowStockCount"`
	OutOfStockCount int   `json:"outOfStockCount"`
}

// StockHistoryType classifies a stock ledger entry.
type StockHistoryType string

const (
	StockInitial    StockHistoryType = "INITIAL"
	StockIn         StockHistoryType = "IN"
	StockOut        StockHistoryType = "OUT"
	StockAdjustment StockHistoryType = "ADJUSTMENT"
	StockReturn     StockHistoryType = "RETURN"
)

// StockHistory is one append-only ledger row.
type StockHistory struct {
	ID               int64            `json:"id"`
	ProductID        int64            `json:"productId"`
	QuantityChange   int              `json:"quantityChange"`
	Type             StockHistoryType `json:"type"`
	Reason           *string          `json:"reason"`
	PreviousQuantity int              `json:"previousQuantity"`
	NewQuantity      int              `json:"newQuantity"`
	CreatedBy        *int64           `json:"createdBy"`
	CreatedAt        time.Time        `json:"createdAt"`

	ProductName   string  `json:"productName,omitempty"`
	ProductSKU    string  `json:"productSku,omitempty"`
	CreatedByName *string `json:"createdByName,omitempty"`
}

// StockHistoryFilters narrows the ledger listing.
type StockHistoryFilters struct {
	ProductID *int64
	Page      int
	Limit     int
}
