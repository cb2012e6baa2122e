package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultHistoryPageLimit = 20

// StockHandler holds the stock service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// ListStock handles GET /stock?lowStock=true|false. The stats always cover
// every active product regardless of the filter.
func (h *StockHandler) ListStock(c *gin.Context) {
	lowStock, ok := enumQuery(c, "lowStock", "true", "false")
	if !ok {
		return
	}
	overview, err := h.stockService.ListStock(c.Request.Context(), lowStock == "true")
	if err != nil {
		respondServiceError(c, "ListStock", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ListHistory handles GET /stock/history, newest first.
func (h *StockHandler) ListHistory(c *gin.Context) {
	p, ok := pagination(c, defaultHistoryPageLimit)
	if !ok {
		return
	}
	filters := models.StockHistoryFilters{Page: p.Page, Limit: p.Limit}
	if raw := c.Query("productId"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			utils.RespondValidationFailed(c, []utils.FieldError{{Field: "productId", Message: "must be a positive integer"}})
			return
		}
		filters.ProductID = &id
	}

	history, total, err := h.stockService.ListHistory(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListHistory", err)
		return
	}
	c.JSON(http.StatusOK, paginated("history", history, total, p))
}

// AdjustStock handles POST /stock/adjust.
func (h *StockHandler) AdjustStock(c *gin.Context) {
	var req services.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.stockService.AdjustStock(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "AdjustStock", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateSettings handles PUT /stock/:productId.
func (h *StockHandler) UpdateSettings(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req services.UpdateStockSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	stock, err := h.stockService.UpdateSettings(c.Request.Context(), productID, req)
	if err != nil {
		respondServiceError(c, "UpdateStockSettings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}
