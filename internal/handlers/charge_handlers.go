package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultExpensePageLimit = 10

var chargeTypes = []string{
	string(models.ChargeRent), string(models.ChargeUtilities), string(models.ChargeSalaries),
	string(models.ChargeShipping), string(models.ChargePackaging), string(models.ChargeMarketing),
	string(models.ChargeEquipment), string(models.ChargeOther),
}

// ChargeHandler holds the charge service.
type ChargeHandler struct {
	chargeService services.ChargeService
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(cs services.ChargeService) *ChargeHandler {
	return &ChargeHandler{chargeService: cs}
}

// ListCharges handles GET /charges with a summary over the same filter.
func (h *ChargeHandler) ListCharges(c *gin.Context) {
	p, ok := pagination(c, defaultExpensePageLimit)
	if !ok {
		return
	}
	chargeType, ok := enumQuery(c, "type", chargeTypes...)
	if !ok {
		return
	}
	filters := models.ChargeFilters{Type: models.ChargeType(chargeType), Page: p.Page, Limit: p.Limit}

	charges, total, summary, err := h.chargeService.ListCharges(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListCharges", err)
		return
	}
	body := paginated("charges", charges, total, p)
	body["summary"] = summary
	c.JSON(http.StatusOK, body)
}

// GetCharge handles GET /charges/:id.
func (h *ChargeHandler) GetCharge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	charge, err := h.chargeService.GetCharge(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetCharge", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge})
}

// CreateCharge handles POST /charges.
func (h *ChargeHandler) CreateCharge(c *gin.Context) {
	var req services.CreateChargeRequest
	if !bindJSON(c, &req) {
		return
	}
	charge, err := h.chargeService.CreateCharge(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "CreateCharge", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"charge": charge})
}

// UpdateCharge handles PUT /charges/:id.
func (h *ChargeHandler) UpdateCharge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateChargeRequest
	if !bindJSON(c, &req) {
		return
	}
	charge, err := h.chargeService.UpdateCharge(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, "UpdateCharge", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge})
}

// DeleteCharge handles DELETE /charges/:id.
func (h *ChargeHandler) DeleteCharge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	charge, err := h.chargeService.DeleteCharge(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "DeleteCharge", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Charge deleted", "charge": charge})
}
