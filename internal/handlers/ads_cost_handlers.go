package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

var adsPlatforms = []string{
	string(models.PlatformMeta), string(models.PlatformTikTok), string(models.PlatformGoogle),
	string(models.PlatformSnapchat), string(models.PlatformOther),
}

// AdsCostHandler holds the ads cost service.
type AdsCostHandler struct {
	adsCostService services.AdsCostService
}

// NewAdsCostHandler creates a new AdsCostHandler.
func NewAdsCostHandler(as services.AdsCostService) *AdsCostHandler {
	return &AdsCostHandler{adsCostService: as}
}

// ListAdsCosts handles GET /ads-costs with a per-platform summary.
func (h *AdsCostHandler) ListAdsCosts(c *gin.Context) {
	p, ok := pagination(c, defaultExpensePageLimit)
	if !ok {
		return
	}
	platform, ok := enumQuery(c, "platform", adsPlatforms...)
	if !ok {
		return
	}
	filters := models.AdsCostFilters{Platform: models.AdsPlatform(platform), Page: p.Page, Limit: p.Limit}

	costs, total, summary, err := h.adsCostService.ListAdsCosts(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListAdsCosts", err)
		return
	}
	body := paginated("adsCosts", costs, total, p)
	body["summary"] = summary
	c.JSON(http.StatusOK, body)
}

// GetAdsCost handles GET /ads-costs/:id.
func (h *AdsCostHandler) GetAdsCost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cost, err := h.adsCostService.GetAdsCost(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetAdsCost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adsCost": cost})
}

// CreateAdsCost handles POST /ads-costs. costPerResult is always derived.
func (h *AdsCostHandler) CreateAdsCost(c *gin.Context) {
	var req services.CreateAdsCostRequest
	if !bindJSON(c, &req) {
		return
	}
	cost, err := h.adsCostService.CreateAdsCost(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "CreateAdsCost", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"adsCost": cost})
}

// UpdateAdsCost handles PUT /ads-costs/:id.
func (h *AdsCostHandler) UpdateAdsCost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateAdsCostRequest
	if !bindJSON(c, &req) {
		return
	}
	cost, err := h.adsCostService.UpdateAdsCost(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, "UpdateAdsCost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adsCost": cost})
}

// DeleteAdsCost handles DELETE /ads-costs/:id.
func (h *AdsCostHandler) DeleteAdsCost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cost, err := h.adsCostService.DeleteAdsCost(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "DeleteAdsCost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ads cost deleted", "adsCost": cost})
}
