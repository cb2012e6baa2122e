package handlers

import (
	"net/http"
	"strconv"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SalaryHandler holds the salary service.
type SalaryHandler struct {
	salaryService services.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler.
func NewSalaryHandler(ss services.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaryService: ss}
}

// intQuery parses an optional bounded integer query parameter.
func intQuery(c *gin.Context, name string, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		utils.RespondValidationFailed(c, []utils.FieldError{{
			Field:   name,
			Message: "must be an integer between " + strconv.Itoa(lo) + " and " + strconv.Itoa(hi),
		}})
		return 0, false
	}
	return v, true
}

// ListSalaries handles GET /salaries with month and year filters.
func (h *SalaryHandler) ListSalaries(c *gin.Context) {
	p, ok := pagination(c, defaultExpensePageLimit)
	if !ok {
		return
	}
	month, ok := intQuery(c, "month", 1, 12)
	if !ok {
		return
	}
	year, ok := intQuery(c, "year", 2000, 2100)
	if !ok {
		return
	}
	filters := models.SalaryFilters{Month: month, Year: year, Page: p.Page, Limit: p.Limit}

	salaries, total, summary, err := h.salaryService.ListSalaries(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListSalaries", err)
		return
	}
	body := paginated("salaries", salaries, total, p)
	body["summary"] = summary
	c.JSON(http.StatusOK, body)
}

// GetSalary handles GET /salaries/:id.
func (h *SalaryHandler) GetSalary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	salary, err := h.salaryService.GetSalary(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetSalary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salary": salary})
}

// CreateSalary handles POST /salaries.
func (h *SalaryHandler) CreateSalary(c *gin.Context) {
	var req services.CreateSalaryRequest
	if !bindJSON(c, &req) {
		return
	}
	salary, err := h.salaryService.CreateSalary(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "CreateSalary", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"salary": salary})
}

// UpdateSalary handles PUT /salaries/:id.
func (h *SalaryHandler) UpdateSalary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateSalaryRequest
	if !bindJSON(c, &req) {
		return
	}
	salary, err := h.salaryService.UpdateSalary(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, "UpdateSalary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salary": salary})
}

// DeleteSalary handles DELETE /salaries/:id.
func (h *SalaryHandler) DeleteSalary(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	salary, err := h.salaryService.DeleteSalary(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "DeleteSalary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Salary deleted", "salary": salary})
}
