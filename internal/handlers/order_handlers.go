package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultOrderPageLimit = 10

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its items.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders handles fetching orders with status and search filters, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	p, ok := pagination(c, defaultOrderPageLimit)
	if !ok {
		return
	}
	statuses := make([]string, len(models.AllOrderStatuses))
	for i, s := range models.AllOrderStatuses {
		statuses[i] = string(s)
	}
	status, ok := enumQuery(c, "status", statuses...)
	if !ok {
		return
	}
	filters := models.OrderFilters{Status: models.OrderStatus(status), Search: c.Query("search"), Page: p.Page, Limit: p.Limit}

	orders, total, err := h.orderService.GetOrders(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "GetOrders", err)
		return
	}
	c.JSON(http.StatusOK, paginated("orders", orders, total, p))
}

// GetOrderByID handles fetching a single order with its items.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetOrderByID", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus handles PATCH /orders/:id/status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		respondServiceError(c, "UpdateOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder handles deleting an order together with its items.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.DeleteOrder(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondServiceError(c, "DeleteOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order": order})
}
