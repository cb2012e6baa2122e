package handlers

import (
	"net/http"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

const defaultProductPageLimit = 20

var productCategories = []string{
	string(models.CategoryElectronics), string(models.CategoryClothing), string(models.CategoryBeauty),
	string(models.CategoryHome), string(models.CategoryAccessories), string(models.CategoryFood),
	string(models.CategoryOther),
}

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// ListProducts handles GET /products. Only active products are listed.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	p, ok := pagination(c, defaultProductPageLimit)
	if !ok {
		return
	}
	category, ok := enumQuery(c, "category", productCategories...)
	if !ok {
		return
	}
	filters := models.ProductFilters{
		Search:   c.Query("search"),
		Category: models.ProductCategory(category),
		Page:     p.Page,
		Limit:    p.Limit,
	}
	products, total, err := h.productService.ListProducts(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, "ListProducts", err)
		return
	}
	c.JSON(http.StatusOK, paginated("products", products, total, p))
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), actorID(c), req)
	if err != nil {
		respondServiceError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /products/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeactivateProduct handles DELETE /products/:id.
func (h *ProductHandler) DeactivateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "DeactivateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated", "product": product})
}
