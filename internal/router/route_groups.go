package router

import (
	"shop_backoffice/internal/access"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware(access.DashboardRoles))
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetDashboardStats)
	}
}

// SetupUserRoutes sets up the user management routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(access.UserRoles))
	{
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeactivateUser)
	}
}

// SetupProductRoutes sets up the product routes. Reads and writes have separate allow-lists.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	read := middleware.RoleAuthMiddleware(access.ProductReadRoles)
	write := middleware.RoleAuthMiddleware(access.ProductWriteRoles)
	{
		productRoutes.GET("", read, productHandler.ListProducts)
		productRoutes.GET("/:id", read, productHandler.GetProduct)
		productRoutes.POST("", write, productHandler.CreateProduct)
		productRoutes.PUT("/:id", write, productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", write, productHandler.DeactivateProduct)
	}
}

// SetupStockRoutes sets up the stock routes.
func SetupStockRoutes(authenticatedGroup *gin.RouterGroup, stockHandler *handlers.StockHandler) {
	stockRoutes := authenticatedGroup.Group("/stock")
	stockRoutes.Use(middleware.RoleAuthMiddleware(access.StockRoles))
	{
		stockRoutes.GET("", stockHandler.ListStock)
		stockRoutes.GET("/history", stockHandler.ListHistory)
		stockRoutes.POST("/adjust", stockHandler.AdjustStock)
		stockRoutes.PUT("/:productId", stockHandler.UpdateSettings)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.GET("", middleware.RoleAuthMiddleware(access.OrderReadRoles), orderHandler.GetOrders)
		orderRoutes.GET("/:id", middleware.RoleAuthMiddleware(access.OrderReadRoles), orderHandler.GetOrderByID)
		orderRoutes.POST("", middleware.RoleAuthMiddleware(access.OrderCreateRoles), orderHandler.CreateOrder)
		orderRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(access.OrderStatusRoles), orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(access.OrderDeleteRoles), orderHandler.DeleteOrder)
	}
}

// SetupChargeRoutes sets up the charge routes.
func SetupChargeRoutes(authenticatedGroup *gin.RouterGroup, chargeHandler *handlers.ChargeHandler) {
	chargeRoutes := authenticatedGroup.Group("/charges")
	chargeRoutes.Use(middleware.RoleAuthMiddleware(access.ExpenseRoles))
	{
		chargeRoutes.GET("", chargeHandler.ListCharges)
		chargeRoutes.GET("/:id", chargeHandler.GetCharge)
		chargeRoutes.POST("", chargeHandler.CreateCharge)
		chargeRoutes.PUT("/:id", chargeHandler.UpdateCharge)
		chargeRoutes.DELETE("/:id", chargeHandler.DeleteCharge)
	}
}

// SetupAdsCostRoutes sets up the ads cost routes.
func SetupAdsCostRoutes(authenticatedGroup *gin.RouterGroup, adsCostHandler *handlers.AdsCostHandler) {
	adsCostRoutes := authenticatedGroup.Group("/ads-costs")
	adsCostRoutes.Use(middleware.RoleAuthMiddleware(access.ExpenseRoles))
	{
		adsCostRoutes.GET("", adsCostHandler.ListAdsCosts)
		adsCostRoutes.GET("/:id", adsCostHandler.GetAdsCost)
		adsCostRoutes.POST("", adsCostHandler.CreateAdsCost)
		adsCostRoutes.PUT("/:id", adsCostHandler.UpdateAdsCost)
		adsCostRoutes.DELETE("/:id", adsCostHandler.DeleteAdsCost)
	}
}

// SetupSalaryRoutes sets up the salary routes.
func SetupSalaryRoutes(authenticatedGroup *gin.RouterGroup, salaryHandler *handlers.SalaryHandler) {
	salaryRoutes := authenticatedGroup.Group("/salaries")
	salaryRoutes.Use(middleware.RoleAuthMiddleware(access.SalaryRoles))
	{
		salaryRoutes.GET("", salaryHandler.ListSalaries)
		salaryRoutes.GET("/:id", salaryHandler.GetSalary)
		salaryRoutes.POST("", salaryHandler.CreateSalary)
		salaryRoutes.PUT("/:id", salaryHandler.UpdateSalary)
		salaryRoutes.DELETE("/:id", salaryHandler.DeleteSalary)
	}
}
