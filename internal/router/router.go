package router

import (
	"database/sql"

	"shop_backoffice/internal/events"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/internal/revocation"
	"shop_backoffice/internal/services"
	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Deps are the process-wide resources the API is built from.
type Deps struct {
	DB           *sql.DB
	Tokens       *utils.TokenManager
	Revoked      revocation.Store
	Publisher    events.Publisher
	SecureCookie bool
}

// Services groups every service the handlers depend on.
type Services struct {
	Auth          services.AuthService
	Authenticator services.Authenticator
	Users         services.UserService
	Products      services.ProductService
	Stock         services.StockService
	Orders        services.OrderService
	Charges       services.ChargeService
	AdsCosts      services.AdsCostService
	Salaries      services.SalaryService
	Dashboard     services.DashboardService
}

// NewServices wires repositories into services.
func NewServices(d Deps) Services {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(d.DB)
	productRepo := repositories.NewProductRepository(d.DB)
	stockRepo := repositories.NewStockRepository(d.DB)
	historyRepo := repositories.NewStockHistoryRepository(d.DB)
	orderRepo := repositories.NewOrderRepository(d.DB)
	chargeRepo := repositories.NewChargeRepository(d.DB)
	adsCostRepo := repositories.NewAdsCostRepository(d.DB)
	salaryRepo := repositories.NewSalaryRepository(d.DB)
	reportRepo := repositories.NewReportRepository(d.DB)

	// Initialize Services
	return Services{
		Auth:          services.NewAuthService(userRepo, d.Tokens, d.Revoked),
		Authenticator: services.NewAuthenticator(d.Tokens, d.Revoked, userRepo),
		Users:         services.NewUserService(userRepo),
		Products:      services.NewProductService(productRepo, stockRepo, historyRepo, d.Publisher, d.DB),
		Stock:         services.NewStockService(stockRepo, historyRepo, d.Publisher, d.DB),
		Orders:        services.NewOrderService(orderRepo, productRepo, d.Publisher, d.DB),
		Charges:       services.NewChargeService(chargeRepo),
		AdsCosts:      services.NewAdsCostService(adsCostRepo),
		Salaries:      services.NewSalaryService(salaryRepo),
		Dashboard:     services.NewDashboardService(reportRepo),
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, d Deps) {
	Register(engine, NewServices(d), d.DB, d.SecureCookie)
}

// Register mounts every route under /api. Unknown paths and methods get the
// error envelope.
func Register(engine *gin.Engine, s Services, db handlers.Pinger, secureCookie bool) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(s.Auth, secureCookie)
	userHandler := handlers.NewUserHandler(s.Users)
	productHandler := handlers.NewProductHandler(s.Products)
	stockHandler := handlers.NewStockHandler(s.Stock)
	orderHandler := handlers.NewOrderHandler(s.Orders)
	chargeHandler := handlers.NewChargeHandler(s.Charges)
	adsCostHandler := handlers.NewAdsCostHandler(s.AdsCosts)
	salaryHandler := handlers.NewSalaryHandler(s.Salaries)
	dashboardHandler := handlers.NewDashboardHandler(s.Dashboard)

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(handlers.NoRoute)
	engine.NoMethod(handlers.NoMethod)

	api := engine.Group("/api")
	api.GET("/health", handlers.HealthCheck(db))

	// Public authentication routes
	SetupPublicAuthRoutes(api.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(s.Authenticator))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupStockRoutes(authenticated, stockHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupChargeRoutes(authenticated, chargeHandler)
		SetupAdsCostRoutes(authenticated, adsCostHandler)
		SetupSalaryRoutes(authenticated, salaryHandler)
	}
}

// SetupPublicAuthRoutes sets up the routes reachable without a session.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
	group.POST("/logout", authHandler.Logout)
}

// SetupAuthenticatedAuthRoutes sets up the routes of the current session.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.Me)
	group.PUT("/profile", authHandler.UpdateProfile)
}
