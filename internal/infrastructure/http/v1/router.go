// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"vitrin/internal/core/security"
	"vitrin/internal/core/tenant"
	"vitrin/internal/domain/auth"
	"vitrin/internal/domain/catalogs/category"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/catalogs/product"
	"vitrin/internal/domain/orders"
	"vitrin/internal/domain/reports"
	"vitrin/internal/infrastructure/http/v1/handlers"
	"vitrin/internal/infrastructure/http/v1/middleware"
	"vitrin/internal/infrastructure/storage/postgres"
	"vitrin/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Pool is the shared connection pool (for health checks)
	Pool *postgres.Pool

	// Registry resolves tenants for scoped routes
	Registry tenant.Registry

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	TenantService   *tenant.Service
	AuthService     *auth.Service
	CategoryService *category.Service
	ProductService  *product.Service
	CustomerService *customer.Service
	OrderService    *orders.Service
	ReportsService  *reports.Service

	// AuditService is optional; when nil the audit routes are not
	// registered.
	AuditService *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, base, cfg)
		registerTenantRoutes(v1, base, cfg)

		// Tenant-scoped endpoints. Auth runs first so the token's
		// tenant claim feeds the resolver.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.ResolveTenant(cfg.Registry))

		registerCatalogRoutes(protected, base, cfg)
		registerOrderRoutes(protected, base, cfg)
		registerReportRoutes(protected, base, cfg)
		registerUserRoutes(protected, base, cfg)
		registerAuditRoutes(protected, base, cfg)

		// Fixed value sets; auth only, no tenant needed.
		meta := v1.Group("/meta")
		meta.Use(middleware.Auth(cfg.JWTValidator))
		meta.GET("/enums", handlers.NewEnumsHandler(base).List)
	}

	return router
}

// registerAuthRoutes wires login and the current-user endpoint.
// Login resolves the tenant leniently: platform admins have none.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewAuthHandler(base, cfg.AuthService)

	authGroup := rg.Group("/auth")
	{
		login := authGroup.Group("")
		login.Use(middleware.OptionalAuth(cfg.JWTValidator))
		login.Use(middleware.OptionalTenant(cfg.Registry))
		login.POST("/login", h.Login)

		me := authGroup.Group("")
		me.Use(middleware.Auth(cfg.JWTValidator))
		me.GET("/me", h.Me)
	}
}

// registerTenantRoutes wires platform tenant administration.
// No tenant resolution: these routes operate across tenants and are
// reserved for the super admin role.
func registerTenantRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewTenantHandler(base, cfg.TenantService)

	tenants := rg.Group("/tenants")
	tenants.Use(middleware.Auth(cfg.JWTValidator))
	tenants.Use(middleware.RequireRole(security.RoleSuperAdmin))
	{
		tenants.POST("", h.Register)
		tenants.GET("", h.List)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id", h.Update)
		tenants.POST("/:id/activate", h.Activate)
		tenants.POST("/:id/deactivate", h.Deactivate)
	}
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	categoryHandler := handlers.NewCategoryHandler(base, cfg.CategoryService)
	categories := rg.Group("/categories")
	{
		categories.POST("", middleware.RequirePolicy(security.ResourceCategories, security.ActionCreate), categoryHandler.Create)
		categories.GET("", middleware.RequirePolicy(security.ResourceCategories, security.ActionRead), categoryHandler.List)
		categories.GET("/:id", middleware.RequirePolicy(security.ResourceCategories, security.ActionRead), categoryHandler.Get)
		categories.PUT("/:id", middleware.RequirePolicy(security.ResourceCategories, security.ActionUpdate), categoryHandler.Update)
		categories.DELETE("/:id", middleware.RequirePolicy(security.ResourceCategories, security.ActionDelete), categoryHandler.Delete)
	}

	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := rg.Group("/products")
	{
		products.POST("", middleware.RequirePolicy(security.ResourceProducts, security.ActionCreate), productHandler.Create)
		products.GET("", middleware.RequirePolicy(security.ResourceProducts, security.ActionRead), productHandler.List)
		products.GET("/:id", middleware.RequirePolicy(security.ResourceProducts, security.ActionRead), productHandler.Get)
		products.PUT("/:id", middleware.RequirePolicy(security.ResourceProducts, security.ActionUpdate), productHandler.Update)
		products.DELETE("/:id", middleware.RequirePolicy(security.ResourceProducts, security.ActionDelete), productHandler.Delete)
	}

	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	orderHandler := handlers.NewOrderHandler(base, cfg.OrderService)
	customers := rg.Group("/customers")
	{
		customers.POST("", middleware.RequirePolicy(security.ResourceCustomers, security.ActionCreate), customerHandler.Create)
		customers.GET("", middleware.RequirePolicy(security.ResourceCustomers, security.ActionRead), customerHandler.List)
		customers.GET("/:id", middleware.RequirePolicy(security.ResourceCustomers, security.ActionRead), customerHandler.Get)
		customers.PUT("/:id", middleware.RequirePolicy(security.ResourceCustomers, security.ActionUpdate), customerHandler.Update)
		customers.DELETE("/:id", middleware.RequirePolicy(security.ResourceCustomers, security.ActionDelete), customerHandler.Delete)
		customers.GET("/:id/orders", middleware.RequirePolicy(security.ResourceOrders, security.ActionRead), orderHandler.ListByCustomer)
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewOrderHandler(base, cfg.OrderService)

	ordersGroup := rg.Group("/orders")
	{
		ordersGroup.POST("", middleware.RequirePolicy(security.ResourceOrders, security.ActionCreate), h.Create)
		ordersGroup.GET("", middleware.RequirePolicy(security.ResourceOrders, security.ActionRead), h.List)
		ordersGroup.GET("/:id", middleware.RequirePolicy(security.ResourceOrders, security.ActionRead), h.Get)
		ordersGroup.PATCH("/:id/status", middleware.RequirePolicy(security.ResourceOrders, security.ActionUpdate), h.UpdateStatus)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewReportsHandler(base, cfg.ReportsService)

	reportsGroup := rg.Group("/reports")
	reportsGroup.Use(middleware.RequirePolicy(security.ResourceReports, security.ActionRead))
	{
		reportsGroup.GET("/dashboard", h.Dashboard)
		reportsGroup.GET("/sales", h.Sales)
		reportsGroup.GET("/inventory", h.Inventory)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewAuthHandler(base, cfg.AuthService)

	users := rg.Group("/users")
	{
		users.POST("", middleware.RequirePolicy(security.ResourceUsers, security.ActionCreate), h.Register)
		users.GET("", middleware.RequirePolicy(security.ResourceUsers, security.ActionRead), h.ListUsers)
	}
}

func registerAuditRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuditService == nil {
		return
	}
	h := handlers.NewAuditHandler(base, cfg.AuditService)

	audit := rg.Group("/audit")
	audit.Use(middleware.RequireRole(security.RoleSuperAdmin, security.RoleTenantAdmin))
	{
		audit.GET("/:entityType/:entityId", h.History)
	}
}
