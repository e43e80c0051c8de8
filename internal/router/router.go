package router

import (
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/config"
	"github.com/DarkZone24/inventory-monitoring-system/internal/handler"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"
	"github.com/DarkZone24/inventory-monitoring-system/internal/middleware"
	"github.com/DarkZone24/inventory-monitoring-system/internal/model"
	"github.com/DarkZone24/inventory-monitoring-system/internal/repository"
	"github.com/DarkZone24/inventory-monitoring-system/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb and alerts may be nil; caching and low stock alerts are then disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, alerts service.StockAlerter) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.NewRateLimiter(cfg.APIRateLimit, time.Minute, "Too many requests. Please slow down.").Middleware())

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb, cfg.CacheTTL())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	borrowingRepo := repository.NewBorrowingRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	reportRepo, err := repository.NewReportRepository(db)
	if err != nil {
		return nil, err
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, roleRepo, cache, cfg)
	roleSvc := service.NewRoleService(roleRepo)
	inventorySvc := service.NewInventoryService(productRepo, categoryRepo, movementRepo, cache, alerts)
	categorySvc := service.NewCategoryService(categoryRepo)
	borrowingSvc := service.NewBorrowingService(productRepo, borrowingRepo, movementRepo, cache, alerts)
	analyticsSvc := service.NewAnalyticsService(reportRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	rolesH := handler.NewRolesHandler(roleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	borrowingsH := handler.NewBorrowingsHandler(borrowingSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/metrics", gin.WrapH(infra.MetricsHandler()))

	api := r.Group("/api")
	api.GET("/health", handler.Health(db, rdb))
	api.POST("/login", middleware.NewLoginRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow()).Middleware(), authH.Login)

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	staffOrAdmin := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)
	canInventory := middleware.RequireCapability(roleSvc.HasCapability, model.CapabilityInventory)
	canAnalytics := middleware.RequireCapability(roleSvc.HasCapability, model.CapabilityAnalytics)

	protected := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	{
		users := protected.Group("/users", adminOnly)
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		roles := protected.Group("/roles", adminOnly)
		{
			roles.GET("", rolesH.List)
			roles.POST("/update-permissions", rolesH.UpdatePermissions)
		}

		inv := protected.Group("/inventory", canInventory)
		{
			inv.GET("", inventoryH.List)
			inv.GET("/export", inventoryH.Export)
			inv.GET("/:id", inventoryH.Get)
			inv.GET("/:id/movements", inventoryH.Movements)
			inv.POST("", staffOrAdmin, inventoryH.Create)
			inv.PUT("/:id", staffOrAdmin, inventoryH.Update)
			inv.DELETE("/:id", adminOnly, inventoryH.Delete)
		}

		protected.GET("/categories", categoriesH.List)
		protected.POST("/categories", adminOnly, categoriesH.Create)

		borrowings := protected.Group("/borrowings", canInventory)
		{
			borrowings.GET("", borrowingsH.List)
			borrowings.POST("", borrowingsH.Borrow)
			borrowings.PUT("/:id/return", borrowingsH.Return)
		}

		protected.GET("/analytics/category-stats", canAnalytics, analyticsH.CategoryStats)
		protected.GET("/analytics/sales-report", adminOnly, analyticsH.SalesReport)
		protected.GET("/dashboard/stats", analyticsH.DashboardStats)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
