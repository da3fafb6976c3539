package v1

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/domain/auth"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/internal/domain/documents/bill"
	"billbook/internal/domain/documents/quotation"
	"billbook/internal/domain/history"
	"billbook/internal/domain/reports"
	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/export"
	"billbook/internal/infrastructure/http/v1/handlers"
	"billbook/internal/infrastructure/http/v1/middleware"
	"billbook/internal/infrastructure/pdf"
	"billbook/internal/infrastructure/storage/postgres"
	"billbook/internal/infrastructure/storage/postgres/auth_repo"
	"billbook/internal/infrastructure/storage/postgres/catalog_repo"
	"billbook/internal/infrastructure/storage/postgres/document_repo"
	"billbook/internal/infrastructure/storage/postgres/history_repo"
	"billbook/internal/infrastructure/storage/postgres/report_repo"
	"billbook/internal/infrastructure/storage/postgres/settings_repo"
	"billbook/pkg/logger"
	"billbook/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWT issues and validates access tokens
	JWT *auth.JWTService
}

// NewRouter creates and configures the Gin router with all repositories,
// services and handlers wired up.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Gzip())
	router.Use(middleware.ErrorHandler())

	txManager := postgres.NewTxManager(cfg.Pool)
	num := numerator.New(cfg.Pool.Unwrap())

	// Repositories
	itemRepo := catalog_repo.NewItemRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	billRepo := document_repo.NewBillRepo(txManager)
	quotationRepo := document_repo.NewQuotationRepo(txManager)
	historyRepo := history_repo.NewHistoryRepo(txManager)
	settingsRepo := settings_repo.NewSettingsRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// Services
	historyService := history.NewService(historyRepo, txManager)
	itemService := item.NewService(itemRepo, txManager, historyService)
	customerService := customer.NewService(customerRepo, txManager)
	billService := bill.NewService(billRepo, itemRepo, customerRepo, num, txManager)
	quotationService := quotation.NewService(quotationRepo, itemRepo, customerRepo, num, txManager)
	settingsService := settings.NewService(settingsRepo, txManager)
	reportsService := reports.NewService(reportRepo)
	exportService := export.NewService(billRepo, customerRepo, itemRepo)
	authService := auth.NewService(userRepo, cfg.JWT, txManager)

	renderer := pdf.NewRenderer()

	// Handlers
	base := handlers.NewBaseHandler()
	itemHandler := handlers.NewItemHandler(base, itemService)
	customerHandler := handlers.NewCustomerHandler(base, customerService)
	billHandler := handlers.NewBillHandler(base, billService, customerService, settingsService, renderer)
	quotationHandler := handlers.NewQuotationHandler(base, quotationService, customerService, settingsService, renderer)
	settingsHandler := handlers.NewSettingsHandler(base, settingsService)
	historyHandler := handlers.NewHistoryHandler(base, historyService)
	reportsHandler := handlers.NewReportsHandler(base, reportsService)
	exportHandler := handlers.NewExportHandler(base, exportService)
	authHandler := handlers.NewAuthHandler(base, authService)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)

	// Health endpoints (no auth)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		// Auth endpoints
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register",
				middleware.Auth(cfg.JWT), middleware.RequireAdmin(), authHandler.Register)
			authGroup.POST("/change-password",
				middleware.Auth(cfg.JWT), authHandler.ChangePassword)
		}

		// Business endpoints. Auth is optional: anonymous requests are
		// served, history attribution stays empty without a token.
		business := api.Group("")
		business.Use(middleware.OptionalAuth(cfg.JWT))

		RegisterCatalogRoutes(business.Group("/items"), itemHandler)
		items := business.Group("/items")
		{
			items.GET("/lookup", itemHandler.Lookup)
			items.DELETE("/:id/force", itemHandler.ForceDelete)
		}

		RegisterCatalogRoutes(business.Group("/customers"), customerHandler)

		bills := business.Group("/bills")
		{
			bills.GET("", billHandler.List)
			bills.POST("", billHandler.Create)
			bills.GET("/:id", billHandler.Get)
			bills.DELETE("/:id", billHandler.Delete)
			bills.GET("/:id/invoice", billHandler.Invoice)
		}

		quotations := business.Group("/quotations")
		{
			quotations.GET("", quotationHandler.List)
			quotations.POST("", quotationHandler.Create)
			quotations.GET("/:id", quotationHandler.Get)
			quotations.DELETE("/:id", quotationHandler.Delete)
			quotations.GET("/:id/document", quotationHandler.Document)
		}

		settingsGroup := business.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.Get)
			settingsGroup.PUT("", settingsHandler.Update)
		}

		inventory := business.Group("/inventory")
		{
			inventory.GET("/history", historyHandler.List)
			inventory.DELETE("/history",
				middleware.Auth(cfg.JWT), middleware.RequireAdmin(), historyHandler.Reset)
		}

		reportsGroup := business.Group("/reports")
		{
			reportsGroup.GET("/dashboard", reportsHandler.Dashboard)
			reportsGroup.GET("/items/:id/sales", reportsHandler.ProductSales)
		}

		exportGroup := business.Group("/export")
		{
			exportGroup.GET("/bills", exportHandler.Bills)
			exportGroup.GET("/customers", exportHandler.Customers)
			exportGroup.GET("/inventory", exportHandler.Inventory)
		}
	}

	return router
}
