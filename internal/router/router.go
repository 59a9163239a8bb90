package router

import (
	"fmt"
	"net/http"

	"geobike_backend/internal/config"
	"geobike_backend/internal/database"
	"geobike_backend/internal/handlers"
	"geobike_backend/internal/models"
	"geobike_backend/internal/repositories"
	"geobike_backend/internal/services"
	"geobike_backend/internal/storage"
	"geobike_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *gorm.DB, cfg *config.Config, images storage.ImageStore) error {
	if err := utils.RegisterStringValidator("catalogtype", models.IsItemType); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	productRepo := repositories.NewProductRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	movementRepo := repositories.NewStockMovementRepository(db)
	transactor := database.NewTransactor(db, database.NewRetryPolicy(cfg.Database.MaxRetries, cfg.Database.MaxRetryDelay))

	// Services
	authService := services.NewAuthService(accountRepo, customerRepo, staffRepo)
	customerService := services.NewCustomerService(customerRepo, accountRepo, transactor)
	staffService := services.NewStaffService(staffRepo, accountRepo, transactor)
	supplierService := services.NewSupplierService(supplierRepo)
	catalogService := services.NewCatalogService(productRepo, serviceRepo, images, cfg.Storage.MaxImageBytes)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo, serviceRepo, movementRepo, transactor, services.StockPolicy(cfg.Stock.OrderPolicy))
	saleService := services.NewSaleService(saleRepo, productRepo, serviceRepo, movementRepo, transactor, services.StockPolicy(cfg.Stock.SalePolicy))
	movementService := services.NewStockMovementService(movementRepo)
	reportService := services.NewReportService(customerRepo, productRepo, orderRepo, saleRepo, cfg.Stock.LowStockThreshold)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := engine.Group("/api")
	SetupAuthRoutes(api, handlers.NewAuthHandler(authService))
	SetupCartRoutes(api, handlers.NewCartHandler())

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	SetupProductRoutes(api, catalogHandler)
	SetupServiceRoutes(api, catalogHandler)

	SetupCustomerRoutes(api, handlers.NewCustomerHandler(customerService))
	SetupStaffRoutes(api, handlers.NewStaffHandler(staffService))
	SetupSupplierRoutes(api, handlers.NewSupplierHandler(supplierService))
	SetupOrderRoutes(api, handlers.NewOrderHandler(orderService))
	SetupSaleRoutes(api, handlers.NewSaleHandler(saleService))
	SetupStockMovementRoutes(api, handlers.NewStockMovementHandler(movementService))
	SetupReportRoutes(api, handlers.NewReportHandler(reportService))
	return nil
}
