package router

import (
	"geobike_backend/internal/handlers"
	"geobike_backend/internal/middleware"
	"geobike_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the login route.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	apiGroup.POST("/login", authHandler.Login)
}

// SetupOrderRoutes sets up the order routes. Customers reach only their own
// orders; the handler checks ownership.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/pedidos")
	orderRoutes.Use(middleware.AuthMiddleware())
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("/cliente/:clienteId", orderHandler.GetOrdersByCustomer)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)

		staffOnly := orderRoutes.Group("")
		staffOnly.Use(middleware.RoleAuthMiddleware(models.StaffRoles...))
		{
			staffOnly.GET("", orderHandler.GetOrders)
			staffOnly.PUT("/:id/estado", orderHandler.UpdateOrderStatus)
		}
	}
}

// SetupSaleRoutes sets up the point of sale routes.
func SetupSaleRoutes(apiGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := apiGroup.Group("/ventas")
	saleRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
	}
}

// SetupProductRoutes exposes the catalog publicly and its writes to staff.
func SetupProductRoutes(apiGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	productRoutes := apiGroup.Group("/productos")
	productRoutes.GET("", catalogHandler.GetProducts)
	productRoutes.GET("/:id", catalogHandler.GetProductByID)

	staffOnly := productRoutes.Group("")
	staffOnly.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		staffOnly.POST("", catalogHandler.CreateProduct)
		staffOnly.PUT("/:id", catalogHandler.UpdateProduct)
		staffOnly.PATCH("/:id/toggle-activo", catalogHandler.ToggleProductActive)
		staffOnly.PUT("/:id/imagen", catalogHandler.UploadProductImage)
		staffOnly.DELETE("/:id", catalogHandler.DeleteProduct)
	}
}

func SetupServiceRoutes(apiGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	serviceRoutes := apiGroup.Group("/servicios")
	serviceRoutes.GET("", catalogHandler.GetServices)
	serviceRoutes.GET("/:id", catalogHandler.GetServiceByID)

	staffOnly := serviceRoutes.Group("")
	staffOnly.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		staffOnly.POST("", catalogHandler.CreateService)
		staffOnly.PUT("/:id", catalogHandler.UpdateService)
		staffOnly.PATCH("/:id/toggle-activo", catalogHandler.ToggleServiceActive)
	}
}

// SetupCustomerRoutes: registration is public, profile reads and edits need a
// session, and listing needs a staff role.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/clientes")
	customerRoutes.POST("/register", customerHandler.RegisterCustomer)

	authenticated := customerRoutes.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/:id", customerHandler.GetCustomerByID)
		authenticated.PUT("/:id", customerHandler.UpdateCustomer)
	}

	staffOnly := customerRoutes.Group("")
	staffOnly.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		staffOnly.GET("", customerHandler.GetCustomers)
		staffOnly.GET("/search", customerHandler.SearchCustomers)
		staffOnly.PATCH("/:id/toggle-estado", customerHandler.ToggleCustomerStatus)
	}
}

// SetupStaffRoutes sets up the employee routes, admin only.
func SetupStaffRoutes(apiGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := apiGroup.Group("/empleados")
	staffRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		staffRoutes.POST("/register", staffHandler.RegisterStaff)
		staffRoutes.GET("", staffHandler.GetStaff)
		staffRoutes.GET("/search", staffHandler.SearchStaff)
		staffRoutes.GET("/:id", staffHandler.GetStaffByID)
		staffRoutes.PUT("/:id", staffHandler.UpdateStaff)
		staffRoutes.PATCH("/:id/toggle-estado", staffHandler.ToggleStaffStatus)
	}
}

func SetupSupplierRoutes(apiGroup *gin.RouterGroup, supplierHandler *handlers.SupplierHandler) {
	supplierRoutes := apiGroup.Group("/proveedores")
	supplierRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		supplierRoutes.GET("", supplierHandler.GetSuppliers)
		supplierRoutes.GET("/:id", supplierHandler.GetSupplierByID)
		supplierRoutes.POST("", supplierHandler.CreateSupplier)
		supplierRoutes.PUT("/:id", supplierHandler.UpdateSupplier)
		supplierRoutes.PATCH("/:id/toggle-status", supplierHandler.ToggleSupplierStatus)
		supplierRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
	}
}

func SetupStockMovementRoutes(apiGroup *gin.RouterGroup, movementHandler *handlers.StockMovementHandler) {
	movementRoutes := apiGroup.Group("/movimientos-inventario")
	movementRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		movementRoutes.GET("", movementHandler.GetStockMovements)
	}
}

// SetupReportRoutes sets up the dashboard report routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := apiGroup.Group("/reportes")
	reportRoutes.Use(middleware.AuthMiddleware(), middleware.RoleAuthMiddleware(models.StaffRoles...))
	{
		reportRoutes.GET("/resumen", reportHandler.GetSummary)
		reportRoutes.GET("/productos-vendidos", reportHandler.GetProductSales)
	}
}

// SetupCartRoutes prices a client-held cart. No session is needed.
func SetupCartRoutes(apiGroup *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	apiGroup.POST("/carrito/resumen", cartHandler.Summary)
}
