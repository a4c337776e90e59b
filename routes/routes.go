package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/controllers"
	"github.com/printshop/printshop-api/middleware"
	"go.uber.org/zap"
)

// SetupRouter builds the mock backend router. JWT validation and scope
// checks are only installed when Auth0 is configured.
func SetupRouter(cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/health", controllers.HealthCheck)
	api.GET("/database/status", controllers.DatabaseStatus)
	api.GET("/uploads/*key", controllers.GetUploadedFile)

	scope := func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } }
	if cfg.AuthEnabled() {
		ensureValidToken, err := middleware.EnsureValidToken(cfg)
		if err != nil {
			return nil, err
		}
		api.Use(ensureValidToken)
		scope = middleware.RequireScope

		api.POST("/users", controllers.CreateUser)
		api.GET("/users/me", controllers.GetMyProfile)
	}

	read := scope(middleware.ScopeReadOrders)
	write := scope(middleware.ScopeWriteOrders)
	catalog := scope(middleware.ScopeManageCatalog)

	// Orders
	api.GET("/orders", read, controllers.ListOrders)
	api.GET("/orders/:id", read, controllers.GetOrder)
	api.PUT("/orders/:id", write, controllers.UpdateOrder)
	api.GET("/orders/:id/timeline", read, controllers.ListTimeline)
	api.POST("/orders/:id/timeline", write, controllers.AddTimelineEntry)
	api.GET("/exports/orders", read, controllers.ExportOrders)
	api.PUT("/order-details/:id", write, controllers.UpdateOrderDetail)
	api.GET("/order-details/available", read, controllers.ListAvailableOrderDetails)

	// Customers
	api.GET("/customers", read, controllers.ListCustomers)
	api.GET("/customers/:id", read, controllers.GetCustomer)
	api.PUT("/customers/:id", write, controllers.UpdateCustomer)

	// Designs and catalog
	api.GET("/designs", read, controllers.ListDesigns)
	api.POST("/designs/:id/file", write, controllers.UploadDesignFile)
	api.GET("/material-types", read, controllers.ListMaterialTypes)
	api.GET("/plate-vendors", read, controllers.ListPlateVendors)
	api.GET("/design-types", read, controllers.ListDesignTypes)
	api.GET("/design-types/:id", read, controllers.GetDesignType)
	api.POST("/design-types", catalog, controllers.CreateDesignType)
	api.PUT("/design-types/:id", catalog, controllers.UpdateDesignType)
	api.DELETE("/design-types/:id", catalog, controllers.DeleteDesignType)
	api.POST("/design-types/generate-code", read, controllers.GenerateDesignCode)
	api.GET("/paper-sizes", read, controllers.ListPaperSizes)
	api.POST("/paper-sizes", write, controllers.CreatePaperSize)

	// Proofing and production
	api.GET("/proofing-orders", read, controllers.ListProofingOrders)
	api.GET("/proofing-orders/:id", read, controllers.GetProofingOrder)
	api.POST("/proofing-orders", write, controllers.CreateProofingOrder)
	api.POST("/proofing-orders/:id/designs", write, controllers.AddDesignsToProofingOrder)
	api.POST("/proofing-orders/:id/image", write, controllers.UploadProofingImage)
	api.GET("/productions", read, controllers.ListProductions)
	api.PUT("/productions/:id", write, controllers.UpdateProduction)
	api.GET("/plate-exports", read, controllers.ListPlateExports)
	api.POST("/plate-exports", write, controllers.CreatePlateExport)
	api.GET("/die-exports", read, controllers.ListDieExports)
	api.POST("/die-exports", write, controllers.CreateDieExport)

	// Finance and delivery
	api.GET("/payments", read, controllers.ListPayments)
	api.POST("/payments", write, controllers.CreatePayment)
	api.GET("/invoices", read, controllers.ListInvoices)
	api.GET("/invoices/:id/export", read, controllers.ExportInvoice)
	api.GET("/delivery-notes", read, controllers.ListDeliveryNotes)

	// Staff
	api.GET("/users", read, controllers.ListUsers)
	api.GET("/users/by-username/:username", read, controllers.GetUserByUsername)
	api.GET("/dashboard/manager", read, controllers.GetManagerDashboard)
	api.GET("/dashboard/employees/:id", read, controllers.GetEmployeeDashboard)

	return router, nil
}
